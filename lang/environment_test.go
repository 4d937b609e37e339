package lang

import (
	"slices"
	"testing"
)

func TestEnvironment_DefineGet(t *testing.T) {
	env := NewEnvironment()

	if _, ok := env.Get("x"); ok {
		t.Fatal("unexpected binding in empty scope")
	}

	env.Define("x", Number(1))

	v, ok := env.Get("x")
	if !ok || v != Number(1) {
		t.Errorf("got %v, %v", v, ok)
	}

	// Redefinition overwrites in place.
	env.Define("x", String("two"))

	v, _ = env.Get("x")
	if v != String("two") {
		t.Errorf("after redefine: got %v", v)
	}
}

func TestEnvironment_ChildResolvesOutward(t *testing.T) {
	root := NewEnvironment()
	root.Define("a", Number(1))

	child := root.Child()

	v, ok := child.Get("a")
	if !ok || v != Number(1) {
		t.Errorf("child lookup: got %v, %v", v, ok)
	}

	// Shadowing hides without mutating the parent.
	child.Define("a", Number(2))

	if v, _ := child.Get("a"); v != Number(2) {
		t.Errorf("shadowed lookup: got %v", v)
	}

	if v, _ := root.Get("a"); v != Number(1) {
		t.Errorf("parent after shadow: got %v", v)
	}
}

func TestEnvironment_Assign(t *testing.T) {
	root := NewEnvironment()
	root.Define("a", Number(1))

	child := root.Child()

	// Assignment reaches the nearest defining scope.
	if !child.Assign("a", Number(9)) {
		t.Fatal("assign to inherited binding failed")
	}

	if v, _ := root.Get("a"); v != Number(9) {
		t.Errorf("parent after assign: got %v", v)
	}

	// Assignment never declares.
	if child.Assign("b", Number(1)) {
		t.Error("assign to unknown name succeeded")
	}

	if _, ok := child.Get("b"); ok {
		t.Error("failed assign created a binding")
	}
}

func TestEnvironment_Names(t *testing.T) {
	root := NewEnvironment()
	root.Define("b", Number(1))
	root.Define("a", Number(2))

	child := root.Child()
	child.Define("c", Number(3))
	child.Define("a", Number(4)) // shadowed, reported once

	got := child.Names()
	want := []string{"a", "b", "c"}

	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
