package repl

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/tali-lang/tali/log"
)

func testLogger() log.Logger {
	return log.Make(io.Discard)
}

func TestHistory_WriteAndGet(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range []string{"let x = 1;", "x + 1;", "print x;"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q): %v", line, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	line, err := h.GetLine(1)
	if err != nil {
		t.Fatalf("GetLine(1): %v", err)
	}

	if line != "x + 1;" {
		t.Errorf("GetLine(1) = %q, want %q", line, "x + 1;")
	}
}

func TestHistory_GetLineOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	if _, err := h.GetLine(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(0) error = %v, want ErrOutOfBounds", err)
	}
}

func TestHistory_SkipsBlankAndRepeatedEntries(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	entries := []string{"x;", "  ", "x;", "y;"}
	for _, line := range entries {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q): %v", line, err)
		}
	}

	got := h.Entries()
	want := []string{"x;", "y;"}

	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range []string{"a;", "b;", "c;", "a;"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q): %v", line, err)
		}
	}

	got := h.Entries()
	want := []string{"b;", "c;", "a;"}

	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_LoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	for _, line := range []string{"let n = 0;", "n = n + 1;"} {
		if _, err := h.Write(line); err != nil {
			t.Fatalf("Write(%q): %v", line, err)
		}
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if loaded.Len() != h.Len() {
		t.Fatalf("loaded Len() = %d, want %d", loaded.Len(), h.Len())
	}

	for i := 0; i < h.Len(); i++ {
		want, _ := h.GetLine(i)

		got, err := loaded.GetLine(i)
		if err != nil {
			t.Fatalf("GetLine(%d): %v", i, err)
		}

		if got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file = %v, want nil", err)
	}
}
