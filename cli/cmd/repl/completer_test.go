package repl

import "testing"

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "a - fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_comparison", "a > fo", 6, "fo", 4, 6},
		{"after_assign", "x = fo", 6, "fo", 4, 6},
		{"after_brace", "if true {fo", 11, "fo", 9, 11},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		// Underscores are part of identifiers, not word boundaries.
		{"underscore", "loop_count", 10, "loop_count", 0, 10},
		{"underscore_partial", "let loop_co", 11, "loop_co", 4, 11},
		{"keyword_prefix", "wh", 2, "wh", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComputeMatches_Commands(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue(":en")
	m.input.SetCursor(3)

	matches, _, start, end := m.computeMatches()
	if start != 0 || end != 3 {
		t.Errorf("command bounds = (%d, %d), want (0, 3)", start, end)
	}

	if len(matches) != 1 || matches[0].Str != ":env" {
		t.Errorf("matches = %v, want [:env]", matches)
	}
}

func TestComputeMatches_BareColonListsAllCommands(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue(":")
	m.input.SetCursor(1)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != len(replCommands) {
		t.Errorf("got %d matches, want %d", len(matches), len(replCommands))
	}
}

func TestComputeMatches_KeywordsAndGlobals(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.interp.Eval("let whistle = 1;"); err != nil {
		t.Fatalf("eval: %v", err)
	}

	m.input.SetValue("wh")
	m.input.SetCursor(2)

	matches, _, _, _ := m.computeMatches()

	found := map[string]bool{}
	for _, match := range matches {
		found[match.Str] = true
	}

	if !found["while"] {
		t.Errorf("keyword %q missing from matches %v", "while", matches)
	}

	if !found["whistle"] {
		t.Errorf("global %q missing from matches %v", "whistle", matches)
	}
}

func TestComputeMatches_EmptyWordHasNoMatches(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("x + ")
	m.input.SetCursor(4)

	matches, _, _, _ := m.computeMatches()
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestCandidateNames_IncludesBuiltins(t *testing.T) {
	m := newTestModel(t)

	names := candidateNames(m.interp)

	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}

	for _, want := range []string{"let", "fn", "print", "input", "clock"} {
		if !found[want] {
			t.Errorf("candidate %q missing from %v", want, names)
		}
	}
}

func newTestModel(t *testing.T) model {
	t.Helper()

	history := NewHistory(t.TempDir() + "/" + baseHistory)

	return newModel(t.Context(), history, testLogger())
}
