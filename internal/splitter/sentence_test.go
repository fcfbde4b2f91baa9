package splitter

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences_TerminalPunctuation(t *testing.T) {
	got := SplitSentences("Hello world. This is a test! Does it work? Yes.")
	want := []string{"Hello world.", "This is a test!", "Does it work?", "Yes."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitSentences_NewlineIsTerminal(t *testing.T) {
	got := SplitSentences("first line\nsecond line\nthird")
	want := []string{"first line", "second line", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitSentences_TrailingRemainder(t *testing.T) {
	got := SplitSentences("Complete sentence. trailing fragment")
	want := []string{"Complete sentence.", "trailing fragment"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitSentences_NoTerminalPunctuation(t *testing.T) {
	input := strings.Repeat("word ", 50)
	got := SplitSentences(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence for unterminated run, got %d", len(got))
	}
	if got[0] != strings.TrimSpace(input) {
		t.Errorf("expected trimmed input back, got %q", got[0])
	}
}

func TestSplitSentences_EmptyAndWhitespace(t *testing.T) {
	if got := SplitSentences(""); len(got) != 0 {
		t.Errorf("expected no sentences for empty input, got %v", got)
	}
	if got := SplitSentences("   \n  \n"); len(got) != 0 {
		t.Errorf("expected no sentences for whitespace input, got %v", got)
	}
}

func TestSplitSentences_ConsecutiveTerminals(t *testing.T) {
	got := SplitSentences("Really?! Yes.")
	want := []string{"Really?", "!", "Yes."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
