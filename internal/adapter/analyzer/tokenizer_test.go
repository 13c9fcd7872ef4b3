package analyzer

import (
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"hello world", 2},
		{"hello_world", 1},
		{"hello-world", 2},
		{"func(x, y)", 3},
		{"CamelCase", 1},
		{"snake_case_name", 1},
		{"123numbers456", 1},
		{"", 0},
	}

	for _, tt := range tests {
		words := SplitWords(tt.input)
		if len(words) != tt.expected {
			t.Errorf("SplitWords(%q) = %d words, want %d: %v", tt.input, len(words), tt.expected, words)
		}
	}
}

func TestSplitFields(t *testing.T) {
	words := SplitFields("  This is\ta  simple\nexample. ")
	want := []string{"This", "is", "a", "simple", "example."}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d: %v", len(want), len(words), words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d: expected %q, got %q", i, want[i], words[i])
		}
	}

	if got := SplitFields("   "); len(got) != 0 {
		t.Errorf("expected no words for blank input, got %v", got)
	}
}

func TestIsNumeral(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"42", true},
		{"0", true},
		{"٣", true},
		{"forty-two", false},
		{"4.2", false},
		{"-1", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsNumeral(tt.input); got != tt.want {
			t.Errorf("IsNumeral(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("") || !IsBlank(" \t\n") {
		t.Error("expected empty and whitespace strings to be blank")
	}
	if IsBlank(" a ") {
		t.Error("expected non-whitespace string not to be blank")
	}
}

func TestUniversalPOS(t *testing.T) {
	tests := map[string]string{
		"CD":   "NUM",
		"NNS":  "NOUN",
		"VBG":  "VERB",
		"PRP$": "PRON",
		".":    "PUNCT",
		"???":  "X",
	}
	for tag, want := range tests {
		if got := UniversalPOS(tag); got != want {
			t.Errorf("UniversalPOS(%q) = %q, want %q", tag, got, want)
		}
	}
}
