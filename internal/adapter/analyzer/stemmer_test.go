package analyzer

import "testing"

func TestPorterStemmer_Stem(t *testing.T) {
	stemmer := NewPorterStemmer()

	tests := []struct {
		input string
		want  string
	}{
		{"running", "run"},
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"cats", "cat"},
		{"agreed", "agre"},
		{"hopping", "hop"},
		{"relational", "relat"},
		{"conditional", "condit"},
		{"hopefulness", "hope"},
		{"Running", "run"},
		{"go", "go"},
	}

	for _, tt := range tests {
		if got := stemmer.Stem(tt.input); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPorterStemmer_Deterministic(t *testing.T) {
	stemmer := NewPorterStemmer()
	words := []string{"rational", "operational", "organization", "sensitiviti", "formalize"}

	for _, w := range words {
		first := stemmer.Stem(w)
		for i := 0; i < 50; i++ {
			if got := stemmer.Stem(w); got != first {
				t.Fatalf("Stem(%q) not deterministic: %q then %q", w, first, got)
			}
		}
	}
}

func TestPorterStemmer_NonASCIIUntouched(t *testing.T) {
	stemmer := NewPorterStemmer()
	for _, w := range []string{"東京", "naïve", "42"} {
		if got := stemmer.Stem(w); got != w {
			t.Errorf("expected %q to be left alone, got %q", w, got)
		}
	}
}

func TestSnowballStemmer(t *testing.T) {
	stemmer, err := NewSnowballStemmer("English")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stemmer.Language() != "english" {
		t.Errorf("expected language to be lowercased, got %q", stemmer.Language())
	}

	if got := stemmer.Stem("running"); got != "run" {
		t.Errorf("Stem(running) = %q, want run", got)
	}
	if got := stemmer.Stem("cats"); got != "cat" {
		t.Errorf("Stem(cats) = %q, want cat", got)
	}
}

func TestSnowballStemmer_UnknownLanguage(t *testing.T) {
	if _, err := NewSnowballStemmer("klingon"); err == nil {
		t.Error("expected error for unsupported language")
	}
}
