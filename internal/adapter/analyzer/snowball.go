package analyzer

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
)

// SnowballStemmer stems with the Snowball algorithm for one language.
type SnowballStemmer struct {
	language string
}

// NewSnowballStemmer fails for languages the snowball package does not ship.
func NewSnowballStemmer(language string) (*SnowballStemmer, error) {
	language = strings.ToLower(language)
	if _, err := snowball.Stem("probe", language, true); err != nil {
		return nil, fmt.Errorf("snowball stemmer: %w", err)
	}
	return &SnowballStemmer{language: language}, nil
}

// Stem returns word unchanged when the algorithm rejects it.
func (s *SnowballStemmer) Stem(word string) string {
	stem, err := snowball.Stem(word, s.language, true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}

func (s *SnowballStemmer) Language() string {
	return s.language
}
