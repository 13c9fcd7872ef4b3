package port

import "textprep/internal/domain"

// Normalizer rewrites token surfaces in place and returns the same Text.
type Normalizer interface {
	Apply(text domain.Text) domain.Text

	Name() string
}

type Stemmer interface {
	Stem(word string) string
}
