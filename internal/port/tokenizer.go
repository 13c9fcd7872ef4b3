package port

import "textprep/internal/domain"

// Engine segments one raw string. Implementations must be safe for
// concurrent use because batch tokenization shares a single engine.
type Engine interface {
	Tokenize(text string) (domain.Text, error)

	Name() string
}
