package port

import "textprep/internal/domain"

// VocabularyStore persists fitted vocabularies together with the metadata of
// the corpus each one was fitted on. Everything is keyed by vocabulary name.
type VocabularyStore interface {
	// SaveVocabulary replaces the snapshot, document list and stats stored
	// under name in a single transaction.
	SaveVocabulary(name string, snapshot []byte, docs []domain.DocumentMeta, stats domain.Stats) error

	LoadVocabulary(name string) ([]byte, error)

	ListVocabularies() ([]string, error)

	DeleteVocabulary(name string) error

	ListDocs(name string) ([]domain.DocumentMeta, error)

	GetStats(name string) (domain.Stats, error)

	Close() error
}
