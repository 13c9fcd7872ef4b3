package memstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"textprep/internal/domain"
	"textprep/internal/port"
)

var _ port.VocabularyStore = (*MemoryStore)(nil)

type entry struct {
	snapshot []byte
	docs     []domain.DocumentMeta
	stats    domain.Stats
}

// MemoryStore keeps vocabularies in process memory. Nothing survives Close.
type MemoryStore struct {
	mu    sync.RWMutex
	vocab map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vocab: make(map[string]entry)}
}

func (s *MemoryStore) SaveVocabulary(name string, snapshot []byte, docs []domain.DocumentMeta, stats domain.Stats) error {
	if name == "" {
		return errors.New("vocabulary name must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocab[name] = entry{
		snapshot: append([]byte(nil), snapshot...),
		docs:     append([]domain.DocumentMeta(nil), docs...),
		stats:    stats,
	}
	return nil
}

func (s *MemoryStore) get(name string) (entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.vocab[name]
	if !ok {
		return entry{}, fmt.Errorf("%w: %s", domain.ErrVocabularyNotFound, name)
	}
	return e, nil
}

func (s *MemoryStore) LoadVocabulary(name string) ([]byte, error) {
	e, err := s.get(name)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), e.snapshot...), nil
}

func (s *MemoryStore) ListVocabularies() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.vocab))
	for name := range s.vocab {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) DeleteVocabulary(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vocab[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrVocabularyNotFound, name)
	}
	delete(s.vocab, name)
	return nil
}

// ListDocs returns the documents ordered by ID, like the bolt store.
func (s *MemoryStore) ListDocs(name string) ([]domain.DocumentMeta, error) {
	e, err := s.get(name)
	if err != nil {
		return nil, err
	}
	docs := append([]domain.DocumentMeta(nil), e.docs...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) GetStats(name string) (domain.Stats, error) {
	e, err := s.get(name)
	if err != nil {
		return domain.Stats{}, err
	}
	return e.stats, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
