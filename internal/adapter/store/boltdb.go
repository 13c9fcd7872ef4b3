package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"textprep/internal/domain"
	"textprep/internal/port"
)

// Layout:
//
//	vocabularies/<name>/snapshot   JSON vocabulary snapshot
//	vocabularies/<name>/stats      JSON corpus stats
//	vocabularies/<name>/docs/<id>  JSON document metadata
//	meta/schema_version, meta/config_hash
var (
	bucketVocabularies = []byte("vocabularies")
	bucketDocs         = []byte("docs")
	bucketMeta         = []byte("meta")
	keySnapshot        = []byte("snapshot")
	keyStats           = []byte("stats")
)

// ErrNotFound is returned when no vocabulary is stored under a name.
var ErrNotFound = domain.ErrVocabularyNotFound

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketVocabularies, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func validName(name string) error {
	if name == "" {
		return errors.New("vocabulary name must not be empty")
	}
	return nil
}

func (s *BoltStore) SaveVocabulary(name string, snapshot []byte, docs []domain.DocumentMeta, stats domain.Stats) error {
	if err := validName(name); err != nil {
		return err
	}
	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketVocabularies)
		if root.Bucket([]byte(name)) != nil {
			if err := root.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		b, err := root.CreateBucket([]byte(name))
		if err != nil {
			return fmt.Errorf("failed to create bucket for %s: %w", name, err)
		}
		if err := b.Put(keySnapshot, snapshot); err != nil {
			return err
		}
		if err := b.Put(keyStats, statsData); err != nil {
			return err
		}

		docsBucket, err := b.CreateBucket(bucketDocs)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			data, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := docsBucket.Put([]byte(doc.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) LoadVocabulary(name string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVocabularies).Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		// Bolt memory is only valid inside the transaction.
		out = append([]byte(nil), b.Get(keySnapshot)...)
		return nil
	})
	return out, err
}

// ListVocabularies returns stored names in byte order.
func (s *BoltStore) ListVocabularies() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVocabularies).ForEach(func(k, v []byte) error {
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	})
	return names, err
}

func (s *BoltStore) DeleteVocabulary(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		err := tx.Bucket(bucketVocabularies).DeleteBucket([]byte(name))
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	})
}

// ListDocs returns the documents a vocabulary was fitted on, ordered by ID.
func (s *BoltStore) ListDocs(name string) ([]domain.DocumentMeta, error) {
	var docs []domain.DocumentMeta
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVocabularies).Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return b.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var meta domain.DocumentMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("decode document %s: %w", k, err)
			}
			docs = append(docs, meta)
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) GetStats(name string) (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVocabularies).Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		data := b.Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

var _ port.VocabularyStore = (*BoltStore)(nil)
