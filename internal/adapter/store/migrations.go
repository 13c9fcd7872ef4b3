package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"go.etcd.io/bbolt"

	"textprep/config"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keyConfigHash    = []byte("config_hash")
)

// SchemaInfo stores schema version and configuration hash.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		if data := b.Get(keySchemaVersion); data != nil {
			v, err := strconv.Atoi(string(data))
			if err != nil {
				return fmt.Errorf("corrupt schema version %q", data)
			}
			info.Version = v
		}
		if data := b.Get(keyConfigHash); data != nil {
			info.ConfigHash = string(data)
		}
		return nil
	})
	return &info, err
}

func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if err := b.Put(keySchemaVersion, []byte(strconv.Itoa(info.Version))); err != nil {
			return err
		}
		return b.Put(keyConfigHash, []byte(info.ConfigHash))
	})
}

// ComputeConfigHash hashes every setting that changes what a fitted
// vocabulary contains. A different hash means stored vocabularies were
// produced by a different pipeline.
func ComputeConfigHash(cfg *config.Config) string {
	relevant := struct {
		Engine      string   `json:"engine"`
		ModelPath   string   `json:"model_path"`
		Mode        string   `json:"mode"`
		Lowercase   bool     `json:"lowercase"`
		Normalizers []string `json:"normalizers"`
		Placeholder string   `json:"placeholder"`
		Stemmer     string   `json:"stemmer"`
		MaxDF       string   `json:"max_df"`
		MinDF       string   `json:"min_df"`
		VocabSize   int      `json:"vocab_size"`
		IgnoreBlank bool     `json:"ignore_blank"`
		Reserved    []string `json:"reserved"`
		CorpusMode  string   `json:"corpus_mode"`
	}{
		Engine:      cfg.Tokenizer.Engine,
		ModelPath:   cfg.Tokenizer.ModelPath,
		Mode:        cfg.Tokenizer.Mode,
		Lowercase:   cfg.Tokenizer.Lowercase,
		Normalizers: cfg.Normalizers,
		Placeholder: cfg.NumberPlaceholder,
		Stemmer:     cfg.StemmerLanguage,
		MaxDF:       cfg.Vocabulary.MaxDF.String(),
		MinDF:       cfg.Vocabulary.MinDF.String(),
		VocabSize:   cfg.Vocabulary.VocabSize,
		IgnoreBlank: cfg.Vocabulary.IgnoreBlank,
		Reserved:    []string{cfg.Vocabulary.Pad, cfg.Vocabulary.BOS, cfg.Vocabulary.EOS, cfg.Vocabulary.Unk},
		CorpusMode:  cfg.Corpus.Mode,
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// MigrationResult describes the result of a migration check.
type MigrationResult struct {
	NeedsMigration bool
	NeedsRebuild   bool
	OldVersion     int
	NewVersion     int
	Reason         string
}

func (s *BoltStore) CheckMigration(cfg *config.Config) (*MigrationResult, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	result := &MigrationResult{
		OldVersion: info.Version,
		NewVersion: CurrentSchemaVersion,
	}

	switch {
	case info.Version == 0:
		result.NeedsMigration = true
		result.Reason = "initializing schema version"
	case info.Version < CurrentSchemaVersion:
		result.NeedsMigration = true
		result.Reason = fmt.Sprintf("schema upgrade from v%d to v%d", info.Version, CurrentSchemaVersion)
	case info.Version > CurrentSchemaVersion:
		result.NeedsRebuild = true
		result.Reason = fmt.Sprintf("database created by newer version (v%d > v%d)", info.Version, CurrentSchemaVersion)
		return result, nil
	}

	if info.ConfigHash != "" && info.ConfigHash != ComputeConfigHash(cfg) {
		result.NeedsRebuild = true
		result.Reason = "pipeline configuration changed"
	}

	return result, nil
}

// Migrate runs pending migrations and records the current config hash.
func (s *BoltStore) Migrate(cfg *config.Config) error {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return err
	}

	for v := info.Version; v < CurrentSchemaVersion; v++ {
		if err := s.runMigration(v, v+1); err != nil {
			return fmt.Errorf("migration from v%d to v%d failed: %w", v, v+1, err)
		}
	}

	return s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		ConfigHash: ComputeConfigHash(cfg),
	})
}

func (s *BoltStore) runMigration(from, to int) error {
	switch {
	case from == 0 && to == 1:
		return s.db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketVocabularies)
			return err
		})
	default:
		return nil
	}
}

// Clear removes every stored vocabulary and keeps the schema info.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketVocabularies); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketVocabularies)
		return err
	})
}

// NeedsRebuild reports whether stored vocabularies are stale for cfg.
func (s *BoltStore) NeedsRebuild(cfg *config.Config) (bool, string, error) {
	result, err := s.CheckMigration(cfg)
	if err != nil {
		return false, "", err
	}
	return result.NeedsRebuild, result.Reason, nil
}
