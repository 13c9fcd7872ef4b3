package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"textprep/config"
	"textprep/internal/domain"
)

func openStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStore_SaveLoad(t *testing.T) {
	s := openStore(t)

	docs := []domain.DocumentMeta{
		{ID: "00000001", Path: "b.txt", Line: 2, ModTime: time.Unix(200, 0).UTC(), NumTokens: 4},
		{ID: "00000000", Path: "a.txt", Line: 1, ModTime: time.Unix(100, 0).UTC(), NumTokens: 3},
	}
	stats := domain.Stats{TotalDocs: 2, TotalTokens: 7, AvgDocLen: 3.5, VocabSize: 9, Engine: "split"}

	if err := s.SaveVocabulary("main", []byte(`{"version":1}`), docs, stats); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := s.LoadVocabulary("main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("unexpected snapshot %s", data)
	}

	gotDocs, err := s.ListDocs("main")
	if err != nil {
		t.Fatalf("list docs: %v", err)
	}
	if len(gotDocs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(gotDocs))
	}
	if gotDocs[0].Path != "a.txt" || gotDocs[1].NumTokens != 4 {
		t.Errorf("unexpected docs %+v", gotDocs)
	}
	if !gotDocs[0].ModTime.Equal(docs[1].ModTime) {
		t.Errorf("mod time not preserved: %v", gotDocs[0].ModTime)
	}

	gotStats, err := s.GetStats("main")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if gotStats.TotalTokens != 7 || gotStats.Engine != "split" {
		t.Errorf("unexpected stats %+v", gotStats)
	}
}

func TestBoltStore_SaveReplacesDocs(t *testing.T) {
	s := openStore(t)

	first := []domain.DocumentMeta{{ID: "0"}, {ID: "1"}, {ID: "2"}}
	if err := s.SaveVocabulary("v", []byte("{}"), first, domain.Stats{}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveVocabulary("v", []byte("{}"), first[:1], domain.Stats{}); err != nil {
		t.Fatal(err)
	}
	docs, err := s.ListDocs("v")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Errorf("expected stale docs to be dropped, got %d", len(docs))
	}
}

func TestBoltStore_ListDelete(t *testing.T) {
	s := openStore(t)

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.SaveVocabulary(name, []byte("{}"), nil, domain.Stats{}); err != nil {
			t.Fatal(err)
		}
	}
	names, err := s.ListVocabularies()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("unexpected names %v", names)
	}

	if err := s.DeleteVocabulary("alpha"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.LoadVocabulary("alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteVocabulary("alpha"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBoltStore_EmptyName(t *testing.T) {
	s := openStore(t)
	if err := s.SaveVocabulary("", nil, nil, domain.Stats{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestBoltStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveVocabulary("kept", []byte(`{"a":1}`), nil, domain.Stats{TotalDocs: 1}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	data, err := s.LoadVocabulary("kept")
	if err != nil || string(data) != `{"a":1}` {
		t.Errorf("reopen: got %s, %v", data, err)
	}
}

func TestMigrations(t *testing.T) {
	s := openStore(t)
	cfg := config.DefaultConfig()

	result, err := s.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("fresh db: unexpected result %+v", result)
	}

	if err := s.Migrate(cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	info, err := s.GetSchemaInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Version != CurrentSchemaVersion || info.ConfigHash != ComputeConfigHash(cfg) {
		t.Errorf("unexpected schema info %+v", info)
	}

	rebuild, _, err := s.NeedsRebuild(cfg)
	if err != nil || rebuild {
		t.Errorf("same config should not need rebuild: %v %v", rebuild, err)
	}

	changed := config.DefaultConfig()
	changed.Normalizers = []string{"lower"}
	rebuild, reason, err := s.NeedsRebuild(changed)
	if err != nil || !rebuild {
		t.Errorf("changed normalizers should need rebuild: %v %v", rebuild, err)
	}
	if reason == "" {
		t.Error("expected a reason")
	}
}

func TestComputeConfigHash(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("equal configs should hash equally")
	}

	// Logging does not affect fitted vocabularies.
	b.Logging.Level = "debug"
	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("logging level should not change the hash")
	}

	b.Vocabulary.MinDF = domain.Count(2)
	if ComputeConfigHash(a) == ComputeConfigHash(b) {
		t.Error("min_df should change the hash")
	}
}

func TestClear(t *testing.T) {
	s := openStore(t)
	cfg := config.DefaultConfig()
	if err := s.Migrate(cfg); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveVocabulary("v", []byte("{}"), nil, domain.Stats{}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	names, err := s.ListVocabularies()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("expected no vocabularies, got %v", names)
	}
	info, _ := s.GetSchemaInfo()
	if info.Version != CurrentSchemaVersion {
		t.Error("clear should keep schema info")
	}
}
