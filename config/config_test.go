package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tokenizer.Engine != "split" {
		t.Errorf("expected Engine=split, got %s", cfg.Tokenizer.Engine)
	}
	if cfg.Tokenizer.Workers != -1 {
		t.Errorf("expected Workers=-1, got %d", cfg.Tokenizer.Workers)
	}
	if !cfg.Vocabulary.MaxDF.IsFraction() || cfg.Vocabulary.MaxDF.String() != "1.0" {
		t.Errorf("expected MaxDF=1.0 fraction, got %s", cfg.Vocabulary.MaxDF)
	}
	if cfg.Vocabulary.MinDF.IsFraction() || cfg.Vocabulary.MinDF.String() != "1" {
		t.Errorf("expected MinDF=1 count, got %s", cfg.Vocabulary.MinDF)
	}
	if cfg.Vocabulary.Unk != "<unk>" {
		t.Errorf("expected Unk=<unk>, got %s", cfg.Vocabulary.Unk)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	content := `
tokenizer:
  engine: kagome-ipa
  workers: 2
  cache_ttl: 30s
normalizers: [lower, porter]
vocabulary:
  min_df: 2
  max_df: 0.9
  unk: ""
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tokenizer.Engine != "kagome-ipa" {
		t.Errorf("expected Engine=kagome-ipa, got %s", cfg.Tokenizer.Engine)
	}
	if cfg.Tokenizer.Workers != 2 {
		t.Errorf("expected Workers=2, got %d", cfg.Tokenizer.Workers)
	}
	if cfg.Tokenizer.CacheTTL != 30*time.Second {
		t.Errorf("expected CacheTTL=30s, got %v", cfg.Tokenizer.CacheTTL)
	}
	if len(cfg.Normalizers) != 2 || cfg.Normalizers[1] != "porter" {
		t.Errorf("unexpected normalizers %v", cfg.Normalizers)
	}
	if cfg.Vocabulary.MinDF.IsFraction() || cfg.Vocabulary.MinDF.Limit(10) != 2 {
		t.Errorf("expected MinDF count 2, got %s", cfg.Vocabulary.MinDF)
	}
	if !cfg.Vocabulary.MaxDF.IsFraction() || cfg.Vocabulary.MaxDF.Limit(10) != 9 {
		t.Errorf("expected MaxDF fraction 0.9, got %s", cfg.Vocabulary.MaxDF)
	}
	if cfg.Vocabulary.Unk != "" {
		t.Errorf("expected Unk disabled, got %q", cfg.Vocabulary.Unk)
	}
	// Unset keys keep their defaults.
	if cfg.Vocabulary.Pad != "<pad>" {
		t.Errorf("expected Pad=<pad>, got %q", cfg.Vocabulary.Pad)
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("vocabulary:\n  max_df: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for max_df above 1.0")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, DirName, "config.yaml")

	content := `
corpus:
  mode: file
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Corpus.Mode != ModeFile {
		t.Errorf("expected Mode=file, got %s", cfg.Corpus.Mode)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Tokenizer.Engine = "word"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tokenizer.Engine != "word" {
		t.Errorf("expected Engine=word, got %s", loaded.Tokenizer.Engine)
	}
	if loaded.Vocabulary.MaxDF != cfg.Vocabulary.MaxDF || loaded.Vocabulary.MinDF != cfg.Vocabulary.MinDF {
		t.Errorf("thresholds changed kind: max=%s min=%s", loaded.Vocabulary.MaxDF, loaded.Vocabulary.MinDF)
	}
	if loaded.Tokenizer.CacheTTL != cfg.Tokenizer.CacheTTL {
		t.Errorf("expected CacheTTL=%v, got %v", cfg.Tokenizer.CacheTTL, loaded.Tokenizer.CacheTTL)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.Mode = "paragraph"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown corpus mode")
	}

	cfg = DefaultConfig()
	cfg.Tokenizer.Engine = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty engine")
	}
}

func TestDBPath(t *testing.T) {
	path := DBPath("/home/user/project")
	expected := filepath.Join("/home/user/project", ".textprep", "textprep.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestOverlay_FlagsBeatEnv(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, cfg)

	t.Setenv("TEXTPREP_TOKENIZER_ENGINE", "word")
	t.Setenv("TEXTPREP_TOKENIZER_WORKERS", "3")
	if err := fs.Parse([]string{"--engine", "prose", "--min-df", "0.25"}); err != nil {
		t.Fatal(err)
	}

	if err := Overlay(cfg, fs); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if cfg.Tokenizer.Engine != "prose" {
		t.Errorf("expected flag to win, got engine %s", cfg.Tokenizer.Engine)
	}
	if cfg.Tokenizer.Workers != 3 {
		t.Errorf("expected env workers=3, got %d", cfg.Tokenizer.Workers)
	}
	if !cfg.Vocabulary.MinDF.IsFraction() || cfg.Vocabulary.MinDF.String() != "0.25" {
		t.Errorf("expected min_df fraction 0.25, got %s", cfg.Vocabulary.MinDF)
	}
}

func TestOverlay_KeepsFileValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tokenizer.Engine = "kagome-uni"
	cfg.Normalizers = []string{"nfkc", "lower"}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	if err := Overlay(cfg, fs); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if cfg.Tokenizer.Engine != "kagome-uni" {
		t.Errorf("unset flag overrode file value: %s", cfg.Tokenizer.Engine)
	}
	if len(cfg.Normalizers) != 2 || cfg.Normalizers[0] != "nfkc" {
		t.Errorf("normalizers changed: %v", cfg.Normalizers)
	}
}

func TestOverlay_EnvNormalizers(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("TEXTPREP_NORMALIZERS", "lower, snowball")

	if err := Overlay(cfg, nil); err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if len(cfg.Normalizers) != 2 || cfg.Normalizers[1] != "snowball" {
		t.Errorf("expected [lower snowball], got %v", cfg.Normalizers)
	}
}

func TestOverlay_BadThreshold(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("TEXTPREP_VOCABULARY_MAX_DF", "many")
	if err := Overlay(cfg, nil); err == nil {
		t.Error("expected error for unparsable max_df")
	}
}
