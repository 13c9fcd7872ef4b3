package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"textprep/internal/domain"
)

const (
	// FileName is looked up in the root directory first.
	FileName = "textprep.yaml"
	// DirName holds the database and the fallback config file.
	DirName = ".textprep"
)

// Corpus reading modes.
const (
	ModeLine = "line"
	ModeFile = "file"
)

// Config holds all configuration for the textprep tool.
type Config struct {
	Tokenizer         TokenizerConfig  `yaml:"tokenizer"`
	Normalizers       []string         `yaml:"normalizers"`
	NumberPlaceholder string           `yaml:"number_placeholder"`
	StemmerLanguage   string           `yaml:"stemmer_language"`
	Vocabulary        VocabularyConfig `yaml:"vocabulary"`
	Corpus            CorpusConfig     `yaml:"corpus"`
	Logging           LoggingConfig    `yaml:"logging"`
}

// TokenizerConfig selects the segmentation engine and batch parallelism.
type TokenizerConfig struct {
	Engine    string        `yaml:"engine"`
	Workers   int           `yaml:"workers"`    // <= 0 means NumCPU + 1 + workers
	ModelPath string        `yaml:"model_path"` // sentencepiece model file
	Mode      string        `yaml:"mode"`       // kagome: normal, search, extended
	Lowercase bool          `yaml:"lowercase"`
	CacheSize int           `yaml:"cache_size"` // 0 disables the record cache
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// VocabularyConfig holds document-frequency filtering and reserved symbols.
// An integer threshold is an absolute document count, a float is a fraction.
type VocabularyConfig struct {
	MaxDF       domain.Threshold `yaml:"max_df"`
	MinDF       domain.Threshold `yaml:"min_df"`
	VocabSize   int              `yaml:"vocab_size"`
	IgnoreBlank bool             `yaml:"ignore_blank"`
	Pad         string           `yaml:"pad"`
	BOS         string           `yaml:"bos"`
	EOS         string           `yaml:"eos"`
	Unk         string           `yaml:"unk"`
}

// CorpusConfig selects which files are read and how they split into documents.
type CorpusConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Mode     string   `yaml:"mode"` // "line" or "file"
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			Engine:   "split",
			Workers:  -1,
			Mode:     "normal",
			CacheTTL: 5 * time.Minute,
		},
		Normalizers:       []string{"lower", "number"},
		NumberPlaceholder: "0",
		StemmerLanguage:   "english",
		Vocabulary: VocabularyConfig{
			MaxDF:       domain.Fraction(1.0),
			MinDF:       domain.Count(1),
			VocabSize:   -1,
			IgnoreBlank: true,
			Pad:         "<pad>",
			BOS:         "<bos>",
			EOS:         "<eos>",
			Unk:         "<unk>",
		},
		Corpus: CorpusConfig{
			Includes: []string{"**/*.txt"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/vendor/**", "**/" + DirName + "/**"},
			Mode:     ModeLine,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for textprep.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, DirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if c.Tokenizer.Engine == "" {
		return fmt.Errorf("tokenizer.engine must not be empty")
	}
	if c.Tokenizer.CacheSize < 0 {
		return fmt.Errorf("tokenizer.cache_size must not be negative")
	}
	if err := c.Vocabulary.MaxDF.Validate(); err != nil {
		return fmt.Errorf("vocabulary.max_df: %w", err)
	}
	if err := c.Vocabulary.MinDF.Validate(); err != nil {
		return fmt.Errorf("vocabulary.min_df: %w", err)
	}
	switch c.Corpus.Mode {
	case ModeLine, ModeFile:
	default:
		return fmt.Errorf("corpus.mode must be %q or %q, got %q", ModeLine, ModeFile, c.Corpus.Mode)
	}
	return nil
}

// DBPath returns the path to the vocabulary database.
func DBPath(dir string) string {
	return filepath.Join(dir, DirName, "textprep.db")
}

// EnsureDir ensures the .textprep directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, DirName), 0755)
}
