package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"textprep/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. TEXTPREP_TOKENIZER_ENGINE.
const EnvPrefix = "TEXTPREP"

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"engine":     "tokenizer.engine",
	"workers":    "tokenizer.workers",
	"model-path": "tokenizer.model_path",
	"log-level":  "logging.level",
	"log-file":   "logging.file",
	"min-df":     "vocabulary.min_df",
	"max-df":     "vocabulary.max_df",
}

// RegisterFlags declares the overridable flags on fs.
func RegisterFlags(fs *pflag.FlagSet, defaults *Config) {
	fs.String("engine", defaults.Tokenizer.Engine, "tokenizer engine")
	fs.Int("workers", defaults.Tokenizer.Workers, "tokenizer workers (<= 0 means CPUs + 1 + n)")
	fs.String("model-path", defaults.Tokenizer.ModelPath, "sentencepiece model file")
	fs.String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	fs.String("log-file", defaults.Logging.File, "also write logs to this file")
	fs.String("min-df", defaults.Vocabulary.MinDF.String(), "minimum document frequency (int count or float fraction)")
	fs.String("max-df", defaults.Vocabulary.MaxDF.String(), "maximum document frequency (int count or float fraction)")
}

// Overlay applies environment variables and explicitly set flags on top of
// cfg. Precedence: flag > environment > file > defaults.
func Overlay(cfg *Config, fs *pflag.FlagSet) error {
	v := viper.New()
	setDefaults(v, cfg)

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg.Tokenizer.Engine = v.GetString("tokenizer.engine")
	cfg.Tokenizer.Workers = v.GetInt("tokenizer.workers")
	cfg.Tokenizer.ModelPath = v.GetString("tokenizer.model_path")
	cfg.Tokenizer.Mode = v.GetString("tokenizer.mode")
	cfg.Tokenizer.CacheSize = v.GetInt("tokenizer.cache_size")
	cfg.Tokenizer.CacheTTL = v.GetDuration("tokenizer.cache_ttl")
	cfg.NumberPlaceholder = v.GetString("number_placeholder")
	cfg.StemmerLanguage = v.GetString("stemmer_language")
	cfg.Vocabulary.VocabSize = v.GetInt("vocabulary.vocab_size")
	cfg.Corpus.Mode = v.GetString("corpus.mode")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.File = v.GetString("logging.file")

	if names := v.GetString("normalizers"); names != strings.Join(cfg.Normalizers, ",") {
		cfg.Normalizers = splitList(names)
	}

	var err error
	if cfg.Vocabulary.MinDF, err = domain.ParseThreshold(v.GetString("vocabulary.min_df")); err != nil {
		return fmt.Errorf("vocabulary.min_df: %w", err)
	}
	if cfg.Vocabulary.MaxDF, err = domain.ParseThreshold(v.GetString("vocabulary.max_df")); err != nil {
		return fmt.Errorf("vocabulary.max_df: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("tokenizer.engine", c.Tokenizer.Engine)
	v.SetDefault("tokenizer.workers", c.Tokenizer.Workers)
	v.SetDefault("tokenizer.model_path", c.Tokenizer.ModelPath)
	v.SetDefault("tokenizer.mode", c.Tokenizer.Mode)
	v.SetDefault("tokenizer.cache_size", c.Tokenizer.CacheSize)
	v.SetDefault("tokenizer.cache_ttl", c.Tokenizer.CacheTTL)
	// Lists travel as comma-separated strings so TEXTPREP_NORMALIZERS works.
	v.SetDefault("normalizers", strings.Join(c.Normalizers, ","))
	v.SetDefault("number_placeholder", c.NumberPlaceholder)
	v.SetDefault("stemmer_language", c.StemmerLanguage)
	v.SetDefault("vocabulary.min_df", c.Vocabulary.MinDF.String())
	v.SetDefault("vocabulary.max_df", c.Vocabulary.MaxDF.String())
	v.SetDefault("vocabulary.vocab_size", c.Vocabulary.VocabSize)
	v.SetDefault("corpus.mode", c.Corpus.Mode)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.file", c.Logging.File)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
