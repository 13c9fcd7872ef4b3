package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"textprep/config"
	"textprep/internal/adapter/tokenizer"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "textprep",
	Short: "Text preprocessing - tokenize, normalize and build vocabularies",
	Long: `textprep turns raw text into integer ID sequences for machine learning.
Documents are tokenized in parallel, normalized by a configurable chain
(lowercase, stemming, base form, number placeholders) and mapped through a
vocabulary filtered by document frequency.

Example usage:
  textprep tokenize "The cats ran"          # Show tokens and tags
  textprep fit corpus/                      # Fit and store a vocabulary
  textprep encode "the cat sat"             # Map text to IDs
  textprep decode 4 5 6                     # Map IDs back to words
  textprep vocab                            # Inspect stored vocabularies`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.Overlay(cfg, cmd.Flags()); err != nil {
			return fmt.Errorf("failed to apply overrides: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if !tokenizer.IsRegistered(cfg.Tokenizer.Engine) {
			return fmt.Errorf("unknown engine %q (available: %s)", cfg.Tokenizer.Engine, strings.Join(tokenizer.ListEngines(), ", "))
		}

		return setupLogging(cfg.Logging)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./textprep.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	config.RegisterFlags(rootCmd.PersistentFlags(), config.DefaultConfig())
}

// setupLogging applies the configured level and, when a log file is set,
// writes JSON logs there in addition to the console.
func setupLogging(lc config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(lc.Level))
	if err != nil || lc.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, f)).With().Timestamp().Logger()
	}

	return nil
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
