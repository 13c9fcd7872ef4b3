package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"textprep/config"
	"textprep/internal/adapter/fs"
	"textprep/internal/usecase"
)

var (
	fitName    string
	fitQuiet   bool
	fitSaveCfg bool
	fitClear   bool
)

var fitCmd = &cobra.Command{
	Use:   "fit [path]",
	Short: "Fit a vocabulary on a corpus directory",
	Long: `Read every file selected by corpus.includes/excludes, tokenize and
normalize it, fit a document-frequency filtered vocabulary and store it
in .textprep/textprep.db within the root directory.

Examples:
  textprep fit .                        # Fit on the current directory
  textprep fit corpus/ --name news      # Store under a custom name
  textprep fit . --min-df 2 --max-df 0.9
  textprep fit . --clear                # Drop every stored vocabulary first`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringVarP(&fitName, "name", "n", DefaultVocabulary, "vocabulary name")
	fitCmd.Flags().BoolVarP(&fitQuiet, "quiet", "q", false, "disable the progress bar")
	fitCmd.Flags().BoolVar(&fitSaveCfg, "save-config", false, "write the effective config to textprep.yaml")
	fitCmd.Flags().BoolVar(&fitClear, "clear", false, "delete all stored vocabularies before fitting")
}

func runFit(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	st, err := openStore(true)
	if err != nil {
		return err
	}
	defer st.Close()

	migrationResult, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}
	if fitClear {
		fmt.Println("Clearing stored vocabularies...")
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear vocabularies: %w", err)
		}
	}
	if migrationResult.NeedsMigration {
		fmt.Printf("Running schema migration: %s\n", migrationResult.Reason)
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else if migrationResult.NeedsRebuild && !fitClear {
		fmt.Printf("Note: %s; stored vocabularies were fitted with other settings\n", migrationResult.Reason)
	}

	walker, err := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	if err != nil {
		return err
	}
	pipeline, err := usecase.BuildPipeline(cfg)
	if err != nil {
		return err
	}

	if !fitQuiet {
		var bar *progressbar.ProgressBar
		var once sync.Once
		pipeline.Tokenizer().WithProgress(func(done, total int) {
			once.Do(func() {
				bar = progressbar.NewOptions(total,
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowBytes(false),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetDescription("[cyan]Tokenizing[reset]"),
					progressbar.OptionOnCompletion(func() {
						fmt.Println()
					}),
				)
			})
			bar.Set(done)
		})
	}

	fitUC := usecase.NewFitUseCase(st, walker, fs.Reader{}, pipeline, cfg.Corpus.Mode)

	fmt.Printf("Scanning %s...\n", path)
	result, err := fitUC.Fit(path, fitName)
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}

	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	fmt.Printf("\nFit complete:\n")
	fmt.Printf("  Vocabulary:   %s\n", result.Name)
	fmt.Printf("  Files read:   %d\n", result.Files)
	fmt.Printf("  Documents:    %d\n", result.Documents)
	fmt.Printf("  Tokens:       %d\n", result.Tokens)
	fmt.Printf("  Entries:      %d\n", result.VocabSize)
	fmt.Printf("  Pruned words: %d\n", result.Pruned)
	fmt.Printf("  Took:         %s\n", formatDuration(result.Duration))

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if fitSaveCfg {
		cfgPath := filepath.Join(GetRootDir(), config.FileName)
		if err := cfg.Save(cfgPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Printf("\nConfig written to: %s\n", cfgPath)
	}

	fmt.Printf("\nVocabulary stored at: %s\n", config.DBPath(GetRootDir()))
	return nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
