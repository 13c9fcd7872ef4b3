package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"textprep/internal/adapter/tokenizer"
	"textprep/internal/domain"
	"textprep/internal/usecase"
)

var (
	tokenizeJSON bool
	tokenizeTags bool
	tokenizeRaw  bool
	tokenizeList bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text...]",
	Short: "Tokenize and normalize text",
	Long: `Tokenize text with the configured engine and normalizer chain.
Without arguments every non-empty stdin line is a document.

Examples:
  textprep tokenize "The cats ran home"
  textprep tokenize --engine kagome-ipa --tags "すもももももももものうち"
  cat corpus.txt | textprep tokenize --json`,
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "output tokens as JSON")
	tokenizeCmd.Flags().BoolVar(&tokenizeTags, "tags", false, "show part-of-speech tags")
	tokenizeCmd.Flags().BoolVar(&tokenizeRaw, "raw", false, "skip normalizers")
	tokenizeCmd.Flags().BoolVar(&tokenizeList, "list-engines", false, "list available engines and exit")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	if tokenizeList {
		for _, name := range tokenizer.ListEngines() {
			fmt.Println(name)
		}
		return nil
	}

	texts, err := readInputs(args, os.Stdin)
	if err != nil {
		return err
	}

	p, err := usecase.BuildPipeline(GetConfig())
	if err != nil {
		return err
	}

	var data domain.Data
	if tokenizeRaw {
		data, err = p.Tokenizer().Transform(texts)
	} else {
		data, err = p.Preprocess(texts)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if tokenizeJSON {
		enc := json.NewEncoder(os.Stdout)
		for _, text := range data {
			if err := enc.Encode(text); err != nil {
				return err
			}
		}
		return nil
	}

	for _, text := range data {
		parts := make([]string, len(text))
		for i, tok := range text {
			if tokenizeTags {
				parts[i] = tok.String()
			} else {
				parts[i] = tok.Surface()
			}
		}
		fmt.Println(strings.Join(parts, " "))
	}
	return nil
}
