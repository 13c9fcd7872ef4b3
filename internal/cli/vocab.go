package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"textprep/internal/usecase"
)

var (
	vocabLimit int
	vocabJSON  bool
	vocabDocs  bool
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect and manage stored vocabularies",
	Long: `List, show and delete vocabularies stored by 'textprep fit'.

Examples:
  textprep vocab                 # List stored vocabularies
  textprep vocab show default    # Words with IDs and document frequency
  textprep vocab delete news`,
	Args: cobra.NoArgs,
	RunE: runVocabList,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show words, IDs and document frequencies",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVocabShow,
}

var vocabDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabDelete,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabShowCmd, vocabDeleteCmd)

	vocabShowCmd.Flags().IntVarP(&vocabLimit, "limit", "l", 50, "max words to print (0 = all)")
	vocabShowCmd.Flags().BoolVar(&vocabJSON, "json", false, "print the raw snapshot")
	vocabShowCmd.Flags().BoolVar(&vocabDocs, "docs", false, "list the documents the vocabulary was fitted on")
}

func runVocabList(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	names, err := st.ListVocabularies()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No vocabularies stored.")
		return nil
	}

	fmt.Printf("%-20s %8s %8s %10s  %s\n", "NAME", "ENTRIES", "DOCS", "TOKENS", "PIPELINE")
	for _, name := range names {
		stats, err := st.GetStats(name)
		if err != nil {
			return err
		}
		pipeline := stats.Engine
		if len(stats.Normalizers) > 0 {
			pipeline += " | " + strings.Join(stats.Normalizers, " | ")
		}
		fmt.Printf("%-20s %8d %8d %10d  %s\n", name, stats.VocabSize, stats.TotalDocs, stats.TotalTokens, pipeline)
	}
	return nil
}

func runVocabShow(cmd *cobra.Command, args []string) error {
	name := DefaultVocabulary
	if len(args) > 0 {
		name = args[0]
	}

	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	if vocabJSON {
		data, err := st.LoadVocabulary(name)
		if err != nil {
			return err
		}
		var pretty json.RawMessage = data
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pretty)
	}

	v, err := usecase.LoadVocabulary(st, name)
	if err != nil {
		return err
	}

	opts := v.Options()
	fmt.Printf("Vocabulary %q: %d entries fitted on %d documents\n", name, v.Len(), v.NumDocs())
	fmt.Printf("  min_df=%s max_df=%s vocab_size=%d ignore_blank=%v\n\n", opts.MinDF, opts.MaxDF, opts.VocabSize, opts.IgnoreBlank)

	fmt.Printf("%8s  %6s  %s\n", "ID", "DF", "WORD")
	ids, words := v.IDs(), v.Words()
	for i, id := range ids {
		if vocabLimit > 0 && i >= vocabLimit {
			fmt.Printf("... %d more\n", len(ids)-vocabLimit)
			break
		}
		word := words[i]
		fmt.Printf("%8d  %6d  %q\n", id, v.DocumentFrequency(word), word)
	}

	if vocabDocs {
		docs, err := st.ListDocs(name)
		if err != nil {
			return err
		}
		fmt.Printf("\nDocuments (%d):\n", len(docs))
		for _, d := range docs {
			if d.Line > 0 {
				fmt.Printf("  %s  %s:%d  %d tokens\n", d.ID, d.Path, d.Line, d.NumTokens)
			} else {
				fmt.Printf("  %s  %s  %d tokens\n", d.ID, d.Path, d.NumTokens)
			}
		}
	}
	return nil
}

func runVocabDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(false)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteVocabulary(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted vocabulary %q\n", args[0])
	return nil
}
