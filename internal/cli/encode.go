package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	encodeName string
	encodeJSON bool
	encodeWrap bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text...]",
	Short: "Map text to vocabulary IDs",
	Long: `Tokenize, normalize and encode text with a stored vocabulary.
Unseen words map to the unknown symbol; with vocabulary.unk set to ""
they are an error instead. Without arguments every stdin line is encoded.

Examples:
  textprep encode "the cat sat"
  cat sentences.txt | textprep encode --name news --json`,
	RunE: runEncode,
}

var decodeName string

var decodeCmd = &cobra.Command{
	Use:   "decode [id...]",
	Short: "Map vocabulary IDs back to words",
	Long: `Decode one ID sequence from the arguments, or one sequence per stdin
line (space separated). Unknown IDs are an error.

Examples:
  textprep decode 4 5 6
  textprep encode "the cat" | textprep decode`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeName, "name", "n", DefaultVocabulary, "vocabulary name")
	encodeCmd.Flags().BoolVar(&encodeJSON, "json", false, "output as JSON arrays")
	encodeCmd.Flags().BoolVar(&encodeWrap, "wrap", false, "wrap each sequence in the bos/eos symbols")

	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeName, "name", "n", DefaultVocabulary, "vocabulary name")
}

func runEncode(cmd *cobra.Command, args []string) error {
	texts, err := readInputs(args, os.Stdin)
	if err != nil {
		return err
	}

	p, err := loadPipeline(encodeName)
	if err != nil {
		return err
	}

	ids, err := p.Transform(texts)
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}

	if encodeWrap {
		ids, err = wrapSequences(ids, GetConfig().Vocabulary.BOS, GetConfig().Vocabulary.EOS, p.Vocabulary().Index)
		if err != nil {
			return err
		}
	}

	if encodeJSON {
		return json.NewEncoder(os.Stdout).Encode(ids)
	}
	for _, seq := range ids {
		fmt.Println(joinInts(seq))
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	lines, err := readInputs(args, os.Stdin)
	if err != nil {
		return err
	}

	ids := make([][]int, len(lines))
	for i, line := range lines {
		if ids[i], err = parseInts(line); err != nil {
			return err
		}
	}

	p, err := loadPipeline(decodeName)
	if err != nil {
		return err
	}

	words, err := p.Decode(ids)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	for _, seq := range words {
		fmt.Println(strings.Join(seq, " "))
	}
	return nil
}

// wrapSequences adds the bos/eos IDs around each sequence. Disabled symbols
// are skipped.
func wrapSequences(ids [][]int, bos, eos string, index func(string) (int, error)) ([][]int, error) {
	var head, tail []int
	if bos != "" {
		id, err := index(bos)
		if err != nil {
			return nil, err
		}
		head = []int{id}
	}
	if eos != "" {
		id, err := index(eos)
		if err != nil {
			return nil, err
		}
		tail = []int{id}
	}

	out := make([][]int, len(ids))
	for i, seq := range ids {
		wrapped := make([]int, 0, len(seq)+len(head)+len(tail))
		wrapped = append(wrapped, head...)
		wrapped = append(wrapped, seq...)
		wrapped = append(wrapped, tail...)
		out[i] = wrapped
	}
	return out, nil
}

func joinInts(seq []int) string {
	parts := make([]string, len(seq))
	for i, id := range seq {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

func parseInts(line string) ([]int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	out := make([]int, len(fields))
	for i, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", f, err)
		}
		out[i] = id
	}
	return out, nil
}
