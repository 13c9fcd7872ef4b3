// Package vocabulary maps normalized token surfaces to integer IDs.
//
// Reserved symbols (pad, bos, eos, unk) get IDs 0..k-1 at construction time.
// Fit assigns every other surface an ID on first sight, counts document
// frequencies and prunes words outside [min_df, max_df]. Pruning leaves gaps,
// so learned IDs are not contiguous.
package vocabulary

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
)

const (
	DefaultPad = "<pad>"
	DefaultBOS = "<bos>"
	DefaultEOS = "<eos>"
	DefaultUnk = "<unk>"
)

// Options configures a Vocabulary. An empty reserved symbol disables it.
type Options struct {
	MaxDF domain.Threshold `json:"max_df"`
	MinDF domain.Threshold `json:"min_df"`
	// VocabSize caps the number of learned words after frequency filtering.
	// Values <= 0 disable the cap.
	VocabSize int `json:"vocab_size"`
	// IgnoreBlank skips empty and whitespace-only surfaces during Fit.
	IgnoreBlank bool `json:"ignore_blank"`

	Pad string `json:"pad"`
	BOS string `json:"bos"`
	EOS string `json:"eos"`
	Unk string `json:"unk"`
}

func DefaultOptions() Options {
	return Options{
		MaxDF:       domain.Fraction(1.0),
		MinDF:       domain.Count(1),
		VocabSize:   -1,
		IgnoreBlank: true,
		Pad:         DefaultPad,
		BOS:         DefaultBOS,
		EOS:         DefaultEOS,
		Unk:         DefaultUnk,
	}
}

// Vocabulary is a bidirectional word <-> ID mapping. It is not safe for
// concurrent mutation; Transform and the accessors may run concurrently
// once Fit has returned.
type Vocabulary struct {
	opts     Options
	wordToID map[string]int
	idToWord map[int]string
	reserved []string
	df       map[string]int
	numDocs  int
	nextID   int
}

// New creates a vocabulary holding only the enabled reserved symbols.
func New(opts Options) (*Vocabulary, error) {
	if err := opts.MaxDF.Validate(); err != nil {
		return nil, fmt.Errorf("max_df: %w", err)
	}
	if err := opts.MinDF.Validate(); err != nil {
		return nil, fmt.Errorf("min_df: %w", err)
	}

	v := &Vocabulary{
		opts:     opts,
		wordToID: make(map[string]int),
		idToWord: make(map[int]string),
		df:       make(map[string]int),
	}
	for _, sym := range []string{opts.Pad, opts.BOS, opts.EOS, opts.Unk} {
		if sym == "" {
			continue
		}
		if _, dup := v.wordToID[sym]; dup {
			return nil, fmt.Errorf("reserved symbol %q declared twice", sym)
		}
		v.add(sym)
		v.reserved = append(v.reserved, sym)
	}
	return v, nil
}

// MustNew is New for options known to be valid.
func MustNew(opts Options) *Vocabulary {
	v, err := New(opts)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vocabulary) add(word string) int {
	id := v.nextID
	v.nextID++
	v.wordToID[word] = id
	v.idToWord[id] = word
	return id
}

func (v *Vocabulary) remove(word string) {
	id := v.wordToID[word]
	delete(v.wordToID, word)
	delete(v.idToWord, id)
}

func (v *Vocabulary) isReserved(word string) bool {
	for _, r := range v.reserved {
		if r == word {
			return true
		}
	}
	return false
}

// Fit learns the vocabulary from data, replacing any previously learned
// words. Reserved symbols keep their IDs and are never pruned.
func (v *Vocabulary) Fit(data domain.Data) error {
	v.reset()

	for _, text := range data {
		seen := make(map[string]struct{}, len(text))
		for _, tok := range text {
			w := tok.Surface()
			if v.opts.IgnoreBlank && analyzer.IsBlank(w) {
				continue
			}
			if _, ok := v.wordToID[w]; !ok {
				v.add(w)
			}
			seen[w] = struct{}{}
		}
		for w := range seen {
			v.df[w]++
		}
	}
	v.numDocs = len(data)

	minLimit := v.opts.MinDF.Limit(len(data))
	maxLimit := v.opts.MaxDF.Limit(len(data))

	pruned := 0
	for w, c := range v.df {
		if v.isReserved(w) {
			continue
		}
		if float64(c) < minLimit || float64(c) > maxLimit {
			v.remove(w)
			pruned++
		}
	}
	pruned += v.capSize()

	log.Debug().
		Int("docs", len(data)).
		Float64("min_limit", minLimit).
		Float64("max_limit", maxLimit).
		Int("pruned", pruned).
		Int("size", v.Len()).
		Msg("vocabulary fitted")

	return nil
}

func (v *Vocabulary) reset() {
	for w := range v.wordToID {
		if !v.isReserved(w) {
			v.remove(w)
		}
	}
	v.df = make(map[string]int)
	v.numDocs = 0
	v.nextID = len(v.reserved)
}

// capSize keeps the VocabSize learned words with the highest document
// frequency; ties go to the word seen first.
func (v *Vocabulary) capSize() int {
	if v.opts.VocabSize <= 0 {
		return 0
	}
	learned := make([]string, 0, len(v.wordToID))
	for w := range v.wordToID {
		if !v.isReserved(w) {
			learned = append(learned, w)
		}
	}
	if len(learned) <= v.opts.VocabSize {
		return 0
	}
	sort.Slice(learned, func(i, j int) bool {
		di, dj := v.df[learned[i]], v.df[learned[j]]
		if di != dj {
			return di > dj
		}
		return v.wordToID[learned[i]] < v.wordToID[learned[j]]
	})
	for _, w := range learned[v.opts.VocabSize:] {
		v.remove(w)
	}
	return len(learned) - v.opts.VocabSize
}

// Transform maps every token surface to its ID. Misses resolve to the
// unknown symbol when one is enabled; otherwise the whole call fails with
// domain.ErrUnknownWord.
func (v *Vocabulary) Transform(data domain.Data) ([][]int, error) {
	out := make([][]int, len(data))
	for i, text := range data {
		ids, err := v.TransformText(text)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out[i] = ids
	}
	return out, nil
}

func (v *Vocabulary) TransformText(text domain.Text) ([]int, error) {
	unkID, hasUnk := v.UnkID()
	ids := make([]int, len(text))
	for j, tok := range text {
		id, ok := v.wordToID[tok.Surface()]
		if !ok {
			if !hasUnk {
				return nil, fmt.Errorf("%w: %q (enable the unknown symbol to map unseen words)", domain.ErrUnknownWord, tok.Surface())
			}
			id = unkID
		}
		ids[j] = id
	}
	return ids, nil
}

// InverseTransform maps IDs back to words. Every ID must exist.
func (v *Vocabulary) InverseTransform(ids [][]int) ([][]string, error) {
	out := make([][]string, len(ids))
	for i, seq := range ids {
		words := make([]string, len(seq))
		for j, id := range seq {
			w, ok := v.idToWord[id]
			if !ok {
				return nil, fmt.Errorf("document %d: %w: %d", i, domain.ErrUnknownID, id)
			}
			words[j] = w
		}
		out[i] = words
	}
	return out, nil
}

// Len counts every present entry, reserved and learned.
func (v *Vocabulary) Len() int {
	return len(v.idToWord)
}

func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.wordToID[word]
	return ok
}

// Index returns the ID of word or domain.ErrUnknownWord.
func (v *Vocabulary) Index(word string) (int, error) {
	id, ok := v.wordToID[word]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownWord, word)
	}
	return id, nil
}

// At returns the word with ID i. i must satisfy 0 <= i < Len(); an in-range
// ID left empty by pruning is domain.ErrUnknownID.
func (v *Vocabulary) At(i int) (string, error) {
	if i < 0 || i >= v.Len() {
		return "", fmt.Errorf("%w: %d not in [0,%d)", domain.ErrOutOfRange, i, v.Len())
	}
	w, ok := v.idToWord[i]
	if !ok {
		return "", fmt.Errorf("%w: %d", domain.ErrUnknownID, i)
	}
	return w, nil
}

// Words lists every word in ID order.
func (v *Vocabulary) Words() []string {
	ids := v.IDs()
	words := make([]string, len(ids))
	for i, id := range ids {
		words[i] = v.idToWord[id]
	}
	return words
}

// IDs lists every present ID in ascending order.
func (v *Vocabulary) IDs() []int {
	ids := make([]int, 0, len(v.idToWord))
	for id := range v.idToWord {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DocumentFrequency reports how many fitted documents contained word.
func (v *Vocabulary) DocumentFrequency(word string) int {
	return v.df[word]
}

// NumDocs is the corpus size seen by the last Fit.
func (v *Vocabulary) NumDocs() int {
	return v.numDocs
}

func (v *Vocabulary) Options() Options {
	return v.opts
}

// Reserved lists the enabled reserved symbols in ID order.
func (v *Vocabulary) Reserved() []string {
	out := make([]string, len(v.reserved))
	copy(out, v.reserved)
	return out
}

// UnkID returns the unknown symbol's ID and whether it is enabled.
func (v *Vocabulary) UnkID() (int, bool) {
	if v.opts.Unk == "" {
		return 0, false
	}
	id, ok := v.wordToID[v.opts.Unk]
	return id, ok
}

// Pruned counts words seen by the last Fit that did not survive filtering.
// The count survives a snapshot round trip.
func (v *Vocabulary) Pruned() int {
	n := 0
	for w := range v.df {
		if !v.Contains(w) {
			n++
		}
	}
	return n
}
