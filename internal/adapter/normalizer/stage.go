package normalizer

import (
	"fmt"
	"strings"

	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
	"textprep/internal/port"
)

// Stage adapts a Normalizer to the fit/transform contract.
type Stage struct {
	normalizer port.Normalizer
}

func AsStage(n port.Normalizer) *Stage {
	return &Stage{normalizer: n}
}

func (s *Stage) Fit(data domain.Data) error {
	return nil
}

// Transform applies the normalizer to every document in place and returns
// the same Data.
func (s *Stage) Transform(data domain.Data) (domain.Data, error) {
	for i, text := range data {
		data[i] = s.normalizer.Apply(text)
	}
	return data, nil
}

func (s *Stage) Normalizer() port.Normalizer {
	return s.normalizer
}

// Chain applies normalizers in order; each sees the previous one's output.
func Chain(text domain.Text, normalizers ...port.Normalizer) domain.Text {
	for _, n := range normalizers {
		text = n.Apply(text)
	}
	return text
}

// Options configures normalizers built by FromNames.
type Options struct {
	Placeholder     string
	StemmerLanguage string
}

func DefaultOptions() Options {
	return Options{
		Placeholder:     DefaultPlaceholder,
		StemmerLanguage: "english",
	}
}

// Names accepted by FromNames.
const (
	NameLower    = "lower"
	NamePorter   = "porter"
	NameSnowball = "snowball"
	NameBaseForm = "base_form"
	NameNumber   = "number"
	NameNFKC     = "nfkc"
)

// FromNames builds normalizers in the given order.
func FromNames(names []string, opts Options) ([]port.Normalizer, error) {
	out := make([]port.Normalizer, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case NameLower, "lowercase":
			out = append(out, NewLowercase())
		case NamePorter, "stem":
			out = append(out, NewPorter())
		case NameSnowball:
			stemmer, err := analyzer.NewSnowballStemmer(opts.StemmerLanguage)
			if err != nil {
				return nil, err
			}
			out = append(out, NewStem(NameSnowball, stemmer))
		case NameBaseForm, "lemma":
			out = append(out, NewBaseForm())
		case NameNumber:
			out = append(out, NewNumber(opts.Placeholder))
		case NameNFKC:
			out = append(out, NewNFKC())
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNormalizer, name)
		}
	}
	return out, nil
}
