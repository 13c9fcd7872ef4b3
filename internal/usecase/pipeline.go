package usecase

import (
	"fmt"

	"textprep/config"
	"textprep/internal/adapter/cache"
	"textprep/internal/adapter/normalizer"
	"textprep/internal/adapter/tokenizer"
	"textprep/internal/adapter/vocabulary"
	"textprep/internal/domain"
	"textprep/internal/port"
)

// Pipeline chains batch tokenization, normalization and the vocabulary.
// Raw strings go in, ID sequences come out.
type Pipeline struct {
	tokenizer   *tokenizer.Tokenizer
	normalizers []*normalizer.Stage
	vocab       *vocabulary.Vocabulary
}

// NewPipeline creates a pipeline. Normalizers run in the given order.
func NewPipeline(tok *tokenizer.Tokenizer, normalizers []port.Normalizer, vocab *vocabulary.Vocabulary) *Pipeline {
	stages := make([]*normalizer.Stage, len(normalizers))
	for i, n := range normalizers {
		stages[i] = normalizer.AsStage(n)
	}
	return &Pipeline{
		tokenizer:   tok,
		normalizers: stages,
		vocab:       vocab,
	}
}

// BuildPipeline wires a pipeline from configuration.
func BuildPipeline(cfg *config.Config) (*Pipeline, error) {
	engine, err := BuildEngine(cfg)
	if err != nil {
		return nil, err
	}

	normalizers, err := normalizer.FromNames(cfg.Normalizers, normalizer.Options{
		Placeholder:     cfg.NumberPlaceholder,
		StemmerLanguage: cfg.StemmerLanguage,
	})
	if err != nil {
		return nil, err
	}

	vocab, err := vocabulary.New(VocabularyOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("vocabulary: %w", err)
	}

	return NewPipeline(tokenizer.New(engine, cfg.Tokenizer.Workers), normalizers, vocab), nil
}

// BuildEngine creates the configured engine, wrapped in a record cache when
// tokenizer.cache_size is positive.
func BuildEngine(cfg *config.Config) (port.Engine, error) {
	engine, err := tokenizer.NewEngine(cfg.Tokenizer.Engine, tokenizer.EngineConfig{
		ModelPath: cfg.Tokenizer.ModelPath,
		Mode:      cfg.Tokenizer.Mode,
		Lowercase: cfg.Tokenizer.Lowercase,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Tokenizer.CacheSize > 0 {
		engine = cache.NewCachedEngine(engine, cache.NewRecordCache(cfg.Tokenizer.CacheSize, cfg.Tokenizer.CacheTTL))
	}
	return engine, nil
}

func VocabularyOptions(cfg *config.Config) vocabulary.Options {
	v := cfg.Vocabulary
	return vocabulary.Options{
		MaxDF:       v.MaxDF,
		MinDF:       v.MinDF,
		VocabSize:   v.VocabSize,
		IgnoreBlank: v.IgnoreBlank,
		Pad:         v.Pad,
		BOS:         v.BOS,
		EOS:         v.EOS,
		Unk:         v.Unk,
	}
}

func (p *Pipeline) Tokenizer() *tokenizer.Tokenizer {
	return p.tokenizer
}

func (p *Pipeline) Vocabulary() *vocabulary.Vocabulary {
	return p.vocab
}

// SetVocabulary swaps in a previously fitted vocabulary.
func (p *Pipeline) SetVocabulary(v *vocabulary.Vocabulary) {
	p.vocab = v
}

// NormalizerNames lists the normalizers in application order.
func (p *Pipeline) NormalizerNames() []string {
	names := make([]string, len(p.normalizers))
	for i, s := range p.normalizers {
		names[i] = s.Normalizer().Name()
	}
	return names
}

// Preprocess tokenizes and normalizes texts without touching the vocabulary.
func (p *Pipeline) Preprocess(texts []string) (domain.Data, error) {
	data, err := p.tokenizer.Transform(texts)
	if err != nil {
		return nil, err
	}
	return p.normalize(data)
}

func (p *Pipeline) normalize(data domain.Data) (domain.Data, error) {
	var err error
	for _, s := range p.normalizers {
		if data, err = s.Transform(data); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", s.Normalizer().Name(), err)
		}
	}
	return data, nil
}

// Fit preprocesses texts and fits the vocabulary on the result.
func (p *Pipeline) Fit(texts []string) error {
	_, err := p.FitData(texts)
	return err
}

// FitData is Fit that also returns the preprocessed corpus.
func (p *Pipeline) FitData(texts []string) (domain.Data, error) {
	if err := p.tokenizer.Fit(texts); err != nil {
		return nil, err
	}
	data, err := p.tokenizer.Transform(texts)
	if err != nil {
		return nil, err
	}
	for _, s := range p.normalizers {
		if data, err = port.FitTransform[domain.Data, domain.Data](s, data); err != nil {
			return nil, fmt.Errorf("normalize %s: %w", s.Normalizer().Name(), err)
		}
	}
	if err := p.vocab.Fit(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Transform encodes texts into ID sequences with the fitted vocabulary.
func (p *Pipeline) Transform(texts []string) ([][]int, error) {
	data, err := p.Preprocess(texts)
	if err != nil {
		return nil, err
	}
	return p.vocab.Transform(data)
}

// FitTransform fits on texts and encodes the same preprocessed data, so the
// corpus is tokenized once.
func (p *Pipeline) FitTransform(texts []string) ([][]int, error) {
	data, err := p.FitData(texts)
	if err != nil {
		return nil, err
	}
	return p.vocab.Transform(data)
}

// Decode maps ID sequences back to words.
func (p *Pipeline) Decode(ids [][]int) ([][]string, error) {
	return p.vocab.InverseTransform(ids)
}

var _ port.Stage[[]string, [][]int] = (*Pipeline)(nil)
