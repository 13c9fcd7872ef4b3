package tokenizer

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"

	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
	"textprep/internal/port"
)

const EngineProse = "prose"

func init() {
	Register(EngineProse, func(EngineConfig) (port.Engine, error) { return NewProseEngine() })
}

// ProseEngine tags English text with a statistical model and lemmatizes each
// token, yielding linguistic-origin tokens.
// The tagger model is loaded once and shared by every call.
type ProseEngine struct {
	lemmatizer *golem.Lemmatizer
	model      *prose.Model
}

func NewProseEngine() (*ProseEngine, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}
	warmup, err := prose.NewDocument("", prose.WithSegmentation(false), prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to load tagger model: %w", err)
	}
	return &ProseEngine{lemmatizer: lemmatizer, model: warmup.Model}, nil
}

func (e *ProseEngine) Tokenize(text string) (domain.Text, error) {
	doc, err := prose.NewDocument(
		text,
		prose.UsingModel(e.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	toks := doc.Tokens()
	out := make(domain.Text, len(toks))
	for i, tok := range toks {
		out[i] = domain.NewToken(domain.LinguisticRecord{
			Text:  tok.Text,
			Lemma: e.lemmatizer.Lemma(tok.Text),
			POS:   analyzer.UniversalPOS(tok.Tag),
			Tag:   tok.Tag,
		})
	}
	return out, nil
}

func (e *ProseEngine) Name() string { return EngineProse }
