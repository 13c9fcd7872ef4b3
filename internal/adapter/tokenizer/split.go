package tokenizer

import (
	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
	"textprep/internal/port"
)

const (
	EngineSplit = "split"
	EngineWord  = "word"
)

func init() {
	Register(EngineSplit, func(EngineConfig) (port.Engine, error) { return NewSplitEngine(), nil })
	Register(EngineWord, func(EngineConfig) (port.Engine, error) { return NewWordEngine(), nil })
}

// SplitEngine splits on whitespace and yields plain tokens.
type SplitEngine struct{}

func NewSplitEngine() *SplitEngine {
	return &SplitEngine{}
}

func (e *SplitEngine) Tokenize(text string) (domain.Text, error) {
	return plainText(analyzer.SplitFields(text)), nil
}

func (e *SplitEngine) Name() string { return EngineSplit }

// WordEngine keeps runs of letters, digits and underscores and drops everything else.
type WordEngine struct{}

func NewWordEngine() *WordEngine {
	return &WordEngine{}
}

func (e *WordEngine) Tokenize(text string) (domain.Text, error) {
	return plainText(analyzer.SplitWords(text)), nil
}

func (e *WordEngine) Name() string { return EngineWord }

func plainText(words []string) domain.Text {
	out := make(domain.Text, len(words))
	for i, w := range words {
		out[i] = domain.NewToken(domain.PlainRecord(w))
	}
	return out
}
