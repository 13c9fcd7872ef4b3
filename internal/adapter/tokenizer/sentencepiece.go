package tokenizer

import (
	"errors"
	"fmt"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"

	"textprep/internal/domain"
	"textprep/internal/port"
)

const EngineSentencePiece = "sentencepiece"

// ErrEmptyModelPath is returned when the sentencepiece engine has no model.
var ErrEmptyModelPath = errors.New("sentencepiece model path must not be empty")

func init() {
	Register(EngineSentencePiece, func(cfg EngineConfig) (port.Engine, error) {
		return NewSentencePieceEngine(cfg.ModelPath, cfg.Lowercase)
	})
}

// SentencePieceEngine segments text into subword pieces with a UNIGRAM model.
// Pieces carry no linguistic analysis, so they are plain-origin tokens.
type SentencePieceEngine struct {
	proc gosp.Sentencepiece
}

func NewSentencePieceEngine(modelPath string, lowercase bool) (*SentencePieceEngine, error) {
	if modelPath == "" {
		return nil, ErrEmptyModelPath
	}
	proc, err := gosp.NewSentencepieceFromFile(modelPath, lowercase)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}
	return &SentencePieceEngine{proc: proc}, nil
}

func (e *SentencePieceEngine) Tokenize(text string) (domain.Text, error) {
	if text == "" {
		return domain.Text{}, nil
	}
	pieces := e.proc.Tokenize(text)
	out := make(domain.Text, len(pieces))
	for i, p := range pieces {
		out[i] = domain.NewToken(domain.PlainRecord(p.Text))
	}
	return out, nil
}

func (e *SentencePieceEngine) Name() string { return EngineSentencePiece }
