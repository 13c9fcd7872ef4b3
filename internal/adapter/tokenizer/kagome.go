package tokenizer

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
	"textprep/internal/port"
)

const (
	EngineKagomeIPA = "kagome-ipa"
	EngineKagomeUni = "kagome-uni"
)

func init() {
	Register(EngineKagomeIPA, func(cfg EngineConfig) (port.Engine, error) {
		return NewKagomeEngine(EngineKagomeIPA, ipa.Dict(), cfg.Mode)
	})
	Register(EngineKagomeUni, func(cfg EngineConfig) (port.Engine, error) {
		return NewKagomeEngine(EngineKagomeUni, uni.Dict(), cfg.Mode)
	})
}

// KagomeEngine runs Japanese morphological analysis and yields
// morphological-origin tokens.
type KagomeEngine struct {
	name string
	tok  *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
}

func NewKagomeEngine(name string, d *dict.Dict, mode string) (*KagomeEngine, error) {
	m, err := parseKagomeMode(mode)
	if err != nil {
		return nil, err
	}
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("failed to create kagome tokenizer: %w", err)
	}
	return &KagomeEngine{name: name, tok: t, mode: m}, nil
}

func parseKagomeMode(mode string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(mode) {
	case "", "normal":
		return tokenizer.Normal, nil
	case "search":
		return tokenizer.Search, nil
	case "extended":
		return tokenizer.Extended, nil
	}
	return tokenizer.Normal, fmt.Errorf("unknown kagome mode: %q", mode)
}

func (e *KagomeEngine) Tokenize(text string) (domain.Text, error) {
	ktoks := e.tok.Analyze(text, e.mode)
	out := make(domain.Text, 0, len(ktoks))
	for _, kt := range ktoks {
		if analyzer.IsBlank(kt.Surface) {
			continue
		}
		out = append(out, domain.NewToken(morphRecord(kt)))
	}
	return out, nil
}

func (e *KagomeEngine) Name() string { return e.name }

func morphRecord(kt tokenizer.Token) domain.MorphRecord {
	lemma, ok := kt.BaseForm()
	if !ok || lemma == "" || lemma == "*" {
		lemma = kt.Surface
	}
	reading, _ := kt.Reading()
	pron, _ := kt.Pronunciation()

	features := kt.Features()
	infType, infForm := "*", "*"
	if len(features) > 5 {
		infType = features[4]
		infForm = features[5]
	}

	pos := kt.POS()
	for len(pos) < 4 {
		pos = append(pos, "*")
	}

	return domain.MorphRecord{
		Text:           kt.Surface,
		Features:       strings.Join(pos[:4], domain.FeatureDelimiter),
		InflectionType: infType,
		InflectionForm: infForm,
		Lemma:          lemma,
		Reading:        reading,
		Pronunciation:  pron,
	}
}
