package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unavailable is returned by Record accessors for attributes an origin does not carry.
const Unavailable = "-"

// Origin identifies which family of tokenizer produced a Record.
type Origin int

const (
	OriginPlain Origin = iota
	OriginLinguistic
	OriginMorphological
)

func (o Origin) String() string {
	switch o {
	case OriginPlain:
		return "plain"
	case OriginLinguistic:
		return "linguistic"
	case OriginMorphological:
		return "morphological"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// ParseOrigin is the inverse of Origin.String.
func ParseOrigin(s string) (Origin, error) {
	switch s {
	case "plain":
		return OriginPlain, nil
	case "linguistic":
		return OriginLinguistic, nil
	case "morphological":
		return OriginMorphological, nil
	}
	return 0, fmt.Errorf("unknown token origin: %q", s)
}

// Record is the immutable, origin-specific view of one segmented unit.
type Record interface {
	Origin() Origin
	Surface() string
	BaseForm() string
	PartOfSpeech() string
	FineTag() string
}

// PlainRecord is a bare string produced by a splitter with no linguistic analysis.
type PlainRecord string

func (r PlainRecord) Origin() Origin       { return OriginPlain }
func (r PlainRecord) Surface() string      { return string(r) }
func (r PlainRecord) BaseForm() string     { return Unavailable }
func (r PlainRecord) PartOfSpeech() string { return Unavailable }
func (r PlainRecord) FineTag() string      { return Unavailable }

// LinguisticRecord carries the output of a statistical language model:
// a coarse universal POS and a fine-grained treebank tag.
type LinguisticRecord struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
	Tag   string `json:"tag"`
}

func (r LinguisticRecord) Origin() Origin       { return OriginLinguistic }
func (r LinguisticRecord) Surface() string      { return r.Text }
func (r LinguisticRecord) BaseForm() string     { return r.Lemma }
func (r LinguisticRecord) PartOfSpeech() string { return r.POS }
func (r LinguisticRecord) FineTag() string      { return r.Tag }

// MorphRecord carries a Japanese morphological analysis. Features holds the
// comma-joined part-of-speech hierarchy (e.g. "名詞,数,*,*").
type MorphRecord struct {
	Text           string `json:"surface"`
	Features       string `json:"part_of_speech"`
	InflectionType string `json:"infl_type"`
	InflectionForm string `json:"infl_form"`
	Lemma          string `json:"base_form"`
	Reading        string `json:"reading"`
	Pronunciation  string `json:"phonetic"`
}

// FeatureDelimiter separates the levels of MorphRecord.Features.
const FeatureDelimiter = ","

func (r MorphRecord) Origin() Origin       { return OriginMorphological }
func (r MorphRecord) Surface() string      { return r.Text }
func (r MorphRecord) BaseForm() string     { return r.Lemma }
func (r MorphRecord) PartOfSpeech() string { return r.feature(0) }
func (r MorphRecord) FineTag() string      { return r.feature(1) }

func (r MorphRecord) feature(i int) string {
	if r.Features == "" {
		return Unavailable
	}
	parts := strings.Split(r.Features, FeatureDelimiter)
	if i >= len(parts) {
		return Unavailable
	}
	return parts[i]
}

// Token wraps a Record with an optional surface override installed by normalizers.
// A Token is owned by exactly one Text.
type Token struct {
	record      Record
	override    string
	hasOverride bool
}

func NewToken(r Record) *Token {
	return &Token{record: r}
}

// Surface returns the override if one was set, otherwise the record's surface.
func (t *Token) Surface() string {
	if t.hasOverride {
		return t.override
	}
	return t.record.Surface()
}

// SetSurface installs a permanent override. Last write wins.
func (t *Token) SetSurface(s string) {
	t.override = s
	t.hasOverride = true
}

// Overridden reports whether SetSurface has been called.
func (t *Token) Overridden() bool {
	return t.hasOverride
}

func (t *Token) BaseForm() string     { return t.record.BaseForm() }
func (t *Token) PartOfSpeech() string { return t.record.PartOfSpeech() }
func (t *Token) FineTag() string      { return t.record.FineTag() }
func (t *Token) Origin() Origin       { return t.record.Origin() }

// Record returns the wrapped record. NewToken(t.Record()) rebuilds the token
// without its override.
func (t *Token) Record() Record {
	return t.record
}

func (t *Token) String() string {
	return "<" + t.Surface() + ":" + t.PartOfSpeech() + ">"
}

type tokenJSON struct {
	Origin   string          `json:"origin"`
	Record   json.RawMessage `json:"record"`
	Override *string         `json:"override,omitempty"`
}

// MarshalJSON encodes the origin, the record and the override if any.
func (t *Token) MarshalJSON() ([]byte, error) {
	var raw []byte
	var err error
	switch r := t.record.(type) {
	case PlainRecord:
		raw, err = json.Marshal(string(r))
	default:
		raw, err = json.Marshal(r)
	}
	if err != nil {
		return nil, err
	}
	out := tokenJSON{Origin: t.Origin().String(), Record: raw}
	if t.hasOverride {
		s := t.override
		out.Override = &s
	}
	return json.Marshal(out)
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var in tokenJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	origin, err := ParseOrigin(in.Origin)
	if err != nil {
		return err
	}
	var rec Record
	switch origin {
	case OriginPlain:
		var s string
		if err := json.Unmarshal(in.Record, &s); err != nil {
			return fmt.Errorf("decode plain record: %w", err)
		}
		rec = PlainRecord(s)
	case OriginLinguistic:
		var r LinguisticRecord
		if err := json.Unmarshal(in.Record, &r); err != nil {
			return fmt.Errorf("decode linguistic record: %w", err)
		}
		rec = r
	case OriginMorphological:
		var r MorphRecord
		if err := json.Unmarshal(in.Record, &r); err != nil {
			return fmt.Errorf("decode morphological record: %w", err)
		}
		rec = r
	}
	*t = Token{record: rec}
	if in.Override != nil {
		t.SetSurface(*in.Override)
	}
	return nil
}

// Text is one processed document in document order.
type Text []*Token

// Data is an ordered corpus of Texts.
type Data []Text

// Surfaces returns the current surface of every token.
func (x Text) Surfaces() []string {
	out := make([]string, len(x))
	for i, t := range x {
		out[i] = t.Surface()
	}
	return out
}

// NewText wraps each record in a fresh Token.
func NewText(records []Record) Text {
	out := make(Text, len(records))
	for i, r := range records {
		out[i] = NewToken(r)
	}
	return out
}

// PlainText builds a Text of plain-origin tokens, mostly useful in tests.
func PlainText(words ...string) Text {
	out := make(Text, len(words))
	for i, w := range words {
		out[i] = NewToken(PlainRecord(w))
	}
	return out
}
