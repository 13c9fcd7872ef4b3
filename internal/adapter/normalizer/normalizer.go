// Package normalizer rewrites token surfaces in place. Every normalizer is
// corpus independent, so the pipeline stage built around one has a no-op Fit.
package normalizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"textprep/internal/adapter/analyzer"
	"textprep/internal/domain"
	"textprep/internal/port"
)

// Lowercase folds every surface to lower case without locale rules.
type Lowercase struct{}

func NewLowercase() *Lowercase {
	return &Lowercase{}
}

func (n *Lowercase) Apply(text domain.Text) domain.Text {
	caser := cases.Lower(language.Und)
	for _, t := range text {
		t.SetSurface(caser.String(t.Surface()))
	}
	return text
}

func (n *Lowercase) Name() string { return "lower" }

// Stem replaces every surface with its stem.
type Stem struct {
	stemmer port.Stemmer
	name    string
}

func NewStem(name string, stemmer port.Stemmer) *Stem {
	return &Stem{stemmer: stemmer, name: name}
}

func NewPorter() *Stem {
	return NewStem("porter", analyzer.NewPorterStemmer())
}

func (n *Stem) Apply(text domain.Text) domain.Text {
	for _, t := range text {
		t.SetSurface(n.stemmer.Stem(t.Surface()))
	}
	return text
}

func (n *Stem) Name() string { return n.name }

// BaseForm replaces every surface with the token's base form. Tokens whose
// origin has no base form become domain.Unavailable ("-").
type BaseForm struct{}

func NewBaseForm() *BaseForm {
	return &BaseForm{}
}

func (n *BaseForm) Apply(text domain.Text) domain.Text {
	for _, t := range text {
		t.SetSurface(t.BaseForm())
	}
	return text
}

func (n *BaseForm) Name() string { return "base_form" }

// DefaultPlaceholder replaces numerals unless configured otherwise.
const DefaultPlaceholder = "0"

const morphNounPOS = "名詞"

// morphNumeralTags are the numeral subcategories of the IPA and UniDic dictionaries.
var morphNumeralTags = map[string]struct{}{
	"数":  {},
	"数詞": {},
}

// Number collapses numerals to a placeholder. What counts as a numeral
// depends on the token origin.
type Number struct {
	Placeholder string
}

func NewNumber(placeholder string) *Number {
	return &Number{Placeholder: placeholder}
}

func (n *Number) Apply(text domain.Text) domain.Text {
	for _, t := range text {
		if IsNumeral(t) {
			t.SetSurface(n.Placeholder)
		}
	}
	return text
}

func (n *Number) Name() string { return "number" }

// IsNumeral applies the per-origin numeral test.
func IsNumeral(t *domain.Token) bool {
	switch t.Origin() {
	case domain.OriginLinguistic:
		return t.PartOfSpeech() == analyzer.NumeralPOS
	case domain.OriginMorphological:
		if t.PartOfSpeech() != morphNounPOS {
			return false
		}
		_, ok := morphNumeralTags[t.FineTag()]
		return ok
	default:
		return analyzer.IsNumeral(t.Surface())
	}
}

// Unicode applies a Unicode normalization form to every surface.
type Unicode struct {
	form norm.Form
}

func NewNFKC() *Unicode {
	return &Unicode{form: norm.NFKC}
}

func (n *Unicode) Apply(text domain.Text) domain.Text {
	for _, t := range text {
		t.SetSurface(n.form.String(t.Surface()))
	}
	return text
}

func (n *Unicode) Name() string { return "nfkc" }
