package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Threshold is a document-frequency bound given either as an absolute
// document count or as a fraction of the corpus size.
type Threshold struct {
	count    int
	fraction float64
	relative bool
}

// Count returns an absolute threshold.
func Count(n int) Threshold {
	return Threshold{count: n}
}

// Fraction returns a threshold relative to the corpus size.
func Fraction(f float64) Threshold {
	return Threshold{fraction: f, relative: true}
}

func (t Threshold) IsFraction() bool { return t.relative }

// Limit resolves the threshold against a corpus of numDocs documents.
func (t Threshold) Limit(numDocs int) float64 {
	if t.relative {
		return t.fraction * float64(numDocs)
	}
	return float64(t.count)
}

// Validate rejects negative counts and fractions outside [0, 1].
func (t Threshold) Validate() error {
	if t.relative {
		if t.fraction < 0 || t.fraction > 1 {
			return fmt.Errorf("%w: fraction %v not in [0,1]", ErrInvalidThreshold, t.fraction)
		}
		return nil
	}
	if t.count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidThreshold, t.count)
	}
	return nil
}

func (t Threshold) String() string {
	if t.relative {
		return formatFraction(t.fraction)
	}
	return strconv.Itoa(t.count)
}

// ParseThreshold reads "3" as a count and "0.5" or "1.0" as a fraction.
func ParseThreshold(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		t := Count(n)
		return t, t.Validate()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	t := Fraction(f)
	return t, t.Validate()
}

// formatFraction always keeps a decimal point so the value reads back as a fraction.
func formatFraction(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (t *Threshold) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a number at line %d", ErrInvalidThreshold, value.Line)
	}
	switch value.Tag {
	case "!!int":
		var n int
		if err := value.Decode(&n); err != nil {
			return err
		}
		*t = Count(n)
	case "!!float":
		var f float64
		if err := value.Decode(&f); err != nil {
			return err
		}
		*t = Fraction(f)
	default:
		parsed, err := ParseThreshold(value.Value)
		if err != nil {
			return err
		}
		*t = parsed
	}
	return t.Validate()
}

func (t Threshold) MarshalYAML() (interface{}, error) {
	if t.relative {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFraction(t.fraction)}, nil
	}
	return t.count, nil
}

type thresholdJSON struct {
	Count    *int     `json:"count,omitempty"`
	Fraction *float64 `json:"fraction,omitempty"`
}

func (t Threshold) MarshalJSON() ([]byte, error) {
	var out thresholdJSON
	if t.relative {
		f := t.fraction
		out.Fraction = &f
	} else {
		n := t.count
		out.Count = &n
	}
	return json.Marshal(out)
}

func (t *Threshold) UnmarshalJSON(data []byte) error {
	var in thresholdJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Fraction != nil:
		*t = Fraction(*in.Fraction)
	case in.Count != nil:
		*t = Count(*in.Count)
	default:
		return fmt.Errorf("%w: empty threshold", ErrInvalidThreshold)
	}
	return t.Validate()
}
