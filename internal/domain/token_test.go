package domain

import (
	"encoding/json"
	"testing"
)

func TestToken_PerOrigin(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		origin   Origin
		surface  string
		baseForm string
		pos      string
		tag      string
	}{
		{
			name:     "plain",
			record:   PlainRecord("cats"),
			origin:   OriginPlain,
			surface:  "cats",
			baseForm: Unavailable,
			pos:      Unavailable,
			tag:      Unavailable,
		},
		{
			name:     "linguistic",
			record:   LinguisticRecord{Text: "ran", Lemma: "run", POS: "VERB", Tag: "VBD"},
			origin:   OriginLinguistic,
			surface:  "ran",
			baseForm: "run",
			pos:      "VERB",
			tag:      "VBD",
		},
		{
			name:     "morphological",
			record:   MorphRecord{Text: "三", Features: "名詞,数,*,*", Lemma: "三"},
			origin:   OriginMorphological,
			surface:  "三",
			baseForm: "三",
			pos:      "名詞",
			tag:      "数",
		},
		{
			name:    "morphological single feature",
			record:  MorphRecord{Text: "ね", Features: "助詞"},
			origin:  OriginMorphological,
			surface: "ね",
			pos:     "助詞",
			tag:     Unavailable,
		},
		{
			name:    "morphological no features",
			record:  MorphRecord{Text: "x"},
			origin:  OriginMorphological,
			surface: "x",
			pos:     Unavailable,
			tag:     Unavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewToken(tt.record)
			if tok.Origin() != tt.origin {
				t.Errorf("Origin() = %v, want %v", tok.Origin(), tt.origin)
			}
			if tok.Surface() != tt.surface {
				t.Errorf("Surface() = %q, want %q", tok.Surface(), tt.surface)
			}
			if tok.BaseForm() != tt.baseForm {
				t.Errorf("BaseForm() = %q, want %q", tok.BaseForm(), tt.baseForm)
			}
			if tok.PartOfSpeech() != tt.pos {
				t.Errorf("PartOfSpeech() = %q, want %q", tok.PartOfSpeech(), tt.pos)
			}
			if tok.FineTag() != tt.tag {
				t.Errorf("FineTag() = %q, want %q", tok.FineTag(), tt.tag)
			}
		})
	}
}

func TestToken_SetSurface(t *testing.T) {
	tok := NewToken(PlainRecord("Hello"))
	if tok.Overridden() {
		t.Fatal("fresh token should not be overridden")
	}

	tok.SetSurface("hello")
	tok.SetSurface("hi")
	if tok.Surface() != "hi" {
		t.Errorf("Surface() = %q, want last write", tok.Surface())
	}

	// An empty override is still an override.
	tok.SetSurface("")
	if tok.Surface() != "" || !tok.Overridden() {
		t.Errorf("empty override not honored: %q", tok.Surface())
	}
	if tok.Record().Surface() != "Hello" {
		t.Error("override must not touch the record")
	}
}

func TestToken_String(t *testing.T) {
	tok := NewToken(LinguisticRecord{Text: "dog", POS: "NOUN"})
	if got := tok.String(); got != "<dog:NOUN>" {
		t.Errorf("String() = %q", got)
	}
}

func TestToken_JSON(t *testing.T) {
	records := []Record{
		PlainRecord("42"),
		LinguisticRecord{Text: "ran", Lemma: "run", POS: "VERB", Tag: "VBD"},
		MorphRecord{Text: "走っ", Features: "動詞,自立,*,*", InflectionType: "五段・ラ行", InflectionForm: "連用タ接続", Lemma: "走る", Reading: "ハシッ", Pronunciation: "ハシッ"},
	}

	for _, rec := range records {
		t.Run(rec.Origin().String(), func(t *testing.T) {
			tok := NewToken(rec)
			tok.SetSurface("normalized")

			raw, err := json.Marshal(tok)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var got Token
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Record() != rec {
				t.Errorf("record = %#v, want %#v", got.Record(), rec)
			}
			if got.Surface() != "normalized" {
				t.Errorf("override lost: %q", got.Surface())
			}

			rebuilt := NewToken(got.Record())
			if rebuilt.Overridden() || rebuilt.Surface() != rec.Surface() {
				t.Errorf("rebuild from record kept override: %q", rebuilt.Surface())
			}
		})
	}
}

func TestToken_UnmarshalUnknownOrigin(t *testing.T) {
	var tok Token
	if err := json.Unmarshal([]byte(`{"origin":"klingon","record":"x"}`), &tok); err == nil {
		t.Error("expected error for unknown origin")
	}
}

func TestParseOrigin(t *testing.T) {
	for _, o := range []Origin{OriginPlain, OriginLinguistic, OriginMorphological} {
		got, err := ParseOrigin(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrigin(%q) = %v, %v", o.String(), got, err)
		}
	}
}

func TestText_Surfaces(t *testing.T) {
	text := PlainText("a", "b", "c")
	text[1].SetSurface("B")
	got := text.Surfaces()
	want := []string{"a", "B", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Surfaces()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
