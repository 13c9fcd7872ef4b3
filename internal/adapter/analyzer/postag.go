package analyzer

// NumeralPOS is the universal tag for cardinal numbers.
const NumeralPOS = "NUM"

var pennToUniversal = map[string]string{
	"CC":    "CCONJ",
	"CD":    NumeralPOS,
	"DT":    "DET",
	"EX":    "PRON",
	"FW":    "X",
	"IN":    "ADP",
	"JJ":    "ADJ",
	"JJR":   "ADJ",
	"JJS":   "ADJ",
	"LS":    "X",
	"MD":    "AUX",
	"NN":    "NOUN",
	"NNS":   "NOUN",
	"NNP":   "PROPN",
	"NNPS":  "PROPN",
	"PDT":   "DET",
	"POS":   "PART",
	"PRP":   "PRON",
	"PRP$":  "PRON",
	"RB":    "ADV",
	"RBR":   "ADV",
	"RBS":   "ADV",
	"RP":    "ADP",
	"SYM":   "SYM",
	"TO":    "PART",
	"UH":    "INTJ",
	"VB":    "VERB",
	"VBD":   "VERB",
	"VBG":   "VERB",
	"VBN":   "VERB",
	"VBP":   "VERB",
	"VBZ":   "VERB",
	"WDT":   "DET",
	"WP":    "PRON",
	"WP$":   "PRON",
	"WRB":   "ADV",
	"$":     "SYM",
	"#":     "SYM",
	".":     "PUNCT",
	",":     "PUNCT",
	":":     "PUNCT",
	"``":    "PUNCT",
	"''":    "PUNCT",
	"(":     "PUNCT",
	")":     "PUNCT",
	"-LRB-": "PUNCT",
	"-RRB-": "PUNCT",
	"NFP":   "PUNCT",
}

// UniversalPOS maps a Penn Treebank tag to its universal part of speech.
// Unknown tags map to "X".
func UniversalPOS(pennTag string) string {
	if pos, ok := pennToUniversal[pennTag]; ok {
		return pos
	}
	return "X"
}
