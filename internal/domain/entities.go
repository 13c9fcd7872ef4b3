package domain

import "time"

// Document is one raw corpus entry before tokenization.
type Document struct {
	ID      string
	Path    string
	Line    int
	ModTime time.Time
	Content string
}

type DocumentMeta struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Line      int       `json:"line,omitempty"`
	ModTime   time.Time `json:"mod_time"`
	NumTokens int       `json:"num_tokens"`
}

type Stats struct {
	TotalDocs   int      `json:"total_docs"`
	TotalTokens int      `json:"total_tokens"`
	AvgDocLen   float64  `json:"avg_doc_len"`
	VocabSize   int      `json:"vocab_size"`
	PrunedWords int      `json:"pruned_words"`
	Engine      string   `json:"engine"`
	Normalizers []string `json:"normalizers,omitempty"`
}
