package vocabulary

import (
	"encoding/json"
	"fmt"
)

const snapshotVersion = 1

// Entry is one persisted vocabulary word.
type Entry struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
	DF   int    `json:"df,omitempty"`
}

// Snapshot is the serializable state of a fitted Vocabulary.
type Snapshot struct {
	Version int     `json:"version"`
	Options Options `json:"options"`
	Entries []Entry `json:"entries"`
	NumDocs int     `json:"num_docs"`
	NextID  int     `json:"next_id"`
	// PrunedDF keeps the document frequency of words the last Fit dropped.
	PrunedDF map[string]int `json:"pruned_df,omitempty"`
}

// Snapshot captures the vocabulary in ID order.
func (v *Vocabulary) Snapshot() Snapshot {
	ids := v.IDs()
	entries := make([]Entry, len(ids))
	for i, id := range ids {
		w := v.idToWord[id]
		entries[i] = Entry{ID: id, Word: w, DF: v.df[w]}
	}
	var pruned map[string]int
	for w, df := range v.df {
		if v.Contains(w) {
			continue
		}
		if pruned == nil {
			pruned = make(map[string]int)
		}
		pruned[w] = df
	}
	return Snapshot{
		Version:  snapshotVersion,
		Options:  v.opts,
		Entries:  entries,
		NumDocs:  v.numDocs,
		NextID:   v.nextID,
		PrunedDF: pruned,
	}
}

// FromSnapshot rebuilds a vocabulary. Duplicate words or IDs are rejected so
// the two mappings stay exact inverses.
func FromSnapshot(s Snapshot) (*Vocabulary, error) {
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported vocabulary snapshot version %d", s.Version)
	}
	v, err := New(s.Options)
	if err != nil {
		return nil, err
	}

	// New already placed the reserved symbols; the snapshot must agree.
	reservedIDs := make(map[string]int, len(v.reserved))
	for w, id := range v.wordToID {
		reservedIDs[w] = id
	}
	v.wordToID = make(map[string]int, len(s.Entries))
	v.idToWord = make(map[int]string, len(s.Entries))

	maxID := -1
	for _, e := range s.Entries {
		if e.ID < 0 {
			return nil, fmt.Errorf("negative id %d for %q", e.ID, e.Word)
		}
		if _, dup := v.wordToID[e.Word]; dup {
			return nil, fmt.Errorf("duplicate word %q in snapshot", e.Word)
		}
		if _, dup := v.idToWord[e.ID]; dup {
			return nil, fmt.Errorf("duplicate id %d in snapshot", e.ID)
		}
		if want, ok := reservedIDs[e.Word]; ok && want != e.ID {
			return nil, fmt.Errorf("reserved symbol %q has id %d, want %d", e.Word, e.ID, want)
		}
		v.wordToID[e.Word] = e.ID
		v.idToWord[e.ID] = e.Word
		if e.DF > 0 {
			v.df[e.Word] = e.DF
		}
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	for w := range reservedIDs {
		if _, ok := v.wordToID[w]; !ok {
			return nil, fmt.Errorf("reserved symbol %q missing from snapshot", w)
		}
	}

	for w, df := range s.PrunedDF {
		if _, kept := v.wordToID[w]; kept {
			return nil, fmt.Errorf("word %q is both kept and pruned in snapshot", w)
		}
		if df > 0 {
			v.df[w] = df
		}
	}

	v.numDocs = s.NumDocs
	v.nextID = s.NextID
	if v.nextID <= maxID {
		v.nextID = maxID + 1
	}
	return v, nil
}

// MarshalJSON encodes the vocabulary as its snapshot.
func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Snapshot())
}

// Decode parses a JSON snapshot produced by MarshalJSON.
func Decode(data []byte) (*Vocabulary, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	return FromSnapshot(s)
}
