package usecase

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"textprep/config"
	"textprep/internal/adapter/analyzer"
	"textprep/internal/adapter/vocabulary"
	"textprep/internal/domain"
	"textprep/internal/port"
)

// FitUseCase fits a pipeline's vocabulary on a directory corpus and
// persists the result.
type FitUseCase struct {
	store    port.VocabularyStore
	walker   port.FileWalker
	reader   port.FileReader
	pipeline *Pipeline
	mode     string
}

// NewFitUseCase creates a new fit use case. mode is config.ModeLine or
// config.ModeFile.
func NewFitUseCase(
	store port.VocabularyStore,
	walker port.FileWalker,
	reader port.FileReader,
	pipeline *Pipeline,
	mode string,
) *FitUseCase {
	return &FitUseCase{
		store:    store,
		walker:   walker,
		reader:   reader,
		pipeline: pipeline,
		mode:     mode,
	}
}

// FitResult contains the results of a fit operation.
type FitResult struct {
	Name      string
	Files     int
	Documents int
	Tokens    int
	VocabSize int
	Pruned    int
	Duration  time.Duration
	Errors    []string
}

// Fit reads every selected file under root, fits the vocabulary and stores
// it under name. Unreadable files are reported in FitResult.Errors and
// skipped; tokenization failures abort the fit.
func (u *FitUseCase) Fit(root, name string) (*FitResult, error) {
	start := time.Now()
	result := &FitResult{Name: name}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	var docs []domain.Document
	for _, file := range files {
		content, err := u.reader.ReadFile(file.Path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read %s: %v", file.Path, err))
			continue
		}
		result.Files++
		docs = append(docs, SplitDocuments(file, content, u.mode, len(docs))...)
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	data, err := u.pipeline.FitData(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to fit vocabulary: %w", err)
	}

	metas := make([]domain.DocumentMeta, len(docs))
	for i, d := range docs {
		metas[i] = domain.DocumentMeta{
			ID:        d.ID,
			Path:      d.Path,
			Line:      d.Line,
			ModTime:   d.ModTime,
			NumTokens: len(data[i]),
		}
		result.Tokens += len(data[i])
	}

	vocab := u.pipeline.Vocabulary()
	result.Documents = len(docs)
	result.VocabSize = vocab.Len()
	result.Pruned = vocab.Pruned()

	stats := domain.Stats{
		TotalDocs:   result.Documents,
		TotalTokens: result.Tokens,
		VocabSize:   result.VocabSize,
		PrunedWords: result.Pruned,
		Engine:      u.pipeline.Tokenizer().Engine().Name(),
		Normalizers: u.pipeline.NormalizerNames(),
	}
	if result.Documents > 0 {
		stats.AvgDocLen = float64(result.Tokens) / float64(result.Documents)
	}

	snapshot, err := json.Marshal(vocab)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vocabulary: %w", err)
	}
	if err := u.store.SaveVocabulary(name, snapshot, metas, stats); err != nil {
		return nil, fmt.Errorf("failed to store vocabulary: %w", err)
	}

	result.Duration = time.Since(start)
	log.Debug().
		Str("name", name).
		Int("files", result.Files).
		Int("docs", result.Documents).
		Int("vocab", result.VocabSize).
		Dur("took", result.Duration).
		Msg("corpus fitted")

	return result, nil
}

// SplitDocuments turns one file into documents. In line mode every non-blank
// line is a document; in file mode the whole file is one. IDs continue from
// offset so they follow corpus order.
func SplitDocuments(file port.FileInfo, content, mode string, offset int) []domain.Document {
	modTime := time.Unix(file.ModTime, 0).UTC()

	if mode == config.ModeFile {
		if analyzer.IsBlank(content) {
			return nil
		}
		return []domain.Document{{
			ID:      docID(offset),
			Path:    file.Path,
			ModTime: modTime,
			Content: content,
		}}
	}

	var docs []domain.Document
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if analyzer.IsBlank(line) {
			continue
		}
		docs = append(docs, domain.Document{
			ID:      docID(offset + len(docs)),
			Path:    file.Path,
			Line:    i + 1,
			ModTime: modTime,
			Content: line,
		})
	}
	return docs
}

// docID is zero padded so bolt's byte ordering matches corpus order.
func docID(seq int) string {
	return fmt.Sprintf("%08d", seq)
}

// LoadVocabulary restores a stored vocabulary.
func LoadVocabulary(store port.VocabularyStore, name string) (*vocabulary.Vocabulary, error) {
	data, err := store.LoadVocabulary(name)
	if err != nil {
		return nil, err
	}
	return vocabulary.Decode(data)
}
