package tokenizer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"textprep/internal/domain"
	"textprep/internal/port"
)

// DefaultWorkers uses every available CPU.
const DefaultWorkers = -1

// ProgressFunc is called after each slice completes with the number of
// documents tokenized so far.
type ProgressFunc func(done, total int)

// Tokenizer is the batch tokenization stage. Documents are split into
// contiguous, near-equal slices; each slice is tokenized by its own worker
// and the results are concatenated in slice order.
type Tokenizer struct {
	engine   port.Engine
	workers  int
	progress ProgressFunc
}

// New creates a Tokenizer. workers > 0 is used as-is; workers <= 0 means
// NumCPU + 1 + workers, so -1 uses every CPU.
func New(engine port.Engine, workers int) *Tokenizer {
	return &Tokenizer{
		engine:  engine,
		workers: workers,
	}
}

// WithProgress installs a progress callback. The callback is serialized.
func (t *Tokenizer) WithProgress(fn ProgressFunc) *Tokenizer {
	t.progress = fn
	return t
}

func (t *Tokenizer) Engine() port.Engine {
	return t.engine
}

// Tokenize segments a single document.
func (t *Tokenizer) Tokenize(text string) (domain.Text, error) {
	return t.engine.Tokenize(text)
}

// Fit is a no-op; tokenization learns nothing from the corpus.
func (t *Tokenizer) Fit(texts []string) error {
	return nil
}

// Transform tokenizes every document. Any worker failure aborts the whole
// batch and no partial result is returned.
func (t *Tokenizer) Transform(texts []string) (domain.Data, error) {
	workers, err := ResolveWorkers(t.workers)
	if err != nil {
		return nil, err
	}

	spans := evenSlices(len(texts), workers)
	if len(spans) == 0 {
		return domain.Data{}, nil
	}

	log.Debug().
		Str("engine", t.engine.Name()).
		Int("docs", len(texts)).
		Int("workers", workers).
		Int("slices", len(spans)).
		Msg("tokenizing batch")

	results := make([]domain.Data, len(spans))

	var mu sync.Mutex
	done := 0

	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(len(spans))
	for i, s := range spans {
		i, s := i, s
		p.Go(func() error {
			out := make(domain.Data, 0, s.end-s.start)
			for j := s.start; j < s.end; j++ {
				text, err := t.engine.Tokenize(texts[j])
				if err != nil {
					return fmt.Errorf("tokenize document %d: %w", j, err)
				}
				out = append(out, text)
			}
			results[i] = out

			if t.progress != nil {
				mu.Lock()
				done += len(out)
				t.progress(done, len(texts))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	data := make(domain.Data, 0, len(texts))
	for _, r := range results {
		data = append(data, r...)
	}
	return data, nil
}

// ResolveWorkers turns a configured worker count into a positive number.
func ResolveWorkers(n int) (int, error) {
	workers := n
	if n <= 0 {
		workers = runtime.NumCPU() + 1 + n
	}
	if workers <= 0 {
		return 0, fmt.Errorf("%w: %d resolves to %d", domain.ErrInvalidWorkers, n, workers)
	}
	return workers, nil
}

type span struct {
	start, end int
}

// evenSlices partitions [0, n) into at most packs contiguous spans. The first
// n%packs spans get one extra element; empty spans are dropped.
func evenSlices(n, packs int) []span {
	if n <= 0 || packs <= 0 {
		return nil
	}
	spans := make([]span, 0, packs)
	start := 0
	for i := 0; i < packs; i++ {
		size := n / packs
		if i < n%packs {
			size++
		}
		if size > 0 {
			spans = append(spans, span{start: start, end: start + size})
			start += size
		}
	}
	return spans
}
