package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"textprep/config"
	"textprep/internal/adapter/cache"
	"textprep/internal/adapter/fs"
	"textprep/internal/adapter/memstore"
	"textprep/internal/adapter/tokenizer"
	"textprep/internal/usecase"
)

func main() {
	corpusPath := flag.String("corpus", ".", "Path to corpus directory")
	engineName := flag.String("engine", "", "Tokenizer engine (default from config)")
	workerList := flag.String("workers", "1,2,4,-1", "Comma-separated worker counts to compare")
	repeat := flag.Int("repeat", 3, "Runs per worker count")
	flag.Parse()

	if *repeat < 1 {
		*repeat = 1
	}

	cfg, err := config.LoadFromDir(*corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *engineName != "" {
		cfg.Tokenizer.Engine = *engineName
	}

	workers, err := parseWorkers(*workerList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	texts, err := loadCorpus(cfg, *corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(texts) == 0 {
		fmt.Println("Usage: go run cmd/benchmark/main.go -corpus ./data -engine word -workers 1,4,-1")
		fmt.Println("\nNo documents found under", *corpusPath)
		os.Exit(1)
	}

	engine, err := usecase.BuildEngine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("BATCH TOKENIZATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Engine:    %s\n", engine.Name())
	fmt.Printf("Documents: %d\n", len(texts))
	fmt.Printf("Repeat:    %d\n", *repeat)
	fmt.Println()
	fmt.Printf("%-10s %-10s %12s %14s %10s\n", "WORKERS", "RESOLVED", "BEST", "DOCS/SEC", "SPEEDUP")
	fmt.Println(strings.Repeat("-", 70))

	var baseline time.Duration
	for _, w := range workers {
		resolved, err := tokenizer.ResolveWorkers(w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping workers=%d: %v\n", w, err)
			continue
		}

		tok := tokenizer.New(engine, w)
		best := time.Duration(0)
		for i := 0; i < *repeat; i++ {
			start := time.Now()
			_, err := tok.Transform(texts)
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Tokenization error: %v\n", err)
				os.Exit(1)
			}
			if best == 0 || elapsed < best {
				best = elapsed
			}
		}

		if baseline == 0 {
			baseline = best
		}
		rate := float64(len(texts)) / best.Seconds()
		speedup := float64(baseline) / float64(best)
		fmt.Printf("%-10d %-10d %12s %14.0f %9.2fx\n", w, resolved, best.Round(time.Microsecond), rate, speedup)
	}

	fmt.Println(strings.Repeat("=", 70))

	if cached, ok := engine.(*cache.CachedEngine); ok {
		hits, misses := cached.Cache().Stats()
		fmt.Printf("Record cache: %d hits, %d misses, %d entries\n", hits, misses, cached.Cache().Size())
	}

	if err := benchmarkFit(cfg, *corpusPath); err != nil {
		fmt.Fprintf(os.Stderr, "Fit error: %v\n", err)
		os.Exit(1)
	}
}

// benchmarkFit times a full fit against an in-memory store so disk writes
// stay out of the measurement.
func benchmarkFit(cfg *config.Config, root string) error {
	walker, err := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	if err != nil {
		return err
	}
	pipeline, err := usecase.BuildPipeline(cfg)
	if err != nil {
		return err
	}
	st := memstore.NewMemoryStore()
	defer st.Close()

	result, err := usecase.NewFitUseCase(st, walker, fs.Reader{}, pipeline, cfg.Corpus.Mode).Fit(root, "benchmark")
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("FIT (in-memory store)")
	fmt.Printf("Tokens:    %d\n", result.Tokens)
	fmt.Printf("Entries:   %d (pruned %d)\n", result.VocabSize, result.Pruned)
	fmt.Printf("Took:      %s\n", result.Duration.Round(time.Microsecond))
	return nil
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid worker count %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func loadCorpus(cfg *config.Config, root string) ([]string, error) {
	walker, err := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	if err != nil {
		return nil, err
	}
	files, err := walker.Walk(root)
	if err != nil {
		return nil, err
	}

	var texts []string
	reader := fs.Reader{}
	for _, file := range files {
		content, err := reader.ReadFile(file.Path)
		if err != nil {
			continue
		}
		for _, doc := range usecase.SplitDocuments(file, content, cfg.Corpus.Mode, len(texts)) {
			texts = append(texts, doc.Content)
		}
	}
	return texts, nil
}
