package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"textprep/config"
	"textprep/internal/adapter/store"
	"textprep/internal/usecase"
)

// DefaultVocabulary is the store name used when --name is not given.
const DefaultVocabulary = "default"

// openStore opens the database under the root directory. Read-only commands
// fail early when nothing has been fitted yet.
func openStore(create bool) (*store.BoltStore, error) {
	dir := GetRootDir()
	dbPath := config.DBPath(dir)

	if create {
		if err := config.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", config.DirName, err)
		}
	} else if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no vocabulary found. Run 'textprep fit' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st, nil
}

// loadPipeline builds the configured pipeline and swaps in the stored
// vocabulary called name.
func loadPipeline(name string) (*usecase.Pipeline, error) {
	st, err := openStore(false)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if stale, reason, err := st.NeedsRebuild(GetConfig()); err == nil && stale {
		fmt.Fprintf(os.Stderr, "Warning: %s; re-run 'textprep fit' to refresh %q\n", reason, name)
	}

	vocab, err := usecase.LoadVocabulary(st, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary %q: %w", name, err)
	}

	p, err := usecase.BuildPipeline(GetConfig())
	if err != nil {
		return nil, err
	}
	p.SetVocabulary(vocab)
	return p, nil
}

// readInputs returns args joined as one document, or one document per
// non-empty stdin line when no args are given.
func readInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var lines []string
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}
