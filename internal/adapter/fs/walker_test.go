package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(f), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(abs, f)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestWalker_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.txt",
		"notes.md",
		"docs/b.txt",
		"docs/deep/c.txt",
		".git/config.txt",
		"vendor/x/d.txt",
	)

	w, err := NewWalker([]string{"**/*.txt"}, []string{"**/.git/**", "**/vendor/**"})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	got := relPaths(t, root, paths)
	want := []string{"a.txt", "docs/b.txt", "docs/deep/c.txt"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	for _, f := range files {
		if f.Size == 0 || f.ModTime == 0 {
			t.Errorf("missing stat info for %s", f.Path)
		}
	}
}

func TestWalker_DefaultIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "one.txt", "two.log")

	w, err := NewWalker(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestNewWalker_InvalidPattern(t *testing.T) {
	if _, err := NewWalker([]string{"[a-"}, nil); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestReader_ReadFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "hello.txt")

	text, err := Reader{}.ReadFile(filepath.Join(root, "hello.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello.txt" {
		t.Errorf("unexpected content %q", text)
	}
}
