package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"textprep/internal/port"
)

// Walker selects corpus files under a root with doublestar include and
// exclude patterns matched against slash-separated relative paths.
type Walker struct {
	includes []string
	excludes []string
}

// NewWalker rejects malformed patterns up front so a typo does not silently
// select nothing.
func NewWalker(includes, excludes []string) (*Walker, error) {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	for _, p := range append(append([]string{}, includes...), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}, nil
}

// Walk returns matching regular files in lexical order.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			info, err := d.Info()
			if err != nil {
				return err
			}
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}
	return false
}

// Reader reads corpus files from the local filesystem.
type Reader struct{}

func (Reader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	_ port.FileWalker = (*Walker)(nil)
	_ port.FileReader = Reader{}
)
