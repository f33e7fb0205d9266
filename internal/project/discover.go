package project

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// sourcePatterns are the glob patterns that select source files under
// a source root.
var sourcePatterns = []string{"**/*.pxl", "**/*.jsonl"}

// discoverSourceFiles finds every source file under root, returning
// absolute paths sorted and deduplicated for a deterministic load
// order.
func discoverSourceFiles(root string) ([]string, error) {
	var files []string
	fsys := os.DirFS(root)
	for _, pattern := range sourcePatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
		}
	}
	sort.Strings(files)
	files = dedupSorted(files)
	return files, nil
}

func dedupSorted(items []string) []string {
	if len(items) < 2 {
		return items
	}
	out := items[:1]
	for _, item := range items[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return out
}
