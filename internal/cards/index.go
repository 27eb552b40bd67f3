package cards

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Index lists card image files in display order.
type Index struct {
	paths []string
}

// BuildIndex scans dir (non-recursively) for card images, sorted by file
// name. A missing directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := decoders[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			idx.paths = append(idx.paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(idx.paths)
	return idx
}

// Paths returns the indexed files in display order.
func (idx *Index) Paths() []string {
	return slices.Clone(idx.paths)
}

// Len returns the number of indexed cards.
func (idx *Index) Len() int {
	return len(idx.paths)
}
