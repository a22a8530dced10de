// Package fs provides file system adapters for locating manifests.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pinfile/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestFinder = (*Walker)(nil)

// Walker finds manifests by walking directory trees.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Find implements ports.ManifestFinder. A malformed pattern fails before
// any directory is read.
func (w *Walker) Find(roots, patterns []string) ([]string, error) {
	for _, pattern := range patterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid manifest pattern"), "pattern", pattern)
		}
	}

	var found []string
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", root)
		}
		for path, err := range w.WalkFiles(abs) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to search for manifests"), "path", root)
			}
			if matchAny(patterns, filepath.Base(path)) {
				found = append(found, path)
			}
		}
	}
	slices.Sort(found)
	return slices.Compact(found), nil
}

// WalkFiles yields every file below root. Hidden directories are skipped,
// root itself is always entered. A walk error is yielded once and ends the walk.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "__pycache__" || name == "node_modules"
}

// matchAny expects patterns already checked by Find.
func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
