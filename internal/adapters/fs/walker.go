// Package fs provides file system adapters for reading, walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the slash-separated paths of all regular files in fsys,
// skipping VCS metadata and entries whose base name matches one of the ignore patterns.
// Unreadable subtrees are skipped.
func (w *Walker) WalkFiles(fsys fs.FS, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if skip, action := w.shouldSkip(p, d, ignores); skip {
				return action
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			if !yield(p) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether the entry is excluded, and the walk action to return for it.
func (w *Walker) shouldSkip(p string, d fs.DirEntry, ignores []string) (bool, error) {
	if p == "." {
		return false, nil
	}
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, fs.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := path.Match(ignore, name); matched {
			if d.IsDir() {
				return true, fs.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
