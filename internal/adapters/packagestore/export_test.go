package packagestore

import (
	"io/fs"

	fsadapter "go.trai.ch/fuse/internal/adapters/fs"
)

// NewStoreWithFS exposes newStoreWithFS for testing.
func NewStoreWithFS(root string, fsys fs.FS, walker *fsadapter.Walker) *Store {
	return newStoreWithFS(root, fsys, walker)
}
