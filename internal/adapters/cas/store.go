// Package cas implements content-addressed staging of compiled unit images.
package cas

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImageStore = (*Store)(nil)

// Store implements ports.ImageStore with one directory per image digest.
type Store struct {
	root   string
	hasher ports.Hasher
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string, hasher ports.Hasher) *Store {
	return &Store{root: root, hasher: hasher}
}

// Put writes image under its digest unless an image with that digest is already staged.
// The returned path is stable for identical content.
func (s *Store) Put(image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.Join(domain.ErrImageStoreFailed, os.ErrInvalid)
	}

	digest := s.hasher.HashBytes(image)
	filename := s.getFilename(digest)

	if info, err := os.Stat(filename); err == nil && info.Size() == int64(len(image)) {
		return filename, nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrImageStoreFailed, err), "path", filename)
	}

	if err := atomicWriteFile(filename, image, domain.ExecPerm); err != nil {
		return "", zerr.With(errors.Join(domain.ErrImageStoreFailed, err), "path", filename)
	}

	return filename, nil
}

func (s *Store) getFilename(digest string) string {
	return filepath.Join(s.root, digest[:2], digest, domain.UnitImageName)
}

// atomicWriteFile writes data to a temp file in the target directory and renames it into place.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, filename)
}
