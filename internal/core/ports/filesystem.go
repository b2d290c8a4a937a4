package ports

import "io/fs"

// FileSystem abstracts the file reads done by the pipeline.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile returns the contents of path.
	ReadFile(path string) ([]byte, error)
}
