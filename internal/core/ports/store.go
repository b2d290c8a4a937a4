package ports

// ImageStore stages compiled unit images on disk, addressed by content.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ImageStore interface {
	// Put writes image if absent and returns its path.
	Put(image []byte) (string, error)
}
