package ports

import "go.trai.ch/fuse/internal/core/domain"

// CallableCache maps raw source text to the callable compiled from it.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CallableCache interface {
	// Get returns the callable stored for source.
	Get(source string) (domain.Callable, bool)

	// PutIfAbsent stores c unless source already has an entry.
	// It returns the stored callable and whether it was already present.
	PutIfAbsent(source string, c domain.Callable) (domain.Callable, bool)
}
