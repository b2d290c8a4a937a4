package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash content digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashBytes returns the hex XXHash of data.
func (h *Hasher) HashBytes(data []byte) string {
	return formatDigest(xxhash.Sum64(data))
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
