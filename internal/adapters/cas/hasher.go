package cas

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pinfile/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash64 digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash returns the 16 character hex xxhash64 digest of data.
func (h *Hasher) Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
