package testutil

import (
	"io"
	"math/rand"
)

// NewSeededReader returns a deterministic byte source for reproducible key generation in tests.
// It must never be used outside of tests.
func NewSeededReader(seed int64) io.Reader {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic on purpose
}
