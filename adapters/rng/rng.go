package rng

import (
	"context"
	"math/rand"
)

// Adapter implements ports.RNGPort with named, seeded streams. It holds
// no state of its own: every stream is derived from the caller's seed
// plus the operation name, never from process entropy, so a run can be
// replayed exactly.
type Adapter struct{}

// New creates the process RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
