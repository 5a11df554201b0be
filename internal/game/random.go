package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Picker produces integers uniformly distributed in an inclusive range
type Picker interface {
	Pick(min, max int) int
}

// RandomPicker is a Picker backed by math/rand, safe for concurrent use
type RandomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPicker creates a picker seeded with seed
func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns an integer in [min, max]. It panics when min > max.
func (p *RandomPicker) Pick(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("game: invalid range [%d, %d]", min, max))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return min + p.rng.Intn(max-min+1)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
