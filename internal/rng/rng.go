package rng

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// Generator provides a simple random number. The game engine draws
// replenishment cards through this interface so tests can inject a
// deterministic source.
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Intn returns a random number from 0 < n
func (c Crypto) Intn(n int) int {
	b, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}

// NewSeeded returns a math/rand backed generator with a fixed seed.
// This should only be used by tests.
func NewSeeded(seed int64) Generator {
	return rand.New(rand.NewSource(seed))
}
