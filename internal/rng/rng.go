package rng

import "math/rand"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a deterministic generator, suitable for tests
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a generator seeded with seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Shuffle performs an in-place Fisher-Yates shuffle of ids
func Shuffle(g Generator, ids []int) {
	for j := len(ids) - 1; j > 0; j-- {
		i := g.Intn(j + 1)

		ids[i], ids[j] = ids[j], ids[i]
	}
}
