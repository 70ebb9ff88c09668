// Package data provides small dataset helpers for training loops.
package data

import "math/rand"

// Perm returns a new slice holding a Fisher-Yates permutation of 0..n-1
// drawn from rng. A nil rng uses the shared math/rand source.
func Perm(n int, rng *rand.Rand) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	Shuffle(indices, rng)
	return indices
}

// Shuffle permutes indices in place with a Fisher-Yates shuffle drawn from
// rng. A nil rng uses the shared math/rand source.
func Shuffle(indices []int, rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
}
