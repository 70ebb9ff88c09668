package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermIsAPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := Perm(100, rng)
	require.Len(t, p, 100)

	seen := make([]bool, 100)
	for _, v := range p {
		require.False(t, seen[v], "duplicate index %d", v)
		seen[v] = true
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := Perm(50, rand.New(rand.NewSource(7)))
	b := Perm(50, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)

	c := Perm(50, rand.New(rand.NewSource(8)))
	assert.NotEqual(t, a, c)
}

func TestShuffleSmallSlices(t *testing.T) {
	assert.NotPanics(t, func() {
		Shuffle(nil, nil)
		Shuffle([]int{0}, nil)
	})

	one := []int{42}
	Shuffle(one, rand.New(rand.NewSource(1)))
	assert.Equal(t, []int{42}, one)
}
