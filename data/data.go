// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides the public API for the dataset helpers used by
// training loops.
package data

import (
	"math/rand"

	"github.com/gradnet-ml/gradnet/internal/data"
)

// Perm returns a Fisher-Yates permutation of 0..n-1 drawn from rng.
func Perm(n int, rng *rand.Rand) []int {
	return data.Perm(n, rng)
}

// Shuffle permutes indices in place with a Fisher-Yates shuffle.
func Shuffle(indices []int, rng *rand.Rand) {
	data.Shuffle(indices, rng)
}
