// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the caching evaluation context and the
// reverse-mode gradient engine (backpropagation) for a Network DAG.
//
// Example:
//
//	net := nn.NewSequential(
//	    nn.NewRectified(2, 16),
//	    nn.NewLinear(16, 1),
//	)
//
//	ctx := autodiff.NewContext(net)
//	out, _ := ctx.Evaluate(tensor.Vector(1, 0), net.Len())
//	grads, _ := ctx.Gradient(tensor.Vector(1)) // seed dJ/dy at the output
//	// grads[i] is dJ/dθ for layer i+1; ctx.InputGradient() is dJ/dx.
package autodiff

import (
	"github.com/gradnet-ml/gradnet/internal/autodiff"
	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Context caches, for one input, the forward outputs and gradient
// accumulators of every layer in a Network.
type Context = autodiff.Context

// NewContext creates an empty context bound to net.
func NewContext(net *nn.Network) *Context {
	return autodiff.NewContext(net)
}
