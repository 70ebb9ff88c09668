// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for the training optimizers.
//
// Optimizers are external collaborators of the graph engine: they consume
// the gradient blobs produced by autodiff.Context.Gradient and write updated
// parameters back through Network.SetParameters.
package optim

import (
	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/optim"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer = optim.Optimizer

// SGD implements Stochastic Gradient Descent with optional momentum.
type SGD = optim.SGD

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer bound to net.
func NewSGD(net *nn.Network, config SGDConfig) *SGD {
	return optim.NewSGD(net, config)
}

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
type Adam = optim.Adam

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer bound to net.
func NewAdam(net *nn.Network, config AdamConfig) *Adam {
	return optim.NewAdam(net, config)
}
