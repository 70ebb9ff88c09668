// Package optim implements optimization algorithms for training networks.
//
// Optimizers are external collaborators of the graph engine: they read the
// network's parameter blobs and the gradient blobs produced by
// autodiff.Context.Gradient, compute updated blobs, and write them back with
// Network.SetParameters. The engine itself never decides an update rule.
//
// Example usage:
//
//	ctx := autodiff.NewContext(net)
//	opt := optim.NewSGD(net, optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    out, _ := ctx.Evaluate(input, net.Len())
//	    grads, _ := ctx.Gradient(lossGradient(out, target))
//	    _ = opt.Step(grads)
//	}
package optim

import "github.com/gradnet-ml/gradnet/internal/tensor"

// Optimizer is the base interface for all optimization algorithms.
//
// Step takes one gradient blob per layer, indexed identically to the bound
// network's layer list (nil entries for parameter-free layers), and applies
// one parameter update.
type Optimizer interface {
	Step(grads []*tensor.Tensor) error

	// LR returns the current learning rate (for monitoring/scheduling).
	LR() float64
}
