package optim

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Momentum helps accelerate SGD in relevant directions and dampens
// oscillations.
type SGD struct {
	net        *nn.Network
	lr         float64
	momentum   float64
	velocities []*tensor.Tensor // per layer, nil until first Step (and for parameter-free layers)
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates an SGD optimizer bound to net.
func NewSGD(net *nn.Network, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		net:        net,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]*tensor.Tensor, net.Len()),
	}
}

// Step applies one gradient-descent update to every layer with parameters.
// grads must be indexed identically to the network's layer list; nil entries
// are skipped.
func (s *SGD) Step(grads []*tensor.Tensor) error {
	params := s.net.Parameters()
	if len(grads) != len(params) {
		return fmt.Errorf("optim: SGD.Step: %d gradient blobs for %d layers", len(grads), len(params))
	}

	updated := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		if p == nil || grads[i] == nil {
			continue
		}
		step := grads[i]
		if s.momentum != 0 {
			if s.velocities[i] == nil {
				s.velocities[i] = tensor.Zeros(p.Shape())
			}
			v := s.velocities[i]
			v.Scale(s.momentum)
			if err := v.AddInPlace(grads[i]); err != nil {
				return fmt.Errorf("optim: SGD.Step: layer %d: %w", i+1, err)
			}
			step = v
		}
		next := p.Clone()
		if err := next.AddScaled(-s.lr, step); err != nil {
			return fmt.Errorf("optim: SGD.Step: layer %d: %w", i+1, err)
		}
		updated[i] = next
	}
	return s.net.SetParameters(updated)
}

// LR returns the learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}
