package optim

import (
	"fmt"
	"math"

	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum: it maintains exponential
// moving averages of gradients (first moment) and squared gradients (second
// moment), with bias correction to compensate for initialization at zero.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²
//	m_hat = m_t / (1 - beta1^t)
//	v_hat = v_t / (1 - beta2^t)
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	net   *nn.Network
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int              // timestep for bias correction
	m     []*tensor.Tensor // first moment estimates, per layer
	v     []*tensor.Tensor // second moment estimates, per layer
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for the running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates an Adam optimizer bound to net.
func NewAdam(net *nn.Network, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float64{} {
		config.Betas = [2]float64{0.9, 0.999}
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		net:   net,
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make([]*tensor.Tensor, net.Len()),
		v:     make([]*tensor.Tensor, net.Len()),
	}
}

// Step applies one Adam update to every layer with parameters. grads must be
// indexed identically to the network's layer list; nil entries are skipped.
func (a *Adam) Step(grads []*tensor.Tensor) error {
	params := a.net.Parameters()
	if len(grads) != len(params) {
		return fmt.Errorf("optim: Adam.Step: %d gradient blobs for %d layers", len(grads), len(params))
	}
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	updated := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		if p == nil || grads[i] == nil {
			continue
		}
		if !p.Shape().Equal(grads[i].Shape()) {
			return fmt.Errorf("optim: Adam.Step: layer %d: %w", i+1,
				&tensor.ShapeError{Op: "Adam.Step", Left: p.Shape(), Right: grads[i].Shape()})
		}
		if a.m[i] == nil {
			a.m[i] = tensor.Zeros(p.Shape())
			a.v[i] = tensor.Zeros(p.Shape())
		}

		md, vd, gd := a.m[i].Data(), a.v[i].Data(), grads[i].Data()
		next := p.Clone()
		nd := next.Data()
		for j := range gd {
			md[j] = a.beta1*md[j] + (1-a.beta1)*gd[j]
			vd[j] = a.beta2*vd[j] + (1-a.beta2)*gd[j]*gd[j]
			mHat := md[j] / bc1
			vHat := vd[j] / bc2
			nd[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
		updated[i] = next
	}
	return a.net.SetParameters(updated)
}

// LR returns the learning rate.
func (a *Adam) LR() float64 {
	return a.lr
}
