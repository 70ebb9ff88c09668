package nn

import (
	"math"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Softmax is a stateless, parameter-free layer mapping a real vector to a
// probability vector:
//
//	y_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// The maximum is subtracted before exponentiating for numerical stability
// against overflow; the result is unchanged because softmax is
// shift-invariant.
type Softmax struct{}

// NewSoftmax creates a Softmax layer.
func NewSoftmax() *Softmax {
	return &Softmax{}
}

// Forward computes the stabilized softmax of its single input vector.
func (s *Softmax) Forward(inputs ...*tensor.Tensor) (*tensor.Tensor, error) {
	x, err := singleInput("Softmax", inputs)
	if err != nil {
		return nil, err
	}
	if len(x.Shape()) != 1 {
		return nil, &tensor.ShapeError{Op: "Softmax.Forward", Left: x.Shape(), Right: tensor.Shape{x.NumElements()}}
	}
	v, sum := expShifted(x)
	y := tensor.Zeros(x.Shape())
	yd := y.Data()
	for i := range v {
		yd[i] = v[i] / sum
	}
	return y, nil
}

// Backward computes the Jacobian-vector product in closed form, without
// materializing the full Jacobian:
//
//	dJ/dx = -(dJ/dy·v / s²)·v + (dJ/dy ⊙ v)/s
//
// where v = exp(x - max(x)) and s = Σv.
func (s *Softmax) Backward(inputs []*tensor.Tensor, output, upstream *tensor.Tensor) ([]*tensor.Tensor, *tensor.Tensor, error) {
	x, err := singleInput("Softmax", inputs)
	if err != nil {
		return nil, nil, err
	}
	if !x.Shape().Equal(upstream.Shape()) {
		return nil, nil, &tensor.ShapeError{Op: "Softmax.Backward", Left: x.Shape(), Right: upstream.Shape()}
	}
	v, sum := expShifted(x)
	gd := upstream.Data()

	dot := 0.0
	for i := range v {
		dot += gd[i] * v[i]
	}

	dx := tensor.Zeros(x.Shape())
	dxd := dx.Data()
	scale := dot / (sum * sum)
	for i := range v {
		dxd[i] = -scale*v[i] + gd[i]*v[i]/sum
	}
	return []*tensor.Tensor{dx}, nil, nil
}

// expShifted returns exp(x - max(x)) element-wise and its sum.
func expShifted(x *tensor.Tensor) (v []float64, sum float64) {
	xd := x.Data()
	max := math.Inf(-1)
	for _, xi := range xd {
		if xi > max {
			max = xi
		}
	}
	v = make([]float64, len(xd))
	for i, xi := range xd {
		v[i] = math.Exp(xi - max)
		sum += v[i]
	}
	return v, sum
}

// Parameters returns nil: Softmax is parameter-free.
func (s *Softmax) Parameters() *tensor.Tensor {
	return nil
}

// SetParameters rejects any parameter blob: Softmax is parameter-free.
func (s *Softmax) SetParameters(p *tensor.Tensor) error {
	if p == nil || p.NumElements() == 0 {
		return nil
	}
	return &tensor.ShapeError{Op: "Softmax.SetParameters", Left: nil, Right: p.Shape()}
}

// ParamShape returns nil.
func (s *Softmax) ParamShape() tensor.Shape {
	return nil
}

// Arity returns 1.
func (s *Softmax) Arity() int {
	return 1
}
