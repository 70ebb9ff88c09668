package nn

import (
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Rectified is an affine layer followed by an element-wise rectifier:
//
//	y = max(0, W·x + b)
//
// Parameters are packed [W | b] exactly like Linear.
//
// Backward masks the upstream gradient to zero wherever the cached forward
// output is exactly zero before applying the affine chain-rule step: no
// gradient flows through an inactive unit, and the non-differentiable point
// at exactly zero is treated as inactive.
type Rectified struct {
	in      int
	out     int
	weights *tensor.Tensor // [out, in+1], last column is the bias
}

// NewRectified creates a Rectified layer with Glorot-initialized weights and
// zero biases.
func NewRectified(inFeatures, outFeatures int) *Rectified {
	return &Rectified{
		in:      inFeatures,
		out:     outFeatures,
		weights: glorotPacked(inFeatures, outFeatures),
	}
}

// NewRectifiedFromWeights creates a Rectified layer from an explicit
// [out, in] weight matrix and [out] bias vector.
func NewRectifiedFromWeights(weight, bias *tensor.Tensor) (*Rectified, error) {
	w, in, out, err := packWeights(weight, bias)
	if err != nil {
		return nil, err
	}
	return &Rectified{in: in, out: out, weights: w}, nil
}

// Forward computes y = max(0, W·x + b).
func (r *Rectified) Forward(inputs ...*tensor.Tensor) (*tensor.Tensor, error) {
	x, err := singleInput("Rectified", inputs)
	if err != nil {
		return nil, err
	}
	y, err := affineForward(r.weights, x)
	if err != nil {
		return nil, err
	}
	yd := y.Data()
	for i, v := range yd {
		if v < 0 {
			yd[i] = 0
		}
	}
	return y, nil
}

// Backward first zeroes the upstream gradient at every position where the
// cached output is zero, then applies the same algebra as Linear with the
// masked gradient.
func (r *Rectified) Backward(inputs []*tensor.Tensor, output, upstream *tensor.Tensor) ([]*tensor.Tensor, *tensor.Tensor, error) {
	x, err := singleInput("Rectified", inputs)
	if err != nil {
		return nil, nil, err
	}
	if !output.Shape().Equal(upstream.Shape()) {
		return nil, nil, &tensor.ShapeError{Op: "Rectified.Backward", Left: output.Shape(), Right: upstream.Shape()}
	}
	masked := upstream.Clone()
	md, od := masked.Data(), output.Data()
	for i := range md {
		if od[i] == 0 {
			md[i] = 0
		}
	}
	dx, dw, err := affineBackward(r.weights, x, masked)
	if err != nil {
		return nil, nil, err
	}
	return []*tensor.Tensor{dx}, dw, nil
}

// Parameters returns the packed [W | b] blob.
func (r *Rectified) Parameters() *tensor.Tensor {
	return r.weights
}

// SetParameters replaces the packed [W | b] blob.
func (r *Rectified) SetParameters(p *tensor.Tensor) error {
	if !p.Shape().Equal(r.weights.Shape()) {
		return &tensor.ShapeError{Op: "Rectified.SetParameters", Left: r.weights.Shape(), Right: p.Shape()}
	}
	r.weights = p
	return nil
}

// ParamShape returns [out, in+1].
func (r *Rectified) ParamShape() tensor.Shape {
	return r.weights.Shape()
}

// Arity returns 1.
func (r *Rectified) Arity() int {
	return 1
}

// InFeatures returns the number of input features.
func (r *Rectified) InFeatures() int {
	return r.in
}

// OutFeatures returns the number of output features.
func (r *Rectified) OutFeatures() int {
	return r.out
}
