package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Linear is a fully connected (affine) layer.
//
// Performs the transformation: y = W·x + b
// where:
//   - x is the input vector with shape [in]
//   - W is the weight matrix with shape [out, in]
//   - b is the bias vector with shape [out]
//
// W and b are stored packed as a single [out, in+1] parameter matrix whose
// last column is the bias, so the parameter blob and its gradient share one
// layout.
//
// Weights are initialized with the Glorot uniform scheme, biases with zeros.
type Linear struct {
	in      int
	out     int
	weights *tensor.Tensor // [out, in+1], last column is the bias
}

// NewLinear creates a Linear layer with Glorot-initialized weights and zero
// biases.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return &Linear{
		in:      inFeatures,
		out:     outFeatures,
		weights: glorotPacked(inFeatures, outFeatures),
	}
}

// NewLinearFromWeights creates a Linear layer from an explicit [out, in]
// weight matrix and [out] bias vector.
func NewLinearFromWeights(weight, bias *tensor.Tensor) (*Linear, error) {
	w, in, out, err := packWeights(weight, bias)
	if err != nil {
		return nil, fmt.Errorf("nn: NewLinearFromWeights: %w", err)
	}
	return &Linear{in: in, out: out, weights: w}, nil
}

// glorotPacked builds the packed [out, in+1] parameter matrix: Glorot-uniform
// weight columns, zero bias column.
func glorotPacked(in, out int) *tensor.Tensor {
	w := Glorot(in, out, tensor.Shape{out, in + 1})
	for o := 0; o < out; o++ {
		w.Set(0, o, in)
	}
	return w
}

// packWeights validates weight [out, in] and bias [out] and packs them into
// one [out, in+1] matrix.
func packWeights(weight, bias *tensor.Tensor) (packed *tensor.Tensor, in, out int, err error) {
	ws, bs := weight.Shape(), bias.Shape()
	if len(ws) != 2 || len(bs) != 1 || ws[0] != bs[0] {
		return nil, 0, 0, &tensor.ShapeError{Op: "packWeights", Left: ws, Right: bs}
	}
	out, in = ws[0], ws[1]
	packed = tensor.Zeros(tensor.Shape{out, in + 1})
	for o := 0; o < out; o++ {
		for c := 0; c < in; c++ {
			packed.Set(weight.At(o, c), o, c)
		}
		packed.Set(bias.At(o), o, in)
	}
	return packed, in, out, nil
}

// Forward computes y = W·x + b.
func (l *Linear) Forward(inputs ...*tensor.Tensor) (*tensor.Tensor, error) {
	x, err := singleInput("Linear", inputs)
	if err != nil {
		return nil, err
	}
	return affineForward(l.weights, x)
}

// Backward computes the affine chain-rule step:
//
//	dJ/dx = Wᵀ·dJ/dy
//	dJ/dW = dJ/dy ⊗ x
//	dJ/db = dJ/dy
//
// The parameter gradient is returned packed as [dJ/dW | dJ/db], matching the
// [W | b] parameter layout.
func (l *Linear) Backward(inputs []*tensor.Tensor, output, upstream *tensor.Tensor) ([]*tensor.Tensor, *tensor.Tensor, error) {
	x, err := singleInput("Linear", inputs)
	if err != nil {
		return nil, nil, err
	}
	dx, dw, err := affineBackward(l.weights, x, upstream)
	if err != nil {
		return nil, nil, err
	}
	return []*tensor.Tensor{dx}, dw, nil
}

// Parameters returns the packed [W | b] blob.
func (l *Linear) Parameters() *tensor.Tensor {
	return l.weights
}

// SetParameters replaces the packed [W | b] blob.
func (l *Linear) SetParameters(p *tensor.Tensor) error {
	if !p.Shape().Equal(l.weights.Shape()) {
		return &tensor.ShapeError{Op: "Linear.SetParameters", Left: l.weights.Shape(), Right: p.Shape()}
	}
	l.weights = p
	return nil
}

// ParamShape returns [out, in+1].
func (l *Linear) ParamShape() tensor.Shape {
	return l.weights.Shape()
}

// Arity returns 1.
func (l *Linear) Arity() int {
	return 1
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.in
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.out
}

// singleInput unwraps the argument list of an arity-1 layer.
func singleInput(layer string, inputs []*tensor.Tensor) (*tensor.Tensor, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("nn: %s: expected 1 input, got %d", layer, len(inputs))
	}
	return inputs[0], nil
}

// affineForward computes W·x + b for a packed [out, in+1] parameter matrix.
func affineForward(w, x *tensor.Tensor) (*tensor.Tensor, error) {
	ws, xs := w.Shape(), x.Shape()
	if len(xs) != 1 || ws[1] != xs[0]+1 {
		return nil, &tensor.ShapeError{Op: "affineForward", Left: ws, Right: xs}
	}
	out, in := ws[0], xs[0]
	y := tensor.Zeros(tensor.Shape{out})
	wd, xd, yd := w.Data(), x.Data(), y.Data()
	for o := 0; o < out; o++ {
		row := wd[o*(in+1) : (o+1)*(in+1)]
		sum := row[in] // bias
		for c := 0; c < in; c++ {
			sum += row[c] * xd[c]
		}
		yd[o] = sum
	}
	return y, nil
}

// affineBackward computes the input gradient Wᵀ·g and the packed parameter
// gradient [g⊗x | g] for a packed [out, in+1] parameter matrix.
func affineBackward(w, x, g *tensor.Tensor) (dx, dw *tensor.Tensor, err error) {
	ws, xs, gs := w.Shape(), x.Shape(), g.Shape()
	if len(xs) != 1 || ws[1] != xs[0]+1 {
		return nil, nil, &tensor.ShapeError{Op: "affineBackward", Left: ws, Right: xs}
	}
	if len(gs) != 1 || gs[0] != ws[0] {
		return nil, nil, &tensor.ShapeError{Op: "affineBackward", Left: ws, Right: gs}
	}
	out, in := ws[0], xs[0]
	dx = tensor.Zeros(tensor.Shape{in})
	dw = tensor.Zeros(ws)
	wd, xd, gd := w.Data(), x.Data(), g.Data()
	dxd, dwd := dx.Data(), dw.Data()
	for o := 0; o < out; o++ {
		row := wd[o*(in+1) : (o+1)*(in+1)]
		grow := dwd[o*(in+1) : (o+1)*(in+1)]
		gi := gd[o]
		for c := 0; c < in; c++ {
			dxd[c] += row[c] * gi
			grow[c] = gi * xd[c]
		}
		grow[in] = gi // bias gradient
	}
	return dx, dw, nil
}
