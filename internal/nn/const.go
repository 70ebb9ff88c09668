package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Const is a source layer with no inputs. Its single parameter tensor is
// returned unchanged as the layer's output, which makes the value itself
// trainable: the parameter gradient is exactly the upstream gradient.
type Const struct {
	value *tensor.Tensor
}

// NewConst creates a constant-output layer holding value.
func NewConst(value *tensor.Tensor) *Const {
	return &Const{value: value}
}

// Forward returns the held value. Const takes no inputs.
func (c *Const) Forward(inputs ...*tensor.Tensor) (*tensor.Tensor, error) {
	if len(inputs) != 0 {
		return nil, fmt.Errorf("nn: Const.Forward: expected 0 inputs, got %d", len(inputs))
	}
	return c.value, nil
}

// Backward passes the upstream gradient through as the parameter gradient.
// The output is the identity of the parameter, so dJ/dθ = dJ/dy, and there
// are no input gradients.
func (c *Const) Backward(inputs []*tensor.Tensor, output, upstream *tensor.Tensor) ([]*tensor.Tensor, *tensor.Tensor, error) {
	if len(inputs) != 0 {
		return nil, nil, fmt.Errorf("nn: Const.Backward: expected 0 inputs, got %d", len(inputs))
	}
	return nil, upstream.Clone(), nil
}

// Parameters returns the held value.
func (c *Const) Parameters() *tensor.Tensor {
	return c.value
}

// SetParameters replaces the held value.
func (c *Const) SetParameters(p *tensor.Tensor) error {
	if !p.Shape().Equal(c.value.Shape()) {
		return &tensor.ShapeError{Op: "Const.SetParameters", Left: c.value.Shape(), Right: p.Shape()}
	}
	c.value = p
	return nil
}

// ParamShape returns the shape of the held value.
func (c *Const) ParamShape() tensor.Shape {
	return c.value.Shape()
}

// Arity returns 0: Const is a source layer.
func (c *Const) Arity() int {
	return 0
}
