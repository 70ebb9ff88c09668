// Package nn provides the differentiable layer variants and the Network DAG
// they are assembled into.
package nn

import (
	"errors"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// ErrNotImplemented is returned by a layer variant whose forward or backward
// transform has not been implemented yet. It is a placeholder fallback for
// unfinished variants, never a valid runtime path.
var ErrNotImplemented = errors.New("nn: layer operation not implemented")

// Layer is the contract every layer variant implements.
//
// Forward and Backward are pure with respect to the layer: they must not
// mutate the layer's parameters or any shared state, so a Network can be
// shared read-only across concurrent evaluation contexts.
//
// Backward receives the inputs and output recorded during the forward pass.
// Implementations must use those cached values rather than recomputing them.
type Layer interface {
	// Forward computes the layer's output from its inputs. The number of
	// inputs must equal Arity.
	Forward(inputs ...*tensor.Tensor) (*tensor.Tensor, error)

	// Backward performs the local chain-rule step: given the forward-pass
	// inputs and output and the gradient of the objective with respect to
	// the output, it returns the gradient with respect to each input (one
	// entry per input, aligned with Forward's argument order) and the
	// gradient with respect to the layer's parameters (nil for a
	// parameter-free variant).
	Backward(inputs []*tensor.Tensor, output, upstream *tensor.Tensor) (inputGrads []*tensor.Tensor, paramGrad *tensor.Tensor, err error)

	// Parameters returns the layer's parameter blob, or nil for a
	// parameter-free variant. Mutation must go through SetParameters.
	Parameters() *tensor.Tensor

	// SetParameters replaces the layer's parameter blob. The shape must
	// match ParamShape.
	SetParameters(p *tensor.Tensor) error

	// ParamShape declares the shape of the parameter blob, used to
	// pre-allocate gradient accumulators. Nil for a parameter-free variant.
	ParamShape() tensor.Shape

	// Arity returns the number of inputs the layer consumes.
	Arity() int
}

// Unimplemented provides ErrNotImplemented fallbacks for Forward and
// Backward. A variant under construction embeds it so that invoking the
// missing transforms fails loudly instead of returning a default value.
type Unimplemented struct{}

// Forward always fails with ErrNotImplemented.
func (Unimplemented) Forward(_ ...*tensor.Tensor) (*tensor.Tensor, error) {
	return nil, ErrNotImplemented
}

// Backward always fails with ErrNotImplemented.
func (Unimplemented) Backward(_ []*tensor.Tensor, _, _ *tensor.Tensor) ([]*tensor.Tensor, *tensor.Tensor, error) {
	return nil, nil, ErrNotImplemented
}
