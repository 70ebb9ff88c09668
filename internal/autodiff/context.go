// Package autodiff provides the caching evaluation context and the
// reverse-mode gradient engine for a Network DAG.
package autodiff

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Context caches, for one input, the forward outputs and the gradient
// accumulators of every layer in a Network.
//
// The identity state (the bound Network) is fixed at construction; the cache
// state (outputs, accumulators, done markers) is reset per evaluation or
// gradient pass. A Context is owned and used by one goroutine at a time, but
// any number of Contexts may share one Network concurrently since the
// Network is never mutated during evaluation.
//
// Per-layer slices are indexed by the 1-based layer number; slot 0 is
// unused so a connection entry indexes its producer's cache directly.
type Context struct {
	net *nn.Network

	outputLayer int
	input       *tensor.Tensor   // copy of the current network input
	outputs     []*tensor.Tensor // cached forward value per layer, nil until allocated
	dJdy        []*tensor.Tensor // objective gradient w.r.t. each layer's output
	dJdTheta    []*tensor.Tensor // objective gradient w.r.t. each layer's parameters
	dJdx        *tensor.Tensor   // objective gradient w.r.t. the network input
	done        []bool           // per-pass marker: layer already computed this Evaluate
	evaluated   bool
}

// NewContext creates an empty context bound to net. Buffers are allocated by
// the first Evaluate (or an explicit Allocate) against a sample input.
func NewContext(net *nn.Network) *Context {
	n := net.Len()
	return &Context{
		net:      net,
		outputs:  make([]*tensor.Tensor, n+1),
		dJdy:     make([]*tensor.Tensor, n+1),
		dJdTheta: make([]*tensor.Tensor, n+1),
		done:     make([]bool, n+1),
	}
}

// Network returns the bound network.
func (c *Context) Network() *nn.Network {
	return c.net
}

// Allocated reports whether buffers exist for an input of the given shape
// and the given output layer.
func (c *Context) Allocated(shape tensor.Shape, outputLayer int) bool {
	return c.input != nil && c.input.Shape().Equal(shape) && c.outputs[outputLayer] != nil
}

// Allocate sizes the context's buffers for inputs shaped like sample, by
// walking the DAG once from outputLayer back over the connections. For every
// reachable layer it allocates the inputs first, invokes the layer's forward
// transform once to learn the output shape, and then allocates the output
// buffer and both gradient accumulators. Allocation is memoized on the
// output buffer, so a layer feeding multiple consumers is allocated exactly
// once.
func (c *Context) Allocate(sample *tensor.Tensor, outputLayer int) error {
	if outputLayer < 1 || outputLayer > c.net.Len() {
		return fmt.Errorf("autodiff: Allocate: output layer %d out of range [1,%d]", outputLayer, c.net.Len())
	}
	if c.input == nil || !c.input.Shape().Equal(sample.Shape()) {
		// Shape change invalidates every buffer.
		for i := range c.outputs {
			c.outputs[i] = nil
			c.dJdy[i] = nil
			c.dJdTheta[i] = nil
		}
		c.input = sample.Clone()
		c.dJdx = tensor.Zeros(sample.Shape())
		c.evaluated = false
	} else if err := c.input.CopyFrom(sample); err != nil {
		return err
	}
	if _, err := c.allocate(outputLayer); err != nil {
		return err
	}
	c.outputLayer = outputLayer
	return nil
}

// allocate recursively sizes the buffers of layer num and its producers,
// returning the layer's probe output.
func (c *Context) allocate(num int) (*tensor.Tensor, error) {
	if c.outputs[num] != nil {
		return c.outputs[num], nil
	}
	layer := c.net.Layer(num)
	conns := c.net.Inputs(num)
	inputs := make([]*tensor.Tensor, len(conns))
	for p, k := range conns {
		if k == 0 {
			inputs[p] = c.input
			continue
		}
		v, err := c.allocate(k)
		if err != nil {
			return nil, err
		}
		inputs[p] = v
	}
	out, err := layer.Forward(inputs...)
	if err != nil {
		return nil, fmt.Errorf("autodiff: Allocate: layer %d: %w", num, err)
	}
	c.outputs[num] = out.Clone()
	c.dJdy[num] = tensor.Zeros(out.Shape())
	if ps := layer.ParamShape(); ps != nil {
		c.dJdTheta[num] = tensor.Zeros(ps)
	}
	return c.outputs[num], nil
}

// Evaluate runs a caching forward pass for input and returns the output of
// outputLayer.
//
// If the context is not yet allocated for input's shape and outputLayer, it
// is (re-)allocated first; otherwise the existing buffers are reused without
// any new allocation. Each layer is computed exactly once per pass
// regardless of fan-out: a per-pass done marker guards the recursion, and
// every consumer reuses the cached output.
//
// The returned tensor is the context's own output buffer; it is overwritten
// by the next Evaluate.
func (c *Context) Evaluate(input *tensor.Tensor, outputLayer int) (*tensor.Tensor, error) {
	if outputLayer < 1 || outputLayer > c.net.Len() {
		return nil, fmt.Errorf("autodiff: Evaluate: output layer %d out of range [1,%d]", outputLayer, c.net.Len())
	}
	if !c.Allocated(input.Shape(), outputLayer) {
		if err := c.Allocate(input, outputLayer); err != nil {
			return nil, err
		}
	} else if err := c.input.CopyFrom(input); err != nil {
		return nil, err
	}
	for i := range c.done {
		c.done[i] = false
	}
	if err := c.eval(outputLayer); err != nil {
		return nil, err
	}
	c.outputLayer = outputLayer
	c.evaluated = true
	return c.outputs[outputLayer], nil
}

// eval computes layer num into its cached buffer, resolving producers first.
func (c *Context) eval(num int) error {
	if c.done[num] {
		return nil
	}
	conns := c.net.Inputs(num)
	inputs := make([]*tensor.Tensor, len(conns))
	for p, k := range conns {
		if k == 0 {
			inputs[p] = c.input
			continue
		}
		if err := c.eval(k); err != nil {
			return err
		}
		inputs[p] = c.outputs[k]
	}
	out, err := c.net.Layer(num).Forward(inputs...)
	if err != nil {
		return fmt.Errorf("autodiff: Evaluate: layer %d: %w", num, err)
	}
	if err := c.outputs[num].CopyFrom(out); err != nil {
		return fmt.Errorf("autodiff: Evaluate: layer %d: %w", num, err)
	}
	c.done[num] = true
	return nil
}

// Output returns the cached output of the layer with the given 1-based
// number, or nil if it has not been computed.
func (c *Context) Output(num int) *tensor.Tensor {
	return c.outputs[num]
}

// InputGradient returns the accumulator for the objective gradient with
// respect to the network input, filled by Gradient.
func (c *Context) InputGradient() *tensor.Tensor {
	return c.dJdx
}

// OutputGradient returns the dJ/dy accumulator of the layer with the given
// 1-based number, or nil if it has not been allocated.
func (c *Context) OutputGradient(num int) *tensor.Tensor {
	return c.dJdy[num]
}
