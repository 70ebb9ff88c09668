package autodiff

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Gradient runs a reverse-mode backward pass over the subgraph computed by
// the last Evaluate, seeding the output layer's gradient with seed.
//
// The pass resets every accumulator, sets dJ/dy of the output layer to the
// seed, and then visits each computed layer exactly once in descending layer
// number. Because the Network invariant makes the layer order topological,
// descending order is reverse-topological: by the time a layer is visited,
// every consumer has already added its contribution to the layer's dJ/dy
// accumulator, which is what makes fan-out graphs differentiate correctly.
// Each contribution is added, never overwritten, mirroring the multivariate
// chain rule's sum over paths.
//
// Returns one parameter-gradient blob per layer, in layer order and indexed
// identically to Network.Parameters, with nil entries for parameter-free
// layers. The blobs are the context's own accumulators; they are reset by
// the next Gradient call. The gradient with respect to the network input is
// available from InputGradient.
func (c *Context) Gradient(seed *tensor.Tensor) ([]*tensor.Tensor, error) {
	if !c.evaluated {
		return nil, fmt.Errorf("autodiff: Gradient: context has not been evaluated")
	}
	out := c.outputs[c.outputLayer]
	if !seed.Shape().Equal(out.Shape()) {
		return nil, &tensor.ShapeError{Op: "Gradient", Left: out.Shape(), Right: seed.Shape()}
	}

	// Reset all accumulators, then seed the output layer.
	for num := 1; num <= c.net.Len(); num++ {
		if c.dJdy[num] != nil {
			c.dJdy[num].Zero()
		}
		if c.dJdTheta[num] != nil {
			c.dJdTheta[num].Zero()
		}
	}
	c.dJdx.Zero()
	if err := c.dJdy[c.outputLayer].CopyFrom(seed); err != nil {
		return nil, err
	}

	// Explicit reverse-topological pass. A layer's full backward step is
	// deferred until its own dJ/dy is fully summed; an eager recursive
	// descent would under-accumulate on any graph with fan-out.
	for num := c.outputLayer; num >= 1; num-- {
		if !c.done[num] {
			continue // not part of the evaluated subgraph
		}
		if err := c.backwardStep(num); err != nil {
			return nil, err
		}
	}

	grads := make([]*tensor.Tensor, c.net.Len())
	for i := range grads {
		grads[i] = c.dJdTheta[i+1]
	}
	return grads, nil
}

// backwardStep runs layer num's local chain-rule step and scatters the
// resulting input gradients onto the producers' accumulators.
func (c *Context) backwardStep(num int) error {
	layer := c.net.Layer(num)
	conns := c.net.Inputs(num)
	inputs := make([]*tensor.Tensor, len(conns))
	for p, k := range conns {
		if k == 0 {
			inputs[p] = c.input
		} else {
			inputs[p] = c.outputs[k]
		}
	}

	inputGrads, paramGrad, err := layer.Backward(inputs, c.outputs[num], c.dJdy[num])
	if err != nil {
		return fmt.Errorf("autodiff: Gradient: layer %d: %w", num, err)
	}
	if len(inputGrads) != len(conns) {
		return fmt.Errorf("autodiff: Gradient: layer %d returned %d input gradients for %d inputs",
			num, len(inputGrads), len(conns))
	}

	for p, k := range conns {
		dst := c.dJdx
		if k != 0 {
			dst = c.dJdy[k]
		}
		if err := dst.AddInPlace(inputGrads[p]); err != nil {
			return fmt.Errorf("autodiff: Gradient: layer %d, input %d: %w", num, p, err)
		}
	}
	if paramGrad != nil {
		if err := c.dJdTheta[num].AddInPlace(paramGrad); err != nil {
			return fmt.Errorf("autodiff: Gradient: layer %d: %w", num, err)
		}
	}
	return nil
}
