package nn

import (
	"fmt"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// ValidationError reports a connection that violates the Network's
// topological invariant at construction time.
type ValidationError struct {
	Layer int // 1-based index of the offending layer
	Conn  int // the offending input index
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("nn: layer %d: connection to %d violates the DAG invariant (inputs must have index < %d)",
		e.Layer, e.Conn, e.Layer)
}

// Network is an immutable DAG of layers.
//
// Layers are numbered 1..n. connections[i] lists, in order, the producers
// feeding layer i+1: index 0 denotes the network's external input and index
// j > 0 denotes layer j's output. Every entry must be strictly less than its
// consumer's index, which guarantees acyclicity and makes the layer order
// itself a valid topological order, so no separate topological sort is ever
// needed.
//
// A Network is never mutated during evaluation or backpropagation and may be
// shared read-only by any number of concurrent evaluation contexts. The one
// discipline callers must uphold is that SetParameters must not run
// concurrently with an in-flight evaluation or gradient pass.
type Network struct {
	layers      []Layer
	connections [][]int
}

// NewNetwork builds a Network from layers and their connection lists.
// connections[i] feeds layers[i] (layer number i+1). Returns a
// *ValidationError identifying the offending layer if any connection index
// is not strictly less than its consumer's index, or if the adjacency does
// not match the layer count or a layer's arity.
func NewNetwork(layers []Layer, connections [][]int) (*Network, error) {
	if len(connections) != len(layers) {
		return nil, fmt.Errorf("nn: %d layers but %d connection lists", len(layers), len(connections))
	}
	for i, conns := range connections {
		num := i + 1
		if len(conns) != layers[i].Arity() {
			return nil, fmt.Errorf("nn: layer %d: %d connections but arity %d", num, len(conns), layers[i].Arity())
		}
		for _, c := range conns {
			if c < 0 || c >= num {
				return nil, &ValidationError{Layer: num, Conn: c}
			}
		}
	}
	return &Network{layers: layers, connections: connections}, nil
}

// NewSequential builds a chain network: each layer consumes the previous
// layer's output, and the first layer consumes the network input.
// Panics if any layer's arity is not 1, since a chain cannot feed it.
func NewSequential(layers ...Layer) *Network {
	connections := make([][]int, len(layers))
	for i := range layers {
		connections[i] = []int{i}
	}
	net, err := NewNetwork(layers, connections)
	if err != nil {
		panic(err)
	}
	return net
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layer returns the layer with the given 1-based number.
// Panics if num is out of range.
func (n *Network) Layer(num int) Layer {
	if num < 1 || num > len(n.layers) {
		panic(fmt.Sprintf("nn: Network.Layer: %d out of range [1,%d]", num, len(n.layers)))
	}
	return n.layers[num-1]
}

// Inputs returns the ordered producer indices feeding the layer with the
// given 1-based number. The returned slice is shared and must not be
// modified.
func (n *Network) Inputs(num int) []int {
	if num < 1 || num > len(n.layers) {
		panic(fmt.Sprintf("nn: Network.Inputs: %d out of range [1,%d]", num, len(n.layers)))
	}
	return n.connections[num-1]
}

// Parameters returns one parameter blob per layer, in layer order, with nil
// entries for parameter-free layers. The blobs are the live tensors;
// mutation must go through SetParameters.
func (n *Network) Parameters() []*tensor.Tensor {
	params := make([]*tensor.Tensor, len(n.layers))
	for i, l := range n.layers {
		params[i] = l.Parameters()
	}
	return params
}

// SetParameters replaces every layer's parameter blob. The list must be
// indexed identically to the layer list; nil entries skip parameter-free
// layers.
func (n *Network) SetParameters(params []*tensor.Tensor) error {
	if len(params) != len(n.layers) {
		return fmt.Errorf("nn: SetParameters: %d blobs for %d layers", len(params), len(n.layers))
	}
	for i, p := range params {
		if p == nil {
			continue
		}
		if err := n.layers[i].SetParameters(p); err != nil {
			return fmt.Errorf("nn: SetParameters: layer %d: %w", i+1, err)
		}
	}
	return nil
}

// Evaluate computes the output of the layer with the given 1-based number
// for input, resolving each required producer recursively without caching.
//
// A layer feeding multiple consumers is recomputed once per consumer path,
// so the cost can be exponential in the presence of fan-out. Evaluate is
// intended for quick one-off inference; training loops should use an
// autodiff.Context, which memoizes.
func (n *Network) Evaluate(input *tensor.Tensor, outputLayer int) (*tensor.Tensor, error) {
	if outputLayer < 1 || outputLayer > len(n.layers) {
		return nil, fmt.Errorf("nn: Evaluate: output layer %d out of range [1,%d]", outputLayer, len(n.layers))
	}
	return n.evaluate(input, outputLayer)
}

func (n *Network) evaluate(input *tensor.Tensor, num int) (*tensor.Tensor, error) {
	conns := n.connections[num-1]
	inputs := make([]*tensor.Tensor, len(conns))
	for p, c := range conns {
		if c == 0 {
			inputs[p] = input
			continue
		}
		v, err := n.evaluate(input, c)
		if err != nil {
			return nil, err
		}
		inputs[p] = v
	}
	out, err := n.layers[num-1].Forward(inputs...)
	if err != nil {
		return nil, fmt.Errorf("nn: Evaluate: layer %d: %w", num, err)
	}
	return out, nil
}
