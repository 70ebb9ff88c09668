// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/autodiff"
	"github.com/gradnet-ml/gradnet/nn"
	"github.com/gradnet-ml/gradnet/optim"
	"github.com/gradnet-ml/gradnet/tensor"
)

// TestPublicTrainingFlow walks the full public API surface: build a network,
// evaluate it through a context, backpropagate a seed gradient, and apply an
// optimizer step.
func TestPublicTrainingFlow(t *testing.T) {
	net := nn.NewSequential(
		nn.NewRectified(2, 4),
		nn.NewLinear(4, 1),
	)

	ctx := autodiff.NewContext(net)
	opt := optim.NewSGD(net, optim.SGDConfig{LR: 0.05})

	x := tensor.Vector(1, 0)
	out, err := ctx.Evaluate(x, net.Len())
	require.NoError(t, err)
	require.Equal(t, 1, out.NumElements())

	grads, err := ctx.Gradient(tensor.Vector(out.Data()[0] - 1))
	require.NoError(t, err)
	require.Len(t, grads, net.Len())

	before := net.Parameters()[1].Clone()
	require.NoError(t, opt.Step(grads))
	assert.NotEqual(t, before.Data(), net.Parameters()[1].Data())
}

// TestPublicGeneralConstructor exercises the adjacency-list constructor and
// its validation through the facade.
func TestPublicGeneralConstructor(t *testing.T) {
	layers := []nn.Layer{nn.NewLinear(2, 3), nn.NewSoftmax()}

	net, err := nn.NewNetwork(layers, [][]int{{0}, {1}})
	require.NoError(t, err)

	out, err := net.Evaluate(tensor.Vector(0.5, -0.5), net.Len())
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumElements())

	_, err = nn.NewNetwork(layers, [][]int{{2}, {1}})
	var valErr *nn.ValidationError
	require.ErrorAs(t, err, &valErr)
}
