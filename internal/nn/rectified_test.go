package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

func TestRectifiedForwardClampsNegatives(t *testing.T) {
	w, err := tensor.Matrix([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	r, err := NewRectifiedFromWeights(w, tensor.Vector(0, -5))
	require.NoError(t, err)

	y, err := r.Forward(tensor.Vector(2, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, y.Data())
}

func TestRectifiedBackwardMasksInactiveUnits(t *testing.T) {
	w, err := tensor.Matrix([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	r, err := NewRectifiedFromWeights(w, tensor.Vector(0, -5))
	require.NoError(t, err)

	x := tensor.Vector(2, 1)
	y, err := r.Forward(x)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0}, y.Data())

	inputGrads, paramGrad, err := r.Backward([]*tensor.Tensor{x}, y, tensor.Vector(3, 7))
	require.NoError(t, err)

	// Unit 1 is inactive (output exactly zero): no gradient flows through
	// it, so only unit 0's row contributes.
	assert.Equal(t, []float64{3, 0}, inputGrads[0].Data())
	assert.Equal(t, []float64{
		6, 3, 3, // active unit: g·x and g
		0, 0, 0, // inactive unit: fully masked
	}, paramGrad.Data())
}

func TestRectifiedActiveUnitsPassUpstreamThrough(t *testing.T) {
	w, err := tensor.Matrix([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	r, err := NewRectifiedFromWeights(w, tensor.Vector(1, 1))
	require.NoError(t, err)

	x := tensor.Vector(2, 3)
	y, err := r.Forward(x)
	require.NoError(t, err)

	upstream := tensor.Vector(5, -4)
	inputGrads, _, err := r.Backward([]*tensor.Tensor{x}, y, upstream)
	require.NoError(t, err)

	// Identity weights, all units active: dJdx equals the upstream gradient.
	assert.Equal(t, upstream.Data(), inputGrads[0].Data())
}

func TestRectifiedGradientMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 5; i++ {
		r := NewRectified(4, 3)
		checkLayerGradients(t, r, randVector(4, rng), randVector(3, rng))
	}
}

func TestRectifiedAccessors(t *testing.T) {
	r := NewRectified(3, 4)
	assert.Equal(t, 3, r.InFeatures())
	assert.Equal(t, 4, r.OutFeatures())
	assert.Equal(t, 1, r.Arity())
	assert.True(t, r.ParamShape().Equal(tensor.Shape{4, 4}))
}
