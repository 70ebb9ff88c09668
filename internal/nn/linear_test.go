package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

func testLinear(t *testing.T) *Linear {
	t.Helper()
	w, err := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	l, err := NewLinearFromWeights(w, tensor.Vector(0, 0))
	require.NoError(t, err)
	return l
}

func TestLinearForwardClosedForm(t *testing.T) {
	l := testLinear(t)

	y, err := l.Forward(tensor.Vector(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, y.Data())
}

func TestLinearBackwardClosedForm(t *testing.T) {
	l := testLinear(t)
	x := tensor.Vector(1, 1)

	y, err := l.Forward(x)
	require.NoError(t, err)

	inputGrads, paramGrad, err := l.Backward([]*tensor.Tensor{x}, y, tensor.Vector(1, 1))
	require.NoError(t, err)
	require.Len(t, inputGrads, 1)

	// dJdx = Wᵗ·dJdy
	assert.Equal(t, []float64{4, 6}, inputGrads[0].Data())

	// Packed [dJdW | dJdb]: dJdW = dJdy⊗x = ones, dJdb = dJdy.
	require.True(t, paramGrad.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, paramGrad.Data())
}

func TestLinearBiasAffectsOutput(t *testing.T) {
	w, err := tensor.Matrix([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	l, err := NewLinearFromWeights(w, tensor.Vector(10, -10))
	require.NoError(t, err)

	y, err := l.Forward(tensor.Vector(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{11, -8}, y.Data())
}

func TestLinearGradientMatchesFiniteDifferences(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		l := NewLinear(4, 3)
		checkLayerGradients(t, l, randVector(4, rng), randVector(3, rng))
	}
}

func TestLinearShapeMismatch(t *testing.T) {
	l := NewLinear(3, 2)

	_, err := l.Forward(tensor.Vector(1, 2))
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)

	_, err = l.Forward(tensor.Vector(1, 2, 3), tensor.Vector(1))
	require.Error(t, err)
	assert.NotErrorAs(t, err, &shapeErr)
}

func TestLinearGlorotInitialization(t *testing.T) {
	in, out := 30, 20
	l := NewLinear(in, out)
	w := l.Parameters()
	require.True(t, w.Shape().Equal(tensor.Shape{out, in + 1}))

	bound := math.Sqrt(6.0 / float64(in+out))
	sawNonZero := false
	for o := 0; o < out; o++ {
		for c := 0; c < in; c++ {
			v := w.At(o, c)
			assert.LessOrEqual(t, math.Abs(v), bound)
			if v != 0 {
				sawNonZero = true
			}
		}
		assert.Zero(t, w.At(o, in), "bias must default to zero")
	}
	assert.True(t, sawNonZero)
}

func TestLinearSetParameters(t *testing.T) {
	l := NewLinear(2, 2)

	next := tensor.Zeros(tensor.Shape{2, 3})
	next.Fill(0.5)
	require.NoError(t, l.SetParameters(next))
	assert.Equal(t, next, l.Parameters())

	err := l.SetParameters(tensor.Zeros(tensor.Shape{3, 3}))
	var shapeErr *tensor.ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestLinearAccessors(t *testing.T) {
	l := NewLinear(5, 2)
	assert.Equal(t, 5, l.InFeatures())
	assert.Equal(t, 2, l.OutFeatures())
	assert.Equal(t, 1, l.Arity())
	assert.True(t, l.ParamShape().Equal(tensor.Shape{2, 6}))
}
