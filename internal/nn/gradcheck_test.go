package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

const (
	fdEps  = 1e-6 // central finite-difference step
	relTol = 1e-5 // relative tolerance for gradient comparisons
)

// numericGrad computes the central finite-difference gradient of f at x.
// x is restored before returning.
func numericGrad(f func() float64, x []float64) []float64 {
	grad := make([]float64, len(x))
	for i := range x {
		orig := x[i]
		x[i] = orig + fdEps
		plus := f()
		x[i] = orig - fdEps
		minus := f()
		x[i] = orig
		grad[i] = (plus - minus) / (2 * fdEps)
	}
	return grad
}

// assertClose compares gradients with a relative tolerance.
func assertClose(t *testing.T, want, got []float64, what string) {
	t.Helper()
	require.Len(t, got, len(want), what)
	for i := range want {
		tol := relTol * math.Max(1, math.Abs(want[i]))
		assert.InDelta(t, want[i], got[i], tol, "%s[%d]", what, i)
	}
}

// checkLayerGradients verifies a layer's analytic Backward against central
// finite differences of the scalar objective J = upstream · Forward(x),
// for both the input gradient and (if the layer has parameters) the
// parameter gradient.
func checkLayerGradients(t *testing.T, layer Layer, x, upstream *tensor.Tensor) {
	t.Helper()

	objective := func() float64 {
		y, err := layer.Forward(x)
		require.NoError(t, err)
		j, err := tensor.Dot(upstream, y)
		require.NoError(t, err)
		return j
	}

	output, err := layer.Forward(x)
	require.NoError(t, err)
	inputGrads, paramGrad, err := layer.Backward([]*tensor.Tensor{x}, output, upstream)
	require.NoError(t, err)
	require.Len(t, inputGrads, 1)

	assertClose(t, numericGrad(objective, x.Data()), inputGrads[0].Data(), "dJdx")

	if params := layer.Parameters(); params != nil {
		require.NotNil(t, paramGrad)
		assertClose(t, numericGrad(objective, params.Data()), paramGrad.Data(), "dJdtheta")
	} else {
		assert.Nil(t, paramGrad)
	}
}

// randVector returns a rank-1 tensor with entries drawn from rng in (-1, 1).
func randVector(n int, rng *rand.Rand) *tensor.Tensor {
	v := tensor.Zeros(tensor.Shape{n})
	d := v.Data()
	for i := range d {
		d[i] = rng.Float64()*2 - 1
	}
	return v
}
