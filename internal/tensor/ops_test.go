package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatVec(t *testing.T) {
	m, err := Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	y, err := MatVec(m, Vector(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, y.Data())
}

func TestMatVecShapeError(t *testing.T) {
	m, err := Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = MatVec(m, Vector(1, 2, 3))
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "MatVec", shapeErr.Op)
}

func TestMatTVec(t *testing.T) {
	m, err := Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	y, err := MatTVec(m, Vector(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, y.Data())
}

func TestOuter(t *testing.T) {
	p, err := Outer(Vector(1, 2), Vector(3, 4, 5))
	require.NoError(t, err)
	assert.True(t, p.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, []float64{3, 4, 5, 6, 8, 10}, p.Data())
}

func TestAdd(t *testing.T) {
	s, err := Add(Vector(1, 2), Vector(10, 20))
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22}, s.Data())

	_, err = Add(Vector(1, 2), Vector(1, 2, 3))
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestAddInPlaceAccumulates(t *testing.T) {
	acc := Zeros(Shape{2})
	require.NoError(t, acc.AddInPlace(Vector(1, 2)))
	require.NoError(t, acc.AddInPlace(Vector(10, 20)))
	assert.Equal(t, []float64{11, 22}, acc.Data())
}

func TestAddScaled(t *testing.T) {
	acc := Vector(1, 1)
	require.NoError(t, acc.AddScaled(-0.5, Vector(2, 4)))
	assert.Equal(t, []float64{0, -1}, acc.Data())
}

func TestScale(t *testing.T) {
	v := Vector(1, -2)
	v.Scale(3)
	assert.Equal(t, []float64{3, -6}, v.Data())
}

func TestDot(t *testing.T) {
	d, err := Dot(Vector(1, 2, 3), Vector(4, 5, 6))
	require.NoError(t, err)
	assert.Equal(t, 32.0, d)

	_, err = Dot(Vector(1), Vector(1, 2))
	require.Error(t, err)
}
