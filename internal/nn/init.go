package nn

import (
	"math"
	"math/rand"

	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Glorot returns a tensor initialized with the Xavier/Glorot uniform scheme.
//
// Values are drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Glorot(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is fine for weight initialization (not security-critical)
		data[i] = (rand.Float64()*2.0 - 1.0) * bound
	}
	return t
}
