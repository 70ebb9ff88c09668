package tensor

// MatVec computes the matrix-vector product m·v.
//
// m must be rank-2 with shape [rows, cols] and v rank-1 with shape [cols].
// Returns a rank-1 tensor of shape [rows], or a *ShapeError if the operand
// dimensions are incompatible.
func MatVec(m, v *Tensor) (*Tensor, error) {
	if len(m.shape) != 2 || len(v.shape) != 1 || m.shape[1] != v.shape[0] {
		return nil, &ShapeError{Op: "MatVec", Left: m.shape, Right: v.shape}
	}
	rows, cols := m.shape[0], m.shape[1]
	out := Zeros(Shape{rows})
	for i := 0; i < rows; i++ {
		row := m.data[i*cols : (i+1)*cols]
		sum := 0.0
		for j, w := range row {
			sum += w * v.data[j]
		}
		out.data[i] = sum
	}
	return out, nil
}

// MatTVec computes the transposed matrix-vector product mᵀ·v without
// materializing the transpose.
//
// m must be rank-2 with shape [rows, cols] and v rank-1 with shape [rows].
// Returns a rank-1 tensor of shape [cols].
func MatTVec(m, v *Tensor) (*Tensor, error) {
	if len(m.shape) != 2 || len(v.shape) != 1 || m.shape[0] != v.shape[0] {
		return nil, &ShapeError{Op: "MatTVec", Left: m.shape, Right: v.shape}
	}
	rows, cols := m.shape[0], m.shape[1]
	out := Zeros(Shape{cols})
	for i := 0; i < rows; i++ {
		row := m.data[i*cols : (i+1)*cols]
		vi := v.data[i]
		for j, w := range row {
			out.data[j] += w * vi
		}
	}
	return out, nil
}

// Outer computes the outer product a⊗b with shape [len(a), len(b)].
// Both operands must be rank-1.
func Outer(a, b *Tensor) (*Tensor, error) {
	if len(a.shape) != 1 || len(b.shape) != 1 {
		return nil, &ShapeError{Op: "Outer", Left: a.shape, Right: b.shape}
	}
	out := Zeros(Shape{a.shape[0], b.shape[0]})
	for i, ai := range a.data {
		row := out.data[i*b.shape[0] : (i+1)*b.shape[0]]
		for j, bj := range b.data {
			row[j] = ai * bj
		}
	}
	return out, nil
}

// Add returns the element-wise sum a + b. The shapes must match exactly;
// no broadcasting is performed.
func Add(a, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, &ShapeError{Op: "Add", Left: a.shape, Right: b.shape}
	}
	out := Zeros(a.shape)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// AddInPlace accumulates src into t element-wise: t += src.
func (t *Tensor) AddInPlace(src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return &ShapeError{Op: "AddInPlace", Left: t.shape, Right: src.shape}
	}
	for i := range t.data {
		t.data[i] += src.data[i]
	}
	return nil
}

// AddScaled accumulates alpha*src into t element-wise: t += alpha*src.
func (t *Tensor) AddScaled(alpha float64, src *Tensor) error {
	if !t.shape.Equal(src.shape) {
		return &ShapeError{Op: "AddScaled", Left: t.shape, Right: src.shape}
	}
	for i := range t.data {
		t.data[i] += alpha * src.data[i]
	}
	return nil
}

// Scale multiplies every element of t by alpha in place.
func (t *Tensor) Scale(alpha float64) {
	for i := range t.data {
		t.data[i] *= alpha
	}
}

// Dot computes the inner product of two rank-1 tensors of equal length.
func Dot(a, b *Tensor) (float64, error) {
	if len(a.shape) != 1 || !a.shape.Equal(b.shape) {
		return 0, &ShapeError{Op: "Dot", Left: a.shape, Right: b.shape}
	}
	sum := 0.0
	for i := range a.data {
		sum += a.data[i] * b.data[i]
	}
	return sum, nil
}
