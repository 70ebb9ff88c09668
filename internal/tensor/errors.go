package tensor

import "fmt"

// ShapeError reports a dimension mismatch between the operands of a tensor
// operation. It is returned by the arithmetic operation itself rather than
// by a separate validation pass.
type ShapeError struct {
	Op    string // operation that failed, e.g. "MatVec"
	Left  Shape  // shape of the first operand
	Right Shape  // shape of the second operand
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("tensor: %s: incompatible shapes %v and %v", e.Op, e.Left, e.Right)
}
