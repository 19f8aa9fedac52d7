package minmax

import "github.com/pkg/errors"

// Errors returned by Operator.Compute, wrapped with the details of the failure.
// Use errors.Is to test for them.
var (
	// ErrArity is returned when the number of inputs is not accepted, e.g. no inputs at all.
	ErrArity = errors.New("arity error")

	// ErrShapeMismatch is returned when the inputs don't all have the same dtype and dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrAllocation is returned when a buffer is missing, or the output was not allocated with
	// the shape of the inputs.
	ErrAllocation = errors.New("allocation error")

	// ErrDType is returned when the inputs dtype is not supported by the operator.
	ErrDType = errors.New("unsupported dtype")

	// ErrAliasing is returned when the output shares storage with an input in a way the InplaceMode doesn't allow.
	ErrAliasing = errors.New("invalid aliasing")
)
