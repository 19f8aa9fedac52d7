// Package shapeinference calculates the shape resulting from operations and validates its inputs.
//
// This can be useful to validate a graph of operations before executing it, and to plan buffer space for
// the outputs (including the decision to reuse an input buffer in-place).
//
// Variadic element-wise operations (Max, Min) require all their operands to have the exact same shape:
// there is no broadcasting nor type promotion. Their output shape is the shape of the first operand.
package shapeinference

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/minmax/internal/utils"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/pkg/errors"
)

var (
	// VariadicElementWiseOperations take one or more operands of the same shape and reduce them, position by
	// position, into one output of that same shape.
	VariadicElementWiseOperations = utils.SetWith(
		optypes.Max,
		optypes.Min,
	)

	// OrderedOperations need a totally ordered data type: integers (signed or unsigned) and floats.
	// Booleans and complex numbers are not accepted.
	OrderedOperations = utils.SetWith(
		optypes.Max,
		optypes.Min,
	)
)

// CheckDType returns an error if dtype is not accepted by the operation.
func CheckDType(opType optypes.OpType, dtype dtypes.DType) error {
	if dtype == dtypes.InvalidDType {
		return errors.Errorf("invalid dtype for %s", opType)
	}
	if OrderedOperations.Has(opType) && !(dtype.IsInt() || dtype.IsFloat()) {
		return errors.Errorf("%s requires an ordered number (Int32, Uint8, Float32, BFloat16, ...) data type, got %s",
			opType, dtype)
	}
	return nil
}

// VariadicOp returns the expected output shape for ops in the VariadicElementWiseOperations set.
//
// It returns an error if no operands are given, if the operands don't all have the same dtype and dimensions,
// or if the dtype is invalid for the operation.
func VariadicOp(opType optypes.OpType, inputs ...shapes.Shape) (output shapes.Shape, err error) {
	if !VariadicElementWiseOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the VariadicElementWiseOperations set, cannot process it with VariadicOp", opType)
		return
	}
	if len(inputs) == 0 {
		err = errors.Errorf("%s requires at least one operand, got none", opType)
		return
	}
	first := inputs[0]
	if !first.Ok() {
		err = errors.Errorf("invalid shape %s for operand #0 of %s", first, opType)
		return
	}
	for ii, shape := range inputs[1:] {
		if !first.Equal(shape) {
			err = errors.Errorf("shapes for %s must match (no broadcasting), operand #0 has shape %s and operand #%d has shape %s",
				opType, first, ii+1, shape)
			return
		}
	}
	if err = CheckDType(opType, first.DType); err != nil {
		return
	}
	output = first.Clone()
	return
}
