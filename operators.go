package minmax

import (
	"fmt"

	"github.com/gomlx/minmax/internal/utils"
	"github.com/gomlx/minmax/schema"
	"github.com/gomlx/minmax/types/optypes"
)

const docTemplate = `
Element-wise %[1]s of each of the input tensors. The first input tensor can be
used in-place as the output tensor, in which case the %[1]s will be done in
place and results will be accumulated in input0. All inputs and outputs must
have the same shape and data type.
`

// newSchema returns the schema shared by Max and Min: one or more inputs, one output with
// the shape of input #0, which can be reused in-place.
func newSchema(opType optypes.OpType) *schema.Schema {
	name := utils.ToSnakeCase(opType.String())
	return schema.New(opType).
		WithNumInputs(1, schema.Unbounded).
		WithNumOutputs(1).
		WithIdenticalTypeAndShapeOfInput(0).
		WithInplace(0, 0).
		WithDoc(fmt.Sprintf(docTemplate, name)).
		WithInput(0, "data_0", "First of the input tensors. Can be inplace.").
		WithOutput(0, name, "Output tensor. Same dimension as inputs.")
}

// MaxOperator computes the element-wise maximum of its inputs.
type MaxOperator struct {
	*ReduceOp
}

// NewMax returns a new MaxOperator.
func NewMax() *MaxOperator {
	return &MaxOperator{newReduceOp(optypes.Max, newSchema(optypes.Max), maxFolds)}
}

// MinOperator computes the element-wise minimum of its inputs.
type MinOperator struct {
	*ReduceOp
}

// NewMin returns a new MinOperator.
func NewMin() *MinOperator {
	return &MinOperator{newReduceOp(optypes.Min, newSchema(optypes.Min), minFolds)}
}
