package minmax

import (
	"github.com/gomlx/minmax/internal/parallel"
	"github.com/gomlx/minmax/schema"
	"github.com/gomlx/minmax/shapeinference"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/tensors"
	"github.com/pkg/errors"
)

// ReduceOp folds a variable number of same-shaped tensors position-wise into one output, using an
// associative and commutative binary operation (max or min).
//
// Inputs are folded in ascending order, so results are bit-reproducible across runs, also when the
// positions are split across goroutines (see WithParallelism).
//
// ReduceOp holds no state between invocations: it can be used concurrently, as long as the tensors
// given to each invocation are not shared.
type ReduceOp struct {
	opType   optypes.OpType
	schema   *schema.Schema
	folds    foldTable
	parallel parallel.Config
}

var _ Operator = (*ReduceOp)(nil)

func newReduceOp(opType optypes.OpType, s *schema.Schema, folds foldTable) *ReduceOp {
	return &ReduceOp{
		opType:   opType,
		schema:   s,
		folds:    folds,
		parallel: parallel.Sequential(),
	}
}

// Type implements Operator.
func (r *ReduceOp) Type() optypes.OpType { return r.opType }

// Schema implements Operator.
func (r *ReduceOp) Schema() *schema.Schema { return r.schema }

// WithParallelism configures the fold to split the positions across goroutines.
// The default is to run sequentially in the caller's goroutine.
//
// It returns itself, so calls can be chained.
func (r *ReduceOp) WithParallelism(cfg parallel.Config) *ReduceOp {
	r.parallel = cfg
	return r
}

// Compute implements Operator.
//
// output = inputs[0], then output[i] = op(output[i], inputs[k][i]) for k = 1 ... len(inputs)-1.
func (r *ReduceOp) Compute(mode InplaceMode, inputs []*tensors.Tensor, output *tensors.Tensor) error {
	output, fold, err := r.validate(mode, inputs, output)
	if err != nil {
		return err
	}

	var seed any
	if mode == FreshOutput {
		seed = inputs[0].Flat()
	}
	rest := make([]any, 0, len(inputs)-1)
	for _, input := range inputs[1:] {
		rest = append(rest, input.Flat())
	}
	outputFlat := output.Flat()
	parallel.Ranges(output.Size(), r.parallel, func(start, end int) {
		fold(outputFlat, seed, rest, start, end)
	})
	return nil
}

// validate checks all the preconditions of Compute, before anything is written.
// It returns the output to use (inputs[0] for ReuseInput0) and the fold for the dtype.
func (r *ReduceOp) validate(mode InplaceMode, inputs []*tensors.Tensor, output *tensors.Tensor) (*tensors.Tensor, foldFn, error) {
	op := r.opType
	if err := r.schema.VerifyArity(len(inputs), 1); err != nil {
		return nil, nil, errors.Wrapf(ErrArity, "%s: %v", op, err)
	}
	if !mode.IsAInplaceMode() {
		return nil, nil, errors.Wrapf(ErrAliasing, "%s: unknown in-place mode %s", op, mode)
	}
	for ii, input := range inputs {
		if input == nil {
			return nil, nil, errors.Wrapf(ErrAllocation, "%s: input #%d is nil", op, ii)
		}
	}

	switch mode {
	case ReuseInput0:
		if output == nil {
			output = inputs[0]
		} else if output != inputs[0] {
			return nil, nil, errors.Wrapf(ErrAliasing, "%s: mode %s requires the output to be input #0", op, mode)
		}
	case FreshOutput:
		if output == nil {
			return nil, nil, errors.Wrapf(ErrAllocation, "%s: output was not allocated", op)
		}
	}

	shape := inputs[0].Shape()
	for ii, input := range inputs[1:] {
		if !input.Shape().Equal(shape) {
			return nil, nil, errors.Wrapf(ErrShapeMismatch, "%s: input #0 has shape %s, but input #%d has shape %s",
				op, shape, ii+1, input.Shape())
		}
	}
	if err := shapeinference.CheckDType(op, shape.DType); err != nil {
		return nil, nil, errors.Wrapf(ErrDType, "%v", err)
	}
	fold, found := r.folds[shape.DType]
	if !found {
		return nil, nil, errors.Wrapf(ErrDType, "%s: no kernel for dtype %s", op, shape.DType)
	}
	if !output.Shape().Equal(shape) {
		return nil, nil, errors.Wrapf(ErrAllocation, "%s: output has shape %s, but inputs have shape %s",
			op, output.Shape(), shape)
	}

	if mode == FreshOutput && output.SharesStorage(inputs[0]) {
		return nil, nil, errors.Wrapf(ErrAliasing, "%s: output shares storage with input #0, use mode %s", op, ReuseInput0)
	}
	for ii, input := range inputs[1:] {
		if output.SharesStorage(input) {
			return nil, nil, errors.Wrapf(ErrAliasing, "%s: output shares storage with input #%d", op, ii+1)
		}
	}
	return output, fold, nil
}
