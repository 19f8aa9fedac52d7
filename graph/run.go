package graph

import (
	"context"
	"time"

	"github.com/gomlx/minmax"
	"github.com/gomlx/minmax/types/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Run executes the statements of the net in order, reading the inputs from the workspace and
// storing each statement's output in it, under the output's name.
//
// The inputs must have been fed with the exact shapes declared with Net.Input.
// The context is checked between statements: a running kernel is not interrupted.
//
// If a statement fails, Run returns its error and the workspace keeps the outputs of the
// statements executed so far.
func (n *Net) Run(ctx context.Context, ws *Workspace) error {
	for _, input := range n.inputs {
		t, err := ws.Fetch(input.name)
		if err != nil {
			return errors.WithMessagef(err, "net %q input", n.name)
		}
		if !t.Shape().Equal(input.shape) {
			return errors.Wrapf(minmax.ErrShapeMismatch, "net %q: input %q declared with shape %s, but fed with %s",
				n.name, input.name, input.shape, t.Shape())
		}
	}

	for stmtIdx, stmt := range n.statements {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "net %q interrupted before statement #%d", n.name, stmtIdx)
		}
		if err := n.runStatement(ws, stmtIdx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (n *Net) runStatement(ws *Workspace, stmtIdx int, stmt *Statement) error {
	op, err := minmax.Lookup(stmt.OpType)
	if err != nil {
		return errors.WithMessagef(err, "net %q statement #%d", n.name, stmtIdx)
	}
	inputs := make([]*tensors.Tensor, len(stmt.Inputs))
	for ii, input := range stmt.Inputs {
		inputs[ii], err = ws.Fetch(input.name)
		if err != nil {
			return errors.WithMessagef(err, "net %q statement #%d (%s)", n.name, stmtIdx, stmt)
		}
	}

	var output *tensors.Tensor
	switch stmt.Mode {
	case minmax.ReuseInput0:
		output = inputs[0]
	default:
		output = tensors.FromShape(stmt.Output.shape)
	}

	start := time.Now()
	if err := op.Compute(stmt.Mode, inputs, output); err != nil {
		return errors.WithMessagef(err, "net %q statement #%d (%s)", n.name, stmtIdx, stmt)
	}
	ws.tensors[stmt.Output.name] = output
	klog.V(1).Infof("net %q: statement #%d %s: %s in %s", n.name, stmtIdx, stmt, output.Shape(), time.Since(start))
	return nil
}
