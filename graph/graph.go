// Package graph is a minimal host for the minmax operators: a Net is a straight-line list of
// operator statements over named values, executed against a Workspace of named tensors.
//
// The Net plans the memory of each statement when it is added: naming the output after input #0
// reuses the input's buffer in-place (minmax.ReuseInput0), any other output name gets a freshly
// allocated buffer. Values overwritten in-place become stale and can't be used afterward.
//
// A Net can also be exported as a StableHLO program (see Net.Build), to be JIT-compiled and
// executed by PJRT (github.com/gomlx/gopjrt/pjrt).
//
// Example:
//
//	net := graph.New("clip")
//	x := must.M1(net.Input("x", shapes.Make(dtypes.Float32, 3)))
//	lo := must.M1(net.Input("lo", shapes.Make(dtypes.Float32, 3)))
//	y := must.M1(graph.Max("y", x, lo))
//	must.M(net.Return(y))
//
//	ws := graph.NewWorkspace()
//	must.M(ws.Feed("x", []float32{-1, 0, 5}))
//	must.M(ws.Feed("lo", []float32{0, 0, 0}))
//	must.M(net.Run(ctx, ws))
//	result := must.M1(ws.Fetch("y")) // [0 0 5]
package graph

import (
	"github.com/gomlx/minmax"
	"github.com/gomlx/minmax/internal/utils"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Net holds a list of statements in construction. See New.
type Net struct {
	name string

	// inputs are the values fed to the net, in the order they were declared.
	inputs []*Value

	// statements in execution order.
	statements []*Statement

	// live maps each name to its current (non-stale) value.
	live map[string]*Value

	// identifiers holds the normalized names of the inputs, to avoid clashes in the StableHLO program.
	identifiers utils.Set[string]

	// outputs set by Return.
	outputs  []*Value
	returned bool
}

// New creates a new empty Net.
//
// Declare its inputs with Net.Input, add operations with Net.AddOp (or the Max and Min helpers)
// and set its outputs with Net.Return.
func New(name string) *Net {
	return &Net{
		name:        name,
		live:        make(map[string]*Value),
		identifiers: utils.MakeSet[string](),
	}
}

// Name of the net.
func (n *Net) Name() string { return n.name }

// Inputs returns the values declared with Net.Input, in order.
func (n *Net) Inputs() []*Value { return n.inputs }

// Outputs returns the values given to Net.Return.
func (n *Net) Outputs() []*Value { return n.outputs }

// Statements returns the statements of the net, in execution order.
func (n *Net) Statements() []*Statement { return n.statements }

func (n *Net) checkNotReturned() error {
	if n.returned {
		return errors.Errorf("Net.Return already called for %q, it can no longer be changed", n.name)
	}
	return nil
}

// Input declares a new input to the net, which must be fed to the Workspace before running it.
//
// Names must be unique, also after being normalized to a StableHLO identifier (see utils.NormalizeIdentifier).
func (n *Net) Input(name string, shape shapes.Shape) (*Value, error) {
	if err := n.checkNotReturned(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("Net.Input requires a name")
	}
	if !shape.Ok() {
		return nil, errors.Errorf("invalid shape for input %q", name)
	}
	if _, found := n.live[name]; found {
		return nil, errors.Errorf("value %q already defined in net %q", name, n.name)
	}
	identifier := utils.NormalizeIdentifier(name)
	if n.identifiers.Has(identifier) {
		return nil, errors.Errorf("input %q clashes with another input named %q once normalized", name, identifier)
	}
	n.identifiers.Insert(identifier)
	v := &Value{
		net:     n,
		name:    name,
		shape:   shape.Clone(),
		isInput: true,
	}
	n.inputs = append(n.inputs, v)
	n.live[name] = v
	return v, nil
}

// AddOp adds a statement executing the operator registered for opType over the inputs, and returns its output value.
//
// If output is the name of inputs[0], and the operator allows it, the statement reuses the input
// buffer (minmax.ReuseInput0) and inputs[0] becomes stale. Any other output name must be new.
func (n *Net) AddOp(opType optypes.OpType, output string, inputs ...*Value) (*Value, error) {
	if err := n.checkNotReturned(); err != nil {
		return nil, err
	}
	op, err := minmax.Lookup(opType)
	if err != nil {
		return nil, err
	}
	sch := op.Schema()
	if err := sch.VerifyArity(len(inputs), 1); err != nil {
		return nil, errors.Wrapf(minmax.ErrArity, "%q: %v", output, err)
	}
	inputShapes := make([]shapes.Shape, len(inputs))
	for ii, input := range inputs {
		if input == nil {
			return nil, errors.Errorf("%s(%q): input #%d is nil", opType, output, ii)
		}
		if input.net != n {
			return nil, errors.Errorf("%s(%q): input #%d (%s) belongs to a different net", opType, output, ii, input)
		}
		if input.stale {
			return nil, errors.Errorf("%s(%q): input #%d (%s) is stale, it was overwritten in-place by statement #%d",
				opType, output, ii, input, input.staleBy)
		}
		inputShapes[ii] = input.shape
	}
	shape, err := sch.InferShape(inputShapes...)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s(%q)", opType, output)
	}

	mode, err := n.planOutput(sch.AllowsInplace(0, 0), opType, output, inputs)
	if err != nil {
		return nil, err
	}
	stmtIdx := len(n.statements)
	v := &Value{
		net:   n,
		name:  output,
		shape: shape,
	}
	if mode == minmax.ReuseInput0 {
		previous := inputs[0]
		previous.stale = true
		previous.staleBy = stmtIdx
		v.version = previous.version + 1
		if previous.isInput {
			klog.Warningf("net %q: statement #%d overwrites the net input %q in-place, the fed tensor will be changed",
				n.name, stmtIdx, output)
		}
	}
	klog.V(2).Infof("net %q: statement #%d %s(%q) planned with %s", n.name, stmtIdx, opType, output, mode)
	n.live[output] = v
	n.statements = append(n.statements, &Statement{
		OpType: opType,
		Inputs: inputs,
		Output: v,
		Mode:   mode,
	})
	return v, nil
}

// planOutput decides the in-place mode of a new statement, based on the name of its output.
func (n *Net) planOutput(allowsInplace bool, opType optypes.OpType, output string, inputs []*Value) (minmax.InplaceMode, error) {
	if output == "" {
		return minmax.FreshOutput, errors.Errorf("%s requires an output name", opType)
	}
	if _, found := n.live[output]; !found {
		return minmax.FreshOutput, nil
	}
	for ii, input := range inputs[1:] {
		if input.name == output {
			return minmax.FreshOutput, errors.Wrapf(minmax.ErrAliasing,
				"%s(%q): output can only reuse the buffer of input #0, not input #%d", opType, output, ii+1)
		}
	}
	if inputs[0].name != output {
		return minmax.FreshOutput, errors.Errorf("value %q already defined in net %q", output, n.name)
	}
	if !allowsInplace {
		return minmax.FreshOutput, errors.Wrapf(minmax.ErrAliasing, "%s(%q): operator doesn't allow in-place", opType, output)
	}
	return minmax.ReuseInput0, nil
}

// Max adds a statement with the element-wise maximum of the inputs, see Net.AddOp.
// The net is the one of the inputs, so at least one input must be given.
func Max(output string, inputs ...*Value) (*Value, error) {
	return addToInputsNet(optypes.Max, output, inputs)
}

// Min adds a statement with the element-wise minimum of the inputs, see Net.AddOp.
// The net is the one of the inputs, so at least one input must be given.
func Min(output string, inputs ...*Value) (*Value, error) {
	return addToInputsNet(optypes.Min, output, inputs)
}

func addToInputsNet(opType optypes.OpType, output string, inputs []*Value) (*Value, error) {
	if len(inputs) == 0 || inputs[0] == nil {
		return nil, errors.Wrapf(minmax.ErrArity, "%s(%q) requires at least one input", opType, output)
	}
	return inputs[0].net.AddOp(opType, output, inputs...)
}

// Return sets the outputs of the net. There must be at least one, and they can't be stale.
//
// After Return the net can no longer be changed.
func (n *Net) Return(values ...*Value) error {
	if err := n.checkNotReturned(); err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.Errorf("Net.Return(%q) requires at least one value", n.name)
	}
	for ii, v := range values {
		if v == nil || v.net != n {
			return errors.Errorf("Net.Return(%q): value #%d is not owned by the net", n.name, ii)
		}
		if v.stale {
			return errors.Errorf("Net.Return(%q): value #%d (%s) is stale, it was overwritten in-place by statement #%d",
				n.name, ii, v, v.staleBy)
		}
	}
	n.outputs = values
	n.returned = true
	return nil
}
