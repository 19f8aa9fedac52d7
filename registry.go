package minmax

import (
	"slices"
	"sync"

	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/tensors"
	"github.com/pkg/errors"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[optypes.OpType]Operator)
)

func init() {
	for _, op := range []Operator{NewMax(), NewMin()} {
		if err := Register(op); err != nil {
			panic(err)
		}
	}
}

// Register makes the operator available to hosts through Lookup.
// It returns an error if an operator with the same type is already registered.
func Register(op Operator) error {
	opType := op.Type()
	if !opType.Ok() {
		return errors.Errorf("cannot register operator with invalid type %s", opType)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, found := registry[opType]; found {
		return errors.Errorf("operator %s already registered", opType)
	}
	registry[opType] = op
	return nil
}

// Replace registers op, replacing any operator registered for the same type, and returns the previous one (or nil).
//
// It can be used to install an alternative implementation, e.g. one configured with ReduceOp.WithParallelism.
func Replace(op Operator) Operator {
	registryMu.Lock()
	defer registryMu.Unlock()
	previous := registry[op.Type()]
	registry[op.Type()] = op
	return previous
}

// Lookup returns the operator registered for opType.
func Lookup(opType optypes.OpType) (Operator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, found := registry[opType]
	if !found {
		return nil, errors.Errorf("no operator registered for %s", opType)
	}
	return op, nil
}

// MustLookup returns the operator registered for opType, and panics if there is none.
func MustLookup(opType optypes.OpType) Operator {
	op, err := Lookup(opType)
	if err != nil {
		panic(err)
	}
	return op
}

// RegisteredOps returns the types of all registered operators, sorted.
func RegisteredOps() []optypes.OpType {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ops := make([]optypes.OpType, 0, len(registry))
	for opType := range registry {
		ops = append(ops, opType)
	}
	slices.Sort(ops)
	return ops
}

// Max returns a newly allocated tensor with the element-wise maximum of the inputs.
func Max(inputs ...*tensors.Tensor) (*tensors.Tensor, error) {
	return computeFresh(optypes.Max, inputs)
}

// Min returns a newly allocated tensor with the element-wise minimum of the inputs.
func Min(inputs ...*tensors.Tensor) (*tensors.Tensor, error) {
	return computeFresh(optypes.Min, inputs)
}

func computeFresh(opType optypes.OpType, inputs []*tensors.Tensor) (*tensors.Tensor, error) {
	op, err := Lookup(opType)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 || inputs[0] == nil {
		// Let the operator report the error.
		return nil, op.Compute(FreshOutput, inputs, nil)
	}
	output := tensors.FromShape(inputs[0].Shape())
	if err := op.Compute(FreshOutput, inputs, output); err != nil {
		return nil, err
	}
	return output, nil
}
