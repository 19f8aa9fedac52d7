// Package schema describes operators to the host: their arity, the shape and type of their outputs,
// which inputs can be reused in-place as outputs, and their documentation.
//
// The host uses it to validate graphs and to plan memory before invoking an operator's compute.
package schema

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gomlx/minmax/shapeinference"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/pkg/errors"
)

// Unbounded can be used as the maximum number of inputs, for variadic operators.
const Unbounded = math.MaxInt

// InplacePair states that the input at index Input can be used as the output at index Output.
type InplacePair struct {
	Input, Output int
}

// ArgDoc documents one input or output of an operator.
type ArgDoc struct {
	Name, Doc string
}

// Schema holds the metadata of an operator. Create it with New and configure it with the With* methods.
type Schema struct {
	// OpType of the operator described.
	OpType optypes.OpType

	// MinInputs and MaxInputs, inclusive. MaxInputs may be Unbounded.
	MinInputs, MaxInputs int

	// NumOutputs is the exact number of outputs.
	NumOutputs int

	// IdenticalTypeAndShapeOfInput is the index of the input whose shape the output has, or -1 if not set.
	IdenticalTypeAndShapeOfInput int

	// Inplace lists the allowed in-place input/output pairs.
	Inplace []InplacePair

	// Doc is the human-readable description of the operator.
	Doc string

	Inputs, Outputs map[int]ArgDoc
}

// New creates a schema for opType, with one input and one output.
func New(opType optypes.OpType) *Schema {
	return &Schema{
		OpType:                       opType,
		MinInputs:                    1,
		MaxInputs:                    1,
		NumOutputs:                   1,
		IdenticalTypeAndShapeOfInput: -1,
		Inputs:                       make(map[int]ArgDoc),
		Outputs:                      make(map[int]ArgDoc),
	}
}

// Name of the operator, as registered.
func (s *Schema) Name() string { return s.OpType.String() }

// WithNumInputs sets the accepted range of inputs, both inclusive.
func (s *Schema) WithNumInputs(minInputs, maxInputs int) *Schema {
	s.MinInputs, s.MaxInputs = minInputs, maxInputs
	return s
}

// WithNumOutputs sets the exact number of outputs.
func (s *Schema) WithNumOutputs(n int) *Schema {
	s.NumOutputs = n
	return s
}

// WithIdenticalTypeAndShapeOfInput declares the output has the same dtype and shape as the given input.
func (s *Schema) WithIdenticalTypeAndShapeOfInput(input int) *Schema {
	s.IdenticalTypeAndShapeOfInput = input
	return s
}

// WithInplace allows the given input to be used in-place as the given output.
func (s *Schema) WithInplace(input, output int) *Schema {
	s.Inplace = append(s.Inplace, InplacePair{Input: input, Output: output})
	return s
}

// WithDoc sets the operator documentation.
func (s *Schema) WithDoc(doc string) *Schema {
	s.Doc = strings.TrimSpace(doc)
	return s
}

// WithInput documents the input at index idx.
func (s *Schema) WithInput(idx int, name, doc string) *Schema {
	s.Inputs[idx] = ArgDoc{Name: name, Doc: doc}
	return s
}

// WithOutput documents the output at index idx.
func (s *Schema) WithOutput(idx int, name, doc string) *Schema {
	s.Outputs[idx] = ArgDoc{Name: name, Doc: doc}
	return s
}

// VerifyArity returns an error if the number of inputs or outputs is not accepted by the operator.
func (s *Schema) VerifyArity(numInputs, numOutputs int) error {
	if numInputs < s.MinInputs || numInputs > s.MaxInputs {
		return errors.Errorf("%s takes %s inputs, got %d", s.Name(), s.inputsRange(), numInputs)
	}
	if numOutputs != s.NumOutputs {
		return errors.Errorf("%s takes exactly %d output(s), got %d", s.Name(), s.NumOutputs, numOutputs)
	}
	return nil
}

// AllowsInplace returns whether the input at index input can be reused as the output at index output.
func (s *Schema) AllowsInplace(input, output int) bool {
	return slices.Contains(s.Inplace, InplacePair{Input: input, Output: output})
}

// InferShape returns the output shape for the given input shapes, validating them.
func (s *Schema) InferShape(inputs ...shapes.Shape) (shapes.Shape, error) {
	if err := s.VerifyArity(len(inputs), s.NumOutputs); err != nil {
		return shapes.Invalid(), err
	}
	if shapeinference.VariadicElementWiseOperations.Has(s.OpType) {
		return shapeinference.VariadicOp(s.OpType, inputs...)
	}
	if s.IdenticalTypeAndShapeOfInput >= 0 && s.IdenticalTypeAndShapeOfInput < len(inputs) {
		return inputs[s.IdenticalTypeAndShapeOfInput].Clone(), nil
	}
	return shapes.Invalid(), errors.Errorf("%s has no shape inference rule", s.Name())
}

func (s *Schema) inputsRange() string {
	switch {
	case s.MinInputs == s.MaxInputs:
		return fmt.Sprintf("exactly %d", s.MinInputs)
	case s.MaxInputs == Unbounded:
		return fmt.Sprintf("%d or more", s.MinInputs)
	default:
		return fmt.Sprintf("%d to %d", s.MinInputs, s.MaxInputs)
	}
}

// String renders the schema documentation.
func (s *Schema) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s inputs, %d output(s)", s.Name(), s.inputsRange(), s.NumOutputs)
	if len(s.Inplace) > 0 {
		sb.WriteString(", in-place:")
		for _, pair := range s.Inplace {
			fmt.Fprintf(&sb, " %d->%d", pair.Input, pair.Output)
		}
	}
	sb.WriteString("\n")
	if s.Doc != "" {
		sb.WriteString(s.Doc)
		sb.WriteString("\n")
	}
	writeArgs := func(kind string, args map[int]ArgDoc) {
		indices := make([]int, 0, len(args))
		for idx := range args {
			indices = append(indices, idx)
		}
		slices.Sort(indices)
		for _, idx := range indices {
			fmt.Fprintf(&sb, "  %s %d, %s: %s\n", kind, idx, args[idx].Name, args[idx].Doc)
		}
	}
	writeArgs("Input", s.Inputs)
	writeArgs("Output", s.Outputs)
	return sb.String()
}
