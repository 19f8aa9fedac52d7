package graph

import (
	"fmt"
	"strings"

	"github.com/gomlx/minmax"
	"github.com/gomlx/minmax/types/optypes"
)

// Statement represents a single operator invocation in a Net.
type Statement struct {
	// OpType is the type of the operation, used to look up the registered minmax.Operator.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Output of the operation.
	Output *Value

	// Mode is the buffer planning of the output: minmax.ReuseInput0 if it overwrites Inputs[0].
	Mode minmax.InplaceMode
}

// String implements fmt.Stringer, e.g.: "%y = Max(%x, %lo)".
func (s *Statement) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "%s = %s(", s.Output, s.OpType)
	for ii, input := range s.Inputs {
		if ii > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(input.String())
	}
	sb.WriteString(")")
	if s.Mode == minmax.ReuseInput0 {
		sb.WriteString(" in-place")
	}
	return sb.String()
}
