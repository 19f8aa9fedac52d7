package graph

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/gomlx/minmax/internal/utils"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/pkg/errors"
)

// MainFunctionName is the name of the StableHLO function the net is exported to.
const MainFunctionName = "main"

// IndentationStep used in the StableHLO program.
const IndentationStep = "  "

// Write the net as a StableHLO program (a readable string) to the given writer.
//
// Inputs become the arguments of the "main" function, and each statement with N inputs becomes
// a chain of N-1 binary operations (e.g. "stablehlo.maximum"). A statement with one input is
// the identity, and emits nothing.
//
// It will write incomplete nets (without outputs) without an error to help debugging.
// See Net.Build to check and output the program.
func (n *Net) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	// ssa maps each value of the net to its StableHLO SSA name.
	ssa := make(map[*Value]string, len(n.inputs)+len(n.statements))
	nextTmpID := 0
	newTmp := func() string {
		name := "%" + strconv.Itoa(nextTmpID)
		nextTmpID++
		return name
	}

	w("module @%s {\n", utils.NormalizeIdentifier(n.name))
	w("%sfunc.func @%s(", IndentationStep, MainFunctionName)
	for ii, input := range n.inputs {
		if ii > 0 {
			w(", ")
		}
		ssa[input] = "%" + utils.NormalizeIdentifier(input.name)
		w("%s: %s", ssa[input], input.shape.ToStableHLO())
	}
	w(") -> ")
	writeTypes(w, n.outputs, len(n.outputs) > 1)
	w(" {\n")

	indent := IndentationStep + IndentationStep
	for _, stmt := range n.statements {
		acc := ssa[stmt.Inputs[0]]
		typ := stmt.Output.shape.ToStableHLO()
		for _, input := range stmt.Inputs[1:] {
			tmp := newTmp()
			w("%s%s = %q(%s, %s) : (%s, %s) -> %s\n", indent, tmp, stmt.OpType.ToStableHLO(),
				acc, ssa[input], typ, typ, typ)
			acc = tmp
		}
		ssa[stmt.Output] = acc
	}

	if len(n.outputs) > 0 {
		w("%s\"func.return\"(", indent)
		for ii, output := range n.outputs {
			if ii > 0 {
				w(", ")
			}
			w("%s", ssa[output])
		}
		w(") : (")
		writeTypes(w, n.outputs, false)
		w(") -> ()\n")
	}
	w("%s}\n}\n", IndentationStep)
	return err
}

// writeTypes writes the StableHLO types of the values, separated by commas, optionally enclosed in parentheses.
func writeTypes(w func(format string, args ...any), values []*Value, parenthesis bool) {
	if parenthesis {
		w("(")
	}
	for ii, v := range values {
		if ii > 0 {
			w(", ")
		}
		w("%s", v.shape.ToStableHLO())
	}
	if parenthesis {
		w(")")
	}
}

// Build checks the net is complete and returns the StableHLO program, that can be compiled by PJRT.
//
// If you want the output of an incomplete net (without the checking), use Net.Write instead.
func (n *Net) Build() ([]byte, error) {
	if !n.returned {
		return nil, errors.Errorf("net %q has no outputs, Net.Return must be called before Net.Build", n.name)
	}
	var buf bytes.Buffer
	if err := n.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OutputShapes returns the shapes of the outputs of the net, in the order given to Net.Return.
func (n *Net) OutputShapes() []shapes.Shape {
	outputShapes := make([]shapes.Shape, len(n.outputs))
	for ii, output := range n.outputs {
		outputShapes[ii] = output.shape
	}
	return outputShapes
}
