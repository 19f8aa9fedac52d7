// Package minmax implements the element-wise Max and Min operators: each reduces a variable number of
// same-shaped tensors, position by position, into one output tensor of that same shape.
//
// Operators are plugged into a host (see package graph for a minimal one), which owns the tensors: it
// allocates them, validates graphs using the operator's schema.Schema, and decides whether the first input
// is reused in-place as the output (see InplaceMode). The operator itself never allocates.
//
// Example:
//
//	a := must.M1(tensors.FromValue([]float32{1, 5, 3}))
//	b := must.M1(tensors.FromValue([]float32{4, 2, 6}))
//	out := must.M1(minmax.Max(a, b)) // [4 5 6]
//
// NaN values poison the result: if any of the values at a position is NaN, the output at that position is NaN.
// For signed zeros, Max prefers +0 and Min prefers -0.
package minmax

import (
	"github.com/gomlx/minmax/schema"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/tensors"
)

// Operator is a compute unit that can be registered with the host.
type Operator interface {
	// Type returns the operator identity used by the host for dispatch.
	Type() optypes.OpType

	// Schema returns the metadata the host uses to validate and plan the operator's invocations.
	Schema() *schema.Schema

	// Compute reads inputs and writes output.
	//
	// With ReuseInput0 the output is inputs[0] itself: output must be either nil or inputs[0].
	// With FreshOutput, output must be pre-allocated by the host with the inputs' shape.
	//
	// On error, the output contents are left unchanged.
	Compute(mode InplaceMode, inputs []*tensors.Tensor, output *tensors.Tensor) error
}

// InplaceMode tells an operator whether its output is a separate buffer or the first input reused in-place.
// It is decided once by the host's memory planner.
type InplaceMode int

//go:generate go tool enumer -type=InplaceMode minmax.go

const (
	// FreshOutput means the output is a buffer distinct from all the inputs.
	FreshOutput InplaceMode = iota

	// ReuseInput0 means the output is the first input: its values seed the reduction and are overwritten.
	ReuseInput0
)
