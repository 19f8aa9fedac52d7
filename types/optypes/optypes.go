// Package optypes defines OpType and lists the supported operations.
package optypes

import (
	"fmt"

	"github.com/gomlx/minmax/internal/utils"
)

// OpType is an enum of the operations that can be registered and executed.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota

	// Max is the element-wise maximum of a variable number of same-shaped tensors.
	Max

	// Min is the element-wise minimum of a variable number of same-shaped tensors.
	Min

	// Last should always be kept the last, it is used as a counter/marker for the number of OpTypes.
	Last
)

var (
	// stableHLOMappings maps OpType to the corresponding StableHLO name of its binary form, when the default
	// "snake case" doesn't work.
	stableHLOMappings = map[OpType]string{
		Max: "stablehlo.maximum",
		Min: "stablehlo.minimum",
	}
)

// ToStableHLO returns the StableHLO name of the binary operation used to lower the op.
func (op OpType) ToStableHLO() string {
	name, ok := stableHLOMappings[op]
	if !ok {
		name = fmt.Sprintf("stablehlo.%s", utils.ToSnakeCase(op.String()))
	}
	return name
}

// Ok returns whether op is one of the defined operations (excluding Invalid and Last).
func (op OpType) Ok() bool {
	return op > Invalid && op < Last
}
