package graph

import (
	"fmt"

	"github.com/gomlx/minmax/types/shapes"
)

// Value represents a named tensor in a Net: either an input or the output of a statement.
//
// A name can hold more than one Value over the life of a net: each statement that overwrites
// it in-place creates a new version, and the previous one becomes stale.
type Value struct {
	net   *Net
	name  string
	shape shapes.Shape

	isInput bool

	// version is incremented each time the name is overwritten in-place.
	version int

	stale   bool
	staleBy int
}

// Name of the value, also the name of the tensor in the Workspace.
func (v *Value) Name() string { return v.name }

// Shape returns the shape of the value.
func (v *Value) Shape() shapes.Shape { return v.shape }

// IsInput returns whether the value is an input of the net.
func (v *Value) IsInput() bool { return v.isInput }

// IsStale returns whether the value was overwritten in-place by a later statement.
func (v *Value) IsStale() bool { return v.stale }

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.version == 0 {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%s#%d", v.name, v.version)
}
