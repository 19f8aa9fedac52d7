package graph

import (
	"slices"

	"github.com/gomlx/minmax/types/tensors"
	"github.com/pkg/errors"
)

// Workspace holds the named tensors a Net reads its inputs from and writes its outputs to.
//
// It is not safe for concurrent use.
type Workspace struct {
	tensors map[string]*tensors.Tensor
}

// NewWorkspace returns an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{tensors: make(map[string]*tensors.Tensor)}
}

// Feed sets the tensor for the given name, replacing any previous one.
//
// The value can be a *tensors.Tensor (stored without copying) or anything accepted by tensors.FromValue.
func (ws *Workspace) Feed(name string, value any) error {
	t, err := tensors.FromValue(value)
	if err != nil {
		return errors.WithMessagef(err, "Workspace.Feed(%q)", name)
	}
	ws.tensors[name] = t
	return nil
}

// Fetch returns the tensor for the given name. It's not a copy.
func (ws *Workspace) Fetch(name string) (*tensors.Tensor, error) {
	t, found := ws.tensors[name]
	if !found {
		return nil, errors.Errorf("tensor %q not found in workspace", name)
	}
	return t, nil
}

// Has returns whether there is a tensor for the given name.
func (ws *Workspace) Has(name string) bool {
	_, found := ws.tensors[name]
	return found
}

// Names returns the sorted names of the tensors in the workspace.
func (ws *Workspace) Names() []string {
	names := make([]string, 0, len(ws.tensors))
	for name := range ws.tensors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
