package schema

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := New(optypes.Max).
		WithNumInputs(1, Unbounded).
		WithNumOutputs(1).
		WithIdenticalTypeAndShapeOfInput(0).
		WithInplace(0, 0).
		WithDoc("\n  Element-wise max.\n").
		WithInput(0, "data_0", "First input.").
		WithOutput(0, "max", "Output.")

	assert.Equal(t, "Max", s.Name())
	assert.Equal(t, "Element-wise max.", s.Doc)

	require.NoError(t, s.VerifyArity(1, 1))
	require.NoError(t, s.VerifyArity(1000, 1))
	err := s.VerifyArity(0, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Max takes 1 or more inputs, got 0")
	require.Error(t, s.VerifyArity(2, 0))

	assert.True(t, s.AllowsInplace(0, 0))
	assert.False(t, s.AllowsInplace(1, 0))
	assert.False(t, s.AllowsInplace(0, 1))

	shape, err := s.InferShape(shapes.Make(dtypes.Int32, 2, 2), shapes.Make(dtypes.Int32, 2, 2))
	require.NoError(t, err)
	assert.NoError(t, shape.Check(dtypes.Int32, 2, 2))
	_, err = s.InferShape()
	require.Error(t, err)
	_, err = s.InferShape(shapes.Make(dtypes.Int32, 2), shapes.Make(dtypes.Int32, 3))
	require.Error(t, err)

	assert.Equal(t, `Max: 1 or more inputs, 1 output(s), in-place: 0->0
Element-wise max.
  Input 0, data_0: First input.
  Output 0, max: Output.
`, s.String())
}

func TestSchemaDefaults(t *testing.T) {
	s := New(optypes.Min)
	require.NoError(t, s.VerifyArity(1, 1))
	err := s.VerifyArity(2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 1")
	assert.False(t, s.AllowsInplace(0, 0))

	s.WithNumInputs(2, 4)
	err = s.VerifyArity(5, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 to 4")
}
