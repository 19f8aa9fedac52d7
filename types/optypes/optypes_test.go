package optypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpType(t *testing.T) {
	assert.Equal(t, "Max", Max.String())
	assert.Equal(t, "Min", Min.String())
	assert.Equal(t, "stablehlo.maximum", Max.ToStableHLO())
	assert.Equal(t, "stablehlo.minimum", Min.ToStableHLO())
	assert.True(t, Max.Ok())
	assert.False(t, Invalid.Ok())
	assert.False(t, Last.Ok())

	op, err := OpTypeString("min")
	require.NoError(t, err)
	assert.Equal(t, Min, op)
	_, err = OpTypeString("sum")
	require.Error(t, err)
}
