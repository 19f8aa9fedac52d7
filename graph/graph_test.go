package graph

import (
	"context"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/minmax"
	"github.com/gomlx/minmax/types/optypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	F32 = dtypes.Float32
	S   = shapes.Make
)

func TestNet(t *testing.T) {
	t.Run("fresh outputs", func(t *testing.T) {
		net := New(t.Name())
		a := must.M1(net.Input("a", S(F32, 3)))
		b := must.M1(net.Input("b", S(F32, 3)))
		c := must.M1(net.Input("c", S(F32, 3)))
		hi := must.M1(Max("hi", a, b, c))
		lo := must.M1(Min("lo", a, b, c))
		require.NoError(t, net.Return(hi, lo))
		for _, stmt := range net.Statements() {
			assert.Equal(t, minmax.FreshOutput, stmt.Mode)
		}

		ws := NewWorkspace()
		require.NoError(t, ws.Feed("a", []float32{1, 4, 7}))
		require.NoError(t, ws.Feed("b", []float32{2, 3, 9}))
		require.NoError(t, ws.Feed("c", []float32{0, 5, 8}))
		require.NoError(t, net.Run(context.Background(), ws))
		assert.Equal(t, []string{"a", "b", "c", "hi", "lo"}, ws.Names())
		assert.Equal(t, []float32{2, 5, 9}, must.M1(ws.Fetch("hi")).Value())
		assert.Equal(t, []float32{0, 3, 7}, must.M1(ws.Fetch("lo")).Value())
		assert.Equal(t, []float32{1, 4, 7}, must.M1(ws.Fetch("a")).Value(), "inputs must not change")
	})

	t.Run("in-place", func(t *testing.T) {
		net := New(t.Name())
		x := must.M1(net.Input("x", S(F32, 2)))
		y := must.M1(net.Input("y", S(F32, 2)))
		z := must.M1(Max("z", x, y))
		z2 := must.M1(Min("z", z, x))
		assert.True(t, z.IsStale())
		assert.False(t, z2.IsStale())
		assert.Equal(t, "%z#1", z2.String())
		require.NoError(t, net.Return(z2))
		assert.Equal(t, minmax.ReuseInput0, net.Statements()[1].Mode)
		assert.Equal(t, "%z#1 = Min(%z, %x) in-place", net.Statements()[1].String())

		ws := NewWorkspace()
		require.NoError(t, ws.Feed("x", []float32{1, 5}))
		require.NoError(t, ws.Feed("y", []float32{3, 2}))
		require.NoError(t, net.Run(context.Background(), ws))
		assert.Equal(t, []float32{1, 5}, must.M1(ws.Fetch("z")).Value())
	})

	t.Run("in-place over input", func(t *testing.T) {
		net := New(t.Name())
		x := must.M1(net.Input("x", S(dtypes.Int32, 3)))
		y := must.M1(net.Input("y", S(dtypes.Int32, 3)))
		_ = must.M1(Max("x", x, y))
		ws := NewWorkspace()
		require.NoError(t, ws.Feed("x", []int32{1, 5, -3}))
		require.NoError(t, ws.Feed("y", []int32{2, 2, -4}))
		fed := must.M1(ws.Fetch("x"))
		require.NoError(t, net.Run(context.Background(), ws))
		assert.Same(t, fed, must.M1(ws.Fetch("x")))
		assert.Equal(t, []int32{2, 5, -3}, fed.Value())
	})

	t.Run("single input", func(t *testing.T) {
		net := New(t.Name())
		x := must.M1(net.Input("x", S(F32)))
		y := must.M1(net.AddOp(optypes.Min, "y", x))
		require.NoError(t, net.Return(y))
		ws := NewWorkspace()
		require.NoError(t, ws.Feed("x", float32(3)))
		require.NoError(t, net.Run(context.Background(), ws))
		assert.Equal(t, float32(3), must.M1(ws.Fetch("y")).Value())
	})
}

func TestNetErrors(t *testing.T) {
	net := New(t.Name())
	x := must.M1(net.Input("x", S(F32, 2)))
	y := must.M1(net.Input("y", S(F32, 2)))
	other := must.M1(New("other").Input("o", S(F32, 2)))

	_, err := net.Input("x", S(F32, 2))
	require.Error(t, err, "duplicate input")
	_, err = net.Input("x-", S(F32, 2))
	require.NoError(t, err)
	_, err = net.Input("x_", S(F32, 2))
	require.Error(t, err, "input names clash once normalized")
	_, err = net.Input("bad", shapes.Invalid())
	require.Error(t, err)

	_, err = Max("m")
	require.ErrorIs(t, err, minmax.ErrArity)
	_, err = net.AddOp(optypes.Max, "m")
	require.ErrorIs(t, err, minmax.ErrArity)
	_, err = net.AddOp(optypes.Invalid, "m", x)
	require.Error(t, err)
	_, err = Max("m", x, must.M1(net.Input("z", S(F32, 3))))
	require.Error(t, err, "shape mismatch")
	_, err = Max("m", x, other)
	require.Error(t, err, "different net")
	_, err = Max("", x, y)
	require.Error(t, err)
	_, err = Max("y", x, y)
	require.ErrorIs(t, err, minmax.ErrAliasing, "only input #0 can be reused")
	_, err = Max("x", x, x)
	require.ErrorIs(t, err, minmax.ErrAliasing)
	y2 := must.M1(Max("y", y))
	assert.True(t, y.IsStale())
	_, err = Max("x", y2)
	require.Error(t, err, "name already defined")

	m := must.M1(Max("m", x, y2))
	_ = must.M1(Min("m", m, x))
	_, err = Max("n", m, y2)
	require.Error(t, err, "stale value")
	assert.Contains(t, err.Error(), "stale")
	require.Error(t, net.Return(m))
	require.Error(t, net.Return())
}

func TestRunErrors(t *testing.T) {
	net := New(t.Name())
	x := must.M1(net.Input("x", S(F32, 2)))
	y := must.M1(net.Input("y", S(F32, 2)))
	m := must.M1(Max("m", x, y))
	require.NoError(t, net.Return(m))
	_, err := Max("n", x, y)
	require.Error(t, err, "net already returned")

	ws := NewWorkspace()
	require.NoError(t, ws.Feed("x", []float32{1, 2}))
	require.Error(t, net.Run(context.Background(), ws), "missing input")
	require.NoError(t, ws.Feed("y", []float32{1, 2, 3}))
	require.ErrorIs(t, net.Run(context.Background(), ws), minmax.ErrShapeMismatch)
	require.NoError(t, ws.Feed("y", []float32{3, 0}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = net.Run(ctx, ws)
	require.True(t, errors.Is(err, context.Canceled))
	assert.False(t, ws.Has("m"))

	require.NoError(t, net.Run(context.Background(), ws))
	assert.Equal(t, []float32{3, 2}, must.M1(ws.Fetch("m")).Value())
}

func TestWorkspace(t *testing.T) {
	ws := NewWorkspace()
	assert.False(t, ws.Has("a"))
	_, err := ws.Fetch("a")
	require.Error(t, err)
	require.Error(t, ws.Feed("a", []string{"x"}))
	require.NoError(t, ws.Feed("b", [][]int8{{1}, {2}}))
	require.NoError(t, ws.Feed("a", 1.0))
	assert.True(t, ws.Has("a"))
	assert.Equal(t, []string{"a", "b"}, ws.Names())
	assert.NoError(t, must.M1(ws.Fetch("b")).Shape().Check(dtypes.Int8, 2, 1))
}
