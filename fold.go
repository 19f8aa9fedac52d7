package minmax

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// orderedNumber are the Go types for which the builtin max and min are used.
type orderedNumber interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// halfFloat are the 16-bits float types, compared through their float32 value.
type halfFloat interface {
	float16.Float16 | bfloat16.BFloat16
	Float32() float32
}

// foldFn seeds output[start:end] from seed (unless seed is nil) and then folds each of the inputs into it,
// in order. output, seed and inputs are flat slices ([]T) of the same dtype.
type foldFn func(output, seed any, inputs []any, start, end int)

// foldTable holds the fold of one binary operation, for each supported dtype.
// The tables maxFolds and minFolds are generated.
type foldTable map[dtypes.DType]foldFn

//go:generate go run ./internal/cmd/folds_generator

// typedFold converts a typed accumulation loop into a foldFn.
func typedFold[T any](accumulate func(acc, values []T)) foldFn {
	return func(output, seed any, inputs []any, start, end int) {
		acc := output.([]T)[start:end]
		if seed != nil {
			copy(acc, seed.([]T)[start:end])
		}
		for _, input := range inputs {
			accumulate(acc, input.([]T)[start:end])
		}
	}
}

func maxInto[T orderedNumber](acc, values []T) {
	for i, v := range values {
		acc[i] = max(acc[i], v)
	}
}

func minInto[T orderedNumber](acc, values []T) {
	for i, v := range values {
		acc[i] = min(acc[i], v)
	}
}

// halfMax follows the builtin max rules: NaN wins, and +0 is larger than -0.
func halfMax[T halfFloat](a, b T) T {
	fa, fb := a.Float32(), b.Float32()
	switch {
	case math.IsNaN(float64(fa)):
		return a
	case math.IsNaN(float64(fb)):
		return b
	case fb > fa, fb == fa && math.Signbit(float64(fa)):
		return b
	}
	return a
}

// halfMin follows the builtin min rules: NaN wins, and -0 is smaller than +0.
func halfMin[T halfFloat](a, b T) T {
	fa, fb := a.Float32(), b.Float32()
	switch {
	case math.IsNaN(float64(fa)):
		return a
	case math.IsNaN(float64(fb)):
		return b
	case fb < fa, fb == fa && math.Signbit(float64(fb)):
		return b
	}
	return a
}

func halfMaxInto[T halfFloat](acc, values []T) {
	for i, v := range values {
		acc[i] = halfMax(acc[i], v)
	}
}

func halfMinInto[T halfFloat](acc, values []T) {
	for i, v := range values {
		acc[i] = halfMin(acc[i], v)
	}
}
