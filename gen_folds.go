/***** File generated by ./internal/cmd/folds_generator. Don't edit it directly. *****/

package minmax

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

var maxFolds = foldTable{
	dtypes.Int8:     typedFold(maxInto[int8]),
	dtypes.Int16:    typedFold(maxInto[int16]),
	dtypes.Int32:    typedFold(maxInto[int32]),
	dtypes.Int64:    typedFold(maxInto[int64]),
	dtypes.Uint8:    typedFold(maxInto[uint8]),
	dtypes.Uint16:   typedFold(maxInto[uint16]),
	dtypes.Uint32:   typedFold(maxInto[uint32]),
	dtypes.Uint64:   typedFold(maxInto[uint64]),
	dtypes.Float32:  typedFold(maxInto[float32]),
	dtypes.Float64:  typedFold(maxInto[float64]),
	dtypes.Float16:  typedFold(halfMaxInto[float16.Float16]),
	dtypes.BFloat16: typedFold(halfMaxInto[bfloat16.BFloat16]),
}

var minFolds = foldTable{
	dtypes.Int8:     typedFold(minInto[int8]),
	dtypes.Int16:    typedFold(minInto[int16]),
	dtypes.Int32:    typedFold(minInto[int32]),
	dtypes.Int64:    typedFold(minInto[int64]),
	dtypes.Uint8:    typedFold(minInto[uint8]),
	dtypes.Uint16:   typedFold(minInto[uint16]),
	dtypes.Uint32:   typedFold(minInto[uint32]),
	dtypes.Uint64:   typedFold(minInto[uint64]),
	dtypes.Float32:  typedFold(minInto[float32]),
	dtypes.Float64:  typedFold(minInto[float64]),
	dtypes.Float16:  typedFold(halfMinInto[float16.Float16]),
	dtypes.BFloat16: typedFold(halfMinInto[bfloat16.BFloat16]),
}
