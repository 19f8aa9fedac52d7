/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package tensors implements a `Tensor`, a shaped and typed array stored as one contiguous flat Go slice.
//
// Tensors are owned by the host: they are allocated here (FromShape, FromFlatDataAndDimensions, FromValue)
// and operators only access them through the flat data views:
//
//   - ConstFlatData[T](t, fn): immutable view, used for operator inputs.
//   - MutableFlatData[T](t, fn): mutable view, used for operator outputs.
//
// Example:
//
//	t := tensors.FromValue([][]float32{{1, 2}, {3, 4}}) // Tensor (Float32)[2 2]
package tensors

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"unsafe"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/minmax/types/shapes"
	"github.com/pkg/errors"
)

// Tensor is a multidimensional array defined by its shape (dtype and axes dimensions), with
// its content stored as a flat (1D) slice of the dtype's Go type, in row-major order.
type Tensor struct {
	shape shapes.Shape

	// flat holds the data, a []T for the shape's dtype.
	flat any
}

// FromShape returns a Tensor with the given shape, with the data initialized with zeros.
func FromShape(shape shapes.Shape) *Tensor {
	if !shape.Ok() {
		panic(errors.Errorf("tensors.FromShape(%s): invalid shape", shape))
	}
	goType := shape.DType.GoType()
	if goType == nil {
		panic(errors.Errorf("tensors.FromShape(%s): dtype has no Go type", shape))
	}
	size := shape.Size()
	flatV := reflect.MakeSlice(reflect.SliceOf(goType), size, size)
	return &Tensor{
		shape: shape.Clone(),
		flat:  flatV.Interface(),
	}
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions, filled with the flattened values given in `data`.
// The data is copied to the Tensor, and the dtype is inferred from `T`.
func FromFlatDataAndDimensions[T dtypes.Supported](data []T, dimensions ...int) (*Tensor, error) {
	dtype := dtypes.FromGenericsType[T]()
	if dtype == dtypes.InvalidDType {
		var v T
		return nil, errors.Errorf("FromFlatDataAndDimensions: unsupported Go type %T", v)
	}
	shape := shapes.Make(dtype, dimensions...)
	if len(data) != shape.Size() {
		return nil, errors.Errorf("FromFlatDataAndDimensions(%s): data size is %d, but dimensions size is %d",
			shape, len(data), shape.Size())
	}
	t := FromShape(shape)
	copyIntoFlat(t.flat, data)
	return t, nil
}

// FromScalar creates a scalar tensor (rank 0) holding value.
func FromScalar[T dtypes.Supported](value T) *Tensor {
	t, err := FromFlatDataAndDimensions([]T{value})
	if err != nil {
		panic(err)
	}
	return t
}

// FromValue returns a tensor constructed from the given multi-dimension slice (or scalar).
// If the rank of the `value` is larger than 1, the shape of all sub-slices must be the same.
func FromValue(value any) (*Tensor, error) {
	if t, ok := value.(*Tensor); ok {
		return t, nil
	}
	shape, err := shapes.FromAnyValue(value)
	if err != nil {
		return nil, errors.WithMessagef(err, "cannot create tensor from %T", value)
	}
	t := FromShape(shape)
	flatV := reflect.ValueOf(t.flat)
	var pos int
	flattenInto(flatV, reflect.ValueOf(value), &pos)
	return t, nil
}

// flattenInto copies the leaves of the (possibly multi-level) slice v into flatV, starting at *pos.
func flattenInto(flatV, v reflect.Value, pos *int) {
	if v.Kind() != reflect.Slice {
		elem := flatV.Index(*pos)
		if v.Type() != elem.Type() {
			// E.g.: Go's `int` is stored as Int64 (or Int32).
			v = v.Convert(elem.Type())
		}
		elem.Set(v)
		*pos++
		return
	}
	for ii := range v.Len() {
		flattenInto(flatV, v.Index(ii), pos)
	}
}

// copyIntoFlat copies a []T into the tensor flat storage, converting `int` if needed.
func copyIntoFlat[T dtypes.Supported](flat any, data []T) {
	if typed, ok := flat.([]T); ok {
		copy(typed, data)
		return
	}
	flatV := reflect.ValueOf(flat)
	elemType := flatV.Type().Elem()
	for ii, v := range data {
		flatV.Index(ii).Set(reflect.ValueOf(v).Convert(elemType))
	}
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the tensor's shape.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Size returns the number of elements in the tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// Memory returns the number of bytes used to store the tensor.
func (t *Tensor) Memory() uintptr { return t.shape.Memory() }

// Flat returns the flat slice (a []T of the tensor's dtype) backing the tensor.
// It is not a copy: changes to it change the tensor.
func (t *Tensor) Flat() any { return t.flat }

// ConstFlatData calls accessFn with the flat data of the tensor, which must not be changed.
//
// It returns an error if T doesn't match the tensor's dtype.
func ConstFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) error {
	flat, ok := t.flat.([]T)
	if !ok {
		var v T
		return errors.Errorf("ConstFlatData[%T] is incompatible with tensor's dtype %s", v, t.shape.DType)
	}
	accessFn(flat)
	return nil
}

// MutableFlatData calls accessFn with the flat data of the tensor, which can be changed in place.
//
// It returns an error if T doesn't match the tensor's dtype.
func MutableFlatData[T dtypes.Supported](t *Tensor, accessFn func(flat []T)) error {
	flat, ok := t.flat.([]T)
	if !ok {
		var v T
		return errors.Errorf("MutableFlatData[%T] is incompatible with tensor's dtype %s", v, t.shape.DType)
	}
	accessFn(flat)
	return nil
}

// CopyFlatData returns a copy of the flat data of the tensor.
//
// It returns an error if T doesn't match the tensor's dtype.
func CopyFlatData[T dtypes.Supported](t *Tensor) ([]T, error) {
	var result []T
	err := ConstFlatData(t, func(flat []T) {
		result = make([]T, len(flat))
		copy(result, flat)
	})
	return result, err
}

// Clone returns a deep copy of the tensor, with its own storage.
func (t *Tensor) Clone() *Tensor {
	clone := FromShape(t.shape)
	reflect.Copy(reflect.ValueOf(clone.flat), reflect.ValueOf(t.flat))
	return clone
}

// Value returns a multidimensional slice (or a scalar) with a copy of the values of the tensor.
// E.g.: a Float32 tensor of shape [2 3] returns a [][]float32.
func (t *Tensor) Value() any {
	flatV := reflect.ValueOf(t.flat)
	if t.shape.IsScalar() {
		return flatV.Index(0).Interface()
	}
	var pos int
	return buildValue(flatV, t.shape.Dimensions, &pos).Interface()
}

func buildValue(flatV reflect.Value, dimensions []int, pos *int) reflect.Value {
	sliceType := flatV.Type()
	for range len(dimensions) - 1 {
		sliceType = reflect.SliceOf(sliceType)
	}
	result := reflect.MakeSlice(sliceType, dimensions[0], dimensions[0])
	if len(dimensions) == 1 {
		reflect.Copy(result, flatV.Slice(*pos, *pos+dimensions[0]))
		*pos += dimensions[0]
		return result
	}
	for ii := range dimensions[0] {
		result.Index(ii).Set(buildValue(flatV, dimensions[1:], pos))
	}
	return result
}

// bytes returns the raw memory of the tensor data, without copying.
func (t *Tensor) bytes() []byte {
	flatV := reflect.ValueOf(t.flat)
	if flatV.Len() == 0 {
		return nil
	}
	numBytes := uintptr(flatV.Len()) * flatV.Type().Elem().Size()
	return unsafe.Slice((*byte)(flatV.UnsafePointer()), numBytes)
}

// SharesStorage returns whether t and other are backed by overlapping memory.
// A tensor always shares storage with itself.
func (t *Tensor) SharesStorage(other *Tensor) bool {
	if t == nil || other == nil {
		return false
	}
	if t == other {
		return true
	}
	a, b := t.bytes(), other.bytes()
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart, bStart := uintptr(unsafe.Pointer(&a[0])), uintptr(unsafe.Pointer(&b[0]))
	return aStart < bStart+uintptr(len(b)) && bStart < aStart+uintptr(len(a))
}

// Equal returns whether both tensors have the same shape and bit-identical contents.
// Because the comparison is on the raw bits, two NaNs with the same payload are equal, and -0 differs from +0.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if !t.shape.Equal(other.shape) {
		return false
	}
	return bytes.Equal(t.bytes(), other.bytes())
}

// String implements fmt.Stringer, e.g.: "(Float32)[2]: [1 2]".
func (t *Tensor) String() string {
	if t == nil {
		return "<nil tensor>"
	}
	if t.shape.IsScalar() {
		return fmt.Sprintf("%s: %v", t.shape, t.Value())
	}
	const maxElements = 64
	if t.Size() > maxElements {
		return t.shape.String() + ": [" + strconv.Itoa(t.Size()) + " elements]"
	}
	return fmt.Sprintf("%s: %v", t.shape, t.Value())
}
