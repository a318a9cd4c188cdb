// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the numeric tensors the storch
// graph layer wraps.
//
// The package defines the core types:
//   - RawTensor: dense row-major tensor
//   - Backend: interface for device-specific compute implementations
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Ones(tensor.Shape{2, 3}, tensor.Float64, backend.Device())
//	y := backend.MulScalar(x, 2)
package tensor

import (
	"github.com/born-ml/storch/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int64   DataType = tensor.Int64
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the dense tensor representation graph nodes wrap.
type RawTensor = tensor.RawTensor

// Backend is the numeric-engine interface graph operations delegate to.
type Backend = tensor.Backend

// Float is the constraint for element types of floating-point tensors.
type Float = tensor.Float

// Creation functions

// NewRaw creates a new zero-initialized tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Zeros(shape, dtype, device)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Ones(shape, dtype, device)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	return tensor.Full(shape, value, dtype, device)
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar(value float64, dtype DataType, device Device) *RawTensor {
	return tensor.Scalar(value, dtype, device)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPU)
func FromSlice[T Float](data []T, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromSlice(data, shape, device)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
func Arange(start, end float64, dtype DataType, device Device) *RawTensor {
	return tensor.Arange(start, end, dtype, device)
}

// Randn creates a tensor with values from a standard normal distribution.
func Randn(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Randn(shape, dtype, device)
}

// BroadcastShapes computes the broadcast shape for two shapes following
// NumPy broadcasting rules.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
