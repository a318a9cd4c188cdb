package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	raw, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	return raw
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType, device Device) *RawTensor {
	return Full(shape, 1, dtype, device)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	raw := Zeros(shape, dtype, device)
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	case Int64:
		data := raw.AsInt64()
		for i := range data {
			data[i] = int64(value)
		}
	case Bool:
		data := raw.AsBool()
		for i := range data {
			data[i] = value != 0
		}
	}
	return raw
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar(value float64, dtype DataType, device Device) *RawTensor {
	return Full(Shape{}, value, dtype, device)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T Float](data []T, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), device)
	if err != nil {
		return nil, err
	}

	switch any(dummy).(type) {
	case float32:
		copy(raw.AsFloat32(), any(data).([]float32))
	case float64:
		copy(raw.AsFloat64(), any(data).([]float64))
	}
	return raw, nil
}

// Arange creates a 1D tensor with values [start, end) stepping by 1.
func Arange(start, end float64, dtype DataType, device Device) *RawTensor {
	n := int(math.Ceil(end - start))
	if n <= 0 {
		panic(fmt.Sprintf("arange: empty range [%v, %v)", start, end))
	}
	raw := Zeros(Shape{n}, dtype, device)
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(start + float64(i))
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = start + float64(i)
		}
	case Int64:
		data := raw.AsInt64()
		for i := range data {
			data[i] = int64(start) + int64(i)
		}
	default:
		panic(fmt.Sprintf("arange: unsupported dtype %s", dtype))
	}
	return raw
}

// Randn creates a tensor with values drawn from a standard normal
// distribution. Uses math/rand, which is appropriate for statistical use.
func Randn(shape Shape, dtype DataType, device Device) *RawTensor {
	raw := Zeros(shape, dtype, device)
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	default:
		panic(fmt.Sprintf("randn: unsupported dtype %s", dtype))
	}
	return raw
}
