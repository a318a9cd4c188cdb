// Package cpu implements the CPU numeric backend for the storch graph layer.
package cpu

import (
	"fmt"

	"github.com/born-ml/storch/internal/tensor"
)

// Backend implements tensor.Backend on the CPU. Float64 kernels lean on
// gonum where it has a matching primitive; float32 kernels are plain loops.
type Backend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *Backend) Device() tensor.Device {
	return cpu.device
}

// data reinterprets a float tensor's buffer as []T.
func data[T tensor.Float](r *tensor.RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	default:
		panic("unsupported element type")
	}
}

// checkFloat panics unless the operands are float tensors of the same dtype.
func checkFloat(op string, ts ...*tensor.RawTensor) {
	for _, t := range ts {
		if dt := t.DType(); dt != tensor.Float32 && dt != tensor.Float64 {
			panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, dt))
		}
		if t.DType() != ts[0].DType() {
			panic(fmt.Sprintf("%s: mixed dtypes %s and %s", op, ts[0].DType(), t.DType()))
		}
	}
}

// broadcastStrides aligns in's strides to the broadcast output shape,
// substituting stride 0 for broadcast (size-1 or missing) dimensions.
func broadcastStrides(out, in tensor.Shape, inStrides []int) []int {
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for d := range out {
		if d < offset {
			continue // missing leading dimension, stride 0
		}
		if in[d-offset] == 1 && out[d] != 1 {
			continue // broadcast dimension, stride 0
		}
		strides[d] = inStrides[d-offset]
	}
	return strides
}

// incIndex advances a multi-dimensional counter over shape.
func incIndex(idx []int, shape tensor.Shape) {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < shape[d] {
			return
		}
		idx[d] = 0
	}
}

// dot computes the flat offset for a multi-index given strides.
func dot(idx, strides []int) int {
	off := 0
	for d, v := range idx {
		off += v * strides[d]
	}
	return off
}
