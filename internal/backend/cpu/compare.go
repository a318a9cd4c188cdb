package cpu

import (
	"fmt"

	"github.com/born-ml/storch/internal/tensor"
)

// compareKernel applies a predicate element-wise with broadcasting,
// producing a Bool tensor.
func compareKernel[T tensor.Float](cpu *Backend, a, b *tensor.RawTensor, f func(T, T) bool) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("comparison: %v", err))
	}
	out := tensor.Zeros(outShape, tensor.Bool, cpu.device)

	ad, bd := data[T](a), data[T](b)
	od := out.AsBool()
	sa := broadcastStrides(outShape, a.Shape(), a.Strides())
	sb := broadcastStrides(outShape, b.Shape(), b.Strides())

	idx := make([]int, len(outShape))
	for i := range od {
		od[i] = f(ad[dot(idx, sa)], bd[dot(idx, sb)])
		incIndex(idx, outShape)
	}
	return out
}

func (cpu *Backend) compare(op string, a, b *tensor.RawTensor, f32 func(float32, float32) bool, f64 func(float64, float64) bool) *tensor.RawTensor {
	checkFloat(op, a, b)
	if a.DType() == tensor.Float32 {
		return compareKernel(cpu, a, b, f32)
	}
	return compareKernel(cpu, a, b, f64)
}

// Eq computes element-wise equality.
func (cpu *Backend) Eq(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("eq", a, b,
		func(x, y float32) bool { return x == y },
		func(x, y float64) bool { return x == y })
}

// Ne computes element-wise inequality.
func (cpu *Backend) Ne(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("ne", a, b,
		func(x, y float32) bool { return x != y },
		func(x, y float64) bool { return x != y })
}

// Gt computes element-wise a > b.
func (cpu *Backend) Gt(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("gt", a, b,
		func(x, y float32) bool { return x > y },
		func(x, y float64) bool { return x > y })
}

// Ge computes element-wise a >= b.
func (cpu *Backend) Ge(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("ge", a, b,
		func(x, y float32) bool { return x >= y },
		func(x, y float64) bool { return x >= y })
}

// Lt computes element-wise a < b.
func (cpu *Backend) Lt(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lt", a, b,
		func(x, y float32) bool { return x < y },
		func(x, y float64) bool { return x < y })
}

// Le computes element-wise a <= b.
func (cpu *Backend) Le(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("le", a, b,
		func(x, y float32) bool { return x <= y },
		func(x, y float64) bool { return x <= y })
}
