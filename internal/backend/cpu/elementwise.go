package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/storch/internal/tensor"
)

// binaryKernel applies f element-wise with broadcasting.
func binaryKernel[T tensor.Float](cpu *Backend, a, b *tensor.RawTensor, f func(T, T) T) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("binary op: %v", err))
	}
	out := tensor.Zeros(outShape, a.DType(), cpu.device)

	ad, bd, od := data[T](a), data[T](b), data[T](out)
	sa := broadcastStrides(outShape, a.Shape(), a.Strides())
	sb := broadcastStrides(outShape, b.Shape(), b.Strides())

	idx := make([]int, len(outShape))
	for i := range od {
		od[i] = f(ad[dot(idx, sa)], bd[dot(idx, sb)])
		incIndex(idx, outShape)
	}
	return out
}

// unaryKernel applies f element-wise.
func unaryKernel[T tensor.Float](cpu *Backend, x *tensor.RawTensor, f func(T) T) *tensor.RawTensor {
	out := tensor.Zeros(x.Shape(), x.DType(), cpu.device)
	xd, od := data[T](x), data[T](out)
	for i := range od {
		od[i] = f(xd[i])
	}
	return out
}

// float64FastPath applies an in-place gonum primitive when both operands
// share a shape, avoiding the broadcast counter.
func (cpu *Backend) float64FastPath(a, b *tensor.RawTensor, f func(dst, s []float64)) *tensor.RawTensor {
	out := a.Clone()
	f(out.AsFloat64(), b.AsFloat64())
	return out
}

// Add performs element-wise addition with broadcasting.
func (cpu *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("add", a, b)
	if a.DType() == tensor.Float64 && a.Shape().Equal(b.Shape()) {
		return cpu.float64FastPath(a, b, floats.Add)
	}
	if a.DType() == tensor.Float32 {
		return binaryKernel(cpu, a, b, func(x, y float32) float32 { return x + y })
	}
	return binaryKernel(cpu, a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("sub", a, b)
	if a.DType() == tensor.Float64 && a.Shape().Equal(b.Shape()) {
		return cpu.float64FastPath(a, b, floats.Sub)
	}
	if a.DType() == tensor.Float32 {
		return binaryKernel(cpu, a, b, func(x, y float32) float32 { return x - y })
	}
	return binaryKernel(cpu, a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("mul", a, b)
	if a.DType() == tensor.Float64 && a.Shape().Equal(b.Shape()) {
		return cpu.float64FastPath(a, b, floats.Mul)
	}
	if a.DType() == tensor.Float32 {
		return binaryKernel(cpu, a, b, func(x, y float32) float32 { return x * y })
	}
	return binaryKernel(cpu, a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("div", a, b)
	if a.DType() == tensor.Float64 && a.Shape().Equal(b.Shape()) {
		return cpu.float64FastPath(a, b, floats.Div)
	}
	if a.DType() == tensor.Float32 {
		return binaryKernel(cpu, a, b, func(x, y float32) float32 { return x / y })
	}
	return binaryKernel(cpu, a, b, func(x, y float64) float64 { return x / y })
}

// Pow raises a to the power b element-wise with broadcasting.
func (cpu *Backend) Pow(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("pow", a, b)
	if a.DType() == tensor.Float32 {
		return binaryKernel(cpu, a, b, func(x, y float32) float32 {
			return float32(math.Pow(float64(x), float64(y)))
		})
	}
	return binaryKernel(cpu, a, b, math.Pow)
}

// AddScalar adds a scalar to every element.
func (cpu *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	checkFloat("add scalar", x)
	if x.DType() == tensor.Float32 {
		s := float32(scalar)
		return unaryKernel(cpu, x, func(v float32) float32 { return v + s })
	}
	out := x.Clone()
	floats.AddConst(scalar, out.AsFloat64())
	return out
}

// SubScalar subtracts a scalar from every element.
func (cpu *Backend) SubScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.AddScalar(x, -scalar)
}

// MulScalar multiplies every element by a scalar.
func (cpu *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	checkFloat("mul scalar", x)
	if x.DType() == tensor.Float32 {
		s := float32(scalar)
		return unaryKernel(cpu, x, func(v float32) float32 { return v * s })
	}
	out := x.Clone()
	floats.Scale(scalar, out.AsFloat64())
	return out
}

// DivScalar divides every element by a scalar.
func (cpu *Backend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.MulScalar(x, 1/scalar)
}

// Neg negates every element.
func (cpu *Backend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.MulScalar(x, -1)
}

// Abs computes the element-wise absolute value.
func (cpu *Backend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("abs", x)
	if x.DType() == tensor.Float32 {
		return unaryKernel(cpu, x, func(v float32) float32 {
			return float32(math.Abs(float64(v)))
		})
	}
	return unaryKernel(cpu, x, math.Abs)
}

// Exp computes the element-wise exponential.
func (cpu *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("exp", x)
	if x.DType() == tensor.Float32 {
		return unaryKernel(cpu, x, func(v float32) float32 {
			return float32(math.Exp(float64(v)))
		})
	}
	return unaryKernel(cpu, x, math.Exp)
}

// Log computes the element-wise natural logarithm.
func (cpu *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("log", x)
	if x.DType() == tensor.Float32 {
		return unaryKernel(cpu, x, func(v float32) float32 {
			return float32(math.Log(float64(v)))
		})
	}
	return unaryKernel(cpu, x, math.Log)
}

// Sqrt computes the element-wise square root.
func (cpu *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("sqrt", x)
	if x.DType() == tensor.Float32 {
		return unaryKernel(cpu, x, func(v float32) float32 {
			return float32(math.Sqrt(float64(v)))
		})
	}
	return unaryKernel(cpu, x, math.Sqrt)
}
