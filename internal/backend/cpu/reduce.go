package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/storch/internal/tensor"
)

// Sum computes the total sum of all elements, producing a scalar tensor.
func (cpu *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("sum", x)
	out := tensor.Zeros(tensor.Shape{}, x.DType(), cpu.device)
	switch x.DType() {
	case tensor.Float32:
		var total float32
		for _, v := range x.AsFloat32() {
			total += v
		}
		out.AsFloat32()[0] = total
	case tensor.Float64:
		out.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	}
	return out
}

// SumDim sums along a dimension. With keepDim the reduced dimension is kept
// with size 1, which lets the result broadcast back against the input.
func (cpu *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	checkFloat("sum dim", x)
	dim = normalizeDim("sum dim", dim, len(x.Shape()))

	out := tensor.Zeros(reducedShape(x.Shape(), dim, true), x.DType(), cpu.device)
	switch x.DType() {
	case tensor.Float32:
		sumDimKernel(x.AsFloat32(), out.AsFloat32(), x.Shape(), dim)
	case tensor.Float64:
		sumDimKernel(x.AsFloat64(), out.AsFloat64(), x.Shape(), dim)
	}

	if !keepDim {
		squeezed, err := out.WithShape(reducedShape(x.Shape(), dim, false))
		if err != nil {
			panic(err)
		}
		return squeezed
	}
	return out
}

// MeanDim averages along a dimension.
func (cpu *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	sum := cpu.SumDim(x, dim, keepDim)
	d := normalizeDim("mean dim", dim, len(x.Shape()))
	return cpu.DivScalar(sum, float64(x.Shape()[d]))
}

func normalizeDim(op string, dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("%s: dimension %d out of range for tensor of rank %d", op, dim, ndim))
	}
	return dim
}

// reducedShape drops or squeezes dimension dim.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	out = append(out, shape[:dim]...)
	return append(out, shape[dim+1:]...)
}

// sumDimKernel accumulates src into dst with dimension dim collapsed.
// Iterates blocks: outer × shape[dim] × inner, where inner is the product of
// trailing dimensions.
func sumDimKernel[T tensor.Float](src, dst []T, shape tensor.Shape, dim int) {
	inner := 1
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range shape[:dim] {
		outer *= d
	}
	n := shape[dim]

	for o := 0; o < outer; o++ {
		for j := 0; j < n; j++ {
			srcBase := (o*n + j) * inner
			dstBase := o * inner
			for k := 0; k < inner; k++ {
				dst[dstBase+k] += src[srcBase+k]
			}
		}
	}
}
