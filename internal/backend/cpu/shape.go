package cpu

import (
	"fmt"

	"github.com/born-ml/storch/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape.
func (cpu *Backend) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	out, err := x.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return out
}

// Index selects one index along a dimension, dropping that dimension.
// Works byte-wise, so it supports every dtype.
func (cpu *Backend) Index(x *tensor.RawTensor, dim, i int) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("index", dim, len(shape))
	if i < 0 || i >= shape[dim] {
		panic(fmt.Sprintf("index: %d out of bounds for dimension %d (size %d)", i, dim, shape[dim]))
	}

	outShape := reducedShape(shape, dim, false)
	out := tensor.Zeros(outShape, x.DType(), cpu.device)

	elemSize := x.DType().Size()
	inner := elemSize
	for _, d := range shape[dim+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range shape[:dim] {
		outer *= d
	}

	src, dst := x.Data(), out.Data()
	for o := 0; o < outer; o++ {
		srcOff := (o*shape[dim] + i) * inner
		copy(dst[o*inner:(o+1)*inner], src[srcOff:srcOff+inner])
	}
	return out
}
