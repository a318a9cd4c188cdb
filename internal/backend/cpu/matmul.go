package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/storch/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Float64 operands are delegated to gonum's BLAS-backed mat.Dense.
func (cpu *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("matmul", a, b)
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D operands, got %v and %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", as, bs))
	}
	m, k, n := as[0], as[1], bs[1]
	out := tensor.Zeros(tensor.Shape{m, n}, a.DType(), cpu.device)

	switch a.DType() {
	case tensor.Float64:
		am := mat.NewDense(m, k, a.AsFloat64())
		bm := mat.NewDense(k, n, b.AsFloat64())
		om := mat.NewDense(m, n, out.AsFloat64())
		om.Mul(am, bm)

	case tensor.Float32:
		ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				var sum float32
				for p := 0; p < k; p++ {
					sum += ad[i*k+p] * bd[p*n+j]
				}
				od[i*n+j] = sum
			}
		}
	}
	return out
}
