package graph

import (
	"fmt"

	"github.com/born-ml/storch/internal/tensor"
)

// Plate reductions. Baselines and the backward orchestrator need tensors
// summed or averaged over one named plate, or over every plate at once.
// The results are detached: reductions here never contribute gradients.

// plateDim locates the tensor dimension a plate occupies. Singleton plates
// are elided from the tensor, so the second result reports whether the
// plate occupies a real dimension at all.
func plateDim(n *Node, name string) (dim int, materialized bool, err error) {
	for _, p := range n.plates {
		if p.Name == name {
			return dim, p.N > 1, nil
		}
		if p.N > 1 {
			dim++
		}
	}
	return 0, false, fmt.Errorf("%w: %q not among plates %v of node %q", ErrUnknownPlate, name, n.plates, n.label())
}

// SumPlate sums the node's tensor over the named plate. The reduced
// dimension is kept with size 1 so the result broadcasts back against the
// node's tensor.
func SumPlate(n *Node, plate string) (*tensor.RawTensor, error) {
	dim, materialized, err := plateDim(n, plate)
	if err != nil {
		return nil, err
	}
	if !materialized {
		// A singleton plate occupies no dimension; the sum is the value.
		return n.Detach(), nil
	}
	return n.ctx.backend.SumDim(n.Detach(), dim, true), nil
}

// MeanPlate averages the node's tensor over the named plate, keeping the
// reduced dimension with size 1.
func MeanPlate(n *Node, plate string) (*tensor.RawTensor, error) {
	dim, materialized, err := plateDim(n, plate)
	if err != nil {
		return nil, err
	}
	if !materialized {
		return n.Detach(), nil
	}
	return n.ctx.backend.MeanDim(n.Detach(), dim, true), nil
}

// ReducePlates averages the node's tensor over all of its batch dimensions
// and then over the remaining event dimensions, producing a scalar.
func ReducePlates(n *Node) *tensor.RawTensor {
	be := n.ctx.backend
	out := n.Detach()
	for i := 0; i < n.batchLen; i++ {
		out = be.MeanDim(out, 0, false)
	}
	if out.NumElements() > 1 {
		out = be.DivScalar(be.Sum(out), float64(out.NumElements()))
	}
	return be.Reshape(out, tensor.Shape{})
}
