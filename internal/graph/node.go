package graph

import (
	"fmt"
	"iter"
	"strings"

	"github.com/born-ml/storch/internal/tensor"
)

// Edge links a node to a parent or child, annotated with whether the
// numeric engine's gradient flows along the link. The flag is fixed at
// edge-creation time and never recomputed.
type Edge struct {
	Node           *Node
	Differentiable bool
}

// Node wraps one numeric tensor with stochastic-computation-graph metadata:
// its parents and children, and the plates describing which leading
// dimensions of the tensor are independent batch dimensions.
//
// Node identity is pointer identity. Two nodes holding equal values are
// still distinct nodes; value comparison is the explicit Eq operation.
type Node struct {
	ctx   *Context
	name  string
	value *tensor.RawTensor

	parents  []Edge
	children []Edge

	plates     Plates
	batchLen   int
	eventShape tensor.Shape

	isCost bool
	// variant points back at the concrete wrapper (e.g. *Stochastic) so the
	// base node recovered from an edge can be narrowed again.
	variant any
}

// init validates the plate structure against the tensor's shape and records
// parent and child edges in both directions. opDifferentiable states whether
// the operation that produced this node differentiates at all; the per-edge
// flag additionally requires a backward path into the parent.
func (n *Node) init(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string, opDifferentiable bool) error {
	shape := value.Shape()
	seen := make(map[string]struct{}, len(plates))
	batchLen := 0

	for _, p := range plates {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: plate list contains two instances of plate %q; "+
				"this can happen when different samples reuse a name with a different number of samples",
				ErrPlateCollision, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.N < 1 {
			return fmt.Errorf("%w: plate %q has invalid size %d", ErrShapeMismatch, p.Name, p.N)
		}
		if p.N == 1 {
			// Singleton dimensions are never materialized in the tensor.
			continue
		}
		if len(shape) <= batchLen {
			return fmt.Errorf("%w: tensor shape %v is too small for its surrounding plates %v (violated at dimension %d)",
				ErrShapeMismatch, shape, plates, batchLen)
		}
		if shape[batchLen] != p.N {
			return fmt.Errorf("%w: dimension %d must equal plate %q with size %d, but was %d (plates: %v, shape: %v)",
				ErrShapeMismatch, batchLen, p.Name, p.N, shape[batchLen], plates, shape)
		}
		batchLen++
	}

	for _, p := range parents {
		if p.isCost {
			return fmt.Errorf("%w: %q is a cost node", ErrCostParent, p.label())
		}
	}

	n.ctx = ctx
	n.name = name
	n.value = value
	n.plates = plates.Clone()
	n.batchLen = batchLen
	n.eventShape = shape[batchLen:].Clone()

	for _, p := range parents {
		differentiable := opDifferentiable && ctx.HasBackwardPath(p)
		n.parents = append(n.parents, Edge{Node: p, Differentiable: differentiable})
		p.children = append(p.children, Edge{Node: n, Differentiable: differentiable})
	}
	return nil
}

// Name returns the node's identifier, empty for anonymous nodes.
func (n *Node) Name() string {
	return n.name
}

func (n *Node) label() string {
	if n.name != "" {
		return n.name
	}
	return "<unnamed>"
}

// Value returns the underlying numeric tensor.
func (n *Node) Value() *tensor.RawTensor {
	return n.value
}

// Detach returns the underlying tensor excluded from gradient computation.
func (n *Node) Detach() *tensor.RawTensor {
	return n.value.Detach()
}

// Context returns the context this node was constructed in.
func (n *Node) Context() *Context {
	return n.ctx
}

// Parents returns the parent edges in construction order.
func (n *Node) Parents() []Edge {
	return n.parents
}

// Children returns the child edges. Back-references are bookkeeping only;
// they carry no ownership.
func (n *Node) Children() []Edge {
	return n.children
}

// Plates returns the node's plates, outermost first.
func (n *Node) Plates() Plates {
	return n.plates
}

// BatchLen returns the number of leading tensor dimensions consumed by
// plates. Singleton plates contribute zero.
func (n *Node) BatchLen() int {
	return n.batchLen
}

// BatchShape returns the leading dimensions corresponding to active plates.
func (n *Node) BatchShape() tensor.Shape {
	return n.value.Shape()[:n.batchLen]
}

// EventShape returns the trailing dimensions beyond the batch dimensions.
func (n *Node) EventShape() tensor.Shape {
	return n.eventShape
}

// BatchDimIndices returns the indices of the batch dimensions.
func (n *Node) BatchDimIndices() []int {
	out := make([]int, n.batchLen)
	for i := range out {
		out[i] = i
	}
	return out
}

// EventDimIndices returns the indices of the event dimensions.
func (n *Node) EventDimIndices() []int {
	ndim := len(n.value.Shape())
	out := make([]int, 0, ndim-n.batchLen)
	for i := n.batchLen; i < ndim; i++ {
		out = append(out, i)
	}
	return out
}

// IterBatchIndices enumerates the Cartesian product of all batch index
// combinations, outermost plate first.
func (n *Node) IterBatchIndices() iter.Seq[[]int] {
	shape := n.BatchShape()
	return func(yield func([]int) bool) {
		if shape.NumElements() == 0 {
			return
		}
		idx := make([]int, len(shape))
		for {
			out := make([]int, len(idx))
			copy(out, idx)
			if !yield(out) {
				return
			}
			d := len(idx) - 1
			for ; d >= 0; d-- {
				idx[d]++
				if idx[d] < shape[d] {
					break
				}
				idx[d] = 0
			}
			if d < 0 {
				return
			}
		}
	}
}

// MultiDimPlates returns the plates with size greater than one, i.e. the
// plates that occupy an actual tensor dimension.
func (n *Node) MultiDimPlates() Plates {
	out := make(Plates, 0, len(n.plates))
	for _, p := range n.plates {
		if p.N > 1 {
			out = append(out, p)
		}
	}
	return out
}

// IsCost reports whether this node is a terminal cost node.
func (n *Node) IsCost() bool {
	return n.isCost
}

// Stochastic narrows the node to its stochastic wrapper, or nil if the node
// was not produced by sampling.
func (n *Node) Stochastic() *Stochastic {
	s, _ := n.variant.(*Stochastic)
	return s
}

// Independent narrows the node to its independent wrapper, or nil.
func (n *Node) Independent() *Independent {
	i, _ := n.variant.(*Independent)
	return i
}

// RequiresGrad reports whether the numeric engine tracks gradients into
// this node's tensor. Stochastic nodes carry their own flag, since the
// sampled tensor itself is usually not differentiable.
func (n *Node) RequiresGrad() bool {
	if s := n.Stochastic(); s != nil {
		return s.requiresGrad
	}
	return n.value.RequiresGrad()
}

// Bool is the boolean coercion of a node, and it always fails: a node may
// represent a batch of values with no single unambiguous truth value.
// Unwrap the node and inspect the numeric tensor instead.
func (n *Node) Bool() (bool, error) {
	return false, ErrIllegalConditional
}

// String renders the node kind, value and plates.
func (n *Node) String() string {
	var b strings.Builder
	if n.name != "" {
		b.WriteString(n.name)
		b.WriteString(": ")
	}
	switch {
	case n.Stochastic() != nil:
		b.WriteString("Stochastic")
	case n.isCost:
		b.WriteString("Cost")
	case n.Independent() != nil:
		b.WriteString("Independent")
	default:
		b.WriteString("Deterministic")
	}
	fmt.Fprintf(&b, " %s Plates: %v", n.value, n.plates)
	return b.String()
}
