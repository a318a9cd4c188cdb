package graph

import "github.com/born-ml/storch/internal/tensor"

// NewDeterministic wraps a numeric tensor produced by a deterministic
// operation on the given parents. The plate list describes which leading
// dimensions of value belong to which plate, outermost first; it is copied,
// never aliased.
func NewDeterministic(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Node, error) {
	return newDeterministic(ctx, value, parents, plates, name, true)
}

// newDeterministic additionally takes the op-level differentiability flag;
// comparison results, for example, never carry gradient.
func newDeterministic(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string, differentiable bool) (*Node, error) {
	n := &Node{}
	if err := n.init(ctx, value, parents, plates, name, differentiable); err != nil {
		return nil, err
	}
	return n, nil
}

// NewCost wraps a terminal cost tensor: a quantity the inference
// orchestrator will minimize or maximize. The node registers itself with
// the context (when gradients are enabled) and can never be used as a
// parent. A cost node must be named so the orchestrator can report per-cost
// diagnostics.
func NewCost(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Node, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	n, err := NewDeterministic(ctx, value, parents, plates, name)
	if err != nil {
		return nil, err
	}
	n.isCost = true
	if ctx.GradEnabled {
		ctx.registerCost(n)
	}
	return n, nil
}
