package graph

import "github.com/born-ml/storch/internal/tensor"

// Intercepted operations. Every operation on a node runs on the underlying
// numeric tensors through the backend, then wraps the result into a new
// deterministic node whose parents are the node-typed operands. Binary
// operations merge the operands' plates and fail on conflicts; unary and
// scalar operations propagate the receiver's plates unchanged.

func (n *Node) binary(op string, other *Node, differentiable bool,
	f func(a, b *tensor.RawTensor) *tensor.RawTensor) (*Node, error) {
	n.ctx.trace(op, n, other)
	plates, err := n.plates.Merge(other.plates)
	if err != nil {
		return nil, err
	}
	return newDeterministic(n.ctx, f(n.value, other.value), []*Node{n, other}, plates, "", differentiable)
}

func (n *Node) unary(op string, differentiable bool,
	f func(*tensor.RawTensor) *tensor.RawTensor) (*Node, error) {
	n.ctx.trace(op, n)
	return newDeterministic(n.ctx, f(n.value), []*Node{n}, n.plates, "", differentiable)
}

// Add performs element-wise addition.
func (n *Node) Add(other *Node) (*Node, error) {
	return n.binary("add", other, true, n.ctx.backend.Add)
}

// Sub performs element-wise subtraction.
func (n *Node) Sub(other *Node) (*Node, error) {
	return n.binary("sub", other, true, n.ctx.backend.Sub)
}

// Mul performs element-wise multiplication.
func (n *Node) Mul(other *Node) (*Node, error) {
	return n.binary("mul", other, true, n.ctx.backend.Mul)
}

// Div performs element-wise division.
func (n *Node) Div(other *Node) (*Node, error) {
	return n.binary("div", other, true, n.ctx.backend.Div)
}

// Pow raises the node to the power other, element-wise.
func (n *Node) Pow(other *Node) (*Node, error) {
	return n.binary("pow", other, true, n.ctx.backend.Pow)
}

// MatMul performs matrix multiplication.
func (n *Node) MatMul(other *Node) (*Node, error) {
	return n.binary("matmul", other, true, n.ctx.backend.MatMul)
}

// AddScalar adds a plain numeric operand.
func (n *Node) AddScalar(s float64) (*Node, error) {
	return n.unary("add scalar", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.AddScalar(x, s)
	})
}

// SubScalar subtracts a plain numeric operand.
func (n *Node) SubScalar(s float64) (*Node, error) {
	return n.unary("sub scalar", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.SubScalar(x, s)
	})
}

// MulScalar multiplies by a plain numeric operand.
func (n *Node) MulScalar(s float64) (*Node, error) {
	return n.unary("mul scalar", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.MulScalar(x, s)
	})
}

// DivScalar divides by a plain numeric operand.
func (n *Node) DivScalar(s float64) (*Node, error) {
	return n.unary("div scalar", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.DivScalar(x, s)
	})
}

// Neg negates the node element-wise.
func (n *Node) Neg() (*Node, error) {
	return n.unary("neg", true, n.ctx.backend.Neg)
}

// Abs computes the element-wise absolute value.
func (n *Node) Abs() (*Node, error) {
	return n.unary("abs", true, n.ctx.backend.Abs)
}

// Exp computes the element-wise exponential.
func (n *Node) Exp() (*Node, error) {
	return n.unary("exp", true, n.ctx.backend.Exp)
}

// Log computes the element-wise natural logarithm.
func (n *Node) Log() (*Node, error) {
	return n.unary("log", true, n.ctx.backend.Log)
}

// Sqrt computes the element-wise square root.
func (n *Node) Sqrt() (*Node, error) {
	return n.unary("sqrt", true, n.ctx.backend.Sqrt)
}

// Eq performs explicit element-wise value comparison. Node identity for
// graph bookkeeping is pointer identity, never this operation.
func (n *Node) Eq(other *Node) (*Node, error) {
	return n.binary("eq", other, false, n.ctx.backend.Eq)
}

// Ne performs element-wise inequality comparison.
func (n *Node) Ne(other *Node) (*Node, error) {
	return n.binary("ne", other, false, n.ctx.backend.Ne)
}

// Gt performs element-wise greater-than comparison.
func (n *Node) Gt(other *Node) (*Node, error) {
	return n.binary("gt", other, false, n.ctx.backend.Gt)
}

// Ge performs element-wise greater-or-equal comparison.
func (n *Node) Ge(other *Node) (*Node, error) {
	return n.binary("ge", other, false, n.ctx.backend.Ge)
}

// Lt performs element-wise less-than comparison.
func (n *Node) Lt(other *Node) (*Node, error) {
	return n.binary("lt", other, false, n.ctx.backend.Lt)
}

// Le performs element-wise less-or-equal comparison.
func (n *Node) Le(other *Node) (*Node, error) {
	return n.binary("le", other, false, n.ctx.backend.Le)
}

// Reshape changes the event shape of the node. The plate structure is
// propagated unchanged; node validation rejects reshapes that would destroy
// a batch dimension.
func (n *Node) Reshape(newShape ...int) (*Node, error) {
	return n.unary("reshape", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.Reshape(x, tensor.Shape(newShape))
	})
}

// Index selects one index along a dimension. As with Reshape, indexing away
// a batch dimension fails validation on the resulting node.
func (n *Node) Index(dim, i int) (*Node, error) {
	return n.unary("index", true, func(x *tensor.RawTensor) *tensor.RawTensor {
		return n.ctx.backend.Index(x, dim, i)
	})
}
