package graph

import "github.com/born-ml/storch/internal/tensor"

// Distribution is the view the graph layer needs of a probability
// distribution: named parameter tensors. Sampling mathematics live in the
// estimator packages that implement Sampler.
type Distribution interface {
	// Param returns the named parameter tensor, or nil if unknown.
	Param(name string) *tensor.RawTensor

	// ParamNames returns the parameter names in a stable order.
	ParamNames() []string
}

// Sampler is the contract with an external sampling method: it draws n
// Monte-Carlo samples from dist in the given plate context and wraps the
// result into a stochastic node, choosing the differentiability of the
// sampling operation according to its gradient estimator.
type Sampler interface {
	Sample(ctx *Context, dist Distribution, parents []*Node, plates Plates, n int, name string) (*Stochastic, error)
}
