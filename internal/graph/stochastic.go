package graph

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/storch/internal/tensor"
)

// Stochastic represents one sampling event: n Monte-Carlo samples drawn
// from a distribution. It introduces a plate (name, n) as the outermost
// batch dimension and owns per-parameter gradient accumulation slots that
// the backward orchestrator fills in.
type Stochastic struct {
	Node
	n            int
	dist         Distribution
	requiresGrad bool

	// accumGrads maps distribution-parameter name to the accumulated
	// gradient estimate. Insertion-ordered so repeated passes report
	// parameters deterministically. Recreated whenever a new sample is
	// drawn, i.e. per node.
	accumGrads *orderedmap.OrderedMap[string, *tensor.RawTensor]
}

// NewStochastic wraps a sampled tensor. The plate (name, n) is prepended to
// the inherited plate list, so the sample dimension is the outermost batch
// dimension. requiresGrad states whether the sampling operation itself
// differentiates (e.g. reparameterized samples), independent of the sampled
// tensor's own flag.
func NewStochastic(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates,
	dist Distribution, n int, name string, requiresGrad bool) (*Stochastic, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if plates.Contains(name) {
		return nil, fmt.Errorf("%w: cannot create stochastic node %q, a parent sample already uses this name",
			ErrPlateCollision, name)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: stochastic node %q sampled with n = %d", ErrShapeMismatch, name, n)
	}

	withPlate := append(Plates{{Name: name, N: n}}, plates...)

	s := &Stochastic{
		n:            n,
		dist:         dist,
		requiresGrad: requiresGrad,
		accumGrads:   orderedmap.New[string, *tensor.RawTensor](),
	}
	if err := s.Node.init(ctx, value, parents, withPlate, name, requiresGrad); err != nil {
		return nil, err
	}
	s.Node.variant = s
	return s, nil
}

// N returns the number of Monte-Carlo samples.
func (s *Stochastic) N() int {
	return s.n
}

// Distribution returns the distribution this node was sampled from.
func (s *Stochastic) Distribution() Distribution {
	return s.dist
}

// SetAccumGrad stores the accumulated gradient for a distribution
// parameter. Called by the backward orchestrator.
func (s *Stochastic) SetAccumGrad(param string, grad *tensor.RawTensor) {
	s.accumGrads.Set(param, grad)
}

// AccumGrad returns the accumulated gradient for a parameter.
func (s *Stochastic) AccumGrad(param string) (*tensor.RawTensor, bool) {
	return s.accumGrads.Get(param)
}

// AccumGradNames returns the parameter names with accumulated gradients,
// in insertion order.
func (s *Stochastic) AccumGradNames() []string {
	names := make([]string, 0, s.accumGrads.Len())
	for pair := s.accumGrads.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ClearAccumGrads resets the gradient accumulation slots, as happens when a
// new sample is drawn for the same site.
func (s *Stochastic) ClearAccumGrads() {
	s.accumGrads = orderedmap.New[string, *tensor.RawTensor]()
}

// TotalExpectedGrad returns, per distribution parameter, one gradient
// estimate: the accumulated gradient unchanged when its rank already
// matches the parameter, otherwise its mean over the batch dimensions.
func (s *Stochastic) TotalExpectedGrad() map[string]*tensor.RawTensor {
	be := s.ctx.Backend()
	out := make(map[string]*tensor.RawTensor, s.accumGrads.Len())
	for pair := s.accumGrads.Oldest(); pair != nil; pair = pair.Next() {
		name, grad := pair.Key, pair.Value
		param := s.dist.Param(name)
		if param != nil && len(grad.Shape()) == len(param.Shape()) {
			out[name] = grad
			continue
		}
		out[name] = reduceLeading(be, grad, s.batchLen, true, false)
	}
	return out
}

// TotalVarianceGrad computes, per distribution parameter, the sample
// variance of the accumulated gradient across the batch dimensions: the sum
// of squared deviations from the batch mean, averaged into a scalar. Fails
// when the gradients carry no batch dimensions, which means they were not
// accumulated per sample.
func (s *Stochastic) TotalVarianceGrad() (map[string]*tensor.RawTensor, error) {
	be := s.ctx.Backend()
	out := make(map[string]*tensor.RawTensor, s.accumGrads.Len())
	for pair := s.accumGrads.Oldest(); pair != nil; pair = pair.Next() {
		name, grad := pair.Key, pair.Value
		param := s.dist.Param(name)
		if param != nil && len(grad.Shape()) == len(param.Shape()) {
			return nil, fmt.Errorf("%w (parameter %q)", ErrNoBatchDims, name)
		}

		expected := reduceLeading(be, grad, s.batchLen, true, true)
		diff := be.Sub(grad, expected)
		sse := reduceLeading(be, be.Mul(diff, diff), s.batchLen, false, false)
		out[name] = be.DivScalar(be.Sum(sse), float64(sse.NumElements()))
	}
	return out, nil
}

// reduceLeading reduces the k leading dimensions of x, by mean or sum.
// With keepDim the reduced dimensions stay as size 1 so the result
// broadcasts back against x.
func reduceLeading(be tensor.Backend, x *tensor.RawTensor, k int, mean, keepDim bool) *tensor.RawTensor {
	out := x
	for i := 0; i < k; i++ {
		dim := 0
		if keepDim {
			dim = i
		}
		if mean {
			out = be.MeanDim(out, dim, keepDim)
		} else {
			out = be.SumDim(out, dim, keepDim)
		}
	}
	return out
}
