// Package baseline implements variance-reduction baselines for
// score-function gradient estimators. A baseline is a reference value
// subtracted from a cost before forming the estimator; it must not
// contribute to gradient computation itself, so every baseline works on
// detached tensors.
package baseline

import (
	"fmt"

	"github.com/born-ml/storch/internal/graph"
	"github.com/born-ml/storch/internal/tensor"
)

// DefaultDecay is the exponential decay of a MovingAverage baseline.
const DefaultDecay = 0.95

// Baseline computes a reference value for the cost observed at a sampling
// site. Implementations keep whatever state they need across calls.
type Baseline interface {
	ComputeBaseline(sample *graph.Stochastic, cost *graph.Node) (*tensor.RawTensor, error)
}

// MovingAverage keeps an exponentially decayed running average of the
// reduced cost. Unconditional, so less precise than a conditional baseline,
// but it needs no extra samples. State persists for the lifetime of the
// instance; under concurrent use the caller must serialize access.
type MovingAverage struct {
	decay   float64
	average float64
}

// NewMovingAverage creates a moving-average baseline. A decay of 0 keeps
// only the latest cost; values close to 1 average over a long horizon.
func NewMovingAverage(decay float64) *MovingAverage {
	return &MovingAverage{decay: decay}
}

// Average returns the current running average.
func (m *MovingAverage) Average() float64 {
	return m.average
}

// ComputeBaseline reduces the cost over all plates to a single value and
// folds it into the running average, which it returns as a scalar tensor.
func (m *MovingAverage) ComputeBaseline(_ *graph.Stochastic, cost *graph.Node) (*tensor.RawTensor, error) {
	avgCost := graph.ReducePlates(cost).Item()
	m.average = m.decay*m.average + (1-m.decay)*avgCost
	return tensor.Scalar(m.average, cost.Value().DType(), cost.Value().Device()), nil
}

// BatchAverage is a leave-one-out baseline: for each sample, the mean of
// the other samples' costs along the sampling plate. Only correct for
// unweighted plates; weighted plates are unsupported.
type BatchAverage struct{}

// NewBatchAverage creates a leave-one-out batch-average baseline.
func NewBatchAverage() *BatchAverage {
	return &BatchAverage{}
}

// ComputeBaseline returns (sum(cost) - cost) / (n - 1) along the sampling
// plate, detached from the graph. At least two samples are required: a
// leave-one-out average is undefined for a single sample.
func (b *BatchAverage) ComputeBaseline(sample *graph.Stochastic, cost *graph.Node) (*tensor.RawTensor, error) {
	if sample.N() == 1 {
		return nil, fmt.Errorf("%w (sample %q)", graph.ErrSingleSample, sample.Name())
	}

	sum, err := graph.SumPlate(cost, sample.Name())
	if err != nil {
		return nil, err
	}

	be := cost.Context().Backend()
	others := be.Sub(sum, cost.Detach())
	return be.DivScalar(others, float64(sample.N()-1)), nil
}
