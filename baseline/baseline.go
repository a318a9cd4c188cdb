// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package baseline provides variance-reduction baselines for score-function
// gradient estimators.
//
// Example:
//
//	b := baseline.NewMovingAverage(baseline.DefaultDecay)
//	ref, err := b.ComputeBaseline(sample, cost)
package baseline

import (
	"github.com/born-ml/storch/internal/baseline"
)

// DefaultDecay is the exponential decay of a MovingAverage baseline.
const DefaultDecay = baseline.DefaultDecay

// Baseline computes a reference value subtracted from a cost to reduce
// gradient-estimator variance without introducing bias.
type Baseline = baseline.Baseline

// MovingAverage keeps an exponentially decayed running average of the cost.
type MovingAverage = baseline.MovingAverage

// BatchAverage is a leave-one-out average over the other samples' costs.
type BatchAverage = baseline.BatchAverage

// NewMovingAverage creates a moving-average baseline with the given decay.
func NewMovingAverage(decay float64) *MovingAverage {
	return baseline.NewMovingAverage(decay)
}

// NewBatchAverage creates a leave-one-out batch-average baseline.
func NewBatchAverage() *BatchAverage {
	return baseline.NewBatchAverage()
}
