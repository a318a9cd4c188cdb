// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public API for building stochastic computation
// graphs: computation graphs that mix deterministic tensor operations with
// sampling from probability distributions.
//
// Every numeric tensor entering the graph is wrapped into a node that
// records its parents, its plate (independent dimension) structure, and
// whether gradient flows along each parent edge. Operations on nodes are
// intercepted: they run on the raw tensors and re-wrap the result as a new
// node.
//
// Example:
//
//	ctx := graph.NewContext(cpu.New())
//	x, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3}, tensor.CPU)
//	batch, _ := graph.NewIndependent(ctx, x, nil, nil, "batch")
//	doubled, _ := batch.MulScalar(2)
//	cost, _ := graph.NewCost(ctx, doubled.Value(), []*graph.Node{&batch.Node}, batch.Plates(), "loss")
//	_ = cost
package graph

import (
	"github.com/born-ml/storch/internal/graph"
	"github.com/born-ml/storch/tensor"
)

// Plate is a named, sized independent dimension.
type Plate = graph.Plate

// Plates is an ordered plate list, outermost first.
type Plates = graph.Plates

// Edge links a node to a parent or child with a differentiability flag.
type Edge = graph.Edge

// Node is a tensor wrapped with graph metadata.
type Node = graph.Node

// Independent declares an existing tensor dimension independent.
type Independent = graph.Independent

// Stochastic wraps one sampling event.
type Stochastic = graph.Stochastic

// Context owns the state of one forward/backward computation cycle.
type Context = graph.Context

// WalkOpts controls graph traversal.
type WalkOpts = graph.WalkOpts

// Distribution is the graph layer's view of a probability distribution.
type Distribution = graph.Distribution

// Sampler is the contract with an external sampling method.
type Sampler = graph.Sampler

// Validation and precondition errors. Match with errors.Is.
var (
	ErrPlateCollision     = graph.ErrPlateCollision
	ErrShapeMismatch      = graph.ErrShapeMismatch
	ErrPlateConflict      = graph.ErrPlateConflict
	ErrCostParent         = graph.ErrCostParent
	ErrMissingName        = graph.ErrMissingName
	ErrIllegalConditional = graph.ErrIllegalConditional
	ErrPendingCosts       = graph.ErrPendingCosts
	ErrSingleSample       = graph.ErrSingleSample
	ErrNoBatchDims        = graph.ErrNoBatchDims
	ErrUnknownPlate       = graph.ErrUnknownPlate
)

// NewContext creates a Context bound to a numeric backend.
func NewContext(backend tensor.Backend) *Context {
	return graph.NewContext(backend)
}

// NewDeterministic wraps a tensor produced by a deterministic operation.
func NewDeterministic(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Node, error) {
	return graph.NewDeterministic(ctx, value, parents, plates, name)
}

// NewCost wraps a terminal cost tensor and registers it with the context.
func NewCost(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Node, error) {
	return graph.NewCost(ctx, value, parents, plates, name)
}

// NewIndependent declares the first dimension of value independent, adding
// a new outermost plate named after the node.
func NewIndependent(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Independent, error) {
	return graph.NewIndependent(ctx, value, parents, plates, name)
}

// NewStochastic wraps a sampled tensor, adding the plate (name, n).
func NewStochastic(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates,
	dist Distribution, n int, name string, requiresGrad bool) (*Stochastic, error) {
	return graph.NewStochastic(ctx, value, parents, plates, dist, n, name, requiresGrad)
}

// SumPlate sums a node's tensor over one named plate, keeping the reduced
// dimension so the result broadcasts back.
func SumPlate(n *Node, plate string) (*tensor.RawTensor, error) {
	return graph.SumPlate(n, plate)
}

// MeanPlate averages a node's tensor over one named plate.
func MeanPlate(n *Node, plate string) (*tensor.RawTensor, error) {
	return graph.MeanPlate(n, plate)
}

// ReducePlates averages a node's tensor over all plates, producing a scalar.
func ReducePlates(n *Node) *tensor.RawTensor {
	return graph.ReducePlates(n)
}
