package graph

import "errors"

// Structural validation errors. Node constructors wrap these with details
// about the offending plate or dimension; callers match with errors.Is.
var (
	// ErrPlateCollision signals two plates with the same name in one node's
	// plate list, or a new plate shadowing an existing sample name.
	ErrPlateCollision = errors.New("plate name collision")

	// ErrShapeMismatch signals a tensor whose leading dimensions disagree
	// with the declared plate sizes.
	ErrShapeMismatch = errors.New("tensor shape does not match plates")

	// ErrPlateConflict signals two operands carrying same-named plates with
	// different sizes.
	ErrPlateConflict = errors.New("conflicting plates")

	// ErrCostParent signals an attempt to use a terminal cost node as a
	// parent. Cost nodes are graph sinks.
	ErrCostParent = errors.New("cost nodes cannot have children")

	// ErrMissingName signals a cost or plate-introducing node constructed
	// without a name.
	ErrMissingName = errors.New("missing required name")

	// ErrIllegalConditional signals converting a node to a boolean truth
	// value. A node may hold a batch of values with no single truth value,
	// so the conversion must never silently pick an element.
	ErrIllegalConditional = errors.New("illegal conditional: storch nodes cannot be converted to bool")

	// ErrPendingCosts signals starting a new forward pass while the previous
	// pass's cost nodes were never consumed.
	ErrPendingCosts = errors.New("pending cost nodes from a previous pass")
)

// Precondition errors for statistics over accumulated gradients and for
// baselines.
var (
	// ErrSingleSample signals a leave-one-out baseline invoked with n == 1.
	ErrSingleSample = errors.New("batch average baseline requires more than one sample")

	// ErrNoBatchDims signals a variance computation over gradients that were
	// not accumulated per sample.
	ErrNoBatchDims = errors.New("no batched dimensions to take statistics over: accumulate gradients per sample first")

	// ErrUnknownPlate signals a plate reduction over a plate the node does
	// not carry.
	ErrUnknownPlate = errors.New("unknown plate")
)
