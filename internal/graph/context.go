package graph

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/storch/internal/tensor"
)

// Context owns the state of one forward-then-backward computation cycle:
// the pending cost registry, the grad-enabled and debug flags, and the
// differentiability predicate supplied by the numeric-engine integration.
//
// A Context replaces process-wide registries so that repeated or concurrent
// cycles stay composable; it is not itself safe for concurrent use. Graph
// construction is synchronous and single-threaded per Context.
type Context struct {
	backend tensor.Backend
	logger  *slog.Logger
	costs   []*Node

	// GradEnabled gates cost-node registration. When false, cost nodes are
	// constructed like ordinary deterministic nodes.
	GradEnabled bool

	// Debug makes the intercepted-operation machinery log which operation
	// was wrapped. Purely observational.
	Debug bool

	// HasBackwardPath decides, at edge-creation time, whether the numeric
	// engine's gradient will flow into a parent. The default predicate
	// reports true when the parent is a gradient leaf or already has a
	// differentiable parent edge of its own.
	HasBackwardPath func(parent *Node) bool
}

// NewContext creates a Context bound to a numeric backend, with gradients
// enabled and the default differentiability predicate.
func NewContext(backend tensor.Backend) *Context {
	return &Context{
		backend:         backend,
		logger:          slog.Default(),
		GradEnabled:     true,
		HasBackwardPath: defaultHasBackwardPath,
	}
}

// defaultHasBackwardPath reports whether gradient can reach parent at all:
// either parent is a gradient leaf, or gradient already flows into it from
// one of its own parents. Computable from the parent's existing edges alone,
// without a full graph traversal.
func defaultHasBackwardPath(parent *Node) bool {
	if parent.RequiresGrad() {
		return true
	}
	for _, e := range parent.parents {
		if e.Differentiable {
			return true
		}
	}
	return false
}

// Backend returns the numeric backend graph operations delegate to.
func (c *Context) Backend() tensor.Backend {
	return c.backend
}

// SetLogger replaces the logger used for debug traces.
func (c *Context) SetLogger(l *slog.Logger) {
	c.logger = l
}

// registerCost records a terminal cost node for later collection by the
// backward orchestrator.
func (c *Context) registerCost(n *Node) {
	c.costs = append(c.costs, n)
}

// Costs returns the pending cost nodes in registration order.
func (c *Context) Costs() []*Node {
	return c.costs
}

// ConsumeCosts returns the pending cost nodes and clears the registry.
// The backward orchestrator calls this after a backward pass.
func (c *Context) ConsumeCosts() []*Node {
	costs := c.costs
	c.costs = nil
	return costs
}

// BeginPass checks that the previous cycle's costs were consumed. Leftover
// state is a usage error to surface, not to silently reset.
func (c *Context) BeginPass() error {
	if len(c.costs) > 0 {
		return fmt.Errorf("%w: %d cost node(s) were never consumed", ErrPendingCosts, len(c.costs))
	}
	return nil
}

// trace logs one intercepted operation when Debug is set.
func (c *Context) trace(op string, operands ...*Node) {
	if !c.Debug {
		return
	}
	names := make([]string, len(operands))
	for i, n := range operands {
		names[i] = n.label()
	}
	c.logger.Debug("wrapping tensor operation", "op", op, "operands", names)
}
