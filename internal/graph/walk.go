package graph

import (
	"iter"

	"github.com/emirpasic/gods/v2/queues/arrayqueue"
	"github.com/emirpasic/gods/v2/stacks/arraystack"
)

// WalkOpts controls graph traversal.
type WalkOpts struct {
	// BreadthFirst switches from the default depth-first (stack-based)
	// order to FIFO order.
	BreadthFirst bool

	// OnlyDifferentiable restricts the traversal to differentiable edges.
	OnlyDifferentiable bool

	// RepeatVisited allows yielding a node more than once when the graph
	// reaches it along several paths. Off by default; each node is visited
	// exactly once.
	RepeatVisited bool
}

// WalkParents returns a lazy traversal of this node and everything reachable
// through parent edges. Each call starts a fresh traversal.
func (n *Node) WalkParents(opts WalkOpts) iter.Seq[*Node] {
	return walk(n, func(v *Node) []Edge { return v.parents }, opts)
}

// WalkChildren returns a lazy traversal of this node and everything
// reachable through child edges.
func (n *Node) WalkChildren(opts WalkOpts) iter.Seq[*Node] {
	return walk(n, func(v *Node) []Edge { return v.children }, opts)
}

// walk traverses the graph from start, expanding each node with expand.
// Visited-set membership is pointer identity.
func walk(start *Node, expand func(*Node) []Edge, opts WalkOpts) iter.Seq[*Node] {
	if opts.BreadthFirst {
		return walkBreadthFirst(start, expand, opts)
	}
	return walkDepthFirst(start, expand, opts)
}

func walkDepthFirst(start *Node, expand func(*Node) []Edge, opts WalkOpts) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		visited := make(map[*Node]struct{})
		stack := arraystack.New[*Node]()
		stack.Push(start)

		for !stack.Empty() {
			v, _ := stack.Pop()
			if _, ok := visited[v]; ok && !opts.RepeatVisited {
				continue
			}
			if !yield(v) {
				return
			}
			visited[v] = struct{}{}
			for _, e := range expand(v) {
				if e.Differentiable || !opts.OnlyDifferentiable {
					stack.Push(e.Node)
				}
			}
		}
	}
}

func walkBreadthFirst(start *Node, expand func(*Node) []Edge, opts WalkOpts) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		visited := map[*Node]struct{}{start: {}}
		queue := arrayqueue.New[*Node]()
		queue.Enqueue(start)

		for !queue.Empty() {
			v, _ := queue.Dequeue()
			if !yield(v) {
				return
			}
			for _, e := range expand(v) {
				if _, ok := visited[e.Node]; ok && !opts.RepeatVisited {
					continue
				}
				if e.Differentiable || !opts.OnlyDifferentiable {
					visited[e.Node] = struct{}{}
					queue.Enqueue(e.Node)
				}
			}
		}
	}
}
