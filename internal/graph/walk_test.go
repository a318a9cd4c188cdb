package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/storch/internal/tensor"
)

// diamond builds A -> B, A -> C, B -> D, C -> D (arrows parent to child)
// and returns the four nodes.
func diamond(t *testing.T, ctx *Context) (a, b, c, d *Node) {
	t.Helper()
	a = leaf(t, ctx, []float64{1}, tensor.Shape{1}, nil)

	var err error
	b, err = a.MulScalar(2)
	require.NoError(t, err)
	c, err = a.MulScalar(3)
	require.NoError(t, err)
	d, err = b.Add(c)
	require.NoError(t, err)
	return a, b, c, d
}

func collect(seq func(func(*Node) bool)) []*Node {
	var out []*Node
	seq(func(n *Node) bool {
		out = append(out, n)
		return true
	})
	return out
}

func TestWalkParentsDepthFirst(t *testing.T) {
	ctx := newTestContext()
	a, b, c, d := diamond(t, ctx)

	visited := collect(d.WalkParents(WalkOpts{}))

	// Every node exactly once, D first.
	require.Len(t, visited, 4)
	assert.Same(t, d, visited[0])
	counts := map[*Node]int{}
	for _, n := range visited {
		counts[n]++
	}
	for _, n := range []*Node{a, b, c, d} {
		assert.Equal(t, 1, counts[n])
	}
}

func TestWalkParentsBreadthFirst(t *testing.T) {
	ctx := newTestContext()
	a, b, c, d := diamond(t, ctx)

	visited := collect(d.WalkParents(WalkOpts{BreadthFirst: true}))

	require.Len(t, visited, 4)
	assert.Same(t, d, visited[0])
	// B and C are one step away, A two: BFS yields A last.
	assert.Same(t, b, visited[1])
	assert.Same(t, c, visited[2])
	assert.Same(t, a, visited[3])
}

func TestWalkParentsRepeatVisited(t *testing.T) {
	ctx := newTestContext()
	a, _, _, d := diamond(t, ctx)

	visited := collect(d.WalkParents(WalkOpts{RepeatVisited: true}))

	counts := map[*Node]int{}
	for _, n := range visited {
		counts[n]++
	}
	// A is reachable along two paths.
	assert.Equal(t, 2, counts[a])
}

func TestWalkParentsOnlyDifferentiable(t *testing.T) {
	ctx := newTestContext()

	raw, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	gradLeaf, err := NewDeterministic(ctx, raw.RequireGrad(), nil, nil, "w")
	require.NoError(t, err)
	plainLeaf := leaf(t, ctx, []float64{3, 4}, tensor.Shape{2}, nil)

	sum, err := gradLeaf.Add(plainLeaf)
	require.NoError(t, err)

	visited := collect(sum.WalkParents(WalkOpts{OnlyDifferentiable: true}))
	require.Len(t, visited, 2)
	assert.Same(t, sum, visited[0])
	assert.Same(t, gradLeaf, visited[1])
}

func TestWalkChildren(t *testing.T) {
	ctx := newTestContext()
	a, b, c, d := diamond(t, ctx)

	visited := collect(a.WalkChildren(WalkOpts{BreadthFirst: true}))
	require.Len(t, visited, 4)
	assert.Same(t, a, visited[0])
	assert.Same(t, b, visited[1])
	assert.Same(t, c, visited[2])
	assert.Same(t, d, visited[3])
}

func TestWalkIsRestartable(t *testing.T) {
	ctx := newTestContext()
	_, _, _, d := diamond(t, ctx)

	seq := d.WalkParents(WalkOpts{})
	first := collect(seq)
	second := collect(seq)
	assert.Equal(t, first, second)
}

func TestWalkEarlyStop(t *testing.T) {
	ctx := newTestContext()
	_, _, _, d := diamond(t, ctx)

	var got []*Node
	for n := range d.WalkParents(WalkOpts{}) {
		got = append(got, n)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}
