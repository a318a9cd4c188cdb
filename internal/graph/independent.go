package graph

import (
	"fmt"

	"github.com/born-ml/storch/internal/tensor"
)

// Independent denotes an independence assumption on a tensor, such as the
// minibatch dimension. The first dimension of the input tensor is declared
// independent and becomes the outermost plate, named after the node.
type Independent struct {
	Node
	n int
}

// NewIndependent wraps value with a new plate (name, value.Shape()[0])
// prepended to the inherited plate list. The name must not collide with a
// plate already in scope: shadowing an existing sample dimension would make
// the two indistinguishable.
func NewIndependent(ctx *Context, value *tensor.RawTensor, parents []*Node, plates Plates, name string) (*Independent, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if plates.Contains(name) {
		return nil, fmt.Errorf("%w: cannot create independent node %q, a parent sample already uses this name",
			ErrPlateCollision, name)
	}
	shape := value.Shape()
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: independent node %q needs at least one dimension to mark independent",
			ErrShapeMismatch, name)
	}

	n := shape[0]
	withPlate := append(Plates{{Name: name, N: n}}, plates...)

	ind := &Independent{n: n}
	if err := ind.Node.init(ctx, value, parents, withPlate, name, true); err != nil {
		return nil, err
	}
	ind.Node.variant = ind
	return ind, nil
}

// N returns the size of the independent dimension.
func (ind *Independent) N() int {
	return ind.n
}
