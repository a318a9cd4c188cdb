package graph

import "fmt"

// Plate is a named, sized independent dimension: conceptually independent
// replications such as a minibatch or a set of Monte-Carlo samples. Plate
// names are unique within any node's active plate list.
type Plate struct {
	Name string
	N    int
}

func (p Plate) String() string {
	return fmt.Sprintf("(%s, %d)", p.Name, p.N)
}

// Plates is an ordered list of plates, outermost batch dimension first.
type Plates []Plate

// Clone returns a copy of the plate list. Node constructors insert entries
// into their plate list, so a list is always copied, never aliased, when
// handed to a new node.
func (ps Plates) Clone() Plates {
	out := make(Plates, len(ps))
	copy(out, ps)
	return out
}

// Contains reports whether the list carries a plate with the given name.
func (ps Plates) Contains(name string) bool {
	for _, p := range ps {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Merge combines two plate lists into an order-preserving union: all of ps
// first, then the plates of other not already present. Same-named plates
// must agree on size.
func (ps Plates) Merge(other Plates) (Plates, error) {
	out := ps.Clone()
	for _, p := range other {
		found := false
		for _, q := range out {
			if q.Name != p.Name {
				continue
			}
			if q.N != p.N {
				return nil, fmt.Errorf("%w: plate %s has size %d in one operand and %d in the other",
					ErrPlateConflict, p.Name, q.N, p.N)
			}
			found = true
			break
		}
		if !found {
			out = append(out, p)
		}
	}
	return out, nil
}
