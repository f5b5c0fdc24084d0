package movement

import "github.com/beka-birhanu/vinom-range/grid"

// Path is an immutable sequence of moves and its cost.
// Extending a path shares the parent's moves instead of copying them.
type Path struct {
	parent *Path
	last   grid.Coordinate
	cost   int
}

var origin = &Path{}

// Origin returns the empty path an agent starts a turn with.
func Origin() *Path {
	return origin
}

// Extend returns a new path with c appended. p is left untouched.
func (p *Path) Extend(c grid.Coordinate) *Path {
	return &Path{
		parent: p,
		last:   c,
		cost:   p.cost + 1,
	}
}

// Cost returns the number of moves in the path.
func (p *Path) Cost() int {
	return p.cost
}

// Len is the number of moves, always equal to Cost.
func (p *Path) Len() int {
	return p.cost
}

// Moves returns the moves in traversal order.
func (p *Path) Moves() []grid.Coordinate {
	moves := make([]grid.Coordinate, p.cost)
	for node := p; node.cost > 0; node = node.parent {
		moves[node.cost-1] = node.last
	}
	return moves
}

// Contains reports whether c is one of the moves.
func (p *Path) Contains(c grid.Coordinate) bool {
	for node := p; node.cost > 0; node = node.parent {
		if node.last == c {
			return true
		}
	}
	return false
}
