// Package movement computes which cells an agent can reach in one turn.
//
// ComputeRange runs an exhaustive depth-first search from the origin bounded
// by the movement budget, keeping the cheapest path found for every cell.
// Session holds the agent's current origin and its last computed range.
package movement

import (
	"errors"
	"fmt"
	"sort"

	"github.com/beka-birhanu/vinom-range/grid"
)

var (
	ErrInvalidOrigin = errors.New("invalid origin")
)

// ReachableSet maps every coordinate reachable from an origin within a budget
// to the best path found for it. It is never modified after ComputeRange
// returns it.
type ReachableSet struct {
	origin grid.Coordinate
	budget int
	paths  map[grid.Coordinate]*Path
}

// ComputeRange returns every coordinate reachable from origin in at most
// budget moves. It fails with ErrInvalidOrigin when origin is off the grid or
// blocked.
//
// The search walks every branch in East, West, South, North order and never
// steps on a coordinate already in the branch's path. A branch that reaches a
// cell with moves left keeps its path if it is strictly cheaper than the
// recorded one; a branch that runs out of moves only fills in cells nobody
// recorded yet. An exhausted branch always costs the full budget, so every
// recorded cost is the shortest walking distance, and among equally short
// paths the first one found is kept.
func ComputeRange(g *grid.Grid, origin grid.Coordinate, budget int) (*ReachableSet, error) {
	start, ok := g.At(origin)
	if !ok {
		return nil, fmt.Errorf("%w: %s is out of bounds", ErrInvalidOrigin, origin)
	}
	if start.Blocked() {
		return nil, fmt.Errorf("%w: %s is blocked", ErrInvalidOrigin, origin)
	}

	set := &ReachableSet{
		origin: origin,
		budget: budget,
		paths:  make(map[grid.Coordinate]*Path),
	}
	set.visit(start, Origin(), budget)
	return set, nil
}

func (s *ReachableSet) visit(cell *grid.Cell, path *Path, remaining int) {
	c := cell.Coordinate()

	if remaining <= 0 {
		// Out of moves: this branch can not beat whatever is recorded already.
		if _, seen := s.paths[c]; !seen && path.Cost() > 0 {
			s.paths[c] = path
		}
		return
	}

	if best, seen := s.paths[c]; seen {
		if path.Cost() < best.Cost() {
			s.paths[c] = path
		}
	} else if path.Cost() > 0 {
		s.paths[c] = path
	}

	for _, d := range grid.Directions {
		neighbor := cell.Neighbor(d)
		if neighbor == nil || neighbor.Blocked() || path.Contains(neighbor.Coordinate()) {
			continue
		}
		s.visit(neighbor, path.Extend(c), remaining-1)
	}
}

// Origin returns the coordinate the range was computed from.
func (s *ReachableSet) Origin() grid.Coordinate {
	return s.origin
}

// Budget returns the movement budget the range was computed with.
func (s *ReachableSet) Budget() int {
	return s.budget
}

// Len returns the number of reachable coordinates.
func (s *ReachableSet) Len() int {
	return len(s.paths)
}

// Contains reports whether c is reachable.
func (s *ReachableSet) Contains(c grid.Coordinate) bool {
	_, ok := s.paths[c]
	return ok
}

// Get returns the best path recorded for c.
func (s *ReachableSet) Get(c grid.Coordinate) (*Path, bool) {
	p, ok := s.paths[c]
	return p, ok
}

// Coordinates returns every reachable coordinate sorted by row, then column.
func (s *ReachableSet) Coordinates() []grid.Coordinate {
	coords := make([]grid.Coordinate, 0, len(s.paths))
	for c := range s.paths {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}

// Route returns the walk to c for display: every cell stepped on after the
// origin, ending with c. A path records the cells a branch left, starting at
// the origin, so the route drops the origin and appends the destination.
func (s *ReachableSet) Route(c grid.Coordinate) ([]grid.Coordinate, bool) {
	p, ok := s.paths[c]
	if !ok {
		return nil, false
	}
	moves := p.Moves()
	return append(moves[1:], c), true
}
