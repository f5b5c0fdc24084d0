package movement

import (
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-range/grid"
)

// Session tracks one agent's origin and the range computed from it.
// The agent may only move onto a cell of the range it currently holds.
type Session struct {
	grid      *grid.Grid
	budget    int
	origin    grid.Coordinate
	reachable *ReachableSet // nil until the first SetOrigin
	mu        sync.RWMutex
}

// NewSession creates a session over g with a fixed movement budget.
func NewSession(g *grid.Grid, budget int) *Session {
	return &Session{
		grid:   g,
		budget: budget,
	}
}

// SetOrigin moves the agent to c and returns the range from there.
//
// The first call accepts any open cell on the grid. Later calls fail with
// ErrInvalidOrigin unless c is in the currently held range; a failed call
// leaves the held range as it was.
func (s *Session) SetOrigin(c grid.Coordinate) (*ReachableSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reachable != nil && !s.reachable.Contains(c) {
		return nil, fmt.Errorf("%w: %s is not reachable from %s", ErrInvalidOrigin, c, s.origin)
	}

	set, err := ComputeRange(s.grid, c, s.budget)
	if err != nil {
		return nil, err
	}

	s.origin = c
	s.reachable = set
	return set, nil
}

// Origin returns the current origin, false before the first SetOrigin.
func (s *Session) Origin() (grid.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin, s.reachable != nil
}

// Reachable returns the held range, nil before the first SetOrigin.
func (s *Session) Reachable() *ReachableSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reachable
}

func (s *Session) Budget() int {
	return s.budget
}

func (s *Session) Grid() *grid.Grid {
	return s.grid
}
