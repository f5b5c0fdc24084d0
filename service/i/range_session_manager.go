package i

import (
	"context"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/movement"
	"github.com/google/uuid"
)

// RangeSessionManager owns one movement session per player.
type RangeSessionManager interface {
	// Start opens a session for a player that holds none.
	// A nil origin resumes the player's last origin or uses the grid's
	// starting coordinate.
	Start(ctx context.Context, playerID uuid.UUID, origin *grid.Coordinate) (*movement.ReachableSet, error)

	// Move sets a new origin, which must be in the player's current range.
	Move(ctx context.Context, playerID uuid.UUID, to grid.Coordinate) (*movement.ReachableSet, error)

	Current(playerID uuid.UUID) (*movement.ReachableSet, error)
	Board(playerID uuid.UUID) (string, error)
	History(ctx context.Context, playerID uuid.UUID, limit int64) ([]MoveRecord, error)
	End(playerID uuid.UUID) error

	Grid() *grid.Grid
	Budget() int
}
