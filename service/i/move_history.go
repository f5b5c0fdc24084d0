package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/google/uuid"
)

// MoveRecord is one accepted origin change.
type MoveRecord struct {
	To grid.Coordinate
	At time.Time
}

// MoveHistory keeps the origins a player moved to, newest last.
type MoveHistory interface {
	Record(ctx context.Context, playerID uuid.UUID, to grid.Coordinate, at time.Time) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, playerID uuid.UUID, limit int64) ([]MoveRecord, error)
	Count(ctx context.Context, playerID uuid.UUID) (int64, error)
}
