package i

import (
	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// Fails with dmn.ErrUsernameTaken when another user holds the username.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID, dmn.ErrUserNotFound if absent.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username, dmn.ErrUserNotFound if absent.
	ByUsername(username string) (*dmn.User, error)

	// SaveOrigin stores the origin the player currently holds.
	SaveOrigin(id uuid.UUID, origin grid.Coordinate) error
}
