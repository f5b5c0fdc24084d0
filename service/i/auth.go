package i

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/google/uuid"
)

// AccessToken is a signed bearer token and the moment it stops being accepted.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(creds dmn.Credentials) (*dmn.User, error)
	// SignIn returns the user and a bearer token for the range API.
	SignIn(creds dmn.Credentials) (*dmn.User, AccessToken, error)
	Profile(id uuid.UUID) (*dmn.User, error)
}
