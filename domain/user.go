package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3
	passwordHashCost         = 14

	minUsernameLength = 3
	maxUsernameLength = 20
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	ErrUsernameTooShort = errors.New("username too short")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrInvalidUsername  = errors.New("invalid username format")
	ErrWeakPassword     = errors.New("weak password")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("user not found")
)

// Credentials is what a player signs up and signs in with.
type Credentials struct {
	Username string
	Password string
}

// Normalized returns the credentials with surrounding spaces removed from the username.
func (c Credentials) Normalized() Credentials {
	return Credentials{Username: strings.TrimSpace(c.Username), Password: c.Password}
}

// Validate checks the username shape and the password strength.
func (c Credentials) Validate() error {
	switch n := len(c.Username); {
	case n < minUsernameLength:
		return ErrUsernameTooShort
	case n > maxUsernameLength:
		return ErrUsernameTooLong
	case !usernameRegex.MatchString(c.Username):
		return ErrInvalidUsername
	}

	// Passwords built from the username score low.
	if zxcvbn.PasswordStrength(c.Password, []string{c.Username}).Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

// User is a player account. Besides the login it remembers the last origin
// the player held so a new range session can pick up where the last one was.
type User struct {
	ID           uuid.UUID        `bson:"_id"`
	Username     string           `bson:"username"`
	PasswordHash string           `bson:"passwordHash"`
	JoinedAt     time.Time        `bson:"joinedAt"`
	LastOrigin   *grid.Coordinate `bson:"lastOrigin,omitempty"`
}

// NewUser validates creds and creates an account with a hashed password.
func NewUser(id uuid.UUID, creds Credentials) (*User, error) {
	creds = creds.Normalized()
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), passwordHashCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           id,
		Username:     creds.Username,
		PasswordHash: string(hash),
		JoinedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Resume returns the origin the player last held, if any.
func (u *User) Resume() (grid.Coordinate, bool) {
	if u.LastOrigin == nil {
		return grid.Coordinate{}, false
	}
	return *u.LastOrigin, true
}
