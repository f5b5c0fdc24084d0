package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingDependency  = errors.New("missing dependency")
)

// Auth registers players and issues their bearer tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	now       func() time.Time
}

var _ i.Authenticator = &Auth{}

func NewAuthService(ur i.UserRepo, t i.Tokenizer) (*Auth, error) {
	if ur == nil || t == nil {
		return nil, fmt.Errorf("%w: auth service needs a user repo and a tokenizer", ErrMissingDependency)
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		now:       time.Now,
	}, nil
}

// Register creates an account. A taken username fails with dmn.ErrUsernameTaken
// before any password is hashed.
func (a *Auth) Register(creds dmn.Credentials) (*dmn.User, error) {
	creds = creds.Normalized()
	if _, err := a.userRepo.ByUsername(creds.Username); err == nil {
		return nil, dmn.ErrUsernameTaken
	} else if !errors.Is(err, dmn.ErrUserNotFound) {
		return nil, err
	}

	user, err := dmn.NewUser(uuid.New(), creds)
	if err != nil {
		return nil, err
	}
	if err := a.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *Auth) SignIn(creds dmn.Credentials) (*dmn.User, i.AccessToken, error) {
	creds = creds.Normalized()
	user, err := a.userRepo.ByUsername(creds.Username)
	if err != nil || !user.VerifyPassword(creds.Password) {
		return nil, i.AccessToken{}, ErrInvalidCredentials
	}

	expiresAt := a.now().Add(tokenLifetime).UTC().Truncate(time.Second)
	token, err := a.tokenizer.Generate(map[string]interface{}{
		i.ClaimUserID:   user.ID.String(),
		i.ClaimUsername: user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, i.AccessToken{}, err
	}

	return user, i.AccessToken{Value: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the account behind a token's player id.
func (a *Auth) Profile(id uuid.UUID) (*dmn.User, error) {
	return a.userRepo.ByID(id)
}
