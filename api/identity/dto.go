package identity

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
)

// CredentialsRequest is the body of register and login requests.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *CredentialsRequest) credentials() dmn.Credentials {
	return dmn.Credentials{Username: r.Username, Password: r.Password}
}

type OriginResponse struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// PlayerResponse is the public view of an account.
type PlayerResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	JoinedAt   time.Time       `json:"joinedAt"`
	LastOrigin *OriginResponse `json:"lastOrigin,omitempty"`
}

// LoginResponse carries the bearer token for the range API.
type LoginResponse struct {
	Player    PlayerResponse `json:"player"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

func playerResponse(u *dmn.User) PlayerResponse {
	res := PlayerResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		JoinedAt: u.JoinedAt,
	}
	if c, ok := u.Resume(); ok {
		res.LastOrigin = &OriginResponse{Col: c.Col, Row: c.Row}
	}
	return res
}
