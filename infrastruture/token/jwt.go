package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidToken          = errors.New("invalid token")
	ErrUnexpectedSigningAlgo = errors.New("unexpected signing method")
	ErrForeignIssuer         = errors.New("token issued by another issuer")
)

// JwtService signs and verifies HS256 player tokens.
type JwtService struct {
	secretKey string
	issuer    string
}

var _ i.Tokenizer = &JwtService{}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT for the given claims. The service's issuer and the
// issue and expiry times are always set and override same-named claims.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims["iss"] = s.issuer
	jwtClaims["iat"] = now.Unix()
	jwtClaims["exp"] = now.Add(expTime).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrForeignIssuer
	}

	return claims, nil
}

func (s *JwtService) signingKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigningAlgo
	}
	return []byte(s.secretKey), nil
}
