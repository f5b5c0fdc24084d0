package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	// ContextPlayerID is the key used to store the caller's uuid.UUID in the Gin context.
	ContextPlayerID = "playerID"
)

// Authoriz rejects requests without a valid bearer token and stores the
// token's claims and player id in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		rawID, _ := claims[i.ClaimUserID].(string)
		playerID, err := uuid.Parse(rawID)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextUserClaims, claims)
		c.Set(ContextPlayerID, playerID)
		c.Next()
	}
}

// PlayerID returns the id Authoriz stored for the request.
func PlayerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextPlayerID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
