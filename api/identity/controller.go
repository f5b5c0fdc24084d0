package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/service"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer serves player accounts: sign up, sign in and the caller's
// own profile.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.register)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/auth/me", c.me)
}

func (c *IdentityServer) register(ctx *gin.Context) {
	var request CredentialsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := c.authService.Register(request.credentials())
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, playerResponse(user))
	case errors.Is(err, dmn.ErrUsernameTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrUsernameTooShort),
		errors.Is(err, dmn.ErrUsernameTooLong),
		errors.Is(err, dmn.ErrInvalidUsername),
		errors.Is(err, dmn.ErrWeakPassword):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}

func (c *IdentityServer) login(ctx *gin.Context) {
	var request CredentialsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(request.credentials())
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, &LoginResponse{
			Player:    playerResponse(user),
			Token:     token.Value,
			ExpiresAt: token.ExpiresAt,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}

// me returns the caller's account, including the origin a new range session
// resumes from.
func (c *IdentityServer) me(ctx *gin.Context) {
	playerID, ok := PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	user, err := c.authService.Profile(playerID)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, playerResponse(user))
	case errors.Is(err, dmn.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
