package movementapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-range/api/identity"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/movement"
	"github.com/beka-birhanu/vinom-range/service"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	historyTimeout      = 500 * time.Millisecond
)

// RangeController lets an authenticated player open a range session, move
// within it and inspect it.
type RangeController struct {
	sessions i.RangeSessionManager
}

// NewRangeController initializes a RangeController.
func NewRangeController(rsm i.RangeSessionManager) *RangeController {
	return &RangeController{sessions: rsm}
}

// RegisterPublic registers public routes.
func (rc *RangeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/grid", rc.grid)
}

// RegisterProtected registers protected routes.
func (rc *RangeController) RegisterProtected(route *gin.RouterGroup) {
	ranges := route.Group("/range")
	{
		ranges.POST("", rc.start)
		ranges.GET("", rc.current)
		ranges.DELETE("", rc.end)
		ranges.PUT("/origin", rc.move)
		ranges.GET("/board", rc.board)
		ranges.GET("/history", rc.history)
	}
}

func (rc *RangeController) grid(ctx *gin.Context) {
	g := rc.sessions.Grid()
	ctx.JSON(http.StatusOK, &GridResponse{
		Size:   g.Size(),
		Budget: rc.sessions.Budget(),
		Rows:   g.Rows(),
	})
}

// start opens a session. The body is optional; without it the player resumes
// their last origin or is put on the grid's starting coordinate.
func (rc *RangeController) start(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var origin *grid.Coordinate
	var request OriginRequest
	switch err := ctx.ShouldBindJSON(&request); {
	case err == nil:
		c := request.coordinate()
		origin = &c
	case !errors.Is(err, io.EOF):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := rc.sessions.Start(ctx.Request.Context(), playerID, origin)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rangeResponse(set))
}

func (rc *RangeController) move(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request OriginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := rc.sessions.Move(ctx.Request.Context(), playerID, request.coordinate())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rangeResponse(set))
}

func (rc *RangeController) current(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	set, err := rc.sessions.Current(playerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rangeResponse(set))
}

func (rc *RangeController) board(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	board, err := rc.sessions.Board(playerID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, board)
}

func (rc *RangeController) history(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	limit := int64(defaultHistoryLimit)
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > maxHistoryLimit {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxHistoryLimit)})
			return
		}
		limit = parsed
	}

	timeoutCtx, cancel := context.WithTimeout(ctx.Request.Context(), historyTimeout)
	defer cancel()
	records, err := rc.sessions.History(timeoutCtx, playerID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, historyResponse(records))
}

func (rc *RangeController) end(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := rc.sessions.End(playerID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// respondError maps service errors to HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, movement.ErrInvalidOrigin):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoSession):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionActive), errors.Is(err, grid.ErrNoOpenCell):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrHistoryUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
