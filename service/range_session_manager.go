package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/movement"
	"github.com/beka-birhanu/vinom-range/service/i"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	defaultHistoryTimeout = 200 * time.Millisecond
)

var (
	ErrNoSession          = errors.New("no range session")
	ErrSessionActive      = errors.New("range session already started")
	ErrInvalidBudget      = errors.New("movement budget must not be negative")
	ErrHistoryUnavailable = errors.New("move history is not configured")
)

// RangeSessionManager keeps one movement session per player, all over the
// same grid.
type RangeSessionManager struct {
	grid           *grid.Grid
	budget         int
	history        i.MoveHistory
	historyTimeout time.Duration
	players        i.UserRepo
	logger         i.Logger
	sessions       map[uuid.UUID]*movement.Session
	sync.RWMutex
}

// Config holds the dependencies of a RangeSessionManager. History and
// Players are optional; with Players a new session resumes from the origin
// the player last held.
type Config struct {
	Grid           *grid.Grid
	Budget         int
	History        i.MoveHistory
	HistoryTimeout time.Duration
	Players        i.UserRepo
	Logger         i.Logger
}

var _ i.RangeSessionManager = &RangeSessionManager{}

func NewRangeSessionManager(c *Config) (*RangeSessionManager, error) {
	if c == nil || c.Grid == nil || c.Logger == nil {
		return nil, fmt.Errorf("%w: range session manager needs a grid and a logger", ErrMissingDependency)
	}
	if c.Budget < 0 {
		return nil, ErrInvalidBudget
	}

	historyTimeout := c.HistoryTimeout
	if historyTimeout <= 0 {
		historyTimeout = defaultHistoryTimeout
	}

	return &RangeSessionManager{
		grid:           c.Grid,
		budget:         c.Budget,
		history:        c.History,
		historyTimeout: historyTimeout,
		players:        c.Players,
		logger:         c.Logger,
		sessions:       make(map[uuid.UUID]*movement.Session),
	}, nil
}

// Start opens a session for a player without one. A player holding a
// session gets ErrSessionActive and must End it first, so a later origin can
// only come from the held range.
func (m *RangeSessionManager) Start(ctx context.Context, playerID uuid.UUID, origin *grid.Coordinate) (*movement.ReachableSet, error) {
	if _, err := m.session(playerID); err == nil {
		return nil, ErrSessionActive
	}

	var start grid.Coordinate
	if origin != nil {
		start = *origin
	} else {
		c, err := m.placement(playerID)
		if err != nil {
			m.logger.Error(fmt.Sprintf("placing player %s: %s", playerID, err))
			return nil, err
		}
		start = c
	}

	session := movement.NewSession(m.grid, m.budget)
	set, err := m.setOrigin(session, start)
	if err != nil {
		m.logger.Warning(fmt.Sprintf("rejected start at %s for player %s: %s", start, playerID, err))
		return nil, err
	}

	m.Lock()
	if _, held := m.sessions[playerID]; held {
		m.Unlock()
		return nil, ErrSessionActive
	}
	m.sessions[playerID] = session
	activeSessions.Set(float64(len(m.sessions)))
	m.Unlock()

	m.logger.Info(fmt.Sprintf("started session for player %s at %s: %d reachable, %d connected", playerID, start, set.Len(), m.grid.Region(start).Size()))
	m.record(ctx, playerID, start)
	return set, nil
}

// placement is the origin of a session started without one: the player's
// last held origin when it is still open, otherwise the grid's starting cell.
func (m *RangeSessionManager) placement(playerID uuid.UUID) (grid.Coordinate, error) {
	if m.players != nil {
		user, err := m.players.ByID(playerID)
		switch {
		case err != nil && !errors.Is(err, dmn.ErrUserNotFound):
			m.logger.Warning(fmt.Sprintf("loading last origin of player %s: %s", playerID, err))
		case err == nil:
			if c, ok := user.Resume(); ok && m.grid.InBound(c) && !m.grid.IsBlocked(c) {
				return c, nil
			}
		}
	}
	return m.grid.StartingCoordinate()
}

func (m *RangeSessionManager) Move(ctx context.Context, playerID uuid.UUID, to grid.Coordinate) (*movement.ReachableSet, error) {
	session, err := m.session(playerID)
	if err != nil {
		return nil, err
	}

	set, err := m.setOrigin(session, to)
	if err != nil {
		m.logger.Warning(fmt.Sprintf("rejected move to %s for player %s: %s", to, playerID, err))
		return nil, err
	}

	m.logger.Info(fmt.Sprintf("player %s moved to %s: %d reachable", playerID, to, set.Len()))
	m.record(ctx, playerID, to)
	return set, nil
}

func (m *RangeSessionManager) Current(playerID uuid.UUID) (*movement.ReachableSet, error) {
	session, err := m.session(playerID)
	if err != nil {
		return nil, err
	}
	return session.Reachable(), nil
}

// Board renders the player's current range over the grid.
func (m *RangeSessionManager) Board(playerID uuid.UUID) (string, error) {
	set, err := m.Current(playerID)
	if err != nil {
		return "", err
	}
	return movement.Render(m.grid, set), nil
}

func (m *RangeSessionManager) History(ctx context.Context, playerID uuid.UUID, limit int64) ([]i.MoveRecord, error) {
	if m.history == nil {
		return nil, ErrHistoryUnavailable
	}
	return m.history.Recent(ctx, playerID, limit)
}

func (m *RangeSessionManager) End(playerID uuid.UUID) error {
	m.Lock()
	defer m.Unlock()
	if _, ok := m.sessions[playerID]; !ok {
		return ErrNoSession
	}
	delete(m.sessions, playerID)
	activeSessions.Set(float64(len(m.sessions)))
	m.logger.Info(fmt.Sprintf("ended session for player %s", playerID))
	return nil
}

func (m *RangeSessionManager) Grid() *grid.Grid {
	return m.grid
}

func (m *RangeSessionManager) Budget() int {
	return m.budget
}

func (m *RangeSessionManager) session(playerID uuid.UUID) (*movement.Session, error) {
	m.RLock()
	defer m.RUnlock()
	session, ok := m.sessions[playerID]
	if !ok {
		return nil, ErrNoSession
	}
	return session, nil
}

func (m *RangeSessionManager) setOrigin(session *movement.Session, to grid.Coordinate) (*movement.ReachableSet, error) {
	timer := prometheus.NewTimer(rangeComputationDuration)
	set, err := session.SetOrigin(to)
	timer.ObserveDuration()

	if err != nil {
		rangeComputations.WithLabelValues(resultRejected).Inc()
		return nil, err
	}
	rangeComputations.WithLabelValues(resultOK).Inc()
	reachableCells.Observe(float64(set.Len()))
	return set, nil
}

// record stores an accepted origin in the history and on the player's
// account. Both are best effort: failures are logged.
func (m *RangeSessionManager) record(ctx context.Context, playerID uuid.UUID, to grid.Coordinate) {
	if m.players != nil {
		if err := m.players.SaveOrigin(playerID, to); err != nil {
			m.logger.Warning(fmt.Sprintf("saving origin %s for player %s: %s", to, playerID, err))
		}
	}
	if m.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, m.historyTimeout)
	defer cancel()
	if err := m.history.Record(ctx, playerID, to, time.Now()); err != nil {
		m.logger.Warning(fmt.Sprintf("recording move to %s for player %s: %s", to, playerID, err))
	}
}
