package service

import (
	"context"
	"errors"
	"testing"

	dmn "github.com/beka-birhanu/vinom-range/domain"
	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/movement"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, history *memoryHistory) (*RangeSessionManager, *recordingLogger) {
	t.Helper()
	g, err := grid.FromRows([]string{
		"-----",
		"-----",
		"--*--",
		"-----",
		"-----",
	})
	require.NoError(t, err)

	logger := &recordingLogger{}
	c := &Config{Grid: g, Budget: 2, Logger: logger}
	if history != nil {
		c.History = history
	}
	m, err := NewRangeSessionManager(c)
	require.NoError(t, err)
	return m, logger
}

func TestNewRangeSessionManager(t *testing.T) {
	_, err := NewRangeSessionManager(nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewRangeSessionManager(&Config{Logger: &recordingLogger{}})
	assert.ErrorIs(t, err, ErrMissingDependency)

	g, err := grid.FromRows([]string{"-"})
	require.NoError(t, err)
	_, err = NewRangeSessionManager(&Config{Grid: g, Budget: -1, Logger: &recordingLogger{}})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestRangeSessionManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Start without origin uses the starting coordinate", func(t *testing.T) {
		m, _ := newManager(t, nil)
		player := uuid.New()

		set, err := m.Start(ctx, player, nil)
		require.NoError(t, err)
		// Center (2,2) is blocked; the scan settles on (2,3).
		assert.Equal(t, grid.Coordinate{Col: 2, Row: 3}, set.Origin())
		assert.Equal(t, 2, set.Budget())
	})

	t.Run("Start on a blocked cell is rejected", func(t *testing.T) {
		m, _ := newManager(t, nil)
		player := uuid.New()

		_, err := m.Start(ctx, player, &grid.Coordinate{Col: 2, Row: 2})
		assert.ErrorIs(t, err, movement.ErrInvalidOrigin)

		_, err = m.Current(player)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Move within range", func(t *testing.T) {
		history := newMemoryHistory()
		m, _ := newManager(t, history)
		player := uuid.New()

		_, err := m.Start(ctx, player, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)

		set, err := m.Move(ctx, player, grid.Coordinate{Col: 1, Row: 1})
		require.NoError(t, err)
		assert.Equal(t, grid.Coordinate{Col: 1, Row: 1}, set.Origin())

		current, err := m.Current(player)
		require.NoError(t, err)
		assert.Same(t, set, current)

		records, err := m.History(ctx, player, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, grid.Coordinate{Col: 1, Row: 1}, records[0].To)
		assert.Equal(t, grid.Coordinate{Col: 0, Row: 0}, records[1].To)
	})

	t.Run("Move out of range keeps the current range", func(t *testing.T) {
		history := newMemoryHistory()
		m, _ := newManager(t, history)
		player := uuid.New()

		held, err := m.Start(ctx, player, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)

		_, err = m.Move(ctx, player, grid.Coordinate{Col: 4, Row: 4})
		assert.ErrorIs(t, err, movement.ErrInvalidOrigin)

		current, err := m.Current(player)
		require.NoError(t, err)
		assert.Same(t, held, current)

		count, _ := history.Count(ctx, player)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Move without a session", func(t *testing.T) {
		m, _ := newManager(t, nil)
		_, err := m.Move(ctx, uuid.New(), grid.Coordinate{})
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Start while holding a session is rejected", func(t *testing.T) {
		m, _ := newManager(t, nil)
		player := uuid.New()

		held, err := m.Start(ctx, player, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)

		// (4,4) is far outside the held range.
		_, err = m.Start(ctx, player, &grid.Coordinate{Col: 4, Row: 4})
		assert.ErrorIs(t, err, ErrSessionActive)
		_, err = m.Start(ctx, player, nil)
		assert.ErrorIs(t, err, ErrSessionActive)

		current, err := m.Current(player)
		require.NoError(t, err)
		assert.Same(t, held, current)

		require.NoError(t, m.End(player))
		set, err := m.Start(ctx, player, &grid.Coordinate{Col: 4, Row: 4})
		require.NoError(t, err)
		assert.Equal(t, grid.Coordinate{Col: 4, Row: 4}, set.Origin())
	})

	t.Run("Board renders the current range", func(t *testing.T) {
		m, _ := newManager(t, nil)
		player := uuid.New()

		_, err := m.Start(ctx, player, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)

		board, err := m.Board(player)
		require.NoError(t, err)
		want := "" +
			"X 1 2 - -\n" +
			"1 2 - - -\n" +
			"2 - * - -\n" +
			"- - - - -\n" +
			"- - - - -\n"
		assert.Equal(t, want, board)
	})

	t.Run("End removes the session", func(t *testing.T) {
		m, _ := newManager(t, nil)
		player := uuid.New()

		_, err := m.Start(ctx, player, nil)
		require.NoError(t, err)
		require.NoError(t, m.End(player))
		assert.ErrorIs(t, m.End(player), ErrNoSession)

		_, err = m.Board(player)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("History failures do not fail moves", func(t *testing.T) {
		history := newMemoryHistory()
		history.fail = errors.New("redis down")
		m, logger := newManager(t, history)
		player := uuid.New()

		_, err := m.Start(ctx, player, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		assert.Contains(t, logger.lines[len(logger.lines)-1], "WARNING recording move")
	})

	t.Run("History without a store", func(t *testing.T) {
		m, _ := newManager(t, nil)
		_, err := m.History(ctx, uuid.New(), 5)
		assert.ErrorIs(t, err, ErrHistoryUnavailable)
	})

	t.Run("Players do not share ranges", func(t *testing.T) {
		m, _ := newManager(t, nil)
		a, b := uuid.New(), uuid.New()

		_, err := m.Start(ctx, a, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		_, err = m.Start(ctx, b, &grid.Coordinate{Col: 4, Row: 4})
		require.NoError(t, err)

		// (1,0) is in a's range only.
		_, err = m.Move(ctx, b, grid.Coordinate{Col: 1, Row: 0})
		assert.ErrorIs(t, err, movement.ErrInvalidOrigin)
		_, err = m.Move(ctx, a, grid.Coordinate{Col: 1, Row: 0})
		assert.NoError(t, err)
	})

	t.Run("Accessors", func(t *testing.T) {
		m, _ := newManager(t, nil)
		assert.Equal(t, 2, m.Budget())
		assert.Equal(t, 5, m.Grid().Size())
	})
}

func TestRangeSessionManagerPlayers(t *testing.T) {
	ctx := context.Background()
	g, err := grid.FromRows([]string{
		"-----",
		"-----",
		"--*--",
		"-----",
		"-----",
	})
	require.NoError(t, err)

	setup := func(t *testing.T) (*RangeSessionManager, *memoryUserRepo, *recordingLogger, uuid.UUID) {
		players := newMemoryUserRepo()
		player := &dmn.User{ID: uuid.New(), Username: "range_runner"}
		require.NoError(t, players.Save(player))

		logger := &recordingLogger{}
		m, err := NewRangeSessionManager(&Config{Grid: g, Budget: 2, Players: players, Logger: logger})
		require.NoError(t, err)
		return m, players, logger, player.ID
	}

	t.Run("Accepted origins are saved on the account", func(t *testing.T) {
		m, players, _, id := setup(t)

		_, err := m.Start(ctx, id, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		_, err = m.Move(ctx, id, grid.Coordinate{Col: 1, Row: 1})
		require.NoError(t, err)

		user, err := players.ByID(id)
		require.NoError(t, err)
		c, ok := user.Resume()
		require.True(t, ok)
		assert.Equal(t, grid.Coordinate{Col: 1, Row: 1}, c)
	})

	t.Run("A new session resumes the last origin", func(t *testing.T) {
		m, _, _, id := setup(t)

		_, err := m.Start(ctx, id, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		_, err = m.Move(ctx, id, grid.Coordinate{Col: 0, Row: 2})
		require.NoError(t, err)
		require.NoError(t, m.End(id))

		set, err := m.Start(ctx, id, nil)
		require.NoError(t, err)
		assert.Equal(t, grid.Coordinate{Col: 0, Row: 2}, set.Origin())
	})

	t.Run("Unusable last origin falls back to the starting cell", func(t *testing.T) {
		m, players, _, id := setup(t)
		require.NoError(t, players.SaveOrigin(id, grid.Coordinate{Col: 2, Row: 2}))

		set, err := m.Start(ctx, id, nil)
		require.NoError(t, err)
		assert.Equal(t, grid.Coordinate{Col: 2, Row: 3}, set.Origin())
	})

	t.Run("Unknown player uses the starting cell", func(t *testing.T) {
		m, _, _, _ := setup(t)

		set, err := m.Start(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, grid.Coordinate{Col: 2, Row: 3}, set.Origin())
	})

	t.Run("Saving the origin is best effort", func(t *testing.T) {
		m, players, logger, id := setup(t)
		players.failing = errors.New("mongo down")

		_, err := m.Start(ctx, id, &grid.Coordinate{Col: 0, Row: 0})
		require.NoError(t, err)
		assert.Contains(t, logger.lines[len(logger.lines)-1], "WARNING saving origin")
	})
}
