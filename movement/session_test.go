package movement

import (
	"sync"
	"testing"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	g := mustGrid(t,
		"------",
		"--*---",
		"------",
		"------",
		"------",
		"------",
	)

	t.Run("Nothing held before the first move", func(t *testing.T) {
		s := NewSession(g, 2)
		_, ok := s.Origin()
		assert.False(t, ok)
		assert.Nil(t, s.Reachable())
		assert.Equal(t, 2, s.Budget())
		assert.Same(t, g, s.Grid())
	})

	t.Run("First origin can be any open cell", func(t *testing.T) {
		s := NewSession(g, 2)
		far := grid.Coordinate{Col: 5, Row: 5}

		set, err := s.SetOrigin(far)
		require.NoError(t, err)
		assert.Same(t, set, s.Reachable())

		origin, ok := s.Origin()
		assert.True(t, ok)
		assert.Equal(t, far, origin)
	})

	t.Run("First origin still has to be open and on the grid", func(t *testing.T) {
		s := NewSession(g, 2)

		_, err := s.SetOrigin(grid.Coordinate{Col: 2, Row: 1})
		assert.ErrorIs(t, err, ErrInvalidOrigin)
		_, err = s.SetOrigin(grid.Coordinate{Col: -1, Row: 0})
		assert.ErrorIs(t, err, ErrInvalidOrigin)
		assert.Nil(t, s.Reachable())
	})

	t.Run("Moving onto a reachable cell replaces the range", func(t *testing.T) {
		s := NewSession(g, 2)
		first, err := s.SetOrigin(grid.Coordinate{Col: 2, Row: 2})
		require.NoError(t, err)

		next := grid.Coordinate{Col: 3, Row: 3}
		require.True(t, first.Contains(next))

		second, err := s.SetOrigin(next)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.Same(t, second, s.Reachable())
		assert.Equal(t, next, second.Origin())
		assert.False(t, second.Contains(next))
	})

	t.Run("Moving out of range is rejected and keeps the range", func(t *testing.T) {
		s := NewSession(g, 2)
		held, err := s.SetOrigin(grid.Coordinate{Col: 2, Row: 2})
		require.NoError(t, err)

		for _, c := range []grid.Coordinate{
			{Col: 5, Row: 5}, // too far
			{Col: 2, Row: 2}, // the origin itself
			{Col: 2, Row: 1}, // blocked
			{Col: 9, Row: 9}, // off the grid
		} {
			set, err := s.SetOrigin(c)
			assert.ErrorIs(t, err, ErrInvalidOrigin, "moving to %s", c)
			assert.Nil(t, set)
			assert.Same(t, held, s.Reachable())

			origin, _ := s.Origin()
			assert.Equal(t, grid.Coordinate{Col: 2, Row: 2}, origin)
		}
	})

	t.Run("Readers see whole ranges while moving", func(t *testing.T) {
		s := NewSession(openGrid(t, 12), 6)
		_, err := s.SetOrigin(grid.Coordinate{Col: 6, Row: 6})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					set := s.Reachable()
					if set.Contains(set.Origin()) {
						t.Error("range contains its own origin")
					}
				}
			}()
		}

		for _, c := range []grid.Coordinate{{Col: 6, Row: 3}, {Col: 9, Row: 3}, {Col: 9, Row: 8}} {
			_, err := s.SetOrigin(c)
			require.NoError(t, err)
		}
		wg.Wait()
	})
}
