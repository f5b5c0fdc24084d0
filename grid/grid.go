/*
Package grid provides the square board that movement ranges are computed on.

A Grid is an N×N arena of cells. Each cell is either open or blocked and is
linked to its north, south, east and west neighbors. Construction happens in
two passes: every cell is allocated first, then neighbors are linked by
coordinate arithmetic, leaving border neighbors absent. After construction
the grid is read-only and safe to share between goroutines.

Grids are either rolled at random with a shading density (New) or parsed
from a text layout (FromRows).
*/
package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"
)

const (
	// BlockedSymbol marks a blocked cell in a text layout.
	BlockedSymbol = '*'
	// OpenSymbol marks an open cell in a text layout.
	OpenSymbol = '-'

	altOpenSymbol = '.'

	// rollRange is the exclusive upper bound of the per-cell density roll.
	rollRange = 99999
)

var (
	ErrConfig     = errors.New("invalid grid configuration")
	ErrNoOpenCell = errors.New("grid has no open starting cell")
)

// Grid is an immutable square board of cells addressed by Coordinate.
type Grid struct {
	size  int
	cells []Cell // row-major arena, index row*size+col
}

// New rolls a size×size grid where each cell is blocked with probability
// 1/RoundToEven(1/density).
//
// The divisor is rounded half to even, so the effective probability only
// equals density when 1/density is integral (0.15 gives 1/7, 0.4 gives 1/2).
// A density of zero blocks nothing. A nil rng is seeded from the clock.
func New(size int, density float64, rng *rand.Rand) (*Grid, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrConfig, size)
	}
	if math.IsNaN(density) || density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: density must be within [0, 1], got %v", ErrConfig, density)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	divisor := 0
	if density > 0 {
		divisor = int(math.RoundToEven(1 / density))
	}

	g := allocate(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			roll := rng.Intn(rollRange)
			g.cells[row*size+col] = Cell{
				coordinate: Coordinate{Col: col, Row: row},
				blocked:    divisor > 0 && roll%divisor == 0,
			}
		}
	}
	g.link()
	return g, nil
}

// FromRows builds a grid from a square text layout, one string per row.
// BlockedSymbol marks blocked cells; OpenSymbol or '.' marks open ones.
func FromRows(rows []string) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrConfig)
	}

	g := allocate(size)
	for row, line := range rows {
		symbols := []rune(strings.TrimSpace(line))
		if len(symbols) != size {
			return nil, fmt.Errorf("%w: layout row %d has %d cells, want %d", ErrConfig, row, len(symbols), size)
		}
		for col, symbol := range symbols {
			var blocked bool
			switch symbol {
			case BlockedSymbol:
				blocked = true
			case OpenSymbol, altOpenSymbol:
			default:
				return nil, fmt.Errorf("%w: unknown layout symbol %q at %s", ErrConfig, symbol, Coordinate{Col: col, Row: row})
			}
			g.cells[row*size+col] = Cell{
				coordinate: Coordinate{Col: col, Row: row},
				blocked:    blocked,
			}
		}
	}
	g.link()
	return g, nil
}

func allocate(size int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// link sets every cell's neighbors once all cells exist.
func (g *Grid) link() {
	for i := range g.cells {
		cell := &g.cells[i]
		for _, d := range Directions {
			if neighbor, ok := g.At(cell.coordinate.Step(d)); ok {
				cell.neighbors[d] = neighbor
			}
		}
	}
}

// Size returns the number of cells along one side.
func (g *Grid) Size() int {
	return g.size
}

// InBound reports whether c lies on the grid.
func (g *Grid) InBound(c Coordinate) bool {
	return c.Col >= 0 && c.Col < g.size && c.Row >= 0 && c.Row < g.size
}

// At returns the cell at c.
func (g *Grid) At(c Coordinate) (*Cell, bool) {
	if !g.InBound(c) {
		return nil, false
	}
	return &g.cells[c.Row*g.size+c.Col], true
}

// IsBlocked reports whether c is on the grid and blocked.
func (g *Grid) IsBlocked(c Coordinate) bool {
	cell, ok := g.At(c)
	return ok && cell.blocked
}

// Blocked returns a fresh set of every blocked coordinate.
func (g *Grid) Blocked() mapset.Set[Coordinate] {
	blocked := mapset.New[Coordinate]()
	for i := range g.cells {
		if g.cells[i].blocked {
			blocked.Put(g.cells[i].coordinate)
		}
	}
	return blocked
}

// Rows renders the layout in the FromRows alphabet.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	for row := 0; row < g.size; row++ {
		var b strings.Builder
		for col := 0; col < g.size; col++ {
			if g.cells[row*g.size+col].blocked {
				b.WriteRune(BlockedSymbol)
			} else {
				b.WriteRune(OpenSymbol)
			}
		}
		rows[row] = b.String()
	}
	return rows
}

// StartingCoordinate picks where an agent is first placed: the center when it
// is open, otherwise the first open cell scanning columns then rows from the
// center towards the far edges.
func (g *Grid) StartingCoordinate() (Coordinate, error) {
	mid := g.size / 2
	if center := (Coordinate{Col: mid, Row: mid}); !g.IsBlocked(center) {
		return center, nil
	}

	for col := mid; col < g.size; col++ {
		for row := mid; row < g.size; row++ {
			c := Coordinate{Col: col, Row: row}
			if !g.IsBlocked(c) {
				return c, nil
			}
		}
	}
	return Coordinate{}, ErrNoOpenCell
}

// Region returns every open coordinate 4-connected to from, including from.
// The set is empty when from is off the grid or blocked.
func (g *Grid) Region(from Coordinate) mapset.Set[Coordinate] {
	region := mapset.New[Coordinate]()
	start, ok := g.At(from)
	if !ok || start.blocked {
		return region
	}

	stack := []*Cell{start}
	region.Put(from)
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, neighbor := range cell.neighbors {
			if neighbor == nil || neighbor.blocked || region.Has(neighbor.coordinate) {
				continue
			}
			region.Put(neighbor.coordinate)
			stack = append(stack, neighbor)
		}
	}
	return region
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}
