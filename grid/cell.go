package grid

import "fmt"

// Coordinate identifies a cell on the grid.
type Coordinate struct {
	Col int // Column index of the cell
	Row int // Row index of the cell
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Step returns the coordinate one cell away in direction d.
// The result may be out of any grid's bounds.
func (c Coordinate) Step(d Direction) Coordinate {
	delta := deltas[d]
	return Coordinate{Col: c.Col + delta.Col, Row: c.Row + delta.Row}
}

// Direction is one of the four orthogonal moves.
type Direction int

// Canonical neighbor order: column neighbors first, then row neighbors.
const (
	East Direction = iota
	West
	South
	North
)

var (
	// Directions lists every direction in canonical order.
	Directions = [4]Direction{East, West, South, North}

	deltas = [4]Coordinate{
		East:  {Col: 1, Row: 0},
		West:  {Col: -1, Row: 0},
		South: {Col: 0, Row: 1},
		North: {Col: 0, Row: -1},
	}

	directionNames = [4]string{"East", "West", "South", "North"}
)

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	if d < East || d > North {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Cell is a single square of the grid.
// Its coordinate and blocked flag are fixed at construction; neighbors are
// linked once after every cell of the grid exists.
type Cell struct {
	coordinate Coordinate
	blocked    bool
	neighbors  [4]*Cell // indexed by Direction; nil at the border
}

// Coordinate returns the position of the cell.
func (c *Cell) Coordinate() Coordinate {
	return c.coordinate
}

// Blocked reports whether the cell can not be entered.
func (c *Cell) Blocked() bool {
	return c.blocked
}

// Neighbor returns the adjacent cell in direction d, or nil at the border.
func (c *Cell) Neighbor(d Direction) *Cell {
	return c.neighbors[d]
}
