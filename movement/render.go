package movement

import (
	"strconv"
	"strings"

	"github.com/beka-birhanu/vinom-range/grid"
)

// Board symbols.
const (
	OriginSymbol  = "X"
	BlockedSymbol = "*"
	EmptySymbol   = "-"
)

// Render draws the grid with the range laid over it, one line per row: the
// origin as X, reachable cells as their cost, blocked cells as * and every
// other cell as -. A nil set draws the bare grid.
func Render(g *grid.Grid, set *ReachableSet) string {
	blocked := g.Blocked()

	var b strings.Builder
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			c := grid.Coordinate{Col: col, Row: row}
			b.WriteString(symbol(c, blocked.Has(c), set))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func symbol(c grid.Coordinate, blocked bool, set *ReachableSet) string {
	switch {
	case blocked:
		return BlockedSymbol
	case set == nil:
		return EmptySymbol
	case c == set.Origin():
		return OriginSymbol
	}
	if p, ok := set.Get(c); ok {
		return strconv.Itoa(p.Cost())
	}
	return EmptySymbol
}
