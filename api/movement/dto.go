// Package movementapi exposes range sessions over HTTP.
package movementapi

import (
	"time"

	"github.com/beka-birhanu/vinom-range/grid"
	"github.com/beka-birhanu/vinom-range/movement"
	"github.com/beka-birhanu/vinom-range/service/i"
)

// OriginRequest carries the coordinate a player wants to stand on.
type OriginRequest struct {
	Col *int `json:"col" binding:"required,min=0"`
	Row *int `json:"row" binding:"required,min=0"`
}

func (r *OriginRequest) coordinate() grid.Coordinate {
	return grid.Coordinate{Col: *r.Col, Row: *r.Row}
}

type Coordinate struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// ReachableCell is one entry of a range: the cell, its cost and the route to it.
type ReachableCell struct {
	Col   int          `json:"col"`
	Row   int          `json:"row"`
	Cost  int          `json:"cost"`
	Route []Coordinate `json:"route"`
}

// RangeResponse is a player's current range, cells sorted by row then column.
type RangeResponse struct {
	Origin Coordinate      `json:"origin"`
	Budget int             `json:"budget"`
	Cells  []ReachableCell `json:"cells"`
}

// GridResponse describes the shared board.
type GridResponse struct {
	Size   int      `json:"size"`
	Budget int      `json:"budget"`
	Rows   []string `json:"rows"`
}

type MoveRecordResponse struct {
	Col int       `json:"col"`
	Row int       `json:"row"`
	At  time.Time `json:"at"`
}

func fromCoordinate(c grid.Coordinate) Coordinate {
	return Coordinate{Col: c.Col, Row: c.Row}
}

func rangeResponse(set *movement.ReachableSet) *RangeResponse {
	cells := make([]ReachableCell, 0, set.Len())
	for _, c := range set.Coordinates() {
		path, _ := set.Get(c)
		steps, _ := set.Route(c)
		route := make([]Coordinate, 0, len(steps))
		for _, s := range steps {
			route = append(route, fromCoordinate(s))
		}
		cells = append(cells, ReachableCell{
			Col:   c.Col,
			Row:   c.Row,
			Cost:  path.Cost(),
			Route: route,
		})
	}

	return &RangeResponse{
		Origin: fromCoordinate(set.Origin()),
		Budget: set.Budget(),
		Cells:  cells,
	}
}

func historyResponse(records []i.MoveRecord) []MoveRecordResponse {
	out := make([]MoveRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, MoveRecordResponse{Col: r.To.Col, Row: r.To.Row, At: r.At})
	}
	return out
}
