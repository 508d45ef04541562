package render

import (
	"math"

	"github.com/iksnae/osa-monitor/internal"
)

// Grid geometry for the thought graph
const (
	GraphColumns = 3
	GraphOriginX = 20
	GraphOriginY = 20
	GraphColStep = 110
	GraphRowStep = 80

	// Connectors run between these offsets from each node's origin
	anchorX = 40
	anchorY = 20
)

// PlacedNode is a thought node with its grid position
type PlacedNode struct {
	Node internal.ThoughtNode
	Col  int
	Row  int
	X    float64
	Y    float64
}

// Edge is a straight connector between two consecutive nodes
type Edge struct {
	From   string
	To     string
	X1, Y1 float64
	X2, Y2 float64
	Length float64
	Angle  float64 // degrees
}

// GraphLayout is a fully positioned graph, rebuilt on every redraw
type GraphLayout struct {
	Nodes []PlacedNode
	Edges []Edge
}

// Layout places the newest window nodes on the grid, left to right and top
// to bottom, and links each node to the next.
func Layout(nodes []internal.ThoughtNode, window int) GraphLayout {
	if window > 0 && len(nodes) > window {
		nodes = nodes[len(nodes)-window:]
	}

	layout := GraphLayout{Nodes: make([]PlacedNode, len(nodes))}
	for i, n := range nodes {
		col, row := i%GraphColumns, i/GraphColumns
		layout.Nodes[i] = PlacedNode{
			Node: n,
			Col:  col,
			Row:  row,
			X:    float64(GraphOriginX + col*GraphColStep),
			Y:    float64(GraphOriginY + row*GraphRowStep),
		}
	}

	for i := 1; i < len(layout.Nodes); i++ {
		a, b := layout.Nodes[i-1], layout.Nodes[i]
		layout.Edges = append(layout.Edges, connect(a, b))
	}
	return layout
}

func connect(a, b PlacedNode) Edge {
	x1, y1 := a.X+anchorX, a.Y+anchorY
	x2, y2 := b.X+anchorX, b.Y+anchorY
	dx, dy := x2-x1, y2-y1
	return Edge{
		From:   a.Node.ID,
		To:     b.Node.ID,
		X1:     x1,
		Y1:     y1,
		X2:     x2,
		Y2:     y2,
		Length: math.Hypot(dx, dy),
		Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
	}
}

// Rows groups placed nodes by grid row
func (g GraphLayout) Rows() [][]PlacedNode {
	var rows [][]PlacedNode
	for _, n := range g.Nodes {
		for len(rows) <= n.Row {
			rows = append(rows, nil)
		}
		rows[n.Row] = append(rows[n.Row], n)
	}
	return rows
}
