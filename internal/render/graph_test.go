package render

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/iksnae/osa-monitor/internal"
)

func makeNodes(n int) []internal.ThoughtNode {
	now := time.Now()
	out := make([]internal.ThoughtNode, n)
	for i := range out {
		out[i] = internal.NewThoughtNode(fmt.Sprint(i+1), "reasoning", fmt.Sprintf("thought %d", i+1), now)
	}
	return out
}

func TestLayout_Window(t *testing.T) {
	g := Layout(makeNodes(60), 8)

	if len(g.Nodes) != 8 {
		t.Fatalf("got %d nodes, want 8", len(g.Nodes))
	}
	for i, n := range g.Nodes {
		if want := fmt.Sprint(53 + i); n.Node.ID != want {
			t.Errorf("node %d id = %s, want %s", i, n.Node.ID, want)
		}
	}
	if len(g.Edges) != 7 {
		t.Errorf("got %d edges, want 7", len(g.Edges))
	}
}

func TestLayout_Grid(t *testing.T) {
	g := Layout(makeNodes(8), 8)

	tests := []struct {
		index    int
		col, row int
		x, y     float64
	}{
		{index: 0, col: 0, row: 0, x: 20, y: 20},
		{index: 2, col: 2, row: 0, x: 240, y: 20},
		{index: 3, col: 0, row: 1, x: 20, y: 100},
		{index: 7, col: 1, row: 2, x: 130, y: 180},
	}

	for _, tt := range tests {
		n := g.Nodes[tt.index]
		if n.Col != tt.col || n.Row != tt.row || n.X != tt.x || n.Y != tt.y {
			t.Errorf("node %d = col %d row %d (%v,%v), want col %d row %d (%v,%v)",
				tt.index, n.Col, n.Row, n.X, n.Y, tt.col, tt.row, tt.x, tt.y)
		}
	}

	if rows := g.Rows(); len(rows) != 3 || len(rows[2]) != 2 {
		t.Errorf("Rows() shape = %d rows", len(rows))
	}
}

func TestLayout_Edges(t *testing.T) {
	g := Layout(makeNodes(4), 8)

	first := g.Edges[0]
	if first.From != "1" || first.To != "2" {
		t.Errorf("edge 0 = %s->%s", first.From, first.To)
	}
	if first.X1 != 60 || first.Y1 != 40 || first.X2 != 170 || first.Y2 != 40 {
		t.Errorf("edge 0 anchors = (%v,%v)->(%v,%v)", first.X1, first.Y1, first.X2, first.Y2)
	}
	if first.Length != 110 || first.Angle != 0 {
		t.Errorf("edge 0 length %v angle %v", first.Length, first.Angle)
	}

	wrap := g.Edges[2]
	if math.Abs(wrap.Length-math.Sqrt(220*220+80*80)) > 1e-9 {
		t.Errorf("wrap edge length = %v", wrap.Length)
	}
	if math.Abs(wrap.Angle-160.0169) > 1e-3 {
		t.Errorf("wrap edge angle = %v", wrap.Angle)
	}
}

func TestLayout_Empty(t *testing.T) {
	g := Layout(nil, 8)
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("Layout(nil) = %+v", g)
	}
}
