// Package kutulu plays Code of Kutulu: explorers roam a maze and keep
// their sanity by staying together and away from wanderers.
package kutulu

import (
	"fmt"
	"strings"

	"codingame/internal/codingame"
)

type Cell uint8

const (
	Empty Cell = iota
	Wall
	Spawn
)

func (c Cell) Byte() byte {
	switch c {
	case Wall:
		return '#'
	case Spawn:
		return 'w'
	}
	return '.'
}

// Pos is a maze position.
type Pos struct {
	X, Y int
}

func (p Pos) String() string { return fmt.Sprintf("%d %d", p.X, p.Y) }

var steps = [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is the maze, stored row major.
type Grid struct {
	Width, Height int
	cells         []Cell
}

// ReadGrid parses the maze header: width, height, then one line per row.
func ReadGrid(r *codingame.Reader) (*Grid, error) {
	g := &Grid{}
	if err := r.Scan(&g.Width, &g.Height); err != nil {
		return nil, err
	}
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d", g.Width, g.Height)
	}
	g.cells = make([]Cell, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		line, err := r.Word()
		if err != nil {
			return nil, fmt.Errorf("grid line %d: %w", y, err)
		}
		if len(line) < g.Width {
			return nil, fmt.Errorf("grid line %d: %q is shorter than %d", y, line, g.Width)
		}
		for x := 0; x < g.Width; x++ {
			switch line[x] {
			case '#':
				g.cells[g.index(x, y)] = Wall
			case 'w':
				g.cells[g.index(x, y)] = Spawn
			case '.':
				g.cells[g.index(x, y)] = Empty
			default:
				return nil, fmt.Errorf("grid line %d: invalid cell %q", y, line[x])
			}
		}
	}
	return g, nil
}

func (g *Grid) index(x, y int) int { return x + y*g.Width }

func (g *Grid) Inside(p Pos) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At returns the cell at p; outside the maze is wall.
func (g *Grid) At(p Pos) Cell {
	if !g.Inside(p) {
		return Wall
	}
	return g.cells[g.index(p.X, p.Y)]
}

func (g *Grid) Walkable(p Pos) bool { return g.At(p) != Wall }

// Unreachable marks cells a distance map cannot reach.
const Unreachable = -1

// Distances returns the walking distance from start to every cell, indexed
// like the grid.
func (g *Grid) Distances(start Pos) []int {
	dist := make([]int, len(g.cells))
	for i := range dist {
		dist[i] = Unreachable
	}
	if !g.Walkable(start) {
		return dist
	}
	dist[g.index(start.X, start.Y)] = 0
	queue := []Pos{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		d := dist[g.index(p.X, p.Y)]
		for _, s := range steps {
			n := Pos{p.X + s.X, p.Y + s.Y}
			if !g.Walkable(n) || dist[g.index(n.X, n.Y)] != Unreachable {
				continue
			}
			dist[g.index(n.X, n.Y)] = d + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// DistanceIn reads p from a distance map made by Distances.
func (g *Grid) DistanceIn(dist []int, p Pos) int {
	if !g.Inside(p) {
		return Unreachable
	}
	return dist[g.index(p.X, p.Y)]
}

func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteByte(g.cells[g.index(x, y)].Byte())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
