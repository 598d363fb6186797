package smash

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Cols = 6
	Rows = 12
)

var (
	// ErrColumnFull is returned when a block is dropped into a full column.
	ErrColumnFull = errors.New("column full")
	// ErrInvalidPlacement is returned for a column or rotation outside the well.
	ErrInvalidPlacement = errors.New("invalid placement")
)

// Cell addresses a grid position. Row 0 is the bottom of the well.
type Cell struct {
	Row int
	Col int
}

// Grid is one player's well. It is a value type: assigning it copies the
// board, which is what the search relies on.
type Grid struct {
	cells [Rows][Cols]Block
}

// Get returns the block at (row, col), or Empty outside the well.
func (g *Grid) Get(row, col int) Block {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return Empty
	}
	return g.cells[row][col]
}

// Set writes b at (row, col). Positions outside the well are ignored.
func (g *Grid) Set(row, col int, b Block) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	g.cells[row][col] = b
}

// Clear empties (row, col).
func (g *Grid) Clear(row, col int) {
	g.Set(row, col, Empty)
}

// ColumnHeight is the number of occupied cells stacked from the bottom of col.
// Columns outside the well have height 0.
func (g *Grid) ColumnHeight(col int) int {
	if col < 0 || col >= Cols {
		return 0
	}
	h := 0
	for h < Rows && g.cells[h][col] != Empty {
		h++
	}
	return h
}

// Drop lets b fall into col and returns the row where it lands.
func (g *Grid) Drop(col int, b Block) (int, error) {
	if col < 0 || col >= Cols {
		return -1, fmt.Errorf("column %d: %w", col, ErrInvalidPlacement)
	}
	row := g.ColumnHeight(col)
	if row >= Rows {
		return -1, fmt.Errorf("column %d: %w", col, ErrColumnFull)
	}
	g.cells[row][col] = b
	return row, nil
}

// Count returns the number of cells holding b.
func (g *Grid) Count(b Block) int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if g.cells[row][col] == b {
				n++
			}
		}
	}
	return n
}

// ParseGrid builds a grid from the judge lines, top line first.
func ParseGrid(lines []string) (Grid, error) {
	var g Grid
	if len(lines) != Rows {
		return g, fmt.Errorf("grid: got %d lines, want %d", len(lines), Rows)
	}
	for i, line := range lines {
		if len(line) < Cols {
			return g, fmt.Errorf("grid line %d: %q is shorter than %d", i, line, Cols)
		}
		row := Rows - 1 - i
		for col := 0; col < Cols; col++ {
			b, err := BlockFromByte(line[col])
			if err != nil {
				return g, fmt.Errorf("grid line %d: %w", i, err)
			}
			g.cells[row][col] = b
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on malformed input.
func MustParseGrid(lines ...string) Grid {
	g, err := ParseGrid(lines)
	if err != nil {
		panic(err)
	}
	return g
}

// Lines renders the grid in judge notation, top line first.
func (g *Grid) Lines() []string {
	lines := make([]string, Rows)
	buf := make([]byte, Cols)
	for i := range lines {
		row := Rows - 1 - i
		for col := 0; col < Cols; col++ {
			buf[col] = g.cells[row][col].Byte()
		}
		lines[i] = string(buf)
	}
	return lines
}

func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
