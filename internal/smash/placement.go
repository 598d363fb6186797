package smash

import "fmt"

// Rotations is the number of orientations of a falling pair.
const Rotations = 4

// Pair is the two blocks dropped in one turn. A is the pivot block.
type Pair struct {
	A Block
	B Block
}

// Placement is where a pair is dropped: the pivot column and the rotation
// of B around A, 0 right, 1 above, 2 left, 3 below.
type Placement struct {
	Col int
	Rot int
}

func (p Placement) String() string {
	return fmt.Sprintf("%d %d", p.Col, p.Rot)
}

// Placements lists all col/rot combinations, col major. Some of them fall
// outside the well and are rejected by Place.
var Placements = func() [Cols * Rotations]Placement {
	var all [Cols * Rotations]Placement
	for col := 0; col < Cols; col++ {
		for rot := 0; rot < Rotations; rot++ {
			all[col*Rotations+rot] = Placement{Col: col, Rot: rot}
		}
	}
	return all
}()

// Landing is where each block of a pair came to rest.
type Landing struct {
	A Cell
	B Cell
}

// Place drops pair according to p. The grid is left untouched on error.
func (g *Grid) Place(p Placement, pair Pair) (Landing, error) {
	var first, second Block
	var c1, c2 int
	aFirst := true
	switch p.Rot {
	case 0:
		c1, c2, first, second = p.Col, p.Col+1, pair.A, pair.B
	case 1:
		c1, c2, first, second = p.Col, p.Col, pair.A, pair.B
	case 2:
		c1, c2, first, second = p.Col-1, p.Col, pair.B, pair.A
		aFirst = false
	case 3:
		c1, c2, first, second = p.Col, p.Col, pair.B, pair.A
		aFirst = false
	default:
		return Landing{}, fmt.Errorf("rotation %d: %w", p.Rot, ErrInvalidPlacement)
	}
	if c1 < 0 || c1 >= Cols || c2 < 0 || c2 >= Cols {
		return Landing{}, fmt.Errorf("placement %v: %w", p, ErrInvalidPlacement)
	}

	need := 1
	if c1 == c2 {
		need = 2
	}
	if Rows-g.ColumnHeight(c1) < need || Rows-g.ColumnHeight(c2) < 1 {
		return Landing{}, fmt.Errorf("placement %v: %w", p, ErrColumnFull)
	}

	r1, _ := g.Drop(c1, first)
	r2, _ := g.Drop(c2, second)
	if aFirst {
		return Landing{A: Cell{r1, c1}, B: Cell{r2, c2}}, nil
	}
	return Landing{A: Cell{r2, c2}, B: Cell{r1, c1}}, nil
}
