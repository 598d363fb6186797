package smash

// rateUnit scales every evaluation term so that terms stay integral.
const rateUnit = Rows * Rows

// shape is a set of offsets (row, col) that must all hold the same color as
// the anchor block.
type shape struct {
	offsets [][2]int
	weight  int
}

// shapes rewards same-colored neighbourhoods that are one or two drops away
// from becoming a group. Rows grow upwards.
var shapes = []shape{
	// straight triples
	{[][2]int{{1, 0}, {2, 0}}, 32},
	{[][2]int{{0, 1}, {0, 2}}, 32},

	// leaning stacks
	{[][2]int{{1, 1}, {2, 1}}, 64},
	{[][2]int{{1, -1}, {2, -1}}, 64},
	{[][2]int{{1, 0}, {2, 1}}, 64},
	{[][2]int{{1, 0}, {2, -1}}, 64},

	// steps
	{[][2]int{{1, 1}, {1, 2}}, 32},
	{[][2]int{{1, -1}, {1, -2}}, 32},
	{[][2]int{{-1, -1}, {-1, -2}}, 32},
	{[][2]int{{-1, 1}, {-1, 2}}, 32},

	// corners
	{[][2]int{{1, 0}, {1, 1}}, 16},
	{[][2]int{{1, 0}, {1, -1}}, 16},
	{[][2]int{{-1, 0}, {-1, -1}}, 16},
	{[][2]int{{-1, 0}, {-1, 1}}, 16},

	// split corners
	{[][2]int{{2, 0}, {2, -1}}, 4},
	{[][2]int{{2, 0}, {2, 1}}, 4},
	{[][2]int{{-2, 0}, {-2, -1}}, 4},
	{[][2]int{{-2, 0}, {-2, 1}}, 4},

	// pairs
	{[][2]int{{0, 1}}, 1},
	{[][2]int{{1, 0}}, 128},
}

// Rate is the static evaluation of the grid. Higher is better for the owner:
// it rewards color clusters that are about to connect, buried same colors
// that a clear would reunite, skulls touching colors (they go away with
// them) and moderate height steps between neighbouring columns.
func (g *Grid) Rate() int {
	rate := 0

	for col := 0; col < Cols; col++ {
		prev, curr, next := g.ColumnHeight(col-1), g.ColumnHeight(col), g.ColumnHeight(col+1)
		for _, d := range [4]int{curr - prev, prev - curr, curr - next, next - curr} {
			if d >= 2 && d <= 3 {
				rate += 32 * rateUnit
			}
		}
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			b := g.cells[row][col]
			switch {
			case b.IsSkull():
				for _, d := range orthogonal {
					if g.Get(row+d[0], col+d[1]).IsColor() {
						rate += rateUnit
					}
				}
			case b.IsColor():
				rate += g.rateColor(row, col, b) * rateUnit
			}
		}
	}
	return rate
}

func (g *Grid) rateColor(row, col int, b Block) int {
	rate := 0
	for _, s := range shapes {
		match := true
		for _, o := range s.offsets {
			if g.Get(row+o[0], col+o[1]) != b {
				match = false
				break
			}
		}
		if match {
			rate += s.weight
		}
	}

	above, above2, above3 := g.Get(row+1, col), g.Get(row+2, col), g.Get(row+3, col)

	// one foreign block separates two stacks of this color
	if above != b && above2 == b && above3 == b {
		rate += 128
	}
	// a foreign pair sits between this block and the same color
	if above != b && above.IsColor() && above2 == above && above3 == b {
		rate += 128
	}
	// a skull separates this block from the same color
	if above.IsSkull() && above3 == b {
		rate += 128
	}
	return rate
}
