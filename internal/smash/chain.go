package smash

// MinGroup is the smallest group of same-colored blocks that vanishes.
const MinGroup = 4

// Group is a connected set of same-colored blocks.
type Group struct {
	Color Block
	Cells []Cell
}

// Result summarizes one chain resolution.
type Result struct {
	Score   int // points scored over all steps
	Steps   int // number of cascade steps that cleared something
	Cleared int // colored blocks removed
	Skulls  int // skulls removed next to cleared groups
}

// GroupBonus is the bonus for clearing a group of n blocks at once.
func GroupBonus(n int) int {
	switch {
	case n <= 4:
		return 0
	case n <= 10:
		return n - 4
	}
	return 8
}

// ColorBonus is the bonus for clearing n distinct colors in the same step.
func ColorBonus(n int) int {
	switch n {
	case 2:
		return 2
	case 3:
		return 4
	case 4:
		return 8
	case 5:
		return 16
	}
	return 0
}

// ChainPower is the multiplier contribution of the given 1-based step.
func ChainPower(step int) int {
	if step <= 1 {
		return 0
	}
	return 8 << (step - 2)
}

var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Groups returns every connected component of colored blocks.
func (g *Grid) Groups() []Group {
	var seen [Rows][Cols]bool
	var groups []Group
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if seen[row][col] || !g.cells[row][col].IsColor() {
				continue
			}
			groups = append(groups, g.flood(row, col, &seen))
		}
	}
	return groups
}

// flood collects the group containing (row, col) and marks it in seen.
func (g *Grid) flood(row, col int, seen *[Rows][Cols]bool) Group {
	color := g.cells[row][col]
	grp := Group{Color: color}
	stack := []Cell{{row, col}}
	seen[row][col] = true
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		grp.Cells = append(grp.Cells, c)
		for _, d := range orthogonal {
			r, k := c.Row+d[0], c.Col+d[1]
			if r < 0 || r >= Rows || k < 0 || k >= Cols || seen[r][k] {
				continue
			}
			if g.cells[r][k] == color {
				seen[r][k] = true
				stack = append(stack, Cell{r, k})
			}
		}
	}
	return grp
}

// Collapse applies gravity: every column is compacted towards row 0,
// keeping the order of its blocks.
func (g *Grid) Collapse() {
	for col := 0; col < Cols; col++ {
		dst := 0
		for row := 0; row < Rows; row++ {
			b := g.cells[row][col]
			if b == Empty {
				continue
			}
			if row != dst {
				g.cells[dst][col] = b
				g.cells[row][col] = Empty
			}
			dst++
		}
	}
}

// Resolve clears groups of MinGroup or more, drops what is left and repeats
// until the grid is stable. Skulls touching a cleared block are destroyed
// with it. Each step scores 10*B*(CP+CB+GB), the multiplier clamped to
// [1, 999].
func (g *Grid) Resolve() Result {
	var res Result
	for step := 1; ; step++ {
		var matched []Group
		for _, grp := range g.Groups() {
			if len(grp.Cells) >= MinGroup {
				matched = append(matched, grp)
			}
		}
		if len(matched) == 0 {
			return res
		}

		var colors [NumColors]bool
		blocks, groupBonus := 0, 0
		for _, grp := range matched {
			colors[grp.Color.colorIndex()] = true
			blocks += len(grp.Cells)
			groupBonus += GroupBonus(len(grp.Cells))
		}
		for _, grp := range matched {
			for _, c := range grp.Cells {
				g.cells[c.Row][c.Col] = Empty
				for _, d := range orthogonal {
					if g.Get(c.Row+d[0], c.Col+d[1]) == Skull {
						g.Clear(c.Row+d[0], c.Col+d[1])
						res.Skulls++
					}
				}
			}
		}
		distinct := 0
		for _, ok := range colors {
			if ok {
				distinct++
			}
		}

		mult := ChainPower(step) + ColorBonus(distinct) + groupBonus
		mult = max(1, min(mult, 999))
		res.Score += 10 * blocks * mult
		res.Steps++
		res.Cleared += blocks
		g.Collapse()
	}
}
