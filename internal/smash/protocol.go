package smash

import (
	"fmt"
	"strings"

	"codingame/internal/codingame"
)

// Incoming is the number of pairs announced each turn, the current one first.
const Incoming = 8

// State is one turn of input.
type State struct {
	Pairs [Incoming]Pair
	Me    Grid
	Opp   Grid
}

// ReadState parses a turn: Incoming lines "colorA colorB", then both grids
// top line first, own grid before the opponent's.
func ReadState(r *codingame.Reader) (State, error) {
	var st State
	for i := range st.Pairs {
		var a, b int
		if err := r.Scan(&a, &b); err != nil {
			return st, fmt.Errorf("pair %d: %w", i, err)
		}
		if a < 1 || a > NumColors || b < 1 || b > NumColors {
			return st, fmt.Errorf("pair %d: colors %d %d out of range", i, a, b)
		}
		st.Pairs[i] = Pair{A: Color1 + Block(a-1), B: Color1 + Block(b-1)}
	}

	var err error
	if st.Me, err = readGrid(r); err != nil {
		return st, fmt.Errorf("my grid: %w", err)
	}
	if st.Opp, err = readGrid(r); err != nil {
		return st, fmt.Errorf("opponent grid: %w", err)
	}
	return st, nil
}

func readGrid(r *codingame.Reader) (Grid, error) {
	lines := make([]string, Rows)
	for i := range lines {
		line, err := r.Word()
		if err != nil {
			return Grid{}, err
		}
		lines[i] = line
	}
	return ParseGrid(lines)
}

// Format renders st in the same layout ReadState consumes.
func (st *State) Format() string {
	var sb strings.Builder
	for _, p := range st.Pairs {
		fmt.Fprintf(&sb, "%c %c\n", p.A.Byte(), p.B.Byte())
	}
	for _, line := range st.Me.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	for _, line := range st.Opp.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParsePlacement decodes a "col rot" command. Anything after the two
// numbers is an optional message and is ignored.
func ParsePlacement(line string) (Placement, error) {
	var p Placement
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return p, fmt.Errorf("command %q: %w", line, ErrInvalidPlacement)
	}
	if _, err := fmt.Sscan(fields[0], &p.Col); err != nil {
		return p, fmt.Errorf("command %q: column: %w", line, err)
	}
	if _, err := fmt.Sscan(fields[1], &p.Rot); err != nil {
		return p, fmt.Errorf("command %q: rotation: %w", line, err)
	}
	return p, nil
}
