// Package caribbean plays Coders of the Caribbean: pirate ships race for
// rum barrels scattered over a hex sea.
package caribbean

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

// Entity types sent by the referee.
const (
	Ship   = "SHIP"
	Barrel = "BARREL"
)

// Entity is one line of the turn input. For ships Args are rotation,
// speed, rum and owner (1 is us); for barrels Args[0] is the rum amount.
type Entity struct {
	ID   int
	Type string
	X, Y int
	Args [4]int
}

func (e Entity) Mine() bool { return e.Type == Ship && e.Args[3] == 1 }

// State is one turn of input.
type State struct {
	ShipCount int
	Entities  []Entity
}

func ReadState(r *codingame.Reader) (State, error) {
	var st State
	var n int
	if err := r.Scan(&st.ShipCount, &n); err != nil {
		return st, err
	}
	st.Entities = make([]Entity, n)
	for i := range st.Entities {
		e := &st.Entities[i]
		if err := r.Scan(&e.ID, &e.Type, &e.X, &e.Y, &e.Args[0], &e.Args[1], &e.Args[2], &e.Args[3]); err != nil {
			return st, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return st, nil
}

func dist2(a, b Entity) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Decide sends each of our ships, in input order, to the closest barrel no
// earlier ship has claimed. A ship left without a barrel slows down. The
// result has exactly ShipCount commands.
func Decide(st State) []string {
	var ships, barrels []Entity
	for _, e := range st.Entities {
		switch {
		case e.Mine():
			ships = append(ships, e)
		case e.Type == Barrel:
			barrels = append(barrels, e)
		}
	}

	claimed := make([]bool, len(barrels))
	cmds := make([]string, st.ShipCount)
	for i := range cmds {
		cmds[i] = "SLOWER"
		if i >= len(ships) {
			continue
		}
		best := -1
		for j, b := range barrels {
			if claimed[j] {
				continue
			}
			if best < 0 || dist2(ships[i], b) < dist2(ships[i], barrels[best]) {
				best = j
			}
		}
		if best >= 0 {
			claimed[best] = true
			cmds[i] = fmt.Sprintf("MOVE %d %d", barrels[best].X, barrels[best].Y)
		}
	}
	return cmds
}

// Bot plays Coders of the Caribbean over the judge protocol.
type Bot struct {
	logger log.Logger
	turn   int
}

func NewBot(logger log.Logger) *Bot {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bot{logger: logger}
}

// Init is a no-op: the game sends no header.
func (b *Bot) Init(*codingame.Reader) error { return nil }

func (b *Bot) Turn(r *codingame.Reader, w io.Writer) error {
	st, err := ReadState(r)
	if err != nil {
		return err
	}
	if st.ShipCount < 0 {
		return errors.New("negative ship count")
	}
	b.turn++
	for i, cmd := range Decide(st) {
		_ = level.Debug(b.logger).Log("turn", b.turn, "ship", i, "cmd", cmd)
		if _, err := fmt.Fprintln(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
