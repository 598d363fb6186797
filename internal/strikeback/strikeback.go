// Package strikeback plays Coders Strike Back: a pod races through
// checkpoints, steering by target point and thrust.
package strikeback

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

const (
	MaxThrust = 100
	MinThrust = 5

	// beyond this angle the checkpoint is behind the pod
	maxSteerAngle = 90

	boostAngle    = 10
	boostDistance = 200
)

// State is one turn of input.
type State struct {
	X, Y         int
	NextX, NextY int
	NextDist     int
	NextAngle    int // degrees between the pod heading and the checkpoint
	OpponentX    int
	OpponentY    int
}

func ReadState(r *codingame.Reader) (State, error) {
	var st State
	err := r.Scan(&st.X, &st.Y, &st.NextX, &st.NextY, &st.NextDist, &st.NextAngle, &st.OpponentX, &st.OpponentY)
	return st, err
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Pilot keeps the race long state: the single boost.
type Pilot struct {
	boosted bool
}

// Thrust slows down on approach and cuts the engine when the checkpoint is
// behind the pod.
func Thrust(st State) int {
	if abs(st.NextAngle) > maxSteerAngle {
		return 0
	}
	return max(MinThrust, min(MaxThrust, st.NextDist/3))
}

// Command returns the order for this turn: "x y thrust" or "x y BOOST".
func (p *Pilot) Command(st State) string {
	thrust := Thrust(st)
	power := strconv.Itoa(thrust)
	if !p.boosted && abs(st.NextAngle) < boostAngle && thrust == MaxThrust && st.NextDist > boostDistance {
		p.boosted = true
		power = "BOOST"
	}
	return fmt.Sprintf("%d %d %s", st.NextX, st.NextY, power)
}

// Bot plays Coders Strike Back over the judge protocol.
type Bot struct {
	pilot  Pilot
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
	b.turn++
	cmd := b.pilot.Command(st)
	_ = level.Debug(b.logger).Log("turn", b.turn, "dist", st.NextDist, "angle", st.NextAngle, "cmd", cmd)
	_, err = fmt.Fprintln(w, cmd)
	return err
}
