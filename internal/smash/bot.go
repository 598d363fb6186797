package smash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

// Bot plays SmashTheCode over the judge protocol.
type Bot struct {
	budget time.Duration
	logger log.Logger
	turn   int
}

func NewBot(budget time.Duration, logger log.Logger) *Bot {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bot{budget: budget, logger: logger}
}

// Init is a no-op: SmashTheCode sends no game header.
func (b *Bot) Init(*codingame.Reader) error { return nil }

func (b *Bot) Turn(r *codingame.Reader, w io.Writer) error {
	st, err := ReadState(r)
	if err != nil {
		return err
	}
	b.turn++

	move, err := b.Decide(context.Background(), st)
	if err != nil {
		// the well is full either way, any command loses
		_ = level.Warn(b.logger).Log("turn", b.turn, "err", err)
	}
	_, err = fmt.Fprintln(w, move.Placement)
	return err
}

// Decide searches the best placement for the current pair of st.
func (b *Bot) Decide(ctx context.Context, st State) (Move, error) {
	settings := PlanTurn(st.Me, st.Opp, st.Pairs[:], b.budget)
	logger := log.With(b.logger, "turn", b.turn)

	move, err := NewEngine(settings, logger).Best(ctx, st.Me, st.Pairs[:])
	if err != nil && !errors.Is(err, ErrNoPlacement) {
		return move, err
	}
	_ = level.Debug(logger).Log("msg", "decided", "move", move.Placement, "value", move.Value,
		"depth", move.Depth, "max_depth", settings.MaxDepth, "depth_bonus", settings.DepthBonus)
	return move, err
}
