package busters

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

// Bot plays CodeBusters over the judge protocol.
type Bot struct {
	world  *World
	rng    *rand.Rand
	logger log.Logger
}

func NewBot(seed int64, logger log.Logger) *Bot {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bot{rng: rand.New(rand.NewSource(seed)), logger: logger}
}

// Init reads busters per player, ghost count and our team id.
func (b *Bot) Init(r *codingame.Reader) error {
	w, err := NewWorld(r, b.rng)
	if err != nil {
		return err
	}
	b.world = w
	_ = level.Debug(b.logger).Log("msg", "world", "busters", w.BustersPerPlayer, "ghosts", w.GhostCount, "team", w.Team)
	return nil
}

func (b *Bot) Turn(r *codingame.Reader, w io.Writer) error {
	if b.world == nil {
		return errors.New("turn before init")
	}
	if err := b.world.Update(r); err != nil {
		return err
	}
	_ = level.Debug(b.logger).Log("round", b.world.Round, "ghosts", b.world.Summary())

	for i, cmd := range b.world.Decide() {
		_ = level.Debug(b.logger).Log("round", b.world.Round, "buster", i, "cmd", cmd)
		if _, err := fmt.Fprintln(w, cmd); err != nil {
			return err
		}
	}
	return nil
}
