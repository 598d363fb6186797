package kutulu

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
	Explorer = "EXPLORER"
	Wanderer = "WANDERER"
)

// DangerRadius is how many steps away a wanderer must stay.
const DangerRadius = 2

// Entity is one line of the turn input. Params mean sanity, plans and
// lights for explorers, and spawn timer, state and target for wanderers.
type Entity struct {
	Type   string
	ID     int
	Pos    Pos
	Params [3]int
}

// Rules are the per game constants sent after the maze.
type Rules struct {
	SanityLossLonely  int
	SanityLossGroup   int
	WandererSpawnTime int
	WandererLifeTime  int
}

// ReadEntities reads one turn. The first entity is our explorer.
func ReadEntities(r *codingame.Reader) ([]Entity, error) {
	n, err := r.Int()
	if err != nil {
		return nil, err
	}
	out := make([]Entity, n)
	for i := range out {
		e := &out[i]
		if err := r.Scan(&e.Type, &e.ID, &e.Pos.X, &e.Pos.Y, &e.Params[0], &e.Params[1], &e.Params[2]); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return out, nil
}

// Decide picks the action of me. Running from wanderers comes before
// joining the group.
func Decide(g *Grid, me Entity, others []Entity) string {
	dist := g.Distances(me.Pos)

	var wanderers, explorers []Entity
	for _, e := range others {
		switch e.Type {
		case Wanderer:
			wanderers = append(wanderers, e)
		case Explorer:
			explorers = append(explorers, e)
		}
	}

	for _, w := range wanderers {
		if d := g.DistanceIn(dist, w.Pos); d != Unreachable && d <= DangerRadius {
			return flee(g, me.Pos, wanderers)
		}
	}

	var target *Entity
	best := 0
	for i, e := range explorers {
		d := g.DistanceIn(dist, e.Pos)
		if d == Unreachable {
			continue
		}
		if target == nil || d < best {
			target, best = &explorers[i], d
		}
	}
	if target != nil && best > DangerRadius {
		return "MOVE " + nextStep(g, me.Pos, target.Pos).String()
	}
	return "WAIT"
}

// flee moves to the neighbour, or stays, whichever is farthest from the
// closest wanderer.
func flee(g *Grid, from Pos, wanderers []Entity) string {
	maps := make([][]int, len(wanderers))
	for i, w := range wanderers {
		maps[i] = g.Distances(w.Pos)
	}
	safety := func(p Pos) int {
		worst := -1
		for _, m := range maps {
			d := g.DistanceIn(m, p)
			if d == Unreachable {
				continue
			}
			if worst < 0 || d < worst {
				worst = d
			}
		}
		if worst < 0 {
			return len(g.cells)
		}
		return worst
	}

	best, bestSafety := from, safety(from)
	for _, s := range steps {
		n := Pos{from.X + s.X, from.Y + s.Y}
		if !g.Walkable(n) {
			continue
		}
		if v := safety(n); v > bestSafety {
			best, bestSafety = n, v
		}
	}
	if best == from {
		return "WAIT"
	}
	return "MOVE " + best.String()
}

// nextStep is the first cell on a shortest path from src to dst.
func nextStep(g *Grid, src, dst Pos) Pos {
	back := g.Distances(dst)
	d := g.DistanceIn(back, src)
	for _, s := range steps {
		n := Pos{src.X + s.X, src.Y + s.Y}
		if nd := g.DistanceIn(back, n); nd != Unreachable && nd == d-1 {
			return n
		}
	}
	return src
}

// Bot plays Code of Kutulu over the judge protocol.
type Bot struct {
	grid   *Grid
	rules  Rules
	logger log.Logger
	turn   int
}

func NewBot(logger log.Logger) *Bot {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Bot{logger: logger}
}

func (b *Bot) Init(r *codingame.Reader) error {
	g, err := ReadGrid(r)
	if err != nil {
		return err
	}
	b.grid = g
	rl := &b.rules
	if err := r.Scan(&rl.SanityLossLonely, &rl.SanityLossGroup, &rl.WandererSpawnTime, &rl.WandererLifeTime); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	_ = level.Debug(b.logger).Log("msg", "maze", "width", g.Width, "height", g.Height,
		"loss_lonely", rl.SanityLossLonely, "loss_group", rl.SanityLossGroup)
	return nil
}

func (b *Bot) Turn(r *codingame.Reader, w io.Writer) error {
	if b.grid == nil {
		return errors.New("turn before init")
	}
	entities, err := ReadEntities(r)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return errors.New("no entities")
	}
	b.turn++

	cmd := Decide(b.grid, entities[0], entities[1:])
	_ = level.Debug(b.logger).Log("turn", b.turn, "at", entities[0].Pos, "sanity", entities[0].Params[0], "cmd", cmd)
	_, err = fmt.Fprintln(w, cmd)
	return err
}
