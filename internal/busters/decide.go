package busters

import (
	"fmt"
	"math"
)

// Command kinds written to the judge.
const (
	Move    = "MOVE"
	Bust    = "BUST"
	Release = "RELEASE"
	Stun    = "STUN"
)

// Command is the order for one buster.
type Command struct {
	Kind   string
	Target Point // MOVE
	ID     int   // BUST, STUN
}

func (c Command) String() string {
	switch c.Kind {
	case Move:
		return fmt.Sprintf("%s %s", Move, c.Target)
	case Bust, Stun:
		return fmt.Sprintf("%s %d", c.Kind, c.ID)
	}
	return c.Kind
}

// nearestEnemy returns the closest enemy in sight that can still act.
func (w *World) nearestEnemy(pos Point) *Buster {
	var best *Buster
	bestDist := math.MaxInt
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if e.ID < 0 || e.State == BusterStunned || e.State == BusterUnknown || e.State == BusterUndefined {
			continue
		}
		if d := Distance(pos, e.Pos); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// nearestGhost weighs distance by the rounds the ghost resists. A ghost
// already being trapped counts half its stamina since the work is shared.
func (w *World) nearestGhost(pos Point) *Ghost {
	var best *Ghost
	bestCost := math.MaxInt
	for _, id := range w.ghostIDs() {
		g := w.Ghosts[id]
		if g.State == GhostUndefined || g.State == GhostBusted {
			continue
		}
		effort := g.Stamina * MoveDistance
		if g.State == GhostBusting {
			effort /= 2
		}
		if cost := Distance(pos, g.Pos) + effort; cost < bestCost {
			best, bestCost = g, cost
		}
	}
	return best
}

// Decide returns one command per player, in player order.
func (w *World) Decide() []Command {
	cmds := make([]Command, len(w.Players))
	for i := range w.Players {
		cmds[i] = w.decide(&w.Players[i])
	}
	return cmds
}

func (w *World) decide(p *Player) Command {
	if p.CanStun(w.Round) {
		if e := w.nearestEnemy(p.Pos); e != nil && Distance(p.Pos, e.Pos) <= StunRadius {
			p.lastStun = w.Round
			e.State = BusterStunned
			return Command{Kind: Stun, ID: e.ID}
		}
	}

	base := w.Base()
	if p.State == BusterCarrying {
		if base.Inside(p.Pos) {
			w.ghost(p.Carried).State = GhostBusted
			return Command{Kind: Release}
		}
		return Command{Kind: Move, Target: base.ReturnPos()}
	}

	if g := w.nearestGhost(p.Pos); g != nil {
		if g.State == GhostUnknown {
			p.Dest = g.Pos
		}
		g.State = GhostBusting
		return w.approach(p, g)
	}

	if p.Dest == p.Pos {
		p.Dest = w.explore()
	}
	return Command{Kind: Move, Target: p.Dest}
}

// approach moves into the trapping ring around g, or busts when inside it.
func (w *World) approach(p *Player, g *Ghost) Command {
	dist := Distance(p.Pos, g.Pos)
	switch {
	case dist > MaxBustRadius:
		return Command{Kind: Move, Target: g.Pos}
	case dist < MinBustRadius:
		from := p.Pos
		if dist == 0 {
			from = w.Base().Pos()
		}
		dir := VectorOf(from).Sub(VectorOf(g.Pos)).Normalized()
		dest := VectorOf(g.Pos).Add(dir.Scale(MinBustRadius)).Point()
		return Command{Kind: Move, Target: dest}
	}
	return Command{Kind: Bust, ID: g.ID}
}

// explore draws a random destination skewed towards the map edges.
func (w *World) explore() Point {
	x := w.rng.Intn(MapWidth + 1)
	x = w.rng.Intn(x + 1)
	y := w.rng.Intn(MapHeight + 1)
	y = w.rng.Intn(y + 1)
	if w.rng.Intn(2) == 1 {
		x = MapWidth - x
	} else {
		y = MapHeight - y
	}
	return Point{x, y}
}
