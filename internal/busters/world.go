package busters

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"codingame/internal/codingame"
)

// GhostState is what the team knows about a ghost.
type GhostState int

const (
	GhostUndefined GhostState = iota // never seen, or last position proven stale
	GhostUnknown                     // not visible, last position may still hold
	GhostKnown
	GhostBusting // some buster is trapping it
	GhostBusted
)

func (s GhostState) String() string {
	return [...]string{"?", "U", "K", "B", "X"}[s]
}

// BusterState mirrors the referee buster state, plus what the fog hides.
type BusterState int

const (
	BusterUndefined BusterState = iota
	BusterUnknown
	BusterKnown
	BusterCarrying
	BusterStunned
)

type Ghost struct {
	ID      int
	Pos     Point
	State   GhostState
	Stamina int
}

type Buster struct {
	ID      int
	Pos     Point
	State   BusterState
	Carried int
}

// Player is one of our busters along with its exploration target and stun
// cooldown.
type Player struct {
	Buster
	Dest     Point
	lastStun int
}

// CanStun reports whether the cooldown has elapsed in round.
func (p *Player) CanStun(round int) bool {
	return p.lastStun+StunCooldown < round
}

// Base is a team's home corner.
type Base struct {
	Team int
}

func (b Base) Pos() Point {
	if b.Team == 0 {
		return Point{0, 0}
	}
	return Point{MapWidth, MapHeight}
}

// Inside reports whether a ghost released at p counts.
func (b Base) Inside(p Point) bool {
	return Distance(p, b.Pos()) < BaseRadius
}

// ReturnPos is where carriers head to release.
func (b Base) ReturnPos() Point {
	if b.Team == 0 {
		return Point{ReturnCoord, ReturnCoord}
	}
	return Point{MapWidth - ReturnCoord, MapHeight - ReturnCoord}
}

// World is the team's memory of the map across rounds.
type World struct {
	BustersPerPlayer int
	GhostCount       int
	Team             int
	Round            int

	Players []Player
	Enemies []Buster
	Ghosts  map[int]*Ghost

	rng *rand.Rand
}

// NewWorld reads the game header and spreads the busters across the map
// centre line.
func NewWorld(r *codingame.Reader, rng *rand.Rand) (*World, error) {
	w := &World{Ghosts: map[int]*Ghost{}, rng: rng}
	if err := r.Scan(&w.BustersPerPlayer, &w.GhostCount, &w.Team); err != nil {
		return nil, err
	}
	if w.Team != 0 && w.Team != 1 {
		return nil, fmt.Errorf("team id %d out of range", w.Team)
	}
	if w.BustersPerPlayer <= 0 {
		return nil, fmt.Errorf("busters per player %d", w.BustersPerPlayer)
	}

	w.Players = make([]Player, w.BustersPerPlayer)
	w.Enemies = make([]Buster, w.BustersPerPlayer)
	for i := range w.Players {
		w.Players[i].ID = -1
		w.Players[i].lastStun = -StunCooldown - 1
		w.Players[i].Dest = Point{MapWidth / (w.BustersPerPlayer + 1) * (i + 1), MapHeight / 2}
	}
	for i := range w.Enemies {
		w.Enemies[i].ID = -1
	}
	return w, nil
}

func (w *World) Base() Base { return Base{Team: w.Team} }

func (w *World) ghost(id int) *Ghost {
	g, ok := w.Ghosts[id]
	if !ok {
		g = &Ghost{ID: id}
		w.Ghosts[id] = g
	}
	return g
}

// twin is the id of the ghost spawned mirrored to id.
func twin(id int) int {
	if id%2 == 1 {
		return id + 1
	}
	return id - 1
}

// Update starts a new round and reads the visible entities.
func (w *World) Update(r *codingame.Reader) error {
	w.Round++

	for i := range w.Players {
		w.Players[i].State = BusterUnknown
	}
	for i := range w.Enemies {
		if w.Enemies[i].State != BusterUndefined {
			w.Enemies[i].State = BusterUnknown
		}
	}
	for _, g := range w.Ghosts {
		if g.State != GhostBusted && g.State != GhostUndefined {
			g.State = GhostUnknown
		}
	}

	n, err := r.Int()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		var id, x, y, typ, state, value int
		if err := r.Scan(&id, &x, &y, &typ, &state, &value); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		if typ == -1 {
			w.seeGhost(id, Point{x, y}, state, value)
			continue
		}
		if err := w.seeBuster(id, Point{x, y}, typ, state, value); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}

	// a ghost remembered inside someone's sight but not reported has moved
	for _, g := range w.Ghosts {
		if g.State != GhostUnknown {
			continue
		}
		for _, p := range w.Players {
			if Distance(p.Pos, g.Pos) < FogRadius {
				g.State = GhostUndefined
				break
			}
		}
	}
	return nil
}

func (w *World) seeBuster(id int, pos Point, team, state, value int) error {
	idx := id
	if idx >= w.BustersPerPlayer {
		idx -= w.BustersPerPlayer
	}
	if idx < 0 || idx >= w.BustersPerPlayer {
		return fmt.Errorf("buster id %d out of range", id)
	}

	var b *Buster
	if team == w.Team {
		b = &w.Players[idx].Buster
	} else {
		b = &w.Enemies[idx]
	}
	b.ID = id
	b.Pos = pos
	b.Carried = value
	switch state {
	case 1:
		b.State = BusterCarrying
		g := w.ghost(value)
		g.State = GhostBusted
		g.Stamina = 0
	case 2:
		b.State = BusterStunned
	default:
		b.State = BusterKnown
	}
	return nil
}

func (w *World) seeGhost(id int, pos Point, stamina, trappers int) {
	g := w.ghost(id)
	g.Pos = pos
	g.Stamina = stamina
	g.State = GhostKnown
	if trappers > 0 {
		g.State = GhostBusting
	}

	// ghosts other than 0 spawn in mirrored pairs
	if id == 0 {
		return
	}
	if _, ok := w.Ghosts[twin(id)]; !ok {
		w.Ghosts[twin(id)] = &Ghost{
			ID:      twin(id),
			Pos:     Point{MapWidth - pos.X, MapHeight - pos.Y},
			State:   GhostUnknown,
			Stamina: stamina,
		}
	}
}

// ghostIDs returns the known ghost ids in ascending order.
func (w *World) ghostIDs() []int {
	ids := make([]int, 0, len(w.Ghosts))
	for id := range w.Ghosts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Summary renders the ghost memory as "id:state" pairs for the debug log.
func (w *World) Summary() string {
	var sb strings.Builder
	for _, id := range w.ghostIDs() {
		fmt.Fprintf(&sb, "%d:%s ", id, w.Ghosts[id].State)
	}
	return strings.TrimSpace(sb.String())
}
