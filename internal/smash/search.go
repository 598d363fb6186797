package smash

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ErrNoPlacement is returned when every placement overflows the grid.
var ErrNoPlacement = errors.New("no valid placement")

// scoreWeight lifts chain points above any static evaluation.
const scoreWeight = math.MaxInt16

// Settings tune one search.
type Settings struct {
	MaxDepth   int           // extra plies searched after the current pair
	DepthBonus int           // reward per ply for delaying a scoring chain
	Budget     time.Duration // wall time allowed, zero for no limit
}

// Move is the outcome of a search.
type Move struct {
	Placement
	Value int
	Depth int // deepest fully searched ply
}

// Engine searches the placement tree with iterative deepening so that a
// result is always available when the turn budget runs out.
type Engine struct {
	settings Settings
	logger   log.Logger

	ctx     context.Context
	aborted bool
	nodes   int
}

func NewEngine(settings Settings, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{settings: settings, logger: logger}
}

// Best picks the placement for pairs[0] on grid, looking ahead through the
// following pairs up to the configured depth.
func (e *Engine) Best(ctx context.Context, grid Grid, pairs []Pair) (Move, error) {
	if len(pairs) == 0 {
		return Move{}, errors.New("search: no pairs")
	}
	if e.settings.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.settings.Budget)
		defer cancel()
	}
	e.ctx = ctx
	e.nodes = 0
	start := time.Now()

	maxDepth := min(e.settings.MaxDepth, len(pairs)-1)
	var best Move
	for depth := 0; depth <= maxDepth; depth++ {
		e.aborted = false
		move := e.root(grid, pairs, depth)

		// depth 0 is never cut short: it is only 24 nodes
		if e.aborted && depth > 0 {
			_ = level.Debug(e.logger).Log("msg", "search aborted", "depth", depth, "elapsed", time.Since(start))
			break
		}
		best = move
		best.Depth = depth
	}

	_ = level.Debug(e.logger).Log("msg", "search done", "move", best.Placement, "value", best.Value,
		"depth", best.Depth, "nodes", e.nodes, "elapsed", time.Since(start))

	if best.Value == math.MinInt {
		return best, ErrNoPlacement
	}
	return best, nil
}

// root evaluates every placement of pairs[0] searching maxDepth plies deep.
// Ties go to the first placement in Placements order.
func (e *Engine) root(grid Grid, pairs []Pair, maxDepth int) Move {
	best := Move{Placement: Placements[0], Value: math.MinInt}
	for _, p := range Placements {
		v := e.value(grid, p, pairs, 0, maxDepth)
		if v > best.Value {
			best = Move{Placement: p, Value: v}
		}
	}
	return best
}

func (e *Engine) bestValue(grid Grid, pairs []Pair, depth, maxDepth int) int {
	best := math.MinInt
	for _, p := range Placements {
		if e.aborted {
			break
		}
		best = max(best, e.value(grid, p, pairs, depth, maxDepth))
	}
	return best
}

// value scores dropping pairs[depth] at p: the static rate of the grid with
// the pair landed, plus the chain score, plus the best positive follow up.
func (e *Engine) value(grid Grid, p Placement, pairs []Pair, depth, maxDepth int) int {
	e.nodes++
	if depth > 0 && e.ctx.Err() != nil {
		e.aborted = true
		return math.MinInt
	}

	if _, err := grid.Place(p, pairs[depth]); err != nil {
		return math.MinInt
	}
	rate := grid.Rate()
	score := grid.Resolve().Score

	bonus := 0
	if score > 0 {
		bonus = depth * e.settings.DepthBonus
	}
	val := rate + (score+bonus)*scoreWeight

	if depth < maxDepth {
		if next := e.bestValue(grid, pairs, depth+1, maxDepth); next > 0 {
			val += next
		}
	}
	return val
}

// NextMaxScore is the best chain score reachable by dropping pair on grid
// this turn, or 0 when nothing scores.
func NextMaxScore(grid Grid, pair Pair) int {
	best := 0
	for _, p := range Placements {
		g := grid
		if _, err := g.Place(p, pair); err != nil {
			continue
		}
		best = max(best, g.Resolve().Score)
	}
	return best
}
