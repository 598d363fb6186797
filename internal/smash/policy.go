package smash

import "time"

// nuisanceRow is the score that buries the opponent under one full row of
// skulls.
const nuisanceRow = Cols * 70

const (
	DefaultMaxDepth   = 2
	DefaultDepthBonus = 1
)

// PlanTurn adapts the search to the state of the match. When the opponent
// can send a big chain right now there is no time to build: the search
// prefers immediate points and gets shallower. A crowded own well also stops
// rewarding delayed chains.
func PlanTurn(me, opp Grid, pairs []Pair, budget time.Duration) Settings {
	s := Settings{
		MaxDepth:   DefaultMaxDepth,
		DepthBonus: DefaultDepthBonus,
		Budget:     budget,
	}
	if len(pairs) == 0 {
		return s
	}

	threat := NextMaxScore(opp, pairs[0])
	if threat >= nuisanceRow*4 {
		s.DepthBonus = 0
	}
	switch {
	case threat >= nuisanceRow*6:
		s.MaxDepth = 0
	case threat >= nuisanceRow*3:
		s.MaxDepth = 1
	}

	if me.Count(Skull) >= 12 || me.Count(Empty) <= 12 {
		s.DepthBonus = 0
	}
	return s
}
