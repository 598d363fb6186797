package arena

import (
	"errors"
	"math/rand"

	"codingame/internal/smash"
)

// PointsPerSkull is how many chain points send one skull to the opponent.
const PointsPerSkull = 70

// Referee applies the SmashTheCode rules to two wells fed by the same pair
// sequence.
type Referee struct {
	grids   [2]smash.Grid
	scores  [2]int
	points  [2]int // chain points not yet converted to skulls
	pending [2]int // skulls waiting to fall on each well
	queue   []smash.Pair
	rng     *rand.Rand
	turn    int
}

func NewReferee(seed int64) *Referee {
	r := &Referee{rng: rand.New(rand.NewSource(seed))}
	r.fill()
	return r
}

func (r *Referee) fill() {
	for len(r.queue) < smash.Incoming {
		r.queue = append(r.queue, smash.Pair{
			A: smash.Color1 + smash.Block(r.rng.Intn(smash.NumColors)),
			B: smash.Color1 + smash.Block(r.rng.Intn(smash.NumColors)),
		})
	}
}

func (r *Referee) Turn() int             { return r.turn }
func (r *Referee) Scores() [2]int        { return r.scores }
func (r *Referee) Pending() [2]int       { return r.pending }
func (r *Referee) Grid(p int) smash.Grid { return r.grids[p] }

// StartTurn drops every whole row of pending skulls, one skull per column.
// Full columns lose their skull.
func (r *Referee) StartTurn() {
	r.turn++
	for p := range r.grids {
		for r.pending[p] >= smash.Cols {
			r.pending[p] -= smash.Cols
			for col := 0; col < smash.Cols; col++ {
				_, _ = r.grids[p].Drop(col, smash.Skull)
			}
		}
	}
}

// State is what player p sees this turn.
func (r *Referee) State(p int) smash.State {
	st := smash.State{Me: r.grids[p], Opp: r.grids[1-p]}
	copy(st.Pairs[:], r.queue)
	return st
}

// Move is a player's answer for one turn. Err is set when the player did not
// answer in time or crashed.
type Move struct {
	Output string
	Err    error
}

// Apply plays both moves and returns the record of the turn, plus the
// outcome when the match is over.
func (r *Referee) Apply(moves [2]Move, maxTurns int) (TurnRecord, *Outcome) {
	pair := r.queue[0]
	rec := TurnRecord{
		Turn: r.turn,
		Pair: [2]int{int(pair.A.Byte() - '0'), int(pair.B.Byte() - '0')},
	}

	var lost [2]Termination
	for p, m := range moves {
		rec.Commands[p] = m.Output
		if term, err := r.play(p, m, pair, &rec); err != nil {
			lost[p] = term
			rec.Errors[p] = err.Error()
		}
	}

	r.queue = r.queue[1:]
	r.fill()

	for p := range r.grids {
		rec.Scores[p] = r.scores[p]
		rec.Skulls[p] = r.pending[p]
		rec.Grids[p] = r.grids[p].Lines()
	}

	switch {
	case lost[0] != "" && lost[1] != "":
		return rec, r.outcome(Draw, lost[0])
	case lost[0] != "":
		return rec, r.outcome(1, lost[0])
	case lost[1] != "":
		return rec, r.outcome(0, lost[1])
	case maxTurns > 0 && r.turn >= maxTurns:
		winner := Draw
		if r.scores[0] > r.scores[1] {
			winner = 0
		} else if r.scores[1] > r.scores[0] {
			winner = 1
		}
		return rec, r.outcome(winner, TermMaxTurns)
	}
	return rec, nil
}

func (r *Referee) play(p int, m Move, pair smash.Pair, rec *TurnRecord) (Termination, error) {
	if m.Err != nil {
		if errors.Is(m.Err, ErrTimeout) {
			return TermTimeout, m.Err
		}
		return TermCrash, m.Err
	}
	pl, err := smash.ParsePlacement(m.Output)
	if err != nil {
		return TermInvalid, err
	}
	if _, err := r.grids[p].Place(pl, pair); err != nil {
		return TermPlacement, err
	}

	res := r.grids[p].Resolve()
	rec.Chains[p] = res.Steps
	r.scores[p] += res.Score
	r.points[p] += res.Score
	r.pending[1-p] += r.points[p] / PointsPerSkull
	r.points[p] %= PointsPerSkull
	return "", nil
}

func (r *Referee) outcome(winner int, term Termination) *Outcome {
	return &Outcome{Winner: winner, Termination: term, Turns: r.turn, Scores: r.scores}
}
