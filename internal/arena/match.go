package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Match is one game between two seated players.
type Match struct {
	ID        string
	Names     [2]string
	Players   [2]Player
	Referee   *Referee
	StartedAt time.Time
	EndedAt   time.Time
	Log       []TurnRecord
	Outcome   Outcome
}

// MatchOptions bound a match.
type MatchOptions struct {
	TurnTimeout time.Duration
	MaxTurns    int
	Logger      log.Logger
	// Observe, when set, is called after every turn.
	Observe func(m *Match, rec TurnRecord)
}

// Play runs the match to completion. Cancelling ctx ends it as a draw with
// TermAborted.
func (m *Match) Play(ctx context.Context, opts MatchOptions) Outcome {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "match", m.ID)
	m.StartedAt = time.Now()
	defer func() { m.EndedAt = time.Now() }()

	_ = level.Info(logger).Log("msg", "match started", "player1", m.Names[0], "player2", m.Names[1])
	for {
		if ctx.Err() != nil {
			m.abort()
			break
		}

		m.Referee.StartTurn()
		moves := m.collect(ctx, opts.TurnTimeout)
		if ctx.Err() != nil {
			m.abort()
			break
		}
		rec, out := m.Referee.Apply(moves, opts.MaxTurns)
		m.Log = append(m.Log, rec)
		_ = level.Debug(logger).Log("turn", rec.Turn, "cmd1", rec.Commands[0], "cmd2", rec.Commands[1],
			"score1", rec.Scores[0], "score2", rec.Scores[1])
		if opts.Observe != nil {
			opts.Observe(m, rec)
		}
		if out != nil {
			m.Outcome = *out
			break
		}
	}

	_ = level.Info(logger).Log("msg", "match over", "winner", m.Outcome.Winner, "termination", m.Outcome.Termination,
		"turns", m.Outcome.Turns, "score1", m.Outcome.Scores[0], "score2", m.Outcome.Scores[1])
	return m.Outcome
}

func (m *Match) abort() {
	m.Outcome = Outcome{Winner: Draw, Termination: TermAborted, Turns: m.Referee.Turn(), Scores: m.Referee.Scores()}
}

// collect asks both players concurrently, each under its own deadline.
func (m *Match) collect(ctx context.Context, timeout time.Duration) [2]Move {
	var moves [2]Move
	var wg sync.WaitGroup
	for p := range m.Players {
		st := m.Referee.State(p)
		input := st.Format()
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			tctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				tctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			out, err := m.Players[p].Turn(tctx, input)
			moves[p] = Move{Output: out, Err: err}
		}(p)
	}
	wg.Wait()
	return moves
}

// Record converts a finished match for storage.
func (m *Match) Record() (*MatchRecord, error) {
	logJSON, err := json.Marshal(m.Log)
	if err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}
	return &MatchRecord{
		ID:          m.ID,
		StartedAt:   m.StartedAt,
		EndedAt:     m.EndedAt,
		Player1:     m.Names[0],
		Player2:     m.Names[1],
		Winner:      m.Outcome.Winner,
		Score1:      m.Outcome.Scores[0],
		Score2:      m.Outcome.Scores[1],
		Turns:       m.Outcome.Turns,
		Termination: string(m.Outcome.Termination),
		LogJSON:     string(logJSON),
	}, nil
}
