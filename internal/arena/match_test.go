package arena

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codingame/internal/smash"
)

// scriptedPlayer answers every turn with the same command.
type scriptedPlayer struct {
	name   string
	answer string
	err    error
	block  bool

	mu     sync.Mutex
	inputs []string
	closed bool
}

func (p *scriptedPlayer) Name() string { return p.name }

func (p *scriptedPlayer) Turn(ctx context.Context, input string) (string, error) {
	p.mu.Lock()
	p.inputs = append(p.inputs, input)
	p.mu.Unlock()
	if p.block {
		<-ctx.Done()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
	return p.answer, p.err
}

func (p *scriptedPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func newMatch(seed int64, a, b Player) *Match {
	return &Match{
		ID:      "m1",
		Names:   [2]string{a.Name(), b.Name()},
		Players: [2]Player{a, b},
		Referee: NewReferee(seed),
	}
}

func TestMatchPlaysToMaxTurns(t *testing.T) {
	a := &scriptedPlayer{name: "a", answer: "0 1"}
	b := &scriptedPlayer{name: "b", answer: "5 1"}
	m := newMatch(1, a, b)

	var observed []int
	out := m.Play(context.Background(), MatchOptions{
		TurnTimeout: time.Second,
		MaxTurns:    3,
		Observe:     func(_ *Match, rec TurnRecord) { observed = append(observed, rec.Turn) },
	})

	assert.Equal(t, TermMaxTurns, out.Termination)
	assert.Equal(t, 3, out.Turns)
	assert.Len(t, m.Log, 3)
	assert.Equal(t, []int{1, 2, 3}, observed)
	assert.False(t, m.EndedAt.Before(m.StartedAt))

	// each player gets 8 pairs and two wells per turn
	require.Len(t, a.inputs, 3)
	lines := strings.Split(strings.TrimSuffix(a.inputs[2], "\n"), "\n")
	assert.Len(t, lines, smash.Incoming+2*smash.Rows)
}

func TestMatchTimeout(t *testing.T) {
	a := &scriptedPlayer{name: "a", answer: "0 1"}
	b := &scriptedPlayer{name: "b", block: true}
	m := newMatch(1, a, b)

	out := m.Play(context.Background(), MatchOptions{TurnTimeout: 20 * time.Millisecond, MaxTurns: 10})
	assert.Equal(t, 0, out.Winner)
	assert.Equal(t, TermTimeout, out.Termination)
	assert.Equal(t, 1, out.Turns)
}

func TestMatchAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newMatch(1, &scriptedPlayer{name: "a", answer: "0 1"}, &scriptedPlayer{name: "b", answer: "0 1"})

	out := m.Play(ctx, MatchOptions{MaxTurns: 10})
	assert.Equal(t, Draw, out.Winner)
	assert.Equal(t, TermAborted, out.Termination)
	assert.Empty(t, m.Log)
}

func TestMatchRecord(t *testing.T) {
	a := &scriptedPlayer{name: "a", answer: "0 1"}
	b := &scriptedPlayer{name: "b", answer: "oops"}
	m := newMatch(1, a, b)
	m.Play(context.Background(), MatchOptions{MaxTurns: 5})

	rec, err := m.Record()
	require.NoError(t, err)
	assert.Equal(t, "m1", rec.ID)
	assert.Equal(t, "a", rec.Player1)
	assert.Equal(t, "b", rec.Player2)
	assert.Equal(t, 0, rec.Winner)
	assert.Equal(t, string(TermInvalid), rec.Termination)

	turns, err := rec.Moves()
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "oops", turns[0].Commands[1])
	assert.NotEmpty(t, turns[0].Errors[1])
}

func TestMatchWithBuiltinBot(t *testing.T) {
	bot := NewBotPlayer("smash", smash.NewBot(20*time.Millisecond, nil))
	dummy := &scriptedPlayer{name: "dummy", answer: "0 1"}
	m := newMatch(5, bot, dummy)

	out := m.Play(context.Background(), MatchOptions{TurnTimeout: 5 * time.Second, MaxTurns: 4})
	assert.Equal(t, TermMaxTurns, out.Termination)
	assert.Len(t, m.Log, 4)
	for _, rec := range m.Log {
		assert.Empty(t, rec.Errors[0])
		_, err := smash.ParsePlacement(rec.Commands[0])
		assert.NoError(t, err)
	}
}
