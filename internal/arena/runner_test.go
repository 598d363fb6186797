package arena

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripted(name, answer string) Entrant {
	return Entrant{Name: name, New: func(name string) (Player, error) {
		return &scriptedPlayer{name: name, answer: answer}, nil
	}}
}

func testConfig(matches int) *Config {
	return &Config{Matches: matches, Parallel: 2, TurnTimeout: time.Second, MaxTurns: 3, Seed: 11}
}

func TestRunnerAlternatesSeats(t *testing.T) {
	store := openTestStore(t)
	r := NewRunner(testConfig(4), [2]Entrant{scripted("good", "0 1"), scripted("bad", "nope")}, store, nil, nil)

	require.NoError(t, r.Run(context.Background()))

	stats := r.Stats()
	assert.Equal(t, 4, stats["played"])
	assert.Equal(t, 4, stats["wins1"])
	assert.Equal(t, 0, stats["wins2"])
	assert.Equal(t, 0, stats["running"])

	recs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	seats := map[string]int{}
	for _, rec := range recs {
		seats[rec.Player1]++
		winner := rec.Player1
		if rec.Winner == 1 {
			winner = rec.Player2
		}
		assert.Equal(t, "good", winner)
	}
	assert.Equal(t, map[string]int{"good": 2, "bad": 2}, seats)
}

func TestRunnerNamesEntrants(t *testing.T) {
	a, b := scripted("", "0 1"), scripted("", "0 1")
	r := NewRunner(testConfig(0), [2]Entrant{a, b}, nil, nil, nil)
	names := r.Names()
	assert.NotEmpty(t, names[0])
	assert.NotEmpty(t, names[1])
	assert.NotEqual(t, names[0], names[1])
}

func TestRunnerPlayersCarryAssignedNames(t *testing.T) {
	var mu sync.Mutex
	var started []string
	recording := func(answer string) Entrant {
		return Entrant{New: func(name string) (Player, error) {
			mu.Lock()
			started = append(started, name)
			mu.Unlock()
			return &scriptedPlayer{name: name, answer: answer}, nil
		}}
	}
	r := NewRunner(testConfig(2), [2]Entrant{recording("0 1"), recording("5 1")}, nil, nil, nil)
	require.NoError(t, r.Run(context.Background()))

	names := r.Names()
	require.Len(t, started, 4)
	for _, name := range started {
		assert.NotEmpty(t, name)
		assert.Contains(t, names[:], name)
	}
}

func TestRunnerStartFailure(t *testing.T) {
	broken := Entrant{Name: "broken", New: func(string) (Player, error) { return nil, errors.New("no such bot") }}
	r := NewRunner(testConfig(3), [2]Entrant{scripted("ok", "0 1"), broken}, nil, nil, nil)

	assert.Error(t, r.Run(context.Background()))
	assert.Equal(t, 3, r.Stats()["failed"])
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(testConfig(50), [2]Entrant{scripted("a", "0 1"), scripted("b", "0 1")}, nil, nil, nil)

	require.NoError(t, r.Run(ctx))
	stats := r.Stats()
	assert.Less(t, stats["played"], 50)
	assert.Equal(t, 0, stats["failed"])
}
