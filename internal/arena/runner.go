package arena

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// Entrant is one of the two competing programs. New starts a fresh player
// for every match and is given the entrant's final name.
type Entrant struct {
	Name string
	New  func(name string) (Player, error)
}

// Runner plays a series of matches between two entrants on a pool of
// workers, swapping seats every other match.
type Runner struct {
	cfg      *Config
	entrants [2]Entrant
	store    *Store
	hub      *Hub
	logger   log.Logger

	mu      sync.RWMutex
	running int
	played  int
	failed  int
	draws   int
	wins    [2]int
	scores  [2]int
}

// NewRunner builds a runner. store and hub may be nil. Entrants without a
// name get one from the namer.
func NewRunner(cfg *Config, entrants [2]Entrant, store *Store, hub *Hub, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	namer := NewNamer(cfg.Seed)
	for i := range entrants {
		if entrants[i].Name == "" {
			entrants[i].Name = namer.Next()
		}
	}
	if entrants[0].Name == entrants[1].Name {
		entrants[1].Name += "2"
	}
	return &Runner{
		cfg:      cfg,
		entrants: entrants,
		store:    store,
		hub:      hub,
		logger:   log.With(logger, "component", "runner"),
	}
}

// Run plays cfg.Matches matches and waits for them. It stops handing out
// new matches once ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	_ = level.Info(r.logger).Log("msg", "starting matches", "matches", r.cfg.Matches, "parallel", r.cfg.Parallel,
		"player1", r.entrants[0].Name, "player2", r.entrants[1].Name)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Parallel; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := r.playOne(ctx, i); err != nil {
					_ = level.Error(r.logger).Log("msg", "match failed", "index", i, "err", err)
					r.mu.Lock()
					r.failed++
					r.mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := 0; i < r.cfg.Matches; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	stats := r.Stats()
	_ = level.Info(r.logger).Log("msg", "matches finished", "played", stats["played"], "failed", stats["failed"],
		"wins1", stats["wins1"], "wins2", stats["wins2"], "draws", stats["draws"])
	if stats["played"] == 0 && stats["failed"] > 0 {
		return errors.New("no match completed")
	}
	return nil
}

// playOne plays match i. Entrant e sits in seat e on even matches and in
// the other seat on odd ones.
func (r *Runner) playOne(ctx context.Context, i int) error {
	seat := [2]int{0, 1}
	if i%2 == 1 {
		seat = [2]int{1, 0}
	}

	m := &Match{
		ID:      uuid.New().String(),
		Referee: NewReferee(r.cfg.Seed + int64(i)),
	}
	for s, e := range seat {
		p, err := r.entrants[e].New(r.entrants[e].Name)
		if err != nil {
			for _, started := range m.Players[:s] {
				_ = started.Close()
			}
			return fmt.Errorf("start %s: %w", r.entrants[e].Name, err)
		}
		m.Players[s] = p
		m.Names[s] = r.entrants[e].Name
	}
	defer func() {
		for _, p := range m.Players {
			_ = p.Close()
		}
	}()

	r.mu.Lock()
	r.running++
	r.mu.Unlock()

	out := m.Play(ctx, MatchOptions{
		TurnTimeout: r.cfg.TurnTimeout,
		MaxTurns:    r.cfg.MaxTurns,
		Logger:      r.logger,
		Observe:     r.observe,
	})

	r.mu.Lock()
	r.running--
	r.played++
	if out.Winner == Draw {
		r.draws++
	} else {
		r.wins[seat[out.Winner]]++
	}
	for s, e := range seat {
		r.scores[e] += out.Scores[s]
	}
	r.mu.Unlock()

	if r.hub != nil {
		winner := out.Winner
		r.hub.Broadcast(Message{Type: MsgMatchEnd, MatchID: m.ID, Players: m.Names, Winner: &winner, Termination: out.Termination})
	}
	if r.store != nil {
		rec, err := m.Record()
		if err != nil {
			return err
		}
		// saved even when ctx is already cancelled
		if err := r.store.Save(context.WithoutCancel(ctx), rec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) observe(m *Match, rec TurnRecord) {
	if r.hub == nil {
		return
	}
	r.hub.Broadcast(Message{Type: MsgTurn, MatchID: m.ID, Players: m.Names, Turn: &rec})
}

// Stats returns the running totals. Wins and scores are per entrant, not
// per seat.
func (r *Runner) Stats() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]int{
		"total":   r.cfg.Matches,
		"running": r.running,
		"played":  r.played,
		"failed":  r.failed,
		"draws":   r.draws,
		"wins1":   r.wins[0],
		"wins2":   r.wins[1],
		"score1":  r.scores[0],
		"score2":  r.scores[1],
	}
	if r.hub != nil {
		stats["spectators"] = r.hub.Clients()
	}
	return stats
}

// Names returns the entrant names.
func (r *Runner) Names() [2]string {
	return [2]string{r.entrants[0].Name, r.entrants[1].Name}
}
