package arena

import (
	"time"

	"codingame/internal/codingame"
)

// Config holds the arena settings read from the environment.
type Config struct {
	DBPath      string
	Addr        string
	Matches     int
	Parallel    int
	TurnTimeout time.Duration
	MaxTurns    int
	Seed        int64
}

func LoadConfig() *Config {
	cfg := &Config{
		DBPath:      codingame.Getenv("ARENA_DB", "data/matches.db"),
		Addr:        codingame.Getenv("ARENA_ADDR", ":8081"),
		Matches:     codingame.GetenvInt("ARENA_MATCHES", 10),
		Parallel:    codingame.GetenvInt("ARENA_PARALLEL", 2),
		TurnTimeout: time.Duration(codingame.GetenvInt("ARENA_TURN_TIMEOUT_MS", 1000)) * time.Millisecond,
		MaxTurns:    codingame.GetenvInt("ARENA_MAX_TURNS", 200),
		Seed:        int64(codingame.GetenvInt("ARENA_SEED", int(time.Now().UnixNano()%(1<<31)))),
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	if cfg.Matches < 0 {
		cfg.Matches = 0
	}
	return cfg
}
