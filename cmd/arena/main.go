// Command arena plays SmashTheCode matches between two bots, stores them and
// streams them to websocket spectators.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/arena"
	"codingame/internal/codingame"
	"codingame/internal/smash"
)

const builtin = "builtin"

func main() {
	cfg := arena.LoadConfig()
	p1 := flag.String("p1", builtin, `first bot command, or "builtin"`)
	p2 := flag.String("p2", builtin, `second bot command, or "builtin"`)
	n1 := flag.String("n1", "", "first bot display name")
	n2 := flag.String("n2", "", "second bot display name")
	flag.IntVar(&cfg.Matches, "matches", cfg.Matches, "number of matches")
	flag.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "matches played at once")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path, empty to disable")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "http listen address, empty to disable")
	serve := flag.Bool("serve", false, "keep serving after the matches are over")
	flag.Parse()
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}

	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	if err := run(cfg, [2]string{*p1, *p2}, [2]string{*n1, *n2}, *serve, logger); err != nil {
		_ = level.Error(logger).Log("msg", "arena failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *arena.Config, commands, names [2]string, serve bool, logger log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		_ = level.Info(logger).Log("msg", "shutting down")
		cancel()
	}()

	var store *arena.Store
	if cfg.DBPath != "" {
		var err error
		store, err = arena.OpenStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		_ = level.Info(logger).Log("msg", "database ready", "path", cfg.DBPath)
	}

	var entrants [2]arena.Entrant
	for i := range entrants {
		entrants[i] = entrant(commands[i], names[i], cfg.TurnTimeout, logger)
	}

	var hub *arena.Hub
	var srv *arena.Server
	if cfg.Addr != "" {
		hub = arena.NewHub(logger)
		go hub.Run(ctx)
	}
	runner := arena.NewRunner(cfg, entrants, store, hub, logger)
	if cfg.Addr != "" {
		srv = arena.NewServer(cfg.Addr, store, runner, hub, logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				_ = level.Error(logger).Log("msg", "http server stopped", "err", err)
			}
		}()
	}

	err := runner.Run(ctx)
	if srv == nil {
		return err
	}
	if err == nil && serve {
		<-ctx.Done()
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = fmt.Errorf("shutdown: %w", serr)
	}
	return err
}

func entrant(command, name string, turnTimeout time.Duration, logger log.Logger) arena.Entrant {
	if command == builtin {
		// stay under the turn timeout
		budget := turnTimeout * 8 / 10
		return arena.Entrant{Name: name, New: func(name string) (arena.Player, error) {
			return arena.NewBotPlayer(name, smash.NewBot(budget, logger)), nil
		}}
	}
	return arena.Entrant{Name: name, New: func(name string) (arena.Player, error) {
		p, err := arena.StartProcess(name, command, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	}}
}
