// Command smashthecode plays SmashTheCode over stdin/stdout.
package main

import (
	"context"
	"os"
	"time"

	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
	"codingame/internal/smash"
)

func main() {
	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	budget := time.Duration(codingame.GetenvInt("SMASH_BUDGET_MS", 90)) * time.Millisecond

	bot := smash.NewBot(budget, logger)
	if err := codingame.Run(context.Background(), os.Stdin, os.Stdout, bot); err != nil {
		_ = level.Error(logger).Log("msg", "bot stopped", "err", err)
		os.Exit(1)
	}
}
