// Command caribbean plays Coders of the Caribbean over stdin/stdout.
package main

import (
	"context"
	"os"

	"github.com/go-kit/log/level"

	"codingame/internal/caribbean"
	"codingame/internal/codingame"
)

func main() {
	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	if err := codingame.Run(context.Background(), os.Stdin, os.Stdout, caribbean.NewBot(logger)); err != nil {
		_ = level.Error(logger).Log("msg", "bot stopped", "err", err)
		os.Exit(1)
	}
}
