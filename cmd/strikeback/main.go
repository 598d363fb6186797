// Command strikeback plays Coders Strike Back over stdin/stdout.
package main

import (
	"context"
	"os"

	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
	"codingame/internal/strikeback"
)

func main() {
	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	if err := codingame.Run(context.Background(), os.Stdin, os.Stdout, strikeback.NewBot(logger)); err != nil {
		_ = level.Error(logger).Log("msg", "bot stopped", "err", err)
		os.Exit(1)
	}
}
