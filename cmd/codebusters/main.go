// Command codebusters plays Code Busters over stdin/stdout.
package main

import (
	"context"
	"os"
	"time"

	"github.com/go-kit/log/level"

	"codingame/internal/busters"
	"codingame/internal/codingame"
)

func main() {
	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	seed := int64(codingame.GetenvInt("BUSTERS_SEED", int(time.Now().UnixNano()%(1<<31))))
	_ = level.Debug(logger).Log("msg", "starting", "seed", seed)

	if err := codingame.Run(context.Background(), os.Stdin, os.Stdout, busters.NewBot(seed, logger)); err != nil {
		_ = level.Error(logger).Log("msg", "bot stopped", "err", err)
		os.Exit(1)
	}
}
