// Command codeofkutulu plays Code of Kutulu over stdin/stdout.
package main

import (
	"context"
	"os"

	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
	"codingame/internal/kutulu"
)

func main() {
	logger := codingame.NewLogger(os.Stderr, codingame.LevelFromEnv())
	if err := codingame.Run(context.Background(), os.Stdin, os.Stdout, kutulu.NewBot(logger)); err != nil {
		_ = level.Error(logger).Log("msg", "bot stopped", "err", err)
		os.Exit(1)
	}
}
