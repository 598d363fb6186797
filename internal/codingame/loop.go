package codingame

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Bot is a single game player. Init consumes the one-off game header,
// Turn consumes one turn of input and writes the commands for it.
type Bot interface {
	Init(r *Reader) error
	Turn(r *Reader, w io.Writer) error
}

// Run plays bot until the input ends or ctx is cancelled. Output is flushed
// after every turn; the judge waits for it before sending the next state.
func Run(ctx context.Context, in io.Reader, out io.Writer, bot Bot) error {
	r := NewReader(in)
	w := bufio.NewWriter(out)

	if err := bot.Init(r); err != nil {
		if errors.Is(err, ErrEndOfInput) && r.Tokens() == 0 {
			return nil
		}
		return fmt.Errorf("init: %w", truncated(err))
	}

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := r.Tokens()
		if err := bot.Turn(r, w); err != nil {
			if errors.Is(err, ErrEndOfInput) && r.Tokens() == start {
				return nil
			}
			return fmt.Errorf("turn %d: %w", turn, truncated(err))
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("turn %d: flush: %w", turn, err)
		}
	}
}

// truncated reports input that stopped in the middle of a turn as
// io.ErrUnexpectedEOF.
func truncated(err error) error {
	if errors.Is(err, ErrEndOfInput) {
		return fmt.Errorf("%w: %v", io.ErrUnexpectedEOF, err)
	}
	return err
}
