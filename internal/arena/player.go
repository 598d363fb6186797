package arena

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"codingame/internal/codingame"
)

var (
	// ErrTimeout is returned when a player does not answer within the turn budget.
	ErrTimeout = errors.New("turn timeout")
	// ErrClosed is returned once the player process has exited.
	ErrClosed = errors.New("player closed")
)

// Player is one side of a match. Turn sends the full turn input and returns
// the first line the player answers.
type Player interface {
	Name() string
	Turn(ctx context.Context, input string) (string, error)
	Close() error
}

// ProcessPlayer runs a bot executable and talks to it over its standard
// streams, the way the contest judge does.
type ProcessPlayer struct {
	name   string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	done   chan struct{}
	logger log.Logger

	closeOnce sync.Once
	waitErr   error
}

// StartProcess launches command (split on spaces) and starts reading its
// output. The bot stderr goes to logger at debug level. An empty name
// defaults to the executable's base name.
func StartProcess(name, command string, logger log.Logger) (*ProcessPlayer, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("empty player command")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if name == "" {
		name = filepath.Base(args[0])
	}

	cmd := exec.Command(args[0], args[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}

	p := &ProcessPlayer{
		name:   name,
		cmd:    cmd,
		stdin:  stdin,
		lines:  make(chan string, 16),
		done:   make(chan struct{}),
		logger: log.With(logger, "player", name, "pid", cmd.Process.Pid),
	}
	go p.readLines(stdout)
	go p.forwardStderr(stderr)
	return p, nil
}

func (p *ProcessPlayer) readLines(r io.Reader) {
	defer close(p.lines)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case p.lines <- sc.Text():
		case <-p.done:
			return
		}
	}
}

func (p *ProcessPlayer) forwardStderr(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		_ = level.Debug(p.logger).Log("stderr", sc.Text())
	}
}

func (p *ProcessPlayer) Name() string { return p.name }

// Turn writes input and waits for one output line until ctx is done.
func (p *ProcessPlayer) Turn(ctx context.Context, input string) (string, error) {
	if _, err := io.WriteString(p.stdin, input); err != nil {
		return "", fmt.Errorf("write input: %w", err)
	}
	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", ErrClosed
		}
		return line, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Close kills the process and reaps it. It is safe to call more than once.
func (p *ProcessPlayer) Close() error {
	p.closeOnce.Do(func() {
		close(p.done)
		_ = p.stdin.Close()
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		p.waitErr = p.cmd.Wait()
	})
	var exitErr *exec.ExitError
	if errors.As(p.waitErr, &exitErr) {
		// killed on purpose
		return nil
	}
	return p.waitErr
}

// BotPlayer runs a codingame.Bot in process. Each turn the bot gets a fresh
// reader over the turn input.
type BotPlayer struct {
	name string
	bot  codingame.Bot
	init bool
}

func NewBotPlayer(name string, bot codingame.Bot) *BotPlayer {
	return &BotPlayer{name: name, bot: bot}
}

func (b *BotPlayer) Name() string { return b.name }

func (b *BotPlayer) Turn(ctx context.Context, input string) (string, error) {
	r := codingame.NewReader(strings.NewReader(input))
	if !b.init {
		if err := b.bot.Init(r); err != nil {
			return "", err
		}
		b.init = true
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var out bytes.Buffer
		err := b.bot.Turn(r, &out)
		line, _, _ := strings.Cut(out.String(), "\n")
		done <- result{line, err}
	}()

	select {
	case res := <-done:
		return res.line, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

func (b *BotPlayer) Close() error { return nil }
