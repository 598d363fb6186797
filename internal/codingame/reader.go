// Package codingame holds the plumbing every bot shares: the whitespace
// delimited turn protocol, the game loop and the stderr logger.
package codingame

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrEndOfInput is returned when the judge closes stdin between two reads.
// Bots treat it as a normal shutdown.
var ErrEndOfInput = errors.New("end of input")

// Reader splits the judge input into whitespace separated tokens.
type Reader struct {
	sc     *bufio.Scanner
	tokens int
}

func NewReader(in io.Reader) *Reader {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// Word returns the next token.
func (r *Reader) Word() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return "", ErrEndOfInput
	}
	r.tokens++
	return r.sc.Text(), nil
}

// Tokens is the number of tokens read so far.
func (r *Reader) Tokens() int { return r.tokens }

// Int returns the next token parsed as a decimal integer.
func (r *Reader) Int() (int, error) {
	tok, err := r.Word()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", tok, err)
	}
	return n, nil
}

// Ints reads n integers.
func (r *Reader) Ints(n int) ([]int, error) {
	out := make([]int, n)
	for i := range out {
		v, err := r.Int()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Scan fills each destination in order. Supported destinations are *int and
// *string. Running out of input after the first token is reported as
// io.ErrUnexpectedEOF since the judge never sends partial lines.
func (r *Reader) Scan(dst ...any) error {
	for i, d := range dst {
		var err error
		switch v := d.(type) {
		case *int:
			*v, err = r.Int()
		case *string:
			*v, err = r.Word()
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
		if err != nil {
			if i > 0 && errors.Is(err, ErrEndOfInput) {
				return fmt.Errorf("scan field %d: %w", i, io.ErrUnexpectedEOF)
			}
			return err
		}
	}
	return nil
}
