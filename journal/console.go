package journal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted is returned by console reads abandoned because the run was cancelled.
var ErrInterrupted = errors.New("interrupted")

type lineResult struct {
	text string
	err  error
}

// Console reads user input one line at a time and writes prompts.
// Reads happen on a single background goroutine so a blocked read can be abandoned on cancellation.
type Console struct {
	out   io.Writer
	lines chan lineResult
}

// NewConsole starts reading lines from in. Prompts are written to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:   out,
		lines: make(chan lineResult),
	}
	go c.scan(in)
	return c
}

func (c *Console) scan(in io.Reader) {
	defer close(c.lines)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		c.lines <- lineResult{text: strings.TrimSuffix(sc.Text(), "\r")}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	c.lines <- lineResult{err: err}
}

// ReadLine writes prompt (if any) and blocks until a line is available.
// It returns io.EOF at end of input and ErrInterrupted when ctx is done first.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	case r, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return r.text, r.err
	}
}

// IsStop reports whether err means the user left: end of input or an interrupt.
func IsStop(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled)
}
