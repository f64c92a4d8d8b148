// Package live implements the line-oriented standard input channel through
// which a running dialog is updated.
package live

import (
	"bufio"
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

// Event is a raw reader event: Line or EOF.
type Event interface {
	isEvent()
}

// Line is one newline-terminated input line, without the terminator.
type Line struct {
	Text string
}

// EOF reports that the input stream closed. Err is nil on a clean close.
type EOF struct {
	Err error
}

func (Line) isEvent() {}
func (EOF) isEvent()  {}

// Start reads r line by line on its own goroutine. Every line is delivered
// as a Line, followed by exactly one EOF. The channel is closed after the
// EOF, or early when ctx is cancelled.
func Start(ctx context.Context, r io.Reader) <-chan Event {
	ch := make(chan Event, 64)

	go func() {
		defer close(ch)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
		for scanner.Scan() {
			select {
			case ch <- Line{Text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}

		select {
		case ch <- EOF{Err: scanner.Err()}:
		case <-ctx.Done():
		}
	}()

	return ch
}

// Wait returns a command delivering the next event as a tea.Msg. The
// receiver re-arms it after every event it handles; a closed channel yields
// a nil message and ends the chain.
func Wait(ch <-chan Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}
