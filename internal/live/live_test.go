package live

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("reader did not finish")
		}
	}
}

func TestStartDeliversLinesThenEOF(t *testing.T) {
	ch := Start(context.Background(), strings.NewReader("10\n# copying\r\n75"))
	events := collect(t, ch)

	require.Len(t, events, 4)
	assert.Equal(t, Line{Text: "10"}, events[0])
	assert.Equal(t, Line{Text: "# copying"}, events[1])
	assert.Equal(t, Line{Text: "75"}, events[2])
	assert.Equal(t, EOF{}, events[3])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStartReportsReadError(t *testing.T) {
	events := collect(t, Start(context.Background(), failingReader{}))
	require.Len(t, events, 1)
	eof, ok := events[0].(EOF)
	require.True(t, ok)
	assert.EqualError(t, eof.Err, "boom")
}

func TestWait(t *testing.T) {
	ch := make(chan Event, 1)
	ch <- Line{Text: "x"}
	close(ch)

	cmd := Wait(ch)
	require.NotNil(t, cmd)
	assert.Equal(t, Line{Text: "x"}, cmd())
	assert.Nil(t, cmd(), "closed channel ends the chain")
	assert.Nil(t, Wait(nil))
}

func TestInterpretProgress(t *testing.T) {
	tests := []struct {
		line string
		want interface{}
	}{
		{"75", Percentage{Value: 75}},
		{"  42.5% done", Percentage{Value: 42.5}},
		{"150", Percentage{Value: 100}},
		{"7.", Percentage{Value: 7}},
		{"# Copying files", Label{Text: "Copying files"}},
		{"#", Label{Text: ""}},
		{"pulsate", nil},
		{"pulsate:false", nil},
		{"hello", nil},
		{"", nil},
		{"-5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpret(KindProgress, tt.line))
		})
	}
}

func TestInterpretAppend(t *testing.T) {
	assert.Equal(t, Append{Text: "row cell"}, Interpret(KindList, "row cell"))
	assert.Equal(t, Append{Text: ""}, Interpret(KindText, ""))
	assert.Nil(t, Interpret(KindNone, "anything"))
}

func TestInterpretNotification(t *testing.T) {
	assert.Equal(t, Notify{Key: NotifyMessage, Value: "Build done: ok"}, Interpret(KindNotification, "message: Build done: ok"))
	assert.Equal(t, Notify{Key: NotifyVisible, Value: "false"}, Interpret(KindNotification, "  Visible :false"))
	assert.Equal(t, Notify{Key: NotifyIcon, Value: "dialog-warning"}, Interpret(KindNotification, "icon:dialog-warning"))
	assert.Nil(t, Interpret(KindNotification, "bogus: value"))
	assert.Nil(t, Interpret(KindNotification, "no separator"))
}

func TestParseVisible(t *testing.T) {
	assert.False(t, ParseVisible("false"))
	assert.False(t, ParseVisible(" OFF "))
	assert.True(t, ParseVisible("true"))
	assert.True(t, ParseVisible(""))
}
