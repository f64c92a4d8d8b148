package live

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind is the dialog family interpreting the input lines.
type Kind int

const (
	KindNone Kind = iota
	KindProgress
	KindList
	KindText
	KindNotification
)

// Percentage sets the progress bar, in percent (0..100).
type Percentage struct {
	Value float64
}

// Label replaces the progress label.
type Label struct {
	Text string
}

// Append adds a list cell or a chunk of text-info content.
type Append struct {
	Text string
}

// Notify is a notification --listen command.
type Notify struct {
	Key   string
	Value string
}

// Notification commands understood by --listen.
const (
	NotifyIcon    = "icon"
	NotifyMessage = "message"
	NotifyTooltip = "tooltip"
	NotifyVisible = "visible"
)

// Interpret maps one input line to the message the dialog of the given kind
// should receive. It returns nil for lines the dialog ignores.
func Interpret(kind Kind, line string) tea.Msg {
	switch kind {
	case KindProgress:
		return interpretProgress(line)
	case KindList, KindText:
		return Append{Text: line}
	case KindNotification:
		key, value, ok := ParseNotify(line)
		if !ok {
			return nil
		}
		return Notify{Key: key, Value: value}
	}
	return nil
}

func interpretProgress(line string) tea.Msg {
	if strings.HasPrefix(line, "#") {
		return Label{Text: strings.TrimSpace(line[1:])}
	}

	if v, ok := ParsePercentage(line); ok {
		return Percentage{Value: v}
	}
	return nil
}

// ParsePercentage reads the leading decimal number of line, after optional
// blanks, clamped to 0..100. Lines not starting with a digit are rejected.
func ParsePercentage(line string) (float64, bool) {
	line = strings.TrimLeft(line, " \t")
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	if end < len(line) && line[end] == '.' {
		end++
		for end < len(line) && line[end] >= '0' && line[end] <= '9' {
			end++
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(line[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	if v > 100 {
		v = 100
	}
	return v, true
}

// ParseNotify splits a "key: value" command. Keys are matched case
// insensitively; unknown keys are rejected.
func ParseNotify(line string) (key, value string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:i]))
	value = strings.TrimSpace(line[i+1:])

	switch key {
	case NotifyIcon, NotifyMessage, NotifyTooltip, NotifyVisible:
		return key, value, true
	}
	return "", "", false
}

// ParseVisible interprets the value of a visible: command.
func ParseVisible(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "no", "0", "off":
		return false
	}
	return true
}
