package ui

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adriangreen/zentui/internal/args"
	"github.com/adriangreen/zentui/internal/config"
	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/ui/dialog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(stdout io.Writer) *env {
	return &env{
		ctx:    context.Background(),
		width:  60,
		stdout: stdout,
		fonts:  func(context.Context) []string { return []string{"Monospace", "Sans"} },
		now:    func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local) },
		logger: log.New(io.Discard),
	}
}

func mustPlan(t *testing.T, argv ...string) *plan {
	t.Helper()
	opts, err := args.Parse(argv)
	require.NoError(t, err)
	p, err := build(opts, testEnv(io.Discard))
	require.NoError(t, err)
	return p
}

func startModel(t *testing.T, p *plan) Model {
	t.Helper()
	m := newModel(p, nil, 0, nil, log.New(io.Discard))
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

// run executes cmd and returns the messages it produces, expanding
// batches. Commands that block, such as cursor blink ticks, are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// update feeds msg to the model and then every completion message the
// resulting commands produce.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, produced := range run(cmd) {
		switch produced.(type) {
		case finishedMsg, dialog.CloseMsg:
			m = update(t, m, produced)
		}
	}
	return m
}

func TestEntryIntAccepted(t *testing.T) {
	m := startModel(t, mustPlan(t, "--entry", "--int", "42"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, Outcome{Status: StatusAccepted, Line: "42", HasLine: true}, m.Outcome())
	assert.Empty(t, m.View())
}

func TestCalendarAccepted(t *testing.T) {
	m := startModel(t, mustPlan(t, "--calendar", "--day", "5", "--month", "6", "--year", "2024", "--date-format", "yyyy-MM-dd"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "2024-06-05", m.Outcome().Line)
	assert.Equal(t, StatusAccepted, m.Outcome().Status)
}

func TestCalendarDefaultsToToday(t *testing.T) {
	d := startDate(args.CalendarOptions{Day: 9}, time.Date(2023, 11, 20, 8, 0, 0, 0, time.Local))
	assert.Equal(t, time.Date(2023, 11, 9, 0, 0, 0, 0, time.Local), d)
}

func TestCalendarClampsDayToMonth(t *testing.T) {
	feb := time.Date(2023, 2, 14, 8, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.Local), startDate(args.CalendarOptions{Day: 30}, feb))
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.Local), startDate(args.CalendarOptions{Day: 29, Month: 2}, feb))

	jan31 := time.Date(2023, 1, 31, 8, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.Local), startDate(args.CalendarOptions{Month: 4, Year: 2024}, jan31))
}

func TestRejectPrintsNothing(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		key  tea.KeyMsg
	}{
		{"entry escape", []string{"--entry"}, tea.KeyMsg{Type: tea.KeyEsc}},
		{"question ctrl+c", []string{"--question"}, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"list escape", []string{"--list", "--column=A", "x"}, tea.KeyMsg{Type: tea.KeyEsc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := startModel(t, mustPlan(t, tt.argv...))
			m = update(t, m, tt.key)
			assert.Equal(t, Outcome{Status: StatusRejected}, m.Outcome())
		})
	}
}

func TestEmptyChecklistPrintsEmptyLine(t *testing.T) {
	m := startModel(t, mustPlan(t, "--list", "--checklist", "--column=Pick", "--column=Item", "FALSE", "apple", "FALSE", "pear"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, Outcome{Status: StatusAccepted, Line: "", HasLine: true}, m.Outcome())
}

func TestChecklistPrintsCheckedRows(t *testing.T) {
	m := startModel(t, mustPlan(t, "--list", "--checklist", "--separator=:", "--column=Pick", "--column=Item",
		"TRUE", "apple", "FALSE", "pear", "TRUE", "plum"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "apple:plum", m.Outcome().Line)
}

func TestListPrintColumns(t *testing.T) {
	p := mustPlan(t, "--list", "--column=A", "--column=B", "--print-column=ALL", "--separator=,", "1", "2")
	line, err := p.format([][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)
	assert.Equal(t, "1,2,3,4", line)

	p = mustPlan(t, "--list", "--column=A", "--column=B", "--print-column=2", "1", "2")
	line, err = p.format([][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "2", line)
}

func TestListReadsStdinOnlyWithoutRows(t *testing.T) {
	assert.Equal(t, live.KindList, mustPlan(t, "--list", "--column=A").live)
	assert.Equal(t, live.KindNone, mustPlan(t, "--list", "--column=A", "x").live)
}

func TestProgressLiveUpdates(t *testing.T) {
	p := mustPlan(t, "--progress", "--percentage", "50")
	require.Equal(t, live.KindProgress, p.live)
	m := startModel(t, p)
	progress := m.root.(*dialog.ProgressDialog)
	assert.InDelta(t, 50, progress.Percent(), 0.001)

	m = update(t, m, live.Line{Text: "75"})
	assert.InDelta(t, 75, progress.Percent(), 0.001)

	m = update(t, m, live.Line{Text: "# Copying files"})
	assert.Equal(t, "Copying files", progress.Label())

	update(t, m, live.EOF{})
	assert.True(t, progress.Complete())
}

func TestProgressAutoCloseOnEOF(t *testing.T) {
	m := startModel(t, mustPlan(t, "--progress", "--auto-close"))
	m = update(t, m, live.EOF{})

	assert.Equal(t, Outcome{Status: StatusAccepted}, m.Outcome())
}

func TestProgressAutoKillOnCancel(t *testing.T) {
	killed := 0
	orig := killParent
	killParent = func() error { killed++; return nil }
	t.Cleanup(func() { killParent = orig })

	m := startModel(t, mustPlan(t, "--progress", "--auto-kill"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StatusRejected, m.Outcome().Status)
	assert.Equal(t, 1, killed)
}

func TestTimeout(t *testing.T) {
	m := startModel(t, mustPlan(t, "--info", "--timeout=3"))
	m = update(t, m, timeoutMsg{})
	assert.Equal(t, Outcome{Status: StatusTimedOut}, m.Outcome())

	// Once finished, later events change nothing.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StatusTimedOut, m.Outcome().Status)
}

func TestInfoAcceptPrintsNothing(t *testing.T) {
	m := startModel(t, mustPlan(t, "--info", "--text=Done"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Outcome{Status: StatusAccepted}, m.Outcome())
}

func TestScalePrintPartial(t *testing.T) {
	opts, err := args.Parse([]string{"--scale", "--value=10", "--print-partial"})
	require.NoError(t, err)
	var out bytes.Buffer
	p, err := build(opts, testEnv(&out))
	require.NoError(t, err)

	m := startModel(t, p)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "11\n12\n", out.String())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Outcome{Status: StatusAccepted, Line: "12", HasLine: true}, m.Outcome())
}

func TestTextInfoReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	p := mustPlan(t, "--text-info", "--filename", path)
	assert.Equal(t, live.KindNone, p.live)

	m := startModel(t, p)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "line one\nline two", m.Outcome().Line)
}

func TestTextInfoMissingFile(t *testing.T) {
	opts, err := args.Parse([]string{"--text-info", "--filename", filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, err)
	_, err = build(opts, testEnv(io.Discard))
	assert.Error(t, err)
}

func TestFormsFormatter(t *testing.T) {
	p := mustPlan(t, "--forms", "--separator=|", "--add-entry=Name", "--add-checkbox=Agree",
		"--add-calendar=When", "--forms-date-format=dd.MM.yyyy")
	line, err := p.format([]interface{}{
		"Ada",
		true,
		time.Date(2024, 6, 5, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada|TRUE|05.06.2024", line)

	line, err = p.format([]interface{}{[][]string{{"a", "b"}, {"c", "d"}}, false, ""})
	require.NoError(t, err)
	assert.Equal(t, "a,b,c,d|FALSE|", line)
}

func TestPasswordFormatter(t *testing.T) {
	p := mustPlan(t, "--password", "--username")
	line, err := p.format(dialog.Credentials{Username: "bob", Password: "pw", HasUsername: true})
	require.NoError(t, err)
	assert.Equal(t, "bob|pw", line)

	_, err = p.format("wrong")
	assert.Error(t, err)
}

func TestColorFormatter(t *testing.T) {
	p := mustPlan(t, "--color-selection", "--color=#ff8000")
	line, err := p.format(colorful.Color{R: 1, G: 0.5, B: 0})
	require.NoError(t, err)
	assert.Equal(t, "rgb(255,128,0)", line)

	opts, err := args.Parse([]string{"--color-selection", "--color=bogus"})
	require.NoError(t, err)
	_, err = build(opts, testEnv(io.Discard))
	var usage *args.UsageError
	assert.ErrorAs(t, err, &usage)
}

func TestFontUsesInjectedFamilies(t *testing.T) {
	m := startModel(t, mustPlan(t, "--font-selection", "--pattern=Sans Bold 9"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Sans Bold 9", m.Outcome().Line)
}

func TestButtonLabelsAndTitle(t *testing.T) {
	p := mustPlan(t, "--entry", "--title=Rename", "--ok-label=Go", "--cancel-label=Stop")
	assert.Equal(t, "Rename", p.dialog.Title())
	view := p.dialog.View()
	assert.Contains(t, view, "Go")
	assert.Contains(t, view, "Stop")

	assert.Equal(t, "Add a new entry", mustPlan(t, "--entry").dialog.Title())
}

func TestParseFontFamilies(t *testing.T) {
	out := []byte("DejaVu Sans,DejaVu Sans Condensed\nNoto Serif\nDejaVu Sans\n\nabc\\-def\n")
	assert.Equal(t, []string{"abc-def", "DejaVu Sans", "Noto Serif"}, parseFontFamilies(out))
}

func TestThemeColors(t *testing.T) {
	c := themeColors(config.ThemeConfig{Name: config.ThemeHighContrast, Border: "#123456"})
	assert.Equal(t, "#123456", c.Border)
	assert.Equal(t, dialog.HighContrastThemeColors().Title, c.Title)

	assert.Equal(t, dialog.DefaultThemeColors(), themeColors(config.ThemeConfig{}))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "accepted", StatusAccepted.String())
	assert.Equal(t, "rejected", StatusRejected.String())
	assert.Equal(t, "timed out", StatusTimedOut.String())
}
