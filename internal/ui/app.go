// Package ui runs one dialog as a Bubble Tea program and turns its result
// into the line printed on standard output.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adriangreen/zentui/internal/args"
	"github.com/adriangreen/zentui/internal/config"
	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/settings"
	"github.com/adriangreen/zentui/internal/ui/dialog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Status is how a dialog ended.
type Status int

const (
	StatusAccepted Status = iota
	StatusRejected
	StatusTimedOut
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	case StatusTimedOut:
		return "timed out"
	}
	return "unknown"
}

// Outcome is the result of Run. Line is only meaningful when HasLine is
// set; accepted dialogs with nothing to report leave it unset.
type Outcome struct {
	Status  Status
	Line    string
	HasLine bool
}

// Deps are the collaborators Run needs. Nil fields fall back to defaults.
type Deps struct {
	Config        *config.Config
	ConfigManager *config.ConfigManager
	Settings      *settings.Settings
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *log.Logger
}

type timeoutMsg struct{}

type configReloadedMsg struct{}

type finishedMsg struct {
	result dialog.DialogResult
	value  interface{}
	err    error
}

func waitForConfigReload(manager *config.ConfigManager) tea.Cmd {
	return func() tea.Msg {
		<-manager.ReloadEvents()
		return configReloadedMsg{}
	}
}

// Model hosts exactly one root dialog in a DialogManager and routes
// terminal, live input, timer and config events to it.
type Model struct {
	dm            *dialog.DialogManager
	root          dialog.Dialog
	format        formatter
	onReject      func()
	kind          live.Kind
	events        <-chan live.Event
	timeout       time.Duration
	configManager *config.ConfigManager
	logger        *log.Logger

	outcome Outcome
	err     error
	done    bool
}

func newModel(p *plan, events <-chan live.Event, timeout time.Duration, cm *config.ConfigManager, logger *log.Logger) Model {
	m := Model{
		dm:            dialog.NewDialogManager(0, 0),
		root:          p.dialog,
		format:        p.format,
		onReject:      p.onReject,
		kind:          p.live,
		events:        events,
		timeout:       timeout,
		configManager: cm,
		logger:        logger,
	}
	m.dm.AddDialog(p.dialog, func(result dialog.DialogResult, value interface{}, err error) tea.Cmd {
		return func() tea.Msg { return finishedMsg{result: result, value: value, err: err} }
	})
	return m
}

// Init starts the dialog, the live input chain, the timeout and the config
// reload listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.root.Init(), live.Wait(m.events)}
	if m.timeout > 0 {
		cmds = append(cmds, tea.Tick(m.timeout, func(time.Time) tea.Msg { return timeoutMsg{} }))
	}
	if m.configManager != nil {
		cmds = append(cmds, waitForConfigReload(m.configManager))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.reject()
		}
		return m, m.dm.HandleMsg(msg)

	case finishedMsg:
		if msg.result != dialog.DialogResultConfirm {
			return m.reject()
		}
		m.done = true
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.outcome = Outcome{Status: StatusAccepted}
		if m.format != nil {
			line, err := m.format(msg.value)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.outcome.Line, m.outcome.HasLine = line, true
		}
		return m, tea.Quit

	case timeoutMsg:
		m.logger.Debug("dialog timed out", "after", m.timeout)
		m.done = true
		m.outcome = Outcome{Status: StatusTimedOut}
		return m, tea.Quit

	case live.Line:
		var cmd tea.Cmd
		if translated := live.Interpret(m.kind, msg.Text); translated != nil {
			cmd = m.dm.HandleMsg(translated)
		}
		return m, tea.Batch(cmd, live.Wait(m.events))

	case live.EOF:
		if msg.Err != nil {
			m.logger.Warn("reading standard input", "err", msg.Err)
		}
		return m, m.dm.HandleMsg(msg)

	case configReloadedMsg:
		dialog.ApplyTheme(m.dm, themeColors(m.configManager.GetConfig().Theme))
		m.logger.Debug("theme reloaded")
		return m, waitForConfigReload(m.configManager)
	}

	return m, m.dm.HandleMsg(msg)
}

func (m Model) reject() (tea.Model, tea.Cmd) {
	m.done = true
	m.outcome = Outcome{Status: StatusRejected}
	if m.onReject != nil {
		m.onReject()
	}
	return m, tea.Quit
}

// View implements tea.Model. The dialog disappears once it has finished.
func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.dm.View()
}

// Outcome returns how the dialog ended; it is only meaningful after Run.
func (m Model) Outcome() Outcome { return m.outcome }

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run shows the dialog described by opts on the terminal and waits for it
// to end. The dialog renders on Stderr; keys come from Stdin when it is a
// terminal and from /dev/tty otherwise, which leaves a piped Stdin free for
// live updates.
func Run(ctx context.Context, opts *args.Options, deps Deps) (Outcome, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	cfg := deps.Config
	if cfg == nil {
		var err error
		if cfg, err = config.LoadFrom(); err != nil {
			return Outcome{}, err
		}
	}

	e := &env{
		ctx:      ctx,
		width:    cfg.UI.DefaultWidth,
		height:   cfg.UI.DefaultHeight,
		settings: deps.Settings,
		stdout:   deps.Stdout,
		fonts:    systemFontFamilies,
		now:      time.Now,
		logger:   logger,
	}
	p, err := build(opts, e)
	if err != nil {
		return Outcome{}, err
	}

	stdinTTY := isTerminal(deps.Stdin)
	var events <-chan live.Event
	if p.live != live.KindNone && !stdinTTY {
		events = live.Start(ctx, deps.Stdin)
	}

	timeout := time.Duration(opts.General.Timeout) * time.Second
	m := newModel(p, events, timeout, deps.ConfigManager, logger)
	dialog.ApplyTheme(m.dm, themeColors(cfg.Theme))

	if f, ok := deps.Stderr.(*os.File); ok {
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(f))
	}
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(deps.Stderr)}
	if stdinTTY {
		programOpts = append(programOpts, tea.WithInput(deps.Stdin))
	} else {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("dialog interrupted", "err", ctx.Err())
			if p.onReject != nil {
				p.onReject()
			}
			return Outcome{Status: StatusRejected}, nil
		}
		return Outcome{}, fmt.Errorf("failed to run dialog: %w", err)
	}

	fm, ok := final.(Model)
	if !ok || !fm.done {
		return Outcome{Status: StatusRejected}, nil
	}
	if fm.err != nil {
		return Outcome{}, fm.err
	}
	return fm.outcome, nil
}
