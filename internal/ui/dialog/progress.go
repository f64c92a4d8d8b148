package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/markup"
)

// ProgressConfig configures a ProgressDialog.
type ProgressConfig struct {
	Text          string
	NoMarkup      bool
	Percentage    float64
	Pulsate       bool
	AutoClose     bool
	NoCancel      bool
	TimeRemaining bool
}

const (
	progressOK = iota
	progressCancel
)

// ProgressDialog tracks a percentage fed from live input. OK stays disabled
// until the bar reaches 100%.
type ProgressDialog struct {
	BaseFocusableDialog
	cfg     ProgressConfig
	bar     progress.Model
	spinner spinner.Model
	label   string
	percent float64
	pulsate bool
	frame   int
	started time.Time
	now     func() time.Time
}

// NewProgressDialog creates a progress dialog.
func NewProgressDialog(title string, width, height int, cfg ProgressConfig) *ProgressDialog {
	buttons := 2
	if cfg.NoCancel {
		buttons = 1
	}
	d := &ProgressDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindProgress, buttons),
		cfg:                 cfg,
		bar:                 progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:             spinner.New(spinner.WithSpinner(spinner.Dot)),
		label:               cfg.Text,
		pulsate:             cfg.Pulsate,
		now:                 time.Now,
	}
	d.started = d.now()
	d.SetCancellable(!cfg.NoCancel)
	if !cfg.NoCancel {
		d.SetFocusedIndex(progressCancel)
	}
	d.setPercent(cfg.Percentage)
	hints := []key.Binding{Keys.Accept}
	if !cfg.NoCancel {
		hints = append(hints, Keys.Cancel)
	}
	d.SetFooterHints(HintsFromBindings(hints...)...)
	return d
}

// Percent returns the current percentage.
func (d *ProgressDialog) Percent() float64 { return d.percent }

// Label returns the current label.
func (d *ProgressDialog) Label() string { return d.label }

// Complete reports whether OK is enabled.
func (d *ProgressDialog) Complete() bool { return d.percent >= 100 }

func (d *ProgressDialog) setPercent(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	d.percent = p
	if d.Complete() {
		d.pulsate = false
		d.SetFocusedIndex(progressOK)
	}
}

// Init implements Dialog.
func (d *ProgressDialog) Init() tea.Cmd {
	if d.pulsate {
		return d.spinner.Tick
	}
	return nil
}

// Update implements Dialog.
func (d *ProgressDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.pulsate {
			return d, nil
		}
		d.frame++
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case live.Percentage:
		d.setPercent(msg.Value)
		return d, d.maybeAutoClose()
	case live.Label:
		d.label = msg.Text
	case live.EOF:
		d.setPercent(100)
		return d, d.maybeAutoClose()
	}
	return d, nil
}

func (d *ProgressDialog) maybeAutoClose() tea.Cmd {
	if d.cfg.AutoClose && d.Complete() {
		return Close(DialogResultConfirm)
	}
	return nil
}

// remaining estimates the time left from the average rate so far.
func (d *ProgressDialog) remaining() (time.Duration, bool) {
	if d.percent <= 0 || d.percent >= 100 {
		return 0, false
	}
	elapsed := d.now().Sub(d.started)
	left := time.Duration(float64(elapsed) * (100 - d.percent) / d.percent)
	return left.Round(time.Second), true
}

func (d *ProgressDialog) renderBar(width int) string {
	if !d.pulsate {
		d.bar.Width = width
		return d.bar.ViewAs(d.percent / 100)
	}
	block := width / 5
	if block < 1 {
		block = 1
	}
	span := width - block
	pos := 0
	if span > 0 {
		pos = d.frame % (2 * span)
		if pos > span {
			pos = 2*span - pos
		}
	}
	bar := strings.Repeat("░", pos) + strings.Repeat("█", block) + strings.Repeat("░", width-pos-block)
	return d.spinner.View() + " " + lipgloss.NewStyle().Foreground(d.Style.ButtonColor).Render(bar)
}

// View implements Dialog.
func (d *ProgressDialog) View() string {
	width := d.ContentWidth()
	text := lipgloss.NewStyle().Foreground(d.Style.TextColor)

	var rows []string
	if d.label != "" {
		rows = append(rows, lipgloss.NewStyle().Width(width).Render(markup.Text(d.label, d.cfg.NoMarkup, text)))
	}
	barWidth := width
	if d.pulsate {
		barWidth -= 2
	}
	rows = append(rows, d.renderBar(barWidth))

	status := fmt.Sprintf("%.0f%%", d.percent)
	if d.pulsate {
		status = ""
	}
	if d.cfg.TimeRemaining {
		if left, ok := d.remaining(); ok {
			status += "  " + humanize.RelTime(d.now(), d.now().Add(left), "remaining", "remaining")
		}
	}
	if status != "" {
		rows = append(rows, lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Foreground(d.Style.PlaceholderColor).Render(status))
	}

	enabled := func(i int) bool { return i != progressOK || d.Complete() }
	rows = append(rows, renderButtonRow(d.Style, width, d.okCancel(!d.cfg.NoCancel), d.FocusedIndex(), enabled))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey implements Dialog.
func (d *ProgressDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseKey(msg); result != DialogResultNone {
		return result, cmd
	}
	switch {
	case key.Matches(msg, Keys.Next, Keys.Right, Keys.Prev, Keys.Left):
		if d.Complete() && !d.cfg.NoCancel {
			return DialogResultNone, d.FocusNext()
		}
	case key.Matches(msg, Keys.Accept, Keys.Toggle):
		if d.FocusedIndex() == progressCancel {
			return DialogResultCancel, nil
		}
		if d.Complete() {
			return DialogResultConfirm, nil
		}
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *ProgressDialog) DialogResultValue() (interface{}, error) {
	return nil, nil
}
