package dialog

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adriangreen/zentui/internal/markup"
)

// ScaleConfig configures a ScaleDialog. Partial, when set, runs after every
// value change.
type ScaleConfig struct {
	Text      string
	NoMarkup  bool
	Value     int
	Min       int
	Max       int
	Step      int
	HideValue bool
	Partial   func(value int)
}

const (
	scaleSlider = iota
	scaleOK
	scaleCancel
)

// ScaleDialog picks an integer on a slider.
type ScaleDialog struct {
	BaseFocusableDialog
	cfg   ScaleConfig
	value int
}

// NewScaleDialog creates a scale dialog.
func NewScaleDialog(title string, width, height int, cfg ScaleConfig) *ScaleDialog {
	if cfg.Step <= 0 {
		cfg.Step = 1
	}
	if cfg.Max < cfg.Min {
		cfg.Min, cfg.Max = cfg.Max, cfg.Min
	}
	d := &ScaleDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindScale, 3),
		cfg:                 cfg,
	}
	d.value = d.clamp(cfg.Value)
	d.SetFooterHints(
		ShortcutHint{Key: "←/→", Label: "step"},
		ShortcutHint{Key: "pgup/pgdn", Label: "page"},
		ShortcutHint{Key: "home/end", Label: "min/max"},
		ShortcutHint{Key: "enter", Label: "accept"},
	)
	return d
}

func (d *ScaleDialog) clamp(v int) int {
	if v < d.cfg.Min {
		return d.cfg.Min
	}
	if v > d.cfg.Max {
		return d.cfg.Max
	}
	return v
}

// Value returns the current value.
func (d *ScaleDialog) Value() int { return d.value }

// SetValue moves the slider, reporting the change to Partial.
func (d *ScaleDialog) SetValue(v int) {
	v = d.clamp(v)
	if v == d.value {
		return
	}
	d.value = v
	if d.cfg.Partial != nil {
		d.cfg.Partial(v)
	}
}

// Init implements Dialog.
func (d *ScaleDialog) Init() tea.Cmd { return nil }

// Update implements Dialog.
func (d *ScaleDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) { return d, nil }

func (d *ScaleDialog) renderSlider(width int) string {
	minLabel := strconv.Itoa(d.cfg.Min)
	maxLabel := strconv.Itoa(d.cfg.Max)
	track := width - len(minLabel) - len(maxLabel) - 2
	if track < 3 {
		track = 3
	}
	pos := 0
	if span := d.cfg.Max - d.cfg.Min; span > 0 {
		pos = (d.value - d.cfg.Min) * (track - 1) / span
	}

	knob := lipgloss.NewStyle().Foreground(d.Style.ButtonColor)
	if d.FocusedIndex() == scaleSlider {
		knob = knob.Foreground(d.Style.HighlightColor).Bold(true)
	}
	filled := lipgloss.NewStyle().Foreground(d.Style.ButtonColor).Render(strings.Repeat("━", pos))
	empty := lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render(strings.Repeat("─", track-pos-1))
	slider := minLabel + " " + filled + knob.Render("●") + empty + " " + maxLabel

	if d.cfg.HideValue {
		return slider
	}
	indent := len(minLabel) + 1 + pos - len(strconv.Itoa(d.value))/2
	if indent < 0 {
		indent = 0
	}
	value := strings.Repeat(" ", indent) + strconv.Itoa(d.value)
	return lipgloss.JoinVertical(lipgloss.Left, value, slider)
}

// View implements Dialog.
func (d *ScaleDialog) View() string {
	width := d.ContentWidth()
	var rows []string
	if d.cfg.Text != "" {
		base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, lipgloss.NewStyle().Width(width).PaddingBottom(1).
			Render(markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)))
	}
	rows = append(rows, d.renderSlider(width))
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), scaleOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey implements Dialog.
func (d *ScaleDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}
	if key.Matches(msg, Keys.Accept, Keys.Toggle) {
		if d.FocusedIndex() == scaleCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}

	if d.FocusedIndex() != scaleSlider {
		switch {
		case key.Matches(msg, Keys.Left):
			return DialogResultNone, d.SetFocusedIndex(scaleOK)
		case key.Matches(msg, Keys.Right):
			return DialogResultNone, d.SetFocusedIndex(scaleCancel)
		}
		return DialogResultNone, nil
	}

	page := (d.cfg.Max - d.cfg.Min) / 10
	if page < d.cfg.Step {
		page = d.cfg.Step
	}
	switch {
	case key.Matches(msg, Keys.Left, Keys.Down):
		d.SetValue(d.value - d.cfg.Step)
	case key.Matches(msg, Keys.Right, Keys.Up):
		d.SetValue(d.value + d.cfg.Step)
	case key.Matches(msg, Keys.PageDown):
		d.SetValue(d.value - page)
	case key.Matches(msg, Keys.PageUp):
		d.SetValue(d.value + page)
	case key.Matches(msg, Keys.Home):
		d.SetValue(d.cfg.Min)
	case key.Matches(msg, Keys.End):
		d.SetValue(d.cfg.Max)
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *ScaleDialog) DialogResultValue() (interface{}, error) {
	return d.value, nil
}
