package dialog

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adriangreen/zentui/internal/markup"
)

// EntryMode restricts what an EntryDialog accepts.
type EntryMode int

const (
	EntryModeText EntryMode = iota
	EntryModeInt
	EntryModeFloat
)

// EntryConfig configures an EntryDialog.
type EntryConfig struct {
	Text     string
	Initial  string
	Hidden   bool
	Mode     EntryMode
	NoMarkup bool
}

const (
	entryInput = iota
	entryOK
	entryCancel
)

// EntryDialog asks for one line of text or a number.
type EntryDialog struct {
	BaseFocusableDialog
	cfg   EntryConfig
	input textinput.Model
}

// NewEntryDialog creates an entry dialog.
func NewEntryDialog(title string, width, height int, cfg EntryConfig) *EntryDialog {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 0
	input.SetValue(cfg.Initial)
	if cfg.Hidden {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	switch cfg.Mode {
	case EntryModeInt:
		input.Validate = numericValidator(false)
	case EntryModeFloat:
		input.Validate = numericValidator(true)
	}

	d := &EntryDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindEntry, 3),
		cfg:                 cfg,
		input:               input,
	}
	d.OnFocusChange(d.focusInput)
	hints := []key.Binding{Keys.Accept, Keys.Cancel}
	if cfg.Mode != EntryModeText {
		hints = append(hints, key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "step")))
	}
	d.SetFooterHints(HintsFromBindings(hints...)...)
	return d
}

func numericValidator(allowFraction bool) func(string) error {
	return func(s string) error {
		if s == "" || s == "-" || s == "+" {
			return nil
		}
		if allowFraction {
			if strings.HasSuffix(s, ".") {
				s += "0"
			}
			_, err := strconv.ParseFloat(s, 64)
			return err
		}
		_, err := strconv.ParseInt(s, 10, 64)
		return err
	}
}

func (d *EntryDialog) focusInput(index int) tea.Cmd {
	if index == entryInput {
		return d.input.Focus()
	}
	d.input.Blur()
	return nil
}

// Init implements Dialog.
func (d *EntryDialog) Init() tea.Cmd {
	return tea.Batch(d.input.Focus(), textinput.Blink)
}

// Update implements Dialog.
func (d *EntryDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View implements Dialog.
func (d *EntryDialog) View() string {
	width := d.ContentWidth()
	d.input.Width = width - 3

	var rows []string
	if d.cfg.Text != "" {
		base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, lipgloss.NewStyle().Width(width).PaddingBottom(1).
			Render(markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)))
	}
	d.input.TextStyle = lipgloss.NewStyle().Foreground(d.Style.TextColor)
	d.input.PromptStyle = lipgloss.NewStyle().Foreground(d.Style.ButtonColor)
	rows = append(rows, d.input.View())
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), entryOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// step moves a numeric entry by delta.
func (d *EntryDialog) step(delta int) {
	switch d.cfg.Mode {
	case EntryModeInt:
		v, _ := strconv.ParseInt(strings.TrimSpace(d.input.Value()), 10, 64)
		d.input.SetValue(strconv.FormatInt(v+int64(delta), 10))
	case EntryModeFloat:
		v, _ := strconv.ParseFloat(strings.TrimSpace(d.input.Value()), 64)
		d.input.SetValue(strconv.FormatFloat(v+float64(delta), 'f', -1, 64))
	}
	d.input.CursorEnd()
}

// HandleKey implements Dialog.
func (d *EntryDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	if key.Matches(msg, Keys.Accept) {
		if d.FocusedIndex() == entryCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}

	if d.FocusedIndex() != entryInput {
		switch {
		case key.Matches(msg, Keys.Left):
			return DialogResultNone, d.SetFocusedIndex(entryOK)
		case key.Matches(msg, Keys.Right):
			return DialogResultNone, d.SetFocusedIndex(entryCancel)
		}
		return DialogResultNone, nil
	}

	if d.cfg.Mode != EntryModeText {
		switch {
		case key.Matches(msg, Keys.Up):
			d.step(1)
			return DialogResultNone, nil
		case key.Matches(msg, Keys.Down):
			d.step(-1)
			return DialogResultNone, nil
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return DialogResultNone, cmd
}

// Value returns the current text.
func (d *EntryDialog) Value() string {
	return d.input.Value()
}

// DialogResultValue implements DialogResultProvider.
func (d *EntryDialog) DialogResultValue() (interface{}, error) {
	return d.input.Value(), nil
}
