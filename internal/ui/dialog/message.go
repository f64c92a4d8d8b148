package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/adriangreen/zentui/internal/markup"
)

// MessageKind selects the icon and buttons of a MessageDialog.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageWarning
	MessageError
	MessageQuestion
)

var messageIcons = map[MessageKind]string{
	MessageInfo:     "ℹ",
	MessageWarning:  "⚠",
	MessageError:    "✖",
	MessageQuestion: "?",
}

var namedIcons = map[string]string{
	"dialog-information": "ℹ",
	"dialog-warning":     "⚠",
	"dialog-error":       "✖",
	"dialog-question":    "?",
	"dialog-password":    "🔒",
}

// MessageConfig configures a MessageDialog.
type MessageConfig struct {
	Kind          MessageKind
	Text          string
	NoMarkup      bool
	NoWrap        bool
	Ellipsize     bool
	DefaultCancel bool
	IconName      string
}

// MessageDialog shows text with OK, or OK and Cancel for questions.
type MessageDialog struct {
	BaseFocusableDialog
	cfg MessageConfig
}

// NewMessageDialog creates a message dialog.
func NewMessageDialog(title string, width, height int, cfg MessageConfig) *MessageDialog {
	buttons := 1
	if cfg.Kind == MessageQuestion {
		buttons = 2
	}
	d := &MessageDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindMessage, buttons),
		cfg:                 cfg,
	}
	if cfg.Kind == MessageQuestion {
		d.SetButtonLabels("Yes", "No")
		if cfg.DefaultCancel {
			d.SetFocusedIndex(1)
		}
	}
	d.SetFooterHints(HintsFromBindings(Keys.Accept, Keys.Cancel)...)
	return d
}

// Init implements Dialog.
func (d *MessageDialog) Init() tea.Cmd { return nil }

// Update implements Dialog.
func (d *MessageDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) { return d, nil }

func (d *MessageDialog) icon() string {
	if g, ok := namedIcons[d.cfg.IconName]; ok {
		return g
	}
	return messageIcons[d.cfg.Kind]
}

func (d *MessageDialog) iconColor() lipgloss.Color {
	switch d.cfg.Kind {
	case MessageWarning:
		return d.Style.WarningColor
	case MessageError:
		return d.Style.ErrorColor
	default:
		return d.Style.HighlightColor
	}
}

// body renders the message text, wrapped unless NoWrap is set.
func (d *MessageDialog) body(width int) string {
	base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	if d.cfg.Ellipsize {
		plain := markup.Compress(d.cfg.Text)
		if !d.cfg.NoMarkup {
			plain = markup.Strip(plain)
		}
		lines := strings.Split(plain, "\n")
		for i, line := range lines {
			lines[i] = runewidth.Truncate(line, width, "…")
		}
		return base.Render(strings.Join(lines, "\n"))
	}

	text := markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)
	if d.cfg.NoWrap {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

// View implements Dialog.
func (d *MessageDialog) View() string {
	width := d.ContentWidth()
	icon := lipgloss.NewStyle().Foreground(d.iconColor()).Bold(true).PaddingRight(2).Render(d.icon())
	body := d.body(width - lipgloss.Width(icon))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, icon, body),
		renderButtons(d.Style, width, d.okCancel(d.cfg.Kind == MessageQuestion), d.FocusedIndex()),
	)
	return d.RenderBorder(content)
}

// HandleKey implements Dialog.
func (d *MessageDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || cmd != nil {
		return result, cmd
	}

	switch {
	case key.Matches(msg, Keys.Left):
		return DialogResultNone, d.FocusPrev()
	case key.Matches(msg, Keys.Right):
		return DialogResultNone, d.FocusNext()
	case key.Matches(msg, Keys.Accept), key.Matches(msg, Keys.Toggle):
		if d.FocusedIndex() == 1 {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}
	return DialogResultNone, nil
}
