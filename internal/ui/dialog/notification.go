package dialog

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/markup"
)

// NotificationConfig configures a NotificationDialog.
type NotificationConfig struct {
	Text     string
	NoMarkup bool
	IconName string
	Listen   bool
}

// NotificationDialog is a banner. In listen mode it is driven by live
// commands and closes when input ends; otherwise any dismissal accepts it.
type NotificationDialog struct {
	BaseDialog
	cfg     NotificationConfig
	message string
	tooltip string
	icon    string
	visible bool
}

// NewNotificationDialog creates a notification banner.
func NewNotificationDialog(title string, width, height int, cfg NotificationConfig) *NotificationDialog {
	d := &NotificationDialog{
		BaseDialog: NewBaseDialog(title, width, height, DialogKindNotification),
		cfg:        cfg,
		message:    cfg.Text,
		icon:       cfg.IconName,
		visible:    true,
	}
	d.SetFooterHints(ShortcutHint{Key: "enter/esc", Label: "dismiss"})
	return d
}

// Message returns the banner text.
func (d *NotificationDialog) Message() string { return d.message }

// Tooltip returns the tooltip text.
func (d *NotificationDialog) Tooltip() string { return d.tooltip }

// Visible reports whether the banner is shown.
func (d *NotificationDialog) Visible() bool { return d.visible }

// Init implements Dialog.
func (d *NotificationDialog) Init() tea.Cmd { return nil }

// Update applies live commands.
func (d *NotificationDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case live.Notify:
		switch msg.Key {
		case live.NotifyMessage:
			d.message = msg.Value
		case live.NotifyTooltip:
			d.tooltip = msg.Value
		case live.NotifyIcon:
			d.icon = msg.Value
		case live.NotifyVisible:
			d.visible = live.ParseVisible(msg.Value)
		}
	case live.EOF:
		if d.cfg.Listen {
			return d, Close(DialogResultConfirm)
		}
	}
	return d, nil
}

// View implements Dialog.
func (d *NotificationDialog) View() string {
	width := d.ContentWidth()
	if !d.visible {
		return d.RenderBorder(lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render("(hidden)"))
	}

	icon := messageIcons[MessageInfo]
	if named, ok := namedIcons[d.icon]; ok {
		icon = named
	}
	iconView := lipgloss.NewStyle().Foreground(d.Style.ButtonColor).Bold(true).PaddingRight(2).Render(icon)
	base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	body := lipgloss.NewStyle().Width(width - lipgloss.Width(iconView)).
		Render(markup.Text(d.message, d.cfg.NoMarkup, base))

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, iconView, body)}
	if d.tooltip != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Italic(true).PaddingTop(1).Render(d.tooltip))
	}
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey dismisses the banner.
func (d *NotificationDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if key.Matches(msg, Keys.Accept, Keys.Cancel, Keys.Toggle) {
		return DialogResultConfirm, nil
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *NotificationDialog) DialogResultValue() (interface{}, error) {
	return nil, nil
}
