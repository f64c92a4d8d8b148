package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DialogKind identifies the widget behind a Dialog.
type DialogKind int

const (
	DialogKindMessage DialogKind = iota
	DialogKindEntry
	DialogKindPassword
	DialogKindCalendar
	DialogKindList
	DialogKindForm
	DialogKindProgress
	DialogKindScale
	DialogKindTextInfo
	DialogKindFileSelection
	DialogKindColor
	DialogKindFont
	DialogKindNotification
)

// DialogResult represents the result of a dialog operation
type DialogResult int

const (
	// DialogResultNone indicates no result yet
	DialogResultNone DialogResult = iota
	// DialogResultClose indicates the dialog closed without a choice
	DialogResultClose
	// DialogResultCancel indicates the dialog was cancelled
	DialogResultCancel
	// DialogResultConfirm indicates the dialog was confirmed
	DialogResultConfirm
)

// ShortcutHint represents an instructional footer entry.
type ShortcutHint struct {
	Key   string
	Label string
}

// Dialog is the interface all dialog types must implement
type Dialog interface {
	// Init initializes the dialog
	Init() tea.Cmd
	// Update processes non-key messages
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	// View renders the dialog
	View() string
	// HandleKey processes a key event
	HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd)
	// SetRect sets the dialog's dimensions and position
	SetRect(width, height, x, y int)
	// GetRect returns the dialog's dimensions and position
	GetRect() (width, height, x, y int)
	Title() string
	Kind() DialogKind
	ZIndex() int
	SetZIndex(z int)
	IsFocused() bool
	SetFocused(focused bool)
	IsCancellable() bool
	// SetStyle replaces the dialog colours
	SetStyle(style *DialogStyle)
}

// BaseDialog implements common functionality for all dialog types. A zero
// height lets the content decide.
type BaseDialog struct {
	TitleText   string
	width       int
	height      int
	x           int
	y           int
	zIndex      int
	focused     bool
	cancellable bool
	kind        DialogKind
	Style       *DialogStyle
	footerHints []ShortcutHint
	okLabel     string
	cancelLabel string
}

// DialogStyle contains styling information for dialogs
type DialogStyle struct {
	Border             lipgloss.Border
	BorderColor        lipgloss.Color
	FocusedBorderColor lipgloss.Color
	TitleColor         lipgloss.Color
	BackgroundColor    lipgloss.Color
	TextColor          lipgloss.Color
	ButtonColor        lipgloss.Color
	ErrorColor         lipgloss.Color
	SuccessColor       lipgloss.Color
	WarningColor       lipgloss.Color
	HighlightColor     lipgloss.Color
	PlaceholderColor   lipgloss.Color
}

// DefaultDialogStyle returns the style of the default theme.
var DefaultDialogStyle = func() *DialogStyle {
	return StyleFromTheme(DefaultThemeColors())
}

// NewBaseDialog creates a new base dialog
func NewBaseDialog(title string, width, height int, kind DialogKind) BaseDialog {
	return BaseDialog{
		TitleText:   title,
		width:       width,
		height:      height,
		focused:     true,
		cancellable: true,
		kind:        kind,
		Style:       DefaultDialogStyle(),
		okLabel:     "OK",
		cancelLabel: "Cancel",
	}
}

// SetFooterHints replaces the footer shortcuts shown beneath the dialog.
func (d *BaseDialog) SetFooterHints(hints ...ShortcutHint) {
	d.footerHints = filterShortcutHints(hints)
}

// HintsFromBindings builds footer hints from key bindings.
func HintsFromBindings(bindings ...key.Binding) []ShortcutHint {
	hints := make([]ShortcutHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, ShortcutHint{Key: h.Key, Label: h.Desc})
	}
	return hints
}

// FooterHints returns a copy of the currently configured hints.
func (d BaseDialog) FooterHints() []ShortcutHint {
	if len(d.footerHints) == 0 {
		return nil
	}
	return append([]ShortcutHint(nil), d.footerHints...)
}

// SetButtonLabels overrides the OK and Cancel labels; empty keeps the default.
func (d *BaseDialog) SetButtonLabels(ok, cancel string) {
	if ok != "" {
		d.okLabel = ok
	}
	if cancel != "" {
		d.cancelLabel = cancel
	}
}

// OKLabel returns the accept button label.
func (d BaseDialog) OKLabel() string { return d.okLabel }

// CancelLabel returns the reject button label.
func (d BaseDialog) CancelLabel() string { return d.cancelLabel }

func (d BaseDialog) Title() string { return d.TitleText }

func (d BaseDialog) Kind() DialogKind { return d.kind }

func (d BaseDialog) ZIndex() int { return d.zIndex }

func (d *BaseDialog) SetZIndex(z int) { d.zIndex = z }

func (d BaseDialog) IsFocused() bool { return d.focused }

func (d *BaseDialog) SetFocused(focused bool) { d.focused = focused }

func (d BaseDialog) IsCancellable() bool { return d.cancellable }

// SetCancellable sets whether escape closes the dialog.
func (d *BaseDialog) SetCancellable(cancellable bool) { d.cancellable = cancellable }

// SetStyle implements Dialog.
func (d *BaseDialog) SetStyle(style *DialogStyle) {
	if style != nil {
		d.Style = style
	}
}

// SetRect sets the dialog's dimensions and position
func (d *BaseDialog) SetRect(width, height, x, y int) {
	d.width = width
	d.height = height
	d.x = x
	d.y = y
}

// GetRect returns the dialog's dimensions and position
func (d BaseDialog) GetRect() (width, height, x, y int) {
	return d.width, d.height, d.x, d.y
}

// ContentWidth is the usable width inside border and padding.
func (d BaseDialog) ContentWidth() int {
	w := d.width - 4
	if w < 1 {
		w = 1
	}
	return w
}

// ContentHeight is the usable height inside the border, or 0 when the
// dialog sizes itself.
func (d BaseDialog) ContentHeight() int {
	if d.height <= 0 {
		return 0
	}
	h := d.height - 2
	if len(d.footerHints) > 0 {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

// RenderBorder frames content with a rounded border carrying the title.
func (d BaseDialog) RenderBorder(content string) string {
	content = strings.TrimRight(content, "\n")
	if footer := d.renderFooter(); footer != "" {
		if content != "" {
			content += "\n" + footer
		} else {
			content = footer
		}
	}

	borderColor := d.Style.BorderColor
	if d.focused {
		borderColor = d.Style.FocusedBorderColor
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(d.Style.TextColor).
		Border(d.Style.Border, false, true, true, true).
		BorderForeground(borderColor).
		Width(d.width - 2)
	if d.height > 0 {
		style = style.Height(d.height - 2).MaxHeight(d.height - 1)
	}

	box := style.Render(content)
	return d.renderTopBorder(lipgloss.Width(box), borderColor) + "\n" + box
}

func (d BaseDialog) renderTopBorder(width int, color lipgloss.Color) string {
	b := d.Style.Border
	edge := lipgloss.NewStyle().Foreground(color)
	inner := width - 2
	if inner < 0 {
		inner = 0
	}

	title := ""
	if d.TitleText != "" && inner > 4 {
		title = " " + runewidth.Truncate(d.TitleText, inner-2, "…") + " "
	}
	titleWidth := runewidth.StringWidth(title)
	left := (inner - titleWidth) / 2
	right := inner - titleWidth - left

	var sb strings.Builder
	sb.WriteString(edge.Render(b.TopLeft + strings.Repeat(b.Top, left)))
	if title != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(d.Style.TitleColor).Bold(true).Render(title))
	}
	sb.WriteString(edge.Render(strings.Repeat(b.Top, right) + b.TopRight))
	return sb.String()
}

func (d BaseDialog) renderFooter() string {
	if len(d.footerHints) == 0 || d.Style == nil {
		return ""
	}
	keyStyle := lipgloss.NewStyle().Foreground(d.Style.ButtonColor).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor)

	parts := make([]string, 0, len(d.footerHints))
	for _, hint := range d.footerHints {
		parts = append(parts, keyStyle.Render(hint.Key)+" "+labelStyle.Render(hint.Label))
	}

	return lipgloss.NewStyle().
		Width(d.ContentWidth()).
		PaddingTop(1).
		Render(strings.Join(parts, "  "))
}

func filterShortcutHints(hints []ShortcutHint) []ShortcutHint {
	out := make([]ShortcutHint, 0, len(hints))
	for _, hint := range hints {
		if hint.Key == "" || hint.Label == "" {
			continue
		}
		out = append(out, hint)
	}
	return out
}

// HandleBaseKey handles common key events for all dialogs
func (d BaseDialog) HandleBaseKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if key.Matches(msg, Keys.Cancel) && d.cancellable {
		return DialogResultCancel, nil
	}
	return DialogResultNone, nil
}

// DialogResultProvider allows a dialog to expose a return value when it closes.
type DialogResultProvider interface {
	DialogResultValue() (interface{}, error)
}

// DialogCallback is invoked when a dialog finishes. value is only set for
// confirmed dialogs.
type DialogCallback func(result DialogResult, value interface{}, err error) tea.Cmd

// CloseMsg asks the manager to close the active dialog outside of a key
// press, e.g. when input ends or a timer fires.
type CloseMsg struct {
	Result DialogResult
}

// Close returns a command producing a CloseMsg.
func Close(result DialogResult) tea.Cmd {
	return func() tea.Msg { return CloseMsg{Result: result} }
}
