package dialog

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/adriangreen/zentui/internal/live"
)

// TextInfoConfig configures a TextInfoDialog.
type TextInfoConfig struct {
	Content    string
	Editable   bool
	Checkbox   string
	AutoScroll bool
}

// copyFunc writes to the system clipboard.
var copyFunc = clipboard.WriteAll

// TextInfoDialog shows scrollable text, optionally editable. With a checkbox
// label, OK stays disabled until the box is ticked.
type TextInfoDialog struct {
	BaseFocusableDialog
	cfg        TextInfoConfig
	content    string
	view       viewport.Model
	area       textarea.Model
	checked    bool
	status     string
	termHeight int
	wrapWidth  int
	dirty      bool
}

// NewTextInfoDialog creates a text-info dialog.
func NewTextInfoDialog(title string, width, height int, cfg TextInfoConfig) *TextInfoDialog {
	elements := 3
	if cfg.Checkbox != "" {
		elements = 4
	}
	d := &TextInfoDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindTextInfo, elements),
		cfg:                 cfg,
		content:             cfg.Content,
		view:                viewport.New(width, 10),
		dirty:               true,
	}
	if cfg.Editable {
		d.area = textarea.New()
		d.area.ShowLineNumbers = false
		d.area.CharLimit = 0
		d.area.SetValue(cfg.Content)
	}
	d.OnFocusChange(d.focusArea)

	hints := []key.Binding{Keys.PageUp, Keys.PageDown, Keys.Next, Keys.Copy}
	if cfg.Checkbox != "" {
		hints = append(hints, Keys.Toggle)
	}
	d.SetFooterHints(HintsFromBindings(hints...)...)
	return d
}

func (d *TextInfoDialog) okIndex() int {
	if d.cfg.Checkbox != "" {
		return 2
	}
	return 1
}

func (d *TextInfoDialog) focusArea(index int) tea.Cmd {
	if !d.cfg.Editable {
		return nil
	}
	if index == 0 {
		return d.area.Focus()
	}
	d.area.Blur()
	return nil
}

// Text returns the current content.
func (d *TextInfoDialog) Text() string {
	if d.cfg.Editable {
		return d.area.Value()
	}
	return d.content
}

// Append adds one line of content.
func (d *TextInfoDialog) Append(line string) {
	if d.cfg.Editable {
		value := d.area.Value()
		if value != "" {
			value += "\n"
		}
		d.area.SetValue(value + line)
		return
	}
	if d.content != "" {
		d.content += "\n"
	}
	d.content += line
	d.dirty = true
}

// Init implements Dialog.
func (d *TextInfoDialog) Init() tea.Cmd {
	return d.focusArea(0)
}

// Update implements Dialog.
func (d *TextInfoDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.termHeight = msg.Height
		return d, nil
	case live.Append:
		d.Append(msg.Text)
		return d, nil
	}
	if d.cfg.Editable {
		var cmd tea.Cmd
		d.area, cmd = d.area.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *TextInfoDialog) sync(width, height int) {
	if d.cfg.Editable {
		d.area.SetWidth(width)
		d.area.SetHeight(height)
		return
	}
	d.view.Width = width
	d.view.Height = height
	if !d.dirty && d.wrapWidth == width {
		return
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(d.content)
	d.view.SetContent(wrapped)
	if d.cfg.AutoScroll {
		d.view.GotoBottom()
	}
	d.wrapWidth = width
	d.dirty = false
}

// View implements Dialog.
func (d *TextInfoDialog) View() string {
	width := d.ContentWidth()
	chrome := 4
	if d.cfg.Checkbox != "" {
		chrome++
	}
	if d.status != "" {
		chrome++
	}
	d.sync(width, VisibleRows(d.ContentHeight(), d.termHeight, chrome, 15))

	var rows []string
	if d.cfg.Editable {
		rows = append(rows, d.area.View())
	} else {
		rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.TextColor).Render(d.view.View()))
	}
	if d.cfg.Checkbox != "" {
		box := "[ ] "
		if d.checked {
			box = "[x] "
		}
		s := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		if d.FocusedIndex() == 1 {
			s = s.Foreground(d.Style.HighlightColor).Bold(true)
		}
		rows = append(rows, s.Render(box+d.cfg.Checkbox))
	}
	if d.status != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render(d.status))
	}
	enabled := func(i int) bool { return i != 0 || d.cfg.Checkbox == "" || d.checked }
	rows = append(rows, renderButtonRow(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), d.okIndex()), enabled))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d *TextInfoDialog) copyToClipboard() {
	if err := copyFunc(d.Text()); err != nil {
		d.status = "Copy failed: " + err.Error()
		return
	}
	d.status = "Copied " + humanize.Bytes(uint64(len(d.Text()))) + " to clipboard"
}

// HandleKey implements Dialog.
func (d *TextInfoDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}
	if key.Matches(msg, Keys.Copy) {
		d.copyToClipboard()
		return DialogResultNone, nil
	}

	idx := d.FocusedIndex()
	switch {
	case idx == 0 && d.cfg.Editable:
		var cmd tea.Cmd
		d.area, cmd = d.area.Update(msg)
		return DialogResultNone, cmd
	case idx == 0 && key.Matches(msg, Keys.Home):
		d.view.GotoTop()
		return DialogResultNone, nil
	case idx == 0 && key.Matches(msg, Keys.End):
		d.view.GotoBottom()
		return DialogResultNone, nil
	case idx == 0 && !key.Matches(msg, Keys.Accept):
		var cmd tea.Cmd
		d.view, cmd = d.view.Update(msg)
		return DialogResultNone, cmd
	case d.cfg.Checkbox != "" && idx == 1 && key.Matches(msg, Keys.Toggle, Keys.Accept):
		d.checked = !d.checked
		return DialogResultNone, nil
	}

	switch {
	case key.Matches(msg, Keys.Accept, Keys.Toggle):
		if idx == d.okIndex()+1 {
			return DialogResultCancel, nil
		}
		if d.cfg.Checkbox != "" && !d.checked {
			return DialogResultNone, nil
		}
		return DialogResultConfirm, nil
	case key.Matches(msg, Keys.Left) && idx > d.okIndex():
		return DialogResultNone, d.SetFocusedIndex(d.okIndex())
	case key.Matches(msg, Keys.Right) && idx == d.okIndex():
		return DialogResultNone, d.SetFocusedIndex(d.okIndex() + 1)
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *TextInfoDialog) DialogResultValue() (interface{}, error) {
	return d.Text(), nil
}
