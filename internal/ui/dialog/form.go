package dialog

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adriangreen/zentui/internal/markup"
	"github.com/adriangreen/zentui/internal/output"
)

// FormFieldKind is the widget used for a form field.
type FormFieldKind int

const (
	FormEntry FormFieldKind = iota
	FormPassword
	FormCalendar
	FormList
	FormCombo
	FormCheckbox
)

// FormField describes one field. Values are the combo choices or the list
// cells; Columns are the list headers.
type FormField struct {
	Kind    FormFieldKind
	Label   string
	Values  []string
	Columns []string
}

// FormConfig configures a FormDialog.
type FormConfig struct {
	Text       string
	NoMarkup   bool
	Fields     []FormField
	ShowHeader bool
	DateFormat string
}

type formField struct {
	FormField
	input   textinput.Model
	grid    calendarGrid
	table   *table
	choice  int
	checked bool
}

const formListHeight = 5

// FormDialog collects several values at once. Its result holds one value per
// field: string, time.Time, [][]string or bool.
type FormDialog struct {
	BaseFocusableDialog
	cfg    FormConfig
	fields []*formField
}

// NewFormDialog creates a form dialog.
func NewFormDialog(title string, width, height int, cfg FormConfig) *FormDialog {
	d := &FormDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindForm, len(cfg.Fields)+2),
		cfg:                 cfg,
	}
	for _, f := range cfg.Fields {
		field := &formField{FormField: f}
		switch f.Kind {
		case FormEntry, FormPassword:
			field.input = textinput.New()
			field.input.Prompt = ""
			if f.Kind == FormPassword {
				field.input.EchoMode = textinput.EchoPassword
				field.input.EchoCharacter = '•'
			}
		case FormCalendar:
			field.grid = newCalendarGrid(time.Now())
		case FormList:
			columns := f.Columns
			if len(columns) == 0 {
				columns = []string{f.Label}
			}
			field.table = newTable(columns, ListMultiple, nil)
			field.table.explicit = true
			field.table.showHeader = cfg.ShowHeader
			field.table.appendCells(f.Values)
		}
		d.fields = append(d.fields, field)
	}
	d.OnFocusChange(d.focusField)
	d.SetFooterHints(HintsFromBindings(Keys.Next, Keys.Toggle, Keys.Accept, Keys.Cancel)...)
	return d
}

func (d *FormDialog) okIndex() int { return len(d.fields) }

func (d *FormDialog) focusField(index int) tea.Cmd {
	var cmd tea.Cmd
	for i, f := range d.fields {
		if f.Kind != FormEntry && f.Kind != FormPassword {
			continue
		}
		if i == index {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

// Init implements Dialog.
func (d *FormDialog) Init() tea.Cmd {
	return tea.Batch(d.focusField(0), textinput.Blink)
}

// Update implements Dialog.
func (d *FormDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	idx := d.FocusedIndex()
	if idx < len(d.fields) {
		if f := d.fields[idx]; f.Kind == FormEntry || f.Kind == FormPassword {
			var cmd tea.Cmd
			f.input, cmd = f.input.Update(msg)
			return d, cmd
		}
	}
	return d, nil
}

func (d *FormDialog) labelWidth() int {
	w := 0
	for _, f := range d.fields {
		if lw := lipgloss.Width(f.Label); lw > w {
			w = lw
		}
	}
	return w + 2
}

func (d *FormDialog) renderField(i int, f *formField, width int) string {
	focused := d.FocusedIndex() == i
	text := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	labelStyle := text.Width(d.labelWidth())
	if focused {
		labelStyle = labelStyle.Foreground(d.Style.HighlightColor).Bold(true)
	}
	label := labelStyle.Render(f.Label)
	avail := width - lipgloss.Width(label)

	var value string
	switch f.Kind {
	case FormEntry, FormPassword:
		f.input.Width = avail - 1
		f.input.TextStyle = text
		value = f.input.View()
	case FormCalendar:
		value = output.FormatDate(f.grid.date, d.cfg.DateFormat)
		if focused {
			value = lipgloss.JoinVertical(lipgloss.Left, value, f.grid.view(d.Style, true))
		}
	case FormList:
		value = f.table.render(d.Style, avail, formListHeight, focused, nil)
	case FormCombo:
		current := ""
		if len(f.Values) > 0 {
			current = f.Values[f.choice]
		}
		value = "‹ " + current + " ›"
	case FormCheckbox:
		value = "[ ]"
		if f.checked {
			value = "[x]"
		}
		if focused {
			value = lipgloss.NewStyle().Reverse(true).Render(value)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, text.Render(value))
}

// View implements Dialog.
func (d *FormDialog) View() string {
	width := d.ContentWidth()
	var rows []string
	if d.cfg.Text != "" {
		base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, lipgloss.NewStyle().Width(width).PaddingBottom(1).
			Render(markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)))
	}
	for i, f := range d.fields {
		rows = append(rows, d.renderField(i, f, width))
	}
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), d.okIndex())))
	return d.RenderBorder(strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, rows...), "\n"))
}

// HandleKey implements Dialog.
func (d *FormDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	idx := d.FocusedIndex()
	if key.Matches(msg, Keys.Accept) {
		if idx == d.okIndex()+1 {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}

	if idx >= len(d.fields) {
		switch {
		case key.Matches(msg, Keys.Left):
			return DialogResultNone, d.SetFocusedIndex(d.okIndex())
		case key.Matches(msg, Keys.Right):
			return DialogResultNone, d.SetFocusedIndex(d.okIndex() + 1)
		case key.Matches(msg, Keys.Up):
			return DialogResultNone, d.SetFocusedIndex(len(d.fields) - 1)
		}
		return DialogResultNone, nil
	}

	f := d.fields[idx]
	switch f.Kind {
	case FormEntry, FormPassword:
		switch {
		case key.Matches(msg, Keys.Up):
			return DialogResultNone, d.FocusPrev()
		case key.Matches(msg, Keys.Down):
			return DialogResultNone, d.FocusNext()
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return DialogResultNone, cmd
	case FormCalendar:
		f.grid.handleKey(msg)
	case FormList:
		switch {
		case key.Matches(msg, Keys.Up):
			f.table.move(-1)
		case key.Matches(msg, Keys.Down):
			f.table.move(1)
		case key.Matches(msg, Keys.Toggle):
			f.table.toggle()
		}
	case FormCombo:
		if len(f.Values) == 0 {
			break
		}
		switch {
		case key.Matches(msg, Keys.Left):
			f.choice = (f.choice - 1 + len(f.Values)) % len(f.Values)
		case key.Matches(msg, Keys.Right, Keys.Toggle):
			f.choice = (f.choice + 1) % len(f.Values)
		case key.Matches(msg, Keys.Up):
			return DialogResultNone, d.FocusPrev()
		case key.Matches(msg, Keys.Down):
			return DialogResultNone, d.FocusNext()
		}
	case FormCheckbox:
		switch {
		case key.Matches(msg, Keys.Toggle):
			f.checked = !f.checked
		case key.Matches(msg, Keys.Up):
			return DialogResultNone, d.FocusPrev()
		case key.Matches(msg, Keys.Down):
			return DialogResultNone, d.FocusNext()
		}
	}
	return DialogResultNone, nil
}

// Values returns one value per field in declaration order.
func (d *FormDialog) Values() []interface{} {
	values := make([]interface{}, len(d.fields))
	for i, f := range d.fields {
		switch f.Kind {
		case FormEntry, FormPassword:
			values[i] = f.input.Value()
		case FormCalendar:
			values[i] = f.grid.date
		case FormList:
			values[i] = f.table.selected()
		case FormCombo:
			v := ""
			if len(f.Values) > 0 {
				v = f.Values[f.choice]
			}
			values[i] = v
		case FormCheckbox:
			values[i] = f.checked
		}
	}
	return values
}

// DialogResultValue implements DialogResultProvider.
func (d *FormDialog) DialogResultValue() (interface{}, error) {
	return d.Values(), nil
}
