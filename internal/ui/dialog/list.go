package dialog

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/markup"
)

var editKey = key.NewBinding(key.WithKeys("f2", "ctrl+e"), key.WithHelp("f2", "edit"))

// ListConfig configures a ListDialog. Cells fill rows column by column;
// with a check mode the first column holds TRUE/FALSE.
type ListConfig struct {
	Text        string
	NoMarkup    bool
	Columns     []string
	Cells       []string
	Mode        ListMode
	HideHeader  bool
	HideColumns []int
	MidSearch   bool
	Editable    bool
}

const (
	listRows = iota
	listOK
	listCancel
)

// ListDialog shows a table of rows to choose from.
type ListDialog struct {
	BaseFocusableDialog
	cfg        ListConfig
	table      *table
	termHeight int

	filtering   bool
	filterInput textinput.Model
	editing     bool
	editInput   textinput.Model
}

// NewListDialog creates a list dialog.
func NewListDialog(title string, width, height int, cfg ListConfig) *ListDialog {
	t := newTable(cfg.Columns, cfg.Mode, cfg.HideColumns)
	t.showHeader = !cfg.HideHeader
	t.midSearch = cfg.MidSearch
	t.appendCells(cfg.Cells)
	if cols := t.visibleColumns(); len(cols) > 0 {
		t.editCol = cols[0]
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"

	edit := textinput.New()
	edit.Prompt = ""

	d := &ListDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindList, 3),
		cfg:                 cfg,
		table:               t,
		filterInput:         filter,
		editInput:           edit,
	}

	hints := []key.Binding{Keys.Up, Keys.Down}
	if cfg.Mode != ListSingle {
		hints = append(hints, Keys.Toggle)
	}
	hints = append(hints, Keys.Filter)
	if cfg.Editable {
		hints = append(hints, editKey)
	}
	hints = append(hints, Keys.Accept)
	d.SetFooterHints(HintsFromBindings(hints...)...)
	return d
}

// AppendCell adds one cell read from live input.
func (d *ListDialog) AppendCell(cell string) {
	d.table.appendCell(cell)
}

// Rows returns the number of complete rows.
func (d *ListDialog) Rows() int { return len(d.table.rows) }

// Init implements Dialog.
func (d *ListDialog) Init() tea.Cmd { return nil }

// Update implements Dialog.
func (d *ListDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.termHeight = msg.Height
	case live.Append:
		d.AppendCell(msg.Text)
	}
	return d, nil
}

func (d *ListDialog) visibleRows() int {
	chrome := 4
	if d.cfg.Text != "" {
		chrome += lipgloss.Height(d.cfg.Text) + 1
	}
	if d.filtering || d.table.filter != "" {
		chrome++
	}
	return VisibleRows(d.ContentHeight(), d.termHeight, chrome, 10)
}

// View implements Dialog.
func (d *ListDialog) View() string {
	width := d.ContentWidth()
	var rows []string
	if d.cfg.Text != "" {
		base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, lipgloss.NewStyle().Width(width).PaddingBottom(1).
			Render(markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)))
	}
	if d.filtering || d.table.filter != "" {
		d.filterInput.Width = width - 3
		d.filterInput.TextStyle = lipgloss.NewStyle().Foreground(d.Style.TextColor)
		d.filterInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor)
		rows = append(rows, d.filterInput.View())
	}

	var editing func() string
	if d.editing {
		editing = func() string {
			return lipgloss.NewStyle().Reverse(true).Render(d.editInput.View())
		}
	}
	rows = append(rows, d.table.render(d.Style, width, d.visibleRows(), d.FocusedIndex() == listRows, editing))
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), listOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey implements Dialog.
func (d *ListDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if d.editing {
		return d.handleEditKey(msg)
	}
	if d.filtering {
		return d.handleFilterKey(msg)
	}

	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	if key.Matches(msg, Keys.Accept) {
		if d.FocusedIndex() == listCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}

	if d.FocusedIndex() != listRows {
		switch {
		case key.Matches(msg, Keys.Left):
			return DialogResultNone, d.SetFocusedIndex(listOK)
		case key.Matches(msg, Keys.Right):
			return DialogResultNone, d.SetFocusedIndex(listCancel)
		case key.Matches(msg, Keys.Toggle):
			if d.FocusedIndex() == listCancel {
				return DialogResultCancel, nil
			}
			return DialogResultConfirm, nil
		}
		return DialogResultNone, nil
	}

	page := d.visibleRows()
	switch {
	case key.Matches(msg, Keys.Up):
		d.table.move(-1)
	case key.Matches(msg, Keys.Down):
		d.table.move(1)
	case key.Matches(msg, Keys.PageUp):
		d.table.move(-page)
	case key.Matches(msg, Keys.PageDown):
		d.table.move(page)
	case key.Matches(msg, Keys.Home):
		d.table.move(-len(d.table.view))
	case key.Matches(msg, Keys.End):
		d.table.move(len(d.table.view))
	case key.Matches(msg, Keys.Toggle):
		d.table.toggle()
	case key.Matches(msg, Keys.Left):
		d.moveEditColumn(-1)
	case key.Matches(msg, Keys.Right):
		d.moveEditColumn(1)
	case key.Matches(msg, editKey):
		return DialogResultNone, d.startEdit()
	case key.Matches(msg, Keys.Filter):
		return DialogResultNone, d.startFilter()
	case msg.Type == tea.KeyRunes && !msg.Alt:
		cmd := d.startFilter()
		var update tea.Cmd
		d.filterInput, update = d.filterInput.Update(msg)
		d.table.setFilter(d.filterInput.Value())
		return DialogResultNone, tea.Batch(cmd, update)
	}
	return DialogResultNone, nil
}

func (d *ListDialog) startFilter() tea.Cmd {
	d.filtering = true
	return d.filterInput.Focus()
}

func (d *ListDialog) handleFilterKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Cancel):
		if d.filterInput.Value() == "" {
			d.filtering = false
			d.filterInput.Blur()
		} else {
			d.filterInput.SetValue("")
			d.table.setFilter("")
		}
		return DialogResultNone, nil
	case key.Matches(msg, Keys.Accept):
		d.filtering = false
		d.filterInput.Blur()
		return DialogResultNone, nil
	case key.Matches(msg, Keys.Up):
		d.table.move(-1)
		return DialogResultNone, nil
	case key.Matches(msg, Keys.Down):
		d.table.move(1)
		return DialogResultNone, nil
	}
	var cmd tea.Cmd
	d.filterInput, cmd = d.filterInput.Update(msg)
	d.table.setFilter(d.filterInput.Value())
	return DialogResultNone, cmd
}

func (d *ListDialog) moveEditColumn(delta int) {
	if !d.cfg.Editable {
		return
	}
	cols := d.table.visibleColumns()
	for i, c := range cols {
		if c == d.table.editCol {
			d.table.editCol = cols[clampIndex(i+delta, len(cols))]
			return
		}
	}
}

func (d *ListDialog) startEdit() tea.Cmd {
	idx := d.table.current()
	if !d.cfg.Editable || idx < 0 {
		return nil
	}
	row := d.table.rows[idx]
	value := ""
	if d.table.editCol < len(row) {
		value = row[d.table.editCol]
	}
	d.editing = true
	d.editInput.SetValue(value)
	d.editInput.CursorEnd()
	d.editInput.Width = runewidth.StringWidth(value) + 8
	return d.editInput.Focus()
}

func (d *ListDialog) handleEditKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Cancel):
		d.editing = false
		d.editInput.Blur()
		return DialogResultNone, nil
	case key.Matches(msg, Keys.Accept):
		idx := d.table.current()
		if idx >= 0 {
			row := d.table.rows[idx]
			for len(row) <= d.table.editCol {
				row = append(row, "")
			}
			row[d.table.editCol] = d.editInput.Value()
			d.table.rows[idx] = row
		}
		d.editing = false
		d.editInput.Blur()
		return DialogResultNone, nil
	}
	var cmd tea.Cmd
	d.editInput, cmd = d.editInput.Update(msg)
	return DialogResultNone, cmd
}

// Selected returns the rows that would be printed on acceptance.
func (d *ListDialog) Selected() [][]string {
	return d.table.selected()
}

// DialogResultValue implements DialogResultProvider.
func (d *ListDialog) DialogResultValue() (interface{}, error) {
	return d.table.selected(), nil
}
