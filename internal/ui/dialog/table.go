package dialog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// ListMode selects how rows are chosen.
type ListMode int

const (
	ListSingle ListMode = iota
	ListMultiple
	ListChecklist
	ListRadiolist
)

// checkable reports whether the first column holds a check box.
func (m ListMode) checkable() bool {
	return m == ListChecklist || m == ListRadiolist
}

// truthy matches the way check column values are given on the command line.
func truthy(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// table is the scrolling row model shared by the list dialog and list
// fields of forms. With explicit set, an unmarked ListMultiple table selects
// nothing instead of the cursor row.
type table struct {
	columns    []string
	rows       [][]string
	mode       ListMode
	hidden     map[int]bool
	marked     map[int]bool
	pending    []string
	showHeader bool
	midSearch  bool
	explicit   bool

	filter  string
	view    []int
	cursor  int
	offset  int
	editCol int
}

func newTable(columns []string, mode ListMode, hidden []int) *table {
	t := &table{
		columns:    columns,
		mode:       mode,
		hidden:     make(map[int]bool),
		marked:     make(map[int]bool),
		showHeader: true,
	}
	for _, c := range hidden {
		t.hidden[c-1] = true
	}
	t.refilter()
	return t
}

// appendCell adds one cell; cells fill rows column by column.
func (t *table) appendCell(cell string) {
	t.pending = append(t.pending, cell)
	n := len(t.columns)
	if n == 0 {
		n = 1
	}
	if len(t.pending) == n {
		t.appendRow(t.pending)
		t.pending = nil
	}
}

// appendCells adds cells in order.
func (t *table) appendCells(cells []string) {
	for _, c := range cells {
		t.appendCell(c)
	}
}

func (t *table) appendRow(row []string) {
	idx := len(t.rows)
	t.rows = append(t.rows, append([]string(nil), row...))
	if t.mode.checkable() && len(row) > 0 && truthy(row[0]) {
		if t.mode == ListRadiolist {
			t.marked = make(map[int]bool)
		}
		t.marked[idx] = true
	}
	if t.matches(idx) {
		t.view = append(t.view, idx)
	}
}

// visibleColumns lists the column indices that are drawn.
func (t *table) visibleColumns() []int {
	n := len(t.columns)
	cols := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if t.hidden[i] || (i == 0 && t.mode.checkable()) {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

func (t *table) searchText(idx int) string {
	var parts []string
	for _, c := range t.visibleColumns() {
		if c < len(t.rows[idx]) {
			parts = append(parts, t.rows[idx][c])
		}
	}
	return strings.Join(parts, " ")
}

// matches applies the prefix filter; fuzzy filtering is handled by refilter.
func (t *table) matches(idx int) bool {
	if t.filter == "" {
		return true
	}
	if t.midSearch {
		return len(fuzzy.Find(t.filter, []string{t.searchText(idx)})) > 0
	}
	needle := strings.ToLower(t.filter)
	for _, c := range t.visibleColumns() {
		if c < len(t.rows[idx]) && strings.HasPrefix(strings.ToLower(t.rows[idx][c]), needle) {
			return true
		}
	}
	return false
}

// setFilter narrows the visible rows. Mid-search matches fuzzily anywhere
// in the row and orders by score; otherwise a cell must start with filter.
func (t *table) setFilter(filter string) {
	t.filter = filter
	t.refilter()
}

func (t *table) refilter() {
	t.view = t.view[:0]
	switch {
	case t.filter == "":
		for i := range t.rows {
			t.view = append(t.view, i)
		}
	case t.midSearch:
		data := make([]string, len(t.rows))
		for i := range t.rows {
			data[i] = t.searchText(i)
		}
		for _, m := range fuzzy.Find(t.filter, data) {
			t.view = append(t.view, m.Index)
		}
	default:
		for i := range t.rows {
			if t.matches(i) {
				t.view = append(t.view, i)
			}
		}
	}
	t.cursor = clampIndex(t.cursor, len(t.view))
	t.offset = 0
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// current returns the row index under the cursor or -1.
func (t *table) current() int {
	if t.cursor < 0 || t.cursor >= len(t.view) {
		return -1
	}
	return t.view[t.cursor]
}

func (t *table) move(delta int) {
	if len(t.view) == 0 {
		return
	}
	t.cursor = clampIndex(t.cursor+delta, len(t.view))
}

// toggle flips the mark on the cursor row. Radio lists keep one mark.
func (t *table) toggle() {
	idx := t.current()
	if idx < 0 || t.mode == ListSingle {
		return
	}
	if t.mode == ListRadiolist {
		t.marked = map[int]bool{idx: true}
		return
	}
	if t.marked[idx] {
		delete(t.marked, idx)
	} else {
		t.marked[idx] = true
	}
}

// selected returns full copies of the chosen rows in input order. Check
// columns read TRUE for returned rows.
func (t *table) selected() [][]string {
	var out [][]string
	pick := func(idx int) {
		row := append([]string(nil), t.rows[idx]...)
		if t.mode.checkable() && len(row) > 0 {
			row[0] = "TRUE"
		}
		out = append(out, row)
	}
	switch t.mode {
	case ListSingle:
		if idx := t.current(); idx >= 0 {
			pick(idx)
		}
	case ListMultiple:
		if len(t.marked) == 0 && !t.explicit {
			if idx := t.current(); idx >= 0 {
				pick(idx)
			}
			break
		}
		fallthrough
	default:
		for i := range t.rows {
			if t.marked[i] {
				pick(i)
			}
		}
	}
	if out == nil {
		out = [][]string{}
	}
	return out
}

// columnWidths fits the visible columns into width, shrinking the widest
// first.
func (t *table) columnWidths(cols []int, width int) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		if t.showHeader {
			widths[i] = runewidth.StringWidth(t.columns[c])
		}
		for _, row := range t.rows {
			if c < len(row) {
				if w := runewidth.StringWidth(row[c]); w > widths[i] {
					widths[i] = w
				}
			}
		}
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	avail := width - (len(cols) - 1)
	for {
		sum, widest := 0, 0
		for i, w := range widths {
			sum += w
			if w > widths[widest] {
				widest = i
			}
		}
		if sum <= avail || widths[widest] <= 3 {
			break
		}
		widths[widest]--
	}
	return widths
}

func (t *table) checkBox(idx int) string {
	mark := t.marked[idx]
	switch t.mode {
	case ListChecklist:
		if mark {
			return "[x] "
		}
		return "[ ] "
	case ListRadiolist:
		if mark {
			return "(•) "
		}
		return "( ) "
	case ListMultiple:
		if mark {
			return "* "
		}
		return "  "
	}
	return ""
}

func cell(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// render draws at most height rows (header included). editing, when not
// nil, replaces the cell being edited.
func (t *table) render(style *DialogStyle, width, height int, focused bool, editing func() string) string {
	cols := t.visibleColumns()
	prefixWidth := 2 + runewidth.StringWidth(t.checkBox(-1))
	widths := t.columnWidths(cols, width-prefixWidth)

	var lines []string
	if t.showHeader && len(cols) > 0 {
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = cell(t.columns[c], widths[i])
		}
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(style.TitleColor).
			Render(strings.Repeat(" ", prefixWidth)+strings.Join(parts, " ")))
		height--
	}
	if height < 1 {
		height = 1
	}

	if len(t.view) == 0 {
		msg := "No items"
		if t.filter != "" {
			msg = "No matches"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(style.PlaceholderColor).Render("  "+msg))
		return strings.Join(lines, "\n")
	}

	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+height {
		t.offset = t.cursor - height + 1
	}
	end := t.offset + height
	if end > len(t.view) {
		end = len(t.view)
	}

	text := lipgloss.NewStyle().Foreground(style.TextColor)
	for v := t.offset; v < end; v++ {
		idx := t.view[v]
		row := t.rows[idx]
		parts := make([]string, len(cols))
		for i, c := range cols {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			parts[i] = cell(value, widths[i])
			if v == t.cursor && editing != nil && c == t.editCol {
				parts[i] = editing()
			}
		}
		pointer := "  "
		s := text
		if v == t.cursor {
			pointer = "› "
			if focused {
				s = s.Foreground(style.HighlightColor).Bold(true)
			}
		}
		lines = append(lines, s.Render(pointer+t.checkBox(idx)+strings.Join(parts, " ")))
	}
	if t.offset > 0 || end < len(t.view) {
		info := lipgloss.NewStyle().Foreground(style.PlaceholderColor).Width(width).Align(lipgloss.Right)
		lines = append(lines, info.Render(scrollInfo(t.offset, end, len(t.view))))
	}
	return strings.Join(lines, "\n")
}

func scrollInfo(offset, end, total int) string {
	s := ""
	if offset > 0 {
		s += "↑ "
	}
	s += fmt.Sprintf("%d-%d/%d", offset+1, end, total)
	if end < total {
		s += " ↓"
	}
	return s
}
