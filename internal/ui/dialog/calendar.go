package dialog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adriangreen/zentui/internal/markup"
)

var (
	prevYearKey = key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "year"))
	nextYearKey = key.NewBinding(key.WithKeys("]"))
	todayKey    = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today"))
)

// calendarGrid is a month view with a cursor on one day.
type calendarGrid struct {
	date time.Time
}

func newCalendarGrid(date time.Time) calendarGrid {
	y, m, d := date.Date()
	return calendarGrid{date: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// addMonths moves by whole months, clamping the day to the target month.
func (g *calendarGrid) addMonths(n int) {
	y, m, d := g.date.Date()
	total := int(m) - 1 + n
	y += total / 12
	if total%12 < 0 {
		y--
	}
	m = time.Month((total%12+12)%12 + 1)
	if max := daysIn(y, m); d > max {
		d = max
	}
	g.date = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// handleKey moves the cursor; it reports whether the key was consumed.
func (g *calendarGrid) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, Keys.Left):
		g.date = g.date.AddDate(0, 0, -1)
	case key.Matches(msg, Keys.Right):
		g.date = g.date.AddDate(0, 0, 1)
	case key.Matches(msg, Keys.Up):
		g.date = g.date.AddDate(0, 0, -7)
	case key.Matches(msg, Keys.Down):
		g.date = g.date.AddDate(0, 0, 7)
	case key.Matches(msg, Keys.PageUp):
		g.addMonths(-1)
	case key.Matches(msg, Keys.PageDown):
		g.addMonths(1)
	case key.Matches(msg, prevYearKey):
		g.addMonths(-12)
	case key.Matches(msg, nextYearKey):
		g.addMonths(12)
	case key.Matches(msg, todayKey):
		*g = newCalendarGrid(time.Now())
	default:
		return false
	}
	return true
}

func (g calendarGrid) view(style *DialogStyle, focused bool) string {
	y, m, sel := g.date.Date()
	header := lipgloss.NewStyle().Bold(true).Foreground(style.TitleColor).Width(20).Align(lipgloss.Center).
		Render(fmt.Sprintf("%s %d", m, y))
	weekdays := lipgloss.NewStyle().Foreground(style.PlaceholderColor).Render("Su Mo Tu We Th Fr Sa")

	day := lipgloss.NewStyle().Foreground(style.TextColor)
	cursor := day.Reverse(true).Bold(true)
	if !focused {
		cursor = day.Underline(true)
	}

	var b strings.Builder
	offset := int(time.Date(y, m, 1, 0, 0, 0, 0, time.Local).Weekday())
	b.WriteString(strings.Repeat("   ", offset))
	for d := 1; d <= daysIn(y, m); d++ {
		cell := fmt.Sprintf("%2d", d)
		if d == sel {
			cell = cursor.Render(cell)
		} else {
			cell = day.Render(cell)
		}
		b.WriteString(cell)
		if (offset+d)%7 == 0 {
			b.WriteString("\n")
		} else if d != daysIn(y, m) {
			b.WriteString(" ")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, weekdays, strings.TrimRight(b.String(), "\n"))
}

// CalendarConfig configures a CalendarDialog.
type CalendarConfig struct {
	Text     string
	NoMarkup bool
	Date     time.Time
}

const (
	calendarGridFocus = iota
	calendarOK
	calendarCancel
)

// CalendarDialog picks a date from a month grid.
type CalendarDialog struct {
	BaseFocusableDialog
	cfg  CalendarConfig
	grid calendarGrid
}

// NewCalendarDialog creates a calendar dialog. A zero Date starts today.
func NewCalendarDialog(title string, width, height int, cfg CalendarConfig) *CalendarDialog {
	date := cfg.Date
	if date.IsZero() {
		date = time.Now()
	}
	d := &CalendarDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindCalendar, 3),
		cfg:                 cfg,
		grid:                newCalendarGrid(date),
	}
	d.SetFooterHints(
		ShortcutHint{Key: "←↑↓→", Label: "day"},
		ShortcutHint{Key: "pgup/pgdn", Label: "month"},
		ShortcutHint{Key: "[/]", Label: "year"},
		ShortcutHint{Key: "enter", Label: "accept"},
	)
	return d
}

// Date returns the day under the cursor.
func (d *CalendarDialog) Date() time.Time { return d.grid.date }

// Init implements Dialog.
func (d *CalendarDialog) Init() tea.Cmd { return nil }

// Update implements Dialog.
func (d *CalendarDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) { return d, nil }

// View implements Dialog.
func (d *CalendarDialog) View() string {
	width := d.ContentWidth()
	var rows []string
	if d.cfg.Text != "" {
		base := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		rows = append(rows, lipgloss.NewStyle().Width(width).PaddingBottom(1).
			Render(markup.Text(d.cfg.Text, d.cfg.NoMarkup, base)))
	}
	grid := d.grid.view(d.Style, d.FocusedIndex() == calendarGridFocus)
	rows = append(rows, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(grid))
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), calendarOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// HandleKey implements Dialog.
func (d *CalendarDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}
	if key.Matches(msg, Keys.Accept, Keys.Toggle) {
		if d.FocusedIndex() == calendarCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}
	if d.FocusedIndex() == calendarGridFocus {
		d.grid.handleKey(msg)
		return DialogResultNone, nil
	}
	switch {
	case key.Matches(msg, Keys.Left):
		return DialogResultNone, d.SetFocusedIndex(calendarOK)
	case key.Matches(msg, Keys.Right):
		return DialogResultNone, d.SetFocusedIndex(calendarCancel)
	}
	return DialogResultNone, nil
}

// DialogResultValue implements DialogResultProvider.
func (d *CalendarDialog) DialogResultValue() (interface{}, error) {
	return d.grid.date, nil
}
