package dialog

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FallbackFontFamilies is used when the system font list is unavailable.
var FallbackFontFamilies = []string{"Monospace", "Sans", "Serif"}

var fontStyles = []string{"Regular", "Bold", "Italic", "Bold Italic"}

// FontConfig configures a FontDialog. Pattern preselects a font written as
// "Family [Style] [Size]".
type FontConfig struct {
	Families []string
	Pattern  string
	Sample   string
}

// ParseFontName splits "DejaVu Sans Bold Italic 12" into its parts.
func ParseFontName(s string) (family, style string, size int) {
	words := strings.Fields(s)
	size = 12
	if n := len(words); n > 0 {
		if v, err := strconv.Atoi(words[n-1]); err == nil && v > 0 {
			size = v
			words = words[:n-1]
		}
	}
	var styleWords []string
	for len(words) > 1 {
		last := words[len(words)-1]
		if !strings.EqualFold(last, "bold") && !strings.EqualFold(last, "italic") {
			break
		}
		styleWords = append([]string{strings.ToUpper(last[:1]) + strings.ToLower(last[1:])}, styleWords...)
		words = words[:len(words)-1]
	}
	style = "Regular"
	if len(styleWords) > 0 {
		style = strings.Join(styleWords, " ")
	}
	return strings.Join(words, " "), style, size
}

const (
	fontFamilies = iota
	fontStyle
	fontSize
	fontOK
	fontCancel
)

// FontDialog picks a font family, style and size.
type FontDialog struct {
	BaseFocusableDialog
	cfg        FontConfig
	families   *table
	style      int
	size       textinput.Model
	filtering  bool
	filter     textinput.Model
	termHeight int
}

// NewFontDialog creates a font dialog.
func NewFontDialog(title string, width, height int, cfg FontConfig) *FontDialog {
	families := cfg.Families
	if len(families) == 0 {
		families = FallbackFontFamilies
	}
	t := newTable([]string{"Family"}, ListSingle, nil)
	t.showHeader = false
	t.midSearch = true
	t.appendCells(families)

	family, style, size := ParseFontName(cfg.Pattern)
	for i, f := range families {
		if strings.EqualFold(f, family) {
			t.cursor = i
		}
	}

	d := &FontDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindFont, 5),
		cfg:                 cfg,
		families:            t,
		size:                textinput.New(),
		filter:              textinput.New(),
	}
	for i, s := range fontStyles {
		if s == style {
			d.style = i
		}
	}
	d.size.Prompt = ""
	d.size.CharLimit = 4
	d.size.Validate = numericValidator(false)
	d.size.SetValue(strconv.Itoa(size))
	d.filter.Prompt = "/ "
	d.filter.Placeholder = "filter"
	d.OnFocusChange(d.focusSize)
	d.SetFooterHints(HintsFromBindings(Keys.Next, Keys.Filter, Keys.Accept, Keys.Cancel)...)
	return d
}

func (d *FontDialog) focusSize(index int) tea.Cmd {
	if index == fontSize {
		return d.size.Focus()
	}
	d.size.Blur()
	return nil
}

// Font returns the font name as "Family [Style] Size".
func (d *FontDialog) Font() string {
	family := ""
	if idx := d.families.current(); idx >= 0 {
		family = d.families.rows[idx][0]
	}
	size, err := strconv.Atoi(d.size.Value())
	if err != nil || size <= 0 {
		size = 12
	}
	parts := []string{family}
	if style := fontStyles[d.style]; style != "Regular" {
		parts = append(parts, style)
	}
	parts = append(parts, strconv.Itoa(size))
	return strings.Join(parts, " ")
}

// Init implements Dialog.
func (d *FontDialog) Init() tea.Cmd { return nil }

// Update implements Dialog.
func (d *FontDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.termHeight = msg.Height
	}
	return d, nil
}

// HandleKey implements Dialog.
func (d *FontDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if d.filtering {
		switch {
		case key.Matches(msg, Keys.Cancel):
			d.filtering = false
			d.filter.SetValue("")
			d.filter.Blur()
			d.families.setFilter("")
			return DialogResultNone, nil
		case key.Matches(msg, Keys.Accept):
			d.filtering = false
			d.filter.Blur()
			return DialogResultNone, nil
		case key.Matches(msg, Keys.Up):
			d.families.move(-1)
			return DialogResultNone, nil
		case key.Matches(msg, Keys.Down):
			d.families.move(1)
			return DialogResultNone, nil
		}
		var cmd tea.Cmd
		d.filter, cmd = d.filter.Update(msg)
		d.families.setFilter(d.filter.Value())
		return DialogResultNone, cmd
	}

	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}
	if key.Matches(msg, Keys.Accept) {
		if d.FocusedIndex() == fontCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	}

	switch d.FocusedIndex() {
	case fontFamilies:
		switch {
		case key.Matches(msg, Keys.Up):
			d.families.move(-1)
		case key.Matches(msg, Keys.Down):
			d.families.move(1)
		case key.Matches(msg, Keys.PageUp):
			d.families.move(-8)
		case key.Matches(msg, Keys.PageDown):
			d.families.move(8)
		case key.Matches(msg, Keys.Filter):
			d.filtering = true
			return DialogResultNone, d.filter.Focus()
		}
	case fontStyle:
		switch {
		case key.Matches(msg, Keys.Left, Keys.Up):
			d.style = (d.style - 1 + len(fontStyles)) % len(fontStyles)
		case key.Matches(msg, Keys.Right, Keys.Down, Keys.Toggle):
			d.style = (d.style + 1) % len(fontStyles)
		}
	case fontSize:
		switch {
		case key.Matches(msg, Keys.Up):
			d.stepSize(1)
		case key.Matches(msg, Keys.Down):
			d.stepSize(-1)
		default:
			var cmd tea.Cmd
			d.size, cmd = d.size.Update(msg)
			return DialogResultNone, cmd
		}
	default:
		switch {
		case key.Matches(msg, Keys.Left):
			return DialogResultNone, d.SetFocusedIndex(fontOK)
		case key.Matches(msg, Keys.Right):
			return DialogResultNone, d.SetFocusedIndex(fontCancel)
		case key.Matches(msg, Keys.Toggle):
			if d.FocusedIndex() == fontCancel {
				return DialogResultCancel, nil
			}
			return DialogResultConfirm, nil
		}
	}
	return DialogResultNone, nil
}

func (d *FontDialog) stepSize(delta int) {
	v, _ := strconv.Atoi(d.size.Value())
	if v+delta > 0 {
		d.size.SetValue(strconv.Itoa(v + delta))
	}
}

// View implements Dialog.
func (d *FontDialog) View() string {
	width := d.ContentWidth()
	text := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	label := func(s string, idx int) string {
		st := text.Width(8)
		if d.FocusedIndex() == idx {
			st = st.Foreground(d.Style.HighlightColor).Bold(true)
		}
		return st.Render(s)
	}

	var rows []string
	if d.filtering || d.families.filter != "" {
		rows = append(rows, d.filter.View())
	}
	rows = append(rows, d.families.render(d.Style, width, VisibleRows(d.ContentHeight(), d.termHeight, 10, 8), d.FocusedIndex() == fontFamilies, nil))
	rows = append(rows, "",
		label("Style", fontStyle)+text.Render("‹ "+fontStyles[d.style]+" ›"),
		label("Size", fontSize)+d.size.View())

	sample := d.cfg.Sample
	if sample == "" {
		sample = "The quick brown fox jumps over the lazy dog"
	}
	ss := text.Italic(d.style >= 2).Bold(d.style == 1 || d.style == 3)
	rows = append(rows, "", lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render(d.Font()), ss.Width(width).Render(sample))
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), fontOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// DialogResultValue implements DialogResultProvider.
func (d *FontDialog) DialogResultValue() (interface{}, error) {
	return d.Font(), nil
}
