package dialog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// PalettePrefs persists the custom colour palette.
type PalettePrefs interface {
	Palette(ctx context.Context) ([]string, error)
	SetPalette(ctx context.Context, colors []string) error
}

// basicColors is the fixed palette shown above the custom one.
var basicColors = []string{
	"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
	"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
}

var namedColors = map[string]string{
	"black": "#000000", "white": "#ffffff", "red": "#ff0000", "green": "#008000",
	"lime": "#00ff00", "blue": "#0000ff", "yellow": "#ffff00", "cyan": "#00ffff",
	"magenta": "#ff00ff", "gray": "#808080", "grey": "#808080", "orange": "#ffa500",
	"purple": "#800080", "brown": "#a52a2a", "pink": "#ffc0cb", "navy": "#000080",
}

const (
	paletteColumns    = 8
	customPaletteSize = 48
)

// ParseColor reads #rgb, #rrggbb, rgb(r,g,b), rgba(r,g,b,a) or a basic colour
// name.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "rgb") {
		open, end := strings.IndexByte(s, '('), strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return colorful.Color{}, fmt.Errorf("invalid colour %q", s)
		}
		parts := strings.Split(s[open+1:end], ",")
		if len(parts) < 3 {
			return colorful.Color{}, fmt.Errorf("invalid colour %q", s)
		}
		var rgb [3]float64
		for i := range rgb {
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, fmt.Errorf("invalid colour %q", s)
			}
			rgb[i] = v / 255
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	}
	return colorful.Hex(s)
}

// ColorConfig configures a ColorDialog.
type ColorConfig struct {
	Color       string
	ShowPalette bool
	Prefs       PalettePrefs
}

type paletteMsg struct {
	colors []string
	err    error
}

type paletteSavedMsg struct {
	err error
}

const (
	colorPalette = iota
	colorHex
	colorOK
	colorCancel
)

var (
	hueKey      = key.NewBinding(key.WithKeys("h", "H"), key.WithHelp("h/H", "hue"))
	satKey      = key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s/S", "saturation"))
	valKey      = key.NewBinding(key.WithKeys("v", "V"), key.WithHelp("v/V", "value"))
	addColorKey = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to palette"))
)

// ColorDialog picks a colour from a palette, a hex entry or HSV nudges.
type ColorDialog struct {
	BaseFocusableDialog
	cfg     ColorConfig
	color   colorful.Color
	custom  []string
	cursor  int
	hex     textinput.Model
	status  string
	nextAdd int
}

// NewColorDialog creates a colour dialog.
func NewColorDialog(title string, width, height int, cfg ColorConfig) *ColorDialog {
	d := &ColorDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindColor, 4),
		cfg:                 cfg,
		color:               colorful.Color{R: 1, G: 1, B: 1},
		hex:                 textinput.New(),
	}
	if cfg.Color != "" {
		if c, err := ParseColor(cfg.Color); err == nil {
			d.color = c
		}
	}
	d.hex.Prompt = "Hex: "
	d.hex.CharLimit = 7
	d.syncHex()
	d.OnFocusChange(d.focusHex)
	hints := []key.Binding{hueKey, satKey, valKey}
	if cfg.ShowPalette {
		hints = append(hints, addColorKey)
	}
	d.SetFooterHints(HintsFromBindings(hints...)...)
	return d
}

// Color returns the current colour.
func (d *ColorDialog) Color() colorful.Color { return d.color }

// Custom returns the custom palette.
func (d *ColorDialog) Custom() []string { return append([]string(nil), d.custom...) }

func (d *ColorDialog) syncHex() {
	d.hex.SetValue(d.color.Clamped().Hex())
	d.hex.CursorEnd()
}

func (d *ColorDialog) focusHex(index int) tea.Cmd {
	if index == colorHex {
		return d.hex.Focus()
	}
	d.hex.Blur()
	return nil
}

func (d *ColorDialog) swatches() []string {
	if !d.cfg.ShowPalette {
		return basicColors
	}
	return append(append([]string(nil), basicColors...), d.custom...)
}

// Init loads the custom palette.
func (d *ColorDialog) Init() tea.Cmd {
	prefs := d.cfg.Prefs
	if prefs == nil || !d.cfg.ShowPalette {
		return nil
	}
	return func() tea.Msg {
		colors, err := prefs.Palette(context.Background())
		return paletteMsg{colors: colors, err: err}
	}
}

// Update implements Dialog.
func (d *ColorDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case paletteMsg:
		if msg.err != nil {
			d.status = "Palette unavailable: " + msg.err.Error()
			return d, nil
		}
		d.custom = msg.colors
	case paletteSavedMsg:
		if msg.err != nil {
			d.status = "Saving palette failed: " + msg.err.Error()
		}
	default:
		if d.FocusedIndex() == colorHex {
			var cmd tea.Cmd
			d.hex, cmd = d.hex.Update(msg)
			return d, cmd
		}
	}
	return d, nil
}

// nudge moves the colour in HSV space.
func (d *ColorDialog) nudge(dh, ds, dv float64) {
	h, s, v := d.color.Clamped().Hsv()
	h = math.Mod(h+dh+360, 360)
	s = math.Max(0, math.Min(1, s+ds))
	v = math.Max(0, math.Min(1, v+dv))
	d.color = colorful.Hsv(h, s, v)
	d.syncHex()
}

// addToPalette stores the current colour in the next custom slot, cycling
// through the palette.
func (d *ColorDialog) addToPalette() tea.Cmd {
	if !d.cfg.ShowPalette {
		return nil
	}
	if len(d.custom) == 0 {
		d.custom = make([]string, customPaletteSize)
		for i := range d.custom {
			d.custom[i] = "#ffffff"
		}
	}
	d.custom[d.nextAdd%len(d.custom)] = d.color.Clamped().Hex()
	d.nextAdd++
	d.status = "Added " + d.color.Clamped().Hex() + " to palette"
	prefs := d.cfg.Prefs
	if prefs == nil {
		return nil
	}
	colors := append([]string(nil), d.custom...)
	return func() tea.Msg {
		return paletteSavedMsg{err: prefs.SetPalette(context.Background(), colors)}
	}
}

func (d *ColorDialog) pick() {
	sw := d.swatches()
	if d.cursor < len(sw) {
		if c, err := colorful.Hex(sw[d.cursor]); err == nil {
			d.color = c
			d.syncHex()
		}
	}
}

// HandleKey implements Dialog.
func (d *ColorDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	switch d.FocusedIndex() {
	case colorPalette:
		return d.handlePaletteKey(msg)
	case colorHex:
		if key.Matches(msg, Keys.Accept) {
			c, err := ParseColor(d.hex.Value())
			if err != nil {
				d.status = err.Error()
				return DialogResultNone, nil
			}
			d.color = c
			return DialogResultConfirm, nil
		}
		var cmd tea.Cmd
		d.hex, cmd = d.hex.Update(msg)
		if c, err := ParseColor(d.hex.Value()); err == nil {
			d.color = c
		}
		return DialogResultNone, cmd
	}

	switch {
	case key.Matches(msg, Keys.Accept, Keys.Toggle):
		if d.FocusedIndex() == colorCancel {
			return DialogResultCancel, nil
		}
		return DialogResultConfirm, nil
	case key.Matches(msg, Keys.Left):
		return DialogResultNone, d.SetFocusedIndex(colorOK)
	case key.Matches(msg, Keys.Right):
		return DialogResultNone, d.SetFocusedIndex(colorCancel)
	}
	return DialogResultNone, nil
}

func (d *ColorDialog) handlePaletteKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	n := len(d.swatches())
	switch {
	case key.Matches(msg, Keys.Accept):
		return DialogResultConfirm, nil
	case key.Matches(msg, Keys.Left):
		d.cursor = clampIndex(d.cursor-1, n)
		d.pick()
	case key.Matches(msg, Keys.Right):
		d.cursor = clampIndex(d.cursor+1, n)
		d.pick()
	case key.Matches(msg, Keys.Up):
		if d.cursor >= paletteColumns {
			d.cursor -= paletteColumns
		}
		d.pick()
	case key.Matches(msg, Keys.Down):
		if d.cursor+paletteColumns < n {
			d.cursor += paletteColumns
		}
		d.pick()
	case key.Matches(msg, Keys.Toggle):
		d.pick()
	case key.Matches(msg, hueKey):
		if msg.String() == "H" {
			d.nudge(-10, 0, 0)
		} else {
			d.nudge(10, 0, 0)
		}
	case key.Matches(msg, satKey):
		if msg.String() == "S" {
			d.nudge(0, -0.05, 0)
		} else {
			d.nudge(0, 0.05, 0)
		}
	case key.Matches(msg, valKey):
		if msg.String() == "V" {
			d.nudge(0, 0, -0.05)
		} else {
			d.nudge(0, 0, 0.05)
		}
	case key.Matches(msg, addColorKey):
		return DialogResultNone, d.addToPalette()
	}
	return DialogResultNone, nil
}

func (d *ColorDialog) renderPalette() string {
	sw := d.swatches()
	var rows []string
	var row []string
	for i, hex := range sw {
		cellText := "  "
		if i == d.cursor && d.FocusedIndex() == colorPalette {
			cellText = "▪▪"
		}
		c, err := colorful.Hex(hex)
		fg := lipgloss.Color("#000000")
		if err == nil {
			if _, _, l := c.Hcl(); l < 0.5 {
				fg = lipgloss.Color("#ffffff")
			}
		}
		row = append(row, lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(fg).Render(cellText))
		if (i+1)%paletteColumns == 0 || i == len(sw)-1 {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
		if i == len(basicColors)-1 && len(sw) > len(basicColors) {
			rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render("Custom"))
		}
	}
	return strings.Join(rows, "\n")
}

// View implements Dialog.
func (d *ColorDialog) View() string {
	width := d.ContentWidth()
	hex := d.color.Clamped().Hex()
	h, s, v := d.color.Clamped().Hsv()

	swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Width(10).Height(3).Render("")
	info := lipgloss.NewStyle().Foreground(d.Style.TextColor).PaddingLeft(2).Render(
		fmt.Sprintf("%s\nH %3.0f°  S %3.0f%%  V %3.0f%%", hex, h, s*100, v*100))
	top := lipgloss.JoinHorizontal(lipgloss.Top, d.renderPalette(), "   ", lipgloss.JoinVertical(lipgloss.Left, swatch, info))

	d.hex.TextStyle = lipgloss.NewStyle().Foreground(d.Style.TextColor)
	rows := []string{top, "", d.hex.View()}
	if d.status != "" {
		rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render(d.status))
	}
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), colorOK)))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// DialogResultValue implements DialogResultProvider.
func (d *ColorDialog) DialogResultValue() (interface{}, error) {
	return d.color.Clamped(), nil
}
