package markup

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

// ErrMalformed is returned by Parse when end tags do not match.
var ErrMalformed = errors.New("malformed markup")

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// namedColors covers the colour names scripts commonly pass to
// <span foreground=...>; anything else must be #rgb, #rrggbb or an ANSI index.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"brown":   "#a52a2a",
	"pink":    "#ffc0cb",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"silver":  "#c0c0c0",
}

// Parse splits markup into styled spans. Unknown tags are dropped but their
// text is kept; an end tag that does not close the innermost open tag makes
// the whole input malformed.
func Parse(s string, base lipgloss.Style) ([]Span, error) {
	z := html.NewTokenizer(strings.NewReader(s))

	type frame struct {
		tag   string
		style lipgloss.Style
	}
	stack := []frame{{style: base}}
	var spans []Span

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			if len(stack) > 1 {
				return nil, ErrMalformed
			}
			return spans, nil

		case html.TextToken:
			text := string(z.Text())
			if text != "" {
				spans = append(spans, Span{Text: text, Style: stack[len(stack)-1].style})
			}

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			attrs := map[string]string{}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				attrs[string(k)] = string(v)
			}
			style := applyTag(stack[len(stack)-1].style, tag, attrs)
			stack = append(stack, frame{tag: tag, style: style})

		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) < 2 || stack[len(stack)-1].tag != string(name) {
				return nil, ErrMalformed
			}
			stack = stack[:len(stack)-1]

		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
		}
	}
}

// Render renders markup onto the terminal. Malformed markup is shown as
// plain text.
func Render(s string, base lipgloss.Style) string {
	spans, err := Parse(s, base)
	if err != nil {
		return renderPlain(s, base)
	}

	var b strings.Builder
	for _, span := range spans {
		b.WriteString(renderPlain(span.Text, span.Style))
	}
	return b.String()
}

// Strip removes tags and decodes entities, returning the plain text.
func Strip(s string) string {
	spans, err := Parse(s, lipgloss.NewStyle())
	if err != nil {
		return s
	}
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Text is the pipeline applied to every dialog --text argument.
func Text(raw string, noMarkup bool, base lipgloss.Style) string {
	s := Compress(raw)
	if noMarkup {
		return renderPlain(s, base)
	}
	return Render(s, base)
}

// renderPlain styles each line on its own so that Lip Gloss does not pad
// shorter lines to the width of the longest one.
func renderPlain(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func applyTag(style lipgloss.Style, tag string, attrs map[string]string) lipgloss.Style {
	switch tag {
	case "b":
		return style.Bold(true)
	case "i":
		return style.Italic(true)
	case "u":
		return style.Underline(true)
	case "s":
		return style.Strikethrough(true)
	case "big":
		return style.Bold(true)
	case "small":
		return style.Faint(true)
	case "span":
		return applySpan(style, attrs)
	}
	// tt, sub, sup and unknown tags carry no terminal styling.
	return style
}

func applySpan(style lipgloss.Style, attrs map[string]string) lipgloss.Style {
	for k, v := range attrs {
		v = strings.TrimSpace(v)
		switch k {
		case "foreground", "fgcolor", "color":
			if c, ok := parseColor(v); ok {
				style = style.Foreground(c)
			}
		case "background", "bgcolor":
			if c, ok := parseColor(v); ok {
				style = style.Background(c)
			}
		case "weight", "font_weight":
			if isBoldWeight(v) {
				style = style.Bold(true)
			}
		case "style", "font_style":
			if v == "italic" || v == "oblique" {
				style = style.Italic(true)
			}
		case "underline":
			if v != "" && v != "none" {
				style = style.Underline(true)
			}
		case "strikethrough":
			if v == "true" {
				style = style.Strikethrough(true)
			}
		case "size", "font_size":
			if v == "larger" || v == "large" || v == "x-large" || v == "xx-large" {
				style = style.Bold(true)
			}
		}
	}
	return style
}

func isBoldWeight(v string) bool {
	switch strings.ToLower(v) {
	case "bold", "heavy", "ultrabold", "semibold", "ultraheavy":
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 600
}

func parseColor(v string) (lipgloss.Color, bool) {
	v = strings.ToLower(v)
	if hex, ok := namedColors[v]; ok {
		return lipgloss.Color(hex), true
	}
	if strings.HasPrefix(v, "#") {
		switch len(v) {
		case 4, 7:
			if _, err := strconv.ParseUint(v[1:], 16, 32); err == nil {
				return lipgloss.Color(v), true
			}
		}
		return "", false
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < 256 {
		return lipgloss.Color(v), true
	}
	return "", false
}
