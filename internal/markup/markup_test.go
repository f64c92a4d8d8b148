package markup

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "plain text", "plain text"},
		{"newline and tab", `a\nb\tc`, "a\nb\tc"},
		{"carriage return", `x\ry`, "x\ry"},
		{"control letters", `\b\f\v`, "\b\f\v"},
		{"escaped backslash", `C:\\temp`, `C:\temp`},
		{"escaped quote", `say \"hi\"`, `say "hi"`},
		{"octal one digit", `\0x`, "\x00x"},
		{"octal three digits", `\101\102`, "AB"},
		{"octal stops after three", `\1011`, "A1"},
		{"octal stops at non octal", `\18`, "\x018"},
		{"octal wraps", `\777`, "\xff"},
		{"unknown escape keeps char", `\q\z`, "qz"},
		{"trailing backslash dropped", `end\`, "end"},
		{"escape then newline escape", `\\n`, `\n`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compress(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &#39;e&#39;", Escape(`a & b <c> "d" 'e'`))
	assert.Equal(t, "héllo", Escape("héllo"))
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "Hello world & more", Strip(`<b>Hello</b> <span foreground="red">world</span> &amp; more`))
	assert.Equal(t, "<b>open", Strip("<b>open"), "malformed markup comes back untouched")
}

func TestParseStyles(t *testing.T) {
	spans, err := Parse(`<b>bold</b><i>it</i><span weight="700" underline="single">x</span>`, lipgloss.NewStyle())
	require.NoError(t, err)
	require.Len(t, spans, 3)

	assert.Equal(t, "bold", spans[0].Text)
	assert.True(t, spans[0].Style.GetBold())
	assert.True(t, spans[1].Style.GetItalic())
	assert.True(t, spans[2].Style.GetBold())
	assert.True(t, spans[2].Style.GetUnderline())
}

func TestParseNested(t *testing.T) {
	spans, err := Parse(`<b>a<i>b</i></b>c`, lipgloss.NewStyle())
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assert.True(t, spans[1].Style.GetBold())
	assert.True(t, spans[1].Style.GetItalic())
	assert.False(t, spans[2].Style.GetBold())
}

func TestParseColors(t *testing.T) {
	spans, err := Parse(`<span foreground="red" background="#00f">c</span>`, lipgloss.NewStyle())
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, lipgloss.Color("#ff0000"), spans[0].Style.GetForeground())
	assert.Equal(t, lipgloss.Color("#00f"), spans[0].Style.GetBackground())
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(`<b>x</i>`, lipgloss.NewStyle())
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Parse(`<b>x`, lipgloss.NewStyle())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRenderFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "<b>x</i>", Render("<b>x</i>", lipgloss.NewStyle()))
}

func TestTextPipeline(t *testing.T) {
	base := lipgloss.NewStyle()
	assert.Equal(t, "line one\nline two", Strip(Text(`<b>line one</b>\nline two`, false, base)))
	assert.Equal(t, "<b>kept</b>", Text(`<b>kept</b>`, true, base))
}
