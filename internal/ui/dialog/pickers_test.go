package dialog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.txt", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	return dir
}

func entryNames(entries []fileEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// load runs a directory listing synchronously.
func load(d *FileSelectionDialog, path string) {
	d.Update(d.loadDirectory(path)())
}

func TestParseFileFilter(t *testing.T) {
	f := ParseFileFilter("Go files | *.go *.mod")
	assert.Equal(t, "Go files", f.Name)
	assert.Equal(t, []string{"*.go", "*.mod"}, f.Patterns)
	assert.True(t, f.Match("main.go"))
	assert.False(t, f.Match("main.c"))

	bare := ParseFileFilter("*.txt")
	assert.Equal(t, "*.txt", bare.Name)
	assert.True(t, bare.Match("notes.txt"))

	assert.True(t, FileFilter{}.Match("anything"))
}

func TestReadDirectoryEntries(t *testing.T) {
	dir := fileTree(t)

	entries, err := readDirectoryEntries(dir, ParseFileFilter("Go | *.go"), false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "sub", "a.go"}, entryNames(entries))

	entries, err = readDirectoryEntries(dir, FileFilter{}, true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "sub", ".hidden", "a.go", "b.txt"}, entryNames(entries))

	entries, err = readDirectoryEntries(dir, FileFilter{}, false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"..", "sub"}, entryNames(entries))

	_, err = readDirectoryEntries(filepath.Join(dir, "a.go"), FileFilter{}, false, false)
	assert.Error(t, err)
}

func TestFileSelection_OpenFile(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + string(os.PathSeparator)})
	load(d, d.CurrentPath())

	d.HandleKey(press(tea.KeyDown))
	d.HandleKey(press(tea.KeyDown))
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)

	value, err := d.DialogResultValue()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.go")}, value)
}

func TestFileSelection_PreselectsFilename(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: filepath.Join(dir, "b.txt")})
	load(d, d.CurrentPath())

	e, ok := d.current()
	require.True(t, ok)
	assert.Equal(t, "b.txt", e.Name)
}

func TestFileSelection_EnterOnDirectoryNavigates(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/"})
	load(d, d.CurrentPath())

	d.HandleKey(press(tea.KeyDown))
	result, cmd := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultNone, result)
	require.NotNil(t, cmd)
	d.Update(cmd())
	assert.Equal(t, filepath.Join(dir, "sub"), d.CurrentPath())

	_, cmd = d.HandleKey(press(tea.KeyBackspace))
	d.Update(cmd())
	assert.Equal(t, dir, d.CurrentPath())
}

func TestFileSelection_Multiple(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/", Multiple: true})
	load(d, d.CurrentPath())

	d.HandleKey(press(tea.KeyDown))
	d.HandleKey(press(tea.KeyDown))
	d.HandleKey(space)
	d.HandleKey(press(tea.KeyDown))
	d.HandleKey(space)
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)

	value, _ := d.DialogResultValue()
	assert.Equal(t, []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "b.txt")}, value)
}

func TestFileSelection_Directory(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/", Directory: true})
	load(d, d.CurrentPath())
	assert.Equal(t, []string{"..", "sub"}, entryNames(d.entries))

	d.HandleKey(press(tea.KeyDown))
	d.HandleKey(press(tea.KeyTab))
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)

	value, _ := d.DialogResultValue()
	assert.Equal(t, []string{filepath.Join(dir, "sub")}, value)
}

func TestFileSelection_SaveConfirmsOverwrite(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{
		Filename:         filepath.Join(dir, "a.go"),
		Save:             true,
		ConfirmOverwrite: true,
	})
	load(d, d.CurrentPath())

	d.HandleKey(press(tea.KeyTab))
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultNone, result)
	assert.True(t, d.confirming)
	assert.Contains(t, d.View(), "Overwrite?")

	result, _ = d.HandleKey(typeText("y"))
	assert.Equal(t, DialogResultConfirm, result)
	value, _ := d.DialogResultValue()
	assert.Equal(t, []string{filepath.Join(dir, "a.go")}, value)
}

func TestFileSelection_SaveNewFile(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/", Save: true, ConfirmOverwrite: true})
	load(d, d.CurrentPath())

	d.HandleKey(press(tea.KeyTab))
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultNone, result, "an empty name is refused")

	d.nameInput.SetValue("new.txt")
	result, _ = d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)
	value, _ := d.DialogResultValue()
	assert.Equal(t, []string{filepath.Join(dir, "new.txt")}, value)
}

type fakePrefs struct {
	marks   []string
	mode    string
	palette []string
}

func (p *fakePrefs) Bookmarks(context.Context) ([]string, error) { return p.marks, nil }

func (p *fakePrefs) SetBookmarks(_ context.Context, marks []string) error {
	p.marks = marks
	return nil
}

func (p *fakePrefs) ViewMode(context.Context) (string, error) { return p.mode, nil }

func (p *fakePrefs) SetViewMode(_ context.Context, mode string) error {
	p.mode = mode
	return nil
}

func (p *fakePrefs) Palette(context.Context) ([]string, error) { return p.palette, nil }

func (p *fakePrefs) SetPalette(_ context.Context, colors []string) error {
	p.palette = colors
	return nil
}

func TestFileSelection_PersistsPreferences(t *testing.T) {
	dir := fileTree(t)
	prefs := &fakePrefs{mode: FileViewList}
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/", Prefs: prefs})
	load(d, d.CurrentPath())
	d.Update(d.loadPrefs()())

	_, cmd := d.HandleKey(typeText("b"))
	require.NotNil(t, cmd)
	d.Update(cmd())
	assert.Equal(t, []string{dir}, prefs.marks)

	_, cmd = d.HandleKey(typeText("v"))
	d.Update(cmd())
	assert.Equal(t, FileViewDetails, prefs.mode)
	assert.Contains(t, d.View(), "B")

	_, cmd = d.HandleKey(typeText("b"))
	d.Update(cmd())
	assert.Empty(t, prefs.marks)
}

func TestFileSelection_BookmarkJump(t *testing.T) {
	dir := fileTree(t)
	sub := filepath.Join(dir, "sub")
	prefs := &fakePrefs{marks: []string{sub}}
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/", Prefs: prefs})
	load(d, d.CurrentPath())
	d.Update(d.loadPrefs()())

	d.HandleKey(typeText("g"))
	require.True(t, d.showMarks)
	_, cmd := d.HandleKey(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	d.Update(cmd())
	assert.Equal(t, sub, d.CurrentPath())
}

func TestFileSelection_HiddenToggle(t *testing.T) {
	dir := fileTree(t)
	d := NewFileSelectionDialog("F", 80, 0, FileSelectionConfig{Filename: dir + "/"})
	load(d, d.CurrentPath())
	assert.NotContains(t, entryNames(d.entries), ".hidden")

	_, cmd := d.HandleKey(typeText("."))
	d.Update(cmd())
	assert.Contains(t, entryNames(d.entries), ".hidden")
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex())

	c, err = ParseColor("rgb(0, 128, 255)")
	require.NoError(t, err)
	assert.Equal(t, "#0080ff", c.Hex())

	c, err = ParseColor("Blue")
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", c.Hex())

	_, err = ParseColor("rgb(300,0,0)")
	assert.Error(t, err)
	_, err = ParseColor("nope")
	assert.Error(t, err)
}

func TestColorDialog_NudgeAndPick(t *testing.T) {
	d := NewColorDialog("C", 60, 0, ColorConfig{Color: "#ff0000"})
	assert.Equal(t, "#ff0000", d.Color().Hex())

	d.HandleKey(typeText("h"))
	h, s, v := d.Color().Hsv()
	assert.InDelta(t, 10, h, 0.5)
	assert.InDelta(t, 1, s, 0.01)
	assert.InDelta(t, 1, v, 0.01)

	d.HandleKey(press(tea.KeyRight))
	assert.Equal(t, basicColors[1], d.Color().Hex())
	d.HandleKey(press(tea.KeyDown))
	assert.Equal(t, basicColors[1+paletteColumns], d.Color().Hex())

	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)
}

func TestColorDialog_HexEntry(t *testing.T) {
	d := NewColorDialog("C", 60, 0, ColorConfig{})
	d.HandleKey(press(tea.KeyTab))
	d.hex.SetValue("#00ff00")
	result, _ := d.HandleKey(press(tea.KeyEnter))
	assert.Equal(t, DialogResultConfirm, result)
	assert.Equal(t, "#00ff00", d.Color().Hex())
}

func TestColorDialog_CustomPalette(t *testing.T) {
	prefs := &fakePrefs{}
	d := NewColorDialog("C", 60, 0, ColorConfig{Color: "#123456", ShowPalette: true, Prefs: prefs})
	cmd := d.Init()
	require.NotNil(t, cmd)
	d.Update(cmd())

	_, cmd = d.HandleKey(typeText("a"))
	require.NotNil(t, cmd)
	d.Update(cmd())
	require.Len(t, prefs.palette, customPaletteSize)
	assert.Equal(t, "#123456", prefs.palette[0])
	assert.Equal(t, "#ffffff", prefs.palette[1])
	assert.Len(t, d.swatches(), len(basicColors)+customPaletteSize)
}

func TestParseFontName(t *testing.T) {
	family, style, size := ParseFontName("DejaVu Sans Bold Italic 14")
	assert.Equal(t, "DejaVu Sans", family)
	assert.Equal(t, "Bold Italic", style)
	assert.Equal(t, 14, size)

	family, style, size = ParseFontName("Monospace")
	assert.Equal(t, "Monospace", family)
	assert.Equal(t, "Regular", style)
	assert.Equal(t, 12, size)
}

func TestFontDialog(t *testing.T) {
	d := NewFontDialog("F", 60, 0, FontConfig{
		Families: []string{"Monospace", "Sans", "Serif"},
		Pattern:  "Serif Bold 10",
	})
	assert.Equal(t, "Serif Bold 10", d.Font())

	d.HandleKey(press(tea.KeyTab))
	d.HandleKey(press(tea.KeyRight))
	assert.Equal(t, "Serif Italic 10", d.Font())

	d.HandleKey(press(tea.KeyTab))
	d.HandleKey(press(tea.KeyUp))
	assert.Equal(t, "Serif Italic 11", d.Font())

	d.HandleKey(press(tea.KeyShiftTab))
	d.HandleKey(press(tea.KeyShiftTab))
	d.HandleKey(typeText("/"))
	d.HandleKey(typeText("mono"))
	d.HandleKey(press(tea.KeyEnter))
	value, _ := d.DialogResultValue()
	assert.Equal(t, "Monospace Italic 11", value)
}
