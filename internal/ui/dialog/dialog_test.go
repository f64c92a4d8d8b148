package dialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

type finished struct {
	called bool
	result DialogResult
	value  interface{}
	err    error
}

func (f *finished) callback(result DialogResult, value interface{}, err error) tea.Cmd {
	f.called = true
	f.result = result
	f.value = value
	f.err = err
	return nil
}

func TestDialogManager_AddDialogCentres(t *testing.T) {
	dm := NewDialogManager(100, 30)
	d := NewEntryDialog("Name", 50, 0, EntryConfig{})
	dm.AddDialog(d, nil)

	width, height, x, _ := dm.GetActiveDialog().GetRect()
	assert.Equal(t, 50, width)
	assert.Equal(t, 0, height, "auto height is kept")
	assert.Equal(t, 25, x)
	assert.True(t, dm.HasDialogs())
}

func TestDialogManager_ShrinksToTerminal(t *testing.T) {
	dm := NewDialogManager(40, 20)
	d := NewEntryDialog("Name", 80, 30, EntryConfig{})
	dm.AddDialog(d, nil)

	width, height, _, _ := d.GetRect()
	assert.Equal(t, 38, width)
	assert.Equal(t, 18, height)

	dm.HandleMsg(tea.WindowSizeMsg{Width: 120, Height: 40})
	w, h := dm.TerminalSize()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}

func TestDialogManager_ConfirmRunsCallbackWithValue(t *testing.T) {
	dm := NewDialogManager(100, 30)
	d := NewEntryDialog("Name", 50, 0, EntryConfig{Initial: "hello"})
	var f finished
	dm.AddDialog(d, f.callback)

	dm.HandleMsg(press(tea.KeyEnter))

	require.True(t, f.called)
	assert.Equal(t, DialogResultConfirm, f.result)
	assert.Equal(t, "hello", f.value)
	assert.NoError(t, f.err)
	assert.False(t, dm.HasDialogs())
}

func TestDialogManager_CancelHasNoValue(t *testing.T) {
	dm := NewDialogManager(100, 30)
	var f finished
	dm.AddDialog(NewEntryDialog("Name", 50, 0, EntryConfig{Initial: "hello"}), f.callback)

	dm.HandleMsg(press(tea.KeyEscape))

	require.True(t, f.called)
	assert.Equal(t, DialogResultCancel, f.result)
	assert.Nil(t, f.value)
}

func TestDialogManager_CloseMsg(t *testing.T) {
	dm := NewDialogManager(100, 30)
	var f finished
	dm.AddDialog(NewProgressDialog("Work", 50, 0, ProgressConfig{}), f.callback)

	msg := Close(DialogResultConfirm)()
	dm.HandleMsg(msg)

	require.True(t, f.called)
	assert.Equal(t, DialogResultConfirm, f.result)
}

func TestDialogManager_StackRestoresFocus(t *testing.T) {
	dm := NewDialogManager(100, 30)
	first := NewMessageDialog("First", 40, 0, MessageConfig{Kind: MessageQuestion})
	first.SetFocusedIndex(1)
	dm.PushDialog(first)

	second := NewMessageDialog("Second", 40, 0, MessageConfig{})
	dm.PushDialog(second)
	assert.False(t, first.IsFocused())
	assert.Equal(t, 1, second.ZIndex())

	popped := dm.PopDialog()
	assert.Same(t, second, popped)
	assert.True(t, first.IsFocused())
	assert.Equal(t, 1, first.FocusedIndex())
}

func TestDialogManager_ViewPlacesDialog(t *testing.T) {
	dm := NewDialogManager(80, 24)
	dm.PushDialog(NewMessageDialog("Greeting", 40, 0, MessageConfig{Text: "hello"}))

	view := dm.View()
	assert.Contains(t, view, "Greeting")
	assert.Contains(t, view, "hello")
}

func TestApplyTheme(t *testing.T) {
	dm := NewDialogManager(100, 30)
	d := NewMessageDialog("Info", 40, 0, MessageConfig{})
	dm.PushDialog(d)
	before := dm.Style.ErrorColor

	ApplyTheme(dm, HighContrastThemeColors())

	assert.NotEqual(t, before, dm.Style.ErrorColor)
	assert.Same(t, dm.Style, d.Style)
}

func TestRenderBorderCarriesTitle(t *testing.T) {
	d := NewBaseDialog("Title", 30, 0, DialogKindMessage)
	out := d.RenderBorder("body")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}

func TestButtonFocus(t *testing.T) {
	assert.Equal(t, -1, buttonFocus(0, 1))
	assert.Equal(t, 0, buttonFocus(1, 1))
	assert.Equal(t, 1, buttonFocus(2, 1))
}

func TestFocusCycling(t *testing.T) {
	d := NewBaseFocusableDialog("", 40, 0, DialogKindForm, 3)
	var seen []int
	d.OnFocusChange(func(i int) tea.Cmd {
		seen = append(seen, i)
		return nil
	})

	d.HandleBaseFocusableKey(press(tea.KeyTab))
	d.HandleBaseFocusableKey(press(tea.KeyTab))
	d.HandleBaseFocusableKey(press(tea.KeyTab))
	d.HandleBaseFocusableKey(press(tea.KeyShiftTab))

	assert.Equal(t, []int{1, 2, 0, 2}, seen)
}

func TestVisibleRows(t *testing.T) {
	assert.Equal(t, 10, VisibleRows(0, 0, 4, 10))
	assert.Equal(t, 16, VisibleRows(20, 0, 4, 10))
	assert.Equal(t, 6, VisibleRows(0, 14, 4, 10))
	assert.Equal(t, 1, VisibleRows(0, 3, 4, 10))
}
