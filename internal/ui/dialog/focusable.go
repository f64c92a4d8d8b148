package dialog

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// FocusableDialog is a dialog with several focusable elements
type FocusableDialog interface {
	Dialog
	FocusNext() tea.Cmd
	FocusPrev() tea.Cmd
	FocusedIndex() int
	SetFocusedIndex(index int) tea.Cmd
	NumFocusableElements() int
}

// BaseFocusableDialog cycles focus over numElements elements. By convention
// the last one or two elements are the OK and Cancel buttons.
type BaseFocusableDialog struct {
	BaseDialog
	focusedIndex int
	numElements  int
	onFocus      func(index int) tea.Cmd
}

// NewBaseFocusableDialog creates a new base focusable dialog
func NewBaseFocusableDialog(title string, width, height int, kind DialogKind, numElements int) BaseFocusableDialog {
	return BaseFocusableDialog{
		BaseDialog:  NewBaseDialog(title, width, height, kind),
		numElements: numElements,
	}
}

// OnFocusChange registers fn to run whenever focus moves.
func (d *BaseFocusableDialog) OnFocusChange(fn func(index int) tea.Cmd) {
	d.onFocus = fn
}

func (d BaseFocusableDialog) FocusedIndex() int { return d.focusedIndex }

// SetFocusedIndex sets the focused element by index
func (d *BaseFocusableDialog) SetFocusedIndex(index int) tea.Cmd {
	if index < 0 || index >= d.numElements {
		return nil
	}
	d.focusedIndex = index
	if d.onFocus != nil {
		return d.onFocus(index)
	}
	return nil
}

// SetNumFocusableElements changes the element count, keeping focus in range.
func (d *BaseFocusableDialog) SetNumFocusableElements(n int) {
	d.numElements = n
	if d.focusedIndex >= n {
		d.focusedIndex = n - 1
	}
	if d.focusedIndex < 0 {
		d.focusedIndex = 0
	}
}

// FocusNext focuses the next element in the dialog
func (d *BaseFocusableDialog) FocusNext() tea.Cmd {
	if d.numElements == 0 {
		return nil
	}
	return d.SetFocusedIndex((d.focusedIndex + 1) % d.numElements)
}

// FocusPrev focuses the previous element in the dialog
func (d *BaseFocusableDialog) FocusPrev() tea.Cmd {
	if d.numElements == 0 {
		return nil
	}
	return d.SetFocusedIndex((d.focusedIndex - 1 + d.numElements) % d.numElements)
}

func (d BaseFocusableDialog) NumFocusableElements() int { return d.numElements }

// HandleBaseFocusableKey handles escape and tab cycling.
func (d *BaseFocusableDialog) HandleBaseFocusableKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	result, cmd := d.HandleBaseKey(msg)
	if result != DialogResultNone {
		return result, cmd
	}

	switch {
	case key.Matches(msg, Keys.Next):
		return DialogResultNone, d.FocusNext()
	case key.Matches(msg, Keys.Prev):
		return DialogResultNone, d.FocusPrev()
	}
	return DialogResultNone, nil
}
