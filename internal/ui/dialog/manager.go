package dialog

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dialogEntry struct {
	dialog           Dialog
	callback         DialogCallback
	previousFocusIdx int
}

// DialogManager manages a stack of dialogs. Only the top dialog receives
// input; closing it restores focus to the one below.
type DialogManager struct {
	dialogs        []dialogEntry
	termWidth      int
	termHeight     int
	activeDialog   int
	Style          *DialogStyle
	positioningCfg PositioningConfig
}

// NewDialogManager creates a new dialog manager
func NewDialogManager(termWidth, termHeight int) *DialogManager {
	return &DialogManager{
		termWidth:      termWidth,
		termHeight:     termHeight,
		activeDialog:   -1,
		Style:          DefaultDialogStyle(),
		positioningCfg: DefaultPositioningConfig(),
	}
}

// PushDialog adds a dialog to the top of the stack without a callback.
func (m *DialogManager) PushDialog(dialog Dialog) {
	m.AddDialog(dialog, nil)
}

// AddDialog adds a dialog with a completion callback.
func (m *DialogManager) AddDialog(dialog Dialog, callback DialogCallback) {
	if dialog == nil {
		return
	}

	dialog.SetZIndex(len(m.dialogs))
	dialog.SetStyle(m.Style)
	m.fit(dialog)

	previousFocusIdx := -1
	if m.activeDialog >= 0 && m.activeDialog < len(m.dialogs) {
		if focusable, ok := m.dialogs[m.activeDialog].dialog.(FocusableDialog); ok {
			previousFocusIdx = focusable.FocusedIndex()
		}
	}
	for i := range m.dialogs {
		m.dialogs[i].dialog.SetFocused(false)
	}

	m.dialogs = append(m.dialogs, dialogEntry{dialog: dialog, callback: callback, previousFocusIdx: previousFocusIdx})
	m.activeDialog = len(m.dialogs) - 1
	dialog.SetFocused(true)
}

// fit shrinks a dialog to the terminal and centres it.
func (m *DialogManager) fit(d Dialog) {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return
	}
	width, height, _, _ := d.GetRect()
	if width <= 0 {
		return
	}
	h := height
	if h <= 0 {
		h = m.positioningCfg.MinDialogHeight
	}
	pos := PositionDialogInBoundsWithConfig(m.termWidth, m.termHeight, width, h, StrategyCenter, m.positioningCfg)
	if height <= 0 {
		pos.Height = 0
	}
	d.SetRect(pos.Width, pos.Height, pos.X, pos.Y)
}

// PopDialog removes the top dialog from the stack
func (m *DialogManager) PopDialog() Dialog {
	return m.popEntry().dialog
}

func (m *DialogManager) popEntry() dialogEntry {
	if len(m.dialogs) == 0 {
		return dialogEntry{}
	}

	entry := m.dialogs[len(m.dialogs)-1]
	m.dialogs = m.dialogs[:len(m.dialogs)-1]

	if len(m.dialogs) == 0 {
		m.activeDialog = -1
		return entry
	}

	m.activeDialog = len(m.dialogs) - 1
	top := m.dialogs[m.activeDialog].dialog
	top.SetFocused(true)
	if focusable, ok := top.(FocusableDialog); ok && entry.previousFocusIdx >= 0 {
		focusable.SetFocusedIndex(entry.previousFocusIdx)
	}
	return entry
}

// GetActiveDialog returns the active dialog
func (m *DialogManager) GetActiveDialog() Dialog {
	if m.activeDialog >= 0 && m.activeDialog < len(m.dialogs) {
		return m.dialogs[m.activeDialog].dialog
	}
	return nil
}

// HasDialogs returns true if there are any dialogs
func (m *DialogManager) HasDialogs() bool {
	return len(m.dialogs) > 0
}

// SetTerminalSize refits every dialog after a resize.
func (m *DialogManager) SetTerminalSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if m.termWidth == width && m.termHeight == height {
		return
	}
	m.termWidth = width
	m.termHeight = height
	for i := range m.dialogs {
		m.fit(m.dialogs[i].dialog)
	}
}

// TerminalSize returns the last known terminal size.
func (m *DialogManager) TerminalSize() (int, int) {
	return m.termWidth, m.termHeight
}

// finish pops the active dialog and runs its callback.
func (m *DialogManager) finish(result DialogResult) tea.Cmd {
	popped := m.popEntry()
	if popped.dialog == nil || popped.callback == nil {
		return nil
	}
	var value interface{}
	var err error
	if result == DialogResultConfirm {
		if provider, ok := popped.dialog.(DialogResultProvider); ok {
			value, err = provider.DialogResultValue()
		}
	}
	return popped.callback(result, value, err)
}

// HandleMsg routes a message: resizes go to every dialog, everything else to
// the active one.
func (m *DialogManager) HandleMsg(msg tea.Msg) tea.Cmd {
	if len(m.dialogs) == 0 {
		return nil
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetTerminalSize(msg.Width, msg.Height)
		for i := range m.dialogs {
			updated, cmd := m.dialogs[i].dialog.Update(msg)
			m.dialogs[i].dialog = updated
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case CloseMsg:
		return m.finish(msg.Result)

	case tea.KeyMsg:
		result, cmd := m.GetActiveDialog().HandleKey(msg)
		cmds = append(cmds, cmd)
		switch result {
		case DialogResultClose, DialogResultCancel, DialogResultConfirm:
			cmds = append(cmds, m.finish(result))
		}
		return tea.Batch(cmds...)
	}

	updated, cmd := m.GetActiveDialog().Update(msg)
	m.dialogs[m.activeDialog].dialog = updated
	return cmd
}

// ApplyStyle restyles every dialog on the stack.
func (m *DialogManager) ApplyStyle(style *DialogStyle) {
	m.Style = style
	for _, entry := range m.dialogs {
		entry.dialog.SetStyle(style)
	}
}

// View renders the active dialog positioned inside the terminal.
func (m *DialogManager) View() string {
	d := m.GetActiveDialog()
	if d == nil {
		return ""
	}
	view := d.View()
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return view
	}

	w, h := lipgloss.Width(view), lipgloss.Height(view)
	x, y := ClampDialogPosition((m.termWidth-w)/2, (m.termHeight-h)/2, w, h, m.termWidth, m.termHeight)

	lines := strings.Split(view, "\n")
	pad := strings.Repeat(" ", x)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Repeat("\n", y) + strings.Join(lines, "\n")
}
