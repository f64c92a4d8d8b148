package dialog

import (
	"github.com/charmbracelet/lipgloss"
)

// renderButtons draws a centred button row. focused is the index of the
// focused button or -1.
func renderButtons(style *DialogStyle, width int, labels []string, focused int) string {
	return renderButtonRow(style, width, labels, focused, nil)
}

// renderButtonRow is renderButtons with some buttons greyed out; a nil
// enabled func enables every button.
func renderButtonRow(style *DialogStyle, width int, labels []string, focused int, enabled func(int) bool) string {
	rendered := make([]string, 0, len(labels))
	for i, label := range labels {
		s := lipgloss.NewStyle().Padding(0, 2).Foreground(style.ButtonColor)
		text := "[ " + label + " ]"
		switch {
		case enabled != nil && !enabled(i):
			s = s.Foreground(style.PlaceholderColor).Faint(true)
		case i == focused:
			s = s.Bold(true).Reverse(true)
		}
		rendered = append(rendered, s.Render(text))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		PaddingTop(1).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, rendered...))
}

// okCancel returns the label row for the dialog's buttons.
func (d BaseDialog) okCancel(withCancel bool) []string {
	if withCancel {
		return []string{d.okLabel, d.cancelLabel}
	}
	return []string{d.okLabel}
}

// buttonFocus maps a focus index to a button index, given how many content
// elements precede the buttons.
func buttonFocus(focusedIndex, contentElements int) int {
	if focusedIndex < contentElements {
		return -1
	}
	return focusedIndex - contentElements
}
