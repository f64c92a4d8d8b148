package dialog

import (
	"github.com/charmbracelet/lipgloss"
)

// ThemeColors contains all the color definitions for a dialog theme
type ThemeColors struct {
	Border          string
	FocusedBorder   string
	Title           string
	Background      string
	Text            string
	Button          string
	Error           string
	Success         string
	Warning         string
	PlaceholderText string
	HighlightText   string
}

// DefaultThemeColors returns the default theme colors
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		Border:          "#444444",
		FocusedBorder:   "#6D98BA",
		Title:           "#EEEEEE",
		Background:      "#333333",
		Text:            "#DDDDDD",
		Button:          "#6D98BA",
		Error:           "#F7768E",
		Success:         "#9ECE6A",
		Warning:         "#E0AF68",
		PlaceholderText: "#666666",
		HighlightText:   "#00FFFF",
	}
}

// HighContrastThemeColors returns a high contrast theme for accessibility
func HighContrastThemeColors() ThemeColors {
	return ThemeColors{
		Border:          "#FFFFFF",
		FocusedBorder:   "#FFFF00",
		Title:           "#FFFFFF",
		Background:      "#000000",
		Text:            "#FFFFFF",
		Button:          "#FFFF00",
		Error:           "#FF0000",
		Success:         "#00FF00",
		Warning:         "#FFFF00",
		PlaceholderText: "#CCCCCC",
		HighlightText:   "#FFFF00",
	}
}

// StyleFromTheme builds a DialogStyle from theme colours.
func StyleFromTheme(theme ThemeColors) *DialogStyle {
	return &DialogStyle{
		Border:             lipgloss.RoundedBorder(),
		BorderColor:        lipgloss.Color(theme.Border),
		FocusedBorderColor: lipgloss.Color(theme.FocusedBorder),
		TitleColor:         lipgloss.Color(theme.Title),
		BackgroundColor:    lipgloss.Color(theme.Background),
		TextColor:          lipgloss.Color(theme.Text),
		ButtonColor:        lipgloss.Color(theme.Button),
		ErrorColor:         lipgloss.Color(theme.Error),
		SuccessColor:       lipgloss.Color(theme.Success),
		WarningColor:       lipgloss.Color(theme.Warning),
		HighlightColor:     lipgloss.Color(theme.HighlightText),
		PlaceholderColor:   lipgloss.Color(theme.PlaceholderText),
	}
}

// ApplyTheme applies a theme to a dialog manager and all its dialogs
func ApplyTheme(dm *DialogManager, theme ThemeColors) {
	dm.ApplyStyle(StyleFromTheme(theme))
}
