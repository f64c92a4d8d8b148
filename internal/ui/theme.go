package ui

import (
	"github.com/adriangreen/zentui/internal/config"
	"github.com/adriangreen/zentui/internal/ui/dialog"
)

// themeColors resolves the configured theme: the named base palette with
// any explicitly set colours laid over it.
func themeColors(tc config.ThemeConfig) dialog.ThemeColors {
	colors := dialog.DefaultThemeColors()
	if tc.Name == config.ThemeHighContrast {
		colors = dialog.HighContrastThemeColors()
	}

	overrides := []struct {
		value  string
		target *string
	}{
		{tc.Border, &colors.Border},
		{tc.FocusedBorder, &colors.FocusedBorder},
		{tc.Title, &colors.Title},
		{tc.Text, &colors.Text},
		{tc.Button, &colors.Button},
		{tc.Error, &colors.Error},
		{tc.Success, &colors.Success},
		{tc.Warning, &colors.Warning},
		{tc.Highlight, &colors.HighlightText},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}
	return colors
}
