package dialog

// PositioningConfig holds configuration for dialog positioning
type PositioningConfig struct {
	MinDialogWidth  int
	MinDialogHeight int
	Padding         int
}

// DefaultPositioningConfig returns the default positioning configuration
func DefaultPositioningConfig() PositioningConfig {
	return PositioningConfig{
		MinDialogWidth:  20,
		MinDialogHeight: 6,
		Padding:         1,
	}
}

// DialogPosition represents a dialog's position and size
type DialogPosition struct {
	X      int
	Y      int
	Width  int
	Height int
}

// PositioningStrategy defines how dialogs should be positioned
type PositioningStrategy int

const (
	// StrategyCenter positions dialog in the center of the terminal
	StrategyCenter PositioningStrategy = iota
	// StrategyTopCenter positions dialog at top-center of the terminal
	StrategyTopCenter
)

// PositionDialogInBoundsWithConfig sizes and places a dialog inside the
// terminal, shrinking it when the terminal is too small.
func PositionDialogInBoundsWithConfig(termWidth, termHeight, dialogWidth, dialogHeight int, strategy PositioningStrategy, config PositioningConfig) DialogPosition {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}

	width, height := DegradeDialogSize(dialogWidth, dialogHeight, termWidth, termHeight, config)

	x := (termWidth - width) / 2
	y := (termHeight - height) / 2
	if strategy == StrategyTopCenter {
		y = config.Padding
	}
	x, y = ClampDialogPosition(x, y, width, height, termWidth, termHeight)

	return DialogPosition{X: x, Y: y, Width: width, Height: height}
}

// DegradeDialogSize reduces dialog size gracefully when terminal is too small
func DegradeDialogSize(desiredWidth, desiredHeight, termWidth, termHeight int, config PositioningConfig) (int, int) {
	width := clampDimension(desiredWidth, termWidth, config.MinDialogWidth, config.Padding)
	height := clampDimension(desiredHeight, termHeight, config.MinDialogHeight, config.Padding)
	return width, height
}

func clampDimension(desired, available, minimum, padding int) int {
	limit := available - 2*padding
	if limit < minimum {
		// Too small for padding; use whatever is there.
		limit = available
	}
	v := desired
	if v > limit {
		v = limit
	}
	if v < minimum && available >= minimum {
		v = minimum
	}
	if v < 1 {
		v = 1
	}
	return v
}

// ClampDialogPosition ensures the dialog position doesn't overflow terminal bounds
func ClampDialogPosition(x, y, width, height, termWidth, termHeight int) (int, int) {
	if x+width > termWidth {
		x = termWidth - width
	}
	if x < 0 {
		x = 0
	}
	if y+height > termHeight {
		y = termHeight - height
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// IsDialogFullyVisible checks if a dialog at the given position is fully visible
func IsDialogFullyVisible(x, y, width, height, termWidth, termHeight int) bool {
	return x >= 0 && y >= 0 && x+width <= termWidth && y+height <= termHeight
}

// VisibleRows returns how many body rows fit, given the configured content
// height, the terminal height and the rows taken by the dialog's chrome.
func VisibleRows(contentHeight, termHeight, chrome, fallback int) int {
	rows := fallback
	if contentHeight > 0 {
		rows = contentHeight - chrome
	}
	if termHeight > 0 && rows > termHeight-chrome-4 {
		rows = termHeight - chrome - 4
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}
