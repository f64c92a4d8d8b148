// Package args classifies zenity-style command lines: it splits the
// --key=value and --key value forms into tokens, selects the dialog type and
// fills the option set that the dialog builders read.
package args

// DialogType is the mutually exclusive top-level mode.
type DialogType int

const (
	TypeNone DialogType = iota
	TypeCalendar
	TypeEntry
	TypeError
	TypeInfo
	TypeFileSelection
	TypeList
	TypeNotification
	TypeProgress
	TypeQuestion
	TypeWarning
	TypeScale
	TypeTextInfo
	TypeColorSelection
	TypeFontSelection
	TypePassword
	TypeForms
)

var typeNames = map[DialogType]string{
	TypeCalendar:       "calendar",
	TypeEntry:          "entry",
	TypeError:          "error",
	TypeInfo:           "info",
	TypeFileSelection:  "file-selection",
	TypeList:           "list",
	TypeNotification:   "notification",
	TypeProgress:       "progress",
	TypeQuestion:       "question",
	TypeWarning:        "warning",
	TypeScale:          "scale",
	TypeTextInfo:       "text-info",
	TypeColorSelection: "color-selection",
	TypeFontSelection:  "font-selection",
	TypePassword:       "password",
	TypeForms:          "forms",
}

// AllTypes lists the dialog types in help order.
var AllTypes = []DialogType{
	TypeCalendar, TypeEntry, TypeError, TypeInfo, TypeFileSelection, TypeList,
	TypeNotification, TypeProgress, TypeQuestion, TypeWarning, TypeScale,
	TypeTextInfo, TypeColorSelection, TypeFontSelection, TypePassword, TypeForms,
}

// String returns the flag name without dashes.
func (t DialogType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "none"
}

// Flag returns the command-line flag selecting t.
func (t DialogType) Flag() string {
	return "--" + t.String()
}

// IsMessage reports whether t is one of the plain message dialogs.
func (t DialogType) IsMessage() bool {
	switch t {
	case TypeError, TypeInfo, TypeQuestion, TypeWarning:
		return true
	}
	return false
}

// General holds the flags every dialog type accepts.
type General struct {
	Title       string
	WindowIcon  string
	Width       int
	Height      int
	Timeout     int // seconds, 0 disables
	OKLabel     string
	CancelLabel string
	Modal       bool
	Attach      uint64
	AttachSet   bool
}

// Common holds flags shared by several dialog types.
type Common struct {
	Text         string
	Separator    string
	RowSeparator string
	Filename     string
	Editable     bool
	Multiple     bool
	NoMarkup     bool
}

// MessageOptions configures info, warning, error and question dialogs.
type MessageOptions struct {
	IconName      string
	NoWrap        bool
	Ellipsize     bool
	DefaultCancel bool
}

// CalendarOptions configures the calendar dialog. Zero fields mean today.
type CalendarOptions struct {
	Day        int
	Month      int
	Year       int
	DateFormat string
}

// EntryMode is the input sub-mode of the entry dialog.
type EntryMode int

const (
	EntryText EntryMode = iota
	EntryInt
	EntryFloat
)

// EntryOptions configures the entry dialog.
type EntryOptions struct {
	EntryText string
	HideText  bool
	Mode      EntryMode
	Int       int64
	Float     float64
}

// FileOptions configures the file selection dialog.
type FileOptions struct {
	Directory        bool
	Save             bool
	ConfirmOverwrite bool
	Filters          []string
}

// ListOptions configures the list dialog.
type ListOptions struct {
	Columns     []string
	Checklist   bool
	Radiolist   bool
	HideHeader  bool
	MidSearch   bool
	PrintColumn string
	HideColumns []int // 1-based
}

// NotificationOptions configures the notification dialog.
type NotificationOptions struct {
	Listen bool
}

// ProgressOptions configures the progress dialog.
type ProgressOptions struct {
	Percentage    float64
	AutoClose     bool
	AutoKill      bool
	Pulsate       bool
	NoCancel      bool
	TimeRemaining bool
}

// ScaleOptions configures the scale dialog.
type ScaleOptions struct {
	Value        int
	ValueSet     bool
	Min          int
	Max          int
	Step         int
	PrintPartial bool
	HideValue    bool
}

// TextInfoOptions configures the text-info dialog.
type TextInfoOptions struct {
	Checkbox   string
	AutoScroll bool
	Font       string
}

// ColorOptions configures the colour selection dialog.
type ColorOptions struct {
	Color       string
	ShowPalette bool
}

// FontOptions configures the font selection dialog.
type FontOptions struct {
	Pattern string
	Sample  string
}

// PasswordOptions configures the password dialog.
type PasswordOptions struct {
	Username bool
}

// FormFieldKind is the widget kind of a forms field.
type FormFieldKind int

const (
	FieldEntry FormFieldKind = iota
	FieldPassword
	FieldCalendar
	FieldList
	FieldCombo
	FieldCheckbox
)

// FormField is one field of a forms dialog, in declaration order.
type FormField struct {
	Kind    FormFieldKind
	Label   string
	Values  []string // list rows (flattened cells) or combo entries
	Columns []string // list column headers
}

// FormsOptions configures the forms dialog.
type FormsOptions struct {
	Fields     []FormField
	ShowHeader bool
	DateFormat string
}

// Diagnostic is a non-fatal note about the command line.
type Diagnostic struct {
	Flag   string
	Reason string
}

// Options is the fully classified command line.
type Options struct {
	Type    DialogType
	General General
	Common  Common

	Message      MessageOptions
	Calendar     CalendarOptions
	Entry        EntryOptions
	File         FileOptions
	List         ListOptions
	Notification NotificationOptions
	Progress     ProgressOptions
	Scale        ScaleOptions
	TextInfo     TextInfoOptions
	Color        ColorOptions
	Font         FontOptions
	Password     PasswordOptions
	Forms        FormsOptions

	// Positional keeps bare arguments in order (list rows).
	Positional []string
	// Unknown records unrecognised or misplaced flags.
	Unknown []Diagnostic

	// Help is the requested help group, empty when no help was asked for.
	Help    string
	Version bool
}

// DefaultSeparator joins output cells, rows and form fields.
const DefaultSeparator = "|"

func defaultOptions() *Options {
	return &Options{
		Common: Common{
			Separator: DefaultSeparator,
		},
		Scale: ScaleOptions{
			Min:  0,
			Max:  100,
			Step: 1,
		},
	}
}

// CellSeparator returns the separator between the cells of one row.
func (o *Options) CellSeparator() string {
	return o.Common.Separator
}

// RowSeparatorFor returns the separator between output rows. Without
// --row-separator a list reuses --separator and a forms list uses a comma.
func (o *Options) RowSeparatorFor(t DialogType) string {
	if o.Common.RowSeparator != "" {
		return o.Common.RowSeparator
	}
	if t == TypeForms {
		return ","
	}
	return o.Common.Separator
}
