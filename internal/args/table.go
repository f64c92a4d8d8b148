package args

import (
	"strconv"
	"strings"

	"github.com/adriangreen/zentui/internal/output"
)

// flagSpec describes one recognised flag. A nil types slice marks a general
// flag accepted by every dialog type.
type flagSpec struct {
	name       string
	types      []DialogType
	takesValue bool
	repeatable bool
	usage      string
	apply      func(o *Options, name, value string) error
}

var (
	messageTypes = []DialogType{TypeError, TypeInfo, TypeQuestion, TypeWarning}
	textTypes    = []DialogType{
		TypeCalendar, TypeEntry, TypeError, TypeInfo, TypeList, TypeNotification,
		TypeProgress, TypeQuestion, TypeWarning, TypeScale, TypeForms,
	}
)

func only(t ...DialogType) []DialogType { return t }

func setString(dst func(*Options) *string) func(*Options, string, string) error {
	return func(o *Options, _, v string) error {
		*dst(o) = v
		return nil
	}
}

func setBool(dst func(*Options) *bool) func(*Options, string, string) error {
	return func(o *Options, _, _ string) error {
		*dst(o) = true
		return nil
	}
}

func setInt(dst func(*Options) *int) func(*Options, string, string) error {
	return func(o *Options, name, v string) error {
		n, err := parseInt(name, v)
		if err != nil {
			return err
		}
		*dst(o) = n
		return nil
	}
}

func parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, usageErrorf(name, v, "not an integer")
	}
	return n, nil
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, usageErrorf(name, v, "not a number")
	}
	return f, nil
}

// splitValues splits a forms value list on '|'.
func splitValues(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, "|")
}

func addField(kind FormFieldKind) func(*Options, string, string) error {
	return func(o *Options, _, v string) error {
		o.Forms.Fields = append(o.Forms.Fields, FormField{Kind: kind, Label: v})
		return nil
	}
}

// lastField returns the most recent forms field of the given kind.
func lastField(o *Options, name string, kinds ...FormFieldKind) (*FormField, error) {
	for i := len(o.Forms.Fields) - 1; i >= 0; i-- {
		for _, k := range kinds {
			if o.Forms.Fields[i].Kind == k {
				return &o.Forms.Fields[i], nil
			}
		}
	}
	return nil, usageErrorf(name, "", "no matching field declared before it")
}

var generalFlags = []flagSpec{
	{name: "title", takesValue: true, usage: "Set the dialog `TITLE`",
		apply: setString(func(o *Options) *string { return &o.General.Title })},
	{name: "window-icon", takesValue: true, usage: "Set the window `ICONPATH`",
		apply: setString(func(o *Options) *string { return &o.General.WindowIcon })},
	{name: "width", takesValue: true, usage: "Set the width in cells",
		apply: setInt(func(o *Options) *int { return &o.General.Width })},
	{name: "height", takesValue: true, usage: "Set the height in cells",
		apply: setInt(func(o *Options) *int { return &o.General.Height })},
	{name: "timeout", takesValue: true, usage: "Set the dialog timeout in `SECONDS`",
		apply: setInt(func(o *Options) *int { return &o.General.Timeout })},
	{name: "ok-label", takesValue: true, usage: "Set the label of the OK button",
		apply: setString(func(o *Options) *string { return &o.General.OKLabel })},
	{name: "cancel-label", takesValue: true, usage: "Set the label of the Cancel button",
		apply: setString(func(o *Options) *string { return &o.General.CancelLabel })},
	{name: "modal", usage: "Set the modal hint",
		apply: setBool(func(o *Options) *bool { return &o.General.Modal })},
	{name: "attach", takesValue: true, usage: "Set the parent window to attach to",
		apply: func(o *Options, name, v string) error {
			id, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
			if err != nil {
				return usageErrorf(name, v, "not a window id")
			}
			o.General.Attach = id
			o.General.AttachSet = true
			return nil
		}},
}

var typeFlags = []flagSpec{
	// shared
	{name: "text", types: textTypes, takesValue: true, usage: "Set the dialog `TEXT`",
		apply: setString(func(o *Options) *string { return &o.Common.Text })},
	{name: "no-markup", types: messageTypes, usage: "Do not enable text markup",
		apply: setBool(func(o *Options) *bool { return &o.Common.NoMarkup })},
	{name: "filename", types: only(TypeFileSelection, TypeTextInfo), takesValue: true, usage: "Set the `FILENAME`",
		apply: setString(func(o *Options) *string { return &o.Common.Filename })},
	{name: "multiple", types: only(TypeFileSelection, TypeList), usage: "Allow multiple items to be selected",
		apply: setBool(func(o *Options) *bool { return &o.Common.Multiple })},
	{name: "editable", types: only(TypeList, TypeTextInfo), usage: "Allow changes to text",
		apply: setBool(func(o *Options) *bool { return &o.Common.Editable })},
	{name: "separator", types: only(TypeFileSelection, TypeList, TypeForms), takesValue: true, usage: "Set output `SEPARATOR` character",
		apply: setString(func(o *Options) *string { return &o.Common.Separator })},
	{name: "row-separator", types: only(TypeList, TypeForms), takesValue: true, usage: "Set output `SEPARATOR` between rows",
		apply: setString(func(o *Options) *string { return &o.Common.RowSeparator })},

	// calendar
	{name: "day", types: only(TypeCalendar), takesValue: true, usage: "Set the calendar `DAY`",
		apply: setInt(func(o *Options) *int { return &o.Calendar.Day })},
	{name: "month", types: only(TypeCalendar), takesValue: true, usage: "Set the calendar `MONTH`",
		apply: setInt(func(o *Options) *int { return &o.Calendar.Month })},
	{name: "year", types: only(TypeCalendar), takesValue: true, usage: "Set the calendar `YEAR`",
		apply: setInt(func(o *Options) *int { return &o.Calendar.Year })},
	{name: "date-format", types: only(TypeCalendar), takesValue: true, usage: "Set the format for the returned date, e.g. `yyyy-MM-dd`",
		apply: setString(func(o *Options) *string { return &o.Calendar.DateFormat })},

	// entry
	{name: "entry-text", types: only(TypeEntry), takesValue: true, usage: "Set the entry `TEXT`",
		apply: setString(func(o *Options) *string { return &o.Entry.EntryText })},
	{name: "hide-text", types: only(TypeEntry), usage: "Hide the entry text",
		apply: setBool(func(o *Options) *bool { return &o.Entry.HideText })},
	{name: "int", types: only(TypeEntry), takesValue: true, usage: "Ask for an integer, starting at `VALUE`",
		apply: func(o *Options, name, v string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return usageErrorf(name, v, "not an integer")
			}
			o.Entry.Mode = EntryInt
			o.Entry.Int = n
			return nil
		}},
	{name: "float", types: only(TypeEntry), takesValue: true, usage: "Ask for a number, starting at `VALUE`",
		apply: func(o *Options, name, v string) error {
			f, err := parseFloat(name, v)
			if err != nil {
				return err
			}
			o.Entry.Mode = EntryFloat
			o.Entry.Float = f
			return nil
		}},

	// message dialogs
	{name: "icon-name", types: messageTypes, takesValue: true, usage: "Set the dialog `ICON-NAME`",
		apply: setString(func(o *Options) *string { return &o.Message.IconName })},
	{name: "no-wrap", types: messageTypes, usage: "Do not enable text wrapping",
		apply: setBool(func(o *Options) *bool { return &o.Message.NoWrap })},
	{name: "ellipsize", types: messageTypes, usage: "Truncate overlong text with an ellipsis",
		apply: setBool(func(o *Options) *bool { return &o.Message.Ellipsize })},
	{name: "default-cancel", types: only(TypeQuestion), usage: "Give Cancel button focus by default",
		apply: setBool(func(o *Options) *bool { return &o.Message.DefaultCancel })},

	// file selection
	{name: "directory", types: only(TypeFileSelection), usage: "Activate directory-only selection",
		apply: setBool(func(o *Options) *bool { return &o.File.Directory })},
	{name: "save", types: only(TypeFileSelection), usage: "Activate save mode",
		apply: setBool(func(o *Options) *bool { return &o.File.Save })},
	{name: "confirm-overwrite", types: only(TypeFileSelection), usage: "Confirm file selection if filename already exists",
		apply: setBool(func(o *Options) *bool { return &o.File.ConfirmOverwrite })},
	{name: "file-filter", types: only(TypeFileSelection), takesValue: true, repeatable: true,
		usage: "Set a filename filter, e.g. `'NAME | *.go *.txt'`",
		apply: func(o *Options, _, v string) error {
			o.File.Filters = append(o.File.Filters, v)
			return nil
		}},

	// list
	{name: "column", types: only(TypeList), takesValue: true, repeatable: true, usage: "Set the column `HEADER`",
		apply: func(o *Options, _, v string) error {
			o.List.Columns = append(o.List.Columns, v)
			return nil
		}},
	{name: "checklist", types: only(TypeList), usage: "Use check boxes for the first column",
		apply: setBool(func(o *Options) *bool { return &o.List.Checklist })},
	{name: "radiolist", types: only(TypeList), usage: "Use radio buttons for the first column",
		apply: setBool(func(o *Options) *bool { return &o.List.Radiolist })},
	{name: "print-column", types: only(TypeList), takesValue: true, usage: "Print a specific `NUMBER` column, or ALL",
		apply: func(o *Options, name, v string) error {
			if _, err := output.ParseColumnSelector(v); err != nil {
				return usageErrorf(name, v, "%v", err)
			}
			o.List.PrintColumn = v
			return nil
		}},
	{name: "hide-column", types: only(TypeList), takesValue: true, usage: "Hide a specific `NUMBER` column, comma separated",
		apply: func(o *Options, name, v string) error {
			for _, part := range strings.Split(v, ",") {
				n, err := parseInt(name, part)
				if err != nil {
					return err
				}
				if n < 1 {
					return usageErrorf(name, v, "columns are numbered from 1")
				}
				o.List.HideColumns = append(o.List.HideColumns, n)
			}
			return nil
		}},
	{name: "hide-header", types: only(TypeList), usage: "Hide the column headers",
		apply: setBool(func(o *Options) *bool { return &o.List.HideHeader })},
	{name: "mid-search", types: only(TypeList), usage: "Match the filter anywhere in a row, not only at the start",
		apply: setBool(func(o *Options) *bool { return &o.List.MidSearch })},

	// notification
	{name: "listen", types: only(TypeNotification), usage: "Listen for commands on stdin",
		apply: setBool(func(o *Options) *bool { return &o.Notification.Listen })},

	// progress
	{name: "percentage", types: only(TypeProgress), takesValue: true, usage: "Set the initial `PERCENTAGE`",
		apply: func(o *Options, name, v string) error {
			f, err := parseFloat(name, v)
			if err != nil {
				return err
			}
			o.Progress.Percentage = f
			return nil
		}},
	{name: "auto-close", types: only(TypeProgress), usage: "Close the dialog when 100% has been reached",
		apply: setBool(func(o *Options) *bool { return &o.Progress.AutoClose })},
	{name: "auto-kill", types: only(TypeProgress), usage: "Kill the parent process if Cancel is pressed",
		apply: setBool(func(o *Options) *bool { return &o.Progress.AutoKill })},
	{name: "pulsate", types: only(TypeProgress), usage: "Pulsate the progress bar",
		apply: setBool(func(o *Options) *bool { return &o.Progress.Pulsate })},
	{name: "no-cancel", types: only(TypeProgress), usage: "Hide the Cancel button",
		apply: setBool(func(o *Options) *bool { return &o.Progress.NoCancel })},
	{name: "time-remaining", types: only(TypeProgress), usage: "Estimate the time remaining",
		apply: setBool(func(o *Options) *bool { return &o.Progress.TimeRemaining })},

	// scale
	{name: "value", types: only(TypeScale), takesValue: true, usage: "Set the initial `VALUE`",
		apply: func(o *Options, name, v string) error {
			n, err := parseInt(name, v)
			if err != nil {
				return err
			}
			o.Scale.Value, o.Scale.ValueSet = n, true
			return nil
		}},
	{name: "min-value", types: only(TypeScale), takesValue: true, usage: "Set the minimum `VALUE`",
		apply: setInt(func(o *Options) *int { return &o.Scale.Min })},
	{name: "max-value", types: only(TypeScale), takesValue: true, usage: "Set the maximum `VALUE`",
		apply: setInt(func(o *Options) *int { return &o.Scale.Max })},
	{name: "step", types: only(TypeScale), takesValue: true, usage: "Set the step `SIZE`",
		apply: setInt(func(o *Options) *int { return &o.Scale.Step })},
	{name: "print-partial", types: only(TypeScale), usage: "Print partial values",
		apply: setBool(func(o *Options) *bool { return &o.Scale.PrintPartial })},
	{name: "hide-value", types: only(TypeScale), usage: "Hide the value",
		apply: setBool(func(o *Options) *bool { return &o.Scale.HideValue })},

	// text-info
	{name: "checkbox", types: only(TypeTextInfo), takesValue: true, usage: "Enable an \"I read and agree\" `TEXT` checkbox",
		apply: setString(func(o *Options) *string { return &o.TextInfo.Checkbox })},
	{name: "auto-scroll", types: only(TypeTextInfo), usage: "Auto scroll the text to the end",
		apply: setBool(func(o *Options) *bool { return &o.TextInfo.AutoScroll })},
	{name: "font", types: only(TypeTextInfo), takesValue: true, usage: "Set the text `FONT`",
		apply: setString(func(o *Options) *string { return &o.TextInfo.Font })},

	// color-selection
	{name: "color", types: only(TypeColorSelection), takesValue: true, usage: "Set the initial `COLOR`",
		apply: setString(func(o *Options) *string { return &o.Color.Color })},
	{name: "show-palette", types: only(TypeColorSelection), usage: "Show the palette",
		apply: setBool(func(o *Options) *bool { return &o.Color.ShowPalette })},

	// font-selection
	{name: "pattern", types: only(TypeFontSelection), takesValue: true, usage: "Set the initial font `PATTERN`",
		apply: setString(func(o *Options) *string { return &o.Font.Pattern })},
	{name: "sample", types: only(TypeFontSelection), takesValue: true, usage: "Set the sample `TEXT`",
		apply: setString(func(o *Options) *string { return &o.Font.Sample })},

	// password
	{name: "username", types: only(TypePassword), usage: "Display the username option",
		apply: setBool(func(o *Options) *bool { return &o.Password.Username })},

	// forms
	{name: "add-entry", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new entry `FIELDNAME`",
		apply: addField(FieldEntry)},
	{name: "add-password", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new password `FIELDNAME`",
		apply: addField(FieldPassword)},
	{name: "add-calendar", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new calendar `FIELDNAME`",
		apply: addField(FieldCalendar)},
	{name: "add-list", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new list `FIELDNAME`",
		apply: addField(FieldList)},
	{name: "add-combo", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new combo box `FIELDNAME`",
		apply: addField(FieldCombo)},
	{name: "add-checkbox", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Add a new checkbox `FIELDNAME`",
		apply: addField(FieldCheckbox)},
	{name: "list-values", types: only(TypeForms), takesValue: true, repeatable: true, usage: "List `VALUES` for the last list, separated by |",
		apply: func(o *Options, name, v string) error {
			f, err := lastField(o, name, FieldList)
			if err != nil {
				return err
			}
			f.Values = append(f.Values, splitValues(v)...)
			return nil
		}},
	{name: "column-values", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Column `VALUES` for the last list, separated by |",
		apply: func(o *Options, name, v string) error {
			f, err := lastField(o, name, FieldList)
			if err != nil {
				return err
			}
			f.Columns = append(f.Columns, splitValues(v)...)
			return nil
		}},
	{name: "combo-values", types: only(TypeForms), takesValue: true, repeatable: true, usage: "Combo box `VALUES`, separated by |",
		apply: func(o *Options, name, v string) error {
			f, err := lastField(o, name, FieldCombo)
			if err != nil {
				return err
			}
			f.Values = append(f.Values, splitValues(v)...)
			return nil
		}},
	{name: "show-header", types: only(TypeForms), usage: "Show the columns header",
		apply: setBool(func(o *Options) *bool { return &o.Forms.ShowHeader })},
	{name: "forms-date-format", types: only(TypeForms), takesValue: true, usage: "Set the format for the returned date",
		apply: setString(func(o *Options) *string { return &o.Forms.DateFormat })},
}

// flagTable indexes every recognised value or switch flag by name.
var flagTable = buildTable()

func buildTable() map[string]*flagSpec {
	table := make(map[string]*flagSpec, len(generalFlags)+len(typeFlags))
	for i := range generalFlags {
		table[generalFlags[i].name] = &generalFlags[i]
	}
	for i := range typeFlags {
		table[typeFlags[i].name] = &typeFlags[i]
	}
	return table
}

func (s *flagSpec) accepts(t DialogType) bool {
	if s.types == nil {
		return true
	}
	for _, st := range s.types {
		if st == t {
			return true
		}
	}
	return false
}
