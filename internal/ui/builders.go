package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adriangreen/zentui/internal/args"
	"github.com/adriangreen/zentui/internal/live"
	"github.com/adriangreen/zentui/internal/output"
	"github.com/adriangreen/zentui/internal/settings"
	"github.com/adriangreen/zentui/internal/ui/dialog"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
)

// formatter turns an accepted dialog's result value into the output line.
type formatter func(value interface{}) (string, error)

// plan is everything Run needs to drive one dialog.
type plan struct {
	dialog dialog.Dialog
	// format is nil for dialogs that print nothing on acceptance.
	format formatter
	// live selects how standard input lines are interpreted; KindNone
	// leaves stdin alone.
	live live.Kind
	// onReject runs after a cancel, escape or ctrl+c.
	onReject func()
}

// env carries the ambient inputs shared by every builder.
type env struct {
	ctx      context.Context
	title    string
	width    int
	height   int
	settings *settings.Settings
	stdout   io.Writer
	fonts    func(ctx context.Context) []string
	now      func() time.Time
	logger   *log.Logger
}

type builder func(o *args.Options, e *env) (*plan, error)

var builders = map[args.DialogType]builder{
	args.TypeCalendar:       buildCalendar,
	args.TypeEntry:          buildEntry,
	args.TypeError:          buildMessage,
	args.TypeInfo:           buildMessage,
	args.TypeQuestion:       buildMessage,
	args.TypeWarning:        buildMessage,
	args.TypeFileSelection:  buildFileSelection,
	args.TypeList:           buildList,
	args.TypeNotification:   buildNotification,
	args.TypeProgress:       buildProgress,
	args.TypeScale:          buildScale,
	args.TypeTextInfo:       buildTextInfo,
	args.TypeColorSelection: buildColor,
	args.TypeFontSelection:  buildFont,
	args.TypePassword:       buildPassword,
	args.TypeForms:          buildForms,
}

var defaultTitles = map[args.DialogType]string{
	args.TypeCalendar:       "Calendar selection",
	args.TypeEntry:          "Add a new entry",
	args.TypeError:          "Error",
	args.TypeInfo:           "Information",
	args.TypeQuestion:       "Question",
	args.TypeWarning:        "Warning",
	args.TypeFileSelection:  "Select a file",
	args.TypeList:           "Select items from the list",
	args.TypeNotification:   "Notification",
	args.TypeProgress:       "Progress",
	args.TypeScale:          "Adjust the scale value",
	args.TypeTextInfo:       "Text View",
	args.TypeColorSelection: "Select color",
	args.TypeFontSelection:  "Select font",
	args.TypePassword:       "Type your password",
	args.TypeForms:          "Forms dialog",
}

var defaultTexts = map[args.DialogType]string{
	args.TypeCalendar: "Select a date from below:",
	args.TypeEntry:    "Enter new text:",
	args.TypeError:    "An error has occurred.",
	args.TypeInfo:     "All updates are complete.",
	args.TypeQuestion: "Are you sure you want to proceed?",
	args.TypeWarning:  "Are you sure you want to proceed?",
	args.TypeList:     "Select items from the list below.",
	args.TypeProgress: "Running...",
	args.TypeScale:    "Adjust the scale value",
}

// build dispatches to the builder of o.Type and applies the general flags.
func build(o *args.Options, e *env) (*plan, error) {
	b, ok := builders[o.Type]
	if !ok {
		return nil, &args.UsageError{Reason: "no dialog type given"}
	}
	if e.title == "" {
		e.title = o.General.Title
		if e.title == "" {
			e.title = defaultTitles[o.Type]
		}
	}
	if o.General.Width > 0 {
		e.width = o.General.Width
	}
	if o.General.Height > 0 {
		e.height = o.General.Height
	}

	p, err := b(o, e)
	if err != nil {
		return nil, err
	}
	if labeled, ok := p.dialog.(interface{ SetButtonLabels(ok, cancel string) }); ok {
		labeled.SetButtonLabels(o.General.OKLabel, o.General.CancelLabel)
	}
	return p, nil
}

func text(o *args.Options) string {
	if o.Common.Text != "" {
		return o.Common.Text
	}
	return defaultTexts[o.Type]
}

func unexpected(value interface{}) error {
	return fmt.Errorf("unexpected dialog result %T", value)
}

func buildMessage(o *args.Options, e *env) (*plan, error) {
	kinds := map[args.DialogType]dialog.MessageKind{
		args.TypeInfo:     dialog.MessageInfo,
		args.TypeWarning:  dialog.MessageWarning,
		args.TypeError:    dialog.MessageError,
		args.TypeQuestion: dialog.MessageQuestion,
	}
	d := dialog.NewMessageDialog(e.title, e.width, e.height, dialog.MessageConfig{
		Kind:          kinds[o.Type],
		Text:          text(o),
		NoMarkup:      o.Common.NoMarkup,
		NoWrap:        o.Message.NoWrap,
		Ellipsize:     o.Message.Ellipsize,
		DefaultCancel: o.Message.DefaultCancel,
		IconName:      o.Message.IconName,
	})
	return &plan{dialog: d}, nil
}

func buildEntry(o *args.Options, e *env) (*plan, error) {
	initial := o.Entry.EntryText
	mode := dialog.EntryModeText
	outMode := output.EntryText
	switch o.Entry.Mode {
	case args.EntryInt:
		mode, outMode = dialog.EntryModeInt, output.EntryInt
		if initial == "" {
			initial = strconv.FormatInt(o.Entry.Int, 10)
		}
	case args.EntryFloat:
		mode, outMode = dialog.EntryModeFloat, output.EntryFloat
		if initial == "" {
			initial = strconv.FormatFloat(o.Entry.Float, 'f', -1, 64)
		}
	}

	d := dialog.NewEntryDialog(e.title, e.width, e.height, dialog.EntryConfig{
		Text:     text(o),
		Initial:  initial,
		Hidden:   o.Entry.HideText,
		Mode:     mode,
		NoMarkup: o.Common.NoMarkup,
	})
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", unexpected(value)
		}
		return output.Entry(s, outMode), nil
	}}, nil
}

func buildPassword(o *args.Options, e *env) (*plan, error) {
	d := dialog.NewPasswordDialog(e.title, e.width, e.height, o.Password.Username)
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		creds, ok := value.(dialog.Credentials)
		if !ok {
			return "", unexpected(value)
		}
		return output.Password(creds.Username, creds.HasUsername, creds.Password), nil
	}}, nil
}

// startDate resolves --day, --month and --year against today. A day past
// the end of the resolved month is clamped to its last day.
func startDate(c args.CalendarOptions, now time.Time) time.Time {
	year, month, day := now.Date()
	if c.Year > 0 {
		year = c.Year
	}
	if c.Month > 0 {
		month = time.Month(c.Month)
	}
	if c.Day > 0 {
		day = c.Day
	}
	if last := args.DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func datePattern(pattern string) string {
	if pattern != "" {
		return pattern
	}
	return output.DefaultDatePattern()
}

func buildCalendar(o *args.Options, e *env) (*plan, error) {
	pattern := datePattern(o.Calendar.DateFormat)
	d := dialog.NewCalendarDialog(e.title, e.width, e.height, dialog.CalendarConfig{
		Text:     text(o),
		NoMarkup: o.Common.NoMarkup,
		Date:     startDate(o.Calendar, e.now()),
	})
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		t, ok := value.(time.Time)
		if !ok {
			return "", unexpected(value)
		}
		return output.FormatDate(t, pattern), nil
	}}, nil
}

func listMode(o *args.Options) dialog.ListMode {
	switch {
	case o.List.Checklist:
		return dialog.ListChecklist
	case o.List.Radiolist:
		return dialog.ListRadiolist
	case o.Common.Multiple:
		return dialog.ListMultiple
	}
	return dialog.ListSingle
}

func buildList(o *args.Options, e *env) (*plan, error) {
	sel, err := output.ParseColumnSelector(o.List.PrintColumn)
	if err != nil {
		return nil, &args.UsageError{Flag: "--print-column", Value: o.List.PrintColumn, Reason: err.Error()}
	}
	mode := listMode(o)
	skip := 0
	if mode == dialog.ListChecklist || mode == dialog.ListRadiolist {
		skip = 1
	}

	d := dialog.NewListDialog(e.title, e.width, e.height, dialog.ListConfig{
		Text:        text(o),
		NoMarkup:    o.Common.NoMarkup,
		Columns:     o.List.Columns,
		Cells:       o.Positional,
		Mode:        mode,
		HideHeader:  o.List.HideHeader,
		HideColumns: o.List.HideColumns,
		MidSearch:   o.List.MidSearch,
		Editable:    o.Common.Editable,
	})

	p := &plan{dialog: d}
	if len(o.Positional) == 0 {
		p.live = live.KindList
	}
	cellSep, rowSep := o.CellSeparator(), o.RowSeparatorFor(args.TypeList)
	p.format = func(value interface{}) (string, error) {
		rows, ok := value.([][]string)
		if !ok {
			return "", unexpected(value)
		}
		picked := make([][]string, len(rows))
		for i, row := range rows {
			picked[i] = sel.Pick(row, skip)
		}
		return output.Rows(picked, cellSep, rowSep), nil
	}
	return p, nil
}

var formKinds = map[args.FormFieldKind]dialog.FormFieldKind{
	args.FieldEntry:    dialog.FormEntry,
	args.FieldPassword: dialog.FormPassword,
	args.FieldCalendar: dialog.FormCalendar,
	args.FieldList:     dialog.FormList,
	args.FieldCombo:    dialog.FormCombo,
	args.FieldCheckbox: dialog.FormCheckbox,
}

func buildForms(o *args.Options, e *env) (*plan, error) {
	fields := make([]dialog.FormField, len(o.Forms.Fields))
	for i, f := range o.Forms.Fields {
		fields[i] = dialog.FormField{
			Kind:    formKinds[f.Kind],
			Label:   f.Label,
			Values:  f.Values,
			Columns: f.Columns,
		}
	}
	pattern := datePattern(o.Forms.DateFormat)
	d := dialog.NewFormDialog(e.title, e.width, e.height, dialog.FormConfig{
		Text:       text(o),
		NoMarkup:   o.Common.NoMarkup,
		Fields:     fields,
		ShowHeader: o.Forms.ShowHeader,
		DateFormat: pattern,
	})

	sep, rowSep := o.Common.Separator, o.RowSeparatorFor(args.TypeForms)
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		values, ok := value.([]interface{})
		if !ok {
			return "", unexpected(value)
		}
		parts := make([]string, len(values))
		for i, v := range values {
			switch v := v.(type) {
			case string:
				parts[i] = v
			case bool:
				parts[i] = strings.ToUpper(strconv.FormatBool(v))
			case time.Time:
				parts[i] = output.FormatDate(v, pattern)
			case [][]string:
				parts[i] = output.Rows(v, ",", rowSep)
			default:
				return "", unexpected(v)
			}
		}
		return output.Forms(parts, sep), nil
	}}, nil
}

func buildProgress(o *args.Options, e *env) (*plan, error) {
	d := dialog.NewProgressDialog(e.title, e.width, e.height, dialog.ProgressConfig{
		Text:          text(o),
		NoMarkup:      o.Common.NoMarkup,
		Percentage:    o.Progress.Percentage,
		Pulsate:       o.Progress.Pulsate,
		AutoClose:     o.Progress.AutoClose,
		NoCancel:      o.Progress.NoCancel,
		TimeRemaining: o.Progress.TimeRemaining,
	})
	p := &plan{dialog: d, live: live.KindProgress}
	if o.Progress.AutoKill {
		p.onReject = func() {
			if err := killParent(); err != nil {
				e.logger.Warn("auto-kill failed", "err", err)
			}
		}
	}
	return p, nil
}

func buildScale(o *args.Options, e *env) (*plan, error) {
	cfg := dialog.ScaleConfig{
		Text:      text(o),
		NoMarkup:  o.Common.NoMarkup,
		Value:     o.Scale.Value,
		Min:       o.Scale.Min,
		Max:       o.Scale.Max,
		Step:      o.Scale.Step,
		HideValue: o.Scale.HideValue,
	}
	if o.Scale.PrintPartial {
		cfg.Partial = func(v int) {
			if err := output.Line(e.stdout, strconv.Itoa(v)); err != nil {
				e.logger.Warn("print partial value", "err", err)
			}
		}
	}
	d := dialog.NewScaleDialog(e.title, e.width, e.height, cfg)
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		v, ok := value.(int)
		if !ok {
			return "", unexpected(value)
		}
		return strconv.Itoa(v), nil
	}}, nil
}

func buildTextInfo(o *args.Options, e *env) (*plan, error) {
	if o.TextInfo.Font != "" {
		e.logger.Debug("ignoring --font on a terminal", "font", o.TextInfo.Font)
	}
	cfg := dialog.TextInfoConfig{
		Editable:   o.Common.Editable,
		Checkbox:   o.TextInfo.Checkbox,
		AutoScroll: o.TextInfo.AutoScroll,
	}
	p := &plan{}
	if o.Common.Filename != "" {
		data, err := os.ReadFile(o.Common.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read text file: %w", err)
		}
		cfg.Content = string(data)
	} else {
		p.live = live.KindText
	}
	p.dialog = dialog.NewTextInfoDialog(e.title, e.width, e.height, cfg)
	p.format = func(value interface{}) (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", unexpected(value)
		}
		return strings.TrimSuffix(s, "\n"), nil
	}
	return p, nil
}

func buildFileSelection(o *args.Options, e *env) (*plan, error) {
	cfg := dialog.FileSelectionConfig{
		Filename:         o.Common.Filename,
		Multiple:         o.Common.Multiple,
		Directory:        o.File.Directory,
		Save:             o.File.Save,
		ConfirmOverwrite: o.File.ConfirmOverwrite,
		Filters:          o.File.Filters,
	}
	if e.settings != nil {
		cfg.Prefs = e.settings
	}
	d := dialog.NewFileSelectionDialog(e.title, e.width, e.height, cfg)
	sep := o.Common.Separator
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		paths, ok := value.([]string)
		if !ok {
			return "", unexpected(value)
		}
		return strings.Join(paths, sep), nil
	}}, nil
}

func buildColor(o *args.Options, e *env) (*plan, error) {
	cfg := dialog.ColorConfig{
		Color:       o.Color.Color,
		ShowPalette: o.Color.ShowPalette,
	}
	if cfg.Color != "" {
		if _, err := dialog.ParseColor(cfg.Color); err != nil {
			return nil, &args.UsageError{Flag: "--color", Value: cfg.Color, Reason: "not a colour"}
		}
	}
	if e.settings != nil {
		cfg.Prefs = e.settings
	}
	d := dialog.NewColorDialog(e.title, e.width, e.height, cfg)
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		c, ok := value.(colorful.Color)
		if !ok {
			return "", unexpected(value)
		}
		return output.Color(c), nil
	}}, nil
}

func buildFont(o *args.Options, e *env) (*plan, error) {
	var families []string
	if e.fonts != nil {
		families = e.fonts(e.ctx)
	}
	d := dialog.NewFontDialog(e.title, e.width, e.height, dialog.FontConfig{
		Families: families,
		Pattern:  o.Font.Pattern,
		Sample:   o.Font.Sample,
	})
	return &plan{dialog: d, format: func(value interface{}) (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", unexpected(value)
		}
		return s, nil
	}}, nil
}

func buildNotification(o *args.Options, e *env) (*plan, error) {
	d := dialog.NewNotificationDialog(e.title, e.width, e.height, dialog.NotificationConfig{
		Text:     o.Common.Text,
		NoMarkup: o.Common.NoMarkup,
		IconName: o.General.WindowIcon,
		Listen:   o.Notification.Listen,
	})
	p := &plan{dialog: d}
	if o.Notification.Listen {
		p.live = live.KindNotification
	}
	return p, nil
}
