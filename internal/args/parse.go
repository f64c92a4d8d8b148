package args

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Tokenize splits --key=value into --key and value. A bare -- is kept as a
// marker and nothing after it is split.
func Tokenize(argv []string) []string {
	tokens := make([]string, 0, len(argv))
	for i, arg := range argv {
		if arg == "--" {
			tokens = append(tokens, argv[i:]...)
			break
		}
		if strings.HasPrefix(arg, "--") {
			if key, value, ok := strings.Cut(arg, "="); ok {
				tokens = append(tokens, key, value)
				continue
			}
		}
		tokens = append(tokens, arg)
	}
	return tokens
}

// typeFlagNames maps a dialog-type flag to its type.
var typeFlagNames = func() map[string]DialogType {
	m := make(map[string]DialogType, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

type pending struct {
	spec  *flagSpec
	name  string
	value string
}

// Parse classifies argv (without the program name). Flags may appear in any
// order relative to the dialog-type flag; their values are applied once the
// type is known.
func Parse(argv []string) (*Options, error) {
	opts := defaultOptions()
	tokens := Tokenize(argv)

	var seen []pending
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			opts.Positional = append(opts.Positional, tokens[i+1:]...)
			break
		}
		if !strings.HasPrefix(tok, "--") || tok == "--" {
			opts.Positional = append(opts.Positional, tok)
			continue
		}

		name := strings.TrimPrefix(tok, "--")

		if group, ok := helpGroupFor(name); ok {
			if opts.Help == "" {
				opts.Help = group
			}
			continue
		}
		if name == "version" {
			opts.Version = true
			continue
		}

		if t, ok := typeFlagNames[name]; ok {
			if opts.Type != TypeNone && opts.Type != t {
				return nil, usageErrorf(tok, "", "two or more dialog options specified")
			}
			opts.Type = t
			continue
		}

		spec, ok := flagTable[name]
		if !ok {
			opts.Unknown = append(opts.Unknown, Diagnostic{Flag: tok, Reason: "unknown option"})
			continue
		}

		p := pending{spec: spec, name: tok}
		if spec.takesValue {
			if i+1 >= len(tokens) {
				return nil, usageErrorf(tok, "", "requires a value")
			}
			i++
			p.value = tokens[i]
		}
		seen = append(seen, p)
	}

	if opts.Help != "" || opts.Version {
		return opts, nil
	}
	if opts.Type == TypeNone {
		return nil, &UsageError{Reason: "You must specify a dialog type. See 'zentui --help' for details"}
	}

	counts := make(map[string]int, len(seen))
	scratch := defaultOptions()
	for _, p := range seen {
		if !p.spec.accepts(opts.Type) {
			// A misplaced flag is ignored, but a malformed value still fails.
			if err := p.spec.apply(scratch, p.name, p.value); err != nil {
				var usage *UsageError
				if errors.As(err, &usage) && usage.Value != "" {
					return nil, err
				}
			}
			opts.Unknown = append(opts.Unknown, Diagnostic{
				Flag:   p.name,
				Reason: "not valid for " + opts.Type.Flag(),
			})
			continue
		}
		counts[p.spec.name]++
		if counts[p.spec.name] > 1 && !p.spec.repeatable {
			opts.Unknown = append(opts.Unknown, Diagnostic{
				Flag:   p.name,
				Reason: "given more than once, last value wins",
			})
		}
		if err := p.spec.apply(opts, p.name, p.value); err != nil {
			return nil, err
		}
	}

	if err := validate(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// validate checks cross-flag constraints once every flag is applied.
func validate(o *Options) error {
	switch o.Type {
	case TypeScale:
		s := &o.Scale
		if s.Min >= s.Max {
			return usageErrorf("--max-value", strconv.Itoa(s.Max), "maximum must be greater than minimum")
		}
		if s.Step <= 0 {
			return usageErrorf("--step", strconv.Itoa(s.Step), "step must be positive")
		}
		if !s.ValueSet {
			s.Value = s.Min
		}
		if s.Value < s.Min || s.Value > s.Max {
			return usageErrorf("--value", strconv.Itoa(s.Value), "value out of range")
		}
	case TypeList:
		if o.List.Checklist && o.List.Radiolist {
			return usageErrorf("--radiolist", "", "cannot be combined with --checklist")
		}
		if len(o.List.Columns) == 0 {
			return usageErrorf("--column", "", "no column titles specified for the list")
		}
	case TypeCalendar:
		c := &o.Calendar
		if c.Month != 0 && (c.Month < 1 || c.Month > 12) {
			return usageErrorf("--month", strconv.Itoa(c.Month), "month must be between 1 and 12")
		}
		if c.Day != 0 && (c.Day < 1 || c.Day > 31) {
			return usageErrorf("--day", strconv.Itoa(c.Day), "day must be between 1 and 31")
		}
		if c.Day != 0 && c.Month != 0 {
			// Without --year February accepts the 29th.
			year := c.Year
			if year == 0 {
				year = 2000
			}
			if last := DaysIn(year, time.Month(c.Month)); c.Day > last {
				return usageErrorf("--day", strconv.Itoa(c.Day), "month %d has only %d days", c.Month, last)
			}
		}
	}
	if o.General.Timeout < 0 {
		return usageErrorf("--timeout", strconv.Itoa(o.General.Timeout), "timeout must not be negative")
	}
	return nil
}
