package args

import "fmt"

// UsageError reports a command line that cannot drive a dialog. The caller
// prints it and exits with status 1 before any dialog is shown.
type UsageError struct {
	Flag   string
	Value  string
	Reason string
}

func (e *UsageError) Error() string {
	switch {
	case e.Flag == "":
		return e.Reason
	case e.Value != "":
		return fmt.Sprintf("%s: invalid value %q: %s", e.Flag, e.Value, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Flag, e.Reason)
	}
}

func usageErrorf(flag, value, format string, a ...any) *UsageError {
	return &UsageError{Flag: flag, Value: value, Reason: fmt.Sprintf(format, a...)}
}
