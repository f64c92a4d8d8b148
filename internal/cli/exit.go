package cli

import (
	"errors"
	"fmt"
)

// Process exit statuses
const (
	ExitAccepted = 0
	ExitRejected = 1
	ExitTimeout  = 5
)

// ExitError ends the process with Code. Its message is never printed; the
// command has already reported whatever the user needs to see.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by the root command to a process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitAccepted
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitRejected
}
