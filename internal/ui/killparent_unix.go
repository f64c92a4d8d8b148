//go:build unix

package ui

import (
	"os"
	"syscall"
)

// killParent sends SIGHUP to the process that started us, the way
// --auto-kill stops the script feeding a progress dialog.
var killParent = func() error {
	return syscall.Kill(os.Getppid(), syscall.SIGHUP)
}
