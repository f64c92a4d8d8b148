//go:build !unix

package ui

import "errors"

var killParent = func() error {
	return errors.New("--auto-kill is not supported on this platform")
}
