package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/adriangreen/zentui/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	var exit *cli.ExitError
	if err != nil && !errors.As(err, &exit) {
		fmt.Fprintln(os.Stderr, "zentui:", err)
	}
	os.Exit(cli.ExitCode(err))
}
