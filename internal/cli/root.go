package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/adriangreen/zentui/internal/args"
	"github.com/adriangreen/zentui/internal/config"
	"github.com/adriangreen/zentui/internal/logging"
	"github.com/adriangreen/zentui/internal/output"
	"github.com/adriangreen/zentui/internal/settings"
	"github.com/adriangreen/zentui/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// runDialog is replaced in tests so the command can be exercised without a
// terminal.
var runDialog = ui.Run

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zentui --<dialog-type> [options]",
		Short: "Display terminal dialogs from shell scripts",
		Long: `zentui shows zenity-compatible dialogs on the terminal. The dialog is drawn
on stderr and the answer is printed on stdout, so a script can capture it:

  name=$(zentui --entry --text "Your name?")`,
		Version: Version,
		// The zenity flag grammar is not getopt compatible; internal/args
		// classifies the raw command line.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               run,
	}
	return cmd
}

func run(cmd *cobra.Command, argv []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	session, err := logging.New(stderr, logging.OptionsFromEnv())
	if err != nil {
		return err
	}
	defer session.Close()
	session.Install()
	logger := session.Logger

	opts, err := args.Parse(argv)
	if err != nil {
		return usageFailure(stderr, err)
	}
	if opts.Version {
		fmt.Fprintln(stdout, Version)
		return nil
	}
	if opts.Help != "" {
		fmt.Fprint(stdout, args.Help(opts.Help, terminalWidth(stdout)))
		return nil
	}

	for _, d := range opts.Unknown {
		logger.Warn("ignoring option", "flag", d.Flag, "reason", d.Reason)
	}
	if opts.General.Modal {
		logger.Debug("--modal has no effect on a terminal")
	}
	if opts.General.AttachSet {
		logger.Debug("--attach has no effect on a terminal", "window", opts.General.Attach)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cm, cfg := loadConfig(ctx, logger)
	if cm != nil {
		defer cm.StopWatcher()
	}

	deps := ui.Deps{
		Config:        cfg,
		ConfigManager: cm,
		Stdin:         cmd.InOrStdin(),
		Stdout:        stdout,
		Stderr:        stderr,
		Logger:        logger,
	}
	if usesSettings(opts.Type) {
		deps.Settings = openSettings(cfg, logger)
		if deps.Settings != nil {
			defer deps.Settings.Close()
		}
	}

	outcome, err := runDialog(ctx, opts, deps)
	if err != nil {
		var usage *args.UsageError
		if errors.As(err, &usage) {
			return usageFailure(stderr, err)
		}
		return err
	}
	logger.Debug("dialog finished", "status", outcome.Status)

	switch outcome.Status {
	case ui.StatusAccepted:
		if outcome.HasLine {
			if err := output.Line(stdout, outcome.Line); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		}
		return nil
	case ui.StatusTimedOut:
		return &ExitError{Code: ExitTimeout}
	default:
		return &ExitError{Code: ExitRejected}
	}
}

// usageFailure reports a bad command line and exits 1 without a dialog.
func usageFailure(w io.Writer, err error) error {
	fmt.Fprintf(w, "zentui: %v\n", err)
	fmt.Fprintln(w, "Try 'zentui --help' for more information.")
	return &ExitError{Code: ExitRejected}
}

// loadConfig reads the configuration and starts watching it. A broken
// config file falls back to the defaults rather than failing the dialog.
func loadConfig(ctx context.Context, logger *log.Logger) (*config.ConfigManager, *config.Config) {
	dir, err := config.Dir()
	if err != nil {
		logger.Warn("no config directory", "err", err)
	}
	var paths []string
	if dir != "" {
		paths = config.Paths(dir)
	}

	cm, err := config.NewConfigManager(paths...)
	if err != nil {
		logger.Warn("ignoring config", "err", err)
		cfg, err := config.LoadFrom()
		if err != nil {
			cfg = &config.Config{}
		}
		if cfg.Settings.Dir == "" {
			cfg.Settings.Dir = dir
		}
		return nil, cfg
	}
	if len(paths) > 0 {
		if err := cm.StartWatcher(ctx); err != nil {
			logger.Debug("config watcher not started", "err", err)
		}
	}

	cfg := *cm.GetConfig()
	if cfg.Settings.Dir == "" {
		cfg.Settings.Dir = dir
	}
	return cm, &cfg
}

// openSettings opens the preference store, or returns nil when there is no
// settings directory or the store cannot be opened.
func openSettings(cfg *config.Config, logger *log.Logger) *settings.Settings {
	if cfg.Settings.Dir == "" {
		logger.Warn("preferences unavailable", "err", "no settings directory")
		return nil
	}
	store, err := settings.Open(cfg.Settings.Backend, cfg.Settings.Dir)
	if err != nil {
		logger.Warn("preferences unavailable", "err", err)
		return nil
	}
	return settings.New(store)
}

func usesSettings(t args.DialogType) bool {
	return t == args.TypeFileSelection || t == args.TypeColorSelection
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
