package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/adriangreen/zentui/internal/args"
	"github.com/adriangreen/zentui/internal/config"
	"github.com/adriangreen/zentui/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRun struct {
	outcome ui.Outcome
	err     error
	opts    *args.Options
	deps    ui.Deps
}

func (f *fakeRun) run(_ context.Context, opts *args.Options, deps ui.Deps) (ui.Outcome, error) {
	f.opts, f.deps = opts, deps
	return f.outcome, f.err
}

func execute(t *testing.T, fake *fakeRun, argv ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("ZENTUI_CONFIG_DIR", t.TempDir())
	t.Setenv("ZENTUI_DEBUG", "")
	t.Setenv("ZENTUI_DEBUG_LOG", "")

	orig := runDialog
	if fake != nil {
		runDialog = fake.run
	}
	t.Cleanup(func() { runDialog = orig })

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(argv)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestUsageErrorsExitOne(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"bad width", []string{"--entry", "--width=wide"}, "--width"},
		{"bad timeout", []string{"--info", "--timeout", "soon"}, "--timeout"},
		{"no type", []string{"--title=x"}, "zentui"},
		{"two types", []string{"--entry", "--info"}, "zentui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRun{}
			stdout, stderr, err := execute(t, fake, tt.argv...)
			assert.Equal(t, ExitRejected, ExitCode(err))
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
			assert.Nil(t, fake.opts, "no dialog is shown")
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, nil, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)
}

func TestHelp(t *testing.T) {
	stdout, _, err := execute(t, nil, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--entry")
	assert.Contains(t, stdout, "--help-all")
}

func TestAcceptedPrintsLine(t *testing.T) {
	fake := &fakeRun{outcome: ui.Outcome{Status: ui.StatusAccepted, Line: "42", HasLine: true}}
	stdout, _, err := execute(t, fake, "--entry", "--int", "42")
	require.NoError(t, err)
	assert.Equal(t, "42\n", stdout)
	assert.Equal(t, args.TypeEntry, fake.opts.Type)
	assert.Nil(t, fake.deps.Settings)
	require.NotNil(t, fake.deps.Config)
}

func TestAcceptedWithoutLine(t *testing.T) {
	fake := &fakeRun{outcome: ui.Outcome{Status: ui.StatusAccepted}}
	stdout, _, err := execute(t, fake, "--info")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRejectedAndTimedOut(t *testing.T) {
	stdout, _, err := execute(t, &fakeRun{outcome: ui.Outcome{Status: ui.StatusRejected}}, "--question")
	assert.Equal(t, ExitRejected, ExitCode(err))
	assert.Empty(t, stdout)

	_, _, err = execute(t, &fakeRun{outcome: ui.Outcome{Status: ui.StatusTimedOut}}, "--info", "--timeout=1")
	assert.Equal(t, ExitTimeout, ExitCode(err))
}

func TestUnknownFlagIsNotFatal(t *testing.T) {
	fake := &fakeRun{outcome: ui.Outcome{Status: ui.StatusAccepted}}
	_, stderr, err := execute(t, fake, "--info", "--frobnicate")
	require.NoError(t, err)
	assert.Contains(t, stderr, "--frobnicate")
}

func TestSettingsOpenedForFileSelection(t *testing.T) {
	fake := &fakeRun{outcome: ui.Outcome{Status: ui.StatusRejected}}
	_, _, _ = execute(t, fake, "--file-selection")
	assert.NotNil(t, fake.deps.Settings)
}

func TestSettingsSkippedWithoutConfigDir(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	fake := &fakeRun{outcome: ui.Outcome{Status: ui.StatusRejected}}
	orig := runDialog
	runDialog = fake.run
	t.Cleanup(func() { runDialog = orig })
	t.Setenv("ZENTUI_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	t.Setenv("ZENTUI_SETTINGS_BACKEND", "")
	t.Setenv("ZENTUI_DEBUG", "")
	t.Setenv("ZENTUI_DEBUG_LOG", "")

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--color-selection"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.Execute()

	assert.Equal(t, ExitRejected, ExitCode(err))
	assert.NotNil(t, fake.opts)
	assert.Nil(t, fake.deps.Settings)
	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenSettingsNeedsDir(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)
	assert.Nil(t, openSettings(&config.Config{}, log.New(io.Discard)))
	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries)

	cfg := &config.Config{}
	cfg.Settings.Dir = t.TempDir()
	s := openSettings(cfg, log.New(io.Discard))
	require.NotNil(t, s)
	require.NoError(t, s.Close())
}

func TestRunFailure(t *testing.T) {
	fake := &fakeRun{err: errors.New("no tty")}
	_, _, err := execute(t, fake, "--entry")
	require.Error(t, err)
	assert.Equal(t, ExitRejected, ExitCode(err))
	assert.EqualError(t, err, "no tty")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 5, ExitCode(&ExitError{Code: 5}))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
}
