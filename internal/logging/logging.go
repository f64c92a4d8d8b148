// Package logging configures the process-wide diagnostic logger.
//
// Diagnostics always go to stderr, never to stdout, which carries only the
// dialog result line.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Environment variables controlling diagnostics.
const (
	EnvDebug    = "ZENTUI_DEBUG"
	EnvDebugLog = "ZENTUI_DEBUG_LOG"
)

// Options controls how the logger is built.
type Options struct {
	Debug   bool   // lower the level to debug
	LogFile string // additionally append every record to this file
}

// OptionsFromEnv reads logger options from the environment.
func OptionsFromEnv() Options {
	debug := strings.TrimSpace(os.Getenv(EnvDebug))
	return Options{
		Debug:   debug != "" && debug != "0" && !strings.EqualFold(debug, "false"),
		LogFile: strings.TrimSpace(os.Getenv(EnvDebugLog)),
	}
}

// Session is a configured logger plus the file it may be teeing into.
type Session struct {
	Logger *log.Logger
	file   *os.File
}

// New builds a logger writing to w. When opts.LogFile is set the file is
// opened in append mode and every record is also written there, preceded by
// a session header.
func New(w io.Writer, opts Options) (*Session, error) {
	s := &Session{}

	out := w
	if opts.LogFile != "" {
		file, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open debug log: %w", err)
		}
		s.file = file
		fmt.Fprintf(file, "=== Debug session started at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
		out = io.MultiWriter(w, file)
	}

	level := log.WarnLevel
	if opts.Debug || opts.LogFile != "" {
		level = log.DebugLevel
	}

	s.Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "zentui",
		ReportTimestamp: opts.Debug,
		TimeFormat:      "15:04:05.000",
	})
	return s, nil
}

// Install makes the session logger the package default used by log.Debug,
// log.Warn and friends.
func (s *Session) Install() {
	log.SetDefault(s.Logger)
}

// Close releases the debug log file, if any.
func (s *Session) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
