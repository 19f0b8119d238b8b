// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging configures the process logger: level, styling and an
// optional rotated log file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls Setup.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives a copy of every line and is rotated at 10 MB.
	File string
	// Output replaces stderr. Used by tests.
	Output io.Writer
}

// Setup rebuilds L from opts. The returned closer flushes the log file and
// is a no-op when no file is configured.
func Setup(opts Options) (io.Closer, error) {
	level := clog.InfoLevel
	if opts.Level != "" {
		lv, err := clog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = lv
	}

	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 3,
		}
		out = io.MultiWriter(out, rotator)
		closer = rotator
	}

	l := clog.NewWithOptions(out, clog.Options{
		Prefix:          "zynq",
		Level:           level,
		ReportTimestamp: opts.File != "",
	})
	l.SetStyles(styles())
	L = l
	return closer, nil
}

// SetDebug toggles debug output on the current logger.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
		return
	}
	L.SetLevel(clog.InfoLevel)
}

func styles() *clog.Styles {
	s := clog.DefaultStyles()
	s.Levels[clog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	s.Levels[clog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("214"))
	return s
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
