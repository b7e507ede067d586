// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the process-wide structured logger.
//
// Entries are JSON (log/slog) on stdout. When a file path is configured the
// same entries are also written to a size-rotated file managed by lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taibuivan/tutorials/internal/platform/constants"
)

// Rotation policy for the optional log file.
const (
	maxFileSizeMB = 50
	maxBackups    = 5
	maxAgeDays    = 14
)

// Options controls logger construction.
type Options struct {
	// Debug lowers the level to slog.LevelDebug.
	Debug bool
	// File, when set, enables the rotating file sink.
	File string
	// Output overrides stdout. Used by tests.
	Output io.Writer
}

// New returns a JSON logger tagged with the application name and a closer for
// the file sink. The closer is a no-op when no file is configured.
func New(options Options) (*slog.Logger, io.Closer) {
	var output io.Writer = os.Stdout
	if options.Output != nil {
		output = options.Output
	}

	var closer io.Closer = nopCloser{}
	if options.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   options.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		output = io.MultiWriter(output, rotating)
		closer = rotating
	}

	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName)), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
