// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the base log output.
type Options struct {
	Level      slog.Level
	File       string // optional; rotated by size
	MaxSizeMB  int
	MaxBackups int
	JSON       bool
}

// NewHandler returns a text (or JSON) handler writing to stdout and, when
// File is set, to a rotating log file. The closer flushes the file.
func NewHandler(opts Options) (slog.Handler, io.Closer) {
	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stdout, lj)
		closer = lj
	}

	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.NewJSONHandler(w, ho), closer
	}
	return slog.NewTextHandler(w, ho), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
