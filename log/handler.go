// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *discardHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// NewTerminalHandler returns a human readable handler with color-coded levels.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
func NewTerminalHandler(wr io.Writer, useColor bool) slog.Handler {
	return log.NewTerminalHandler(wr, useColor)
}

// WithVerbosity filters records of h above the legacy verbosity level.
// Levels follow the classic scheme: 0 crit, 1 error, 2 warn, 3 info, 4 debug, 5 trace.
func WithVerbosity(h slog.Handler, verbosity int) slog.Handler {
	glog := log.NewGlogHandler(h)
	glog.Verbosity(FromLegacyLevel(verbosity))
	return glog
}

// FromLegacyLevel converts a legacy verbosity number into a slog level.
func FromLegacyLevel(verbosity int) slog.Level {
	return log.FromLegacyLevel(verbosity)
}
