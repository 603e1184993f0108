// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's structured logger.
// Loggers created by WithContext resolve the root logger on every call, so package level
// loggers follow SetDefault even when declared before the root is configured.
package log

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
)

// Logger writes leveled key/value records.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

func init() {
	log.SetDefault(log.NewLogger(DiscardHandler()))
}

type contextLogger struct {
	ctx []any
}

// WithContext returns a logger that prefixes every record with ctx.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

func (l *contextLogger) root() log.Logger {
	return log.Root().With(l.ctx...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }
func (l *contextLogger) Crit(msg string, ctx ...any)  { l.root().Crit(msg, ctx...) }

// Root returns the root logger.
func Root() Logger {
	return log.Root()
}

// SetDefault routes all loggers to h.
func SetDefault(h slog.Handler) {
	log.SetDefault(log.NewLogger(h))
}

// Debug logs on the root logger.
func Debug(msg string, ctx ...any) { log.Root().Debug(msg, ctx...) }

// Info logs on the root logger.
func Info(msg string, ctx ...any) { log.Root().Info(msg, ctx...) }

// Warn logs on the root logger.
func Warn(msg string, ctx ...any) { log.Root().Warn(msg, ctx...) }

// Error logs on the root logger.
func Error(msg string, ctx ...any) { log.Root().Error(msg, ctx...) }
