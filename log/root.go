// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger carrying the given attributes on top of the root logger.
// The root logger is resolved on use, so package level loggers follow SetDefault.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

type lazyLogger struct {
	ctx []any

	mu      sync.Mutex
	base    Logger
	derived Logger
}

func (l *lazyLogger) get() Logger {
	r := Root()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.base != r {
		l.base = r
		l.derived = r.With(l.ctx...)
	}
	return l.derived
}

func (l *lazyLogger) With(ctx ...any) Logger {
	return &lazyLogger{ctx: append(append([]any{}, l.ctx...), ctx...)}
}
func (l *lazyLogger) New(ctx ...any) Logger { return l.With(ctx...) }
func (l *lazyLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.get().Write(level, msg, ctx...)
}
func (l *lazyLogger) Trace(msg string, ctx ...any) { l.get().Write(LevelTrace, msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.get().Write(LevelDebug, msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.get().Write(LevelInfo, msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.get().Write(LevelWarn, msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.get().Write(LevelError, msg, ctx...) }
func (l *lazyLogger) Crit(msg string, ctx ...any)  { l.get().Crit(msg, ctx...) }
func (l *lazyLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.get().Write(level, msg, attrs...)
}
func (l *lazyLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.get().Enabled(ctx, level)
}
func (l *lazyLogger) Handler() slog.Handler { return l.get().Handler() }

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) {
	Root().Write(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) {
	Root().Write(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) {
	Root().Write(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) {
	Root().Write(slog.LevelError, msg, ctx...)
}

// Crit is a convenient alias for Root().Crit. It exits the process.
func Crit(msg string, ctx ...any) {
	Root().Crit(msg, ctx...)
}
