// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

type discardHandler struct{}

// DiscardHandler returns a handler dropping every record.
func DiscardHandler() slog.Handler { return discardHandler{} }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }

// TerminalHandler renders records on one line each for people to read:
//
//	INFO [06-01|12:00:00.000] packed block     pkg=chain number=12 calls=3
type TerminalHandler struct {
	mu       *sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr

	buf *[]byte
}

// NewTerminalHandlerWithLevel creates a TerminalHandler emitting records at
// lvl and above. Levels are colored when useColor is set.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		mu:       new(sync.Mutex),
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
		buf:      new([]byte),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := h.format((*h.buf)[:0], r, h.useColor)
	_, err := h.wr.Write(line)
	*h.buf = line
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup is not supported, groups are flattened.
func (h *TerminalHandler) WithGroup(string) slog.Handler {
	return h
}

// WithAttrs returns a handler sharing the writer and lock of h.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append(make([]slog.Attr, 0, len(h.attrs)+len(attrs)), h.attrs...), attrs...)
	return &clone
}

func maxVerbosity() *slog.LevelVar {
	var lvl slog.LevelVar
	lvl.Set(levelMaxVerbosity)
	return &lvl
}

// JSONHandler prints every record as a JSON object.
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, maxVerbosity())
}

// JSONHandlerWithLevel prints records at level and above as JSON objects.
func JSONHandlerWithLevel(wr io.Writer, level *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(false),
		Level:       level,
	})
}

// LogfmtHandler prints every record as logfmt key/value pairs.
func LogfmtHandler(wr io.Writer) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(true),
		Level:       maxVerbosity(),
	})
}

// replaceAttr shortens the builtin keys and renders numbers in decimal. With
// logfmt, times are formatted the same way as on the terminal.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() != slog.KindTime {
				break
			}
			if logfmt {
				return slog.String("t", attr.Value.Time().Format(timeFormat))
			}
			return slog.Attr{Key: "t", Value: attr.Value}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}

		if t, ok := attr.Value.Any().(time.Time); ok {
			if logfmt {
				attr.Value = slog.StringValue(t.Format(timeFormat))
			}
			return attr
		}
		if s, ok := stringify(attr.Value.Any()); ok {
			attr.Value = slog.StringValue(s)
		}
		return attr
	}
}

// stringify renders amounts and Stringers, nil pointers included.
func stringify(v any) (string, bool) {
	switch v := v.(type) {
	case *big.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.String(), true
	case *uint256.Int:
		if v == nil {
			return "<nil>", true
		}
		return v.Dec(), true
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "<nil>", true
		}
		return v.String(), true
	}
	return "", false
}
