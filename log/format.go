// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

func levelColor(l slog.Level) string {
	switch {
	case l >= LevelCrit:
		return "\x1b[35m"
	case l >= slog.LevelError:
		return "\x1b[31m"
	case l >= slog.LevelWarn:
		return "\x1b[33m"
	case l >= slog.LevelInfo:
		return "\x1b[32m"
	case l >= slog.LevelDebug:
		return "\x1b[36m"
	default:
		return "\x1b[34m"
	}
}

func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	b := bytes.NewBuffer(buf)

	color := ""
	if usecolor {
		color = levelColor(r.Level)
	}
	if color != "" {
		b.WriteString(color)
		b.WriteString(LevelAlignedString(r.Level))
		b.WriteString("\x1b[0m")
	} else {
		b.WriteString(LevelAlignedString(r.Level))
	}
	b.WriteString("[")
	b.WriteString(r.Time.Format(termTimeFormat))
	b.WriteString("] ")

	msg := escapeMessage(r.Message)
	b.WriteString(msg)

	// try to justify the log output for short messages
	if (len(h.attrs) > 0 || r.NumAttrs() > 0) && len(msg) < termMsgJust {
		b.Write(bytes.Repeat([]byte{' '}, termMsgJust-len(msg)))
	}

	writeAttr := func(attr slog.Attr) {
		b.WriteByte(' ')
		if color != "" {
			b.WriteString(color)
			b.WriteString(attr.Key)
			b.WriteString("\x1b[0m=")
		} else {
			b.WriteString(attr.Key)
			b.WriteByte('=')
		}
		b.WriteString(formatValue(attr.Value))
	}
	for _, attr := range h.attrs {
		writeAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(attr)
		return true
	})
	b.WriteByte('\n')
	return b.Bytes()
}

// formatValue renders a value for the terminal, quoting strings when needed.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return escapeString(v.String())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	}

	switch value := v.Any().(type) {
	case nil:
		return "<nil>"
	case time.Time:
		return value.Format(timeFormat)
	case error:
		return escapeString(value.Error())
	case *big.Int, *uint256.Int:
		s, _ := stringify(value)
		return s
	}
	if s, ok := stringify(v.Any()); ok {
		return escapeString(s)
	}
	return escapeString(fmt.Sprintf("%+v", v.Any()))
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' || r == utf8.RuneError {
			return true
		}
	}
	return false
}

func escapeString(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

// escapeMessage quotes the message only if it contains control characters.
func escapeMessage(s string) string {
	for _, r := range s {
		if r < ' ' && r != '\t' {
			return strconv.Quote(s)
		}
	}
	return s
}
