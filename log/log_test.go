// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	var out bytes.Buffer
	var lvl slog.LevelVar
	lvl.Set(slog.LevelInfo)

	l := NewLogger(NewTerminalHandlerWithLevel(&out, &lvl, false)).With("pkg", "staking")
	l.Debug("hidden")
	l.Info("staked", "amount", big.NewInt(1000), "total", uint256.NewInt(42), "note", "two words")

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO ["), line)
	assert.Contains(t, line, "staked")
	assert.Contains(t, line, "pkg=staking")
	assert.Contains(t, line, "amount=1000")
	assert.Contains(t, line, "total=42")
	assert.Contains(t, line, `note="two words"`)
	assert.NotContains(t, line, "hidden")
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestJSONHandler(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(JSONHandler(&out))
	l.Warn("released", "amount", big.NewInt(250))

	var m map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, "warn", m["lvl"])
	assert.Equal(t, "released", m["msg"])
	assert.Equal(t, "250", m["amount"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "vesting")

	var out bytes.Buffer
	SetDefault(NewLogger(LogfmtHandler(&out)))
	pkgLogger.Info("vest started", "duration", 100)

	assert.Contains(t, out.String(), "pkg=vesting")
	assert.Contains(t, out.String(), "duration=100")
	assert.Contains(t, out.String(), "lvl=info")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, LevelTrace, FromLegacyLevel(5))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
	assert.Equal(t, LevelCrit, FromLegacyLevel(-1))
}
