// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit(t *testing.T) {
	assert.Equal(t, big.NewInt(1), Unit(0))
	assert.Equal(t, "1000000000000000000", Unit(18).String())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{"1", 18, "1000000000000000000", false},
		{"12.5", 2, "1250", false},
		{".5", 1, "5", false},
		{"0", 18, "0", false},
		{"000.000", 3, "0", false},
		{"1000", 0, "1000", false},
		{"1.234", 2, "", true},
		{"", 18, "", true},
		{"abc", 18, "", true},
		{"-1", 18, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatAmount(t *testing.T) {
	v, _ := new(big.Int).SetString("1250000000000000000", 10)
	assert.Equal(t, "1.25", FormatAmount(v, 18))
	assert.Equal(t, "0.001", FormatAmount(big.NewInt(1), 3))
	assert.Equal(t, "7", FormatAmount(big.NewInt(7000), 3))
	assert.Equal(t, "42", FormatAmount(big.NewInt(42), 0))
	assert.Equal(t, "0", FormatAmount(nil, 18))
}

func TestParseAddress(t *testing.T) {
	addr := BytesToAddress([]byte("Staking"))
	parsed, err := ParseAddress(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)
	_, err = ParseAddress("1x" + addr.String()[2:])
	assert.Error(t, err)

	var decoded Address
	require.NoError(t, decoded.UnmarshalText([]byte(addr.String())))
	assert.Equal(t, addr, decoded)
	assert.False(t, decoded.IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBlake2b(t *testing.T) {
	joined := Blake2b([]byte("foobar"))
	split := Blake2b([]byte("foo"), []byte("bar"))
	assert.Equal(t, joined, split)
	assert.NotEqual(t, Bytes32{}, joined)

	// keccak256("")
	assert.Equal(t,
		MustParseBytes32("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		Keccak256(nil))
}
