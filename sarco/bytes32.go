// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Bytes32 is a storage word, a hash or an event topic.
type Bytes32 [32]byte

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) Bytes() []byte { return b[:] }

func (b Bytes32) IsZero() bool { return b == Bytes32{} }

func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	return decodeFixedHex(b[:], string(text))
}

// ParseBytes32 decodes 32 bytes of hex, with or without 0x.
func ParseBytes32(s string) (b Bytes32, err error) {
	err = decodeFixedHex(b[:], s)
	return
}

// MustParseBytes32 is ParseBytes32 for constants, it panics on bad input.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BytesToBytes32 keeps the rightmost 32 bytes of b, left padding with zeros
// when b is shorter.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
