// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/common"
)

// Address identifies an account, a token or one of the builtin contracts.
type Address common.Address

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) Bytes() []byte { return a[:] }

// IsZero reports whether a is the zero address, which is never a valid
// account.
func (a Address) IsZero() bool { return a == Address{} }

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixedHex(a[:], string(text))
}

// ParseAddress decodes a 20 byte hex address, with or without 0x.
func ParseAddress(s string) (*Address, error) {
	var addr Address
	if err := decodeFixedHex(addr[:], s); err != nil {
		return nil, err
	}
	return &addr, nil
}

// BytesToAddress keeps the rightmost 20 bytes of b, left padding with zeros
// when b is shorter.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}
