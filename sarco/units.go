// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

import (
	"errors"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Unit returns one whole token at the given decimal scale, i.e. 10^decimals.
func Unit(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// ParseAmount parses a decimal amount such as "12.5" into base units.
// The result must fit into 256 bits.
func ParseAmount(s string, decimals uint8) (*big.Int, error) {
	intPart, fracPart, _ := strings.Cut(strings.TrimSpace(s), ".")
	if intPart == "" && fracPart == "" {
		return nil, errors.New("empty amount")
	}
	if len(fracPart) > int(decimals) {
		return nil, errors.New("too many decimal places")
	}
	digits := intPart + fracPart + strings.Repeat("0", int(decimals)-len(fracPart))
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return new(big.Int), nil
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return nil, err
	}
	return v.ToBig(), nil
}

// FormatAmount renders base units as a decimal string at the given scale.
// Trailing fractional zeros are dropped.
func FormatAmount(v *big.Int, decimals uint8) string {
	if v == nil || v.Sign() <= 0 {
		return "0"
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return v.String()
	}
	digits := u.Dec()
	if decimals == 0 {
		return digits
	}
	if pad := int(decimals) + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	split := len(digits) - int(decimals)
	frac := strings.TrimRight(digits[split:], "0")
	if frac == "" {
		return digits[:split]
	}
	return digits[:split] + "." + frac
}
