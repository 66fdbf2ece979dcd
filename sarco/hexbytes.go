// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

import (
	"encoding/hex"
	"errors"
	"strings"
)

// decodeFixedHex fills dst from s, which must hold exactly len(dst) bytes of
// hex with an optional 0x prefix.
func decodeFixedHex(dst []byte, s string) error {
	if len(s) == len(dst)*2+2 {
		if !strings.EqualFold(s[:2], "0x") {
			return errors.New("invalid prefix")
		}
		s = s[2:]
	}
	if len(s) != len(dst)*2 {
		return errors.New("invalid length")
	}
	_, err := hex.Decode(dst, []byte(s))
	return err
}
