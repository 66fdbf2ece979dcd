// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the business failure of a builtin contract call.
// A revert is expected and recoverable: the call's state changes are discarded
// and the message is reported to the caller.
package reverts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// errorSelector is the 4-byte selector of Error(string).
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// ErrRevert is the error returned when a precondition of a contract call fails.
type ErrRevert struct {
	message string
}

// New creates a revert error with the given message.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// Newf creates a revert error with a formatted message.
func Newf(format string, args ...any) *ErrRevert {
	return New(fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Bytes returns the message abi-encoded as Error(string).
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}

	msg := []byte(e.message)
	padded := (len(msg) + 31) / 32 * 32

	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, errorSelector)
	// offset of the string, always 0x20
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	// length
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)
	return encoded
}

// IsRevertErr reports whether err is, or wraps, a revert error.
func IsRevertErr(err any) bool {
	e, ok := err.(error)
	if !ok || e == nil {
		return false
	}
	var re *ErrRevert
	return errors.As(e, &re) && re != nil
}

// AsRevertErr returns the revert error in err's chain, if any.
func AsRevertErr(err error) (*ErrRevert, bool) {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re, true
	}
	return nil, false
}
