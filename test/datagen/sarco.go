// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

func RandBytes32() (b sarco.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (addr sarco.Address) {
	rand.Read(addr[:])
	return
}

func RandAddresses(n int) []sarco.Address {
	addrs := make([]sarco.Address, n)
	for i := range addrs {
		addrs[i] = RandAddress()
	}
	return addrs
}
