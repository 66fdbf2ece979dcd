// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

const devAccountCount = 5

// DevAccount is one of the well known devnet accounts. Its key is derived
// from a public seed and must never hold anything of value.
type DevAccount struct {
	Address    sarco.Address
	PrivateKey *ecdsa.PrivateKey
}

// DevAccounts returns the funded devnet accounts, in a fixed order.
var DevAccounts = sync.OnceValue(func() []DevAccount {
	accs := make([]DevAccount, 0, devAccountCount)
	for i := range devAccountCount {
		seed := crypto.Keccak256([]byte(fmt.Sprintf("sarco-ledger devnet account %d", i)))
		key, err := crypto.ToECDSA(seed)
		if err != nil {
			panic(err)
		}
		accs = append(accs, DevAccount{
			Address:    sarco.Address(crypto.PubkeyToAddress(key.PublicKey)),
			PrivateKey: key,
		})
	}
	return accs
})

// NewDevnet creates the development genesis. Every dev account holds one
// million SARCO and the first one is the params executor.
func NewDevnet() *Genesis {
	accs := DevAccounts()
	executor := accs[0].Address

	gen := &CustomGenesis{
		Name:       "devnet",
		LaunchTime: 1526400000,
		Params:     Params{Executor: &executor},
	}
	for _, acc := range accs {
		gen.Accounts = append(gen.Accounts, Account{Address: acc.Address, Balance: "1000000"})
	}

	g, err := NewCustomNet(gen)
	if err != nil {
		panic(err)
	}
	return g
}
