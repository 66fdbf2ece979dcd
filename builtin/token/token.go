// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

var logger = log.WithContext("pkg", "token")

var (
	slotMetadata    = nameToSlot("metadata")
	slotTotalSupply = nameToSlot("total-supply")
	slotBalances    = nameToSlot("balances")
	slotAllowances  = nameToSlot("allowances")
)

func nameToSlot(name string) sarco.Bytes32 {
	return sarco.BytesToBytes32([]byte(name))
}

// Metadata describes a token.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type allowanceKey struct {
	owner, spender sarco.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// Token is a fungible token kept in the storage of its own address.
// Any address can be bound as a token; an address never initialized is an
// empty token without metadata, supply or balances.
type Token struct {
	context     *solidity.Context
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[sarco.Address, *big.Int]
	allowances  *solidity.Mapping[allowanceKey, *big.Int]
}

// New binds the token at addr.
func New(addr sarco.Address, state *state.State, emit solidity.EmitFunc) *Token {
	ctx := solidity.NewContext(addr, state, emit)
	return &Token{
		context:     ctx,
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[sarco.Address, *big.Int](ctx, slotBalances),
		allowances:  solidity.NewMapping[allowanceKey, *big.Int](ctx, slotAllowances),
	}
}

// Address returns the token address.
func (t *Token) Address() sarco.Address {
	return t.context.Address()
}

// Initialize sets the token metadata. It can be done only once.
func (t *Token) Initialize(meta Metadata) error {
	raw, err := t.context.State().GetRawStorage(t.Address(), slotMetadata)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		return errors.New("token already initialized")
	}
	return t.context.State().EncodeStorage(t.Address(), slotMetadata, func() ([]byte, error) {
		return rlp.EncodeToBytes(&meta)
	})
}

// Metadata returns name, symbol and decimals. All are empty for an uninitialized token.
func (t *Token) Metadata() (*Metadata, error) {
	var meta Metadata
	err := t.context.State().DecodeStorage(t.Address(), slotMetadata, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &meta)
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (t *Token) Name() (string, error) {
	meta, err := t.Metadata()
	if err != nil {
		return "", err
	}
	return meta.Name, nil
}

func (t *Token) Symbol() (string, error) {
	meta, err := t.Metadata()
	if err != nil {
		return "", err
	}
	return meta.Symbol, nil
}

func (t *Token) Decimals() (uint8, error) {
	meta, err := t.Metadata()
	if err != nil {
		return 0, err
	}
	return meta.Decimals, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

func (t *Token) BalanceOf(addr sarco.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) Allowance(owner, spender sarco.Address) (*big.Int, error) {
	return t.allowances.Get(allowanceKey{owner, spender})
}

// Approve sets the amount spender may transfer out of the owner's balance.
func (t *Token) Approve(owner, spender sarco.Address, amount *big.Int) error {
	if owner.IsZero() {
		return reverts.New("ERC20: approve from the zero address")
	}
	if spender.IsZero() {
		return reverts.New("ERC20: approve to the zero address")
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := t.allowances.Set(allowanceKey{owner, spender}, amount); err != nil {
		return err
	}
	t.context.Emit(&Approval{Owner: owner, Spender: spender, Value: new(big.Int).Set(amount)})
	return nil
}

// Transfer moves amount from sender to recipient.
func (t *Token) Transfer(sender, recipient sarco.Address, amount *big.Int) error {
	if sender.IsZero() {
		return reverts.New("ERC20: transfer from the zero address")
	}
	if recipient.IsZero() {
		return reverts.New("ERC20: transfer to the zero address")
	}
	if err := checkAmount(amount); err != nil {
		return err
	}

	senderBalance, err := t.balances.Get(sender)
	if err != nil {
		return err
	}
	if senderBalance.Cmp(amount) < 0 {
		return reverts.New("ERC20: transfer amount exceeds balance")
	}
	if err := t.balances.Set(sender, senderBalance.Sub(senderBalance, amount)); err != nil {
		return err
	}

	recipientBalance, err := t.balances.Get(recipient)
	if err != nil {
		return err
	}
	if err := t.balances.Set(recipient, recipientBalance.Add(recipientBalance, amount)); err != nil {
		return err
	}

	t.context.Emit(&Transfer{From: sender, To: recipient, Value: new(big.Int).Set(amount)})
	return nil
}

// TransferFrom moves amount from owner to recipient using the allowance granted to spender.
// A failed call leaves no change behind.
func (t *Token) TransferFrom(spender, owner, recipient sarco.Address, amount *big.Int) (err error) {
	st := t.context.State()
	rev := st.NewCheckpoint()
	defer func() {
		if err != nil {
			st.RevertTo(rev)
		}
	}()

	if err := checkAmount(amount); err != nil {
		return err
	}
	balance, err := t.balances.Get(owner)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.New("ERC20: transfer amount exceeds balance")
	}
	allowance, err := t.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.New("ERC20: transfer amount exceeds allowance")
	}

	if err := t.Transfer(owner, recipient, amount); err != nil {
		return err
	}
	return t.Approve(owner, spender, allowance.Sub(allowance, amount))
}

// Mint creates amount tokens owned by to.
func (t *Token) Mint(to sarco.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.New("ERC20: mint to the zero address")
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if _, err := t.totalSupply.Add(amount); err != nil {
		return err
	}
	balance, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, balance.Add(balance, amount)); err != nil {
		return err
	}
	logger.Debug("minted", "token", t.Address(), "to", to, "amount", amount)
	t.context.Emit(&Transfer{From: sarco.Address{}, To: to, Value: new(big.Int).Set(amount)})
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.New("ERC20: negative amount")
	}
	if amount.BitLen() > 256 {
		return reverts.New("ERC20: amount overflows uint256")
	}
	return nil
}
