// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"

	"github.com/sarcophagus-org/sarco-ledger/builtin/reverts"
	"github.com/sarcophagus-org/sarco-ledger/builtin/solidity"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/state"
)

var logger = log.WithContext("pkg", "vesting")

var slotVests = sarco.BytesToBytes32([]byte("vests"))

// Asset is a token that can be vested.
type Asset interface {
	Transfer(sender, recipient sarco.Address, amount *big.Int) error
	TransferFrom(spender, owner, recipient sarco.Address, amount *big.Int) error
}

// AssetResolver binds the token at an address.
type AssetResolver func(addr sarco.Address) Asset

// Record is the vesting schedule of one beneficiary for one asset.
type Record struct {
	Start    uint64   `json:"start"`
	Duration uint64   `json:"duration"`
	Total    *big.Int `json:"total"`
	Released *big.Int `json:"released"`
	Created  bool     `json:"created"`
}

// Vested returns the amount vested at blockTime. It never exceeds Total and
// reaches it exactly once the duration has elapsed.
func (r *Record) Vested(blockTime uint64) *big.Int {
	if !r.Created || r.Duration == 0 || blockTime <= r.Start {
		return new(big.Int)
	}
	elapsed := min(blockTime-r.Start, r.Duration)
	vested := new(big.Int).Mul(r.Total, new(big.Int).SetUint64(elapsed))
	return vested.Quo(vested, new(big.Int).SetUint64(r.Duration))
}

// Releasable returns the amount vested at blockTime and not yet released.
func (r *Record) Releasable(blockTime uint64) *big.Int {
	return new(big.Int).Sub(r.Vested(blockTime), r.Released)
}

type vestKey struct {
	asset, beneficiary sarco.Address
}

func (k vestKey) Bytes() []byte {
	return append(k.asset.Bytes(), k.beneficiary.Bytes()...)
}

// Vesting implements native methods of `Vesting` contract.
type Vesting struct {
	context *solidity.Context
	resolve AssetResolver
	vests   *solidity.Mapping[vestKey, *Record]
}

// New create a new instance.
func New(addr sarco.Address, state *state.State, emit solidity.EmitFunc, resolve AssetResolver) *Vesting {
	sctx := solidity.NewContext(addr, state, emit)
	return &Vesting{
		context: sctx,
		resolve: resolve,
		vests:   solidity.NewMapping[vestKey, *Record](sctx, slotVests),
	}
}

// Address returns the address holding vested tokens in custody.
func (v *Vesting) Address() sarco.Address {
	return v.context.Address()
}

// Get returns the record of beneficiary for asset. A missing record reads as
// all zero with Created false.
func (v *Vesting) Get(asset, beneficiary sarco.Address) (*Record, error) {
	r, err := v.vests.Get(vestKey{asset, beneficiary})
	if err != nil {
		return nil, err
	}
	if r.Total == nil {
		r.Total = new(big.Int)
	}
	if r.Released == nil {
		r.Released = new(big.Int)
	}
	return r, nil
}

func (v *Vesting) Start(asset, beneficiary sarco.Address) (uint64, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return 0, err
	}
	return r.Start, nil
}

func (v *Vesting) Duration(asset, beneficiary sarco.Address) (uint64, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return 0, err
	}
	return r.Duration, nil
}

func (v *Vesting) TotalTokens(asset, beneficiary sarco.Address) (*big.Int, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return nil, err
	}
	return r.Total, nil
}

func (v *Vesting) ReleasedTokens(asset, beneficiary sarco.Address) (*big.Int, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return nil, err
	}
	return r.Released, nil
}

func (v *Vesting) Created(asset, beneficiary sarco.Address) (bool, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return false, err
	}
	return r.Created, nil
}

// Releasable returns the amount a release at blockTime would pay.
func (v *Vesting) Releasable(blockTime uint64, asset, beneficiary sarco.Address) (*big.Int, error) {
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return nil, err
	}
	return r.Releasable(blockTime), nil
}

// StartVest pulls amount of asset from the initiator and vests it linearly
// to beneficiary over duration seconds, starting at blockTime.
func (v *Vesting) StartVest(
	blockTime uint64,
	initiator, beneficiary sarco.Address,
	amount *big.Int,
	duration uint64,
	asset sarco.Address,
) error {
	if beneficiary.IsZero() {
		return reverts.New("GeneralTokenVesting: beneficiary is the zero address")
	}
	if asset.IsZero() {
		return reverts.New("GeneralTokenVesting: token is the zero address")
	}
	if amount.Sign() <= 0 {
		return reverts.New("GeneralTokenVesting: amount is zero")
	}
	if duration == 0 {
		return reverts.New("GeneralTokenVesting: duration is 0")
	}

	key := vestKey{asset, beneficiary}
	existing, err := v.vests.Get(key)
	if err != nil {
		return err
	}
	if existing.Created {
		return reverts.New("GeneralTokenVesting: Vest already created for this token => beneficiary")
	}

	if err := v.resolve(asset).TransferFrom(v.Address(), initiator, v.Address(), amount); err != nil {
		return err
	}

	record := &Record{
		Start:    blockTime,
		Duration: duration,
		Total:    new(big.Int).Set(amount),
		Released: new(big.Int),
		Created:  true,
	}
	if err := v.vests.Set(key, record); err != nil {
		return err
	}

	logger.Debug("vest started", "asset", asset, "beneficiary", beneficiary, "amount", amount, "start", blockTime, "duration", duration)
	v.context.Emit(&VestStarted{
		Asset:       asset,
		Beneficiary: beneficiary,
		Amount:      record.Total,
		Start:       blockTime,
		Duration:    duration,
	})
	return nil
}

// Release pays the releasable amount of asset to beneficiary.
func (v *Vesting) Release(blockTime uint64, asset, beneficiary sarco.Address) error {
	return v.release(blockTime, asset, beneficiary, beneficiary)
}

// ReleaseTo pays the releasable amount of asset vested to the caller to recipient.
func (v *Vesting) ReleaseTo(blockTime uint64, asset, caller, recipient sarco.Address) error {
	return v.release(blockTime, asset, caller, recipient)
}

func (v *Vesting) release(blockTime uint64, asset, beneficiary, recipient sarco.Address) error {
	key := vestKey{asset, beneficiary}
	r, err := v.Get(asset, beneficiary)
	if err != nil {
		return err
	}

	vested := r.Vested(blockTime)
	releasable := new(big.Int).Sub(vested, r.Released)
	if releasable.Sign() <= 0 {
		return reverts.New("GeneralTokenVesting: no tokens are due")
	}

	if err := v.resolve(asset).Transfer(v.Address(), recipient, releasable); err != nil {
		return err
	}

	r.Released = vested
	if err := v.vests.Set(key, r); err != nil {
		return err
	}

	logger.Debug("tokens released", "asset", asset, "beneficiary", beneficiary, "recipient", recipient, "amount", releasable)
	v.context.Emit(&TokensReleased{
		Asset:       asset,
		Beneficiary: beneficiary,
		Recipient:   recipient,
		Amount:      releasable,
	})
	return nil
}
