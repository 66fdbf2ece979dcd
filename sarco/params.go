// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sarco

// Keys of governance params.
var (
	// KeyMinUnstake is the param key for the smallest amount accepted by an unstake, in base units.
	// When unset, one whole token at the staked asset's decimal scale applies.
	KeyMinUnstake = BytesToBytes32([]byte("min-unstake"))
	// KeyExecutorAddress is the param key for the only account allowed to update params.
	KeyExecutorAddress = BytesToBytes32([]byte("executor"))
)

// Token defaults.
const (
	DefaultDecimals = uint8(18)

	TokenName          = "Sarcophagus"
	TokenSymbol        = "SARCO"
	VotingRightsName   = "SARCO Voting Rights"
	VotingRightsSymbol = "SARCO-VR"
)
