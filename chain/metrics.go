// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/sarcophagus-org/sarco-ledger/metrics"

var (
	metricBlockCount  = metrics.LazyLoadCounter("chain_block_count")
	metricHeadNumber  = metrics.LazyLoadGauge("chain_head_number")
	metricTotalStaked = metrics.LazyLoadGauge("staking_total_staked")
	metricStakers     = metrics.LazyLoadGauge("staking_total_stakers")
)
