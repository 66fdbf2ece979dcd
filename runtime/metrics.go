// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/sarcophagus-org/sarco-ledger/metrics"

var (
	metricClauseCount    = metrics.LazyLoadCounterVec("clause_count", []string{"contract", "method", "status"})
	metricClauseDuration = metrics.LazyLoadHistogram("clause_duration_ms", metrics.BucketExecution)
)
