// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import "github.com/sarcophagus-org/sarco-ledger/metrics"

var (
	metricActiveConns  = metrics.LazyLoadGauge("api_active_websocket_count")
	metricMessagesSent = metrics.LazyLoadCounter("api_websocket_messages_sent_count")
)
