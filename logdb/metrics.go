// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/sarcophagus-org/sarco-ledger/metrics"
)

var (
	metricCriteriaLengthBucket = metrics.LazyLoadHistogram("logdb_criteria_length_bucket", []int64{0, 2, 5, 10, 25, 100})
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricLimitBucket          = metrics.LazyLoadHistogram("logdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	metricCriteriaLengthBucket().Observe(int64(len(filter.CriteriaSet)))

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		metricLimitBucket().Observe(int64(min(filter.Options.Limit, 1001)))
	}

	for _, c := range filter.CriteriaSet {
		paramsUsed := make([]string, 0, 2)
		if c.Address != nil {
			paramsUsed = append(paramsUsed, "address")
		}
		if c.Name != "" {
			paramsUsed = append(paramsUsed, "name")
		}
		metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})
	}
}
