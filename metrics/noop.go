// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return &noopMetrics{} }

// every meter kind shares a single discarding value
var discard = &noopMeters{}

func (*noopMetrics) GetOrCreateCountMeter(string) CountMeter                 { return discard }
func (*noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return discard }
func (*noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter                 { return discard }
func (*noopMetrics) GetOrCreateHistogramMeter(string, []int64) HistogramMeter {
	return discard
}
func (*noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return discard
}
func (*noopMetrics) GetOrCreateHandler() http.Handler { return nil }

type noopMeters struct{}

func (*noopMeters) Add(int64)                                  {}
func (*noopMeters) Set(int64)                                  {}
func (*noopMeters) Observe(int64)                              {}
func (*noopMeters) AddWithLabel(int64, map[string]string)      {}
func (*noopMeters) ObserveWithLabels(int64, map[string]string) {}
