// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/sarcophagus-org/sarco-ledger/log"
)

// RequestLoggerMiddleware logs every request while enabled is set. Requests
// slower than slowThreshold are logged either way, a zero threshold turns
// that off.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slowThreshold == 0 && !enabled.Load() {
				next.ServeHTTP(w, r)
				return
			}

			m := httpsnoop.CaptureMetrics(next, w, r)
			slow := slowThreshold > 0 && m.Duration > slowThreshold
			if !slow && !enabled.Load() {
				return
			}
			logger.Info("API request",
				"method", r.Method,
				"uri", r.URL.String(),
				"status", m.Code,
				"bytes", m.Written,
				"ms", m.Duration.Milliseconds(),
				"slow", slow,
			)
		})
	}
}
