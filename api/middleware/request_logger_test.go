// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sarcophagus-org/sarco-ledger/log"
)

type mockLogger struct {
	log.Logger
	records [][]any
}

func (m *mockLogger) Info(_ string, ctx ...any) {
	m.records = append(m.records, ctx)
}

func TestRequestLoggerHandler(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		enabled   bool
		threshold time.Duration
		want      int
	}{
		{"disabled", false, 0, 0},
		{"enabled", true, 0, 1},
		{"slow only", false, time.Hour, 0},
		{"slow threshold passed", false, time.Nanosecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{Logger: log.NewLogger(log.DiscardHandler())}
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			h := RequestLoggerMiddleware(logger, &enabled, tt.threshold)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.threshold == time.Nanosecond {
					time.Sleep(time.Millisecond)
				}
				handler.ServeHTTP(w, r)
			}))

			req := httptest.NewRequestWithContext(context.Background(), http.MethodGet, "/head", nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Len(t, logger.records, tt.want)
			if tt.want > 0 {
				assert.Contains(t, logger.records[0], http.StatusOK)
				assert.Contains(t, logger.records[0], "/head")
			}
		})
	}
}
