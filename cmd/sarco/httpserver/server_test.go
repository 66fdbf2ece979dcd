// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarcophagus-org/sarco-ledger/metrics"
)

func TestAPIServer(t *testing.T) {
	srv, err := NewAPIServer("localhost:0", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok")
	}), time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	res, err := http.Get(srv.URL() + "head") //#nosec G107
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server not stopped")
	}
}

func TestMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test_count").Add(1)

	srv, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer srv.Close()

	res, err := http.Get(srv.URL()) //#nosec G107
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "sarco_ledger_httpserver_test_count 1")
}
