// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/co"
	"github.com/sarcophagus-org/sarco-ledger/metrics"
)

// MetricsServer exposes the prometheus meters under /metrics.
type MetricsServer struct {
	url  string
	srv  *http.Server
	goes co.Goes
}

// StartMetricsServer serves in the background until Close.
func StartMetricsServer(addr string) (*MetricsServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	s := &MetricsServer{
		url: "http://" + listener.Addr().String() + "/metrics",
		srv: &http.Server{
			Handler:           handlers.CompressHandler(router),
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
	}
	s.goes.Go(func() {
		if err := s.srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "err", err)
		}
	})
	return s, nil
}

func (s *MetricsServer) URL() string { return s.url }

// Close stops serving and waits for the serving goroutine.
func (s *MetricsServer) Close() {
	s.srv.Close()
	s.goes.Wait()
}
