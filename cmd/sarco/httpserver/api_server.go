// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/log"
)

var logger = log.WithContext("pkg", "httpserver")

// APIServer serves the ledger API until its context is done.
type APIServer struct {
	listener net.Listener
	srv      *http.Server
	timeout  time.Duration
}

// NewAPIServer listens on addr. Requests are cut off after timeout when it's positive.
func NewAPIServer(addr string, handler http.Handler, timeout time.Duration) (*APIServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout > 0 {
		handler = handleAPITimeout(handler, timeout)
	}
	return &APIServer{
		listener: listener,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		timeout:  timeout,
	}, nil
}

// URL returns the base url.
func (s *APIServer) URL() string {
	return "http://" + s.listener.Addr().String() + "/"
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (s *APIServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve API")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown API")
		}
		return nil
	}
}

// handleAPITimeout cuts off plain requests after timeout. Websocket upgrades
// are long lived and left alone.
func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	timed := http.TimeoutHandler(h, timeout, "request timed out")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			h.ServeHTTP(w, r)
			return
		}
		timed.ServeHTTP(w, r)
	})
}
