// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/blocks"
	"github.com/sarcophagus-org/sarco-ledger/api/events"
	"github.com/sarcophagus-org/sarco-ledger/api/middleware"
	"github.com/sarcophagus-org/sarco-ledger/api/node"
	"github.com/sarcophagus-org/sarco-ledger/api/staking"
	"github.com/sarcophagus-org/sarco-ledger/api/subscriptions"
	"github.com/sarcophagus-org/sarco-ledger/api/tokens"
	"github.com/sarcophagus-org/sarco-ledger/api/vesting"
	"github.com/sarcophagus-org/sarco-ledger/api/voting"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	LogsLimit            uint64
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	BacktraceLimit       uint32
}

// New return api router and a func to close the subscriptions, whose hijacked
// conns the http server does not track.
func New(chain *chain.Chain, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.LogsLimit == 0 {
		opts.LogsLimit = 1000
	}
	if opts.BacktraceLimit == 0 {
		opts.BacktraceLimit = 1000
	}

	router := mux.NewRouter()

	staking.New(chain, opts.LogsLimit).
		Mount(router, "/staking")
	voting.New(chain).
		Mount(router, "/voting")
	vesting.New(chain).
		Mount(router, "/vesting")
	tokens.New(chain).
		Mount(router, "/tokens")
	events.New(chain.LogDB(), opts.LogsLimit).
		Mount(router, "/logs/event")
	node.New(chain).
		Mount(router, "/head")
	blocks.New(chain).
		Mount(router, "/blocks")
	subs := subscriptions.New(chain, origins, opts.BacktraceLimit)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	if opts.EnableReqLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold))
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP, subs.Close
}
