// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sarcophagus-org/sarco-ledger/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a yaml genesis file (devnet if not set)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "megabytes of ram allocated to the storage cache",
		Value: 256,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of logs returned by /logs API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration longer than this threshold (in milliseconds) will be logged",
	}
	apiBacktraceLimitFlag = cli.Uint64Flag{
		Name:  "api-backtrace-limit",
		Value: 1000,
		Usage: "limit the distance between 'pos' and the head block for subscriptions",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "NTP server to check the local clock against, empty to disable",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}

	// call flags
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "caller address, or the index of a devnet account",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount in whole tokens, e.g. 12.5",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "recipient address, or the index of a devnet account",
	}
	spenderFlag = cli.StringFlag{
		Name:  "spender",
		Usage: "spender address; defaults to the staking ledger",
	}
	beneficiaryFlag = cli.StringFlag{
		Name:  "beneficiary",
		Usage: "vesting beneficiary address, or the index of a devnet account",
	}
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "token address; defaults to SARCO",
	}
	durationFlag = cli.Uint64Flag{
		Name:  "duration",
		Usage: "vesting duration in seconds",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "block time in unix seconds; defaults to the wall clock",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "param key (min-unstake|executor)",
	}
	valueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "param value: whole tokens for min-unstake, an address for executor",
	}

	// query flags
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "account address, or the index of a devnet account",
	}
	indexFlag = cli.Int64Flag{
		Name:  "index",
		Value: -1,
		Usage: "block number for historical values; head if negative",
	}
)
