// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sarcophagus-org/sarco-ledger/api"
	"github.com/sarcophagus-org/sarco-ledger/cmd/sarco/httpserver"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "sarco",
		Usage:     "SARCO staking, voting rights and vesting ledger",
		Copyright: "2025 The VeChainThor developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			cacheFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Commands: []cli.Command{
			{
				Name:   "init",
				Usage:  "initialize the ledger from the genesis",
				Action: initAction,
			},
			{
				Name:  "serve",
				Usage: "serve the query API",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiTimeoutFlag,
					apiLogsLimitFlag,
					enableAPILogsFlag,
					apiSlowQueriesThresholdFlag,
					apiBacktraceLimitFlag,
					ntpServerFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: serveAction,
			},
			{
				Name:   "stake",
				Usage:  "stake SARCO; the staking ledger must be approved first",
				Flags:  []cli.Flag{fromFlag, amountFlag, timeFlag},
				Action: stakeAction,
			},
			{
				Name:   "unstake",
				Usage:  "unstake SARCO",
				Flags:  []cli.Flag{fromFlag, amountFlag, timeFlag},
				Action: unstakeAction,
			},
			{
				Name:   "approve",
				Usage:  "approve a spender of SARCO",
				Flags:  []cli.Flag{fromFlag, spenderFlag, amountFlag, timeFlag},
				Action: approveAction,
			},
			{
				Name:   "transfer",
				Usage:  "transfer SARCO",
				Flags:  []cli.Flag{fromFlag, toFlag, amountFlag, timeFlag},
				Action: transferAction,
			},
			{
				Name:   "vest",
				Usage:  "lock tokens for a beneficiary, released linearly over the duration",
				Flags:  []cli.Flag{fromFlag, beneficiaryFlag, amountFlag, durationFlag, assetFlag, timeFlag},
				Action: vestAction,
			},
			{
				Name:   "release",
				Usage:  "release vested tokens to the beneficiary",
				Flags:  []cli.Flag{fromFlag, beneficiaryFlag, assetFlag, timeFlag},
				Action: releaseAction,
			},
			{
				Name:   "release-to",
				Usage:  "release vested tokens of the caller to another recipient",
				Flags:  []cli.Flag{fromFlag, toFlag, assetFlag, timeFlag},
				Action: releaseToAction,
			},
			{
				Name:   "set-param",
				Usage:  "update a governance param; the caller must be the executor",
				Flags:  []cli.Flag{fromFlag, keyFlag, valueFlag, timeFlag},
				Action: setParamAction,
			},
			{
				Name:   "query",
				Usage:  "print stake, voting weight and vesting of an account",
				Flags:  []cli.Flag{accountFlag, indexFlag, assetFlag},
				Action: queryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)

	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	head := l.chain.Head()
	return printJSON(os.Stdout, map[string]any{
		"network":   l.gene.Name(),
		"genesisId": l.gene.ID(),
		"dataDir":   l.dir,
		"head":      head,
	})
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()
	initLogger(ctx)

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	l, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler, closeSubs := api.New(l.chain, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		EnableMetrics:        enableMetrics,
		EnableReqLogger:      apiLogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
		BacktraceLimit:       uint32(ctx.Uint64(apiBacktraceLimitFlag.Name)),
	})
	defer func() { logger.Info("closing subscriptions..."); closeSubs() }()

	apiSrv, err := httpserver.NewAPIServer(
		ctx.String(apiAddrFlag.Name),
		handler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}

	metricsURL := ""
	if enableMetrics {
		metricsSrv, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); metricsSrv.Close() }()
		metricsURL = metricsSrv.URL()
	}

	head := l.chain.Head()
	logger.Info("ledger started",
		"network", l.gene.Name(),
		"genesis", l.gene.ID(),
		"head", head.Number,
		"dataDir", l.dir,
		"api", apiSrv.URL(),
		"metrics", metricsURL,
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(sigCtx)
	group.Go(func() error {
		return apiSrv.Run(groupCtx)
	})
	group.Go(func() error {
		monitorClock(groupCtx, ctx.String(ntpServerFlag.Name), 30*time.Minute)
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("stopping API server...")
		return nil
	})
	return group.Wait()
}
