// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/genesis"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/lvldb"
)

func initLogger(ctx *cli.Context) *slog.LevelVar {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stderr, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
	return level
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.GlobalString(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer file.Close()

	custom, err := genesis.Decode(file)
	if err != nil {
		return nil, err
	}
	return genesis.NewCustomNet(custom)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".sarco-ledger")
	}
	return filepath.Join(os.TempDir(), ".sarco-ledger")
}

// makeInstanceDir returns the directory dedicated to the genesis.
func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.New("data dir not specified")
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openMainDB(ctx *cli.Context, dir string) (*lvldb.LevelDB, error) {
	cacheMB := normalizeCacheSize(ctx.GlobalInt(cacheFlag.Name))
	logger.Debug("cache size(MB)", "size", cacheMB)

	// Ensure Go's GC ignores the database cache for trigger percentage
	gogc := math.Max(20, math.Min(100, 100/(float64(cacheMB)/1024)))
	logger.Debug("sanitize Go's GC trigger", "percent", int(gogc))
	debug.SetGCPercent(int(gogc))

	fdCache := suggestFDCache()
	logger.Debug("fd cache", "n", fdCache)

	path := filepath.Join(dir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open main database [%v]", path)
	}
	return db, nil
}

func normalizeCacheSize(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem:", "err", err)
	} else {
		// limit to 1/2 os physical ram
		limitMB := int(mem.Total / 1024 / 1024 / 2)
		if sizeMB > limitMB {
			sizeMB = limitMB
			logger.Warn("cache size(MB) limited", "limit", limitMB)
		}
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		logger.Warn("failed to get fd limit", "err", err)
		return 500
	}
	if limit <= 1024 {
		logger.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5120)
}

func openLogDB(dir string) (*logdb.LogDB, error) {
	path := filepath.Join(dir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open log database [%v]", path)
	}
	return db, nil
}

// ledger holds the opened databases and chain.
type ledger struct {
	gene  *genesis.Genesis
	dir   string
	main  *lvldb.LevelDB
	logs  *logdb.LogDB
	chain *chain.Chain
}

func openLedger(ctx *cli.Context) (*ledger, error) {
	gene, err := selectGenesis(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := makeInstanceDir(ctx, gene)
	if err != nil {
		return nil, err
	}
	mainDB, err := openMainDB(ctx, dir)
	if err != nil {
		return nil, err
	}
	logDB, err := openLogDB(dir)
	if err != nil {
		mainDB.Close()
		return nil, err
	}
	c, err := chain.New(mainDB, logDB, gene)
	if err != nil {
		logDB.Close()
		mainDB.Close()
		return nil, errors.WithMessage(err, "initialize chain")
	}
	return &ledger{gene: gene, dir: dir, main: mainDB, logs: logDB, chain: c}, nil
}

func (l *ledger) Close() {
	logger.Debug("closing log database...")
	if err := l.logs.Close(); err != nil {
		logger.Warn("failed to close log database", "err", err)
	}
	logger.Debug("closing main database...")
	if err := l.main.Close(); err != nil {
		logger.Warn("failed to close main database", "err", err)
	}
}
