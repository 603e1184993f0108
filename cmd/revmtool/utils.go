// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/BrazilRaw/revm/log"
	"github.com/BrazilRaw/revm/lvldb"
	"github.com/BrazilRaw/revm/metrics"
	"github.com/BrazilRaw/revm/plaindb"
	"github.com/BrazilRaw/revm/state"
)

func initLogger(ctx *cli.Context) {
	fd := os.Stderr.Fd()
	useColor := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	handler := log.NewTerminalHandler(os.Stderr, useColor)
	log.SetDefault(log.WithVerbosity(handler, int(ctx.GlobalUint64(verbosityFlag.Name))))
}

func initMetrics(ctx *cli.Context) {
	if ctx.GlobalBool(metricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}
}

// dumpMetrics prints the collected metrics if they are enabled.
func dumpMetrics(ctx *cli.Context, w io.Writer) error {
	if !ctx.GlobalBool(metricsFlag.Name) {
		return nil
	}
	return metrics.Write(w)
}

// openPlainDB opens the plain state database in dataDir, or an in-memory one if dataDir is empty.
func openPlainDB(dataDir string, codeCacheSize int) (*plaindb.DB, func(), error) {
	var (
		store *lvldb.LevelDB
		err   error
	)
	if dataDir == "" {
		store, err = lvldb.NewMem()
	} else {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
		}
		store, err = lvldb.New(filepath.Join(dataDir, "plainstate"), lvldb.Options{})
	}
	if err != nil {
		return nil, nil, err
	}
	closeFunc := func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", "err", err)
		}
	}

	db, err := plaindb.New(store, codeCacheSize)
	if err != nil {
		closeFunc()
		return nil, nil, err
	}
	return db, closeFunc, nil
}

func requireDataDir(ctx *cli.Context) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", errors.Errorf("-%s is required", dataDirFlag.Name)
	}
	return dataDir, nil
}

func printChangeset(w io.Writer, changeset state.StateChangeset, reverts state.PlainStateReverts) {
	fmt.Fprintln(w, "accounts:")
	for _, a := range changeset.Accounts {
		fmt.Fprintf(w, "  %v %v\n", a.Address, a.Info)
	}
	fmt.Fprintln(w, "storage:")
	for _, s := range changeset.Storage {
		fmt.Fprintf(w, "  %v wipe=%v\n", s.Address, s.WipeStorage)
		for _, e := range s.Storage {
			fmt.Fprintf(w, "    %v = %v\n", e.Key.Dec(), e.Value.Dec())
		}
	}
	fmt.Fprintln(w, "contracts:")
	for _, c := range changeset.Contracts {
		fmt.Fprintf(w, "  %v (%d bytes)\n", c.CodeHash, len(c.Code))
	}
	for i := range reverts.Accounts {
		fmt.Fprintf(w, "revert #%d:\n", i)
		for _, a := range reverts.Accounts[i] {
			fmt.Fprintf(w, "  %v %v\n", a.Address, a.Info)
		}
		for _, s := range reverts.Storage[i] {
			fmt.Fprintf(w, "  %v wiped=%v\n", s.Address, s.Wiped)
			for _, e := range s.Storage {
				fmt.Fprintf(w, "    %v = %v\n", e.Key.Dec(), e.Value.Dec())
			}
		}
	}
}
