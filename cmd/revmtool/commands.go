// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/BrazilRaw/revm/log"
	"github.com/BrazilRaw/revm/plaindb"
	"github.com/BrazilRaw/revm/primitives"
	"github.com/BrazilRaw/revm/state"
)

func replayAction(ctx *cli.Context) error {
	initLogger(ctx)
	initMetrics(ctx)

	path := ctx.String(scenarioFlag.Name)
	if path == "" {
		return errors.Errorf("-%s is required", scenarioFlag.Name)
	}
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	db, closeFunc, err := openPlainDB(ctx.String(dataDirFlag.Name), ctx.Int(codeCacheFlag.Name))
	if err != nil {
		return err
	}
	defer closeFunc()

	bundle, firstBlock, err := runScenario(db, sc, ctx.Bool(legacyFlag.Name))
	if err != nil {
		return err
	}
	changeset, reverts := bundle.IntoPlainState(true)

	if ctx.Bool(dumpFlag.Name) {
		spew.Fdump(os.Stdout, bundle)
	} else {
		printChangeset(os.Stdout, changeset, reverts)
	}

	if err := db.Commit(firstBlock, changeset, reverts); err != nil {
		return errors.Wrap(err, "commit")
	}
	log.Info("replayed scenario", "blocks", len(sc.Blocks), "first", firstBlock, "accounts", bundle.Len())
	return dumpMetrics(ctx, os.Stdout)
}

// runScenario seeds a fresh database with the prestate, replays the blocks and returns
// the resulting bundle with the number of its first block.
func runScenario(db *plaindb.DB, sc *scenario, legacy bool) (*state.BundleState, uint64, error) {
	head, hasHead, err := db.Head()
	if err != nil {
		return nil, 0, err
	}
	firstBlock := sc.FirstBlock
	if hasHead {
		firstBlock = head + 1
		log.Info("continuing from database head", "head", head)
	} else {
		prestate, err := sc.prestateChangeset()
		if err != nil {
			return nil, 0, err
		}
		if err := db.Commit(firstBlock, prestate, state.PlainStateReverts{}); err != nil {
			return nil, 0, errors.Wrap(err, "commit prestate")
		}
	}

	builder := state.NewBuilder().WithDatabase(db).WithBundleUpdate()
	if legacy || sc.Legacy {
		builder = builder.WithoutStateClear()
	}
	s := builder.Build()
	if err := replay(s, sc); err != nil {
		return nil, 0, err
	}
	return s.TakeBundle(), firstBlock, nil
}

func unwindAction(ctx *cli.Context) error {
	initLogger(ctx)
	initMetrics(ctx)

	dataDir, err := requireDataDir(ctx)
	if err != nil {
		return err
	}
	db, closeFunc, err := openPlainDB(dataDir, ctx.Int(codeCacheFlag.Name))
	if err != nil {
		return err
	}
	defer closeFunc()

	if err := db.Unwind(ctx.Int(blocksFlag.Name)); err != nil {
		return err
	}
	if head, ok, err := db.Head(); err != nil {
		return err
	} else if ok {
		fmt.Println("head:", head)
	} else {
		fmt.Println("head: none")
	}
	return dumpMetrics(ctx, os.Stdout)
}

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	dataDir, err := requireDataDir(ctx)
	if err != nil {
		return err
	}
	addr, err := primitives.ParseAddress(ctx.String(addressFlag.Name))
	if err != nil {
		return errors.Wrapf(err, "-%s", addressFlag.Name)
	}
	db, closeFunc, err := openPlainDB(dataDir, ctx.Int(codeCacheFlag.Name))
	if err != nil {
		return err
	}
	defer closeFunc()

	info, err := db.Basic(addr)
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println(addr, "does not exist")
		return nil
	}
	fmt.Println(addr, info)

	storage, err := db.StorageOf(addr)
	if err != nil {
		return err
	}
	keys := make([]uint256.Int, 0, len(storage))
	for k := range storage {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b uint256.Int) int { return a.Cmp(&b) })
	for _, k := range keys {
		v := storage[k]
		fmt.Printf("  %v = %v\n", k.Dec(), v.Dec())
	}
	return nil
}
