// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	scenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "path to the YAML scenario to replay",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for the plain state database (in-memory if empty)",
	}
	legacyFlag = cli.BoolFlag{
		Name:  "legacy",
		Usage: "disable EIP-161 state clearing, as before Spurious Dragon",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "print collected metrics on exit",
	}
	blocksFlag = cli.IntFlag{
		Name:  "blocks",
		Value: 1,
		Usage: "number of blocks to unwind",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the full bundle instead of the plain changeset",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "account address to inspect",
	}
	codeCacheFlag = cli.IntFlag{
		Name:   "code-cache",
		Value:  512,
		Hidden: true,
		Usage:  "number of contract codes kept in memory",
	}
)
