// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// revmtool replays state scenarios into a plain state database and unwinds them.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Version: fullVersion(),
		Name:    "revmtool",
		Usage:   "Replay and unwind account state changes",
		Flags: []cli.Flag{
			verbosityFlag,
			metricsFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "replay",
				Usage: "replay a scenario and commit the resulting changeset",
				Flags: []cli.Flag{
					scenarioFlag,
					dataDirFlag,
					legacyFlag,
					dumpFlag,
					codeCacheFlag,
				},
				Action: replayAction,
			},
			{
				Name:  "unwind",
				Usage: "revert the latest blocks of a plain state database",
				Flags: []cli.Flag{
					dataDirFlag,
					blocksFlag,
					codeCacheFlag,
				},
				Action: unwindAction,
			},
			{
				Name:  "inspect",
				Usage: "print an account and its storage",
				Flags: []cli.Flag{
					dataDirFlag,
					addressFlag,
					codeCacheFlag,
				},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
