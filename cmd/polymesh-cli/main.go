// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

const (
	defaultConnect  = "127.0.0.1:2130"
	seedEnvironment = "POLYMESH_SEED"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "polymesh-cli"
	app.Usage = "sign extrinsics and query a polymeshd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	seedFlag := cli.StringFlag{
		Name:   "seed, s",
		Value:  "",
		Usage:  "*hex private key `SEED`",
		EnvVar: seedEnvironment,
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: defaultConnect,
			Usage: " polymeshd JSON-RPC `HOST:PORT`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new key pair",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "account",
			Usage:     "display the account key of a seed",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{seedFlag},
			Action:    runAccount,
		},
		{
			Name:   "info",
			Usage:  "display polymeshd status",
			Action: runInfo,
		},
		{
			Name:      "nonce",
			Usage:     "display the next nonce of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*base58 account `KEY`",
				},
			},
			Action: runNonce,
		},
		{
			Name:      "remark",
			Usage:     "submit a System.remark extrinsic",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				cli.StringFlag{
					Name:  "note, n",
					Value: "",
					Usage: "*remark `TEXT`",
				},
			},
			Action: runRemark,
		},
		{
			Name:      "call",
			Usage:     "sign and submit an already encoded call",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				cli.StringFlag{
					Name:  "pallet, p",
					Value: "",
					Usage: "*pallet `NAME`",
				},
				cli.StringFlag{
					Name:  "method, m",
					Value: "",
					Usage: "*method `NAME`",
				},
				cli.StringFlag{
					Name:  "args, a",
					Value: "",
					Usage: " encoded arguments `HEX`",
				},
				cli.BoolFlag{
					Name:  "dry-run, d",
					Usage: " only print the signed extrinsic",
				},
			},
			Action: runCall,
		},
		{
			Name:      "affirm",
			Usage:     "affirm a settlement instruction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				cli.Uint64Flag{
					Name:  "instruction, i",
					Value: 0,
					Usage: "*instruction `ID`",
				},
				cli.StringSliceFlag{
					Name:  "portfolio, p",
					Usage: "*affirming portfolio `DID[/NUMBER]`",
				},
			},
			Action: runAffirm,
		},
		{
			Name:      "balance",
			Usage:     "display the asset balance of an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "ticker, t",
					Value: "",
					Usage: "*asset `TICKER`",
				},
				cli.StringFlag{
					Name:  "did, d",
					Value: "",
					Usage: "*holder `DID`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "portfolio",
			Usage:     "display the holdings of a portfolio",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "portfolio, p",
					Value: "",
					Usage: "*portfolio `DID[/NUMBER]`",
				},
			},
			Action: runPortfolio,
		},
		{
			Name:      "instruction",
			Usage:     "display a settlement instruction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "*instruction `ID`",
				},
			},
			Action: runInstruction,
		},
		{
			Name:      "identity",
			Usage:     "display an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "did, d",
					Value: "",
					Usage: "*identity `DID`",
				},
			},
			Action: runIdentity,
		},
		{
			Name:      "events",
			Usage:     "dump the events of a range of blocks",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first block `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 1,
					Usage: " number of blocks `COUNT`",
				},
			},
			Action: runEvents,
		},
		{
			Name:      "checkpoints",
			Usage:     "list the upcoming moments of a checkpoint schedule",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: "*schedule start `MOMENT`",
				},
				cli.StringFlag{
					Name:  "unit, u",
					Value: "month",
					Usage: " period `UNIT` second..year",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 1,
					Usage: " period `AMOUNT`, zero is a single checkpoint",
				},
				cli.Uint64Flag{
					Name:  "now, n",
					Value: 0,
					Usage: " list after `MOMENT`, default is the start",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 12,
					Usage: " maximum moments to output `COUNT`",
				},
			},
			Action: runCheckpoints,
		},
		{
			Name:  "version",
			Usage: "display polymesh-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
