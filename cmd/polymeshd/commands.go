// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/configuration"
	"github.com/polymesh-go/polymeshd/runtime"
)

// setup command handler
//
// commands that cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "start", "run":
		return false // continue processing

	case "genesis", "g", "dump", "d", "calls":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  genesis                    (g)      - write the configured genesis block and exit\n")
		fmt.Printf("\n")

		fmt.Printf("  dump S [E [FILE]]          (d)      - dump block(s) as a JSON structures to stdout/file\n")
		fmt.Printf("\n")

		fmt.Printf("  calls                               - list every dispatchable call\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// storage and runtime are initialised so these commands can
// access and/or change the chain state
func processDataCommand(log *logger.L, arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "genesis", "g":
		block, err := runtime.WriteGenesis(options.Genesis)
		if nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}
		log.Infof("genesis: %s  events: %d", block.Digest, len(block.Events))
		fmt.Printf("genesis: %s\n", block.Digest)

	case "calls":
		for _, name := range runtime.CallNames() {
			fmt.Printf("%s\n", name)
		}

	case "dump", "d":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}

		start, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}

		finish := start
		if len(arguments) > 1 {
			finish, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending block number: %s", err)
			}
		}
		if finish < start {
			exitwithstatus.Message("ending block: %d is before start: %d", finish, start)
		}

		out := io.Writer(os.Stdout)
		if len(arguments) > 2 {
			fh, err := os.Create(arguments[2])
			if nil != err {
				exitwithstatus.Message("cannot create: %q  error: %s", arguments[2], err)
			}
			defer fh.Close()
			out = fh
		}

		blocks := make([]*blockResult, 0, finish-start+1)
		for n := start; n <= finish; n += 1 {
			block, err := dumpBlock(n)
			if nil != err {
				exitwithstatus.Message("dump block: %d  error: %s", n, err)
			}
			blocks = append(blocks, block)
		}
		printJSON(out, blocks)

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(out io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	fmt.Fprintf(out, "%s\n", b)
}

// height of the stored chain, for log messages
func height() uint64 {
	h, _ := blockrecord.Height()
	return h
}
