// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/rpc/node"
	"github.com/polymesh-go/polymeshd/rpc/state"
)

// connect, make one call and print the reply
func query(c *cli.Context, method string, arguments interface{}, reply interface{}) error {
	m := configFromContext(c)

	cl, err := newClient(m)
	if nil != err {
		return err
	}
	defer cl.Close()

	if err := cl.call(method, arguments, reply); nil != err {
		return err
	}
	return printJSON(m.w, reply)
}

func runInfo(c *cli.Context) error {
	var reply node.InfoReply
	return query(c, "Node.Info", &node.InfoArguments{}, &reply)
}

func runNonce(c *cli.Context) error {
	key, err := account.KeyFromBase58(c.String("account"))
	if nil != err {
		return err
	}

	m := configFromContext(c)
	cl, err := newClient(m)
	if nil != err {
		return err
	}
	defer cl.Close()

	nonce, err := fetchNonce(cl, key)
	if nil != err {
		return err
	}
	fmt.Fprintf(m.w, "%d\n", nonce)
	return nil
}

func runBalance(c *cli.Context) error {
	ticker, err := primitives.NewTicker(c.String("ticker"))
	if nil != err {
		return err
	}
	did, err := checkDID(c.String("did"))
	if nil != err {
		return err
	}
	var reply state.BalanceReply
	return query(c, "State.Balance", &state.BalanceArguments{Ticker: ticker, DID: did}, &reply)
}

func runPortfolio(c *cli.Context) error {
	p, err := checkPortfolio(c.String("portfolio"))
	if nil != err {
		return err
	}
	var reply state.PortfolioReply
	return query(c, "State.PortfolioBalance", &state.PortfolioArguments{Portfolio: p}, &reply)
}

func runInstruction(c *cli.Context) error {
	var reply state.InstructionReply
	return query(c, "State.Instruction", &state.InstructionArguments{ID: c.Uint64("id")}, &reply)
}

func runIdentity(c *cli.Context) error {
	did, err := checkDID(c.String("did"))
	if nil != err {
		return err
	}
	var reply state.IdentityReply
	return query(c, "State.Identity", &state.IdentityArguments{DID: did}, &reply)
}

func runEvents(c *cli.Context) error {
	var reply state.EventsReply
	return query(c, "State.Events", &state.EventsArguments{Start: c.Uint64("start"), Count: c.Int("count")}, &reply)
}
