// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/rpc/extrinsic"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/system"
)

func runRemark(c *cli.Context) error {
	note := c.String("note")
	if "" == note {
		return fmt.Errorf("missing note")
	}
	call, err := system.NewCall(runtime.SystemPallet, "remark", runtime.RemarkArgs{Note: []byte(note)})
	if nil != err {
		return err
	}
	return submit(c, call, false)
}

func runCall(c *cli.Context) error {
	pallet := c.String("pallet")
	method := c.String("method")
	if "" == pallet || "" == method {
		return fmt.Errorf("missing pallet or method")
	}
	args, err := hex.DecodeString(c.String("args"))
	if nil != err {
		return err
	}
	call := system.Call{Pallet: pallet, Method: method, Args: args}
	return submit(c, call, c.Bool("dry-run"))
}

func runAffirm(c *cli.Context) error {
	id := c.Uint64("instruction")
	names := c.StringSlice("portfolio")
	if 0 == len(names) {
		return fmt.Errorf("missing portfolio")
	}
	portfolios := make([]primitives.PortfolioID, len(names))
	for i, s := range names {
		p, err := checkPortfolio(s)
		if nil != err {
			return err
		}
		portfolios[i] = p
	}
	call, err := system.NewCall(settlement.Pallet, "affirm_instruction", settlement.AffirmArgs{ID: id, Portfolios: portfolios})
	if nil != err {
		return err
	}
	return submit(c, call, false)
}

// sign with the next nonce of the account and queue on the node
func submit(c *cli.Context, call system.Call, dryRun bool) error {
	m := configFromContext(c)

	key, err := checkSeed(c)
	if nil != err {
		return err
	}

	cl, err := newClient(m)
	if nil != err {
		return err
	}
	defer cl.Close()

	nonce, err := fetchNonce(cl, key.Key())
	if nil != err {
		return err
	}

	x := runtime.Sign(key, nonce, call)
	if dryRun {
		return printJSON(m.w, x)
	}

	var reply extrinsic.SubmitReply
	if err := cl.call("Extrinsic.Submit", x, &reply); nil != err {
		return err
	}
	return printJSON(m.w, reply)
}

func fetchNonce(cl *client, key account.Key) (uint64, error) {
	var reply extrinsic.NonceReply
	err := cl.call("Extrinsic.Nonce", &extrinsic.NonceArguments{Signer: key}, &reply)
	return reply.Nonce, err
}
