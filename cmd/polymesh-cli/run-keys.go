// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"

	"github.com/urfave/cli"

	"github.com/polymesh-go/polymeshd/account"
)

type keyReply struct {
	Seed    string      `json:"seed,omitempty"`
	Account account.Key `json:"account"`
}

func runGenerate(c *cli.Context) error {
	m := configFromContext(c)

	key, err := account.NewPrivateKey(rand.Reader)
	if nil != err {
		return err
	}
	return printJSON(m.w, keyReply{
		Seed:    key.Seed(),
		Account: key.Key(),
	})
}

func runAccount(c *cli.Context) error {
	m := configFromContext(c)

	key, err := checkSeed(c)
	if nil != err {
		return err
	}
	return printJSON(m.w, keyReply{Account: key.Key()})
}
