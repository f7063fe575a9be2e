// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
)

// client - JSON-RPC connection to polymeshd
type client struct {
	conn    *rpc.Client
	verbose bool
	e       io.Writer
}

func newClient(m *metadata) (*client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	conn, err := jsonrpc.Dial("tcp", m.connect)
	if nil != err {
		return nil, err
	}
	return &client{conn: conn, verbose: m.verbose, e: m.e}, nil
}

func (c *client) Close() {
	_ = c.conn.Close()
}

// call - with the request and reply shown when verbose
func (c *client) call(method string, arguments interface{}, reply interface{}) error {
	if c.verbose {
		b, _ := json.Marshal(arguments)
		fmt.Fprintf(c.e, "%s: %s\n", method, b)
	}
	if err := c.conn.Call(method, arguments, reply); nil != err {
		return err
	}
	if c.verbose {
		b, _ := json.Marshal(reply)
		fmt.Fprintf(c.e, "reply: %s\n", b)
	}
	return nil
}

func printJSON(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func configFromContext(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

func checkSeed(c *cli.Context) (*account.PrivateKey, error) {
	seed := c.String("seed")
	if "" == seed {
		return nil, fmt.Errorf("missing seed")
	}
	return account.PrivateKeyFromHex(seed)
}

func checkDID(s string) (primitives.DID, error) {
	var did primitives.DID
	if "" == s {
		return did, fmt.Errorf("missing did")
	}
	err := did.UnmarshalText([]byte(s))
	return did, err
}

// "DID" is the default portfolio, "DID/N" a user portfolio
func checkPortfolio(s string) (primitives.PortfolioID, error) {
	parts := strings.SplitN(s, "/", 2)
	did, err := checkDID(parts[0])
	if nil != err {
		return primitives.PortfolioID{}, err
	}
	if 1 == len(parts) || "default" == parts[1] {
		return primitives.DefaultPortfolio(did), nil
	}
	n, err := strconv.ParseUint(parts[1], 10, 64)
	if nil != err {
		return primitives.PortfolioID{}, err
	}
	return primitives.UserPortfolio(did, primitives.PortfolioNumber(n)), nil
}
