// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/counter"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/rpc/ratelimit"
	"github.com/polymesh-go/polymeshd/runtime"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Pending func() int
	counter *counter.Counter
}

// New - create the Node service
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, pending func() int) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Pending: pending,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string    `json:"chain"`
	Mode    string    `json:"mode"`
	Block   BlockInfo `json:"block"`
	RPCs    uint64    `json:"rpcs"`
	Pending int       `json:"pending"`
	Version string    `json:"version"`
	Uptime  string    `json:"uptime"`
}

// BlockInfo - the chain head
type BlockInfo struct {
	Height uint64 `json:"height"`
	Moment uint64 `json:"moment"`
	Hash   string `json:"hash"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	var (
		header *blockrecord.Header
		ok     bool
	)
	runtime.View(func() {
		header, reply.Block.Hash, ok = head()
	})
	if !ok {
		return fault.ErrBlockNotFound
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Block.Height = header.Number
	reply.Block.Moment = uint64(header.Moment)
	reply.RPCs = node.counter.Uint64()
	if nil != node.Pending {
		reply.Pending = node.Pending()
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).Round(time.Second).String()
	return nil
}

func head() (*blockrecord.Header, string, bool) {
	h, digest, ok := blockrecord.Head()
	if !ok {
		return nil, "", false
	}
	return h, digest.String(), true
}
