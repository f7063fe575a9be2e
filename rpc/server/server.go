// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/counter"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/pending"
	"github.com/polymesh-go/polymeshd/rpc/extrinsic"
	"github.com/polymesh-go/polymeshd/rpc/node"
	"github.com/polymesh-go/polymeshd/rpc/state"
)

// Create - register all services on a new RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(node.New(log, start, version, rpcCount, pending.Count))
	_ = server.Register(extrinsic.New(log, extrinsic.PendingQueue(pending.Add), mode.IsNot))
	_ = server.Register(state.New(log))

	return server
}
