// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package extrinsic

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/rpc/ratelimit"
	"github.com/polymesh-go/polymeshd/runtime"
)

const (
	rateLimitExtrinsic = 100
	rateBurstExtrinsic = 200
)

// Queue - where submitted extrinsics wait for a block
type Queue interface {
	Add(*runtime.Extrinsic) (merkle.Digest, error)
}

// Extrinsic - type for RPC calls
type Extrinsic struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Queue   Queue
	IsNot   func(mode.Mode) bool
}

// New - create the Extrinsic service
func New(log *logger.L, queue Queue, isNot func(mode.Mode) bool) *Extrinsic {
	return &Extrinsic{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitExtrinsic, rateBurstExtrinsic),
		Queue:   queue,
		IsNot:   isNot,
	}
}

// SubmitReply - hash of the queued extrinsic
type SubmitReply struct {
	Hash merkle.Digest `json:"hash"`
}

// Submit - queue a signed extrinsic
func (e *Extrinsic) Submit(arguments *runtime.Extrinsic, reply *SubmitReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == len(arguments.Signature) {
		return fault.ErrMissingParameters
	}
	if e.IsNot(mode.Normal) {
		return fault.ErrNodeStopped
	}

	hash, err := e.Queue.Add(arguments)
	if nil != err {
		e.Log.Debugf("submit: %s  error: %s", hash, err)
		return err
	}
	e.Log.Infof("submit: %s  call: %s  signer: %s", hash, arguments.Call.Name(), arguments.Signer)
	reply.Hash = hash
	return nil
}

// NonceArguments - the account to query
type NonceArguments struct {
	Signer account.Key `json:"signer"`
}

// NonceReply - the nonce the next extrinsic of the account must carry
type NonceReply struct {
	Nonce uint64 `json:"nonce,string"`
}

// Nonce - next nonce of an account, queued extrinsics are not counted
func (e *Extrinsic) Nonce(arguments *NonceArguments, reply *NonceReply) error {
	if err := ratelimit.Limit(e.Limiter); nil != err {
		return err
	}
	runtime.View(func() {
		reply.Nonce = runtime.Nonce(arguments.Signer)
	})
	return nil
}

// PendingQueue - adapts the package level pending functions
type PendingQueue func(*runtime.Extrinsic) (merkle.Digest, error)

// Add - queue an extrinsic
func (f PendingQueue) Add(x *runtime.Extrinsic) (merkle.Digest, error) {
	return f(x)
}
