// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/messagebus"
	"github.com/polymesh-go/polymeshd/multisig"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// serialises block production against readers of committed state
var chainLock sync.RWMutex

// calls a key may make before its identity has a cdd claim
var bootstrapCalls = map[string]struct{}{
	identity.Pallet + ".register_did":           {},
	identity.Pallet + ".cdd_register_did":       {},
	identity.Pallet + ".join_identity_as_key":   {},
	identity.Pallet + ".accept_authorization":   {},
	multisig.Pallet + ".accept_multisig_signer": {},
	SystemPallet + ".remark":                    {},
}

// Result - outcome of one extrinsic offered to a block
type Result struct {
	Hash     merkle.Digest `json:"hash"`
	Included bool          `json:"included"`
	Error    string        `json:"error,omitempty"`
	Weight   system.Weight `json:"weight"`
}

// Block - a produced block
type Block struct {
	Header  *blockrecord.Header `json:"header"`
	Digest  merkle.Digest       `json:"digest"`
	Results []Result            `json:"results"`
	Events  []system.Event      `json:"events"`
}

// View - run f against committed state with block production held off
func View(f func()) {
	chainLock.RLock()
	defer chainLock.RUnlock()
	f()
}

// ProduceBlock - apply hooks and extrinsics and commit a new block
//
// extrinsics with a bad signature or nonce are left out of the block,
// every other extrinsic is included even if its call fails
func ProduceBlock(extrinsics []*Extrinsic, now primitives.Moment) (*Block, error) {
	chainLock.Lock()
	defer chainLock.Unlock()

	globalData.RLock()
	initialised := globalData.initialised
	globalData.RUnlock()
	if !initialised {
		return nil, fault.ErrNotInitialised
	}

	head, headDigest, ok := blockrecord.Head()
	if !ok {
		return nil, fault.ErrBlockNotFound
	}
	if now < head.Moment {
		now = head.Moment
	}
	number := head.Number + 1

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	ctx := system.NewContext(trx, number, now)
	ctx.SetDispatcher(dispatcher{})

	// on_initialize
	if err := settlement.OnInitialize(ctx); nil != err {
		trx.Abort()
		return nil, err
	}
	if err := asset.OnInitialize(ctx); nil != err {
		trx.Abort()
		return nil, err
	}

	results := make([]Result, 0, len(extrinsics))
	hashes := make([]merkle.Digest, 0, len(extrinsics))
	for _, x := range extrinsics {
		r := apply(ctx, x)
		results = append(results, r)
		if r.Included {
			hashes = append(hashes, r.Hash)
		}
	}

	// on_finalize
	header := &blockrecord.Header{
		Version:        blockrecord.Version,
		Number:         number,
		Moment:         now,
		PreviousBlock:  headDigest,
		ExtrinsicsRoot: merkle.Root(hashes),
		ExtrinsicCount: uint32(len(hashes)),
		EventCount:     system.EventCount(number),
	}
	if err := blockrecord.ValidNext(head, headDigest, header); nil != err {
		logger.Panicf("runtime: block: %d  invalid header: %s", number, err)
	}
	blockrecord.Put(header)
	events := system.Events(number)

	if err := trx.Commit(); nil != err {
		trx.Abort()
		globalData.log.Errorf("block: %d  commit error: %s", number, err)
		return nil, err
	}

	block := &Block{
		Header:  header,
		Digest:  header.Digest(),
		Results: results,
		Events:  events,
	}
	globalData.log.Infof("block: %d  extrinsics: %d/%d  events: %d  digest: %s", number, len(hashes), len(extrinsics), len(events), block.Digest)
	messagebus.Bus.Broadcast.Send("block", block)
	return block, nil
}

// apply one extrinsic inside the open block transaction
func apply(ctx *system.Context, x *Extrinsic) Result {
	r := Result{Hash: x.Hash()}

	if err := x.Verify(); nil != err {
		r.Error = err.Error()
		return r
	}
	if err := useNonce(x); nil != err {
		r.Error = err.Error()
		return r
	}
	r.Included = true

	callCtx := ctx.WithCall(system.Signed(x.Signer), x.Call.Pallet, x.Call.Method, system.Weight(config().MaximumCallWeight))
	err := callCtx.Transactional(func() error {
		if err := ensureCdd(callCtx, x); nil != err {
			return err
		}
		return dispatcher{}.Dispatch(callCtx, x.Call)
	})
	r.Weight = callCtx.Used()

	if nil != err {
		r.Error = err.Error()
		ctx.Deposit(SystemPallet, "ExtrinsicFailed", x.Signer, x.Call.Name(), err)
		globalData.log.Debugf("extrinsic: %s  call: %s  error: %s", r.Hash, x.Call.Name(), err)
		return r
	}
	ctx.Deposit(SystemPallet, "ExtrinsicSuccess", x.Signer, x.Call.Name(), r.Weight)
	return r
}

// when cdd is required the signer identity needs a current claim
func ensureCdd(ctx *system.Context, x *Extrinsic) error {
	if !config().RequireCdd {
		return nil
	}
	if _, ok := bootstrapCalls[x.Call.Name()]; ok {
		return nil
	}
	did, ok := identity.KeyIdentity(x.Signer)
	if !ok {
		return nil
	}
	if !identity.HasValidCdd(ctx, did, 0) {
		return fault.ErrCddMissing
	}
	return nil
}
