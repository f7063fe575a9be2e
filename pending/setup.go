// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/background"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/limitedset"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/runtime"
)

// number of table shards must be a power of 2
// and mask is the corresponding bit mask
// only the first byte of the signer key is used
const (
	shards = 16         // maximum value: 256
	mask   = shards - 1 // bit mask
)

// limits
const (
	maximumPending = 10000
	recentlySeen   = 50000
)

// a queued extrinsic
type dataItem struct {
	extrinsic *runtime.Extrinsic
	timestamp time.Time
}

// lockable map
type lockable struct {
	sync.RWMutex
	table map[merkle.Digest]dataItem
}

// globals
type globalDataType struct {
	sync.RWMutex
	log    *logger.L
	cache  [shards]lockable
	recent *limitedset.LimitedSet

	expiry     expiryData
	background *background.T

	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - create the queue and start the expiry process
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("pending")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.expiry.log = logger.New("pending-expiry")
	if nil == globalData.expiry.log {
		return fault.ErrInvalidLoggerChannel
	}

	for i := 0; i < shards; i += 1 {
		globalData.cache[i] = lockable{
			table: make(map[merkle.Digest]dataItem, maximumPending/shards),
		}
	}
	globalData.recent = limitedset.New(recentlySeen)

	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.expiry,
	}
	globalData.background = background.Start(processes, &globalData)

	globalData.initialised = true
	return nil
}

// Finalise - stop the expiry process and drop everything queued
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()
	for i := 0; i < shards; i += 1 {
		globalData.cache[i].table = nil
	}

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

func shard(signer account.Key) *lockable {
	return &globalData.cache[signer[0]&mask]
}

// Add - queue a signed extrinsic for the next blocks
//
// the signature is checked here so that a block never has to carry
// an extrinsic that could not have been included, a nonce below the
// account nonce can never be included and is refused
func Add(x *runtime.Extrinsic) (merkle.Digest, error) {
	hash := x.Hash()

	globalData.RLock()
	initialised := globalData.initialised
	globalData.RUnlock()
	if !initialised {
		return hash, fault.ErrNotInitialised
	}

	if err := x.Verify(); nil != err {
		return hash, err
	}
	if globalData.recent.Exists(hash) {
		return hash, fault.ErrDuplicateExtrinsic
	}

	var nonce uint64
	runtime.View(func() {
		nonce = runtime.Nonce(x.Signer)
	})
	if x.Nonce < nonce {
		return hash, fault.ErrInvalidNonce
	}

	if Count() >= maximumPending {
		return hash, fault.ErrPendingQueueFull
	}

	s := shard(x.Signer)
	s.Lock()
	defer s.Unlock()

	if _, ok := s.table[hash]; ok {
		return hash, fault.ErrDuplicateExtrinsic
	}
	s.table[hash] = dataItem{
		extrinsic: x,
		timestamp: time.Now(),
	}
	globalData.log.Debugf("add: %s  signer: %s  nonce: %d", hash, x.Signer, x.Nonce)
	return hash, nil
}

// Count - number of queued extrinsics
func Count() int {
	n := 0
	for i := 0; i < shards; i += 1 {
		globalData.cache[i].RLock()
		n += len(globalData.cache[i].table)
		globalData.cache[i].RUnlock()
	}
	return n
}

// Take - the extrinsics that can go into the next block, up to maximum
//
// each signer contributes a run of consecutive nonces starting at its
// account nonce, signers are visited in key order
func Take(maximum int) []*runtime.Extrinsic {
	bySigner := make(map[account.Key][]*runtime.Extrinsic)
	for i := 0; i < shards; i += 1 {
		globalData.cache[i].RLock()
		for _, item := range globalData.cache[i].table {
			x := item.extrinsic
			bySigner[x.Signer] = append(bySigner[x.Signer], x)
		}
		globalData.cache[i].RUnlock()
	}

	signers := make([]account.Key, 0, len(bySigner))
	for k := range bySigner {
		signers = append(signers, k)
	}
	sort.Slice(signers, func(i, j int) bool {
		return bytes.Compare(signers[i][:], signers[j][:]) < 0
	})

	result := make([]*runtime.Extrinsic, 0, maximum)
	runtime.View(func() {
	next_signer:
		for _, signer := range signers {
			queued := bySigner[signer]
			sort.Slice(queued, func(i, j int) bool {
				return queued[i].Nonce < queued[j].Nonce
			})
			expected := runtime.Nonce(signer)
			for _, x := range queued {
				if len(result) >= maximum {
					return
				}
				if x.Nonce < expected {
					continue
				}
				if x.Nonce != expected {
					continue next_signer
				}
				result = append(result, x)
				expected += 1
			}
		}
	})
	return result
}

// Included - drop everything offered to a block
//
// results follow the order of offered, included extrinsics are
// remembered so that a resubmission is refused
func Included(offered []*runtime.Extrinsic, block *runtime.Block) {
	for i, x := range offered {
		if i < len(block.Results) && block.Results[i].Included {
			globalData.recent.Add(block.Results[i].Hash)
		}
		s := shard(x.Signer)
		s.Lock()
		delete(s.table, x.Hash())
		s.Unlock()
	}
}

// Remove - drop one extrinsic, returns false if it was not queued
func Remove(hash merkle.Digest) bool {
	for i := 0; i < shards; i += 1 {
		s := &globalData.cache[i]
		s.Lock()
		_, ok := s.table[hash]
		delete(s.table, hash)
		s.Unlock()
		if ok {
			return true
		}
	}
	return false
}
