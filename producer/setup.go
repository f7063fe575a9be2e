// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package producer

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/background"
	"github.com/polymesh-go/polymeshd/constants"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/metrics"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/pending"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/runtime"
)

// defaults
const (
	defaultInterval      = constants.BlockInterval
	defaultMaximumBlock  = 1000
	minimumBlockInterval = 100 * time.Millisecond
)

// Configuration - block production settings
type Configuration struct {
	Interval          time.Duration
	MaximumExtrinsics int
}

// globals
type globalDataType struct {
	sync.RWMutex
	log        *logger.L
	config     Configuration
	produced   uint64
	background *background.T

	loop loopData

	initialised bool
}

var globalData globalDataType

// Initialise - start producing a block every interval while the node
// is in normal mode
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("producer")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	if 0 == configuration.Interval {
		configuration.Interval = defaultInterval
	}
	if configuration.Interval < minimumBlockInterval {
		globalData.log.Errorf("block interval: %s  below: %s", configuration.Interval, minimumBlockInterval)
		return fault.ErrInvalidBlockInterval
	}
	if configuration.MaximumExtrinsics <= 0 {
		configuration.MaximumExtrinsics = defaultMaximumBlock
	}
	globalData.config = configuration
	globalData.produced = 0
	globalData.log.Infof("interval: %s  maximum extrinsics: %d", configuration.Interval, configuration.MaximumExtrinsics)

	globalData.loop.log = globalData.log
	globalData.loop.interval = configuration.Interval
	globalData.background = background.Start(background.Processes{&globalData.loop}, nil)

	globalData.initialised = true
	return nil
}

// Finalise - stop producing
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// Produce - put the ready part of the pending queue into a new block
func Produce(now time.Time) (*runtime.Block, error) {
	globalData.RLock()
	maximum := globalData.config.MaximumExtrinsics
	globalData.RUnlock()
	if 0 == maximum {
		maximum = defaultMaximumBlock
	}

	start := time.Now()
	offered := pending.Take(maximum)
	block, err := runtime.ProduceBlock(offered, primitives.Moment(now.Unix()))
	if nil != err {
		return nil, err
	}
	pending.Included(offered, block)

	metrics.ObserveProduction(time.Since(start))
	metrics.SetPending(pending.Count())

	globalData.Lock()
	globalData.produced += 1
	globalData.Unlock()
	return block, nil
}

// Produced - blocks produced since start
func Produced() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.produced
}

type loopData struct {
	log      *logger.L
	interval time.Duration
}

// Run - the block loop
func (state *loopData) Run(args interface{}, shutdown <-chan struct{}) {
	log := state.log
	ticker := time.NewTicker(state.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case now := <-ticker.C:
			if mode.IsNot(mode.Normal) {
				continue loop
			}
			block, err := Produce(now)
			if nil != err {
				log.Errorf("produce error: %s", err)
				continue loop
			}
			log.Debugf("block: %d  extrinsics: %d", block.Header.Number, block.Header.ExtrinsicCount)
		}
	}
	log.Info("stopped")
}
