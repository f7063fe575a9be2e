// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
)

// Pallet - name used in calls and events
const Pallet = "Settlement"

const (
	defaultMaximumLegs          = 10
	defaultMaximumScheduledLegs = 100
	maximumVenueDetailsLength   = 1024
	maximumInstructionMediators = 4
)

// Configuration - settlement limits
type Configuration struct {
	MaximumLegs          int `gluamapper:"max_legs" json:"max_legs"`
	MaximumScheduledLegs int `gluamapper:"max_scheduled_legs_per_block" json:"max_scheduled_legs_per_block"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	config      Configuration
	assets      Assets
	portfolios  Portfolios
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the settlement engine
//
// the asset and portfolio modules are used unless replaced
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("settlement")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	if configuration.MaximumLegs <= 0 {
		configuration.MaximumLegs = defaultMaximumLegs
	}
	if configuration.MaximumScheduledLegs <= 0 {
		configuration.MaximumScheduledLegs = defaultMaximumScheduledLegs
	}
	globalData.config = configuration
	globalData.assets = assetModule{}
	globalData.portfolios = portfolioModule{}
	globalData.log.Infof("configuration: %+v", configuration)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the settlement engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.initialised = false
	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// SetAssets - replace the asset capability
func SetAssets(assets Assets) {
	globalData.Lock()
	globalData.assets = assets
	globalData.Unlock()
}

// SetPortfolios - replace the portfolio capability
func SetPortfolios(portfolios Portfolios) {
	globalData.Lock()
	globalData.portfolios = portfolios
	globalData.Unlock()
}

func config() Configuration {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.config
}

func assets() Assets {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.assets
}

func portfolios() Portfolios {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.portfolios
}
