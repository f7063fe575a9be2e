// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
)

// Pallet - name used in calls and events
const Pallet = "Portfolio"

const maximumNameLength = 64

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	funds       FundRules
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the portfolio module
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("portfolio")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the portfolio module
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.funds = nil
	globalData.initialised = false
	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// SetFundRules - install the asset checks applied to moved funds
func SetFundRules(rules FundRules) {
	globalData.Lock()
	globalData.funds = rules
	globalData.Unlock()
}

func fundRules() FundRules {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.funds
}
