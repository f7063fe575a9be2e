// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package committee

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
)

// Pallet - name used in calls and events
const Pallet = "Committee"

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the committee module
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("committee")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the committee module
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
