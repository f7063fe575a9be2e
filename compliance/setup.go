// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
)

// Pallet - name used in calls and events
const Pallet = "ComplianceManager"

const (
	defaultMaximumComplexity = 50
)

// Configuration - compliance limits
type Configuration struct {
	MaximumComplexity int `gluamapper:"maximum_complexity" json:"maximum_complexity"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	complexity  int
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the compliance module
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("compliance")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.complexity = configuration.MaximumComplexity
	if globalData.complexity <= 0 {
		globalData.complexity = defaultMaximumComplexity
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the compliance module
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

func maximumComplexity() int {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.complexity
}
