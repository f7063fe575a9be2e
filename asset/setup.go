// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// Pallet - name used in calls and events
const Pallet = "Asset"

// limits
const (
	maximumAssetNameLength     = 128
	maximumDocumentFieldLength = 1024
	maximumMetadataNameLength  = 256
	maximumMetadataValueLength = 8192
)

// Configuration - asset module limits
type Configuration struct {
	TickerMaxLength          int                `gluamapper:"ticker_max_length" json:"ticker_max_length"`
	TickerRegistrationLength primitives.Moment  `gluamapper:"ticker_registration_length" json:"ticker_registration_length"`
	MaxTotalSupply           primitives.Balance `gluamapper:"max_total_supply" json:"max_total_supply"`
}

// ComplianceChecker - the transfer predicate of an asset
type ComplianceChecker interface {
	VerifyTransfer(ctx *system.Context, ticker primitives.Ticker, sender primitives.DID, receiver primitives.DID) error
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	config      Configuration
	compliance  ComplianceChecker
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the asset module
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("asset")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	if configuration.TickerMaxLength <= 0 || configuration.TickerMaxLength > primitives.TickerLength {
		configuration.TickerMaxLength = primitives.TickerLength
	}
	if 0 == configuration.MaxTotalSupply {
		configuration.MaxTotalSupply = 1000000000000 * primitives.OneUnit
	}
	globalData.config = configuration
	globalData.log.Infof("configuration: %+v", configuration)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the asset module
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.compliance = nil
	globalData.initialised = false
	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// SetComplianceChecker - install the predicate consulted by every transfer
func SetComplianceChecker(checker ComplianceChecker) {
	globalData.Lock()
	globalData.compliance = checker
	globalData.Unlock()
}

func config() Configuration {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.config
}

func complianceChecker() ComplianceChecker {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.compliance
}
