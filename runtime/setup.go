// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/committee"
	"github.com/polymesh-go/polymeshd/compliance"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/multisig"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/system"
)

const defaultMaximumCallWeight system.Weight = 10000

// Configuration - runtime limits and module settings
type Configuration struct {
	MaximumCallWeight        uint64             `gluamapper:"max_call_weight" json:"max_call_weight"`
	MaximumScheduledLegs     int                `gluamapper:"max_scheduled_legs_per_block" json:"max_scheduled_legs_per_block"`
	MaximumLegs              int                `gluamapper:"max_legs" json:"max_legs"`
	MaximumComplexity        int                `gluamapper:"maximum_complexity" json:"maximum_complexity"`
	TickerMaxLength          int                `gluamapper:"ticker_max_length" json:"ticker_max_length"`
	TickerRegistrationLength primitives.Moment  `gluamapper:"ticker_registration_length" json:"ticker_registration_length"`
	MaxTotalSupply           primitives.Balance `gluamapper:"max_total_supply" json:"max_total_supply"`
	RequireCdd               bool               `gluamapper:"require_cdd" json:"require_cdd"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	config      Configuration
	calls       map[string]system.Handler
	initialised bool
}

// global data
var globalData globalDataType

type module struct {
	name     string
	finalise func() error
}

// modules in initialisation order, finalised in reverse
var started []module

// Initialise - start every module and build the dispatch table
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("runtime")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	if 0 == configuration.MaximumCallWeight {
		configuration.MaximumCallWeight = uint64(defaultMaximumCallWeight)
	}
	globalData.config = configuration
	globalData.log.Infof("configuration: %+v", configuration)

	steps := []struct {
		name       string
		initialise func() error
		finalise   func() error
	}{
		{"identity", identity.Initialise, identity.Finalise},
		{"portfolio", portfolio.Initialise, portfolio.Finalise},
		{"asset", func() error {
			return asset.Initialise(asset.Configuration{
				TickerMaxLength:          configuration.TickerMaxLength,
				TickerRegistrationLength: configuration.TickerRegistrationLength,
				MaxTotalSupply:           configuration.MaxTotalSupply,
			})
		}, asset.Finalise},
		{"compliance", func() error {
			return compliance.Initialise(compliance.Configuration{
				MaximumComplexity: configuration.MaximumComplexity,
			})
		}, compliance.Finalise},
		{"settlement", func() error {
			return settlement.Initialise(settlement.Configuration{
				MaximumLegs:          configuration.MaximumLegs,
				MaximumScheduledLegs: configuration.MaximumScheduledLegs,
			})
		}, settlement.Finalise},
		{"multisig", multisig.Initialise, multisig.Finalise},
		{"committee", committee.Initialise, committee.Finalise},
	}

	for _, step := range steps {
		globalData.log.Debugf("initialise: %s", step.name)
		if err := step.initialise(); nil != err {
			globalData.log.Criticalf("initialise: %s  error: %s", step.name, err)
			finaliseModules()
			return err
		}
		started = append(started, module{name: step.name, finalise: step.finalise})
	}

	asset.SetComplianceChecker(compliance.Checker{})
	portfolio.SetFundRules(asset.FundRules{})

	identity.RegisterAuthorizationHandler(primitives.AuthTransferTicker, asset.AcceptTickerTransfer)
	identity.RegisterAuthorizationHandler(primitives.AuthTransferAssetOwnership, asset.AcceptAssetOwnershipTransfer)
	identity.RegisterAuthorizationHandler(primitives.AuthBecomeAgent, asset.AcceptBecomeAgent)
	identity.RegisterAuthorizationHandler(primitives.AuthTransferCorporateActionAgent, asset.AcceptCorporateActionAgent)
	identity.RegisterAuthorizationHandler(primitives.AuthPortfolioCustody, portfolio.AcceptPortfolioCustody)
	identity.RegisterAuthorizationHandler(primitives.AuthAddMultisigSigner, multisig.AcceptMultisigSigner)

	globalData.calls = buildCalls()
	globalData.log.Infof("calls: %d", len(globalData.calls))

	globalData.initialised = true
	return nil
}

// Finalise - stop every module
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	finaliseModules()
	globalData.calls = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

func finaliseModules() {
	for i := len(started) - 1; i >= 0; i -= 1 {
		if err := started[i].finalise(); nil != err {
			globalData.log.Errorf("finalise: %s  error: %s", started[i].name, err)
		}
	}
	started = nil
}

func config() Configuration {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.config
}
