// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// AcceptHandler - consumes an authorization of one kind for the caller
type AcceptHandler func(ctx *system.Context, authID uint64) error

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	handlers    map[primitives.AuthorizationKind]AcceptHandler
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - set up the identity module
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("identity")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.handlers = map[primitives.AuthorizationKind]AcceptHandler{
		primitives.AuthJoinIdentity:        JoinIdentityAsKey,
		primitives.AuthRotatePrimaryKey:    acceptRotation,
		primitives.AuthAddRelayerPayingKey: AcceptPayingKey,
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the identity module
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.handlers = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// RegisterAuthorizationHandler - route accept_authorization for a kind
// to the module that owns it
func RegisterAuthorizationHandler(kind primitives.AuthorizationKind, handler AcceptHandler) {
	globalData.Lock()
	globalData.handlers[kind] = handler
	globalData.Unlock()
}

func handlerFor(kind primitives.AuthorizationKind) (AcceptHandler, bool) {
	globalData.RLock()
	defer globalData.RUnlock()
	h, ok := globalData.handlers[kind]
	return h, ok
}
