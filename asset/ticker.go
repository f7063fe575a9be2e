// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// TickerRegistration - reservation of a ticker, zero expiry never expires
type TickerRegistration struct {
	Owner  primitives.DID
	Expiry primitives.Moment
}

// Registration - the reservation of a ticker
func Registration(ticker primitives.Ticker) (*TickerRegistration, bool) {
	var r TickerRegistration
	if !storage.Pool.TickerRegistrations.GetRecord(ticker[:], &r) {
		return nil, false
	}
	return &r, true
}

func (r *TickerRegistration) expired(now primitives.Moment) bool {
	return 0 != r.Expiry && r.Expiry <= now
}

// VerifyTicker - character rules and the configured length
func VerifyTicker(ticker primitives.Ticker) error {
	return ticker.Verify(config().TickerMaxLength)
}

// ensure a ticker is free, or already reserved by did
func ensureTickerAvailable(ctx *system.Context, ticker primitives.Ticker, did primitives.DID) error {
	if err := VerifyTicker(ticker); nil != err {
		return err
	}
	if Exists(ticker) {
		return fault.ErrAssetAlreadyCreated
	}
	if r, ok := Registration(ticker); ok && r.Owner != did && !r.expired(ctx.Now()) {
		return fault.ErrTickerAlreadyRegistered
	}
	return nil
}

// RegisterTicker - reserve a ticker for the caller identity
func RegisterTicker(ctx *system.Context, ticker primitives.Ticker) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := ensureTickerAvailable(ctx, ticker, caller.DID); nil != err {
		return err
	}

	expiry := primitives.Moment(0)
	if length := config().TickerRegistrationLength; 0 != length {
		expiry = ctx.Now() + length
	}
	storage.Pool.TickerRegistrations.PutRecord(ticker[:], &TickerRegistration{
		Owner:  caller.DID,
		Expiry: expiry,
	})
	ctx.Deposit(Pallet, "TickerRegistered", caller.DID, ticker, expiry)
	return nil
}

// AcceptTickerTransfer - the target identity takes over a reservation
func AcceptTickerTransfer(ctx *system.Context, authID uint64) error {
	a, err := identity.TakeAuthorization(ctx, authID, primitives.AuthTransferTicker)
	if nil != err {
		return err
	}
	if !a.Target.IsIdentity() {
		return fault.ErrInvalidAuthorizationKind
	}
	ticker := a.Data.Ticker
	r, ok := Registration(ticker)
	if !ok {
		return fault.ErrTickerNotRegistered
	}
	if r.Owner != a.AuthorizedBy {
		return fault.ErrInvalidAuthorizationFromOwner
	}
	if Exists(ticker) {
		return fault.ErrAssetAlreadyCreated
	}

	r.Owner = a.Target.DID
	storage.Pool.TickerRegistrations.PutRecord(ticker[:], r)
	ctx.Deposit(Pallet, "TickerTransferred", ticker, a.AuthorizedBy, a.Target.DID)
	return nil
}
