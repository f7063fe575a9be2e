// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// Caller - a signing key resolved to its identity
type Caller struct {
	Key         account.Key
	DID         primitives.DID
	Primary     bool
	Permissions primitives.Permissions
}

// EnsureCaller - resolve the origin of the current call
//
// secondary keys must be unfrozen and allowed to make the current call
func EnsureCaller(ctx *system.Context) (*Caller, error) {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return nil, err
	}
	return resolve(ctx, key)
}

func resolve(ctx *system.Context, key account.Key) (*Caller, error) {
	r, ok := LookupKey(key)
	if !ok || MultisigSignerKeyKind == r.Kind {
		return nil, fault.ErrMissingIdentity
	}

	if PrimaryKeyKind == r.Kind {
		return &Caller{
			Key:         key,
			DID:         r.DID,
			Primary:     true,
			Permissions: primitives.WholePermissions(),
		}, nil
	}

	if IsFrozen(r.DID) {
		return nil, fault.ErrPermissionDenied
	}
	s, ok := secondaryKey(r.DID, key)
	if !ok {
		return nil, fault.ErrMissingIdentity
	}
	pallet, method := ctx.CallName()
	if "" != pallet && !s.Permissions.AllowsCall(pallet, method) {
		return nil, fault.ErrPermissionDenied
	}
	return &Caller{
		Key:         key,
		DID:         r.DID,
		Permissions: s.Permissions,
	}, nil
}

// EnsurePrimary - the call must be made with the primary key
func (c *Caller) EnsurePrimary() error {
	if !c.Primary {
		return fault.ErrNotPrimaryKey
	}
	return nil
}

// EnsureAsset - the key may act on the asset
func (c *Caller) EnsureAsset(ticker primitives.Ticker) error {
	if !c.Permissions.AllowsAsset(ticker) {
		return fault.ErrSecondaryKeyNotAuthorizedForAsset
	}
	return nil
}

// EnsurePortfolio - the key may act on the portfolio
func (c *Caller) EnsurePortfolio(portfolio primitives.PortfolioID) error {
	if !c.Permissions.AllowsPortfolio(portfolio) {
		return fault.ErrSecondaryKeyNotAuthorizedForPortfolio
	}
	return nil
}

// Signatory - the caller as an identity signatory
func (c *Caller) Signatory() primitives.Signatory {
	return primitives.IdentitySignatory(c.DID)
}
