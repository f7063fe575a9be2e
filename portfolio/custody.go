// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// a custodian other than the owner
func storedCustodian(portfolio primitives.PortfolioID) (primitives.DID, bool) {
	b := storage.Pool.Custodians.Get(portfolio.Bytes())
	if nil == b {
		return primitives.NoDID, false
	}
	did, err := primitives.DIDFromBytes(b)
	return did, nil == err
}

// Custodian - the identity that may move assets out of a portfolio
func Custodian(portfolio primitives.PortfolioID) primitives.DID {
	if did, ok := storedCustodian(portfolio); ok {
		return did
	}
	return portfolio.DID
}

// EnsureCustody - the caller is the custodian and its key may use the portfolio
func EnsureCustody(caller *identity.Caller, portfolio primitives.PortfolioID) error {
	if Custodian(portfolio) != caller.DID {
		return fault.ErrCustodianMismatch
	}
	return caller.EnsurePortfolio(portfolio)
}

// CustodiedPortfolios - portfolios held in custody for others
func CustodiedPortfolios(custodian primitives.DID) []primitives.PortfolioID {
	elements := storage.Pool.CustodianPortfolios.Elements(custodian[:])
	ids := make([]primitives.PortfolioID, 0, len(elements))
	for _, e := range elements {
		id, err := primitives.PortfolioIDFromBytes(e.Key[primitives.DIDSize:])
		if nil == err {
			ids = append(ids, id)
		}
	}
	return ids
}

func setCustodian(portfolio primitives.PortfolioID, custodian primitives.DID) {
	if old, ok := storedCustodian(portfolio); ok {
		storage.Pool.CustodianPortfolios.Delete(primitives.Key(old[:], portfolio.Bytes()))
		storage.Pool.Custodians.Delete(portfolio.Bytes())
	}
	if custodian == portfolio.DID {
		return
	}
	storage.Pool.Custodians.Put(portfolio.Bytes(), custodian[:])
	storage.Pool.CustodianPortfolios.Put(primitives.Key(custodian[:], portfolio.Bytes()), []byte{1})
}

// AcceptPortfolioCustody - the target identity becomes custodian
//
// the offer must come from the current custodian
func AcceptPortfolioCustody(ctx *system.Context, authID uint64) error {
	a, err := identity.TakeAuthorization(ctx, authID, primitives.AuthPortfolioCustody)
	if nil != err {
		return err
	}
	if !a.Target.IsIdentity() {
		return fault.ErrInvalidAuthorizationKind
	}
	portfolio := a.Data.Portfolio
	if err := EnsureExists(portfolio); nil != err {
		return err
	}
	if Custodian(portfolio) != a.AuthorizedBy {
		return fault.ErrInvalidAuthorizationFromOwner
	}

	setCustodian(portfolio, a.Target.DID)
	ctx.Deposit(Pallet, "PortfolioCustodianChanged", portfolio, a.Target.DID)
	return nil
}

// QuitPortfolioCustody - the custodian resigns, custody returns to the owner
func QuitPortfolioCustody(ctx *system.Context, portfolio primitives.PortfolioID) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := EnsureExists(portfolio); nil != err {
		return err
	}
	if Custodian(portfolio) != caller.DID {
		return fault.ErrCustodianMismatch
	}
	setCustodian(portfolio, portfolio.DID)
	ctx.Deposit(Pallet, "PortfolioCustodianChanged", portfolio, portfolio.DID)
	return nil
}
