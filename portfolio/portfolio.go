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

// Record - a user portfolio
type Record struct {
	Name string
}

// Fund - one item of a move between portfolios
type Fund struct {
	Ticker primitives.Ticker
	Amount primitives.Balance
	NFTs   []uint64
}

// FundRules - asset checks on an item moved between portfolios
//
// amounts only for fungible assets and in whole units unless divisible,
// NFT ids only for collections
type FundRules interface {
	CheckFund(ticker primitives.Ticker, amount primitives.Balance, nfts []uint64) error
}

func nameKey(did primitives.DID, name string) []byte {
	return primitives.Key(did[:], []byte(name))
}

func counterName(did primitives.DID) string {
	return "portfolio:" + string(did[:])
}

// Exists - the default portfolio exists with its identity, user portfolios
// once created
func Exists(portfolio primitives.PortfolioID) bool {
	if portfolio.IsDefault() {
		return identity.Exists(portfolio.DID)
	}
	return storage.Pool.Portfolios.Has(portfolio.Bytes())
}

// EnsureExists - fail with PortfolioDoesNotExist
func EnsureExists(portfolio primitives.PortfolioID) error {
	if !Exists(portfolio) {
		return fault.ErrPortfolioDoesNotExist
	}
	return nil
}

// Name - the name of a user portfolio
func Name(portfolio primitives.PortfolioID) (string, bool) {
	var r Record
	if !storage.Pool.Portfolios.GetRecord(portfolio.Bytes(), &r) {
		return "", false
	}
	return r.Name, true
}

// Portfolios - user portfolios of an identity in number order
func Portfolios(did primitives.DID) []primitives.PortfolioID {
	elements := storage.Pool.Portfolios.Elements(did[:])
	ids := make([]primitives.PortfolioID, 0, len(elements))
	for _, e := range elements {
		id, err := primitives.PortfolioIDFromBytes(e.Key)
		if nil == err {
			ids = append(ids, id)
		}
	}
	return ids
}

func validName(name string) bool {
	return len(name) > 0 && len(name) <= maximumNameLength
}

// CreatePortfolio - add a named user portfolio to the caller identity
func CreatePortfolio(ctx *system.Context, name string) (primitives.PortfolioNumber, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	if !validName(name) {
		return 0, fault.ErrInvalidPortfolioName
	}
	if storage.Pool.PortfolioNames.Has(nameKey(caller.DID, name)) {
		return 0, fault.ErrPortfolioNameAlreadyInUse
	}

	number := primitives.PortfolioNumber(system.NextID(counterName(caller.DID)))
	id := primitives.UserPortfolio(caller.DID, number)
	storage.Pool.Portfolios.PutRecord(id.Bytes(), &Record{Name: name})
	storage.Pool.PortfolioNames.PutN(nameKey(caller.DID, name), uint64(number))

	ctx.Deposit(Pallet, "PortfolioCreated", caller.DID, number, name)
	return number, nil
}

// owned user portfolio of the caller, with portfolio permission
func ensureOwnedUserPortfolio(caller *identity.Caller, number primitives.PortfolioNumber) (primitives.PortfolioID, error) {
	id := primitives.UserPortfolio(caller.DID, number)
	if id.IsDefault() {
		return id, fault.ErrDefaultPortfolioImmutable
	}
	if !Exists(id) {
		return id, fault.ErrPortfolioDoesNotExist
	}
	if err := caller.EnsurePortfolio(id); nil != err {
		return id, err
	}
	return id, nil
}

// IsEmpty - no balances, no tokens and no pending instructions
func IsEmpty(portfolio primitives.PortfolioID) bool {
	if _, found := storage.Pool.PortfolioBalances.First(portfolio.Bytes()); found {
		return false
	}
	if _, found := storage.Pool.PortfolioLocked.First(portfolio.Bytes()); found {
		return false
	}
	if _, found := storage.Pool.PortfolioNFTs.First(portfolio.Bytes()); found {
		return false
	}
	return !hasInstructionRefs(portfolio)
}

// DeletePortfolio - remove an empty user portfolio
func DeletePortfolio(ctx *system.Context, number primitives.PortfolioNumber) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	id, err := ensureOwnedUserPortfolio(caller, number)
	if nil != err {
		return err
	}
	if !IsEmpty(id) {
		return fault.ErrPortfolioNotEmpty
	}

	name, _ := Name(id)
	storage.Pool.PortfolioNames.Delete(nameKey(caller.DID, name))
	storage.Pool.Portfolios.Delete(id.Bytes())
	if custodian, ok := storedCustodian(id); ok {
		storage.Pool.CustodianPortfolios.Delete(primitives.Key(custodian[:], id.Bytes()))
		storage.Pool.Custodians.Delete(id.Bytes())
	}

	ctx.Deposit(Pallet, "PortfolioDeleted", caller.DID, number)
	return nil
}

// RenamePortfolio - change the name of a user portfolio
func RenamePortfolio(ctx *system.Context, number primitives.PortfolioNumber, name string) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	id, err := ensureOwnedUserPortfolio(caller, number)
	if nil != err {
		return err
	}
	if !validName(name) {
		return fault.ErrInvalidPortfolioName
	}
	if storage.Pool.PortfolioNames.Has(nameKey(caller.DID, name)) {
		return fault.ErrPortfolioNameAlreadyInUse
	}

	old, _ := Name(id)
	storage.Pool.PortfolioNames.Delete(nameKey(caller.DID, old))
	storage.Pool.PortfolioNames.PutN(nameKey(caller.DID, name), uint64(number))
	storage.Pool.Portfolios.PutRecord(id.Bytes(), &Record{Name: name})

	ctx.Deposit(Pallet, "PortfolioRenamed", caller.DID, number, name)
	return nil
}

// MovePortfolioFunds - move unlocked items between two portfolios of the
// same identity
func MovePortfolioFunds(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, funds []Fund) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if from == to {
		return fault.ErrDestinationIsSamePortfolio
	}
	if from.DID != to.DID {
		return fault.ErrDifferentIdentityPortfolios
	}
	if err := EnsureExists(from); nil != err {
		return err
	}
	if err := EnsureExists(to); nil != err {
		return err
	}
	if err := EnsureCustody(caller, from); nil != err {
		return err
	}
	if err := caller.EnsurePortfolio(to); nil != err {
		return err
	}

	if rules := fundRules(); nil != rules {
		for _, f := range funds {
			if err := rules.CheckFund(f.Ticker, f.Amount, f.NFTs); nil != err {
				return err
			}
		}
	}

	for _, f := range funds {
		if f.Amount > 0 {
			if err := Debit(from, f.Ticker, f.Amount); nil != err {
				return err
			}
			Credit(to, f.Ticker, f.Amount)
		}
		for _, id := range f.NFTs {
			if err := RemoveNFT(from, f.Ticker, id); nil != err {
				return err
			}
			AddNFT(to, f.Ticker, id)
		}
		ctx.Deposit(Pallet, "FundsMovedBetweenPortfolios", from, to, f.Ticker, f.Amount, len(f.NFTs))
	}
	return nil
}
