// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// SecurityToken - the stored asset
type SecurityToken struct {
	Name        string
	Owner       primitives.DID
	TotalSupply primitives.Balance
	Divisible   bool
	AssetType   string
	NonFungible bool
}

// Exists - true if the asset has been created
func Exists(ticker primitives.Ticker) bool {
	return storage.Pool.Tokens.Has(ticker[:])
}

// Token - fetch an asset
func Token(ticker primitives.Ticker) (*SecurityToken, bool) {
	var t SecurityToken
	if !storage.Pool.Tokens.GetRecord(ticker[:], &t) {
		return nil, false
	}
	return &t, true
}

func ensureToken(ticker primitives.Ticker) (*SecurityToken, error) {
	t, ok := Token(ticker)
	if !ok {
		return nil, fault.ErrNoSuchAsset
	}
	return t, nil
}

func putToken(ticker primitives.Ticker, t *SecurityToken) {
	storage.Pool.Tokens.PutRecord(ticker[:], t)
}

// IsFrozen - true if transfers of the asset are suspended
func IsFrozen(ticker primitives.Ticker) bool {
	return storage.Pool.FrozenTokens.Has(ticker[:])
}

// BalanceOf - identity balance of an asset
func BalanceOf(ticker primitives.Ticker, did primitives.DID) primitives.Balance {
	n, _ := storage.Pool.Balances.GetN(primitives.Key(ticker[:], did[:]))
	return primitives.Balance(n)
}

// Holder - an identity balance
type Holder struct {
	DID     primitives.DID
	Balance primitives.Balance
}

// Holders - every identity with a non-zero balance in key order
func Holders(ticker primitives.Ticker) []Holder {
	elements := storage.Pool.Balances.Elements(ticker[:])
	holders := make([]Holder, 0, len(elements))
	for _, e := range elements {
		did, err := primitives.DIDFromBytes(e.Key[primitives.TickerLength:])
		if nil != err {
			continue
		}
		holders = append(holders, Holder{DID: did, Balance: BalanceOf(ticker, did)})
	}
	return holders
}

// set an identity balance, snapshotting the old value for the latest
// checkpoint first
func setBalance(ticker primitives.Ticker, did primitives.DID, balance primitives.Balance) {
	key := primitives.Key(ticker[:], did[:])
	old := BalanceOf(ticker, did)
	snapshot(ticker, did, old)
	if 0 == balance {
		storage.Pool.Balances.Delete(key)
	} else {
		storage.Pool.Balances.PutN(key, uint64(balance))
	}
}

// CheckGranularity - whole units unless divisible
func CheckGranularity(t *SecurityToken, amount primitives.Balance) error {
	if !t.Divisible && 0 != amount%primitives.OneUnit {
		return fault.ErrInvalidGranularity
	}
	return nil
}

// CreateAsset - create a fungible asset owned by the caller
//
// the ticker is reserved permanently and the owner becomes a full agent
func CreateAsset(ctx *system.Context, name string, ticker primitives.Ticker, divisible bool, assetType string) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	return createAsset(ctx, caller.DID, name, ticker, divisible, assetType, false)
}

func createAsset(ctx *system.Context, owner primitives.DID, name string, ticker primitives.Ticker, divisible bool, assetType string, nonFungible bool) error {
	if len(name) > maximumAssetNameLength {
		return fault.ErrAssetNameTooLong
	}
	if err := ensureTickerAvailable(ctx, ticker, owner); nil != err {
		return err
	}

	storage.Pool.TickerRegistrations.PutRecord(ticker[:], &TickerRegistration{Owner: owner})
	putToken(ticker, &SecurityToken{
		Name:        name,
		Owner:       owner,
		Divisible:   divisible && !nonFungible,
		AssetType:   assetType,
		NonFungible: nonFungible,
	})
	setAgent(ticker, owner, primitives.AgentFull)

	ctx.Deposit(Pallet, "AssetCreated", owner, ticker, divisible, assetType)
	globalData.log.Infof("created asset: %s  owner: %s", ticker, owner)
	return nil
}

// Issue - mint into a portfolio of the calling agent
func Issue(ctx *system.Context, ticker primitives.Ticker, amount primitives.Balance, number primitives.PortfolioNumber) error {
	caller, err := ensureAgent(ctx, ticker, false)
	if nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if t.NonFungible {
		return fault.ErrUnexpectedNonFungibleToken
	}
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	if err := CheckGranularity(t, amount); nil != err {
		return err
	}
	if t.TotalSupply+amount < t.TotalSupply || t.TotalSupply+amount > config().MaxTotalSupply {
		return fault.ErrTotalSupplyAboveLimit
	}
	to := primitives.UserPortfolio(caller.DID, number)
	if err := portfolio.EnsureExists(to); nil != err {
		return err
	}
	if err := caller.EnsurePortfolio(to); nil != err {
		return err
	}

	portfolio.Credit(to, ticker, amount)
	setBalance(ticker, caller.DID, BalanceOf(ticker, caller.DID)+amount)
	t.TotalSupply += amount
	putToken(ticker, t)

	ctx.Deposit(Pallet, "Issued", ticker, to, amount, t.TotalSupply)
	return nil
}

// Redeem - burn unlocked tokens from a portfolio of the calling agent
func Redeem(ctx *system.Context, ticker primitives.Ticker, amount primitives.Balance, number primitives.PortfolioNumber) error {
	caller, err := ensureAgent(ctx, ticker, false)
	if nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if t.NonFungible {
		return fault.ErrUnexpectedNonFungibleToken
	}
	if err := CheckGranularity(t, amount); nil != err {
		return err
	}
	from := primitives.UserPortfolio(caller.DID, number)
	if err := portfolio.EnsureExists(from); nil != err {
		return err
	}
	if err := caller.EnsurePortfolio(from); nil != err {
		return err
	}
	balance := BalanceOf(ticker, caller.DID)
	if balance < amount {
		return fault.ErrInsufficientBalance
	}
	if err := portfolio.Debit(from, ticker, amount); nil != err {
		return err
	}

	setBalance(ticker, caller.DID, balance-amount)
	t.TotalSupply -= amount
	putToken(ticker, t)

	ctx.Deposit(Pallet, "Redeemed", ticker, from, amount, t.TotalSupply)
	return nil
}

// Freeze - suspend transfers
func Freeze(ctx *system.Context, ticker primitives.Ticker) error {
	return setFrozen(ctx, ticker, true)
}

// Unfreeze - resume transfers
func Unfreeze(ctx *system.Context, ticker primitives.Ticker) error {
	return setFrozen(ctx, ticker, false)
}

func setFrozen(ctx *system.Context, ticker primitives.Ticker, freeze bool) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	if _, err := ensureToken(ticker); nil != err {
		return err
	}
	frozen := IsFrozen(ticker)
	switch {
	case freeze && frozen:
		return fault.ErrAlreadyFrozen
	case !freeze && !frozen:
		return fault.ErrNotFrozen
	case freeze:
		storage.Pool.FrozenTokens.Put(ticker[:], []byte{1})
		ctx.Deposit(Pallet, "AssetFrozen", ticker)
	default:
		storage.Pool.FrozenTokens.Delete(ticker[:])
		ctx.Deposit(Pallet, "AssetUnfrozen", ticker)
	}
	return nil
}

// RenameAsset - change the asset name
func RenameAsset(ctx *system.Context, ticker primitives.Ticker, name string) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if len(name) > maximumAssetNameLength {
		return fault.ErrAssetNameTooLong
	}
	t.Name = name
	putToken(ticker, t)
	ctx.Deposit(Pallet, "AssetRenamed", ticker, name)
	return nil
}

// AcceptAssetOwnershipTransfer - the target identity becomes the owner
//
// the offer must come from a full agent of the asset
func AcceptAssetOwnershipTransfer(ctx *system.Context, authID uint64) error {
	a, err := identity.TakeAuthorization(ctx, authID, primitives.AuthTransferAssetOwnership)
	if nil != err {
		return err
	}
	if !a.Target.IsIdentity() {
		return fault.ErrInvalidAuthorizationKind
	}
	ticker := a.Data.Ticker
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if group, ok := AgentGroup(ticker, a.AuthorizedBy); !ok || primitives.AgentFull != group {
		return fault.ErrInvalidAuthorizationFromOwner
	}

	previous := t.Owner
	t.Owner = a.Target.DID
	putToken(ticker, t)
	storage.Pool.TickerRegistrations.PutRecord(ticker[:], &TickerRegistration{Owner: t.Owner})
	setAgent(ticker, t.Owner, primitives.AgentFull)

	ctx.Deposit(Pallet, "AssetOwnershipTransferred", ticker, previous, t.Owner)
	return nil
}
