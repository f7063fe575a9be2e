// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
)

var acme = primitives.MustTicker("ACME")

func TestCreateRenameDelete(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, did := chain.Identity("alice")

	number, err := portfolio.CreatePortfolio(chain.As(alice, portfolio.Pallet, "create_portfolio"), "trading")
	assert.Nil(t, err, "create")
	assert.Equal(t, primitives.PortfolioNumber(1), number, "first user portfolio")

	_, err = portfolio.CreatePortfolio(chain.As(alice, portfolio.Pallet, "create_portfolio"), "trading")
	assert.Equal(t, fault.ErrPortfolioNameAlreadyInUse, err, "duplicate name")

	_, err = portfolio.CreatePortfolio(chain.As(alice, portfolio.Pallet, "create_portfolio"), "")
	assert.Equal(t, fault.ErrInvalidPortfolioName, err, "empty name")

	id := primitives.UserPortfolio(did, number)
	assert.True(t, portfolio.Exists(id), "exists")
	assert.True(t, portfolio.Exists(primitives.DefaultPortfolio(did)), "default exists")
	assert.Equal(t, []primitives.PortfolioID{id}, portfolio.Portfolios(did), "listed")

	err = portfolio.RenamePortfolio(chain.As(alice, portfolio.Pallet, "rename_portfolio"), number, "long-term")
	assert.Nil(t, err, "rename")
	name, _ := portfolio.Name(id)
	assert.Equal(t, "long-term", name, "new name")

	err = portfolio.RenamePortfolio(chain.As(alice, portfolio.Pallet, "rename_portfolio"), primitives.DefaultPortfolioNumber, "x")
	assert.Equal(t, fault.ErrDefaultPortfolioImmutable, err, "default cannot be renamed")

	portfolio.Credit(id, acme, 10)
	err = portfolio.DeletePortfolio(chain.As(alice, portfolio.Pallet, "delete_portfolio"), number)
	assert.Equal(t, fault.ErrPortfolioNotEmpty, err, "not empty")

	err = portfolio.Debit(id, acme, 10)
	assert.Nil(t, err, "debit")
	err = portfolio.DeletePortfolio(chain.As(alice, portfolio.Pallet, "delete_portfolio"), number)
	assert.Nil(t, err, "delete")
	assert.False(t, portfolio.Exists(id), "deleted")

	number, err = portfolio.CreatePortfolio(chain.As(alice, portfolio.Pallet, "create_portfolio"), "long-term")
	assert.Nil(t, err, "name free after delete")
	assert.Equal(t, primitives.PortfolioNumber(2), number, "numbers are not reused")
}

func TestLockUnlock(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	_, did := chain.Identity("alice")
	id := primitives.DefaultPortfolio(did)

	portfolio.Credit(id, acme, 100)
	assert.Nil(t, portfolio.Lock(id, acme, 60), "lock")
	assert.Equal(t, primitives.Balance(40), portfolio.Available(id, acme), "available")

	assert.Equal(t, fault.ErrInsufficientPortfolioBalance, portfolio.Lock(id, acme, 41), "over lock")
	assert.Equal(t, fault.ErrInsufficientPortfolioBalance, portfolio.Debit(id, acme, 41), "locked is not spendable")

	assert.Equal(t, fault.ErrInsufficientTokensLocked, portfolio.Unlock(id, acme, 61), "over unlock")
	assert.Nil(t, portfolio.Unlock(id, acme, 60), "unlock")
	assert.Equal(t, primitives.Balance(100), portfolio.Available(id, acme), "all available")

	holdings := portfolio.Holdings(id)
	assert.Equal(t, 1, len(holdings), "one holding")
	assert.Equal(t, acme, holdings[0].Ticker, "holding ticker")
}

func TestNFTLocking(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	_, did := chain.Identity("alice")
	id := primitives.DefaultPortfolio(did)

	portfolio.AddNFT(id, acme, 7)
	assert.Equal(t, primitives.Balance(1), portfolio.Balance(id, acme), "nft counts one")
	assert.Nil(t, portfolio.LockNFT(id, acme, 7), "lock")
	assert.Equal(t, fault.ErrNFTAlreadyLocked, portfolio.LockNFT(id, acme, 7), "lock twice")
	assert.Equal(t, fault.ErrNFTAlreadyLocked, portfolio.RemoveNFT(id, acme, 7), "locked cannot move")
	assert.Equal(t, fault.ErrNFTNotOwnedByPortfolio, portfolio.LockNFT(id, acme, 8), "not owned")

	assert.Nil(t, portfolio.UnlockNFT(id, acme, 7), "unlock")
	assert.Nil(t, portfolio.RemoveNFT(id, acme, 7), "remove")
	assert.Equal(t, primitives.Balance(0), portfolio.Balance(id, acme), "empty")
}

func TestMoveFunds(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, did := chain.Identity("alice")
	_, bob := chain.Identity("bob")

	number, err := portfolio.CreatePortfolio(chain.As(alice, portfolio.Pallet, "create_portfolio"), "trading")
	assert.Nil(t, err, "create")

	art := primitives.MustTicker("ART")
	whole := primitives.MustTicker("WHOLE")
	err = asset.CreateAsset(chain.As(alice, asset.Pallet, "create_asset"), "Acme", acme, true, "EquityCommon")
	assert.Nil(t, err, "create acme")
	err = asset.CreateAsset(chain.As(alice, asset.Pallet, "create_asset"), "Whole", whole, false, "EquityCommon")
	assert.Nil(t, err, "create whole")
	_, err = asset.CreateNFTCollection(chain.As(alice, asset.Pallet, "create_nft_collection"), art, "Art", nil)
	assert.Nil(t, err, "collection")

	from := primitives.DefaultPortfolio(did)
	to := primitives.UserPortfolio(did, number)
	assert.Nil(t, asset.Issue(chain.As(alice, asset.Pallet, "issue"), acme, 100, primitives.DefaultPortfolioNumber), "issue acme")
	assert.Nil(t, asset.Issue(chain.As(alice, asset.Pallet, "issue"), whole, 2*primitives.OneUnit, primitives.DefaultPortfolioNumber), "issue whole")
	nft, err := asset.IssueNFT(chain.As(alice, asset.Pallet, "issue_nft"), art, nil, primitives.DefaultPortfolioNumber)
	assert.Nil(t, err, "issue nft")
	assert.Nil(t, portfolio.Lock(from, acme, 90), "lock")

	ctx := chain.As(alice, portfolio.Pallet, "move_portfolio_funds")

	err = portfolio.MovePortfolioFunds(ctx, from, from, nil)
	assert.Equal(t, fault.ErrDestinationIsSamePortfolio, err, "same portfolio")

	err = portfolio.MovePortfolioFunds(ctx, from, primitives.DefaultPortfolio(bob), nil)
	assert.Equal(t, fault.ErrDifferentIdentityPortfolios, err, "other identity")

	err = portfolio.MovePortfolioFunds(ctx, from, to, []portfolio.Fund{{Ticker: acme, Amount: 20}})
	assert.Equal(t, fault.ErrInsufficientPortfolioBalance, err, "locked part cannot move")

	// a collection only moves by id and nothing moves when one item is wrong
	err = portfolio.MovePortfolioFunds(ctx, from, to, []portfolio.Fund{{Ticker: acme, Amount: 10}, {Ticker: art, Amount: 1}})
	assert.Equal(t, fault.ErrUnexpectedNonFungibleToken, err, "collection as amount")
	assert.Equal(t, primitives.Balance(100), portfolio.Balance(from, acme), "nothing moved")

	err = portfolio.MovePortfolioFunds(ctx, from, to, []portfolio.Fund{{Ticker: acme, NFTs: []uint64{nft}}})
	assert.Equal(t, fault.ErrUnexpectedFungibleToken, err, "ids of a fungible asset")

	err = portfolio.MovePortfolioFunds(ctx, from, to, []portfolio.Fund{{Ticker: whole, Amount: primitives.OneUnit / 2}})
	assert.Equal(t, fault.ErrInvalidGranularity, err, "half a unit of an indivisible asset")

	err = portfolio.MovePortfolioFunds(ctx, from, to, []portfolio.Fund{
		{Ticker: acme, Amount: 10},
		{Ticker: whole, Amount: primitives.OneUnit},
		{Ticker: art, NFTs: []uint64{nft}},
	})
	assert.Nil(t, err, "move")
	assert.Equal(t, primitives.Balance(90), portfolio.Balance(from, acme), "source")
	assert.Equal(t, primitives.Balance(10), portfolio.Balance(to, acme), "destination")
	assert.Equal(t, primitives.OneUnit, portfolio.Balance(to, whole), "whole unit moved")
	assert.True(t, portfolio.HasNFT(to, art, nft), "nft moved")
	assert.Equal(t, primitives.Balance(1), portfolio.Balance(to, art), "nft counted at destination")
	assert.Equal(t, primitives.Balance(0), portfolio.Balance(from, art), "nft gone from source")

	err = asset.RedeemNFT(chain.As(alice, asset.Pallet, "redeem_nft"), art, nft, number)
	assert.Nil(t, err, "redeem from the destination")
}

func TestCustody(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, did := chain.Identity("alice")
	custodianKey, custodian := chain.Identity("custodian")
	id := primitives.DefaultPortfolio(did)

	authID, err := identity.AddAuthorization(
		chain.As(alice, identity.Pallet, "add_authorization"),
		primitives.IdentitySignatory(custodian),
		primitives.PortfolioCustody(id),
		0,
	)
	assert.Nil(t, err, "offer custody")

	err = identity.AcceptAuthorization(chain.As(custodianKey, identity.Pallet, "accept_authorization"), authID)
	assert.Nil(t, err, "accept custody")
	assert.Equal(t, custodian, portfolio.Custodian(id), "custodian")
	assert.Equal(t, []primitives.PortfolioID{id}, portfolio.CustodiedPortfolios(custodian), "custody index")

	owner, _ := identity.EnsureCaller(chain.As(alice, portfolio.Pallet, "move_portfolio_funds"))
	assert.Equal(t, fault.ErrCustodianMismatch, portfolio.EnsureCustody(owner, id), "owner lost custody")

	holder, _ := identity.EnsureCaller(chain.As(custodianKey, portfolio.Pallet, "move_portfolio_funds"))
	assert.Nil(t, portfolio.EnsureCustody(holder, id), "custodian has custody")

	err = portfolio.QuitPortfolioCustody(chain.As(alice, portfolio.Pallet, "quit_portfolio_custody"), id)
	assert.Equal(t, fault.ErrCustodianMismatch, err, "only the custodian quits")

	err = portfolio.QuitPortfolioCustody(chain.As(custodianKey, portfolio.Pallet, "quit_portfolio_custody"), id)
	assert.Nil(t, err, "quit")
	assert.Equal(t, did, portfolio.Custodian(id), "back to owner")
	assert.Equal(t, 0, len(portfolio.CustodiedPortfolios(custodian)), "index cleared")
}
