// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// transfer weights
const (
	TransferWeight    system.Weight = 100
	NFTTransferWeight system.Weight = 50
)

// check the asset and its compliance for a transfer
func verifyCompliance(ctx *system.Context, ticker primitives.Ticker, from primitives.PortfolioID, to primitives.PortfolioID) error {
	if err := portfolio.EnsureExists(to); nil != err {
		return err
	}
	checker := complianceChecker()
	if nil == checker {
		return nil
	}
	if err := checker.VerifyTransfer(ctx, ticker, from.DID, to.DID); nil != err {
		return fault.ErrInvalidTransferComplianceFailure
	}
	return nil
}

// BaseTransfer - move a fungible amount between portfolios
//
// checks run in a fixed order and each failure has its own error
func BaseTransfer(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	if err := ctx.Consume(TransferWeight); nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if IsFrozen(ticker) {
		return fault.ErrInvalidTransferFrozenAsset
	}
	if t.NonFungible {
		return fault.ErrUnexpectedNonFungibleToken
	}
	if err := CheckGranularity(t, amount); nil != err {
		return err
	}
	if portfolio.Available(from, ticker) < amount {
		return fault.ErrInsufficientPortfolioBalance
	}
	if err := verifyCompliance(ctx, ticker, from, to); nil != err {
		return err
	}

	if err := portfolio.Debit(from, ticker, amount); nil != err {
		return err
	}
	portfolio.Credit(to, ticker, amount)
	if from.DID != to.DID {
		setBalance(ticker, from.DID, BalanceOf(ticker, from.DID)-amount)
		setBalance(ticker, to.DID, BalanceOf(ticker, to.DID)+amount)
	}

	ctx.Deposit(Pallet, "Transfer", ticker, from, to, amount)
	return nil
}

// BaseNFTTransfer - move non-fungible tokens between portfolios
func BaseNFTTransfer(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, ids []uint64) error {
	if err := ctx.Consume(NFTTransferWeight * system.Weight(1+len(ids))); nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if IsFrozen(ticker) {
		return fault.ErrInvalidTransferFrozenAsset
	}
	if !t.NonFungible {
		return fault.ErrUnexpectedFungibleToken
	}
	for _, id := range ids {
		if !portfolio.HasNFT(from, ticker, id) {
			return fault.ErrNFTNotOwnedByPortfolio
		}
		if portfolio.IsNFTLocked(from, ticker, id) {
			return fault.ErrNFTAlreadyLocked
		}
	}
	if err := verifyCompliance(ctx, ticker, from, to); nil != err {
		return err
	}

	for _, id := range ids {
		if err := portfolio.RemoveNFT(from, ticker, id); nil != err {
			return err
		}
		portfolio.AddNFT(to, ticker, id)
	}
	if from.DID != to.DID {
		n := primitives.Balance(len(ids))
		setBalance(ticker, from.DID, BalanceOf(ticker, from.DID)-n)
		setBalance(ticker, to.DID, BalanceOf(ticker, to.DID)+n)
	}

	ctx.Deposit(Pallet, "NFTTransfer", ticker, from, to, len(ids))
	return nil
}

// FundRules - token type and granularity checks for moves between
// portfolios of one identity
type FundRules struct{}

// CheckFund - amounts for fungible assets, ids for collections
func (FundRules) CheckFund(ticker primitives.Ticker, amount primitives.Balance, nfts []uint64) error {
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if 0 != amount {
		if t.NonFungible {
			return fault.ErrUnexpectedNonFungibleToken
		}
		if err := CheckGranularity(t, amount); nil != err {
			return err
		}
	}
	if 0 != len(nfts) && !t.NonFungible {
		return fault.ErrUnexpectedFungibleToken
	}
	return nil
}
