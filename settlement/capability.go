// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// Assets - what the engine needs from the asset module
type Assets interface {
	Exists(ticker primitives.Ticker) bool
	IsAgent(ticker primitives.Ticker, did primitives.DID) bool
	MandatoryMediators(ticker primitives.Ticker) []primitives.DID
	Transfer(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error
	TransferNFTs(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, ids []uint64) error
}

// Portfolios - what the engine needs from the portfolio module
type Portfolios interface {
	EnsureExists(portfolio primitives.PortfolioID) error
	EnsureCustody(caller *identity.Caller, portfolio primitives.PortfolioID) error
	Lock(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error
	Unlock(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error
	LockNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) error
	UnlockNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) error
	AddInstructionRef(portfolio primitives.PortfolioID, instruction uint64)
	RemoveInstructionRef(portfolio primitives.PortfolioID, instruction uint64)
}

type assetModule struct{}

func (assetModule) Exists(ticker primitives.Ticker) bool {
	return asset.Exists(ticker)
}

func (assetModule) IsAgent(ticker primitives.Ticker, did primitives.DID) bool {
	_, ok := asset.AgentGroup(ticker, did)
	return ok
}

func (assetModule) MandatoryMediators(ticker primitives.Ticker) []primitives.DID {
	return asset.MandatoryMediators(ticker)
}

func (assetModule) Transfer(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	return asset.BaseTransfer(ctx, from, to, ticker, amount)
}

func (assetModule) TransferNFTs(ctx *system.Context, from primitives.PortfolioID, to primitives.PortfolioID, ticker primitives.Ticker, ids []uint64) error {
	return asset.BaseNFTTransfer(ctx, from, to, ticker, ids)
}

type portfolioModule struct{}

func (portfolioModule) EnsureExists(p primitives.PortfolioID) error {
	return portfolio.EnsureExists(p)
}

func (portfolioModule) EnsureCustody(caller *identity.Caller, p primitives.PortfolioID) error {
	return portfolio.EnsureCustody(caller, p)
}

func (portfolioModule) Lock(p primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	return portfolio.Lock(p, ticker, amount)
}

func (portfolioModule) Unlock(p primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	return portfolio.Unlock(p, ticker, amount)
}

func (portfolioModule) LockNFT(p primitives.PortfolioID, ticker primitives.Ticker, id uint64) error {
	return portfolio.LockNFT(p, ticker, id)
}

func (portfolioModule) UnlockNFT(p primitives.PortfolioID, ticker primitives.Ticker, id uint64) error {
	return portfolio.UnlockNFT(p, ticker, id)
}

func (portfolioModule) AddInstructionRef(p primitives.PortfolioID, instruction uint64) {
	portfolio.AddInstructionRef(p, instruction)
}

func (portfolioModule) RemoveInstructionRef(p primitives.PortfolioID, instruction uint64) {
	portfolio.RemoveInstructionRef(p, instruction)
}
