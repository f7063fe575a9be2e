// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
)

func balanceKey(portfolio primitives.PortfolioID, ticker primitives.Ticker) []byte {
	return primitives.Key(portfolio.Bytes(), ticker[:])
}

func nftKey(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) []byte {
	return primitives.Key(portfolio.Bytes(), ticker[:], primitives.Uint64Bytes(id))
}

func putAmount(pool *storage.PoolHandle, key []byte, amount primitives.Balance) {
	if 0 == amount {
		pool.Delete(key)
		return
	}
	pool.PutN(key, uint64(amount))
}

// Balance - total amount of an asset held in a portfolio
func Balance(portfolio primitives.PortfolioID, ticker primitives.Ticker) primitives.Balance {
	n, _ := storage.Pool.PortfolioBalances.GetN(balanceKey(portfolio, ticker))
	return primitives.Balance(n)
}

// Locked - amount committed to pending instructions
func Locked(portfolio primitives.PortfolioID, ticker primitives.Ticker) primitives.Balance {
	n, _ := storage.Pool.PortfolioLocked.GetN(balanceKey(portfolio, ticker))
	return primitives.Balance(n)
}

// Available - total less locked
func Available(portfolio primitives.PortfolioID, ticker primitives.Ticker) primitives.Balance {
	return Balance(portfolio, ticker) - Locked(portfolio, ticker)
}

// Credit - increase the balance of a portfolio
func Credit(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) {
	key := balanceKey(portfolio, ticker)
	putAmount(storage.Pool.PortfolioBalances, key, Balance(portfolio, ticker)+amount)
}

// Debit - decrease the unlocked balance of a portfolio
func Debit(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	if Available(portfolio, ticker) < amount {
		return fault.ErrInsufficientPortfolioBalance
	}
	key := balanceKey(portfolio, ticker)
	putAmount(storage.Pool.PortfolioBalances, key, Balance(portfolio, ticker)-amount)
	return nil
}

// Lock - reserve part of the available balance
func Lock(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	if Available(portfolio, ticker) < amount {
		return fault.ErrInsufficientPortfolioBalance
	}
	key := balanceKey(portfolio, ticker)
	putAmount(storage.Pool.PortfolioLocked, key, Locked(portfolio, ticker)+amount)
	return nil
}

// Unlock - release a reservation
func Unlock(portfolio primitives.PortfolioID, ticker primitives.Ticker, amount primitives.Balance) error {
	locked := Locked(portfolio, ticker)
	if locked < amount {
		return fault.ErrInsufficientTokensLocked
	}
	putAmount(storage.Pool.PortfolioLocked, balanceKey(portfolio, ticker), locked-amount)
	return nil
}

// Holding - an asset balance of a portfolio
type Holding struct {
	Ticker primitives.Ticker
	Total  primitives.Balance
	Locked primitives.Balance
}

// Holdings - every non-zero balance of a portfolio in ticker order
func Holdings(portfolio primitives.PortfolioID) []Holding {
	elements := storage.Pool.PortfolioBalances.Elements(portfolio.Bytes())
	holdings := make([]Holding, 0, len(elements))
	for _, e := range elements {
		var ticker primitives.Ticker
		copy(ticker[:], e.Key[primitives.PortfolioIDSize:])
		holdings = append(holdings, Holding{
			Ticker: ticker,
			Total:  Balance(portfolio, ticker),
			Locked: Locked(portfolio, ticker),
		})
	}
	return holdings
}

// HasNFT - true if the portfolio holds the token
func HasNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) bool {
	return storage.Pool.PortfolioNFTs.Has(nftKey(portfolio, ticker, id))
}

// IsNFTLocked - true if the token is committed to an instruction
func IsNFTLocked(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) bool {
	return storage.Pool.LockedNFTs.Has(nftKey(portfolio, ticker, id))
}

// AddNFT - record possession of a token, the balance counts tokens
func AddNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) {
	storage.Pool.PortfolioNFTs.Put(nftKey(portfolio, ticker, id), []byte{1})
	Credit(portfolio, ticker, 1)
}

// RemoveNFT - give up an unlocked token
func RemoveNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) error {
	if !HasNFT(portfolio, ticker, id) {
		return fault.ErrNFTNotOwnedByPortfolio
	}
	if IsNFTLocked(portfolio, ticker, id) {
		return fault.ErrNFTAlreadyLocked
	}
	storage.Pool.PortfolioNFTs.Delete(nftKey(portfolio, ticker, id))
	return Debit(portfolio, ticker, 1)
}

// LockNFT - commit a token to an instruction
func LockNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) error {
	if !HasNFT(portfolio, ticker, id) {
		return fault.ErrNFTNotOwnedByPortfolio
	}
	if IsNFTLocked(portfolio, ticker, id) {
		return fault.ErrNFTAlreadyLocked
	}
	storage.Pool.LockedNFTs.Put(nftKey(portfolio, ticker, id), []byte{1})
	return nil
}

// UnlockNFT - release a committed token
func UnlockNFT(portfolio primitives.PortfolioID, ticker primitives.Ticker, id uint64) error {
	if !IsNFTLocked(portfolio, ticker, id) {
		return fault.ErrInsufficientTokensLocked
	}
	storage.Pool.LockedNFTs.Delete(nftKey(portfolio, ticker, id))
	return nil
}

// NFTs - token ids of an asset held by a portfolio
func NFTs(portfolio primitives.PortfolioID, ticker primitives.Ticker) []uint64 {
	prefix := primitives.Key(portfolio.Bytes(), ticker[:])
	elements := storage.Pool.PortfolioNFTs.Elements(prefix)
	ids := make([]uint64, 0, len(elements))
	for _, e := range elements {
		ids = append(ids, uint64FromKey(e.Key[len(prefix):]))
	}
	return ids
}

func uint64FromKey(b []byte) uint64 {
	n := uint64(0)
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n
}

// AddInstructionRef - note that a pending instruction mentions a portfolio
func AddInstructionRef(portfolio primitives.PortfolioID, instruction uint64) {
	storage.Pool.PortfolioInstructions.Put(primitives.Key(portfolio.Bytes(), primitives.Uint64Bytes(instruction)), []byte{1})
}

// RemoveInstructionRef - the instruction is no longer pending
func RemoveInstructionRef(portfolio primitives.PortfolioID, instruction uint64) {
	storage.Pool.PortfolioInstructions.Delete(primitives.Key(portfolio.Bytes(), primitives.Uint64Bytes(instruction)))
}

func hasInstructionRefs(portfolio primitives.PortfolioID) bool {
	_, found := storage.Pool.PortfolioInstructions.First(portfolio.Bytes())
	return found
}
