// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/rpc/ratelimit"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/system"
)

const (
	rateLimitState = 200
	rateBurstState = 100

	maximumEventBlocks = 100
)

// State - type for RPC calls
type State struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the State service
func New(log *logger.L) *State {
	return &State{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitState, rateBurstState),
	}
}

// BalanceArguments - asset and holder
type BalanceArguments struct {
	Ticker primitives.Ticker `json:"ticker"`
	DID    primitives.DID    `json:"did"`
}

// BalanceReply - total holding across all portfolios
type BalanceReply struct {
	Ticker      primitives.Ticker  `json:"ticker"`
	Balance     primitives.Balance `json:"balance,string"`
	TotalSupply primitives.Balance `json:"totalSupply,string"`
	Frozen      bool               `json:"frozen"`
}

// Balance - identity balance of an asset
func (s *State) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	var err error
	runtime.View(func() {
		token, ok := asset.Token(arguments.Ticker)
		if !ok {
			err = fault.ErrNoSuchAsset
			return
		}
		reply.Ticker = arguments.Ticker
		reply.Balance = asset.BalanceOf(arguments.Ticker, arguments.DID)
		reply.TotalSupply = token.TotalSupply
		reply.Frozen = asset.IsFrozen(arguments.Ticker)
	})
	return err
}

// PortfolioArguments - the portfolio to query
type PortfolioArguments struct {
	Portfolio primitives.PortfolioID `json:"portfolio"`
}

// PortfolioReply - holdings of a portfolio
type PortfolioReply struct {
	Name      string      `json:"name"`
	Custodian string      `json:"custodian"`
	Holdings  []Holding   `json:"holdings"`
	NFTs      []NFTHolder `json:"nfts,omitempty"`
}

// Holding - a fungible balance
type Holding struct {
	Ticker    primitives.Ticker  `json:"ticker"`
	Total     primitives.Balance `json:"total,string"`
	Locked    primitives.Balance `json:"locked,string"`
	Available primitives.Balance `json:"available,string"`
}

// NFTHolder - tokens of one collection
type NFTHolder struct {
	Ticker primitives.Ticker `json:"ticker"`
	IDs    []uint64          `json:"ids"`
}

// PortfolioBalance - balances held in a portfolio
func (s *State) PortfolioBalance(arguments *PortfolioArguments, reply *PortfolioReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	var err error
	runtime.View(func() {
		if err = portfolio.EnsureExists(arguments.Portfolio); nil != err {
			return
		}
		if arguments.Portfolio.IsDefault() {
			reply.Name = "default"
		} else {
			reply.Name, _ = portfolio.Name(arguments.Portfolio)
		}
		reply.Custodian = portfolio.Custodian(arguments.Portfolio).String()

		holdings := portfolio.Holdings(arguments.Portfolio)
		reply.Holdings = make([]Holding, 0, len(holdings))
		for _, h := range holdings {
			token, ok := asset.Token(h.Ticker)
			if ok && token.NonFungible {
				reply.NFTs = append(reply.NFTs, NFTHolder{
					Ticker: h.Ticker,
					IDs:    portfolio.NFTs(arguments.Portfolio, h.Ticker),
				})
				continue
			}
			reply.Holdings = append(reply.Holdings, Holding{
				Ticker:    h.Ticker,
				Total:     h.Total,
				Locked:    h.Locked,
				Available: h.Total - h.Locked,
			})
		}
	})
	return err
}

// InstructionArguments - instruction id
type InstructionArguments struct {
	ID uint64 `json:"id,string"`
}

// InstructionReply - an instruction and its progress
type InstructionReply struct {
	ID           uint64                   `json:"id,string"`
	Venue        uint64                   `json:"venue,string"`
	Creator      primitives.DID           `json:"creator"`
	Status       string                   `json:"status"`
	TradeDate    primitives.Moment        `json:"tradeDate,string"`
	ValueDate    primitives.Moment        `json:"valueDate,string"`
	Legs         []LegReply               `json:"legs"`
	Pending      []primitives.PortfolioID `json:"pending"`
	FailedReason string                   `json:"failedReason,omitempty"`
	ExecutedAt   uint64                   `json:"executedAt,omitempty"`
}

// LegReply - one movement of an instruction
type LegReply struct {
	From   primitives.PortfolioID `json:"from"`
	To     primitives.PortfolioID `json:"to"`
	Ticker primitives.Ticker      `json:"ticker"`
	Amount primitives.Balance     `json:"amount,string"`
	NFTs   []uint64               `json:"nfts,omitempty"`
	Asset  string                 `json:"offChainAsset,omitempty"`
}

// Instruction - fetch a settlement instruction
func (s *State) Instruction(arguments *InstructionArguments, reply *InstructionReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	var (
		i   *settlement.Instruction
		err error
	)
	runtime.View(func() {
		i, err = settlement.GetInstruction(arguments.ID)
	})
	if nil != err {
		return err
	}

	reply.ID = i.ID
	reply.Venue = i.Venue
	reply.Creator = i.Creator
	reply.Status = i.Status.String()
	reply.TradeDate = i.TradeDate
	reply.ValueDate = i.ValueDate
	reply.FailedReason = i.FailedReason
	reply.ExecutedAt = i.ExecutedAt
	reply.Pending = i.Pending()
	reply.Legs = make([]LegReply, len(i.Legs))
	for n, leg := range i.Legs {
		reply.Legs[n] = LegReply{
			From:   leg.From,
			To:     leg.To,
			Ticker: leg.Ticker,
			Amount: leg.Amount,
			NFTs:   leg.NFTs,
			Asset:  leg.OffChainAsset,
		}
	}
	return nil
}

// EventsArguments - a range of blocks
type EventsArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// EventsReply - events in block order
type EventsReply struct {
	Events []system.Event `json:"events"`
}

// Events - events deposited by a range of blocks
func (s *State) Events(arguments *EventsArguments, reply *EventsReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Count <= 0 {
		return fault.ErrMissingParameters
	}
	count := arguments.Count
	if count > maximumEventBlocks {
		count = maximumEventBlocks
	}

	reply.Events = make([]system.Event, 0, count)
	runtime.View(func() {
		for n := 0; n < count; n += 1 {
			reply.Events = append(reply.Events, system.Events(arguments.Start+uint64(n))...)
		}
	})
	return nil
}

// IdentityArguments - the identity to query
type IdentityArguments struct {
	DID primitives.DID `json:"did"`
}

// IdentityReply - keys and due diligence status of an identity
type IdentityReply struct {
	DID           primitives.DID  `json:"did"`
	PrimaryKey    account.Key     `json:"primaryKey"`
	Parent        *primitives.DID `json:"parent,omitempty"`
	SecondaryKeys []account.Key   `json:"secondaryKeys"`
	Frozen        bool            `json:"frozen"`
	CddClaims     []CddClaim      `json:"cddClaims"`
}

// CddClaim - issuer and validity of a due diligence claim
type CddClaim struct {
	Issuer primitives.DID    `json:"issuer"`
	Expiry primitives.Moment `json:"expiry,string"`
	Valid  bool              `json:"valid"`
}

// Identity - fetch the public record of an identity
func (s *State) Identity(arguments *IdentityArguments, reply *IdentityReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	var err error
	runtime.View(func() {
		record, ok := identity.Record(arguments.DID)
		if !ok {
			err = fault.ErrMissingIdentity
			return
		}
		now := headMoment()

		reply.DID = arguments.DID
		reply.PrimaryKey = record.PrimaryKey
		if !record.Parent.IsZero() {
			parent := record.Parent
			reply.Parent = &parent
		}
		secondary := identity.SecondaryKeys(arguments.DID)
		reply.SecondaryKeys = make([]account.Key, len(secondary))
		for i, k := range secondary {
			reply.SecondaryKeys[i] = k.Key
		}
		reply.Frozen = identity.IsFrozen(arguments.DID)

		claims := identity.Claims(arguments.DID, primitives.ClaimCustomerDueDiligence, 0)
		reply.CddClaims = make([]CddClaim, len(claims))
		for i, c := range claims {
			reply.CddClaims[i] = CddClaim{
				Issuer: c.Issuer,
				Expiry: c.Expiry,
				Valid:  c.Valid(now),
			}
		}
	})
	return err
}

func headMoment() primitives.Moment {
	header, _, ok := blockrecord.Head()
	if !ok {
		return 0
	}
	return header.Moment
}
