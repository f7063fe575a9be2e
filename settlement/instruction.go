// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"sort"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const instructionCounter = "instruction"

// SettlementKind - when an instruction executes
type SettlementKind uint8

// settlement kinds
const (
	SettleOnAffirmation SettlementKind = iota
	SettleOnBlock
)

// SettlementType - kind and, for SettleOnBlock, the block
type SettlementType struct {
	Kind  SettlementKind
	Block uint64
}

// OnAffirmation - execute when the last affirmation arrives
func OnAffirmation() SettlementType {
	return SettlementType{Kind: SettleOnAffirmation}
}

// OnBlock - execute at the start of a block
func OnBlock(block uint64) SettlementType {
	return SettlementType{Kind: SettleOnBlock, Block: block}
}

// LegKind - what a leg moves
type LegKind uint8

// leg kinds
const (
	FungibleLeg LegKind = iota
	NonFungibleLeg
	OffChainLeg
)

// Leg - one asset movement
//
// off-chain legs name identities through the default portfolios and
// carry a free form asset name
type Leg struct {
	Kind          LegKind
	From          primitives.PortfolioID
	To            primitives.PortfolioID
	Ticker        primitives.Ticker
	Amount        primitives.Balance
	NFTs          []uint64
	OffChainAsset string
}

// LegStatus - progress of a leg
type LegStatus uint8

// leg states
const (
	LegPendingTokenLock LegStatus = iota
	LegExecutionPending
	LegExecutionToBeSkipped
)

// LegState - status plus the receipt that settled an off-chain leg
type LegState struct {
	Status LegStatus
	Signer account.Key
	UID    uint64
}

// InstructionStatus - lifecycle state
type InstructionStatus uint8

// instruction states
const (
	StatusUnknown InstructionStatus = iota
	StatusPending
	StatusFailed
	StatusRejected
	StatusSettled
)

var statusNames = map[InstructionStatus]string{
	StatusUnknown:  "Unknown",
	StatusPending:  "Pending",
	StatusFailed:   "Failed",
	StatusRejected: "Rejected",
	StatusSettled:  "Settled",
}

func (s InstructionStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Affirmation - a portfolio whose affirmation is required
type Affirmation struct {
	Portfolio primitives.PortfolioID
	Mediator  bool
	Affirmed  bool
}

// Instruction - a bundle of legs that settle atomically
type Instruction struct {
	ID           uint64
	Venue        uint64
	Creator      primitives.DID
	Status       InstructionStatus
	Settlement   SettlementType
	TradeDate    primitives.Moment
	ValueDate    primitives.Moment
	CreatedAt    primitives.Moment
	Legs         []Leg
	LegStates    []LegState
	Affirmations []Affirmation
	FailedReason string
	ScheduledAt  uint64
	ExecutedAt   uint64
}

// GetInstruction - fetch an instruction
func GetInstruction(id uint64) (*Instruction, error) {
	var i Instruction
	if !storage.Pool.Instructions.GetRecord(primitives.Uint64Bytes(id), &i) {
		return nil, fault.ErrInstructionNotFound
	}
	return &i, nil
}

func putInstruction(i *Instruction) {
	storage.Pool.Instructions.PutRecord(primitives.Uint64Bytes(i.ID), i)
}

func (i *Instruction) affirmation(p primitives.PortfolioID) (int, bool) {
	for n, a := range i.Affirmations {
		if a.Portfolio == p {
			return n, true
		}
	}
	return 0, false
}

// Pending - portfolios still to affirm
func (i *Instruction) Pending() []primitives.PortfolioID {
	pending := make([]primitives.PortfolioID, 0, len(i.Affirmations))
	for _, a := range i.Affirmations {
		if !a.Affirmed {
			pending = append(pending, a.Portfolio)
		}
	}
	return pending
}

// ready to execute: every portfolio affirmed and every off-chain leg
// covered by a receipt
func (i *Instruction) missing() error {
	for _, a := range i.Affirmations {
		if !a.Affirmed && !a.Mediator {
			return fault.ErrInstructionNotAffirmed
		}
	}
	for n, leg := range i.Legs {
		if OffChainLeg == leg.Kind && LegExecutionToBeSkipped != i.LegStates[n].Status {
			return fault.ErrInstructionNotAffirmed
		}
	}
	for _, a := range i.Affirmations {
		if !a.Affirmed {
			return fault.ErrMediatorAffirmationMissing
		}
	}
	return nil
}

// every portfolio named by a leg
func (i *Instruction) counterparties() []primitives.PortfolioID {
	seen := make(map[primitives.PortfolioID]struct{})
	list := make([]primitives.PortfolioID, 0, 2*len(i.Legs))
	for _, leg := range i.Legs {
		for _, p := range []primitives.PortfolioID{leg.From, leg.To} {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				list = append(list, p)
			}
		}
	}
	return list
}

func scheduleKey(block uint64, id uint64) []byte {
	return primitives.Key(primitives.Uint64Bytes(block), primitives.Uint64Bytes(id))
}

func schedule(block uint64, id uint64) {
	storage.Pool.ScheduledInstructions.Put(scheduleKey(block, id), []byte{1})
}

func validateLeg(venue uint64, leg Leg) error {
	if leg.From == leg.To {
		return fault.ErrSameSenderReceiver
	}
	if err := portfolios().EnsureExists(leg.From); nil != err {
		return err
	}
	if err := portfolios().EnsureExists(leg.To); nil != err {
		return err
	}
	switch leg.Kind {
	case FungibleLeg:
		if 0 == leg.Amount {
			return fault.ErrZeroAmount
		}
	case NonFungibleLeg:
		if 0 == len(leg.NFTs) {
			return fault.ErrZeroAmount
		}
	case OffChainLeg:
		if 0 == leg.Amount {
			return fault.ErrZeroAmount
		}
		return nil
	default:
		return fault.ErrInvalidCount
	}
	if !assets().Exists(leg.Ticker) {
		return fault.ErrNoSuchAsset
	}
	if !VenueAllowed(leg.Ticker, venue) {
		return fault.ErrUnauthorizedVenue
	}
	return nil
}

// AddInstruction - create a pending instruction at a venue
//
// senders of on-chain legs and the default portfolios of all mediators,
// including those the assets require, must affirm before execution
func AddInstruction(ctx *system.Context, venueID uint64, settlement SettlementType, tradeDate primitives.Moment, valueDate primitives.Moment, legs []Leg, mediators []primitives.DID) (uint64, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	venue, err := GetVenue(venueID)
	if nil != err {
		return 0, err
	}
	if venue.Creator != caller.DID && !venue.IsSigner(caller.Key) {
		return 0, fault.ErrNotAVenueSigner
	}
	if 0 == len(legs) {
		return 0, fault.ErrNoLegs
	}
	if len(legs) > config().MaximumLegs {
		return 0, fault.ErrMaxLegsExceeded
	}
	if 0 != tradeDate && 0 != valueDate && valueDate < tradeDate {
		return 0, fault.ErrInvalidDates
	}
	if SettleOnBlock == settlement.Kind && settlement.Block <= ctx.Block() {
		return 0, fault.ErrSettleOnPastBlock
	}
	if len(mediators) > maximumInstructionMediators {
		return 0, fault.ErrInvalidCount
	}

	senders := make(map[primitives.PortfolioID]struct{})
	mediatorSet := make(map[primitives.DID]struct{})
	for _, did := range mediators {
		mediatorSet[did] = struct{}{}
	}
	for _, leg := range legs {
		if err := validateLeg(venueID, leg); nil != err {
			return 0, err
		}
		if OffChainLeg == leg.Kind {
			continue
		}
		senders[leg.From] = struct{}{}
		for _, did := range assets().MandatoryMediators(leg.Ticker) {
			mediatorSet[did] = struct{}{}
		}
	}

	affirmations := make([]Affirmation, 0, len(senders)+len(mediatorSet))
	for p := range senders {
		affirmations = append(affirmations, Affirmation{Portfolio: p})
	}
	for did := range mediatorSet {
		if !identity.Exists(did) {
			return 0, fault.ErrDidDoesNotExist
		}
		p := primitives.DefaultPortfolio(did)
		if _, ok := senders[p]; ok {
			for n := range affirmations {
				if affirmations[n].Portfolio == p {
					affirmations[n].Mediator = true
				}
			}
			continue
		}
		affirmations = append(affirmations, Affirmation{Portfolio: p, Mediator: true})
	}
	sort.Slice(affirmations, func(a, b int) bool {
		return affirmations[a].Portfolio.Compare(affirmations[b].Portfolio) < 0
	})

	i := Instruction{
		ID:           system.NextID(instructionCounter),
		Venue:        venueID,
		Creator:      caller.DID,
		Status:       StatusPending,
		Settlement:   settlement,
		TradeDate:    tradeDate,
		ValueDate:    valueDate,
		CreatedAt:    ctx.Now(),
		Legs:         legs,
		LegStates:    make([]LegState, len(legs)),
		Affirmations: affirmations,
	}
	if SettleOnBlock == settlement.Kind {
		i.ScheduledAt = settlement.Block
		schedule(settlement.Block, i.ID)
	}
	putInstruction(&i)
	for _, p := range i.counterparties() {
		portfolios().AddInstructionRef(p, i.ID)
	}

	ctx.Deposit(Pallet, "InstructionCreated", caller.DID, venueID, i.ID, settlement.Kind, len(legs))
	globalData.log.Debugf("instruction: %d  venue: %d  legs: %d  affirmers: %d", i.ID, venueID, len(legs), len(affirmations))
	return i.ID, nil
}

// AddAndAffirmInstruction - create an instruction and affirm it for the
// given portfolios in one call
func AddAndAffirmInstruction(ctx *system.Context, venueID uint64, settlement SettlementType, tradeDate primitives.Moment, valueDate primitives.Moment, legs []Leg, mediators []primitives.DID, affirming []primitives.PortfolioID) (uint64, error) {
	id, err := AddInstruction(ctx, venueID, settlement, tradeDate, valueDate, legs, mediators)
	if nil != err {
		return 0, err
	}
	if err := AffirmInstruction(ctx, id, affirming); nil != err {
		return 0, err
	}
	return id, nil
}
