// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// lock everything a portfolio sends in the instruction
func lockLegs(i *Instruction, p primitives.PortfolioID) error {
	for n, leg := range i.Legs {
		if leg.From != p || OffChainLeg == leg.Kind {
			continue
		}
		switch leg.Kind {
		case FungibleLeg:
			if err := portfolios().Lock(p, leg.Ticker, leg.Amount); nil != err {
				return fault.ErrFailedToLockTokens
			}
		case NonFungibleLeg:
			for _, id := range leg.NFTs {
				err := portfolios().LockNFT(p, leg.Ticker, id)
				if fault.ErrNFTAlreadyLocked == err {
					return err
				}
				if nil != err {
					return fault.ErrFailedToLockTokens
				}
			}
		}
		i.LegStates[n].Status = LegExecutionPending
	}
	return nil
}

// release what lockLegs took for one leg
func unlockLeg(i *Instruction, n int) error {
	leg := i.Legs[n]
	if LegExecutionPending != i.LegStates[n].Status {
		return nil
	}
	switch leg.Kind {
	case FungibleLeg:
		if err := portfolios().Unlock(leg.From, leg.Ticker, leg.Amount); nil != err {
			return err
		}
	case NonFungibleLeg:
		for _, id := range leg.NFTs {
			if err := portfolios().UnlockNFT(leg.From, leg.Ticker, id); nil != err {
				return err
			}
		}
	}
	i.LegStates[n].Status = LegPendingTokenLock
	return nil
}

func unlockLegs(i *Instruction, p primitives.PortfolioID) error {
	for n, leg := range i.Legs {
		if leg.From != p {
			continue
		}
		if err := unlockLeg(i, n); nil != err {
			return err
		}
	}
	return nil
}

func pendingInstruction(id uint64) (*Instruction, error) {
	i, err := GetInstruction(id)
	if nil != err {
		return nil, err
	}
	if StatusPending != i.Status {
		return nil, fault.ErrInstructionNotPending
	}
	return i, nil
}

// AffirmInstruction - affirm for portfolios in the caller's custody,
// locking what each of them sends
func AffirmInstruction(ctx *system.Context, id uint64, affirming []primitives.PortfolioID) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := pendingInstruction(id)
	if nil != err {
		return err
	}
	if err := affirm(ctx, caller, i, affirming); nil != err {
		return err
	}
	return executeIfReady(ctx, i)
}

// AffirmInstructionAsMediator - a mediator affirms with its default portfolio
func AffirmInstructionAsMediator(ctx *system.Context, id uint64) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := pendingInstruction(id)
	if nil != err {
		return err
	}
	p := primitives.DefaultPortfolio(caller.DID)
	if n, ok := i.affirmation(p); !ok || !i.Affirmations[n].Mediator {
		return fault.ErrNotAMediator
	}
	if err := affirm(ctx, caller, i, []primitives.PortfolioID{p}); nil != err {
		return err
	}
	return executeIfReady(ctx, i)
}

func affirm(ctx *system.Context, caller *identity.Caller, i *Instruction, affirming []primitives.PortfolioID) error {
	for _, p := range affirming {
		n, ok := i.affirmation(p)
		if !ok || i.Affirmations[n].Affirmed {
			return fault.ErrNoPendingAffirm
		}
		if err := portfolios().EnsureCustody(caller, p); nil != err {
			return err
		}
	}

	err := ctx.Transactional(func() error {
		for _, p := range affirming {
			if err := lockLegs(i, p); nil != err {
				return err
			}
		}
		return nil
	})
	if nil != err {
		return err
	}

	for _, p := range affirming {
		n, _ := i.affirmation(p)
		i.Affirmations[n].Affirmed = true
		ctx.Deposit(Pallet, "InstructionAffirmed", caller.DID, p, i.ID)
	}
	putInstruction(i)
	return nil
}

// WithdrawAffirmation - undo affirmations and release their locks
//
// a failed instruction returns to pending
func WithdrawAffirmation(ctx *system.Context, id uint64, withdrawing []primitives.PortfolioID) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := GetInstruction(id)
	if nil != err {
		return err
	}
	return withdraw(ctx, caller, i, withdrawing)
}

// WithdrawAffirmationAsMediator - a mediator withdraws its affirmation
func WithdrawAffirmationAsMediator(ctx *system.Context, id uint64) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := GetInstruction(id)
	if nil != err {
		return err
	}
	p := primitives.DefaultPortfolio(caller.DID)
	if n, ok := i.affirmation(p); !ok || !i.Affirmations[n].Mediator {
		return fault.ErrNotAMediator
	}
	return withdraw(ctx, caller, i, []primitives.PortfolioID{p})
}

func withdraw(ctx *system.Context, caller *identity.Caller, i *Instruction, withdrawing []primitives.PortfolioID) error {
	if StatusPending != i.Status && StatusFailed != i.Status {
		return fault.ErrInstructionNotPending
	}
	for _, p := range withdrawing {
		n, ok := i.affirmation(p)
		if !ok || !i.Affirmations[n].Affirmed {
			return fault.ErrInstructionNotAffirmed
		}
		if err := portfolios().EnsureCustody(caller, p); nil != err {
			return err
		}
	}
	for _, p := range withdrawing {
		if err := unlockLegs(i, p); nil != err {
			return err
		}
		n, _ := i.affirmation(p)
		i.Affirmations[n].Affirmed = false
		ctx.Deposit(Pallet, "AffirmationWithdrawn", caller.DID, p, i.ID)
	}
	if StatusFailed == i.Status {
		i.Status = StatusPending
		i.FailedReason = ""
	}
	putInstruction(i)
	return nil
}

// RejectInstruction - a required affirmer ends the instruction
//
// every lock is released and claimed receipts become usable again
func RejectInstruction(ctx *system.Context, id uint64, p primitives.PortfolioID) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := GetInstruction(id)
	if nil != err {
		return err
	}
	if StatusPending != i.Status && StatusFailed != i.Status {
		return fault.ErrInstructionNotPending
	}
	if _, ok := i.affirmation(p); !ok {
		return fault.ErrNoPendingAffirm
	}
	if err := portfolios().EnsureCustody(caller, p); nil != err {
		return err
	}

	for n := range i.Legs {
		if err := unlockLeg(i, n); nil != err {
			return err
		}
		unclaimReceipt(ctx, i, n)
	}
	for n := range i.Affirmations {
		i.Affirmations[n].Affirmed = false
	}
	i.Status = StatusRejected
	finish(i)
	putInstruction(i)

	ctx.Deposit(Pallet, "InstructionRejected", caller.DID, i.ID)
	return nil
}

// drop the references and any queued execution of a finished instruction
func finish(i *Instruction) {
	for _, p := range i.counterparties() {
		portfolios().RemoveInstructionRef(p, i.ID)
	}
	if 0 != i.ScheduledAt {
		storage.Pool.ScheduledInstructions.Delete(scheduleKey(i.ScheduledAt, i.ID))
		i.ScheduledAt = 0
	}
}

// RescheduleInstruction - queue a failed instruction for the next block
func RescheduleInstruction(ctx *system.Context, id uint64) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := GetInstruction(id)
	if nil != err {
		return err
	}
	if StatusFailed != i.Status {
		return fault.ErrInstructionNotFailed
	}
	if 0 != i.ScheduledAt {
		storage.Pool.ScheduledInstructions.Delete(scheduleKey(i.ScheduledAt, i.ID))
	}
	i.Status = StatusPending
	i.FailedReason = ""
	i.ScheduledAt = ctx.Block() + 1
	schedule(i.ScheduledAt, i.ID)
	putInstruction(i)

	ctx.Deposit(Pallet, "InstructionRescheduled", caller.DID, i.ID, i.ScheduledAt)
	return nil
}
