// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"encoding/binary"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// ExecutionWeight - fixed cost of executing an instruction, legs add
// the transfer weights
const ExecutionWeight system.Weight = 50

// settle on affirmation now, a block instruction that has lost its
// place in the queue goes to the next block
func executeIfReady(ctx *system.Context, i *Instruction) error {
	if nil != i.missing() {
		return nil
	}
	switch i.Settlement.Kind {
	case SettleOnAffirmation:
		execute(ctx, i)
	case SettleOnBlock:
		if 0 == i.ScheduledAt {
			i.ScheduledAt = ctx.Block() + 1
			schedule(i.ScheduledAt, i.ID)
			putInstruction(i)
			ctx.Deposit(Pallet, "InstructionScheduled", i.ID, i.ScheduledAt)
			globalData.log.Debugf("instruction: %d queued for block: %d", i.ID, i.ScheduledAt)
		}
	}
	return nil
}

// apply every leg in one savepoint
//
// on failure the savepoint is rolled back, so the locks taken at
// affirmation are still held, and the instruction becomes Failed
func execute(ctx *system.Context, i *Instruction) {
	failedLeg := -1
	err := ctx.Transactional(func() error {
		if err := ctx.Consume(ExecutionWeight); nil != err {
			return err
		}
		for n, leg := range i.Legs {
			if OffChainLeg != leg.Kind && !VenueAllowed(leg.Ticker, i.Venue) {
				failedLeg = n
				return fault.ErrUnauthorizedVenue
			}
		}
		for n, leg := range i.Legs {
			if LegExecutionPending != i.LegStates[n].Status {
				continue
			}
			if err := unlockLeg(i, n); nil != err {
				failedLeg = n
				return err
			}
			var err error
			switch leg.Kind {
			case FungibleLeg:
				err = assets().Transfer(ctx, leg.From, leg.To, leg.Ticker, leg.Amount)
			case NonFungibleLeg:
				err = assets().TransferNFTs(ctx, leg.From, leg.To, leg.Ticker, leg.NFTs)
			}
			if nil != err {
				failedLeg = n
				return err
			}
		}
		return nil
	})

	if nil != err {
		// the in memory leg states were changed inside the rolled back scope
		for n, leg := range i.Legs {
			if OffChainLeg != leg.Kind {
				i.LegStates[n].Status = LegExecutionPending
			}
		}
		fail(ctx, i, failedLeg, err)
		return
	}

	i.Status = StatusSettled
	i.ExecutedAt = ctx.Block()
	finish(i)
	putInstruction(i)
	ctx.Deposit(Pallet, "InstructionExecuted", i.ID)
	globalData.log.Infof("instruction: %d executed at block: %d", i.ID, i.ExecutedAt)
}

func fail(ctx *system.Context, i *Instruction, leg int, err error) {
	i.Status = StatusFailed
	i.FailedReason = err.Error()
	if 0 != i.ScheduledAt {
		storage.Pool.ScheduledInstructions.Delete(scheduleKey(i.ScheduledAt, i.ID))
		i.ScheduledAt = 0
	}
	putInstruction(i)
	if leg >= 0 {
		ctx.Deposit(Pallet, "LegFailedExecution", i.ID, leg)
	}
	ctx.Deposit(Pallet, "InstructionFailed", i.ID, err)
	globalData.log.Infof("instruction: %d failed: %s", i.ID, err)
}

// OnInitialize - execute the instructions scheduled up to this block in
// ascending id order
//
// once the leg budget is used the rest move to the next block, an
// instruction is never split
func OnInitialize(ctx *system.Context) error {
	maximum := config().MaximumScheduledLegs
	legs := 0
	block := ctx.Block()

	for _, e := range storage.Pool.ScheduledInstructions.Elements(nil) {
		if 16 != len(e.Key) {
			continue
		}
		at := binary.BigEndian.Uint64(e.Key[:8])
		if at > block {
			break
		}
		id := binary.BigEndian.Uint64(e.Key[8:])
		storage.Pool.ScheduledInstructions.Delete(e.Key)

		i, err := GetInstruction(id)
		if nil != err || StatusPending != i.Status {
			continue
		}
		if legs >= maximum {
			i.ScheduledAt = block + 1
			schedule(i.ScheduledAt, i.ID)
			putInstruction(i)
			continue
		}
		legs += len(i.Legs)

		i.ScheduledAt = 0
		if err := i.missing(); nil != err {
			fail(ctx, i, -1, err)
			continue
		}
		execute(ctx, i)
	}
	return nil
}
