// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
	"github.com/polymesh-go/polymeshd/util"
)

// Receipt - a venue signer's statement that an off-chain leg happened
type Receipt struct {
	UID       uint64
	LegID     uint32
	Signer    account.Key
	Signature account.Signature
}

// ReceiptMessage - the bytes a venue signer signs for a receipt
func ReceiptMessage(uid uint64, instruction uint64, legID uint32, leg Leg) []byte {
	return util.Packed{}.
		AppendString("RECEIPT").
		AppendUint64(uid).
		AppendUint64(instruction).
		AppendUint64(uint64(legID)).
		AppendBytes(leg.From.DID[:]).
		AppendBytes(leg.To.DID[:]).
		AppendString(leg.OffChainAsset).
		AppendUint64(uint64(leg.Amount))
}

func receiptKey(signer account.Key, uid uint64) []byte {
	return primitives.Key(signer[:], primitives.Uint64Bytes(uid))
}

// ReceiptUsed - true if a signer's receipt uid has been claimed
func ReceiptUsed(signer account.Key, uid uint64) bool {
	return storage.Pool.ReceiptsUsed.Has(receiptKey(signer, uid))
}

func unclaimReceipt(ctx *system.Context, i *Instruction, n int) {
	state := i.LegStates[n]
	if LegExecutionToBeSkipped != state.Status {
		return
	}
	storage.Pool.ReceiptsUsed.Delete(receiptKey(state.Signer, state.UID))
	i.LegStates[n] = LegState{}
	ctx.Deposit(Pallet, "ReceiptUnclaimed", i.ID, n, state.UID, state.Signer)
}

// AffirmWithReceipts - cover off-chain legs with receipts then affirm
// for portfolios in the caller's custody
func AffirmWithReceipts(ctx *system.Context, id uint64, receipts []Receipt, affirming []primitives.PortfolioID) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	i, err := pendingInstruction(id)
	if nil != err {
		return err
	}
	venue, err := GetVenue(i.Venue)
	if nil != err {
		return err
	}

	for _, r := range receipts {
		if err := claimReceipt(ctx, caller, venue, i, r); nil != err {
			return err
		}
	}
	if err := affirm(ctx, caller, i, affirming); nil != err {
		return err
	}
	return executeIfReady(ctx, i)
}

func claimReceipt(ctx *system.Context, caller *identity.Caller, venue *Venue, i *Instruction, r Receipt) error {
	n := int(r.LegID)
	if n >= len(i.Legs) || OffChainLeg != i.Legs[n].Kind {
		return fault.ErrUnexpectedAffirmationStatus
	}
	if LegPendingTokenLock != i.LegStates[n].Status {
		return fault.ErrUnexpectedAffirmationStatus
	}
	leg := i.Legs[n]
	if leg.From.DID != caller.DID {
		return fault.ErrCustodianMismatch
	}
	if !venue.IsSigner(r.Signer) {
		return fault.ErrNotAVenueSigner
	}
	if ReceiptUsed(r.Signer, r.UID) {
		return fault.ErrReceiptAlreadyClaimed
	}
	if err := r.Signer.Verify(ReceiptMessage(r.UID, i.ID, r.LegID, leg), r.Signature); nil != err {
		return err
	}

	storage.Pool.ReceiptsUsed.Put(receiptKey(r.Signer, r.UID), []byte{1})
	i.LegStates[n] = LegState{
		Status: LegExecutionToBeSkipped,
		Signer: r.Signer,
		UID:    r.UID,
	}
	putInstruction(i)
	ctx.Deposit(Pallet, "ReceiptClaimed", caller.DID, i.ID, r.LegID, r.UID, r.Signer)
	return nil
}
