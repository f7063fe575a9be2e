// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// CreateVenueArgs - arguments of create_venue
type CreateVenueArgs struct {
	Details string
	Signers []account.Key
	Type    VenueType
}

// VenueDetailsArgs - arguments of update_venue_details
type VenueDetailsArgs struct {
	Venue   uint64
	Details string
}

// VenueTypeArgs - arguments of update_venue_type
type VenueTypeArgs struct {
	Venue uint64
	Type  VenueType
}

// VenueSignersArgs - arguments of update_venue_signers
type VenueSignersArgs struct {
	Venue   uint64
	Signers []account.Key
	Add     bool
}

// InstructionArgs - arguments of add_instruction and
// add_and_affirm_instruction
type InstructionArgs struct {
	Venue      uint64
	Settlement SettlementType
	TradeDate  primitives.Moment
	ValueDate  primitives.Moment
	Legs       []Leg
	Mediators  []primitives.DID
	Portfolios []primitives.PortfolioID
}

// AffirmArgs - an instruction and the portfolios acted for
type AffirmArgs struct {
	ID         uint64
	Portfolios []primitives.PortfolioID
}

// IDArgs - calls that only name an instruction
type IDArgs struct {
	ID uint64
}

// RejectArgs - arguments of reject_instruction
type RejectArgs struct {
	ID        uint64
	Portfolio primitives.PortfolioID
}

// ReceiptsArgs - arguments of affirm_with_receipts
type ReceiptsArgs struct {
	ID         uint64
	Receipts   []Receipt
	Portfolios []primitives.PortfolioID
}

// FilteringArgs - arguments of set_venue_filtering
type FilteringArgs struct {
	Ticker  primitives.Ticker
	Enabled bool
}

// VenuesArgs - arguments of allow_venues and disallow_venues
type VenuesArgs struct {
	Ticker primitives.Ticker
	Venues []uint64
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"create_venue": func(ctx *system.Context, call system.Call) error {
			var args CreateVenueArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateVenue(ctx, args.Details, args.Signers, args.Type)
			return err
		},
		"update_venue_details": func(ctx *system.Context, call system.Call) error {
			var args VenueDetailsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return UpdateVenueDetails(ctx, args.Venue, args.Details)
		},
		"update_venue_type": func(ctx *system.Context, call system.Call) error {
			var args VenueTypeArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return UpdateVenueType(ctx, args.Venue, args.Type)
		},
		"update_venue_signers": func(ctx *system.Context, call system.Call) error {
			var args VenueSignersArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return UpdateVenueSigners(ctx, args.Venue, args.Signers, args.Add)
		},
		"add_instruction": func(ctx *system.Context, call system.Call) error {
			var args InstructionArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := AddInstruction(ctx, args.Venue, args.Settlement, args.TradeDate, args.ValueDate, args.Legs, args.Mediators)
			return err
		},
		"add_and_affirm_instruction": func(ctx *system.Context, call system.Call) error {
			var args InstructionArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := AddAndAffirmInstruction(ctx, args.Venue, args.Settlement, args.TradeDate, args.ValueDate, args.Legs, args.Mediators, args.Portfolios)
			return err
		},
		"affirm_instruction": func(ctx *system.Context, call system.Call) error {
			var args AffirmArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AffirmInstruction(ctx, args.ID, args.Portfolios)
		},
		"affirm_instruction_as_mediator": func(ctx *system.Context, call system.Call) error {
			var args IDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AffirmInstructionAsMediator(ctx, args.ID)
		},
		"withdraw_affirmation": func(ctx *system.Context, call system.Call) error {
			var args AffirmArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return WithdrawAffirmation(ctx, args.ID, args.Portfolios)
		},
		"withdraw_affirmation_as_mediator": func(ctx *system.Context, call system.Call) error {
			var args IDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return WithdrawAffirmationAsMediator(ctx, args.ID)
		},
		"reject_instruction": func(ctx *system.Context, call system.Call) error {
			var args RejectArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RejectInstruction(ctx, args.ID, args.Portfolio)
		},
		"affirm_with_receipts": func(ctx *system.Context, call system.Call) error {
			var args ReceiptsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AffirmWithReceipts(ctx, args.ID, args.Receipts, args.Portfolios)
		},
		"reschedule_instruction": func(ctx *system.Context, call system.Call) error {
			var args IDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RescheduleInstruction(ctx, args.ID)
		},
		"set_venue_filtering": func(ctx *system.Context, call system.Call) error {
			var args FilteringArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return SetVenueFiltering(ctx, args.Ticker, args.Enabled)
		},
		"allow_venues": func(ctx *system.Context, call system.Call) error {
			var args VenuesArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AllowVenues(ctx, args.Ticker, args.Venues)
		},
		"disallow_venues": func(ctx *system.Context, call system.Call) error {
			var args VenuesArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return DisallowVenues(ctx, args.Ticker, args.Venues)
		},
	}
}
