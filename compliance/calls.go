// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// TickerArgs - calls that only name an asset
type TickerArgs struct {
	Ticker primitives.Ticker
}

// AddRequirementArgs - arguments of add_compliance_requirement
type AddRequirementArgs struct {
	Ticker             primitives.Ticker
	SenderConditions   []Condition
	ReceiverConditions []Condition
}

// RequirementIDArgs - arguments of remove_compliance_requirement
type RequirementIDArgs struct {
	Ticker primitives.Ticker
	ID     uint32
}

// RequirementArgs - arguments of change_compliance_requirement
type RequirementArgs struct {
	Ticker      primitives.Ticker
	Requirement Requirement
}

// ReplaceArgs - arguments of replace_asset_compliance
type ReplaceArgs struct {
	Ticker       primitives.Ticker
	Requirements []Requirement
}

// IssuerArgs - arguments of the default trusted issuer calls
type IssuerArgs struct {
	Ticker primitives.Ticker
	Issuer TrustedIssuer
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"add_compliance_requirement": func(ctx *system.Context, call system.Call) error {
			var args AddRequirementArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := AddComplianceRequirement(ctx, args.Ticker, args.SenderConditions, args.ReceiverConditions)
			return err
		},
		"remove_compliance_requirement": func(ctx *system.Context, call system.Call) error {
			var args RequirementIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveComplianceRequirement(ctx, args.Ticker, args.ID)
		},
		"change_compliance_requirement": func(ctx *system.Context, call system.Call) error {
			var args RequirementArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ChangeComplianceRequirement(ctx, args.Ticker, args.Requirement)
		},
		"replace_asset_compliance": func(ctx *system.Context, call system.Call) error {
			var args ReplaceArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ReplaceAssetCompliance(ctx, args.Ticker, args.Requirements)
		},
		"reset_asset_compliance": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ResetAssetCompliance(ctx, args.Ticker)
		},
		"pause_asset_compliance": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return PauseAssetCompliance(ctx, args.Ticker)
		},
		"resume_asset_compliance": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ResumeAssetCompliance(ctx, args.Ticker)
		},
		"add_default_trusted_claim_issuer": func(ctx *system.Context, call system.Call) error {
			var args IssuerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddDefaultTrustedClaimIssuer(ctx, args.Ticker, args.Issuer)
		},
		"remove_default_trusted_claim_issuer": func(ctx *system.Context, call system.Call) error {
			var args IssuerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveDefaultTrustedClaimIssuer(ctx, args.Ticker, args.Issuer.Issuer)
		},
	}
}
