// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// CreateArgs - arguments of create_multisig
type CreateArgs struct {
	Signers      []account.Key
	SigsRequired uint64
}

// AuthorizationIDArgs - arguments of accept_multisig_signer
type AuthorizationIDArgs struct {
	ID uint64
}

// ProposalArgs - arguments of create_proposal
type ProposalArgs struct {
	Multisig account.Key
	Call     system.Call
	Expiry   primitives.Moment
}

// VoteArgs - arguments of approve and reject
type VoteArgs struct {
	Multisig account.Key
	ID       uint64
}

// SignersArgs - arguments of add_multisig_signers and remove_multisig_signers
type SignersArgs struct {
	Signers []account.Key
}

// SigsRequiredArgs - arguments of change_sigs_required
type SigsRequiredArgs struct {
	SigsRequired uint64
}

// MultisigArgs - arguments of make_multisig_primary and make_multisig_secondary
type MultisigArgs struct {
	Multisig account.Key
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"create_multisig": func(ctx *system.Context, call system.Call) error {
			var args CreateArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateMultisig(ctx, args.Signers, args.SigsRequired)
			return err
		},
		"accept_multisig_signer": func(ctx *system.Context, call system.Call) error {
			var args AuthorizationIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AcceptMultisigSigner(ctx, args.ID)
		},
		"create_proposal": func(ctx *system.Context, call system.Call) error {
			var args ProposalArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateProposal(ctx, args.Multisig, args.Call, args.Expiry)
			return err
		},
		"approve": func(ctx *system.Context, call system.Call) error {
			var args VoteArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Approve(ctx, args.Multisig, args.ID)
		},
		"reject": func(ctx *system.Context, call system.Call) error {
			var args VoteArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Reject(ctx, args.Multisig, args.ID)
		},
		"change_sigs_required": func(ctx *system.Context, call system.Call) error {
			var args SigsRequiredArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ChangeSigsRequired(ctx, args.SigsRequired)
		},
		"add_multisig_signers": func(ctx *system.Context, call system.Call) error {
			var args SignersArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddMultisigSigners(ctx, args.Signers)
		},
		"remove_multisig_signers": func(ctx *system.Context, call system.Call) error {
			var args SignersArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveMultisigSigners(ctx, args.Signers)
		},
		"make_multisig_primary": func(ctx *system.Context, call system.Call) error {
			var args MultisigArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return MakeMultisigPrimary(ctx, args.Multisig)
		},
		"make_multisig_secondary": func(ctx *system.Context, call system.Call) error {
			var args MultisigArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return MakeMultisigSecondary(ctx, args.Multisig)
		},
	}
}
