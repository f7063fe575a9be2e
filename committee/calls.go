// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package committee

import (
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// VoteOrProposeArgs - arguments of vote_or_propose
type VoteOrProposeArgs struct {
	Committee string
	Approve   bool
	Call      system.Call
}

// VoteArgs - arguments of vote
type VoteArgs struct {
	Committee string
	Hash      [32]byte
	Index     uint32
	Approve   bool
}

// ThresholdArgs - arguments of set_vote_threshold
type ThresholdArgs struct {
	Committee string
	Threshold Threshold
}

// MembersArgs - arguments of set_members
type MembersArgs struct {
	Committee string
	Members   []primitives.DID
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"vote_or_propose": func(ctx *system.Context, call system.Call) error {
			var args VoteOrProposeArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return VoteOrPropose(ctx, args.Committee, args.Approve, args.Call)
		},
		"vote": func(ctx *system.Context, call system.Call) error {
			var args VoteArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Vote(ctx, args.Committee, args.Hash, args.Index, args.Approve)
		},
		"set_vote_threshold": func(ctx *system.Context, call system.Call) error {
			var args ThresholdArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return SetVoteThreshold(ctx, args.Committee, args.Threshold)
		},
		"set_members": func(ctx *system.Context, call system.Call) error {
			var args MembersArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return SetMembers(ctx, args.Committee, args.Members)
		},
	}
}
