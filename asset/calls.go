// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/calendar"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// TickerArgs - calls that only name an asset
type TickerArgs struct {
	Ticker primitives.Ticker
}

// CreateAssetArgs - arguments of create_asset
type CreateAssetArgs struct {
	Name      string
	Ticker    primitives.Ticker
	Divisible bool
	AssetType string
}

// AmountArgs - arguments of issue and redeem
type AmountArgs struct {
	Ticker primitives.Ticker
	Amount primitives.Balance
	Number primitives.PortfolioNumber
}

// RenameArgs - arguments of rename_asset
type RenameArgs struct {
	Ticker primitives.Ticker
	Name   string
}

// DocumentsArgs - arguments of add_documents
type DocumentsArgs struct {
	Ticker    primitives.Ticker
	Documents []Document
}

// DocumentIDsArgs - arguments of remove_documents
type DocumentIDsArgs struct {
	Ticker primitives.Ticker
	IDs    []uint32
}

// MetadataTypeArgs - arguments of the metadata type registrations
type MetadataTypeArgs struct {
	Ticker primitives.Ticker
	Name   string
	Spec   MetadataSpec
}

// MetadataArgs - arguments of set_asset_metadata and its details
type MetadataArgs struct {
	Ticker  primitives.Ticker
	Key     MetadataKey
	Value   []byte
	Details *MetadataDetails
}

// ScheduleArgs - arguments of create_schedule
type ScheduleArgs struct {
	Ticker    primitives.Ticker
	Schedule  calendar.Schedule
	Remaining uint32
}

// IDArgs - an asset and an id
type IDArgs struct {
	Ticker primitives.Ticker
	ID     uint64
}

// AgentArgs - arguments of the agent calls
type AgentArgs struct {
	Ticker primitives.Ticker
	DID    primitives.DID
	Group  primitives.AgentGroup
}

// MediatorsArgs - arguments of the mediator calls
type MediatorsArgs struct {
	Ticker    primitives.Ticker
	Mediators []primitives.DID
}

// NFTCollectionArgs - arguments of create_nft_collection
type NFTCollectionArgs struct {
	Ticker    primitives.Ticker
	AssetType string
	Keys      []MetadataKey
}

// IssueNFTArgs - arguments of issue_nft
type IssueNFTArgs struct {
	Ticker     primitives.Ticker
	Attributes []NFTAttribute
	Number     primitives.PortfolioNumber
}

// RedeemNFTArgs - arguments of redeem_nft
type RedeemNFTArgs struct {
	Ticker primitives.Ticker
	ID     uint64
	Number primitives.PortfolioNumber
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"register_ticker": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RegisterTicker(ctx, args.Ticker)
		},
		"create_asset": func(ctx *system.Context, call system.Call) error {
			var args CreateAssetArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return CreateAsset(ctx, args.Name, args.Ticker, args.Divisible, args.AssetType)
		},
		"issue": func(ctx *system.Context, call system.Call) error {
			var args AmountArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Issue(ctx, args.Ticker, args.Amount, args.Number)
		},
		"redeem": func(ctx *system.Context, call system.Call) error {
			var args AmountArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Redeem(ctx, args.Ticker, args.Amount, args.Number)
		},
		"freeze": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Freeze(ctx, args.Ticker)
		},
		"unfreeze": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Unfreeze(ctx, args.Ticker)
		},
		"rename_asset": func(ctx *system.Context, call system.Call) error {
			var args RenameArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RenameAsset(ctx, args.Ticker, args.Name)
		},
		"add_documents": func(ctx *system.Context, call system.Call) error {
			var args DocumentsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := AddDocuments(ctx, args.Ticker, args.Documents)
			return err
		},
		"remove_documents": func(ctx *system.Context, call system.Call) error {
			var args DocumentIDsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveDocuments(ctx, args.Ticker, args.IDs)
		},
		"register_asset_metadata_local_type": func(ctx *system.Context, call system.Call) error {
			var args MetadataTypeArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := RegisterAssetMetadataLocalType(ctx, args.Ticker, args.Name, args.Spec)
			return err
		},
		"register_asset_metadata_global_type": func(ctx *system.Context, call system.Call) error {
			var args MetadataTypeArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := RegisterAssetMetadataGlobalType(ctx, args.Name, args.Spec)
			return err
		},
		"set_asset_metadata": func(ctx *system.Context, call system.Call) error {
			var args MetadataArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return SetAssetMetadata(ctx, args.Ticker, args.Key, args.Value, args.Details)
		},
		"set_asset_metadata_details": func(ctx *system.Context, call system.Call) error {
			var args MetadataArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			if nil == args.Details {
				args.Details = &MetadataDetails{}
			}
			return SetAssetMetadataDetails(ctx, args.Ticker, args.Key, *args.Details)
		},
		"create_checkpoint": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateCheckpoint(ctx, args.Ticker)
			return err
		},
		"create_schedule": func(ctx *system.Context, call system.Call) error {
			var args ScheduleArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateSchedule(ctx, args.Ticker, args.Schedule, args.Remaining)
			return err
		},
		"remove_schedule": func(ctx *system.Context, call system.Call) error {
			var args IDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveSchedule(ctx, args.Ticker, args.ID)
		},
		"remove_agent": func(ctx *system.Context, call system.Call) error {
			var args AgentArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveAgent(ctx, args.Ticker, args.DID)
		},
		"abdicate": func(ctx *system.Context, call system.Call) error {
			var args TickerArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return Abdicate(ctx, args.Ticker)
		},
		"change_group": func(ctx *system.Context, call system.Call) error {
			var args AgentArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return ChangeGroup(ctx, args.Ticker, args.DID, args.Group)
		},
		"add_mandatory_mediators": func(ctx *system.Context, call system.Call) error {
			var args MediatorsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddMandatoryMediators(ctx, args.Ticker, args.Mediators)
		},
		"remove_mandatory_mediators": func(ctx *system.Context, call system.Call) error {
			var args MediatorsArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveMandatoryMediators(ctx, args.Ticker, args.Mediators)
		},
		"create_nft_collection": func(ctx *system.Context, call system.Call) error {
			var args NFTCollectionArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateNFTCollection(ctx, args.Ticker, args.AssetType, args.Keys)
			return err
		},
		"issue_nft": func(ctx *system.Context, call system.Call) error {
			var args IssueNFTArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := IssueNFT(ctx, args.Ticker, args.Attributes, args.Number)
			return err
		},
		"redeem_nft": func(ctx *system.Context, call system.Call) error {
			var args RedeemNFTArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RedeemNFT(ctx, args.Ticker, args.ID, args.Number)
		},
	}
}
