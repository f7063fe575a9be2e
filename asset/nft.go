// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// NFTCollection - the metadata keys every token of a collection carries
type NFTCollection struct {
	ID   uint64
	Keys []MetadataKey
}

// NFTAttribute - one metadata value of a token
type NFTAttribute struct {
	Key   MetadataKey
	Value []byte
}

// NFT - a minted token
type NFT struct {
	ID         uint64
	Attributes []NFTAttribute
}

const collectionCounter = "nft-collection"

func nftCounter(ticker primitives.Ticker) string {
	return "nft:" + string(ticker[:])
}

// Collection - fetch the collection of an asset
func Collection(ticker primitives.Ticker) (*NFTCollection, bool) {
	var c NFTCollection
	if !storage.Pool.NFTCollections.GetRecord(ticker[:], &c) {
		return nil, false
	}
	return &c, true
}

// CreateNFTCollection - create a non-fungible asset and its collection
//
// the asset is created for the caller if it does not exist yet
func CreateNFTCollection(ctx *system.Context, ticker primitives.Ticker, assetType string, keys []MetadataKey) (uint64, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	if _, ok := Collection(ticker); ok {
		return 0, fault.ErrNFTCollectionAlreadyExists
	}

	if t, ok := Token(ticker); ok {
		if !t.NonFungible {
			return 0, fault.ErrUnexpectedFungibleToken
		}
		if _, err := ensureAgent(ctx, ticker, false); nil != err {
			return 0, err
		}
	} else {
		if err := createAsset(ctx, caller.DID, ticker.String(), ticker, false, assetType, true); nil != err {
			return 0, err
		}
	}

	for _, k := range keys {
		if !metadataKeyExists(ticker, k) {
			return 0, fault.ErrAssetMetadataKeyIsMissing
		}
	}

	c := NFTCollection{
		ID:   system.NextID(collectionCounter),
		Keys: keys,
	}
	storage.Pool.NFTCollections.PutRecord(ticker[:], &c)
	ctx.Deposit(Pallet, "NftCollectionCreated", caller.DID, ticker, c.ID)
	return c.ID, nil
}

// GetNFT - fetch a minted token
func GetNFT(ticker primitives.Ticker, id uint64) (*NFT, bool) {
	var n NFT
	if !storage.Pool.NFTs.GetRecord(checkpointKey(ticker, id), &n) {
		return nil, false
	}
	return &n, true
}

// IssueNFT - mint one token into a portfolio of the calling agent
//
// every collection key must be given a value and no other keys
func IssueNFT(ctx *system.Context, ticker primitives.Ticker, attributes []NFTAttribute, number primitives.PortfolioNumber) (uint64, error) {
	caller, err := ensureAgent(ctx, ticker, false)
	if nil != err {
		return 0, err
	}
	c, ok := Collection(ticker)
	if !ok {
		return 0, fault.ErrNFTCollectionNotFound
	}
	if len(attributes) != len(c.Keys) {
		return 0, fault.ErrAssetMetadataKeyIsMissing
	}
	for _, k := range c.Keys {
		found := false
		for _, a := range attributes {
			if a.Key == k {
				found = true
				break
			}
		}
		if !found {
			return 0, fault.ErrAssetMetadataKeyIsMissing
		}
	}
	for _, a := range attributes {
		if len(a.Value) > maximumMetadataValueLength {
			return 0, fault.ErrAssetMetadataValueTooLong
		}
	}

	t, err := ensureToken(ticker)
	if nil != err {
		return 0, err
	}
	if t.TotalSupply+1 > config().MaxTotalSupply {
		return 0, fault.ErrTotalSupplyAboveLimit
	}
	to := primitives.UserPortfolio(caller.DID, number)
	if err := portfolio.EnsureExists(to); nil != err {
		return 0, err
	}
	if err := caller.EnsurePortfolio(to); nil != err {
		return 0, err
	}

	n := NFT{
		ID:         system.NextID(nftCounter(ticker)),
		Attributes: attributes,
	}
	storage.Pool.NFTs.PutRecord(checkpointKey(ticker, n.ID), &n)
	portfolio.AddNFT(to, ticker, n.ID)
	setBalance(ticker, caller.DID, BalanceOf(ticker, caller.DID)+1)
	t.TotalSupply += 1
	putToken(ticker, t)

	ctx.Deposit(Pallet, "NFTIssued", ticker, n.ID, to)
	return n.ID, nil
}

// RedeemNFT - burn an unlocked token held by a portfolio of the calling agent
func RedeemNFT(ctx *system.Context, ticker primitives.Ticker, id uint64, number primitives.PortfolioNumber) error {
	caller, err := ensureAgent(ctx, ticker, false)
	if nil != err {
		return err
	}
	t, err := ensureToken(ticker)
	if nil != err {
		return err
	}
	if _, ok := GetNFT(ticker, id); !ok {
		return fault.ErrNFTNotFound
	}
	from := primitives.UserPortfolio(caller.DID, number)
	if err := caller.EnsurePortfolio(from); nil != err {
		return err
	}
	if err := portfolio.RemoveNFT(from, ticker, id); nil != err {
		return err
	}

	storage.Pool.NFTs.Delete(checkpointKey(ticker, id))
	setBalance(ticker, caller.DID, BalanceOf(ticker, caller.DID)-1)
	t.TotalSupply -= 1
	putToken(ticker, t)

	ctx.Deposit(Pallet, "NFTRedeemed", ticker, id, from)
	return nil
}
