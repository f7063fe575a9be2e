// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement

import (
	"bytes"
	"sort"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const venueCounter = "venue"

// VenueType - what a venue is used for
type VenueType uint8

// venue types
const (
	VenueOther VenueType = iota
	VenueDistribution
	VenueSto
	VenueExchange
)

var venueTypeNames = map[VenueType]string{
	VenueOther:        "Other",
	VenueDistribution: "Distribution",
	VenueSto:          "Sto",
	VenueExchange:     "Exchange",
}

func (v VenueType) String() string {
	if s, ok := venueTypeNames[v]; ok {
		return s
	}
	return "Unknown"
}

// Venue - a context for creating instructions
type Venue struct {
	ID      uint64
	Creator primitives.DID
	Details string
	Type    VenueType
	Signers []account.Key
}

// IsSigner - true if the key may add instructions and sign receipts
func (v *Venue) IsSigner(key account.Key) bool {
	i := sort.Search(len(v.Signers), func(i int) bool {
		return bytes.Compare(v.Signers[i][:], key[:]) >= 0
	})
	return i < len(v.Signers) && v.Signers[i] == key
}

func sortKeys(keys []account.Key) []account.Key {
	sorted := append([]account.Key(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	unique := sorted[:0]
	for i, k := range sorted {
		if 0 == i || k != sorted[i-1] {
			unique = append(unique, k)
		}
	}
	return unique
}

// GetVenue - fetch a venue
func GetVenue(id uint64) (*Venue, error) {
	var v Venue
	if !storage.Pool.Venues.GetRecord(primitives.Uint64Bytes(id), &v) {
		return nil, fault.ErrInvalidVenue
	}
	return &v, nil
}

func putVenue(v *Venue) {
	storage.Pool.Venues.PutRecord(primitives.Uint64Bytes(v.ID), v)
}

// UserVenues - venues created by an identity
func UserVenues(did primitives.DID) []uint64 {
	elements := storage.Pool.UserVenues.Elements(did[:])
	ids := make([]uint64, 0, len(elements))
	for _, e := range elements {
		var id uint64
		for _, c := range e.Key[primitives.DIDSize:] {
			id = id<<8 | uint64(c)
		}
		ids = append(ids, id)
	}
	return ids
}

// CreateVenue - a new venue owned by the caller identity
func CreateVenue(ctx *system.Context, details string, signers []account.Key, venueType VenueType) (uint64, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	if len(details) > maximumVenueDetailsLength {
		return 0, fault.ErrVenueDetailsTooLong
	}

	v := Venue{
		ID:      system.NextID(venueCounter),
		Creator: caller.DID,
		Details: details,
		Type:    venueType,
		Signers: sortKeys(signers),
	}
	putVenue(&v)
	storage.Pool.UserVenues.Put(primitives.Key(caller.DID[:], primitives.Uint64Bytes(v.ID)), []byte{1})

	ctx.Deposit(Pallet, "VenueCreated", caller.DID, v.ID, details, venueType)
	return v.ID, nil
}

// the caller identity created the venue
func ensureCreator(ctx *system.Context, id uint64) (*Venue, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return nil, err
	}
	v, err := GetVenue(id)
	if nil != err {
		return nil, err
	}
	if v.Creator != caller.DID {
		return nil, fault.ErrUnauthorized
	}
	return v, nil
}

// UpdateVenueDetails - change the description of a venue
func UpdateVenueDetails(ctx *system.Context, id uint64, details string) error {
	v, err := ensureCreator(ctx, id)
	if nil != err {
		return err
	}
	if len(details) > maximumVenueDetailsLength {
		return fault.ErrVenueDetailsTooLong
	}
	v.Details = details
	putVenue(v)
	ctx.Deposit(Pallet, "VenueDetailsUpdated", v.Creator, id, details)
	return nil
}

// UpdateVenueType - change the type of a venue
func UpdateVenueType(ctx *system.Context, id uint64, venueType VenueType) error {
	v, err := ensureCreator(ctx, id)
	if nil != err {
		return err
	}
	v.Type = venueType
	putVenue(v)
	ctx.Deposit(Pallet, "VenueTypeUpdated", v.Creator, id, venueType)
	return nil
}

// UpdateVenueSigners - add or remove signers
func UpdateVenueSigners(ctx *system.Context, id uint64, signers []account.Key, add bool) error {
	v, err := ensureCreator(ctx, id)
	if nil != err {
		return err
	}
	for _, key := range signers {
		present := v.IsSigner(key)
		if add && present {
			return fault.ErrAlreadyASigner
		}
		if !add && !present {
			return fault.ErrNotAVenueSigner
		}
	}
	if add {
		v.Signers = sortKeys(append(v.Signers, signers...))
	} else {
		remaining := make([]account.Key, 0, len(v.Signers))
		for _, k := range v.Signers {
			keep := true
			for _, r := range signers {
				if r == k {
					keep = false
					break
				}
			}
			if keep {
				remaining = append(remaining, k)
			}
		}
		v.Signers = remaining
	}
	putVenue(v)
	ctx.Deposit(Pallet, "VenueSignersUpdated", v.Creator, id, len(signers), add)
	return nil
}

// VenueFiltering - true if only allowed venues may trade the asset
func VenueFiltering(ticker primitives.Ticker) bool {
	return storage.Pool.VenueFiltering.Has(ticker[:])
}

// VenueAllowed - true if the venue may trade the asset
func VenueAllowed(ticker primitives.Ticker, venue uint64) bool {
	if !VenueFiltering(ticker) {
		return true
	}
	return storage.Pool.VenueAllowList.Has(primitives.Key(ticker[:], primitives.Uint64Bytes(venue)))
}

func ensureAssetAgent(ctx *system.Context, ticker primitives.Ticker) (*identity.Caller, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return nil, err
	}
	if !assets().Exists(ticker) {
		return nil, fault.ErrNoSuchAsset
	}
	if !assets().IsAgent(ticker, caller.DID) {
		return nil, fault.ErrUnauthorizedAgent
	}
	return caller, nil
}

// SetVenueFiltering - enable or disable the allow list of an asset
func SetVenueFiltering(ctx *system.Context, ticker primitives.Ticker, enabled bool) error {
	caller, err := ensureAssetAgent(ctx, ticker)
	if nil != err {
		return err
	}
	if enabled {
		storage.Pool.VenueFiltering.Put(ticker[:], []byte{1})
	} else {
		storage.Pool.VenueFiltering.Delete(ticker[:])
	}
	ctx.Deposit(Pallet, "VenueFiltering", caller.DID, ticker, enabled)
	return nil
}

// AllowVenues - add venues to the allow list of an asset
func AllowVenues(ctx *system.Context, ticker primitives.Ticker, venues []uint64) error {
	caller, err := ensureAssetAgent(ctx, ticker)
	if nil != err {
		return err
	}
	for _, id := range venues {
		storage.Pool.VenueAllowList.Put(primitives.Key(ticker[:], primitives.Uint64Bytes(id)), []byte{1})
	}
	ctx.Deposit(Pallet, "VenuesAllowed", caller.DID, ticker, venues)
	return nil
}

// DisallowVenues - remove venues from the allow list of an asset
func DisallowVenues(ctx *system.Context, ticker primitives.Ticker, venues []uint64) error {
	caller, err := ensureAssetAgent(ctx, ticker)
	if nil != err {
		return err
	}
	for _, id := range venues {
		storage.Pool.VenueAllowList.Delete(primitives.Key(ticker[:], primitives.Uint64Bytes(id)))
	}
	ctx.Deposit(Pallet, "VenuesBlocked", caller.DID, ticker, venues)
	return nil
}
