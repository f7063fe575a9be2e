// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const globalMetadataCounter = "global-metadata"

// MetadataSpec - description of a metadata key
type MetadataSpec struct {
	URL         string
	Description string
	TypeDef     []byte
}

// MetadataKey - a local key of one asset or a global key
type MetadataKey struct {
	Global bool
	ID     uint64
}

func (k MetadataKey) bytes() []byte {
	kind := byte('L')
	if k.Global {
		kind = 'G'
	}
	return primitives.Key([]byte{kind}, primitives.Uint64Bytes(k.ID))
}

// LockStatus - whether a metadata value may be changed
type LockStatus uint8

// lock states
const (
	Unlocked LockStatus = iota
	Locked
	LockedUntil
)

// MetadataDetails - expiry and lock of a metadata value
type MetadataDetails struct {
	Expire      primitives.Moment
	Lock        LockStatus
	LockedUntil primitives.Moment
}

func (d *MetadataDetails) locked(now primitives.Moment) bool {
	switch d.Lock {
	case Locked:
		return true
	case LockedUntil:
		return d.LockedUntil > now
	}
	return false
}

func localCounter(ticker primitives.Ticker) string {
	return "metadata:" + string(ticker[:])
}

// metadata names are unique across local and global keys
func ensureMetadataName(ticker *primitives.Ticker, name string) error {
	if 0 == len(name) || len(name) > maximumMetadataNameLength {
		return fault.ErrAssetMetadataNameTooLong
	}
	if storage.Pool.GlobalMetadataNames.Has([]byte(name)) {
		return fault.ErrAssetMetadataGlobalKeyAlreadyExists
	}
	if nil != ticker && storage.Pool.LocalMetadataNames.Has(primitives.Key(ticker[:], []byte(name))) {
		return fault.ErrAssetMetadataLocalKeyAlreadyExists
	}
	return nil
}

// RegisterAssetMetadataLocalType - define a metadata key of one asset
func RegisterAssetMetadataLocalType(ctx *system.Context, ticker primitives.Ticker, name string, spec MetadataSpec) (MetadataKey, error) {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return MetadataKey{}, err
	}
	if _, err := ensureToken(ticker); nil != err {
		return MetadataKey{}, err
	}
	if err := ensureMetadataName(&ticker, name); nil != err {
		return MetadataKey{}, err
	}
	key := MetadataKey{ID: system.NextID(localCounter(ticker))}
	storage.Pool.LocalMetadataKeys.PutRecord(primitives.Key(ticker[:], primitives.Uint64Bytes(key.ID)), &spec)
	storage.Pool.LocalMetadataNames.PutN(primitives.Key(ticker[:], []byte(name)), key.ID)
	ctx.Deposit(Pallet, "RegisterAssetMetadataLocalType", ticker, name, key.ID)
	return key, nil
}

// RegisterAssetMetadataGlobalType - root defines a key shared by all assets
func RegisterAssetMetadataGlobalType(ctx *system.Context, name string, spec MetadataSpec) (MetadataKey, error) {
	if err := system.EnsureRoot(ctx); nil != err {
		return MetadataKey{}, err
	}
	if err := ensureMetadataName(nil, name); nil != err {
		return MetadataKey{}, err
	}
	key := MetadataKey{Global: true, ID: system.NextID(globalMetadataCounter)}
	storage.Pool.GlobalMetadataKeys.PutRecord(primitives.Uint64Bytes(key.ID), &spec)
	storage.Pool.GlobalMetadataNames.PutN([]byte(name), key.ID)
	ctx.Deposit(Pallet, "RegisterAssetMetadataGlobalType", name, key.ID)
	return key, nil
}

// MetadataKeyByName - look up a local then a global key
func MetadataKeyByName(ticker primitives.Ticker, name string) (MetadataKey, bool) {
	if id, ok := storage.Pool.LocalMetadataNames.GetN(primitives.Key(ticker[:], []byte(name))); ok {
		return MetadataKey{ID: id}, true
	}
	if id, ok := storage.Pool.GlobalMetadataNames.GetN([]byte(name)); ok {
		return MetadataKey{Global: true, ID: id}, true
	}
	return MetadataKey{}, false
}

func metadataKeyExists(ticker primitives.Ticker, key MetadataKey) bool {
	if key.Global {
		return storage.Pool.GlobalMetadataKeys.Has(primitives.Uint64Bytes(key.ID))
	}
	return storage.Pool.LocalMetadataKeys.Has(primitives.Key(ticker[:], primitives.Uint64Bytes(key.ID)))
}

func valueKey(ticker primitives.Ticker, key MetadataKey) []byte {
	return primitives.Key(ticker[:], key.bytes())
}

// MetadataValue - the value of a key and its details
func MetadataValue(ticker primitives.Ticker, key MetadataKey) ([]byte, *MetadataDetails, bool) {
	value := storage.Pool.MetadataValues.Get(valueKey(ticker, key))
	if nil == value {
		return nil, nil, false
	}
	var d MetadataDetails
	storage.Pool.MetadataDetails.GetRecord(valueKey(ticker, key), &d)
	return value, &d, true
}

func ensureUnlocked(ctx *system.Context, ticker primitives.Ticker, key MetadataKey) error {
	if !metadataKeyExists(ticker, key) {
		return fault.ErrAssetMetadataKeyIsMissing
	}
	var d MetadataDetails
	if storage.Pool.MetadataDetails.GetRecord(valueKey(ticker, key), &d) && d.locked(ctx.Now()) {
		return fault.ErrAssetMetadataValueIsLocked
	}
	return nil
}

// SetAssetMetadata - set a value with optional details
func SetAssetMetadata(ctx *system.Context, ticker primitives.Ticker, key MetadataKey, value []byte, details *MetadataDetails) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	if err := ensureUnlocked(ctx, ticker, key); nil != err {
		return err
	}
	if len(value) > maximumMetadataValueLength {
		return fault.ErrAssetMetadataValueTooLong
	}
	storage.Pool.MetadataValues.Put(valueKey(ticker, key), value)
	if nil != details {
		storage.Pool.MetadataDetails.PutRecord(valueKey(ticker, key), details)
	}
	ctx.Deposit(Pallet, "SetAssetMetadataValue", ticker, key.Global, key.ID)
	return nil
}

// SetAssetMetadataDetails - change the expiry and lock of a value
func SetAssetMetadataDetails(ctx *system.Context, ticker primitives.Ticker, key MetadataKey, details MetadataDetails) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	if err := ensureUnlocked(ctx, ticker, key); nil != err {
		return err
	}
	storage.Pool.MetadataDetails.PutRecord(valueKey(ticker, key), &details)
	ctx.Deposit(Pallet, "SetAssetMetadataValueDetails", ticker, key.Global, key.ID, details.Lock)
	return nil
}
