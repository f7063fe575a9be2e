// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
)

// KeyKind - the role of a linked key
type KeyKind uint8

// key kinds
const (
	PrimaryKeyKind KeyKind = iota + 1
	SecondaryKeyKind
	MultisigSignerKeyKind
)

// KeyRecord - what a key is linked to
type KeyRecord struct {
	Kind     KeyKind
	DID      primitives.DID
	Multisig account.Key
}

// DidRecord - the stored identity
type DidRecord struct {
	PrimaryKey    account.Key
	Parent        primitives.DID
	OffChainNonce uint64
}

// SecondaryKeyRecord - a secondary key with its permissions
type SecondaryKeyRecord struct {
	Key         account.Key
	Permissions primitives.Permissions
}

// Exists - true if the identity is registered
func Exists(did primitives.DID) bool {
	return storage.Pool.Identities.Has(did[:])
}

// Record - fetch an identity
func Record(did primitives.DID) (*DidRecord, bool) {
	var r DidRecord
	if !storage.Pool.Identities.GetRecord(did[:], &r) {
		return nil, false
	}
	return &r, true
}

func putRecord(did primitives.DID, r *DidRecord) {
	storage.Pool.Identities.PutRecord(did[:], r)
}

// LookupKey - the link of a key, false if the key is free
func LookupKey(key account.Key) (*KeyRecord, bool) {
	var r KeyRecord
	if !storage.Pool.KeyRecords.GetRecord(key[:], &r) {
		return nil, false
	}
	return &r, true
}

// KeyIdentity - the identity a primary or secondary key belongs to
func KeyIdentity(key account.Key) (primitives.DID, bool) {
	r, ok := LookupKey(key)
	if !ok || MultisigSignerKeyKind == r.Kind {
		return primitives.NoDID, false
	}
	return r.DID, true
}

// IsLinked - true if the key is in use as any kind of key
func IsLinked(key account.Key) bool {
	return storage.Pool.KeyRecords.Has(key[:])
}

// PrimaryKeyOf - the primary key of an identity
func PrimaryKeyOf(did primitives.DID) (account.Key, bool) {
	r, ok := Record(did)
	if !ok {
		return account.Zero, false
	}
	return r.PrimaryKey, true
}

// SecondaryKeys - all secondary keys of an identity in key order
func SecondaryKeys(did primitives.DID) []SecondaryKeyRecord {
	elements := storage.Pool.SecondaryKeys.Elements(did[:])
	keys := make([]SecondaryKeyRecord, 0, len(elements))
	for _, e := range elements {
		var r SecondaryKeyRecord
		if nil == storage.Unpack(e.Value, &r) {
			keys = append(keys, r)
		}
	}
	return keys
}

// Children - child identities of a parent in key order
func Children(parent primitives.DID) []primitives.DID {
	elements := storage.Pool.ChildIdentities.Elements(parent[:])
	children := make([]primitives.DID, 0, len(elements))
	for _, e := range elements {
		child, err := primitives.DIDFromBytes(e.Key[primitives.DIDSize:])
		if nil == err {
			children = append(children, child)
		}
	}
	return children
}

// IsFrozen - true if the secondary keys of the identity are frozen
func IsFrozen(did primitives.DID) bool {
	return storage.Pool.FrozenIdentities.Has(did[:])
}

func secondaryKey(did primitives.DID, key account.Key) (*SecondaryKeyRecord, bool) {
	var r SecondaryKeyRecord
	if !storage.Pool.SecondaryKeys.GetRecord(primitives.Key(did[:], key[:]), &r) {
		return nil, false
	}
	return &r, true
}

func linkPrimary(did primitives.DID, key account.Key) {
	storage.Pool.KeyRecords.PutRecord(key[:], &KeyRecord{Kind: PrimaryKeyKind, DID: did})
}

func linkSecondary(did primitives.DID, key account.Key, permissions primitives.Permissions) {
	storage.Pool.KeyRecords.PutRecord(key[:], &KeyRecord{Kind: SecondaryKeyKind, DID: did})
	storage.Pool.SecondaryKeys.PutRecord(primitives.Key(did[:], key[:]), &SecondaryKeyRecord{
		Key:         key,
		Permissions: permissions.Normalise(),
	})
}

func unlinkSecondary(did primitives.DID, key account.Key) {
	storage.Pool.KeyRecords.Delete(key[:])
	storage.Pool.SecondaryKeys.Delete(primitives.Key(did[:], key[:]))
}

// LinkMultisigSigner - reserve a key as signer of a multisig
func LinkMultisigSigner(key account.Key, multisig account.Key) {
	storage.Pool.KeyRecords.PutRecord(key[:], &KeyRecord{Kind: MultisigSignerKeyKind, Multisig: multisig})
}

// UnlinkMultisigSigner - release a multisig signer key
func UnlinkMultisigSigner(key account.Key, multisig account.Key) {
	r, ok := LookupKey(key)
	if ok && MultisigSignerKeyKind == r.Kind && r.Multisig == multisig {
		storage.Pool.KeyRecords.Delete(key[:])
	}
}
