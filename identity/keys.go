// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
	"github.com/polymesh-go/polymeshd/util"
)

const didCounter = "did-nonce"

// SecondaryKey - a key to be offered a place in an identity
type SecondaryKey struct {
	Key         account.Key
	Permissions primitives.Permissions
}

// KeyWithAuthorization - a secondary key that signed its own consent
type KeyWithAuthorization struct {
	Key         account.Key
	Permissions primitives.Permissions
	Signature   account.Signature
}

// RegisterDID - the signing key registers a new identity for itself
//
// each secondary key receives a JoinIdentity offer
func RegisterDID(ctx *system.Context, secondaryKeys []SecondaryKey) (primitives.DID, error) {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return primitives.NoDID, err
	}
	return createDID(ctx, key, secondaryKeys)
}

// CddRegisterDID - a cdd provider registers an identity for a key and
// vouches for it
func CddRegisterDID(ctx *system.Context, target account.Key, secondaryKeys []SecondaryKey, expiry primitives.Moment) (primitives.DID, error) {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return primitives.NoDID, err
	}
	if !IsActiveCddProvider(caller.DID) {
		return primitives.NoDID, fault.ErrUnAuthorizedCddProvider
	}
	did, err := createDID(ctx, target, secondaryKeys)
	if nil != err {
		return primitives.NoDID, err
	}
	addClaim(ctx, did, caller.DID, primitives.CddClaim(DeriveCddID(did)), expiry)
	return did, nil
}

func createDID(ctx *system.Context, primary account.Key, secondaryKeys []SecondaryKey) (primitives.DID, error) {
	if IsLinked(primary) {
		return primitives.NoDID, fault.ErrKeyAlreadyLinked
	}
	for _, s := range secondaryKeys {
		if s.Key == primary || IsLinked(s.Key) {
			return primitives.NoDID, fault.ErrKeyAlreadyLinked
		}
	}

	did := primitives.DeriveDID(system.NextID(didCounter), primary)
	if Exists(did) {
		return primitives.NoDID, fault.ErrDidAlreadyExists
	}

	putRecord(did, &DidRecord{PrimaryKey: primary})
	linkPrimary(did, primary)
	ctx.Deposit(Pallet, "DidCreated", did, primary)

	for _, s := range secondaryKeys {
		Offer(ctx, did, primitives.AccountSignatory(s.Key), primitives.JoinIdentity(s.Permissions), 0)
	}

	globalData.log.Debugf("created identity: %s  primary key: %s", did, primary)
	return did, nil
}

// CreateDID - register an identity directly, for genesis
func CreateDID(ctx *system.Context, primary account.Key) (primitives.DID, error) {
	return createDID(ctx, primary, nil)
}

// JoinIdentityAsKey - the signing key accepts a JoinIdentity offer
func JoinIdentityAsKey(ctx *system.Context, id uint64) error {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return err
	}
	if IsLinked(key) {
		return fault.ErrKeyAlreadyLinked
	}
	a, err := TakeAuthorization(ctx, id, primitives.AuthJoinIdentity)
	if nil != err {
		return err
	}
	if a.Target.IsIdentity() {
		return fault.ErrInvalidAuthorizationKind
	}
	if !Exists(a.AuthorizedBy) {
		return fault.ErrDidDoesNotExist
	}
	linkSecondary(a.AuthorizedBy, key, a.Data.Permissions)
	ctx.Deposit(Pallet, "SecondaryKeysAdded", a.AuthorizedBy, key)
	return nil
}

// SecondaryKeyAuthorizationMessage - what a new secondary key signs
func SecondaryKeyAuthorizationMessage(did primitives.DID, nonce uint64, expiry primitives.Moment, permissions primitives.Permissions) []byte {
	p := util.Packed{}.AppendString("ADD_SECONDARY_KEY").AppendBytes(did[:]).AppendUint64(nonce).AppendUint64(uint64(expiry))
	packed, err := storage.Pack(permissions.Normalise())
	if nil == err {
		p = p.AppendBytes(packed)
	}
	return p
}

// AddSecondaryKeysWithAuthorization - link keys that signed their consent
// off-chain, each signature covers the identity nonce and the expiry
func AddSecondaryKeysWithAuthorization(ctx *system.Context, keys []KeyWithAuthorization, expiry primitives.Moment) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return err
	}
	if expiry <= ctx.Now() {
		return fault.ErrAuthorizationExpired
	}

	r, _ := Record(caller.DID)
	for _, k := range keys {
		if IsLinked(k.Key) {
			return fault.ErrKeyAlreadyLinked
		}
		message := SecondaryKeyAuthorizationMessage(caller.DID, r.OffChainNonce, expiry, k.Permissions)
		if err := k.Key.Verify(message, k.Signature); nil != err {
			return err
		}
	}

	for _, k := range keys {
		linkSecondary(caller.DID, k.Key, k.Permissions)
		ctx.Deposit(Pallet, "SecondaryKeysAdded", caller.DID, k.Key)
	}
	r.OffChainNonce += 1
	putRecord(caller.DID, r)
	return nil
}

// RemoveSecondaryKeys - unlink secondary keys of the caller identity
func RemoveSecondaryKeys(ctx *system.Context, keys []account.Key) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return err
	}
	for _, key := range keys {
		if _, ok := secondaryKey(caller.DID, key); !ok {
			return fault.ErrNotASecondaryKey
		}
	}
	for _, key := range keys {
		unlinkSecondary(caller.DID, key)
		ctx.Deposit(Pallet, "SecondaryKeysRemoved", caller.DID, key)
	}
	return nil
}

// SetPermissionToSigner - replace the permissions of a secondary key
func SetPermissionToSigner(ctx *system.Context, key account.Key, permissions primitives.Permissions) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return err
	}
	if _, ok := secondaryKey(caller.DID, key); !ok {
		return fault.ErrNotASecondaryKey
	}
	linkSecondary(caller.DID, key, permissions)
	ctx.Deposit(Pallet, "SecondaryKeyPermissionsUpdated", caller.DID, key)
	return nil
}

// FreezeSecondaryKeys - make every secondary key inert
func FreezeSecondaryKeys(ctx *system.Context) error {
	return setFrozen(ctx, true)
}

// UnfreezeSecondaryKeys - reactivate the secondary keys
func UnfreezeSecondaryKeys(ctx *system.Context) error {
	return setFrozen(ctx, false)
}

func setFrozen(ctx *system.Context, freeze bool) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return err
	}
	frozen := IsFrozen(caller.DID)
	switch {
	case freeze && frozen:
		return fault.ErrAlreadyFrozen
	case !freeze && !frozen:
		return fault.ErrNotFrozen
	case freeze:
		storage.Pool.FrozenIdentities.Put(caller.DID[:], []byte{1})
		ctx.Deposit(Pallet, "SecondaryKeysFrozen", caller.DID)
	default:
		storage.Pool.FrozenIdentities.Delete(caller.DID[:])
		ctx.Deposit(Pallet, "SecondaryKeysUnfrozen", caller.DID)
	}
	return nil
}

// LeaveIdentityAsKey - a secondary key unlinks itself
func LeaveIdentityAsKey(ctx *system.Context) error {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return err
	}
	r, ok := LookupKey(key)
	if !ok || SecondaryKeyKind != r.Kind {
		return fault.ErrNotASecondaryKey
	}
	unlinkSecondary(r.DID, key)
	ctx.Deposit(Pallet, "SecondaryKeyLeftIdentity", r.DID, key)
	return nil
}

// RotatePrimaryKey - the signing key accepts the primary key role
//
// an optional attestation from an active cdd provider must vouch for the
// same identity
func RotatePrimaryKey(ctx *system.Context, rotationAuthID uint64, attestationAuthID uint64) error {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return err
	}
	if IsLinked(key) {
		return fault.ErrKeyAlreadyLinked
	}

	a, err := TakeAuthorization(ctx, rotationAuthID, primitives.AuthRotatePrimaryKey)
	if nil != err {
		return err
	}
	did := a.AuthorizedBy

	if 0 != attestationAuthID {
		attestation, err := TakeAuthorization(ctx, attestationAuthID, primitives.AuthAttestPrimaryKeyRotation)
		if nil != err {
			return err
		}
		if !IsActiveCddProvider(attestation.AuthorizedBy) {
			return fault.ErrNotACddProvider
		}
		if attestation.Data.DID != did {
			return fault.ErrInvalidAuthorizationFromOwner
		}
	}
	return ReplacePrimaryKey(ctx, did, key)
}

func acceptRotation(ctx *system.Context, id uint64) error {
	return RotatePrimaryKey(ctx, id, 0)
}

// ReplacePrimaryKey - unlink the old primary key and link a new one
func ReplacePrimaryKey(ctx *system.Context, did primitives.DID, key account.Key) error {
	r, ok := Record(did)
	if !ok {
		return fault.ErrDidDoesNotExist
	}
	if IsLinked(key) {
		return fault.ErrKeyAlreadyLinked
	}
	old := r.PrimaryKey
	storage.Pool.KeyRecords.Delete(old[:])
	linkPrimary(did, key)
	r.PrimaryKey = key
	putRecord(did, r)
	ctx.Deposit(Pallet, "PrimaryKeyUpdated", did, old, key)
	return nil
}

// AddSecondaryKey - link a key without an offer, for modules that own the key
func AddSecondaryKey(ctx *system.Context, did primitives.DID, key account.Key, permissions primitives.Permissions) error {
	if !Exists(did) {
		return fault.ErrDidDoesNotExist
	}
	if IsLinked(key) {
		return fault.ErrKeyAlreadyLinked
	}
	linkSecondary(did, key, permissions)
	ctx.Deposit(Pallet, "SecondaryKeysAdded", did, key)
	return nil
}

// CreateChildIdentity - turn a secondary key into the primary key of a
// new identity whose parent is the caller
func CreateChildIdentity(ctx *system.Context, key account.Key) (primitives.DID, error) {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return primitives.NoDID, err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return primitives.NoDID, err
	}
	parent, _ := Record(caller.DID)
	if !parent.Parent.IsZero() {
		return primitives.NoDID, fault.ErrIsChildIdentity
	}
	if _, ok := secondaryKey(caller.DID, key); !ok {
		return primitives.NoDID, fault.ErrNotASecondaryKey
	}

	unlinkSecondary(caller.DID, key)
	child := primitives.DeriveDID(system.NextID(didCounter), key)
	if Exists(child) {
		return primitives.NoDID, fault.ErrDidAlreadyExists
	}
	putRecord(child, &DidRecord{PrimaryKey: key, Parent: caller.DID})
	linkPrimary(child, key)
	storage.Pool.ChildIdentities.Put(primitives.Key(caller.DID[:], child[:]), []byte{1})

	ctx.Deposit(Pallet, "ChildDidCreated", caller.DID, child, key)
	return child, nil
}
