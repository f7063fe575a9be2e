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
)

const authorizationCounter = "authorization"

// Authorization - a one-shot capability offered to a target
type Authorization struct {
	ID           uint64
	AuthorizedBy primitives.DID
	Target       primitives.Signatory
	Data         primitives.AuthorizationData
	Expiry       primitives.Moment
}

// Expired - true if the offer can no longer be accepted
func (a *Authorization) Expired(now primitives.Moment) bool {
	return 0 != a.Expiry && a.Expiry <= now
}

func authorizationKey(target primitives.Signatory, id uint64) []byte {
	return primitives.Key(target.Bytes(), primitives.Uint64Bytes(id))
}

// GetAuthorization - fetch an offer by target and id
func GetAuthorization(target primitives.Signatory, id uint64) (*Authorization, bool) {
	var a Authorization
	if !storage.Pool.Authorizations.GetRecord(authorizationKey(target, id), &a) {
		return nil, false
	}
	return &a, true
}

// Authorizations - all offers to a target in id order
func Authorizations(target primitives.Signatory) []Authorization {
	elements := storage.Pool.Authorizations.Elements(target.Bytes())
	auths := make([]Authorization, 0, len(elements))
	for _, e := range elements {
		var a Authorization
		if nil == storage.Unpack(e.Value, &a) {
			auths = append(auths, a)
		}
	}
	return auths
}

// AddAuthorization - offer data to a target from the caller identity
func AddAuthorization(ctx *system.Context, target primitives.Signatory, data primitives.AuthorizationData, expiry primitives.Moment) (uint64, error) {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	if 0 != expiry && expiry <= ctx.Now() {
		return 0, fault.ErrAuthorizationExpired
	}
	if target.IsIdentity() && !Exists(target.DID) {
		return 0, fault.ErrDidDoesNotExist
	}
	return Offer(ctx, caller.DID, target, data, expiry), nil
}

// Offer - store an authorization on behalf of an identity
//
// used by modules that generate offers as a side effect
func Offer(ctx *system.Context, from primitives.DID, target primitives.Signatory, data primitives.AuthorizationData, expiry primitives.Moment) uint64 {
	id := system.NextID(authorizationCounter)
	a := &Authorization{
		ID:           id,
		AuthorizedBy: from,
		Target:       target,
		Data:         data,
		Expiry:       expiry,
	}
	storage.Pool.Authorizations.PutRecord(authorizationKey(target, id), a)
	storage.Pool.AuthorizationsGiven.Put(primitives.Key(from[:], primitives.Uint64Bytes(id)), target.Bytes())

	ctx.Deposit(Pallet, "AuthorizationAdded", from, target, id, data.Kind, expiry)
	return id
}

// RemoveAuthorization - revoke by the issuer or reject by the target
func RemoveAuthorization(ctx *system.Context, target primitives.Signatory, id uint64) error {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return err
	}
	a, ok := GetAuthorization(target, id)
	if !ok {
		return fault.ErrAuthorizationNotFound
	}

	byTarget := !target.IsIdentity() && target.Key == key
	byIssuer := false
	if did, ok := KeyIdentity(key); ok {
		caller, err := resolve(ctx, key)
		if nil != err {
			return err
		}
		byIssuer = caller.DID == a.AuthorizedBy
		byTarget = byTarget || (target.IsIdentity() && target.DID == did)
	}

	if !byIssuer && !byTarget {
		return fault.ErrUnauthorized
	}

	deleteAuthorization(a)
	if byIssuer {
		storage.Pool.RevokedAuthorizations.Put(primitives.Uint64Bytes(id), []byte{1})
		ctx.Deposit(Pallet, "AuthorizationRevoked", target, id)
	} else {
		ctx.Deposit(Pallet, "AuthorizationRejected", target, id)
	}
	return nil
}

func deleteAuthorization(a *Authorization) {
	storage.Pool.Authorizations.Delete(authorizationKey(a.Target, a.ID))
	storage.Pool.AuthorizationsGiven.Delete(primitives.Key(a.AuthorizedBy[:], primitives.Uint64Bytes(a.ID)))
}

// find an offer addressed to the signing key or to its identity
func findForCaller(ctx *system.Context, id uint64) (*Authorization, error) {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return nil, err
	}

	if r, ok := LookupKey(key); ok && SecondaryKeyKind == r.Kind && IsFrozen(r.DID) {
		return nil, fault.ErrPermissionDenied
	}

	if a, ok := GetAuthorization(primitives.AccountSignatory(key), id); ok {
		return a, nil
	}

	if _, ok := KeyIdentity(key); ok {
		caller, err := resolve(ctx, key)
		if nil != err {
			return nil, err
		}
		if a, ok := GetAuthorization(caller.Signatory(), id); ok {
			return a, nil
		}
	}

	if storage.Pool.RevokedAuthorizations.Has(primitives.Uint64Bytes(id)) {
		return nil, fault.ErrAuthorizationHasBeenRevoked
	}
	return nil, fault.ErrAuthorizationNotFound
}

// TakeAuthorization - consume an offer of the given kind made to the caller
func TakeAuthorization(ctx *system.Context, id uint64, kind primitives.AuthorizationKind) (*Authorization, error) {
	a, err := findForCaller(ctx, id)
	if nil != err {
		return nil, err
	}
	if kind != a.Data.Kind {
		return nil, fault.ErrInvalidAuthorizationKind
	}
	if a.Expired(ctx.Now()) {
		return nil, fault.ErrAuthorizationExpired
	}
	deleteAuthorization(a)
	ctx.Deposit(Pallet, "AuthorizationConsumed", a.Target, id)
	return a, nil
}

// AcceptAuthorization - accept any kind of offer
func AcceptAuthorization(ctx *system.Context, id uint64) error {
	a, err := findForCaller(ctx, id)
	if nil != err {
		return err
	}
	handler, ok := handlerFor(a.Data.Kind)
	if !ok {
		return fault.ErrInvalidAuthorizationKind
	}
	return handler(ctx, id)
}

// AcceptPayingKey - a user key accepts a relayer paying for its calls
func AcceptPayingKey(ctx *system.Context, id uint64) error {
	a, err := TakeAuthorization(ctx, id, primitives.AuthAddRelayerPayingKey)
	if nil != err {
		return err
	}
	user := a.Data.UserKey
	if a.Target.IsIdentity() || user != a.Target.Key {
		return fault.ErrUnauthorizedKey
	}
	storage.Pool.RelayerPayingKeys.Put(user[:], a.Data.PayingKey[:])
	ctx.Deposit(Pallet, "PayingKeyAccepted", user, a.Data.PayingKey)
	return nil
}

// PayingKey - the relayer paying for a user key
func PayingKey(user account.Key) (account.Key, bool) {
	b := storage.Pool.RelayerPayingKeys.Get(user[:])
	if nil == b {
		return account.Zero, false
	}
	key, err := account.KeyFromBytes(b)
	return key, nil == err
}
