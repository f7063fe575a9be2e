// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"golang.org/x/crypto/blake2b"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const (
	customClaimCounter        = "custom-claim-type"
	maximumCustomClaimNameLen = 32
)

var systematicIssuerKey = []byte("systematic-cdd-issuer")

// ClaimRecord - a stored claim
type ClaimRecord struct {
	Target       primitives.DID
	Issuer       primitives.DID
	Claim        primitives.Claim
	IssuanceDate primitives.Moment
	LastUpdate   primitives.Moment
	Expiry       primitives.Moment
}

// Valid - unexpired at a moment
func (c *ClaimRecord) Valid(at primitives.Moment) bool {
	return 0 == c.Expiry || c.Expiry > at
}

// CddProvider - membership of the cdd provider group
type CddProvider struct {
	Active        bool
	DeactivatedAt primitives.Moment
}

// target ++ type ++ custom type ++ issuer ++ scope
func claimKey(target primitives.DID, claim primitives.Claim, issuer primitives.DID) []byte {
	return primitives.Key(claimPrefix(target, claim.Type, claim.CustomType), issuer[:], claim.Scope.Bytes())
}

func claimPrefix(target primitives.DID, claimType primitives.ClaimType, customType uint32) []byte {
	return primitives.Key(target[:], []byte{byte(claimType)}, primitives.Uint32Bytes(customType))
}

// DeriveCddID - the cdd identifier issued at registration
func DeriveCddID(did primitives.DID) primitives.CddID {
	return primitives.CddID(blake2b.Sum256(primitives.Key([]byte("CDD"), did[:])))
}

// AddClaim - the caller identity issues or refreshes a claim
func AddClaim(ctx *system.Context, target primitives.DID, claim primitives.Claim, expiry primitives.Moment) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if !Exists(target) {
		return fault.ErrDidDoesNotExist
	}

	switch claim.Type {
	case primitives.ClaimCustomerDueDiligence:
		if !IsActiveCddProvider(caller.DID) && caller.DID != SystematicIssuer() {
			return fault.ErrUnAuthorizedCddProvider
		}
		claim.Scope = primitives.Scope{}
	case primitives.ClaimCustom:
		if _, ok := CustomClaimTypeName(claim.CustomType); !ok {
			return fault.ErrCustomClaimTypeDoesNotExist
		}
	default:
		claim.CustomType = 0
	}
	if len(claim.Scope.Value) > primitives.MaximumCustomScope {
		return fault.ErrCustomScopeTooLong
	}

	addClaim(ctx, target, caller.DID, claim, expiry)
	return nil
}

// AddSystematicClaim - a claim issued by the systematic issuer, for genesis
func AddSystematicClaim(ctx *system.Context, target primitives.DID, claim primitives.Claim, expiry primitives.Moment) {
	addClaim(ctx, target, SystematicIssuer(), claim, expiry)
}

func addClaim(ctx *system.Context, target primitives.DID, issuer primitives.DID, claim primitives.Claim, expiry primitives.Moment) {
	key := claimKey(target, claim, issuer)

	r := ClaimRecord{
		Target:       target,
		Issuer:       issuer,
		Claim:        claim,
		IssuanceDate: ctx.Now(),
	}
	var old ClaimRecord
	if storage.Pool.Claims.GetRecord(key, &old) {
		r.IssuanceDate = old.IssuanceDate
	}
	r.LastUpdate = ctx.Now()
	r.Expiry = expiry

	storage.Pool.Claims.PutRecord(key, &r)
	ctx.Deposit(Pallet, "ClaimAdded", target, issuer, claim.Type, expiry)
}

// RevokeClaim - the issuer removes a claim
func RevokeClaim(ctx *system.Context, target primitives.DID, claim primitives.Claim) error {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return err
	}
	if primitives.ClaimCustomerDueDiligence == claim.Type {
		claim.Scope = primitives.Scope{}
	}
	key := claimKey(target, claim, caller.DID)
	if !storage.Pool.Claims.Has(key) {
		return fault.ErrClaimDoesNotExist
	}
	storage.Pool.Claims.Delete(key)
	ctx.Deposit(Pallet, "ClaimRevoked", target, caller.DID, claim.Type)
	return nil
}

// Claims - stored claims of a type on a target in key order
func Claims(target primitives.DID, claimType primitives.ClaimType, customType uint32) []ClaimRecord {
	elements := storage.Pool.Claims.Elements(claimPrefix(target, claimType, customType))
	claims := make([]ClaimRecord, 0, len(elements))
	for _, e := range elements {
		var r ClaimRecord
		if nil == storage.Unpack(e.Value, &r) {
			claims = append(claims, r)
		}
	}
	return claims
}

// ValidClaims - unexpired claims by an issuer that satisfy a pattern
func ValidClaims(target primitives.DID, pattern primitives.Claim, issuer primitives.DID, now primitives.Moment) []ClaimRecord {
	prefix := primitives.Key(claimPrefix(target, pattern.Type, pattern.CustomType), issuer[:])
	elements := storage.Pool.Claims.Elements(prefix)
	claims := make([]ClaimRecord, 0, len(elements))
	for _, e := range elements {
		var r ClaimRecord
		if nil != storage.Unpack(e.Value, &r) {
			continue
		}
		if r.Valid(now) && pattern.Matches(r.Claim) {
			claims = append(claims, r)
		}
	}
	return claims
}

// HasValidCdd - true if the identity or its parent holds a cdd claim
// unexpired at now + leeway from an acceptable issuer
func HasValidCdd(ctx *system.Context, did primitives.DID, leeway primitives.Moment) bool {
	at := ctx.Now() + leeway
	if hasValidCdd(did, at) {
		return true
	}
	r, ok := Record(did)
	return ok && !r.Parent.IsZero() && hasValidCdd(r.Parent, at)
}

func hasValidCdd(did primitives.DID, at primitives.Moment) bool {
	systematic := SystematicIssuer()
	for _, c := range Claims(did, primitives.ClaimCustomerDueDiligence, 0) {
		if !c.Valid(at) {
			continue
		}
		if !systematic.IsZero() && c.Issuer == systematic {
			return true
		}
		p, ok := cddProvider(c.Issuer)
		if !ok {
			continue
		}
		if p.Active || p.DeactivatedAt > c.LastUpdate {
			return true
		}
	}
	return false
}

// RegisterCustomClaimType - allocate an id for a named claim type
func RegisterCustomClaimType(ctx *system.Context, name string) (uint32, error) {
	caller, err := EnsureCaller(ctx)
	if nil != err {
		return 0, err
	}
	if 0 == len(name) || len(name) > maximumCustomClaimNameLen {
		return 0, fault.ErrCustomClaimTypeNameTooLong
	}
	if storage.Pool.CustomClaimNames.Has([]byte(name)) {
		return 0, fault.ErrCustomClaimTypeAlreadyExists
	}
	id := uint32(system.NextID(customClaimCounter))
	storage.Pool.CustomClaimTypes.Put(primitives.Uint32Bytes(id), []byte(name))
	storage.Pool.CustomClaimNames.Put([]byte(name), primitives.Uint32Bytes(id))
	ctx.Deposit(Pallet, "CustomClaimTypeAdded", caller.DID, id, name)
	return id, nil
}

// CustomClaimTypeName - the name of a registered custom claim type
func CustomClaimTypeName(id uint32) (string, bool) {
	b := storage.Pool.CustomClaimTypes.Get(primitives.Uint32Bytes(id))
	if nil == b {
		return "", false
	}
	return string(b), true
}

// cdd provider group

func cddProvider(did primitives.DID) (*CddProvider, bool) {
	var p CddProvider
	if !storage.Pool.CddProviders.GetRecord(did[:], &p) {
		return nil, false
	}
	return &p, true
}

// IsActiveCddProvider - true for a current member of the group
func IsActiveCddProvider(did primitives.DID) bool {
	p, ok := cddProvider(did)
	return ok && p.Active
}

// AddCddProvider - root adds a member
func AddCddProvider(ctx *system.Context, did primitives.DID) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	if !Exists(did) {
		return fault.ErrDidDoesNotExist
	}
	if IsActiveCddProvider(did) {
		return fault.ErrAlreadyCddProvider
	}
	storage.Pool.CddProviders.PutRecord(did[:], &CddProvider{Active: true})
	ctx.Deposit(Pallet, "CddProviderAdded", did)
	return nil
}

// RemoveCddProvider - root removes a member, its claims stop counting
func RemoveCddProvider(ctx *system.Context, did primitives.DID) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	if _, ok := cddProvider(did); !ok {
		return fault.ErrNotACddProvider
	}
	storage.Pool.CddProviders.Delete(did[:])
	ctx.Deposit(Pallet, "CddProviderRemoved", did)
	return nil
}

// DisableCddProvider - root deactivates a member at a moment
//
// claims last updated before the moment remain valid
func DisableCddProvider(ctx *system.Context, did primitives.DID, at primitives.Moment) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	p, ok := cddProvider(did)
	if !ok || !p.Active {
		return fault.ErrNotACddProvider
	}
	if 0 == at {
		at = ctx.Now()
	}
	storage.Pool.CddProviders.PutRecord(did[:], &CddProvider{DeactivatedAt: at})
	ctx.Deposit(Pallet, "CddProviderDisabled", did, at)
	return nil
}

// SystematicIssuer - the identity whose cdd claims are always accepted
func SystematicIssuer() primitives.DID {
	b := storage.Pool.System.Get(systematicIssuerKey)
	did, err := primitives.DIDFromBytes(b)
	if nil != err {
		return primitives.NoDID
	}
	return did
}

// SetSystematicIssuer - record the systematic issuer, for genesis
func SetSystematicIssuer(did primitives.DID) {
	storage.Pool.System.Put(systematicIssuerKey, did[:])
}
