// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"bytes"
)

// ClaimType - the kind of statement a claim makes
type ClaimType uint8

// claim types
const (
	ClaimAccredited ClaimType = iota + 1
	ClaimAffiliate
	ClaimBuyLockup
	ClaimSellLockup
	ClaimCustomerDueDiligence
	ClaimKnowYourCustomer
	ClaimJurisdiction
	ClaimExempted
	ClaimBlocked
	ClaimNoData
	ClaimCustom
)

var claimTypeNames = map[ClaimType]string{
	ClaimAccredited:           "Accredited",
	ClaimAffiliate:            "Affiliate",
	ClaimBuyLockup:            "BuyLockup",
	ClaimSellLockup:           "SellLockup",
	ClaimCustomerDueDiligence: "CustomerDueDiligence",
	ClaimKnowYourCustomer:     "KnowYourCustomer",
	ClaimJurisdiction:         "Jurisdiction",
	ClaimExempted:             "Exempted",
	ClaimBlocked:              "Blocked",
	ClaimNoData:               "NoData",
	ClaimCustom:               "Custom",
}

func (c ClaimType) String() string {
	if s, ok := claimTypeNames[c]; ok {
		return s
	}
	return "Unknown"
}

// ScopeKind - what a claim is about
type ScopeKind uint8

// scope kinds
const (
	ScopeNone ScopeKind = iota
	ScopeIdentity
	ScopeTicker
	ScopeCustom
)

// MaximumCustomScope - bytes allowed in a custom scope
const MaximumCustomScope = 32

// Scope - claim scope
type Scope struct {
	Kind  ScopeKind
	Value []byte
}

// IdentityScope - scope on an identity
func IdentityScope(did DID) Scope {
	return Scope{Kind: ScopeIdentity, Value: append([]byte(nil), did[:]...)}
}

// TickerScope - scope on an asset
func TickerScope(ticker Ticker) Scope {
	return Scope{Kind: ScopeTicker, Value: append([]byte(nil), ticker[:]...)}
}

// CustomScope - free form scope
func CustomScope(value []byte) Scope {
	return Scope{Kind: ScopeCustom, Value: append([]byte(nil), value...)}
}

// IsNone - true if the claim is unscoped
func (s Scope) IsNone() bool {
	return ScopeNone == s.Kind
}

// Equal - same kind and value
func (s Scope) Equal(other Scope) bool {
	return s.Kind == other.Kind && bytes.Equal(s.Value, other.Value)
}

// Bytes - kind ++ value padded to 32 bytes
func (s Scope) Bytes() []byte {
	b := make([]byte, 1+MaximumCustomScope)
	b[0] = byte(s.Kind)
	copy(b[1:], s.Value)
	return b
}

// CddID - opaque customer due diligence identifier
type CddID [32]byte

// Claim - a statement by an issuer about a target identity
type Claim struct {
	Type         ClaimType
	Scope        Scope
	CustomType   uint32
	CddID        CddID
	Jurisdiction string
}

// CddClaim - customer due diligence claim
func CddClaim(id CddID) Claim {
	return Claim{Type: ClaimCustomerDueDiligence, CddID: id}
}

// ScopedClaim - a claim of a type without a payload
func ScopedClaim(claimType ClaimType, scope Scope) Claim {
	return Claim{Type: claimType, Scope: scope}
}

// JurisdictionClaim - country code claim
func JurisdictionClaim(code string, scope Scope) Claim {
	return Claim{Type: ClaimJurisdiction, Scope: scope, Jurisdiction: code}
}

// CustomClaim - claim of a registered custom type
func CustomClaim(customType uint32, scope Scope) Claim {
	return Claim{Type: ClaimCustom, Scope: scope, CustomType: customType}
}

// Matches - true if a stored claim satisfies this claim used as a pattern
//
// a zero CDD identifier in the pattern matches any CDD claim
func (c Claim) Matches(stored Claim) bool {
	if c.Type != stored.Type || c.CustomType != stored.CustomType {
		return false
	}
	if !c.Scope.Equal(stored.Scope) {
		return false
	}
	switch c.Type {
	case ClaimCustomerDueDiligence:
		return c.CddID == CddID{} || c.CddID == stored.CddID
	case ClaimJurisdiction:
		return c.Jurisdiction == stored.Jurisdiction
	}
	return true
}
