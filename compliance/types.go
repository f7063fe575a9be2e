// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"github.com/polymesh-go/polymeshd/primitives"
)

// TrustedFor - the claim types an issuer is trusted for
type TrustedFor struct {
	Any   bool
	Types []primitives.ClaimType
}

// Allows - true if the issuer may vouch for the claim type
func (t TrustedFor) Allows(claimType primitives.ClaimType) bool {
	if t.Any {
		return true
	}
	for _, c := range t.Types {
		if c == claimType {
			return true
		}
	}
	return false
}

// TrustedIssuer - an identity whose claims are consulted
type TrustedIssuer struct {
	Issuer     primitives.DID
	TrustedFor TrustedFor
}

// ConditionType - how the claims of a condition are tested
type ConditionType uint8

// condition types
const (
	IsPresent ConditionType = iota + 1
	IsAbsent
	IsAnyOf
	IsNoneOf
	IsIdentity
)

var conditionTypeNames = map[ConditionType]string{
	IsPresent:  "IsPresent",
	IsAbsent:   "IsAbsent",
	IsAnyOf:    "IsAnyOf",
	IsNoneOf:   "IsNoneOf",
	IsIdentity: "IsIdentity",
}

func (c ConditionType) String() string {
	if s, ok := conditionTypeNames[c]; ok {
		return s
	}
	return "Unknown"
}

// TargetIdentity - a fixed identity or any full agent of the asset
type TargetIdentity struct {
	PrimaryAgent bool
	DID          primitives.DID
}

// Condition - one test on the sender or receiver
//
// IsPresent and IsAbsent use the first claim only
type Condition struct {
	Type     ConditionType
	Claims   []primitives.Claim
	Identity TargetIdentity
	Issuers  []TrustedIssuer
}

// Present - condition requiring a claim
func Present(claim primitives.Claim, issuers ...TrustedIssuer) Condition {
	return Condition{Type: IsPresent, Claims: []primitives.Claim{claim}, Issuers: issuers}
}

// Absent - condition forbidding a claim
func Absent(claim primitives.Claim, issuers ...TrustedIssuer) Condition {
	return Condition{Type: IsAbsent, Claims: []primitives.Claim{claim}, Issuers: issuers}
}

// AnyOf - condition requiring one of the claims
func AnyOf(claims []primitives.Claim, issuers ...TrustedIssuer) Condition {
	return Condition{Type: IsAnyOf, Claims: claims, Issuers: issuers}
}

// NoneOf - condition forbidding all of the claims
func NoneOf(claims []primitives.Claim, issuers ...TrustedIssuer) Condition {
	return Condition{Type: IsNoneOf, Claims: claims, Issuers: issuers}
}

// Identity - condition on the identity itself
func Identity(target TargetIdentity) Condition {
	return Condition{Type: IsIdentity, Identity: target}
}

// Requirement - conditions that must all hold on each side
type Requirement struct {
	ID                 uint32
	SenderConditions   []Condition
	ReceiverConditions []Condition
}

// AssetCompliance - the ordered requirements of an asset
type AssetCompliance struct {
	Paused       bool
	Requirements []Requirement
}

// complexity of a requirement: claims times issuers summed over conditions
func (r Requirement) complexity(defaults int) int {
	n := 0
	for _, conditions := range [][]Condition{r.SenderConditions, r.ReceiverConditions} {
		for _, c := range conditions {
			claims := len(c.Claims)
			if 0 == claims {
				claims = 1
			}
			n += claims * (len(c.Issuers) + defaults)
		}
	}
	return n
}
