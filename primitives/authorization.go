// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"github.com/polymesh-go/polymeshd/account"
)

// AuthorizationKind - what accepting an authorization does
type AuthorizationKind uint8

// authorization kinds
const (
	AuthJoinIdentity AuthorizationKind = iota + 1
	AuthTransferAssetOwnership
	AuthTransferTicker
	AuthAddMultisigSigner
	AuthPortfolioCustody
	AuthAttestPrimaryKeyRotation
	AuthRotatePrimaryKey
	AuthAddRelayerPayingKey
	AuthTransferCorporateActionAgent
	AuthBecomeAgent
)

var authorizationKindNames = map[AuthorizationKind]string{
	AuthJoinIdentity:                 "JoinIdentity",
	AuthTransferAssetOwnership:       "TransferAssetOwnership",
	AuthTransferTicker:               "TransferTicker",
	AuthAddMultisigSigner:            "AddMultisigSigner",
	AuthPortfolioCustody:             "PortfolioCustody",
	AuthAttestPrimaryKeyRotation:     "AttestPrimaryKeyRotation",
	AuthRotatePrimaryKey:             "RotatePrimaryKey",
	AuthAddRelayerPayingKey:          "AddRelayerPayingKey",
	AuthTransferCorporateActionAgent: "TransferCorporateActionAgent",
	AuthBecomeAgent:                  "BecomeAgent",
}

func (k AuthorizationKind) String() string {
	if s, ok := authorizationKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// AgentGroup - what an external agent of an asset may do
type AgentGroup uint8

// agent groups
const (
	AgentFull AgentGroup = iota + 1
	AgentExceptMeta
	AgentCorporateAction
)

// AuthorizationData - the payload of an authorization
//
// only the fields relevant to Kind are set
type AuthorizationData struct {
	Kind        AuthorizationKind
	Permissions Permissions
	Ticker      Ticker
	Portfolio   PortfolioID
	Multisig    account.Key
	DID         DID
	UserKey     account.Key
	PayingKey   account.Key
	Group       AgentGroup
}

// JoinIdentity - offer a key a place as secondary key
func JoinIdentity(permissions Permissions) AuthorizationData {
	return AuthorizationData{Kind: AuthJoinIdentity, Permissions: permissions.Normalise()}
}

// TransferTicker - offer a ticker reservation
func TransferTicker(ticker Ticker) AuthorizationData {
	return AuthorizationData{Kind: AuthTransferTicker, Ticker: ticker}
}

// TransferAssetOwnership - offer ownership of an asset
func TransferAssetOwnership(ticker Ticker) AuthorizationData {
	return AuthorizationData{Kind: AuthTransferAssetOwnership, Ticker: ticker}
}

// BecomeAgent - offer an agent role on an asset
func BecomeAgent(ticker Ticker, group AgentGroup) AuthorizationData {
	return AuthorizationData{Kind: AuthBecomeAgent, Ticker: ticker, Group: group}
}

// TransferCorporateActionAgent - offer the corporate action agent role
func TransferCorporateActionAgent(ticker Ticker) AuthorizationData {
	return AuthorizationData{Kind: AuthTransferCorporateActionAgent, Ticker: ticker, Group: AgentCorporateAction}
}

// AddMultisigSigner - offer a signer slot on a multisig
func AddMultisigSigner(multisig account.Key) AuthorizationData {
	return AuthorizationData{Kind: AuthAddMultisigSigner, Multisig: multisig}
}

// PortfolioCustody - offer custody of a portfolio
func PortfolioCustody(portfolio PortfolioID) AuthorizationData {
	return AuthorizationData{Kind: AuthPortfolioCustody, Portfolio: portfolio}
}

// RotatePrimaryKey - offer a key the primary key role
func RotatePrimaryKey() AuthorizationData {
	return AuthorizationData{Kind: AuthRotatePrimaryKey}
}

// AttestPrimaryKeyRotation - a cdd provider vouches for a rotation
func AttestPrimaryKeyRotation(did DID) AuthorizationData {
	return AuthorizationData{Kind: AuthAttestPrimaryKeyRotation, DID: did}
}

// AddRelayerPayingKey - a paying key offers to pay for a user key
func AddRelayerPayingKey(userKey account.Key, payingKey account.Key) AuthorizationData {
	return AuthorizationData{Kind: AuthAddRelayerPayingKey, UserKey: userKey, PayingKey: payingKey}
}
