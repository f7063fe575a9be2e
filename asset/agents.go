// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

func agentKey(ticker primitives.Ticker, did primitives.DID) []byte {
	return primitives.Key(ticker[:], did[:])
}

// AgentGroup - the group of an external agent
func AgentGroup(ticker primitives.Ticker, did primitives.DID) (primitives.AgentGroup, bool) {
	b := storage.Pool.Agents.Get(agentKey(ticker, did))
	if 1 != len(b) {
		return 0, false
	}
	return primitives.AgentGroup(b[0]), true
}

// IsFullAgent - true for an agent with every permission on the asset
func IsFullAgent(ticker primitives.Ticker, did primitives.DID) bool {
	group, ok := AgentGroup(ticker, did)
	return ok && primitives.AgentFull == group
}

// Agent - an external agent of an asset
type Agent struct {
	DID   primitives.DID
	Group primitives.AgentGroup
}

// Agents - all external agents of an asset in key order
func Agents(ticker primitives.Ticker) []Agent {
	elements := storage.Pool.Agents.Elements(ticker[:])
	agents := make([]Agent, 0, len(elements))
	for _, e := range elements {
		did, err := primitives.DIDFromBytes(e.Key[primitives.TickerLength:])
		if nil != err || 1 != len(e.Value) {
			continue
		}
		agents = append(agents, Agent{DID: did, Group: primitives.AgentGroup(e.Value[0])})
	}
	return agents
}

func setAgent(ticker primitives.Ticker, did primitives.DID, group primitives.AgentGroup) {
	storage.Pool.Agents.Put(agentKey(ticker, did), []byte{byte(group)})
}

func fullAgentCount(ticker primitives.Ticker) int {
	n := 0
	for _, a := range Agents(ticker) {
		if primitives.AgentFull == a.Group {
			n += 1
		}
	}
	return n
}

// EnsureAgent - the caller is an agent allowed to administer the asset
func EnsureAgent(ctx *system.Context, ticker primitives.Ticker) (*identity.Caller, error) {
	return ensureAgent(ctx, ticker, false)
}

// meta marks the calls that manage the agents themselves
func ensureAgent(ctx *system.Context, ticker primitives.Ticker, meta bool) (*identity.Caller, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return nil, err
	}
	group, ok := AgentGroup(ticker, caller.DID)
	if !ok {
		return nil, fault.ErrUnauthorizedAgent
	}
	switch group {
	case primitives.AgentFull:
	case primitives.AgentExceptMeta:
		if meta {
			return nil, fault.ErrUnauthorizedAgent
		}
	default:
		return nil, fault.ErrUnauthorizedAgent
	}
	if err := caller.EnsureAsset(ticker); nil != err {
		return nil, err
	}
	return caller, nil
}

// AcceptBecomeAgent - the target identity joins the agents of an asset
func AcceptBecomeAgent(ctx *system.Context, authID uint64) error {
	return acceptAgent(ctx, authID, primitives.AuthBecomeAgent)
}

// AcceptCorporateActionAgent - the target identity becomes the corporate
// action agent of an asset
func AcceptCorporateActionAgent(ctx *system.Context, authID uint64) error {
	return acceptAgent(ctx, authID, primitives.AuthTransferCorporateActionAgent)
}

func acceptAgent(ctx *system.Context, authID uint64, kind primitives.AuthorizationKind) error {
	a, err := identity.TakeAuthorization(ctx, authID, kind)
	if nil != err {
		return err
	}
	if !a.Target.IsIdentity() {
		return fault.ErrInvalidAuthorizationKind
	}
	ticker := a.Data.Ticker
	if _, err := ensureToken(ticker); nil != err {
		return err
	}
	if !IsFullAgent(ticker, a.AuthorizedBy) {
		return fault.ErrUnauthorizedAgent
	}
	if _, ok := AgentGroup(ticker, a.Target.DID); ok {
		return fault.ErrAlreadyAnAgent
	}
	group := a.Data.Group
	if group < primitives.AgentFull || group > primitives.AgentCorporateAction {
		return fault.ErrInvalidAuthorizationKind
	}

	setAgent(ticker, a.Target.DID, group)
	ctx.Deposit(Pallet, "AgentAdded", ticker, a.Target.DID, group)
	return nil
}

// RemoveAgent - a full agent removes another agent
func RemoveAgent(ctx *system.Context, ticker primitives.Ticker, did primitives.DID) error {
	if _, err := ensureAgent(ctx, ticker, true); nil != err {
		return err
	}
	return removeAgent(ctx, ticker, did)
}

// Abdicate - the caller stops being an agent
func Abdicate(ctx *system.Context, ticker primitives.Ticker) error {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return err
	}
	return removeAgent(ctx, ticker, caller.DID)
}

func removeAgent(ctx *system.Context, ticker primitives.Ticker, did primitives.DID) error {
	group, ok := AgentGroup(ticker, did)
	if !ok {
		return fault.ErrNotAnAgent
	}
	if primitives.AgentFull == group && 1 == fullAgentCount(ticker) {
		return fault.ErrRemovingLastFullAgent
	}
	storage.Pool.Agents.Delete(agentKey(ticker, did))
	ctx.Deposit(Pallet, "AgentRemoved", ticker, did)
	return nil
}

// ChangeGroup - a full agent changes the group of another agent
func ChangeGroup(ctx *system.Context, ticker primitives.Ticker, did primitives.DID, group primitives.AgentGroup) error {
	if _, err := ensureAgent(ctx, ticker, true); nil != err {
		return err
	}
	old, ok := AgentGroup(ticker, did)
	if !ok {
		return fault.ErrNotAnAgent
	}
	if group < primitives.AgentFull || group > primitives.AgentCorporateAction {
		return fault.ErrInvalidAuthorizationKind
	}
	if primitives.AgentFull == old && primitives.AgentFull != group && 1 == fullAgentCount(ticker) {
		return fault.ErrRemovingLastFullAgent
	}
	setAgent(ticker, did, group)
	ctx.Deposit(Pallet, "AgentGroupChanged", ticker, did, group)
	return nil
}

// MandatoryMediators - identities that must affirm every instruction
// involving the asset
func MandatoryMediators(ticker primitives.Ticker) []primitives.DID {
	elements := storage.Pool.MandatoryMediators.Elements(ticker[:])
	dids := make([]primitives.DID, 0, len(elements))
	for _, e := range elements {
		did, err := primitives.DIDFromBytes(e.Key[primitives.TickerLength:])
		if nil == err {
			dids = append(dids, did)
		}
	}
	return dids
}

// AddMandatoryMediators - require affirmation from more identities
func AddMandatoryMediators(ctx *system.Context, ticker primitives.Ticker, mediators []primitives.DID) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	if _, err := ensureToken(ticker); nil != err {
		return err
	}
	for _, did := range mediators {
		if !identity.Exists(did) {
			return fault.ErrDidDoesNotExist
		}
	}
	for _, did := range mediators {
		storage.Pool.MandatoryMediators.Put(primitives.Key(ticker[:], did[:]), []byte{1})
		ctx.Deposit(Pallet, "MandatoryMediatorAdded", ticker, did)
	}
	return nil
}

// RemoveMandatoryMediators - no longer require affirmation from identities
func RemoveMandatoryMediators(ctx *system.Context, ticker primitives.Ticker, mediators []primitives.DID) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	for _, did := range mediators {
		storage.Pool.MandatoryMediators.Delete(primitives.Key(ticker[:], did[:]))
		ctx.Deposit(Pallet, "MandatoryMediatorRemoved", ticker, did)
	}
	return nil
}
