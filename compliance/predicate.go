// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// weights of the predicate
const (
	ConditionWeight   system.Weight = 10
	ClaimLookupWeight system.Weight = 2
)

// Checker - the transfer predicate installed into the asset module
type Checker struct{}

// VerifyTransfer - nil if the transfer satisfies the asset compliance
func (Checker) VerifyTransfer(ctx *system.Context, ticker primitives.Ticker, sender primitives.DID, receiver primitives.DID) error {
	ok, _, err := IsCompliant(ctx, ticker, sender, receiver)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrInvalidTransferComplianceFailure
	}
	return nil
}

// IsCompliant - true when paused or when some requirement holds for
// both parties
//
// requirements are tried in order and the id of the first satisfied one
// is returned, zero when paused
func IsCompliant(ctx *system.Context, ticker primitives.Ticker, sender primitives.DID, receiver primitives.DID) (bool, uint32, error) {
	c := Get(ticker)
	if c.Paused {
		return true, 0, nil
	}
	e := newEvaluator(ctx, ticker)
	for _, r := range c.Requirements {
		ok, err := e.all(r.SenderConditions, sender)
		if nil != err {
			return false, 0, err
		}
		if !ok {
			continue
		}
		ok, err = e.all(r.ReceiverConditions, receiver)
		if nil != err {
			return false, 0, err
		}
		if ok {
			return true, r.ID, nil
		}
	}
	return false, 0, nil
}

// ConditionResult - outcome of one condition
type ConditionResult struct {
	Condition Condition
	Result    bool
}

// RequirementResult - outcome of one requirement
type RequirementResult struct {
	ID                 uint32
	Result             bool
	SenderConditions   []ConditionResult
	ReceiverConditions []ConditionResult
}

// Report - every condition evaluated, for display
type Report struct {
	Paused       bool
	Result       bool
	Requirements []RequirementResult
}

// Explain - evaluate every condition without short circuit
func Explain(ctx *system.Context, ticker primitives.Ticker, sender primitives.DID, receiver primitives.DID) (*Report, error) {
	c := Get(ticker)
	report := &Report{Paused: c.Paused, Result: c.Paused}
	e := newEvaluator(ctx, ticker)

	for _, r := range c.Requirements {
		rr := RequirementResult{ID: r.ID, Result: true}
		for _, cond := range r.SenderConditions {
			ok, err := e.holds(cond, sender)
			if nil != err {
				return nil, err
			}
			rr.SenderConditions = append(rr.SenderConditions, ConditionResult{Condition: cond, Result: ok})
			rr.Result = rr.Result && ok
		}
		for _, cond := range r.ReceiverConditions {
			ok, err := e.holds(cond, receiver)
			if nil != err {
				return nil, err
			}
			rr.ReceiverConditions = append(rr.ReceiverConditions, ConditionResult{Condition: cond, Result: ok})
			rr.Result = rr.Result && ok
		}
		report.Result = report.Result || rr.Result
		report.Requirements = append(report.Requirements, rr)
	}
	return report, nil
}

type evaluator struct {
	ctx      *system.Context
	ticker   primitives.Ticker
	defaults []TrustedIssuer
}

func newEvaluator(ctx *system.Context, ticker primitives.Ticker) *evaluator {
	return &evaluator{
		ctx:      ctx,
		ticker:   ticker,
		defaults: DefaultTrustedClaimIssuers(ticker),
	}
}

func (e *evaluator) all(conditions []Condition, did primitives.DID) (bool, error) {
	for _, c := range conditions {
		ok, err := e.holds(c, did)
		if nil != err || !ok {
			return false, err
		}
	}
	return true, nil
}

func (e *evaluator) holds(c Condition, did primitives.DID) (bool, error) {
	if err := e.ctx.Consume(ConditionWeight); nil != err {
		return false, err
	}
	switch c.Type {
	case IsIdentity:
		if c.Identity.PrimaryAgent {
			return asset.IsFullAgent(e.ticker, did), nil
		}
		return c.Identity.DID == did, nil

	case IsPresent, IsAbsent:
		if 0 == len(c.Claims) {
			return IsAbsent == c.Type, nil
		}
		found, err := e.present(c, c.Claims[0], did)
		if nil != err {
			return false, err
		}
		return found == (IsPresent == c.Type), nil

	case IsAnyOf, IsNoneOf:
		for _, claim := range c.Claims {
			found, err := e.present(c, claim, did)
			if nil != err {
				return false, err
			}
			if found {
				return IsAnyOf == c.Type, nil
			}
		}
		return IsNoneOf == c.Type, nil
	}
	return false, nil
}

// condition issuers first, then the defaults not already listed
func (e *evaluator) issuers(c Condition) []TrustedIssuer {
	issuers := make([]TrustedIssuer, 0, len(c.Issuers)+len(e.defaults))
	seen := make(map[primitives.DID]struct{})
	for _, list := range [][]TrustedIssuer{c.Issuers, e.defaults} {
		for _, t := range list {
			if _, ok := seen[t.Issuer]; ok {
				continue
			}
			seen[t.Issuer] = struct{}{}
			issuers = append(issuers, t)
		}
	}
	return issuers
}

// scopes an unscoped claim pattern other than cdd is looked up under:
// the asset, the identity of the asset owner, then no scope at all
func (e *evaluator) scopes(claim primitives.Claim) []primitives.Scope {
	if !claim.Scope.IsNone() || primitives.ClaimCustomerDueDiligence == claim.Type {
		return []primitives.Scope{claim.Scope}
	}
	scopes := []primitives.Scope{primitives.TickerScope(e.ticker)}
	if t, ok := asset.Token(e.ticker); ok {
		scopes = append(scopes, primitives.IdentityScope(t.Owner))
	}
	return append(scopes, primitives.Scope{})
}

func (e *evaluator) present(c Condition, claim primitives.Claim, did primitives.DID) (bool, error) {
	scopes := e.scopes(claim)
	for _, t := range e.issuers(c) {
		if !t.TrustedFor.Allows(claim.Type) {
			continue
		}
		for _, scope := range scopes {
			if err := e.ctx.Consume(ClaimLookupWeight); nil != err {
				return false, err
			}
			claim.Scope = scope
			if len(identity.ValidClaims(did, claim, t.Issuer, e.ctx.Now())) > 0 {
				return true, nil
			}
		}
	}
	return false, nil
}
