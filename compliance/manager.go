// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compliance

import (
	"sort"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

func requirementCounter(ticker primitives.Ticker) string {
	return "requirement:" + string(ticker[:])
}

// Get - the compliance of an asset, empty if none was set
func Get(ticker primitives.Ticker) *AssetCompliance {
	var c AssetCompliance
	storage.Pool.AssetCompliances.GetRecord(ticker[:], &c)
	return &c
}

func put(ticker primitives.Ticker, c *AssetCompliance) {
	if !c.Paused && 0 == len(c.Requirements) {
		storage.Pool.AssetCompliances.Delete(ticker[:])
		return
	}
	storage.Pool.AssetCompliances.PutRecord(ticker[:], c)
}

// agent of an existing asset
func ensureAgent(ctx *system.Context, ticker primitives.Ticker) error {
	if !asset.Exists(ticker) {
		return fault.ErrNoSuchAsset
	}
	_, err := asset.EnsureAgent(ctx, ticker)
	return err
}

func verifyComplexity(ticker primitives.Ticker, r Requirement) error {
	if r.complexity(len(DefaultTrustedClaimIssuers(ticker))) > maximumComplexity() {
		return fault.ErrComplianceRequirementTooComplex
	}
	return nil
}

// AddComplianceRequirement - append a requirement
func AddComplianceRequirement(ctx *system.Context, ticker primitives.Ticker, sender []Condition, receiver []Condition) (uint32, error) {
	if err := ensureAgent(ctx, ticker); nil != err {
		return 0, err
	}
	r := Requirement{
		SenderConditions:   sender,
		ReceiverConditions: receiver,
	}
	if err := verifyComplexity(ticker, r); nil != err {
		return 0, err
	}
	r.ID = uint32(system.NextID(requirementCounter(ticker)))

	c := Get(ticker)
	c.Requirements = append(c.Requirements, r)
	put(ticker, c)

	ctx.Deposit(Pallet, "ComplianceRequirementCreated", ticker, r.ID)
	return r.ID, nil
}

// RemoveComplianceRequirement - drop a requirement by id
func RemoveComplianceRequirement(ctx *system.Context, ticker primitives.Ticker, id uint32) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	c := Get(ticker)
	for i, r := range c.Requirements {
		if r.ID == id {
			c.Requirements = append(c.Requirements[:i], c.Requirements[i+1:]...)
			put(ticker, c)
			ctx.Deposit(Pallet, "ComplianceRequirementRemoved", ticker, id)
			return nil
		}
	}
	return fault.ErrComplianceRequirementNotFound
}

// ChangeComplianceRequirement - replace the conditions of a requirement
// in place
func ChangeComplianceRequirement(ctx *system.Context, ticker primitives.Ticker, requirement Requirement) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	if err := verifyComplexity(ticker, requirement); nil != err {
		return err
	}
	c := Get(ticker)
	for i, r := range c.Requirements {
		if r.ID == requirement.ID {
			c.Requirements[i] = requirement
			put(ticker, c)
			ctx.Deposit(Pallet, "ComplianceRequirementChanged", ticker, requirement.ID)
			return nil
		}
	}
	return fault.ErrComplianceRequirementNotFound
}

// ReplaceAssetCompliance - replace every requirement
//
// requirements are ordered by id, a zero id is given the next free id
func ReplaceAssetCompliance(ctx *system.Context, ticker primitives.Ticker, requirements []Requirement) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	seen := make(map[uint32]struct{})
	replaced := make([]Requirement, len(requirements))
	for i, r := range requirements {
		if err := verifyComplexity(ticker, r); nil != err {
			return err
		}
		if 0 != r.ID {
			if _, ok := seen[r.ID]; ok {
				return fault.ErrDuplicateComplianceRequirements
			}
			seen[r.ID] = struct{}{}
		}
		replaced[i] = r
	}

	// keep the counter ahead of every explicit id
	for i := range replaced {
		if 0 != replaced[i].ID {
			for system.CurrentID(requirementCounter(ticker)) < uint64(replaced[i].ID) {
				system.NextID(requirementCounter(ticker))
			}
		}
	}
	for i := range replaced {
		if 0 == replaced[i].ID {
			replaced[i].ID = uint32(system.NextID(requirementCounter(ticker)))
		}
	}
	sort.SliceStable(replaced, func(i, j int) bool {
		return replaced[i].ID < replaced[j].ID
	})

	c := Get(ticker)
	c.Requirements = replaced
	put(ticker, c)
	ctx.Deposit(Pallet, "AssetComplianceReplaced", ticker, len(replaced))
	return nil
}

// ResetAssetCompliance - remove every requirement and resume
func ResetAssetCompliance(ctx *system.Context, ticker primitives.Ticker) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	storage.Pool.AssetCompliances.Delete(ticker[:])
	ctx.Deposit(Pallet, "AssetComplianceReset", ticker)
	return nil
}

// PauseAssetCompliance - every transfer passes while paused
func PauseAssetCompliance(ctx *system.Context, ticker primitives.Ticker) error {
	return setPaused(ctx, ticker, true)
}

// ResumeAssetCompliance - requirements apply again
func ResumeAssetCompliance(ctx *system.Context, ticker primitives.Ticker) error {
	return setPaused(ctx, ticker, false)
}

func setPaused(ctx *system.Context, ticker primitives.Ticker, paused bool) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	c := Get(ticker)
	c.Paused = paused
	put(ticker, c)
	if paused {
		ctx.Deposit(Pallet, "AssetCompliancePaused", ticker)
	} else {
		ctx.Deposit(Pallet, "AssetComplianceResumed", ticker)
	}
	return nil
}

// DefaultTrustedClaimIssuers - issuers consulted by every condition of
// an asset, in key order
func DefaultTrustedClaimIssuers(ticker primitives.Ticker) []TrustedIssuer {
	elements := storage.Pool.DefaultIssuers.Elements(ticker[:])
	issuers := make([]TrustedIssuer, 0, len(elements))
	for _, e := range elements {
		var t TrustedIssuer
		if nil == storage.Unpack(e.Value, &t) {
			issuers = append(issuers, t)
		}
	}
	return issuers
}

// AddDefaultTrustedClaimIssuer - trust an issuer for all conditions
func AddDefaultTrustedClaimIssuer(ctx *system.Context, ticker primitives.Ticker, issuer TrustedIssuer) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	key := primitives.Key(ticker[:], issuer.Issuer[:])
	if storage.Pool.DefaultIssuers.Has(key) {
		return fault.ErrIncorrectOperationOnTrustedIssuer
	}
	storage.Pool.DefaultIssuers.PutRecord(key, &issuer)
	ctx.Deposit(Pallet, "TrustedDefaultClaimIssuerAdded", ticker, issuer.Issuer)
	return nil
}

// RemoveDefaultTrustedClaimIssuer - stop trusting an issuer
func RemoveDefaultTrustedClaimIssuer(ctx *system.Context, ticker primitives.Ticker, issuer primitives.DID) error {
	if err := ensureAgent(ctx, ticker); nil != err {
		return err
	}
	key := primitives.Key(ticker[:], issuer[:])
	if !storage.Pool.DefaultIssuers.Has(key) {
		return fault.ErrIncorrectOperationOnTrustedIssuer
	}
	storage.Pool.DefaultIssuers.Delete(key)
	ctx.Deposit(Pallet, "TrustedDefaultClaimIssuerRemoved", ticker, issuer)
	return nil
}
