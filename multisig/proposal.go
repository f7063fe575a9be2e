// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// ProposalWeight - cost of recording a vote, the dispatched call pays
// its own way
const ProposalWeight system.Weight = 20

// ProposalStatus - where a proposal is in its life
type ProposalStatus uint8

// proposal states
const (
	ProposalActive ProposalStatus = iota + 1
	ProposalExecutionSuccessful
	ProposalExecutionFailed
	ProposalRejected
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalActive:
		return "Active"
	case ProposalExecutionSuccessful:
		return "ExecutionSuccessful"
	case ProposalExecutionFailed:
		return "ExecutionFailed"
	case ProposalRejected:
		return "Rejected"
	}
	return "Unknown"
}

// Proposal - a call waiting for signer approval
type Proposal struct {
	ID       uint64
	Multisig account.Key
	Call     system.Call
	Proposer account.Key
	Expiry   primitives.Moment
	Status   ProposalStatus
	Ayes     uint64
	Nays     uint64
	Result   string
}

// Terminal - true once executed or rejected
func (p *Proposal) Terminal() bool {
	return ProposalActive != p.Status
}

func proposalKey(address account.Key, id uint64) []byte {
	return primitives.Key(address[:], primitives.Uint64Bytes(id))
}

func voteKey(address account.Key, id uint64, signer account.Key) []byte {
	return primitives.Key(address[:], primitives.Uint64Bytes(id), signer[:])
}

func hashKey(address account.Key, hash [32]byte) []byte {
	return primitives.Key(address[:], hash[:])
}

// GetProposal - fetch a proposal of a multisig
func GetProposal(address account.Key, id uint64) (*Proposal, error) {
	var p Proposal
	if !storage.Pool.Proposals.GetRecord(proposalKey(address, id), &p) {
		return nil, fault.ErrProposalNotFound
	}
	return &p, nil
}

func putProposal(p *Proposal) {
	storage.Pool.Proposals.PutRecord(proposalKey(p.Multisig, p.ID), p)
}

// Proposals - every proposal of a multisig in id order
func Proposals(address account.Key) []Proposal {
	elements := storage.Pool.Proposals.Elements(address[:])
	proposals := make([]Proposal, 0, len(elements))
	for _, e := range elements {
		var p Proposal
		if nil == storage.Unpack(e.Value, &p) {
			proposals = append(proposals, p)
		}
	}
	return proposals
}

// Vote - the recorded vote of a signer, false if it has not voted
func Vote(address account.Key, id uint64, signer account.Key) (approve bool, voted bool) {
	v := storage.Pool.Votes.Get(voteKey(address, id, signer))
	if 1 != len(v) {
		return false, false
	}
	return 1 == v[0], true
}

// the caller must be a confirmed signer of the multisig
func ensureSigner(ctx *system.Context, address account.Key) (account.Key, *Multisig, error) {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return account.Zero, nil, err
	}
	m, err := Get(address)
	if nil != err {
		return account.Zero, nil, err
	}
	if !IsSigner(address, key) {
		return account.Zero, nil, fault.ErrNotASigner
	}
	return key, m, nil
}

// CreateProposal - a signer proposes a call and approves it
//
// the same call cannot be proposed again while it is active
func CreateProposal(ctx *system.Context, address account.Key, call system.Call, expiry primitives.Moment) (uint64, error) {
	key, m, err := ensureSigner(ctx, address)
	if nil != err {
		return 0, err
	}
	if 0 != expiry && expiry <= ctx.Now() {
		return 0, fault.ErrProposalExpired
	}
	hash := call.Hash()
	if storage.Pool.ProposalHashes.Has(hashKey(address, hash)) {
		return 0, fault.ErrProposalExists
	}

	p := &Proposal{
		ID:       m.NextProposal,
		Multisig: address,
		Call:     call,
		Proposer: key,
		Expiry:   expiry,
		Status:   ProposalActive,
	}
	m.NextProposal += 1
	put(m)
	storage.Pool.ProposalHashes.PutN(hashKey(address, hash), p.ID)

	ctx.Deposit(Pallet, "ProposalAdded", key, address, p.ID)
	if err := vote(ctx, m, p, key, true); nil != err {
		return 0, err
	}
	return p.ID, nil
}

// Approve - a signer votes for a proposal
func Approve(ctx *system.Context, address account.Key, id uint64) error {
	key, m, err := ensureSigner(ctx, address)
	if nil != err {
		return err
	}
	p, err := GetProposal(address, id)
	if nil != err {
		return err
	}
	return vote(ctx, m, p, key, true)
}

// Reject - a signer votes against a proposal
func Reject(ctx *system.Context, address account.Key, id uint64) error {
	key, m, err := ensureSigner(ctx, address)
	if nil != err {
		return err
	}
	p, err := GetProposal(address, id)
	if nil != err {
		return err
	}
	return vote(ctx, m, p, key, false)
}

// record a vote then execute or reject once the outcome is decided
//
// rejection happens as soon as the remaining signers cannot reach the
// threshold
func vote(ctx *system.Context, m *Multisig, p *Proposal, signer account.Key, approve bool) error {
	if err := ctx.Consume(ProposalWeight); nil != err {
		return err
	}
	if p.Terminal() {
		return fault.ErrProposalAlreadyHandled
	}
	if 0 != p.Expiry && p.Expiry <= ctx.Now() {
		return fault.ErrProposalExpired
	}
	key := voteKey(p.Multisig, p.ID, signer)
	if storage.Pool.Votes.Has(key) {
		return fault.ErrAlreadyVoted
	}

	if approve {
		storage.Pool.Votes.Put(key, []byte{1})
		p.Ayes += 1
		ctx.Deposit(Pallet, "ProposalApproved", p.Multisig, signer, p.ID)
	} else {
		storage.Pool.Votes.Put(key, []byte{0})
		p.Nays += 1
		ctx.Deposit(Pallet, "ProposalRejectionVote", p.Multisig, signer, p.ID)
	}
	tally(ctx, m, p)
	putProposal(p)
	return nil
}

func tally(ctx *system.Context, m *Multisig, p *Proposal) {
	switch {
	case p.Ayes >= m.SigsRequired:
		execute(ctx, p)
	case m.SignerCount >= m.SigsRequired && p.Nays >= m.SignerCount-m.SigsRequired+1:
		p.Status = ProposalRejected
		storage.Pool.ProposalHashes.Delete(hashKey(p.Multisig, p.Call.Hash()))
		ctx.Deposit(Pallet, "ProposalRejected", p.Multisig, p.ID)
	}
}

// drop the votes of removed signers from active proposals and tally
// again against the smaller signer set
//
// a proposal already at the threshold is the one being executed
func dropVotes(ctx *system.Context, m *Multisig, signers []account.Key) {
	for _, p := range Proposals(m.Address) {
		if p.Terminal() || p.Ayes >= m.SigsRequired {
			continue
		}
		p := p
		for _, signer := range signers {
			approve, voted := Vote(m.Address, p.ID, signer)
			if !voted {
				continue
			}
			storage.Pool.Votes.Delete(voteKey(m.Address, p.ID, signer))
			if approve {
				p.Ayes -= 1
			} else {
				p.Nays -= 1
			}
		}
		if 0 == p.Expiry || p.Expiry > ctx.Now() {
			tally(ctx, m, &p)
		}
		putProposal(&p)
	}
}

// dispatch the call with the multisig as origin
//
// the outcome of the call is recorded, a failing call does not fail the
// vote that triggered it
func execute(ctx *system.Context, p *Proposal) {
	err := ctx.Transactional(func() error {
		return ctx.Dispatch(system.Signed(p.Multisig), p.Call)
	})
	if nil != err {
		p.Status = ProposalExecutionFailed
		p.Result = err.Error()
	} else {
		p.Status = ProposalExecutionSuccessful
		p.Result = "Ok"
	}
	storage.Pool.ProposalHashes.Delete(hashKey(p.Multisig, p.Call.Hash()))
	ctx.Deposit(Pallet, "ProposalExecuted", p.Multisig, p.ID, p.Result)
	globalData.log.Infof("multisig: %s  proposal: %d  call: %s  result: %s", p.Multisig, p.ID, p.Call.Name(), p.Result)
}
