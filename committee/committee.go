// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package committee

import (
	"encoding/hex"
	"sort"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
	"github.com/polymesh-go/polymeshd/util"
)

// VoteWeight - cost of recording a committee vote
const VoteWeight system.Weight = 20

// Threshold - the fraction n/d of members needed to decide
type Threshold struct {
	N uint32
	D uint32
}

// Valid - d is positive and n does not exceed it
func (t Threshold) Valid() bool {
	return 0 != t.D && t.N <= t.D
}

// reached - count·d ≥ n·members
func (t Threshold) reached(count int, members int) bool {
	return uint64(count)*uint64(t.D) >= uint64(t.N)*uint64(members)
}

// Committee - a named voting body
type Committee struct {
	Name          string
	Members       []primitives.DID
	Threshold     Threshold
	ProposalCount uint32
}

// IsMember - binary search of the sorted members
func (c *Committee) IsMember(did primitives.DID) bool {
	n := sort.Search(len(c.Members), func(i int) bool {
		return c.Members[i].Compare(did) >= 0
	})
	return n < len(c.Members) && c.Members[n] == did
}

// committee names are length prefixed so that no name is a key prefix
// of another
func nameKey(name string) []byte {
	return util.Packed{}.AppendString(name)
}

// Get - fetch a committee by name
func Get(name string) (*Committee, error) {
	var c Committee
	if !storage.Pool.Committees.GetRecord(nameKey(name), &c) {
		return nil, fault.ErrNoSuchCommittee
	}
	return &c, nil
}

func put(c *Committee) {
	storage.Pool.Committees.PutRecord(nameKey(c.Name), c)
}

func sortMembers(members []primitives.DID) []primitives.DID {
	sorted := append([]primitives.DID(nil), members...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Compare(sorted[j]) < 0
	})
	unique := sorted[:0]
	for i, did := range sorted {
		if 0 == i || did != sorted[i-1] {
			unique = append(unique, did)
		}
	}
	return unique
}

// Create - a new committee instance, root only
func Create(ctx *system.Context, name string, members []primitives.DID, threshold Threshold) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	if !threshold.Valid() {
		return fault.ErrInvalidThreshold
	}
	if storage.Pool.Committees.Has(nameKey(name)) {
		return fault.ErrCommitteeAlreadyExists
	}
	for _, did := range members {
		if !identity.Exists(did) {
			return fault.ErrDidDoesNotExist
		}
	}
	c := &Committee{
		Name:      name,
		Members:   sortMembers(members),
		Threshold: threshold,
	}
	put(c)
	ctx.Deposit(Pallet, "CommitteeCreated", name, len(c.Members), threshold.N, threshold.D)
	return nil
}

// SetVoteThreshold - change n/d, root only
//
// open proposals are decided against the new threshold at their next vote
func SetVoteThreshold(ctx *system.Context, name string, threshold Threshold) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	if !threshold.Valid() {
		return fault.ErrInvalidThreshold
	}
	c, err := Get(name)
	if nil != err {
		return err
	}
	c.Threshold = threshold
	put(c)
	ctx.Deposit(Pallet, "VoteThresholdUpdated", name, threshold.N, threshold.D)
	return nil
}

// SetMembers - replace the member list, root only
//
// votes of departing members are removed and every open proposal is
// tallied again
func SetMembers(ctx *system.Context, name string, members []primitives.DID) error {
	if err := system.EnsureRoot(ctx); nil != err {
		return err
	}
	c, err := Get(name)
	if nil != err {
		return err
	}
	for _, did := range members {
		if !identity.Exists(did) {
			return fault.ErrDidDoesNotExist
		}
	}
	c.Members = sortMembers(members)
	put(c)
	ctx.Deposit(Pallet, "MembersChanged", name, len(c.Members))

	for _, p := range Proposals(name) {
		if ProposalPending != p.Status {
			continue
		}
		p := p
		p.Ayes = keepMembers(c, p.Ayes)
		p.Nays = keepMembers(c, p.Nays)
		tally(ctx, c, &p)
		putProposal(c.Name, &p)
	}
	return nil
}

func keepMembers(c *Committee, votes []primitives.DID) []primitives.DID {
	kept := make([]primitives.DID, 0, len(votes))
	for _, did := range votes {
		if c.IsMember(did) {
			kept = append(kept, did)
		}
	}
	return kept
}

// ProposalStatus - where a committee proposal is in its life
type ProposalStatus uint8

// proposal states
const (
	ProposalPending ProposalStatus = iota + 1
	ProposalApproved
	ProposalRejected
)

// Proposal - a call put to a committee vote
type Proposal struct {
	Hash   [32]byte
	Index  uint32
	Call   system.Call
	Ayes   []primitives.DID
	Nays   []primitives.DID
	Status ProposalStatus
	Result string
}

func proposalKey(name string, hash [32]byte) []byte {
	return primitives.Key(nameKey(name), hash[:])
}

// GetProposal - fetch a proposal by call hash
func GetProposal(name string, hash [32]byte) (*Proposal, error) {
	var p Proposal
	if !storage.Pool.CommitteeProposals.GetRecord(proposalKey(name, hash), &p) {
		return nil, fault.ErrProposalNotFound
	}
	return &p, nil
}

func putProposal(name string, p *Proposal) {
	storage.Pool.CommitteeProposals.PutRecord(proposalKey(name, p.Hash), p)
}

// Proposals - all proposals of a committee in hash order
func Proposals(name string) []Proposal {
	elements := storage.Pool.CommitteeProposals.Elements(nameKey(name))
	proposals := make([]Proposal, 0, len(elements))
	for _, e := range elements {
		var p Proposal
		if nil == storage.Unpack(e.Value, &p) {
			proposals = append(proposals, p)
		}
	}
	return proposals
}

func ensureMember(ctx *system.Context, name string) (primitives.DID, *Committee, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return primitives.NoDID, nil, err
	}
	c, err := Get(name)
	if nil != err {
		return primitives.NoDID, nil, err
	}
	if !c.IsMember(caller.DID) {
		return primitives.NoDID, nil, fault.ErrNotACommitteeMember
	}
	return caller.DID, c, nil
}

// VoteOrPropose - vote on the call if it is already proposed, otherwise
// propose it with an aye from the caller
func VoteOrPropose(ctx *system.Context, name string, approve bool, call system.Call) error {
	did, c, err := ensureMember(ctx, name)
	if nil != err {
		return err
	}
	hash := call.Hash()
	if p, err := GetProposal(name, hash); nil == err && ProposalPending == p.Status {
		return vote(ctx, c, p, did, approve)
	}

	p := &Proposal{
		Hash:   hash,
		Index:  c.ProposalCount,
		Call:   call,
		Status: ProposalPending,
	}
	c.ProposalCount += 1
	put(c)
	ctx.Deposit(Pallet, "Proposed", did, name, p.Index, hex.EncodeToString(hash[:]))
	return vote(ctx, c, p, did, true)
}

// Vote - vote on an open proposal, the index guards against a
// resubmitted call with the same hash
func Vote(ctx *system.Context, name string, hash [32]byte, index uint32, approve bool) error {
	did, c, err := ensureMember(ctx, name)
	if nil != err {
		return err
	}
	p, err := GetProposal(name, hash)
	if nil != err {
		return err
	}
	if ProposalPending != p.Status {
		return fault.ErrProposalAlreadyHandled
	}
	if index != p.Index {
		return fault.ErrMismatchedVotingIndex
	}
	return vote(ctx, c, p, did, approve)
}

func contains(list []primitives.DID, did primitives.DID) bool {
	for _, d := range list {
		if d == did {
			return true
		}
	}
	return false
}

func vote(ctx *system.Context, c *Committee, p *Proposal, did primitives.DID, approve bool) error {
	if err := ctx.Consume(VoteWeight); nil != err {
		return err
	}
	if contains(p.Ayes, did) || contains(p.Nays, did) {
		return fault.ErrAlreadyVoted
	}
	if approve {
		p.Ayes = append(p.Ayes, did)
	} else {
		p.Nays = append(p.Nays, did)
	}
	ctx.Deposit(Pallet, "Voted", did, c.Name, p.Index, approve, len(p.Ayes), len(p.Nays))
	tally(ctx, c, p)
	putProposal(c.Name, p)
	return nil
}

// decide a proposal once either side reaches the threshold
//
// approved calls are dispatched with root origin
func tally(ctx *system.Context, c *Committee, p *Proposal) {
	members := len(c.Members)
	switch {
	case c.Threshold.reached(len(p.Ayes), members):
		err := ctx.Transactional(func() error {
			return ctx.Dispatch(system.RootOrigin(), p.Call)
		})
		p.Status = ProposalApproved
		p.Result = "Ok"
		if nil != err {
			p.Result = err.Error()
		}
		ctx.Deposit(Pallet, "Executed", c.Name, hex.EncodeToString(p.Hash[:]), p.Result)
		globalData.log.Infof("committee: %s  proposal: %d  call: %s  result: %s", c.Name, p.Index, p.Call.Name(), p.Result)
	case len(p.Nays) > 0 && c.Threshold.reached(len(p.Nays), members):
		p.Status = ProposalRejected
		ctx.Deposit(Pallet, "Rejected", c.Name, hex.EncodeToString(p.Hash[:]), len(p.Ayes), len(p.Nays))
	}
}
