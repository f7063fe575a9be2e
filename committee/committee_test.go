// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package committee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/committee"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

const council = "council"

type body struct {
	chain   *fixtures.Chain
	members []*account.PrivateKey
	dids    []primitives.DID
}

func newBody(t *testing.T, threshold committee.Threshold) *body {
	chain := fixtures.Begin(t)
	b := &body{chain: chain}
	for _, name := range []string{"m1", "m2", "m3"} {
		key, did := chain.Identity(name)
		b.members = append(b.members, key)
		b.dids = append(b.dids, did)
	}
	if err := committee.Create(chain.Root(), council, b.dids, threshold); nil != err {
		t.Fatalf("create committee error: %s", err)
	}
	return b
}

func (b *body) as(i int, method string) *system.Context {
	return b.chain.As(b.members[i], committee.Pallet, method)
}

func addProvider(did primitives.DID) system.Call {
	return system.MustCall(identity.Pallet, "add_cdd_provider", identity.CddProviderArgs{DID: did})
}

func TestApproval(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	b := newBody(t, committee.Threshold{N: 2, D: 3})
	defer b.chain.Abort()

	_, carol := b.chain.Identity("carol")
	call := addProvider(carol)

	err := committee.VoteOrPropose(b.as(0, "vote_or_propose"), council, true, call)
	assert.Nil(t, err, "propose")

	p, err := committee.GetProposal(council, call.Hash())
	assert.Nil(t, err, "proposal")
	assert.Equal(t, committee.ProposalPending, p.Status, "one of three")
	assert.False(t, identity.IsActiveCddProvider(carol), "not yet")

	err = committee.VoteOrPropose(b.as(0, "vote_or_propose"), council, true, call)
	assert.Equal(t, fault.ErrAlreadyVoted, err, "vote twice")

	err = committee.Vote(b.as(1, "vote"), council, call.Hash(), p.Index+1, true)
	assert.Equal(t, fault.ErrMismatchedVotingIndex, err, "wrong index")

	err = committee.Vote(b.as(1, "vote"), council, call.Hash(), p.Index, true)
	assert.Nil(t, err, "second aye")

	p, _ = committee.GetProposal(council, call.Hash())
	assert.Equal(t, committee.ProposalApproved, p.Status, "approved")
	assert.Equal(t, "Ok", p.Result, "result")
	assert.True(t, identity.IsActiveCddProvider(carol), "dispatched with root")

	err = committee.Vote(b.as(2, "vote"), council, call.Hash(), p.Index, true)
	assert.Equal(t, fault.ErrProposalAlreadyHandled, err, "closed")
}

func TestRejectionAndMembership(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	b := newBody(t, committee.Threshold{N: 2, D: 3})
	defer b.chain.Abort()

	outsider, carol := b.chain.Identity("carol")
	call := addProvider(carol)

	err := committee.VoteOrPropose(b.chain.As(outsider, committee.Pallet, "vote_or_propose"), council, true, call)
	assert.Equal(t, fault.ErrNotACommitteeMember, err, "outsider")

	err = committee.VoteOrPropose(b.as(0, "vote_or_propose"), council, true, call)
	assert.Nil(t, err, "propose")
	err = committee.VoteOrPropose(b.as(1, "vote_or_propose"), council, false, call)
	assert.Nil(t, err, "first nay")
	err = committee.VoteOrPropose(b.as(2, "vote_or_propose"), council, false, call)
	assert.Nil(t, err, "second nay")

	p, _ := committee.GetProposal(council, call.Hash())
	assert.Equal(t, committee.ProposalRejected, p.Status, "rejected")
	assert.False(t, identity.IsActiveCddProvider(carol), "not dispatched")

	// the same call can be proposed again under a new index
	err = committee.VoteOrPropose(b.as(0, "vote_or_propose"), council, true, call)
	assert.Nil(t, err, "propose again")
	p, _ = committee.GetProposal(council, call.Hash())
	assert.Equal(t, uint32(1), p.Index, "second index")
}

func TestRootOperations(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	b := newBody(t, committee.Threshold{N: 1, D: 2})
	defer b.chain.Abort()

	err := committee.Create(b.as(0, "create"), "other", b.dids, committee.Threshold{N: 1, D: 2})
	assert.Equal(t, fault.ErrBadOrigin, err, "root only")
	err = committee.Create(b.chain.Root(), council, b.dids, committee.Threshold{N: 1, D: 2})
	assert.Equal(t, fault.ErrCommitteeAlreadyExists, err, "duplicate")
	err = committee.SetVoteThreshold(b.chain.Root(), council, committee.Threshold{N: 3, D: 2})
	assert.Equal(t, fault.ErrInvalidThreshold, err, "n above d")

	_, carol := b.chain.Identity("carol")
	call := addProvider(carol)
	err = committee.VoteOrPropose(b.as(0, "vote_or_propose"), council, true, call)
	assert.Nil(t, err, "propose")

	// 1·2 < 1·3 so one aye of three is not half
	p, _ := committee.GetProposal(council, call.Hash())
	assert.Equal(t, committee.ProposalPending, p.Status, "pending")

	err = committee.SetMembers(b.chain.Root(), council, b.dids[:2])
	assert.Nil(t, err, "shrink")

	p, _ = committee.GetProposal(council, call.Hash())
	assert.Equal(t, committee.ProposalApproved, p.Status, "decided on the new membership")
	assert.True(t, identity.IsActiveCddProvider(carol), "dispatched")

	c, err := committee.Get(council)
	assert.Nil(t, err, "committee")
	assert.Equal(t, 2, len(c.Members), "members")
	assert.False(t, c.IsMember(b.dids[2]), "removed member")
}
