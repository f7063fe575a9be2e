// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/multisig"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/system"
)

type group struct {
	chain   *fixtures.Chain
	creator *account.PrivateKey
	signers []*account.PrivateKey
	address account.Key
}

// a multisig whose signers have all accepted
func newGroup(t *testing.T, sigsRequired uint64, names ...string) *group {
	chain := fixtures.Begin(t)
	g := &group{chain: chain}
	g.creator, _ = chain.Identity("creator")

	keys := make([]account.Key, len(names))
	for i, name := range names {
		g.signers = append(g.signers, fixtures.Key(name))
		keys[i] = g.signers[i].Key()
	}

	address, err := multisig.CreateMultisig(chain.As(g.creator, multisig.Pallet, "create_multisig"), keys, sigsRequired)
	if nil != err {
		t.Fatalf("create multisig error: %s", err)
	}
	g.address = address

	for _, signer := range g.signers {
		auths := identity.Authorizations(primitives.AccountSignatory(signer.Key()))
		if 1 != len(auths) {
			t.Fatalf("signer authorizations: %d", len(auths))
		}
		err := multisig.AcceptMultisigSigner(chain.As(signer, multisig.Pallet, "accept_multisig_signer"), auths[0].ID)
		if nil != err {
			t.Fatalf("accept signer error: %s", err)
		}
	}
	return g
}

func (g *group) as(i int, method string) *system.Context {
	return g.chain.As(g.signers[i], multisig.Pallet, method)
}

func remark(note string) system.Call {
	return system.MustCall(runtime.SystemPallet, "remark", runtime.RemarkArgs{Note: []byte(note)})
}

func TestThresholdExecution(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 2, "a", "b", "c")
	defer g.chain.Abort()

	m, err := multisig.Get(g.address)
	assert.Nil(t, err, "multisig")
	assert.Equal(t, uint64(3), m.SignerCount, "signers")
	assert.Equal(t, 3, len(multisig.Signers(g.address)), "signer list")

	id, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, remark("hello"), 0)
	assert.Nil(t, err, "propose")
	assert.Equal(t, uint64(0), id, "first proposal")

	p, _ := multisig.GetProposal(g.address, id)
	assert.Equal(t, multisig.ProposalActive, p.Status, "one approval is not enough")

	err = multisig.Approve(g.as(1, "approve"), g.address, id)
	assert.Nil(t, err, "approve")

	p, _ = multisig.GetProposal(g.address, id)
	assert.Equal(t, multisig.ProposalExecutionSuccessful, p.Status, "executed")
	assert.Equal(t, "Ok", p.Result, "result")

	e, ok := system.FindEvent(g.chain.Block(), multisig.Pallet, "ProposalExecuted")
	assert.True(t, ok, "executed event")
	assert.Equal(t, []string{g.address.String(), "0", "Ok"}, e.Args, "event args")

	r, ok := system.FindEvent(g.chain.Block(), runtime.SystemPallet, "Remarked")
	assert.True(t, ok, "call dispatched")
	assert.Equal(t, "hello", r.Args[1], "remark")
	assert.Equal(t, system.Signed(g.address).String(), r.Args[0], "multisig origin")

	err = multisig.Approve(g.as(2, "approve"), g.address, id)
	assert.Equal(t, fault.ErrProposalAlreadyHandled, err, "late approval")
}

func TestRejection(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 2, "a", "b", "c")
	defer g.chain.Abort()

	id, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, remark("no"), 0)
	assert.Nil(t, err, "propose")

	_, err = multisig.CreateProposal(g.as(1, "create_proposal"), g.address, remark("no"), 0)
	assert.Equal(t, fault.ErrProposalExists, err, "same call while active")

	err = multisig.Reject(g.as(1, "reject"), g.address, id)
	assert.Nil(t, err, "first nay")
	err = multisig.Reject(g.as(1, "reject"), g.address, id)
	assert.Equal(t, fault.ErrAlreadyVoted, err, "vote twice")

	p, _ := multisig.GetProposal(g.address, id)
	assert.Equal(t, multisig.ProposalActive, p.Status, "threshold still reachable")

	err = multisig.Reject(g.as(2, "reject"), g.address, id)
	assert.Nil(t, err, "second nay")
	p, _ = multisig.GetProposal(g.address, id)
	assert.Equal(t, multisig.ProposalRejected, p.Status, "rejected")

	approve, voted := multisig.Vote(g.address, id, g.signers[2].Key())
	assert.True(t, voted, "voted")
	assert.False(t, approve, "nay")

	again, err := multisig.CreateProposal(g.as(1, "create_proposal"), g.address, remark("no"), 0)
	assert.Nil(t, err, "same call after rejection")
	assert.Equal(t, uint64(1), again, "next id")
	assert.Equal(t, 2, len(multisig.Proposals(g.address)), "two proposals")
}

func TestFailedCall(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 1, "a")
	defer g.chain.Abort()

	unknown := system.MustCall(runtime.SystemPallet, "nothing", runtime.RemarkArgs{})
	id, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, unknown, 0)
	assert.Nil(t, err, "the vote succeeds")

	p, _ := multisig.GetProposal(g.address, id)
	assert.Equal(t, multisig.ProposalExecutionFailed, p.Status, "failed")
	assert.Equal(t, fault.ErrUnknownCall.Error(), p.Result, "result")
}

func TestProposalRules(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 2, "a", "b")
	defer g.chain.Abort()

	outsider := fixtures.Key("outsider")
	_, err := multisig.CreateProposal(g.chain.As(outsider, multisig.Pallet, "create_proposal"), g.address, remark("x"), 0)
	assert.Equal(t, fault.ErrNotASigner, err, "outsider")

	now := g.chain.Root().Now()
	_, err = multisig.CreateProposal(g.as(0, "create_proposal"), g.address, remark("x"), now)
	assert.Equal(t, fault.ErrProposalExpired, err, "already expired")

	id, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, remark("x"), now+10)
	assert.Nil(t, err, "expiring proposal")

	g.chain.Advance(2, 10)
	err = multisig.Approve(g.as(1, "approve"), g.address, id)
	assert.Equal(t, fault.ErrProposalExpired, err, "expired")

	_, err = multisig.CreateMultisig(g.chain.As(g.creator, multisig.Pallet, "create_multisig"), nil, 1)
	assert.Equal(t, fault.ErrNotEnoughSigners, err, "no signers")
	_, err = multisig.CreateMultisig(g.chain.As(g.creator, multisig.Pallet, "create_multisig"), []account.Key{outsider.Key()}, 2)
	assert.Equal(t, fault.ErrRequiredSignaturesOutOfBounds, err, "threshold above signers")
}

func TestSelfManagement(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 2, "a", "b", "c")
	defer g.chain.Abort()

	err := multisig.ChangeSigsRequired(g.chain.AsKey(g.address, multisig.Pallet, "change_sigs_required"), 4)
	assert.Equal(t, fault.ErrRequiredSignaturesOutOfBounds, err, "above signer count")

	change := system.MustCall(multisig.Pallet, "change_sigs_required", multisig.SigsRequiredArgs{SigsRequired: 3})
	id, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, change, 0)
	assert.Nil(t, err, "propose")
	err = multisig.Approve(g.as(1, "approve"), g.address, id)
	assert.Nil(t, err, "approve")

	m, _ := multisig.Get(g.address)
	assert.Equal(t, uint64(3), m.SigsRequired, "changed through a proposal")

	err = multisig.RemoveMultisigSigners(g.chain.AsKey(g.address, multisig.Pallet, "remove_multisig_signers"), []account.Key{g.signers[2].Key()})
	assert.Equal(t, fault.ErrSignersBelowThreshold, err, "threshold unreachable")

	err = multisig.ChangeSigsRequired(g.chain.AsKey(g.address, multisig.Pallet, "change_sigs_required"), 2)
	assert.Nil(t, err, "lower")
	err = multisig.RemoveMultisigSigners(g.chain.AsKey(g.address, multisig.Pallet, "remove_multisig_signers"), []account.Key{g.signers[2].Key()})
	assert.Nil(t, err, "remove")
	assert.False(t, multisig.IsSigner(g.address, g.signers[2].Key()), "removed")
	assert.False(t, identity.IsLinked(g.signers[2].Key()), "unlinked")

	err = multisig.MakeMultisigSecondary(g.chain.As(g.signers[0], multisig.Pallet, "make_multisig_secondary"), g.address)
	assert.NotNil(t, err, "only the creator")
	err = multisig.MakeMultisigSecondary(g.chain.As(g.creator, multisig.Pallet, "make_multisig_secondary"), g.address)
	assert.Nil(t, err, "creator")
	did, ok := identity.KeyIdentity(g.address)
	assert.True(t, ok, "linked")
	creator, _ := identity.KeyIdentity(g.creator.Key())
	assert.Equal(t, creator, did, "same identity")
}

func TestRemovedSignerVotes(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	g := newGroup(t, 2, "a", "b", "c")
	defer g.chain.Abort()

	x, err := multisig.CreateProposal(g.as(0, "create_proposal"), g.address, remark("x"), 0)
	assert.Nil(t, err, "propose x")
	err = multisig.Reject(g.as(1, "reject"), g.address, x)
	assert.Nil(t, err, "reject x")

	y, err := multisig.CreateProposal(g.as(2, "create_proposal"), g.address, remark("y"), 0)
	assert.Nil(t, err, "propose y")
	err = multisig.Reject(g.as(0, "reject"), g.address, y)
	assert.Nil(t, err, "reject y")

	err = multisig.RemoveMultisigSigners(g.chain.AsKey(g.address, multisig.Pallet, "remove_multisig_signers"), []account.Key{g.signers[0].Key()})
	assert.Nil(t, err, "remove")

	// one nay of two signers leaves the threshold out of reach
	p, _ := multisig.GetProposal(g.address, x)
	assert.Equal(t, multisig.ProposalRejected, p.Status, "x rejected")
	assert.Equal(t, uint64(0), p.Ayes, "x ayes")
	assert.Equal(t, uint64(1), p.Nays, "x nays")
	_, ok := system.FindEvent(g.chain.Block(), multisig.Pallet, "ProposalRejected")
	assert.True(t, ok, "rejected event")

	p, _ = multisig.GetProposal(g.address, y)
	assert.Equal(t, multisig.ProposalActive, p.Status, "y still active")
	assert.Equal(t, uint64(1), p.Ayes, "y ayes")
	assert.Equal(t, uint64(0), p.Nays, "y nays")
	_, voted := multisig.Vote(g.address, y, g.signers[0].Key())
	assert.False(t, voted, "removed signer vote dropped")

	err = multisig.Approve(g.as(1, "approve"), g.address, y)
	assert.Nil(t, err, "approve y")
	p, _ = multisig.GetProposal(g.address, y)
	assert.Equal(t, multisig.ProposalExecutionSuccessful, p.Status, "y executed")
}
