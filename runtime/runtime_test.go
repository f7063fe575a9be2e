// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/system"
)

func remark(note string) system.Call {
	return system.MustCall(runtime.SystemPallet, "remark", runtime.RemarkArgs{Note: []byte(note)})
}

func hasEvent(block *runtime.Block, pallet string, name string) bool {
	for _, e := range block.Events {
		if e.Pallet == pallet && e.Name == name {
			return true
		}
	}
	return false
}

func TestGenesis(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	head, digest, ok := blockrecord.Head()
	assert.True(t, ok, "genesis head")
	assert.Equal(t, uint64(blockrecord.GenesisBlockNumber), head.Number, "block zero")
	assert.Equal(t, fixtures.GenesisMoment, head.Moment, "moment")
	assert.Equal(t, head.Digest(), digest, "stored digest")

	_, err := runtime.WriteGenesis(runtime.Genesis{Moment: fixtures.GenesisMoment})
	assert.Equal(t, fault.ErrGenesisAlreadyWritten, err, "second genesis")

	_, ok = identity.KeyIdentity(fixtures.Key(fixtures.SystematicIssuer).Key())
	assert.True(t, ok, "systematic issuer identity")
	assert.Contains(t, runtime.CallNames(), "Settlement.affirm_instruction", "call table")
}

func TestProduceBlock(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	alice := fixtures.Key("alice")
	genesis, genesisDigest, _ := blockrecord.Head()

	good := runtime.Sign(alice, 0, remark("hello"))
	replay := runtime.Sign(alice, 0, remark("again"))
	forged := runtime.Sign(alice, 1, remark("forged"))
	forged.Signature = append(account.Signature(nil), forged.Signature...)
	forged.Signature[0] ^= 0xff
	unknown := runtime.Sign(alice, 1, system.MustCall("Nowhere", "nothing", runtime.RemarkArgs{}))

	block, err := runtime.ProduceBlock([]*runtime.Extrinsic{good, replay, forged, unknown}, genesis.Moment+6)
	assert.Nil(t, err, "produce")

	assert.Equal(t, uint64(1), block.Header.Number, "number")
	assert.Equal(t, genesisDigest, block.Header.PreviousBlock, "linked to genesis")
	assert.Equal(t, uint32(2), block.Header.ExtrinsicCount, "included")

	assert.True(t, block.Results[0].Included, "good included")
	assert.Equal(t, "", block.Results[0].Error, "good succeeded")
	assert.False(t, block.Results[1].Included, "replay excluded")
	assert.Equal(t, fault.ErrInvalidNonce.Error(), block.Results[1].Error, "replay error")
	assert.False(t, block.Results[2].Included, "forged excluded")
	assert.Equal(t, fault.ErrInvalidSignature.Error(), block.Results[2].Error, "forged error")
	assert.True(t, block.Results[3].Included, "failed call still included")
	assert.Equal(t, fault.ErrUnknownCall.Error(), block.Results[3].Error, "unknown call")

	assert.True(t, hasEvent(block, runtime.SystemPallet, "Remarked"), "remark event")
	assert.True(t, hasEvent(block, runtime.SystemPallet, "ExtrinsicSuccess"), "success event")
	assert.True(t, hasEvent(block, runtime.SystemPallet, "ExtrinsicFailed"), "failure event")
	assert.Equal(t, uint64(2), runtime.Nonce(alice.Key()), "nonce advanced twice")

	head, digest, _ := blockrecord.Head()
	assert.Equal(t, block.Header.Number, head.Number, "new head")
	assert.Equal(t, block.Digest, digest, "head digest")
}

func TestMomentNeverRegresses(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	block, err := runtime.ProduceBlock(nil, fixtures.GenesisMoment-100)
	assert.Nil(t, err, "produce")
	assert.Equal(t, fixtures.GenesisMoment, block.Header.Moment, "clamped to the head")
	assert.Equal(t, uint32(0), block.Header.ExtrinsicCount, "empty block")
}

func TestRequireCdd(t *testing.T) {
	configuration := fixtures.Configuration()
	configuration.RequireCdd = true
	fixtures.SetupWith(t, configuration)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	bob, _ := chain.Identity("bob")
	chain.Commit()

	alice := fixtures.Key("alice")
	create := system.MustCall(portfolio.Pallet, "create_portfolio", portfolio.NameArgs{Name: "trading"})
	register := system.MustCall(identity.Pallet, "register_did", identity.RegisterDIDArgs{})

	block, err := runtime.ProduceBlock([]*runtime.Extrinsic{
		runtime.Sign(alice, 0, register),
		runtime.Sign(alice, 1, create),
		runtime.Sign(bob, 0, create),
	}, fixtures.GenesisMoment+12)
	assert.Nil(t, err, "produce")

	assert.Equal(t, "", block.Results[0].Error, "registration is exempt")
	assert.Equal(t, fault.ErrCddMissing.Error(), block.Results[1].Error, "no cdd claim")
	assert.Equal(t, "", block.Results[2].Error, "with cdd claim")

	_, ok := identity.KeyIdentity(alice.Key())
	assert.True(t, ok, "alice registered")
}
