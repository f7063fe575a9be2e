// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/rpc/state"
)

var acme = primitives.MustTicker("ACME")

func TestBalanceAndPortfolio(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	c := fixtures.Begin(t)
	alice, aliceDID := c.Identity("alice")
	err := asset.CreateAsset(c.As(alice, asset.Pallet, "create_asset"), "acme", acme, true, "EquityCommon")
	if nil != err {
		t.Fatalf("create asset error: %s", err)
	}
	err = asset.Issue(c.As(alice, asset.Pallet, "issue"), acme, 500, primitives.DefaultPortfolioNumber)
	if nil != err {
		t.Fatalf("issue error: %s", err)
	}
	c.Commit()

	s := state.New(logger.New("test"))

	var balance state.BalanceReply
	err = s.Balance(&state.BalanceArguments{Ticker: acme, DID: aliceDID}, &balance)
	assert.Nil(t, err, "balance")
	assert.Equal(t, primitives.Balance(500), balance.Balance, "issued")
	assert.Equal(t, primitives.Balance(500), balance.TotalSupply, "supply")
	assert.False(t, balance.Frozen, "not frozen")

	err = s.Balance(&state.BalanceArguments{Ticker: primitives.MustTicker("NONE"), DID: aliceDID}, &balance)
	assert.Equal(t, fault.ErrNoSuchAsset, err, "unknown asset")

	var p state.PortfolioReply
	err = s.PortfolioBalance(&state.PortfolioArguments{Portfolio: primitives.DefaultPortfolio(aliceDID)}, &p)
	assert.Nil(t, err, "portfolio")
	assert.Equal(t, "default", p.Name, "name")
	assert.Equal(t, aliceDID.String(), p.Custodian, "owner is custodian")
	assert.Equal(t, 1, len(p.Holdings), "one holding")
	assert.Equal(t, primitives.Balance(500), p.Holdings[0].Available, "available")

	err = s.PortfolioBalance(&state.PortfolioArguments{Portfolio: primitives.UserPortfolio(aliceDID, 9)}, &p)
	assert.Equal(t, fault.ErrPortfolioDoesNotExist, err, "missing portfolio")
}

func TestMissingInstruction(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	s := state.New(logger.New("test"))

	var reply state.InstructionReply
	err := s.Instruction(&state.InstructionArguments{ID: 42}, &reply)
	assert.Equal(t, fault.ErrInstructionNotFound, err, "not found")

	var events state.EventsReply
	err = s.Events(&state.EventsArguments{Count: 0}, &events)
	assert.Equal(t, fault.ErrMissingParameters, err, "empty range")
}
