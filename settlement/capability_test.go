// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package settlement_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/settlement/mocks"
)

// the engine only reaches assets and portfolios through its capabilities
func setupMocks(t *testing.T) (*gomock.Controller, *mocks.MockAssets, *mocks.MockPortfolios) {
	ctl := gomock.NewController(t)
	assets := mocks.NewMockAssets(ctl)
	portfolios := mocks.NewMockPortfolios(ctl)

	assets.EXPECT().Exists(gomock.Any()).Return(true).AnyTimes()
	assets.EXPECT().MandatoryMediators(gomock.Any()).Return(nil).AnyTimes()
	portfolios.EXPECT().EnsureExists(gomock.Any()).Return(nil).AnyTimes()
	portfolios.EXPECT().EnsureCustody(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	portfolios.EXPECT().AddInstructionRef(gomock.Any(), gomock.Any()).AnyTimes()
	portfolios.EXPECT().RemoveInstructionRef(gomock.Any(), gomock.Any()).AnyTimes()

	settlement.SetAssets(assets)
	settlement.SetPortfolios(portfolios)
	return ctl, assets, portfolios
}

func TestExecutionThroughCapabilities(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	_, bobDID := chain.Identity("bob")

	ctl, assets, portfolios := setupMocks(t)
	defer ctl.Finish()

	from := primitives.DefaultPortfolio(aliceDID)
	to := primitives.DefaultPortfolio(bobDID)

	venue, err := settlement.CreateVenue(chain.As(alice, settlement.Pallet, "create_venue"), "v", nil, settlement.VenueOther)
	assert.Nil(t, err, "venue")

	legs := []settlement.Leg{
		{Kind: settlement.FungibleLeg, From: from, To: to, Ticker: acme, Amount: 100},
		{Kind: settlement.NonFungibleLeg, From: from, To: to, Ticker: usdc, NFTs: []uint64{7}},
	}
	id, err := settlement.AddInstruction(chain.As(alice, settlement.Pallet, "add_instruction"), venue, settlement.OnAffirmation(), 0, 0, legs, nil)
	assert.Nil(t, err, "add")

	gomock.InOrder(
		portfolios.EXPECT().Lock(from, acme, primitives.Balance(100)).Return(nil),
		portfolios.EXPECT().LockNFT(from, usdc, uint64(7)).Return(nil),
		portfolios.EXPECT().Unlock(from, acme, primitives.Balance(100)).Return(nil),
		assets.EXPECT().Transfer(gomock.Any(), from, to, acme, primitives.Balance(100)).Return(nil),
		portfolios.EXPECT().UnlockNFT(from, usdc, uint64(7)).Return(nil),
		assets.EXPECT().TransferNFTs(gomock.Any(), from, to, usdc, []uint64{7}).Return(nil),
	)

	err = settlement.AffirmInstruction(chain.As(alice, settlement.Pallet, "affirm_instruction"), id, []primitives.PortfolioID{from})
	assert.Nil(t, err, "affirm")

	i, err := settlement.GetInstruction(id)
	assert.Nil(t, err, "instruction")
	assert.Equal(t, settlement.StatusSettled, i.Status, "settled")
}

func TestFailedTransferKeepsLocks(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	_, bobDID := chain.Identity("bob")

	ctl, assets, portfolios := setupMocks(t)
	defer ctl.Finish()

	from := primitives.DefaultPortfolio(aliceDID)
	to := primitives.DefaultPortfolio(bobDID)

	venue, err := settlement.CreateVenue(chain.As(alice, settlement.Pallet, "create_venue"), "v", nil, settlement.VenueOther)
	assert.Nil(t, err, "venue")

	legs := []settlement.Leg{
		{Kind: settlement.FungibleLeg, From: from, To: to, Ticker: acme, Amount: 100},
	}
	id, err := settlement.AddInstruction(chain.As(alice, settlement.Pallet, "add_instruction"), venue, settlement.OnAffirmation(), 0, 0, legs, nil)
	assert.Nil(t, err, "add")

	portfolios.EXPECT().Lock(from, acme, primitives.Balance(100)).Return(nil).Times(1)
	portfolios.EXPECT().Unlock(from, acme, primitives.Balance(100)).Return(nil).Times(1)
	assets.EXPECT().Transfer(gomock.Any(), from, to, acme, primitives.Balance(100)).Return(fault.ErrInvalidTransferComplianceFailure).Times(1)

	err = settlement.AffirmInstruction(chain.As(alice, settlement.Pallet, "affirm_instruction"), id, []primitives.PortfolioID{from})
	assert.Nil(t, err, "affirmation succeeds even when execution fails")

	i, err := settlement.GetInstruction(id)
	assert.Nil(t, err, "instruction")
	assert.Equal(t, settlement.StatusFailed, i.Status, "failed")
	assert.Equal(t, settlement.LegExecutionPending, i.LegStates[0].Status, "leg still locked")
	assert.True(t, chain.HasEvent(settlement.Pallet, "LegFailedExecution"), "leg event")
}

func TestLockFailure(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	_, bobDID := chain.Identity("bob")

	ctl, _, portfolios := setupMocks(t)
	defer ctl.Finish()

	from := primitives.DefaultPortfolio(aliceDID)
	to := primitives.DefaultPortfolio(bobDID)

	venue, err := settlement.CreateVenue(chain.As(alice, settlement.Pallet, "create_venue"), "v", nil, settlement.VenueOther)
	assert.Nil(t, err, "venue")

	legs := []settlement.Leg{
		{Kind: settlement.NonFungibleLeg, From: from, To: to, Ticker: acme, NFTs: []uint64{1}},
	}
	id, err := settlement.AddInstruction(chain.As(alice, settlement.Pallet, "add_instruction"), venue, settlement.OnAffirmation(), 0, 0, legs, nil)
	assert.Nil(t, err, "add")

	portfolios.EXPECT().LockNFT(from, acme, uint64(1)).Return(fault.ErrNFTAlreadyLocked).Times(1)

	err = settlement.AffirmInstruction(chain.As(alice, settlement.Pallet, "affirm_instruction"), id, []primitives.PortfolioID{from})
	assert.Equal(t, fault.ErrNFTAlreadyLocked, err, "already locked by another instruction")

	i, _ := settlement.GetInstruction(id)
	assert.Equal(t, settlement.StatusPending, i.Status, "pending")
	assert.False(t, i.Affirmations[0].Affirmed, "not affirmed")
}
