// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/asset/mocks"
	"github.com/polymesh-go/polymeshd/calendar"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
)

var (
	acme = primitives.MustTicker("ACME")
	tokn = primitives.MustTicker("TOKN")
)

// create an asset owned by key and issue supply into the default portfolio
func createAsset(t *testing.T, chain *fixtures.Chain, key *account.PrivateKey, ticker primitives.Ticker, divisible bool, supply primitives.Balance) {
	err := asset.CreateAsset(chain.As(key, asset.Pallet, "create_asset"), ticker.String(), ticker, divisible, "EquityCommon")
	if nil != err {
		t.Fatalf("create asset: %s  error: %s", ticker, err)
	}
	if 0 == supply {
		return
	}
	err = asset.Issue(chain.As(key, asset.Pallet, "issue"), ticker, supply, primitives.DefaultPortfolioNumber)
	if nil != err {
		t.Fatalf("issue: %s  error: %s", ticker, err)
	}
}

// every transfer passes compliance
func allowTransfers(t *testing.T) *gomock.Controller {
	ctl := gomock.NewController(t)
	checker := mocks.NewMockComplianceChecker(ctl)
	checker.EXPECT().VerifyTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	asset.SetComplianceChecker(checker)
	return ctl
}

func TestCreateAsset(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	bob, _ := chain.Identity("bob")

	twelve := primitives.MustTicker("ABCDEFGHIJKL")
	err := asset.CreateAsset(chain.As(alice, asset.Pallet, "create_asset"), "twelve", twelve, true, "")
	assert.Nil(t, err, "ticker at maximum length")

	_, err = primitives.NewTicker("ABCDEFGHIJKLM")
	assert.Equal(t, fault.ErrTickerTooLong, err, "ticker over maximum length")

	err = asset.RegisterTicker(chain.As(alice, asset.Pallet, "register_ticker"), acme)
	assert.Nil(t, err, "register ticker")

	err = asset.CreateAsset(chain.As(bob, asset.Pallet, "create_asset"), "acme", acme, true, "")
	assert.Equal(t, fault.ErrTickerAlreadyRegistered, err, "reserved by alice")

	err = asset.CreateAsset(chain.As(alice, asset.Pallet, "create_asset"), "acme", acme, true, "")
	assert.Nil(t, err, "owner creates")

	err = asset.CreateAsset(chain.As(alice, asset.Pallet, "create_asset"), "acme", acme, true, "")
	assert.Equal(t, fault.ErrAssetAlreadyCreated, err, "duplicate")

	token, ok := asset.Token(acme)
	assert.True(t, ok, "token")
	assert.Equal(t, aliceDID, token.Owner, "owner")
	assert.True(t, asset.IsFullAgent(acme, aliceDID), "owner is a full agent")
	assert.True(t, chain.HasEvent(asset.Pallet, "AssetCreated"), "event")
}

func TestTickerTransfer(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	bob, bobDID := chain.Identity("bob")

	err := asset.RegisterTicker(chain.As(alice, asset.Pallet, "register_ticker"), acme)
	assert.Nil(t, err, "register")

	id, err := identity.AddAuthorization(
		chain.As(alice, identity.Pallet, "add_authorization"),
		primitives.IdentitySignatory(bobDID),
		primitives.TransferTicker(acme),
		0,
	)
	assert.Nil(t, err, "offer")

	err = identity.AcceptAuthorization(chain.As(bob, identity.Pallet, "accept_authorization"), id)
	assert.Nil(t, err, "accept")

	r, ok := asset.Registration(acme)
	assert.True(t, ok, "registration")
	assert.Equal(t, bobDID, r.Owner, "new owner")
}

func TestIssueAndRedeem(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, did := chain.Identity("alice")
	bob, _ := chain.Identity("bob")
	createAsset(t, chain, alice, acme, false, 0)

	err := asset.Issue(chain.As(alice, asset.Pallet, "issue"), acme, primitives.OneUnit-1, primitives.DefaultPortfolioNumber)
	assert.Equal(t, fault.ErrInvalidGranularity, err, "indivisible")

	err = asset.Issue(chain.As(bob, asset.Pallet, "issue"), acme, primitives.OneUnit, primitives.DefaultPortfolioNumber)
	assert.Equal(t, fault.ErrUnauthorizedAgent, err, "not an agent")

	err = asset.Issue(chain.As(alice, asset.Pallet, "issue"), acme, 10*primitives.OneUnit, primitives.DefaultPortfolioNumber)
	assert.Nil(t, err, "issue")

	limit := fixtures.Configuration().MaxTotalSupply
	err = asset.Issue(chain.As(alice, asset.Pallet, "issue"), acme, limit, primitives.DefaultPortfolioNumber)
	assert.Equal(t, fault.ErrTotalSupplyAboveLimit, err, "above limit")

	err = asset.Redeem(chain.As(alice, asset.Pallet, "redeem"), acme, 4*primitives.OneUnit, primitives.DefaultPortfolioNumber)
	assert.Nil(t, err, "redeem")

	token, _ := asset.Token(acme)
	assert.Equal(t, 6*primitives.OneUnit, token.TotalSupply, "supply")
	assert.Equal(t, 6*primitives.OneUnit, asset.BalanceOf(acme, did), "balance")
}

func TestBaseTransferOrdering(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	_, bobDID := chain.Identity("bob")
	createAsset(t, chain, alice, acme, false, 100*primitives.OneUnit)

	checker := mocks.NewMockComplianceChecker(ctl)
	asset.SetComplianceChecker(checker)

	from := primitives.DefaultPortfolio(aliceDID)
	to := primitives.DefaultPortfolio(bobDID)
	ctx := chain.Root()

	err := asset.BaseTransfer(ctx, from, to, tokn, primitives.OneUnit)
	assert.Equal(t, fault.ErrNoSuchAsset, err, "no asset")

	err = asset.BaseTransfer(ctx, from, to, acme, primitives.OneUnit-1)
	assert.Equal(t, fault.ErrInvalidGranularity, err, "granularity")

	err = asset.BaseTransfer(ctx, from, to, acme, 101*primitives.OneUnit)
	assert.Equal(t, fault.ErrInsufficientPortfolioBalance, err, "balance")

	err = asset.BaseTransfer(ctx, from, primitives.UserPortfolio(bobDID, 9), acme, primitives.OneUnit)
	assert.Equal(t, fault.ErrPortfolioDoesNotExist, err, "receiving portfolio")

	checker.EXPECT().VerifyTransfer(gomock.Any(), acme, aliceDID, bobDID).Return(fault.ErrInvalidTransferComplianceFailure).Times(1)
	err = asset.BaseTransfer(ctx, from, to, acme, primitives.OneUnit)
	assert.Equal(t, fault.ErrInvalidTransferComplianceFailure, err, "compliance")

	checker.EXPECT().VerifyTransfer(gomock.Any(), acme, aliceDID, bobDID).Return(nil).Times(1)
	err = asset.BaseTransfer(ctx, from, to, acme, primitives.OneUnit)
	assert.Nil(t, err, "transfer of one unit")

	assert.Equal(t, 99*primitives.OneUnit, asset.BalanceOf(acme, aliceDID), "sender")
	assert.Equal(t, primitives.OneUnit, asset.BalanceOf(acme, bobDID), "receiver")
	token, _ := asset.Token(acme)
	assert.Equal(t, 100*primitives.OneUnit, token.TotalSupply, "supply unchanged")

	err = asset.Freeze(chain.As(alice, asset.Pallet, "freeze"), acme)
	assert.Nil(t, err, "freeze")
	err = asset.BaseTransfer(ctx, from, to, acme, primitives.OneUnit)
	assert.Equal(t, fault.ErrInvalidTransferFrozenAsset, err, "frozen")
}

func TestCheckpointSnapshot(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	ctl := allowTransfers(t)
	defer ctl.Finish()

	chain := fixtures.BeginAt(t, 10, fixtures.GenesisMoment+60)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	_, bobDID := chain.Identity("bob")
	createAsset(t, chain, alice, tokn, true, 1000)

	k, err := asset.CreateCheckpoint(chain.As(alice, asset.Pallet, "create_checkpoint"), tokn)
	assert.Nil(t, err, "checkpoint")

	chain.Advance(1, 6)
	err = asset.BaseTransfer(chain.Root(), primitives.DefaultPortfolio(aliceDID), primitives.DefaultPortfolio(bobDID), tokn, 400)
	assert.Nil(t, err, "transfer")

	at, err := asset.BalanceAt(tokn, aliceDID, k)
	assert.Nil(t, err, "alice at k")
	assert.Equal(t, primitives.Balance(1000), at, "alice at k")

	at, err = asset.BalanceAt(tokn, bobDID, k)
	assert.Nil(t, err, "bob at k")
	assert.Equal(t, primitives.Balance(0), at, "bob at k")

	assert.Equal(t, primitives.Balance(600), asset.BalanceOf(tokn, aliceDID), "alice now")
	assert.Equal(t, primitives.Balance(400), asset.BalanceOf(tokn, bobDID), "bob now")

	supply, err := asset.TotalSupplyAt(tokn, k)
	assert.Nil(t, err, "supply at k")
	assert.Equal(t, primitives.Balance(1000), supply, "supply at k")

	// a second checkpoint sees the post-transfer balances
	k2, err := asset.CreateCheckpoint(chain.As(alice, asset.Pallet, "create_checkpoint"), tokn)
	assert.Nil(t, err, "second checkpoint")
	err = asset.BaseTransfer(chain.Root(), primitives.DefaultPortfolio(aliceDID), primitives.DefaultPortfolio(bobDID), tokn, 100)
	assert.Nil(t, err, "second transfer")

	at, _ = asset.BalanceAt(tokn, aliceDID, k)
	assert.Equal(t, primitives.Balance(1000), at, "alice at k unchanged")
	at, _ = asset.BalanceAt(tokn, aliceDID, k2)
	assert.Equal(t, primitives.Balance(600), at, "alice at k2")

	_, err = asset.BalanceAt(tokn, aliceDID, k2+1)
	assert.Equal(t, fault.ErrCheckpointDoesNotExist, err, "future checkpoint")
}

func utc(year int, month time.Month, day int) primitives.Moment {
	return primitives.Moment(time.Date(year, month, day, 0, 1, 0, 0, time.UTC).Unix())
}

func TestMonthlySchedule(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.BeginAt(t, 10, utc(2024, time.January, 1))
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	createAsset(t, chain, alice, acme, true, 1000)

	schedule := calendar.Schedule{
		Start:  utc(2024, time.January, 31),
		Period: calendar.Period{Unit: calendar.Month, Amount: 1},
	}
	id, err := asset.CreateSchedule(chain.As(alice, asset.Pallet, "create_schedule"), acme, schedule, 5)
	assert.Nil(t, err, "create schedule")
	assert.Equal(t, uint64(0), asset.LatestCheckpoint(acme), "start is in the future")

	expected := []primitives.Moment{
		utc(2024, time.January, 31),
		utc(2024, time.February, 29),
		utc(2024, time.March, 31),
		utc(2024, time.April, 30),
		utc(2024, time.May, 31),
	}
	for i, at := range expected {
		// one second early nothing happens
		chain.Advance(1, at-1-chain.Root().Now())
		assert.Nil(t, asset.OnInitialize(chain.Root()), "early initialize")
		assert.Equal(t, uint64(i), asset.LatestCheckpoint(acme), "early: %d", i)

		chain.Advance(1, 1)
		assert.Nil(t, asset.OnInitialize(chain.Root()), "initialize")
		assert.Equal(t, uint64(i+1), asset.LatestCheckpoint(acme), "due: %d", i)

		c, err := asset.GetCheckpoint(acme, uint64(i+1))
		assert.Nil(t, err, "checkpoint")
		assert.Equal(t, at, c.At, "checkpoint moment: %d", i)
		assert.Equal(t, primitives.Balance(1000), c.TotalSupply, "supply")
	}

	_, err = asset.GetSchedule(acme, id)
	assert.Equal(t, fault.ErrScheduleDoesNotExist, err, "schedule completed")
	assert.True(t, chain.HasEvent(asset.Pallet, "ScheduleCompleted"), "completed event")
}

// a block that arrives several periods late takes every missed
// checkpoint at its own moment
func TestLateScheduleBlock(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.BeginAt(t, 10, utc(2024, time.January, 1))
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	createAsset(t, chain, alice, acme, true, 1000)

	daily := calendar.Schedule{
		Start:  utc(2024, time.January, 2),
		Period: calendar.Period{Unit: calendar.Day, Amount: 1},
	}
	open, err := asset.CreateSchedule(chain.As(alice, asset.Pallet, "create_schedule"), acme, daily, 0)
	assert.Nil(t, err, "create open schedule")
	limited, err := asset.CreateSchedule(chain.As(alice, asset.Pallet, "create_schedule"), acme, daily, 2)
	assert.Nil(t, err, "create limited schedule")

	// three and a half days after the first due moment
	chain.Advance(1, utc(2024, time.January, 5)+12*60*60-chain.Root().Now())
	assert.Nil(t, asset.OnInitialize(chain.Root()), "initialize")

	checkpoints := asset.Checkpoints(acme)
	assert.Equal(t, 6, len(checkpoints), "four open plus two limited")

	counts := make(map[primitives.Moment]int)
	for _, c := range checkpoints {
		counts[c.At] += 1
	}
	assert.Equal(t, 2, counts[utc(2024, time.January, 2)], "jan 2")
	assert.Equal(t, 2, counts[utc(2024, time.January, 3)], "jan 3")
	assert.Equal(t, 1, counts[utc(2024, time.January, 4)], "jan 4")
	assert.Equal(t, 1, counts[utc(2024, time.January, 5)], "jan 5")

	s, err := asset.GetSchedule(acme, open)
	assert.Nil(t, err, "open schedule continues")
	assert.Equal(t, 4, len(s.Checkpoints), "open schedule checkpoints")
	assert.Equal(t, utc(2024, time.January, 6), s.NextAt, "next due")

	_, err = asset.GetSchedule(acme, limited)
	assert.Equal(t, fault.ErrScheduleDoesNotExist, err, "limited schedule completed")

	// the next block on time adds exactly one
	chain.Advance(1, utc(2024, time.January, 6)-chain.Root().Now())
	assert.Nil(t, asset.OnInitialize(chain.Root()), "initialize on time")
	assert.Equal(t, 7, len(asset.Checkpoints(acme)), "one more")
}

func TestRemoveSchedule(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.BeginAt(t, 10, utc(2024, time.January, 1))
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	createAsset(t, chain, alice, acme, true, 1000)

	schedule := calendar.Schedule{
		Start:  utc(2024, time.January, 2),
		Period: calendar.Period{Unit: calendar.Day, Amount: 1},
	}
	id, err := asset.CreateSchedule(chain.As(alice, asset.Pallet, "create_schedule"), acme, schedule, 0)
	assert.Nil(t, err, "create")
	assert.Equal(t, 1, len(asset.Schedules(acme)), "listed")

	err = asset.RemoveSchedule(chain.As(alice, asset.Pallet, "remove_schedule"), acme, id)
	assert.Nil(t, err, "remove")

	chain.Advance(1, 2*24*60*60)
	assert.Nil(t, asset.OnInitialize(chain.Root()), "initialize")
	assert.Equal(t, uint64(0), asset.LatestCheckpoint(acme), "no checkpoint after removal")
}

func TestDocuments(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	createAsset(t, chain, alice, acme, true, 0)

	ids, err := asset.AddDocuments(chain.As(alice, asset.Pallet, "add_documents"), acme, []asset.Document{
		{Name: "prospectus", URI: "https://example.com/p.pdf", DocType: "pdf"},
		{Name: "terms", URI: "https://example.com/t.pdf", DocType: "pdf"},
	})
	assert.Nil(t, err, "add")
	assert.Equal(t, []uint32{1, 2}, ids, "ids")

	err = asset.RemoveDocuments(chain.As(alice, asset.Pallet, "remove_documents"), acme, []uint32{1})
	assert.Nil(t, err, "remove")

	documents := asset.Documents(acme)
	assert.Equal(t, 1, len(documents), "one left")
	assert.Equal(t, "terms", documents[0].Name, "remaining")

	err = asset.RemoveDocuments(chain.As(alice, asset.Pallet, "remove_documents"), acme, []uint32{1})
	assert.Equal(t, fault.ErrDocumentDoesNotExist, err, "already removed")
}

func TestMetadata(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, _ := chain.Identity("alice")
	createAsset(t, chain, alice, acme, true, 0)

	global, err := asset.RegisterAssetMetadataGlobalType(chain.Root(), "isin", asset.MetadataSpec{Description: "ISIN"})
	assert.Nil(t, err, "global")

	_, err = asset.RegisterAssetMetadataGlobalType(chain.As(alice, asset.Pallet, "register_asset_metadata_global_type"), "cusip", asset.MetadataSpec{})
	assert.NotNil(t, err, "global keys need root")

	_, err = asset.RegisterAssetMetadataLocalType(chain.As(alice, asset.Pallet, "register_asset_metadata_local_type"), acme, "isin", asset.MetadataSpec{})
	assert.Equal(t, fault.ErrAssetMetadataGlobalKeyAlreadyExists, err, "names unique across kinds")

	local, err := asset.RegisterAssetMetadataLocalType(chain.As(alice, asset.Pallet, "register_asset_metadata_local_type"), acme, "rating", asset.MetadataSpec{})
	assert.Nil(t, err, "local")

	found, ok := asset.MetadataKeyByName(acme, "isin")
	assert.True(t, ok, "by name")
	assert.Equal(t, global, found, "global by name")

	ctx := chain.As(alice, asset.Pallet, "set_asset_metadata")
	err = asset.SetAssetMetadata(ctx, acme, local, []byte("AAA"), &asset.MetadataDetails{
		Lock:        asset.LockedUntil,
		LockedUntil: ctx.Now() + 100,
	})
	assert.Nil(t, err, "set")

	value, details, ok := asset.MetadataValue(acme, local)
	assert.True(t, ok, "value")
	assert.Equal(t, []byte("AAA"), value, "value bytes")
	assert.Equal(t, asset.LockedUntil, details.Lock, "lock")

	err = asset.SetAssetMetadata(ctx, acme, local, []byte("BBB"), nil)
	assert.Equal(t, fault.ErrAssetMetadataValueIsLocked, err, "locked")

	chain.Advance(1, 100)
	err = asset.SetAssetMetadata(chain.As(alice, asset.Pallet, "set_asset_metadata"), acme, local, []byte("BBB"), nil)
	assert.Nil(t, err, "lock expired")

	err = asset.SetAssetMetadata(ctx, acme, asset.MetadataKey{ID: 99}, []byte("x"), nil)
	assert.Equal(t, fault.ErrAssetMetadataKeyIsMissing, err, "unknown key")
}

func TestNonFungible(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	ctl := allowTransfers(t)
	defer ctl.Finish()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	bob, bobDID := chain.Identity("bob")
	art := primitives.MustTicker("ART")

	_, err := asset.CreateNFTCollection(chain.As(alice, asset.Pallet, "create_nft_collection"), art, "Art", nil)
	assert.Nil(t, err, "collection")

	id, err := asset.IssueNFT(chain.As(alice, asset.Pallet, "issue_nft"), art, nil, primitives.DefaultPortfolioNumber)
	assert.Nil(t, err, "issue nft")
	assert.Equal(t, primitives.Balance(1), asset.BalanceOf(art, aliceDID), "counts one")

	err = asset.Issue(chain.As(alice, asset.Pallet, "issue"), art, primitives.OneUnit, primitives.DefaultPortfolioNumber)
	assert.Equal(t, fault.ErrUnexpectedNonFungibleToken, err, "fungible issue")

	from := primitives.DefaultPortfolio(aliceDID)
	to := primitives.DefaultPortfolio(bobDID)
	err = asset.BaseTransfer(chain.Root(), from, to, art, 1)
	assert.Equal(t, fault.ErrUnexpectedNonFungibleToken, err, "fungible transfer")

	err = asset.BaseNFTTransfer(chain.Root(), from, to, art, []uint64{id})
	assert.Nil(t, err, "nft transfer")
	assert.Equal(t, primitives.Balance(0), asset.BalanceOf(art, aliceDID), "sender")
	assert.Equal(t, primitives.Balance(1), asset.BalanceOf(art, bobDID), "receiver")

	err = asset.BaseNFTTransfer(chain.Root(), from, to, art, []uint64{id})
	assert.Equal(t, fault.ErrNFTNotOwnedByPortfolio, err, "no longer owned")

	// between own portfolios a collection moves by id only
	number, err := portfolio.CreatePortfolio(chain.As(bob, portfolio.Pallet, "create_portfolio"), "vault")
	assert.Nil(t, err, "bob portfolio")
	vault := primitives.UserPortfolio(bobDID, number)
	move := chain.As(bob, portfolio.Pallet, "move_portfolio_funds")

	err = portfolio.MovePortfolioFunds(move, to, vault, []portfolio.Fund{{Ticker: art, Amount: 1}})
	assert.Equal(t, fault.ErrUnexpectedNonFungibleToken, err, "amount of a collection")
	assert.Equal(t, primitives.Balance(1), portfolio.Balance(to, art), "balance stays with the token")
	assert.Equal(t, primitives.Balance(0), portfolio.Balance(vault, art), "nothing arrived")

	err = portfolio.MovePortfolioFunds(move, to, vault, []portfolio.Fund{{Ticker: art, NFTs: []uint64{id}}})
	assert.Nil(t, err, "move by id")
	assert.True(t, portfolio.HasNFT(vault, art, id), "token moved")
	assert.Equal(t, primitives.Balance(1), portfolio.Balance(vault, art), "balance moved with it")
}

func TestAgents(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	alice, aliceDID := chain.Identity("alice")
	bob, bobDID := chain.Identity("bob")
	createAsset(t, chain, alice, acme, true, 0)

	err := asset.Abdicate(chain.As(alice, asset.Pallet, "abdicate"), acme)
	assert.Equal(t, fault.ErrRemovingLastFullAgent, err, "last full agent")

	id, err := identity.AddAuthorization(
		chain.As(alice, identity.Pallet, "add_authorization"),
		primitives.IdentitySignatory(bobDID),
		primitives.BecomeAgent(acme, primitives.AgentExceptMeta),
		0,
	)
	assert.Nil(t, err, "offer")
	err = identity.AcceptAuthorization(chain.As(bob, identity.Pallet, "accept_authorization"), id)
	assert.Nil(t, err, "accept")

	group, ok := asset.AgentGroup(acme, bobDID)
	assert.True(t, ok, "agent")
	assert.Equal(t, primitives.AgentExceptMeta, group, "group")

	err = asset.Issue(chain.As(bob, asset.Pallet, "issue"), acme, 10, primitives.DefaultPortfolioNumber)
	assert.Nil(t, err, "except-meta agent issues")

	err = asset.RemoveAgent(chain.As(bob, asset.Pallet, "remove_agent"), acme, aliceDID)
	assert.Equal(t, fault.ErrUnauthorizedAgent, err, "except-meta cannot manage agents")

	err = asset.RemoveAgent(chain.As(alice, asset.Pallet, "remove_agent"), acme, bobDID)
	assert.Nil(t, err, "remove")
	_, ok = asset.AgentGroup(acme, bobDID)
	assert.False(t, ok, "removed")

	err = asset.AddMandatoryMediators(chain.As(alice, asset.Pallet, "add_mandatory_mediators"), acme, []primitives.DID{bobDID})
	assert.Nil(t, err, "mediators")
	assert.Equal(t, []primitives.DID{bobDID}, asset.MandatoryMediators(acme), "mediator list")
}
