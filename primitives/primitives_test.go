// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
)

func TestTickerVerify(t *testing.T) {
	tests := []struct {
		raw     []byte
		maximum int
		err     error
	}{
		{[]byte("ACME"), 12, nil},
		{[]byte("A_B-C.D/E09"), 12, nil},
		{[]byte("ABCDABCDABCD"), 12, nil},
		{[]byte("ABCDEFGH"), 8, nil},
		{[]byte("ABCDEFGHI"), 8, fault.ErrTickerTooLong},
		{[]byte("AB$"), 12, fault.ErrInvalidTickerCharacter},
		{[]byte("acme"), 12, fault.ErrInvalidTickerCharacter},
		{[]byte{'A', 0, 'B'}, 12, fault.ErrInvalidTickerCharacter},
		{[]byte{0, 'A'}, 12, fault.ErrTickerFirstByteNotValid},
		{[]byte{}, 12, fault.ErrTickerFirstByteNotValid},
	}

	for i, item := range tests {
		var ticker primitives.Ticker
		copy(ticker[:], item.raw)
		err := ticker.Verify(item.maximum)
		if item.err != err {
			t.Errorf("%d: %q  error: %v  expected: %v", i, item.raw, err, item.err)
		}
	}
}

func TestNewTicker(t *testing.T) {
	ticker, err := primitives.NewTicker("acme")
	assert.Nil(t, err, "lower case is upper cased")
	assert.Equal(t, "ACME", ticker.String(), "string form drops padding")
	assert.Equal(t, 4, ticker.Len(), "length")

	_, err = primitives.NewTicker("ABCDEFGHIJKLM")
	assert.Equal(t, fault.ErrTickerTooLong, err, "13 bytes")

	b, _ := json.Marshal(ticker)
	assert.Equal(t, `"ACME"`, string(b), "json text")
}

func TestPortfolioBytes(t *testing.T) {
	did := primitives.DID{1, 2, 3}
	p := primitives.UserPortfolio(did, 7)
	q, err := primitives.PortfolioIDFromBytes(p.Bytes())
	assert.Nil(t, err, "decode")
	assert.Equal(t, p, q, "round trip")
	assert.True(t, primitives.DefaultPortfolio(did).IsDefault(), "default")
	assert.True(t, primitives.DefaultPortfolio(did).Compare(p) < 0, "default sorts first")
}

func TestSignatoryBytes(t *testing.T) {
	key := account.Key{9, 9}
	for _, s := range []primitives.Signatory{
		primitives.IdentitySignatory(primitives.DID{4}),
		primitives.AccountSignatory(key),
	} {
		r, err := primitives.SignatoryFromBytes(s.Bytes())
		assert.Nil(t, err, "decode")
		assert.Equal(t, s, r, "round trip")
	}
	assert.NotEqual(t,
		primitives.IdentitySignatory(primitives.DID{4}).Bytes(),
		primitives.AccountSignatory(account.Key{4}).Bytes(),
		"kinds do not collide")
}

func TestPermissions(t *testing.T) {
	acme := primitives.MustTicker("ACME")
	usdc := primitives.MustTicker("USDC")
	did := primitives.DID{1}

	whole := primitives.WholePermissions()
	assert.True(t, whole.AllowsAsset(acme), "whole asset")
	assert.True(t, whole.AllowsPortfolio(primitives.UserPortfolio(did, 3)), "whole portfolio")
	assert.True(t, whole.AllowsCall("Settlement", "affirm_instruction"), "whole extrinsic")

	p := primitives.Permissions{
		Asset:     primitives.AssetPermissions{Tickers: []primitives.Ticker{usdc, acme, acme}},
		Portfolio: primitives.PortfolioPermissions{Portfolios: []primitives.PortfolioID{primitives.DefaultPortfolio(did)}},
		Extrinsic: primitives.ExtrinsicPermissions{Calls: []string{"Settlement.*", "Asset.issue"}},
	}.Normalise()

	assert.Equal(t, 2, len(p.Asset.Tickers), "duplicates removed")
	assert.Equal(t, acme, p.Asset.Tickers[0], "sorted")
	assert.True(t, p.AllowsAsset(acme), "listed asset")
	assert.False(t, p.AllowsAsset(primitives.MustTicker("OTHER")), "unlisted asset")
	assert.True(t, p.AllowsPortfolio(primitives.DefaultPortfolio(did)), "listed portfolio")
	assert.False(t, p.AllowsPortfolio(primitives.UserPortfolio(did, 1)), "unlisted portfolio")
	assert.True(t, p.AllowsCall("Settlement", "reject_instruction"), "pallet wildcard")
	assert.True(t, p.AllowsCall("Asset", "issue"), "exact call")
	assert.False(t, p.AllowsCall("Asset", "redeem"), "unlisted call")

	empty := primitives.EmptyPermissions()
	assert.False(t, empty.AllowsAsset(acme), "empty asset")
	assert.False(t, empty.AllowsCall("Asset", "issue"), "empty extrinsic")
}

func TestClaimMatches(t *testing.T) {
	acme := primitives.MustTicker("ACME")
	anyCdd := primitives.CddClaim(primitives.CddID{})
	stored := primitives.CddClaim(primitives.CddID{5})
	assert.True(t, anyCdd.Matches(stored), "zero cdd id matches any")
	assert.False(t, primitives.CddClaim(primitives.CddID{6}).Matches(stored), "specific cdd id")

	us := primitives.JurisdictionClaim("US", primitives.TickerScope(acme))
	assert.True(t, us.Matches(primitives.JurisdictionClaim("US", primitives.TickerScope(acme))), "same jurisdiction")
	assert.False(t, us.Matches(primitives.JurisdictionClaim("GB", primitives.TickerScope(acme))), "other jurisdiction")
	assert.False(t, us.Matches(primitives.JurisdictionClaim("US", primitives.IdentityScope(primitives.DID{1}))), "other scope")

	kyc := primitives.ScopedClaim(primitives.ClaimKnowYourCustomer, primitives.TickerScope(acme))
	assert.False(t, kyc.Matches(us), "other type")
}

func TestDeriveDID(t *testing.T) {
	key := account.Key{1}
	assert.NotEqual(t, primitives.DeriveDID(1, key), primitives.DeriveDID(2, key), "nonce")
	assert.Equal(t, primitives.DeriveDID(1, key), primitives.DeriveDID(1, key), "deterministic")

	var d primitives.DID
	err := d.UnmarshalText([]byte(primitives.DeriveDID(1, key).String()))
	assert.Nil(t, err, "text")
	assert.Equal(t, primitives.DeriveDID(1, key), d, "text round trip")
}
