// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"bytes"
	"sort"
)

// AssetPermissions - whole or an explicit set of tickers
type AssetPermissions struct {
	Whole   bool
	Tickers []Ticker
}

// PortfolioPermissions - whole or an explicit set of portfolios
type PortfolioPermissions struct {
	Whole      bool
	Portfolios []PortfolioID
}

// ExtrinsicPermissions - whole or an explicit set of calls
//
// a call is "Pallet.method", "Pallet.*" allows the whole pallet
type ExtrinsicPermissions struct {
	Whole bool
	Calls []string
}

// Permissions - what a secondary key may touch
type Permissions struct {
	Asset     AssetPermissions
	Portfolio PortfolioPermissions
	Extrinsic ExtrinsicPermissions
}

// WholePermissions - everything, as held by a primary key
func WholePermissions() Permissions {
	return Permissions{
		Asset:     AssetPermissions{Whole: true},
		Portfolio: PortfolioPermissions{Whole: true},
		Extrinsic: ExtrinsicPermissions{Whole: true},
	}
}

// EmptyPermissions - nothing at all
func EmptyPermissions() Permissions {
	return Permissions{}
}

// AllowsAsset - asset scope check
func (p Permissions) AllowsAsset(ticker Ticker) bool {
	if p.Asset.Whole {
		return true
	}
	for _, t := range p.Asset.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}

// AllowsPortfolio - portfolio scope check
func (p Permissions) AllowsPortfolio(portfolio PortfolioID) bool {
	if p.Portfolio.Whole {
		return true
	}
	for _, id := range p.Portfolio.Portfolios {
		if id == portfolio {
			return true
		}
	}
	return false
}

// AllowsCall - extrinsic scope check
func (p Permissions) AllowsCall(pallet string, method string) bool {
	if p.Extrinsic.Whole {
		return true
	}
	for _, c := range p.Extrinsic.Calls {
		if c == pallet+".*" || c == pallet+"."+method {
			return true
		}
	}
	return false
}

// Normalise - sort and remove duplicates so that equal sets store equally
func (p Permissions) Normalise() Permissions {
	if p.Asset.Whole {
		p.Asset.Tickers = nil
	} else {
		tickers := append([]Ticker(nil), p.Asset.Tickers...)
		sort.Slice(tickers, func(i, j int) bool {
			return bytes.Compare(tickers[i][:], tickers[j][:]) < 0
		})
		p.Asset.Tickers = make([]Ticker, 0, len(tickers))
		for i, t := range tickers {
			if 0 == i || t != tickers[i-1] {
				p.Asset.Tickers = append(p.Asset.Tickers, t)
			}
		}
	}

	if p.Portfolio.Whole {
		p.Portfolio.Portfolios = nil
	} else {
		portfolios := append([]PortfolioID(nil), p.Portfolio.Portfolios...)
		sort.Slice(portfolios, func(i, j int) bool {
			return portfolios[i].Compare(portfolios[j]) < 0
		})
		p.Portfolio.Portfolios = make([]PortfolioID, 0, len(portfolios))
		for i, id := range portfolios {
			if 0 == i || id != portfolios[i-1] {
				p.Portfolio.Portfolios = append(p.Portfolio.Portfolios, id)
			}
		}
	}

	if p.Extrinsic.Whole {
		p.Extrinsic.Calls = nil
	} else {
		calls := append([]string(nil), p.Extrinsic.Calls...)
		sort.Strings(calls)
		p.Extrinsic.Calls = make([]string, 0, len(calls))
		for i, c := range calls {
			if 0 == i || c != calls[i-1] {
				p.Extrinsic.Calls = append(p.Extrinsic.Calls, c)
			}
		}
	}
	return p
}
