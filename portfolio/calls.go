// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio

import (
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// NameArgs - arguments of create_portfolio
type NameArgs struct {
	Name string
}

// NumberArgs - arguments of delete_portfolio and rename_portfolio
type NumberArgs struct {
	Number primitives.PortfolioNumber
	Name   string
}

// MoveArgs - arguments of move_portfolio_funds
type MoveArgs struct {
	From  primitives.PortfolioID
	To    primitives.PortfolioID
	Funds []Fund
}

// PortfolioArgs - a single portfolio
type PortfolioArgs struct {
	Portfolio primitives.PortfolioID
}

// AuthorizationIDArgs - an authorization id
type AuthorizationIDArgs struct {
	ID uint64
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"create_portfolio": func(ctx *system.Context, call system.Call) error {
			var args NameArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreatePortfolio(ctx, args.Name)
			return err
		},
		"delete_portfolio": func(ctx *system.Context, call system.Call) error {
			var args NumberArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return DeletePortfolio(ctx, args.Number)
		},
		"rename_portfolio": func(ctx *system.Context, call system.Call) error {
			var args NumberArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RenamePortfolio(ctx, args.Number, args.Name)
		},
		"move_portfolio_funds": func(ctx *system.Context, call system.Call) error {
			var args MoveArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return MovePortfolioFunds(ctx, args.From, args.To, args.Funds)
		},
		"quit_portfolio_custody": func(ctx *system.Context, call system.Call) error {
			var args PortfolioArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return QuitPortfolioCustody(ctx, args.Portfolio)
		},
		"accept_portfolio_custody": func(ctx *system.Context, call system.Call) error {
			var args AuthorizationIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AcceptPortfolioCustody(ctx, args.ID)
		},
	}
}
