// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - ticker registry and balance ledger
//
// Balances are kept twice: per identity in the Balances pool and per
// portfolio by the portfolio module.  Every mutation goes through this
// package so that the sum of the portfolio balances of an identity always
// equals its identity balance, and so that the lazy checkpoint snapshot is
// taken before the first change after a checkpoint.
package asset
