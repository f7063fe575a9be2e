// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package system - the execution context shared by every module
//
// A Context carries the block number, the block moment, the origin of the
// call being executed, a weight meter and the open storage transaction.
// Modules never touch the transaction directly; nested scopes go through
// Transactional and events through Deposit so that both are discarded
// together with a failing call.
package system
