// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package runtime - the state transition function
//
// owns the module lifecycle, routes calls by "Pallet.method", checks
// extrinsic signatures and nonces, and produces blocks: hooks first,
// then each extrinsic in its own savepoint, then the block record,
// all committed as a single batch
package runtime
