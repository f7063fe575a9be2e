// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - the errors a call can fail with
//
// every error is a single typed instance so callers compare with ==,
// the type (invalid, not found, process...) groups them for the rpc
// layer and the receipts
package fault
