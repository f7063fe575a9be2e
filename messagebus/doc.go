// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - broadcast of committed blocks and their events
// to in-process subscribers such as indexers and RPC watchers
package messagebus
