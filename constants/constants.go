// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// the time for a queued extrinsic to expire, usually its nonce was skipped
const (
	PendingTimeout = 30 * time.Minute
)

// how often the pending queue is scanned for expired extrinsics
const (
	PendingExpiryInterval = 1 * time.Minute
)

// the default time between blocks
const (
	BlockInterval = 6 * time.Second
)
