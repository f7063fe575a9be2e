// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/merkle"
)

// ValidBlockLinkage - the new header must point at the current head
func ValidBlockLinkage(currentDigest merkle.Digest, incomingDigestOfPreviousBlock merkle.Digest) error {
	if currentDigest != incomingDigestOfPreviousBlock {
		return fault.ErrPreviousBlockDigestMismatch
	}
	return nil
}

// ValidNextHeight - blocks are numbered consecutively
func ValidNextHeight(currentHeight uint64, nextHeight uint64) error {
	if nextHeight != currentHeight+1 {
		return fault.ErrHeightOutOfSequence
	}
	return nil
}

// ValidMoment - the block moment never goes backwards
func ValidMoment(current *Header, incoming *Header) error {
	if incoming.Moment < current.Moment {
		return fault.ErrBlockMomentRegressed
	}
	return nil
}

// ValidNext - all the checks of a header against the current head
func ValidNext(current *Header, currentDigest merkle.Digest, incoming *Header) error {
	if err := ValidNextHeight(current.Number, incoming.Number); nil != err {
		return err
	}
	if err := ValidBlockLinkage(currentDigest, incoming.PreviousBlock); nil != err {
		return err
	}
	return ValidMoment(current, incoming)
}
