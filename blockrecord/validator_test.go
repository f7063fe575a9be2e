// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/merkle"
)

func TestValidBlockLinkage(t *testing.T) {
	d := merkle.NewDigest([]byte("parent"))
	assert.Equal(t, nil, blockrecord.ValidBlockLinkage(d, d), "same digest")
	assert.Equal(t, fault.ErrPreviousBlockDigestMismatch, blockrecord.ValidBlockLinkage(d, merkle.Digest{}), "other digest")
}

func TestValidNextHeight(t *testing.T) {
	assert.Equal(t, nil, blockrecord.ValidNextHeight(4, 5), "next")
	assert.Equal(t, fault.ErrHeightOutOfSequence, blockrecord.ValidNextHeight(4, 4), "same height")
	assert.Equal(t, fault.ErrHeightOutOfSequence, blockrecord.ValidNextHeight(4, 6), "gap")
}

func TestValidNext(t *testing.T) {
	current := &blockrecord.Header{Version: blockrecord.Version, Number: 7, Moment: 1000}
	digest := current.Digest()

	next := &blockrecord.Header{Version: blockrecord.Version, Number: 8, Moment: 1006, PreviousBlock: digest}
	assert.Equal(t, nil, blockrecord.ValidNext(current, digest, next), "valid")

	next.Moment = 999
	assert.Equal(t, fault.ErrBlockMomentRegressed, blockrecord.ValidNext(current, digest, next), "moment")

	next.Moment = 1006
	next.PreviousBlock = merkle.Digest{}
	assert.Equal(t, fault.ErrPreviousBlockDigestMismatch, blockrecord.ValidNext(current, digest, next), "linkage")
}

func TestHeaderDigest(t *testing.T) {
	h := blockrecord.Header{Version: blockrecord.Version, Number: 1, Moment: 10}
	d1 := h.Digest()
	h.EventCount = 1
	assert.NotEqual(t, d1, h.Digest(), "every field is covered")
}
