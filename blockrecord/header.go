// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/util"
)

// Version - current header layout
const Version = 1

// GenesisBlockNumber - genesis state is written as block zero
const GenesisBlockNumber = 0

// Header - the record written by on_finalize
type Header struct {
	Version        uint16            `json:"version"`
	Number         uint64            `json:"number,string"`
	Moment         primitives.Moment `json:"moment,string"`
	PreviousBlock  merkle.Digest     `json:"previousBlock"`
	ExtrinsicsRoot merkle.Digest     `json:"extrinsicsRoot"`
	ExtrinsicCount uint32            `json:"extrinsicCount"`
	EventCount     uint32            `json:"eventCount"`
}

// Pack - deterministic byte form used for the block digest
func (h *Header) Pack() util.Packed {
	buffer := util.Packed{}.
		AppendUint64(uint64(h.Version)).
		AppendUint64(h.Number).
		AppendUint64(uint64(h.Moment)).
		AppendBytes(h.PreviousBlock[:]).
		AppendBytes(h.ExtrinsicsRoot[:]).
		AppendUint64(uint64(h.ExtrinsicCount)).
		AppendUint64(uint64(h.EventCount))
	return buffer
}

// Digest - blake2b of the packed header
func (h *Header) Digest() merkle.Digest {
	return merkle.NewDigest(h.Pack())
}

var (
	heightKey = []byte("height")
	digestKey = []byte("last-block-digest")
)

// Put - store a header and make it the chain head
//
// must be called inside the block transaction
func Put(h *Header) {
	digest := h.Digest()
	storage.Pool.Blocks.PutRecord(primitives.Uint64Bytes(h.Number), h)
	storage.Pool.System.PutN(heightKey, h.Number)
	storage.Pool.System.Put(digestKey, digest[:])
}

// Get - fetch the header of a block
func Get(number uint64) (*Header, bool) {
	var h Header
	if !storage.Pool.Blocks.GetRecord(primitives.Uint64Bytes(number), &h) {
		return nil, false
	}
	return &h, true
}

// Height - number of the chain head and whether any block exists
func Height() (uint64, bool) {
	return storage.Pool.System.GetN(heightKey)
}

// Head - the header of the chain head and its digest
func Head() (*Header, merkle.Digest, bool) {
	height, ok := Height()
	if !ok {
		return nil, merkle.Digest{}, false
	}
	h, ok := Get(height)
	if !ok {
		return nil, merkle.Digest{}, false
	}
	var digest merkle.Digest
	if nil != merkle.DigestFromBytes(&digest, storage.Pool.System.Get(digestKey)) {
		digest = h.Digest()
	}
	return h, digest, true
}
