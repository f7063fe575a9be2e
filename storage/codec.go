// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/ugorji/go/codec"

	"github.com/bitmark-inc/logger"
)

// canonical CBOR so that equal records always have equal bytes
var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// Pack - encode a record
func Pack(record interface{}) ([]byte, error) {
	var buffer []byte
	err := codec.NewEncoderBytes(&buffer, cborHandle).Encode(record)
	if nil != err {
		return nil, err
	}
	return buffer, nil
}

// Unpack - decode a record
func Unpack(buffer []byte, record interface{}) error {
	return codec.NewDecoderBytes(buffer, cborHandle).Decode(record)
}

// PutRecord - encode and store a record
func (p *PoolHandle) PutRecord(key []byte, record interface{}) {
	buffer, err := Pack(record)
	logger.PanicIfError("pool.PutRecord", err)
	p.Put(key, buffer)
}

// GetRecord - fetch and decode a record
//
// returns false if the key is not present, panics on a corrupt record
func (p *PoolHandle) GetRecord(key []byte, record interface{}) bool {
	buffer := p.Get(key)
	if nil == buffer {
		return false
	}
	err := Unpack(buffer, record)
	if nil != err {
		logger.Panicf("pool.GetRecord: %q corrupt record for: %x  error: %s", p.prefix, key, err)
	}
	return true
}
