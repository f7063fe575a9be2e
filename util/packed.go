// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Packed - an unambiguous byte encoding used for signing payloads
//
// numbers are Varint64, byte strings are length prefixed
type Packed []byte

// AppendUint64 - add a Varint64
func (p Packed) AppendUint64(value uint64) Packed {
	return append(p, ToVarint64(value)...)
}

// AppendBytes - add a length prefixed byte string
func (p Packed) AppendBytes(data []byte) Packed {
	p = p.AppendUint64(uint64(len(data)))
	return append(p, data...)
}

// AppendString - add a length prefixed string
func (p Packed) AppendString(s string) Packed {
	return p.AppendBytes([]byte(s))
}
