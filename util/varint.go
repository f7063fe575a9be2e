// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding of a uint64
const Varint64MaximumBytes = 9

// ToVarint64 - little endian groups of 7 bits, the high bit set while
// more bytes follow
//
// a ninth byte carries the top 8 bits whole
func ToVarint64(value uint64) []byte {
	buffer := make([]byte, 0, Varint64MaximumBytes)
	for n := 1; n < Varint64MaximumBytes && value >= 0x80; n += 1 {
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// FromVarint64 - decode the front of buffer, returning the value and
// the bytes consumed or 0, 0 when the buffer ends early
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		shift := 7 * uint(i)
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<shift, i + 1
		}
		value |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			return value, i + 1
		}
	}
	return 0, 0
}
