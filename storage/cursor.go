// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/polymesh-go/polymeshd/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool   *PoolHandle
	prefix []byte
	start  []byte
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor(prefix []byte) *FetchCursor {
	return &FetchCursor{
		pool:   p,
		prefix: prefix,
	}
}

// Seek - move cursor to specific key position within the prefix
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.start = key
	return cursor
}

// Fetch - return up to count elements and advance past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	elements := cursor.pool.ElementsFrom(cursor.prefix, cursor.start)
	if len(elements) > count {
		elements = elements[:count]
	}

	if n := len(elements); n > 0 {
		last := elements[n-1].Key[len(cursor.prefix):]
		next := make([]byte, len(last)+1) // smallest key after last
		copy(next, last)
		cursor.start = next
	}
	return elements, nil
}

// Map - run a function on all remaining elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	for _, e := range cursor.pool.ElementsFrom(cursor.prefix, cursor.start) {
		if err := f(e.Key, e.Value); nil != err {
			return err
		}
	}
	return nil
}
