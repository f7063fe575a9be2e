// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset

import (
	"container/ring"
	"sync"

	"github.com/polymesh-go/polymeshd/merkle"
)

// LimitedSet - the most recent n digests, the oldest is forgotten first
type LimitedSet struct {
	sync.Mutex
	ring *ring.Ring
	hash map[merkle.Digest]*ring.Ring
}

// New - create a set that holds up to n digests
func New(n int) *LimitedSet {
	if n <= 0 {
		return nil
	}
	return &LimitedSet{
		ring: ring.New(n),
		hash: make(map[merkle.Digest]*ring.Ring, n),
	}
}

// Add - remember a digest, adding one already present refreshes it
func (ls *LimitedSet) Add(item merkle.Digest) {
	ls.Lock()
	defer ls.Unlock()

	if r, ok := ls.hash[item]; ok {
		switch r {
		case ls.ring.Prev():
			return
		case ls.ring:
			ls.ring = ls.ring.Next()
			return
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return
	}
	if old, ok := ls.ring.Value.(merkle.Digest); ok {
		delete(ls.hash, old)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
}

// Exists - true if the digest is still remembered
func (ls *LimitedSet) Exists(item merkle.Digest) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Len - number of digests remembered
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
