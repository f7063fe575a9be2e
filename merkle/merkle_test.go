// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/merkle"
)

func pair(a merkle.Digest, b merkle.Digest) merkle.Digest {
	return merkle.NewDigest(append(a[:], b[:]...))
}

func TestRoot(t *testing.T) {
	a := merkle.NewDigest([]byte("a"))
	b := merkle.NewDigest([]byte("b"))
	c := merkle.NewDigest([]byte("c"))

	assert.True(t, merkle.Root(nil).IsZero(), "empty")
	assert.Equal(t, a, merkle.Root([]merkle.Digest{a}), "single")
	assert.Equal(t, pair(a, b), merkle.Root([]merkle.Digest{a, b}), "two")

	// odd count duplicates the last entry of a level
	expected := pair(pair(a, b), pair(c, c))
	assert.Equal(t, expected, merkle.Root([]merkle.Digest{a, b, c}), "three")
}

func TestFullTreeLength(t *testing.T) {
	ids := make([]merkle.Digest, 5)
	for i := range ids {
		ids[i] = merkle.NewDigest([]byte{byte(i)})
	}
	// 5 ids + 3 + 2 + 1 root
	tree := merkle.FullMerkleTree(ids)
	assert.Equal(t, 11, len(tree), "tree length")
	assert.Equal(t, ids[4], tree[4], "leaves first")
}
