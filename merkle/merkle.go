// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// FullMerkleTree - compute a merkle tree from a set of extrinsic hashes
//
// structure is:
//   1. N * extrinsic digests
//   2. level 1..m digests
//   3. merkle root digest
func FullMerkleTree(ids []Digest) []Digest {

	// compute length of ids + all tree levels including root
	idCount := len(ids)

	totalLength := 1 // all ids + space for the final root
	for n := idCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	// add initial ids
	tree := make([]Digest, totalLength)
	copy(tree[:], ids)

	n := idCount
	j := 0
	for workLength := idCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = NewDigest(append(tree[j][:], tree[k][:]...))
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the last entry of the full tree
//
// a block without extrinsics has the zero root
func Root(ids []Digest) Digest {
	if 0 == len(ids) {
		return Digest{}
	}
	tree := FullMerkleTree(ids)
	return tree[len(tree)-1]
}
