// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"

	"github.com/polymesh-go/polymeshd/merkle"
)

func TestScanFmt(t *testing.T) {

	stringDigest := "00000000440b921e1b77c6c0487ae5616de67f788f44ae2a5af6e2194d16b6f8"

	var d merkle.Digest
	n, err := fmt.Sscan(stringDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	assert.Equal(t, byte(0x00), d[0], "first byte")
	assert.Equal(t, byte(0xf8), d[31], "last byte")
	assert.Equal(t, stringDigest, fmt.Sprintf("%s", d), "string")
	assert.Equal(t, "<blake2b-256:"+stringDigest+">", fmt.Sprintf("%#v", d), "go string")
}

func TestDigest(t *testing.T) {
	s := []byte("hello world")
	d := merkle.NewDigest(s)
	assert.Equal(t, merkle.Digest(blake2b.Sum256(s)), d, "blake2b-256")
	assert.False(t, d.IsZero(), "not zero")
	assert.True(t, merkle.Digest{}.IsZero(), "zero")
}

func TestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("block"))
	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal")

	var r merkle.Digest
	err = json.Unmarshal(buffer, &r)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, d, r, "json")

	err = json.Unmarshal([]byte(`"0102"`), &r)
	assert.NotNil(t, err, "short text")
}

func TestDigestFromBytes(t *testing.T) {
	var d merkle.Digest
	assert.NotNil(t, merkle.DigestFromBytes(&d, []byte{1, 2, 3}), "short")
	b := make([]byte, merkle.DigestLength)
	b[0] = 7
	assert.Nil(t, merkle.DigestFromBytes(&d, b), "full length")
	assert.Equal(t, byte(7), d[0], "copied")
}
