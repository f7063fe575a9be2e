// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/limitedset"
	"github.com/polymesh-go/polymeshd/merkle"
)

func digest(s string) merkle.Digest {
	return merkle.NewDigest([]byte(s))
}

func TestAddition(t *testing.T) {
	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	expected := []string{
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	check(t, items, expected)
}

func TestRefresh(t *testing.T) {
	// re-adding the oldest keeps it while the next oldest goes
	items := []string{"one", "two", "three", "one", "four"}
	expected := []string{"three", "one", "four"}
	check(t, items, expected)

	// re-adding from the middle
	items = []string{"one", "two", "three", "two", "four", "five"}
	expected = []string{"two", "four", "five"}
	check(t, items, expected)
}

func TestInvalidSize(t *testing.T) {
	assert.Nil(t, limitedset.New(0), "zero size")
}

// add a list of items and check that all the expected ones are present
// and every other input is gone
func check(t *testing.T, items []string, expected []string) {
	s := limitedset.New(len(expected))
	if nil == s {
		t.Fatalf("failed to create a limitedset of size: %d", len(expected))
	}

	for _, d := range items {
		s.Add(digest(d))
	}

	present := make(map[string]struct{})
	for i, d := range expected {
		present[d] = struct{}{}
		if !s.Exists(digest(d)) {
			t.Errorf("item[%d] missing: %q", i, d)
		}
	}

	for i, d := range items {
		if _, ok := present[d]; ok {
			continue
		}
		if s.Exists(digest(d)) {
			t.Errorf("item[%d] present: %q", i, d)
		}
	}
	assert.Equal(t, len(expected), s.Len(), "length")
}
