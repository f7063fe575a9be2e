// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter
	assert.True(t, c.IsZero(), "zero at start")

	for i := 0; i < 5; i += 1 {
		c.Increment()
	}
	assert.Equal(t, uint64(5), c.Uint64(), "after increments")

	for i := 0; i < 5; i += 1 {
		c.Decrement()
	}
	assert.True(t, c.IsZero(), "back to zero")

	c.Decrement()
	assert.Equal(t, ^uint64(0), c.Uint64(), "two's complement underflow")
}

func TestAcquire(t *testing.T) {
	var c counter.Counter
	const maximum = 10

	var wg sync.WaitGroup
	var admitted counter.Counter
	for i := 0; i < 100; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Acquire(maximum) {
				admitted.Increment()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(maximum), admitted.Uint64(), "admitted")
	assert.Equal(t, uint64(maximum), c.Uint64(), "held")

	c.Decrement()
	assert.True(t, c.Acquire(maximum), "slot released")
}
