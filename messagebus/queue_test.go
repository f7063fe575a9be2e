// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/messagebus"
)

func TestBroadcast(t *testing.T) {

	items := []string{"c1", "c2", "c3"}

	// nothing listening so these messages should be dropped
	var q messagebus.BroadcastQueue
	for _, item := range items {
		q.Send("ignored:" + item)
	}

	// create some listeners
	const listeners = 5

	var l [listeners]int
	var wg sync.WaitGroup
	queues := make([]<-chan messagebus.Message, listeners)
	for i := range queues {
		queues[i] = q.Chan(0)
	}

	for i := 0; i < listeners; i += 1 {
		wg.Add(1)
		go func(n int) {
			for _, item := range items {
				received := <-queues[n]
				if received.Command != item {
					t.Errorf("actual: %q  expected: %q", received.Command, item)
				} else {
					l[n] += 1
				}
			}
			wg.Done()
		}(i)
	}

	// all listening so these messages should be received
	for _, item := range items {
		q.Send(item, 1, "two")
	}

	// wait for completion
	wg.Wait()
	for i, n := range l {
		if n != len(items) {
			t.Errorf("listener[%d] received: %d  expected: %d", i, n, len(items))
		}
	}
}

func TestSlowListener(t *testing.T) {
	var q messagebus.BroadcastQueue
	c := q.Chan(1)

	q.Send("first")
	q.Send("second")

	received := <-c
	assert.Equal(t, "first", received.Command, "buffered message")
	assert.Equal(t, uint64(1), q.Dropped(), "second message dropped")
}

func TestRelease(t *testing.T) {
	var q messagebus.BroadcastQueue
	c := q.Chan(2)
	assert.Equal(t, 1, q.Listeners(), "registered")

	q.Release(c)
	assert.Equal(t, 0, q.Listeners(), "released")

	_, ok := <-c
	assert.False(t, ok, "channel closed")

	// no listeners left, must not block
	q.Send("after")
}
