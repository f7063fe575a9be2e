// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
	"sync/atomic"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command with its parameters
type Message struct {
	Command    string
	Parameters []interface{}
}

// BroadcastQueue - every listener receives every message sent while it
// is listening
//
// a listener that falls behind by more than its buffer loses messages
// rather than blocking the sender
type BroadcastQueue struct {
	sync.RWMutex
	listeners []chan Message
	dropped   uint64
}

// Bus - the queues of the node
var Bus struct {
	Broadcast BroadcastQueue
}

// Send - deliver a message to all current listeners
func (queue *BroadcastQueue) Send(command string, parameters ...interface{}) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}
	queue.RLock()
	defer queue.RUnlock()
	for _, listener := range queue.listeners {
		select {
		case listener <- m:
		default:
			atomic.AddUint64(&queue.dropped, 1)
		}
	}
}

// Chan - register a new listener, size zero selects the default buffer
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)
	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()
	return c
}

// Release - remove a listener and close its channel
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()
	for i, listener := range queue.listeners {
		if (<-chan Message)(listener) == c {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			close(listener)
			return
		}
	}
}

// Listeners - number of registered listeners
func (queue *BroadcastQueue) Listeners() int {
	queue.RLock()
	defer queue.RUnlock()
	return len(queue.listeners)
}

// Dropped - messages not delivered to a full listener
func (queue *BroadcastQueue) Dropped() uint64 {
	return atomic.LoadUint64(&queue.dropped)
}
