// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package system

import (
	"fmt"

	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
)

// Event - a state transition notice for indexers
type Event struct {
	Block  uint64   `json:"block"`
	Index  uint32   `json:"index"`
	Pallet string   `json:"pallet"`
	Name   string   `json:"name"`
	Args   []string `json:"args"`
}

// counter of events in a block, kept in storage so that it rolls back
func eventCountKey(block uint64) []byte {
	return primitives.Key([]byte("event-count"), primitives.Uint64Bytes(block))
}

// Deposit - record an event in the current block
func (c *Context) Deposit(pallet string, name string, args ...interface{}) {
	countKey := eventCountKey(c.block)
	n, _ := storage.Pool.System.GetN(countKey)

	e := Event{
		Block:  c.block,
		Index:  uint32(n),
		Pallet: pallet,
		Name:   name,
		Args:   make([]string, len(args)),
	}
	for i, a := range args {
		e.Args[i] = fmt.Sprint(a)
	}

	storage.Pool.Events.PutRecord(eventKey(c.block, e.Index), &e)
	storage.Pool.System.PutN(countKey, n+1)
}

func eventKey(block uint64, index uint32) []byte {
	return primitives.Key(primitives.Uint64Bytes(block), primitives.Uint32Bytes(index))
}

// Events - every event of a block in deposit order
func Events(block uint64) []Event {
	elements := storage.Pool.Events.Elements(primitives.Uint64Bytes(block))
	events := make([]Event, 0, len(elements))
	for _, element := range elements {
		var e Event
		if nil != storage.Unpack(element.Value, &e) {
			continue
		}
		events = append(events, e)
	}
	return events
}

// EventCount - number of events in a block
func EventCount(block uint64) uint32 {
	n, _ := storage.Pool.System.GetN(eventCountKey(block))
	return uint32(n)
}

// FindEvent - the first event of a block with the given pallet and name
func FindEvent(block uint64, pallet string, name string) (Event, bool) {
	for _, e := range Events(block) {
		if e.Pallet == pallet && e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}
