// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package system

import (
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
)

// Weight - abstract execution cost
type Weight uint64

// Unlimited - meter limit for hooks and genesis
const Unlimited Weight = ^Weight(0)

type meter struct {
	used  Weight
	limit Weight
}

// Context - state of the call being executed
type Context struct {
	trx        storage.Transaction
	block      uint64
	now        primitives.Moment
	origin     Origin
	pallet     string
	method     string
	meter      *meter
	dispatcher Dispatcher
}

// NewContext - a context for the hooks of a block
func NewContext(trx storage.Transaction, block uint64, now primitives.Moment) *Context {
	return &Context{
		trx:    trx,
		block:  block,
		now:    now,
		origin: RootOrigin(),
		meter:  &meter{limit: Unlimited},
	}
}

// SetDispatcher - the router used for nested calls
func (c *Context) SetDispatcher(dispatcher Dispatcher) {
	c.dispatcher = dispatcher
}

// WithCall - a context for one call with a fresh weight budget
func (c *Context) WithCall(origin Origin, pallet string, method string, limit Weight) *Context {
	return &Context{
		trx:        c.trx,
		block:      c.block,
		now:        c.now,
		origin:     origin,
		pallet:     pallet,
		method:     method,
		meter:      &meter{limit: limit},
		dispatcher: c.dispatcher,
	}
}

// nested call sharing the weight budget of the parent
func (c *Context) nested(origin Origin, call Call) *Context {
	n := *c
	n.origin = origin
	n.pallet = call.Pallet
	n.method = call.Method
	return &n
}

// Block - current block number
func (c *Context) Block() uint64 {
	return c.block
}

// Now - moment of the current block
func (c *Context) Now() primitives.Moment {
	return c.now
}

// Origin - origin of the current call
func (c *Context) Origin() Origin {
	return c.origin
}

// CallName - pallet and method of the current call
func (c *Context) CallName() (string, string) {
	return c.pallet, c.method
}

// Consume - charge weight, fails once the budget would be exceeded
func (c *Context) Consume(w Weight) error {
	if w > c.meter.limit-c.meter.used {
		return fault.ErrWeightExhausted
	}
	c.meter.used += w
	return nil
}

// Used - weight consumed so far
func (c *Context) Used() Weight {
	return c.meter.used
}

// Transactional - run f in a nested storage scope
//
// writes and events of f are discarded if it returns an error
func (c *Context) Transactional(f func() error) error {
	c.trx.Savepoint()
	err := f()
	if nil != err {
		logger.PanicIfError("system.Transactional rollback", c.trx.Rollback())
		return err
	}
	logger.PanicIfError("system.Transactional release", c.trx.Release())
	return nil
}

// Dispatch - execute a nested call with a different origin
func (c *Context) Dispatch(origin Origin, call Call) error {
	if nil == c.dispatcher {
		return fault.ErrUnknownCall
	}
	return c.dispatcher.Dispatch(c.nested(origin, call), call)
}

// NextID - increment a named counter and return the new value
//
// counters start at one and roll back with the transaction
func NextID(name string) uint64 {
	key := []byte(name)
	n, _ := storage.Pool.Counters.GetN(key)
	n += 1
	storage.Pool.Counters.PutN(key, n)
	return n
}

// CurrentID - last value issued by NextID
func CurrentID(name string) uint64 {
	n, _ := storage.Pool.Counters.GetN([]byte(name))
	return n
}

// Remark - a call with no effect other than its event
func Remark(ctx *Context, note []byte) error {
	ctx.Deposit("System", "Remarked", ctx.origin, strings.TrimSpace(string(note)))
	return nil
}
