// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package system

import (
	"golang.org/x/crypto/blake2b"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/util"
)

// Call - an encoded module operation
type Call struct {
	Pallet string
	Method string
	Args   []byte
}

// Handler - executes one decoded call
type Handler func(ctx *Context, call Call) error

// Dispatcher - routes a call to its handler
type Dispatcher interface {
	Dispatch(ctx *Context, call Call) error
}

// NewCall - encode arguments into a call
func NewCall(pallet string, method string, args interface{}) (Call, error) {
	buffer, err := storage.Pack(args)
	if nil != err {
		return Call{}, err
	}
	return Call{Pallet: pallet, Method: method, Args: buffer}, nil
}

// MustCall - for genesis and tests
func MustCall(pallet string, method string, args interface{}) Call {
	call, err := NewCall(pallet, method, args)
	if nil != err {
		panic(err)
	}
	return call
}

// Name - "Pallet.method"
func (c Call) Name() string {
	return c.Pallet + "." + c.Method
}

// Decode - unpack the arguments
func (c Call) Decode(args interface{}) error {
	if 0 == len(c.Args) {
		return nil
	}
	err := storage.Unpack(c.Args, args)
	if nil != err {
		return fault.ErrCannotDecodeCall
	}
	return nil
}

// Pack - bytes covered by signatures and hashes
func (c Call) Pack() util.Packed {
	return util.Packed{}.AppendString(c.Pallet).AppendString(c.Method).AppendBytes(c.Args)
}

// Hash - blake2b-256 of the packed call
func (c Call) Hash() [32]byte {
	return blake2b.Sum256(c.Pack())
}
