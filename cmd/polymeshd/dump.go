// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/system"
)

type blockResult struct {
	Digest merkle.Digest       `json:"digest"`
	Header *blockrecord.Header `json:"header"`
	Events []system.Event      `json:"events"`
}

// dump of a particular block
func dumpBlock(number uint64) (*blockResult, error) {
	var (
		result *blockResult
		err    error
	)
	runtime.View(func() {
		if number > height() {
			err = fault.ErrBlockNotFound
			return
		}
		header, ok := blockrecord.Get(number)
		if !ok {
			err = fault.ErrBlockNotFound
			return
		}
		result = &blockResult{
			Digest: header.Digest(),
			Header: header,
			Events: system.Events(number),
		}
	})
	return result, err
}
