// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/polymesh-go/polymeshd/fault"
)

// Transaction - the block write transaction
type Transaction interface {
	Savepoint()
	Release() error
	Rollback() error
	Commit() error
	Abort()
	Depth() int
}

// a pending write, a delete is recorded as a tombstone
type change struct {
	value   []byte
	deleted bool
}

type layer map[string]change

type transaction struct {
	layers []layer
}

// NewDBTransaction - start the single write transaction
func NewDBTransaction() (Transaction, error) {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}
	if nil != poolData.trx {
		return nil, fault.ErrTransactionInUse
	}

	trx := &transaction{
		layers: []layer{make(layer)},
	}
	poolData.trx = trx
	return trx, nil
}

// Savepoint - open a nested scope
func (t *transaction) Savepoint() {
	poolData.Lock()
	defer poolData.Unlock()

	t.layers = append(t.layers, make(layer))
}

// Release - keep the writes of the innermost scope
func (t *transaction) Release() error {
	poolData.Lock()
	defer poolData.Unlock()

	n := len(t.layers)
	if n < 2 {
		return fault.ErrSavepointUnderflow
	}
	top := t.layers[n-1]
	below := t.layers[n-2]
	for k, c := range top {
		below[k] = c
	}
	t.layers = t.layers[:n-1]
	return nil
}

// Rollback - discard the writes of the innermost scope
func (t *transaction) Rollback() error {
	poolData.Lock()
	defer poolData.Unlock()

	n := len(t.layers)
	if n < 2 {
		return fault.ErrSavepointUnderflow
	}
	t.layers = t.layers[:n-1]
	return nil
}

// Depth - number of open scopes including the outermost
func (t *transaction) Depth() int {
	poolData.RLock()
	defer poolData.RUnlock()
	return len(t.layers)
}

// Commit - write everything as one batch
//
// all savepoints must have been released or rolled back
func (t *transaction) Commit() error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.trx != t {
		return fault.ErrTransactionNotActive
	}
	if 1 != len(t.layers) {
		return fault.ErrSavepointUnderflow
	}

	batch := new(leveldb.Batch)
	for k, c := range t.layers[0] {
		if c.deleted {
			batch.Delete([]byte(k))
		} else {
			batch.Put([]byte(k), c.value)
		}
	}

	err := poolData.database.Write(batch, nil)
	if nil != err {
		return err
	}

	for k, c := range t.layers[0] {
		if c.deleted {
			poolData.cache.Set(dbDelete, k, nil)
		} else {
			poolData.cache.Set(dbPut, k, c.value)
		}
	}

	t.layers = nil
	poolData.trx = nil
	return nil
}

// Abort - drop every pending write
func (t *transaction) Abort() {
	poolData.Lock()
	defer poolData.Unlock()

	t.layers = nil
	if poolData.trx == t {
		poolData.trx = nil
	}
}

// look up a key in the open layers, innermost first
//
// must be called with poolData locked
func (t *transaction) lookup(key string) (change, bool) {
	for i := len(t.layers) - 1; i >= 0; i -= 1 {
		if c, ok := t.layers[i][key]; ok {
			return c, true
		}
	}
	return change{}, false
}

// must be called with poolData write locked
func (t *transaction) set(key string, c change) {
	t.layers[len(t.layers)-1][key] = c
}
