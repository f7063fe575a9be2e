// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - the structure of a pool handle
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair in the open transaction
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.trx {
		logger.Panicf("pool.Put: %q outside of transaction", p.prefix)
	}
	v := make([]byte, len(value))
	copy(v, value)
	poolData.trx.set(string(p.prefixKey(key)), change{value: v})
}

// PutN - store a uint64 as an 8 byte sequence
func (p *PoolHandle) PutN(key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	p.Put(key, buffer)
}

// Delete - remove a key from the open transaction
func (p *PoolHandle) Delete(key []byte) {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.trx {
		logger.Panicf("pool.Delete: %q outside of transaction", p.prefix)
	}
	poolData.trx.set(string(p.prefixKey(key)), change{deleted: true})
}

// Get - read a value for a given key
//
// returns nil if the key is not present
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return nil
	}

	k := p.prefixKey(key)
	if nil != poolData.trx {
		if c, ok := poolData.trx.lookup(string(k)); ok {
			if c.deleted {
				return nil
			}
			return c.value
		}
	}

	if value, present, cached := poolData.cache.Get(string(k)); cached {
		if !present {
			return nil
		}
		return value
	}

	value, err := poolData.database.Get(k, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	poolData.cache.Set(dbPut, string(k), value)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	n := binary.BigEndian.Uint64(buffer[:8])
	return n, true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}

// Elements - all elements whose key starts with prefix, in key order
//
// keys are returned without the pool prefix
func (p *PoolHandle) Elements(prefix []byte) []Element {
	return p.ElementsFrom(prefix, nil)
}

// ElementsFrom - elements with key prefix and key >= prefix ++ start
func (p *PoolHandle) ElementsFrom(prefix []byte, start []byte) []Element {
	searchRange := ldb_util.BytesPrefix(p.prefixKey(prefix))
	if len(start) > 0 {
		searchRange.Start = append(p.prefixKey(prefix), start...)
	}
	return p.scan(searchRange)
}

// First - the lowest keyed element with the given prefix
func (p *PoolHandle) First(prefix []byte) (Element, bool) {
	elements := p.Elements(prefix)
	if 0 == len(elements) {
		return Element{}, false
	}
	return elements[0], true
}

// merge the database range with the open transaction layers
func (p *PoolHandle) scan(searchRange *ldb_util.Range) []Element {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return nil
	}

	merged := make(map[string][]byte)

	iter := poolData.database.NewIterator(searchRange, nil)
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		merged[string(iter.Key())] = value
	}
	iter.Release()
	logger.PanicIfError("pool.scan", iter.Error())

	inRange := func(k []byte) bool {
		if bytes.Compare(k, searchRange.Start) < 0 {
			return false
		}
		return nil == searchRange.Limit || bytes.Compare(k, searchRange.Limit) < 0
	}

	if nil != poolData.trx {
		for _, l := range poolData.trx.layers {
			for k, c := range l {
				if !inRange([]byte(k)) {
					continue
				}
				if c.deleted {
					delete(merged, k)
				} else {
					merged[k] = c.value
				}
			}
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]Element, 0, len(keys))
	for _, k := range keys {
		dataKey := make([]byte, len(k)-1) // strip the prefix
		copy(dataKey, k[1:])              // ...
		results = append(results, Element{
			Key:   dataKey,
			Value: merged[k],
		})
	}
	return results
}
