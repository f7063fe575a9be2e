// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/storage"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setup(t *testing.T) {
	setupTestLogger()
	err := storage.InitialiseInMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

func teardown() {
	storage.Finalise()
	removeFiles()
}

func TestPutGetCommit(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	storage.Pool.TestData.Put([]byte("key-one"), []byte("data-one"))
	storage.Pool.TestData.PutN([]byte("key-n"), 42)

	assert.Equal(t, []byte("data-one"), storage.Pool.TestData.Get([]byte("key-one")), "uncommitted read")
	n, found := storage.Pool.TestData.GetN([]byte("key-n"))
	assert.True(t, found, "number found")
	assert.Equal(t, uint64(42), n, "number value")

	_, err = storage.NewDBTransaction()
	assert.Equal(t, fault.ErrTransactionInUse, err, "second transaction")

	err = trx.Commit()
	assert.Nil(t, err, "commit")

	assert.Equal(t, []byte("data-one"), storage.Pool.TestData.Get([]byte("key-one")), "committed read")
	assert.False(t, storage.Pool.Blocks.Has([]byte("key-one")), "pools are separate")
}

func TestSavepointRollback(t *testing.T) {
	setup(t)
	defer teardown()

	trx, err := storage.NewDBTransaction()
	assert.Nil(t, err, "begin")

	storage.Pool.TestData.Put([]byte("a"), []byte("outer"))

	trx.Savepoint()
	assert.Equal(t, 2, trx.Depth(), "depth after savepoint")
	storage.Pool.TestData.Put([]byte("a"), []byte("inner"))
	storage.Pool.TestData.Put([]byte("b"), []byte("inner"))
	assert.Equal(t, []byte("inner"), storage.Pool.TestData.Get([]byte("a")), "inner value visible")

	err = trx.Rollback()
	assert.Nil(t, err, "rollback")
	assert.Equal(t, []byte("outer"), storage.Pool.TestData.Get([]byte("a")), "outer value restored")
	assert.Nil(t, storage.Pool.TestData.Get([]byte("b")), "inner insert removed")

	err = trx.Rollback()
	assert.Equal(t, fault.ErrSavepointUnderflow, err, "cannot roll back outermost")

	trx.Abort()
	assert.Nil(t, storage.Pool.TestData.Get([]byte("a")), "abort drops everything")
}

func TestSavepointRelease(t *testing.T) {
	setup(t)
	defer teardown()

	trx, _ := storage.NewDBTransaction()
	trx.Savepoint()
	trx.Savepoint()
	storage.Pool.TestData.Put([]byte("x"), []byte("1"))
	assert.Nil(t, trx.Release(), "release inner")

	err := trx.Commit()
	assert.Equal(t, fault.ErrSavepointUnderflow, err, "commit with open savepoint")

	assert.Nil(t, trx.Release(), "release middle")
	assert.Nil(t, trx.Commit(), "commit")
	assert.Equal(t, []byte("1"), storage.Pool.TestData.Get([]byte("x")), "released value committed")
}

func TestElementsMergedOrder(t *testing.T) {
	setup(t)
	defer teardown()

	trx, _ := storage.NewDBTransaction()
	for _, k := range []string{"p-3", "p-1", "q-0", "p-2"} {
		storage.Pool.TestData.Put([]byte(k), []byte(k))
	}
	assert.Nil(t, trx.Commit(), "commit")

	trx, _ = storage.NewDBTransaction()
	defer trx.Abort()
	storage.Pool.TestData.Delete([]byte("p-2"))
	trx.Savepoint()
	storage.Pool.TestData.Put([]byte("p-0"), []byte("new"))

	elements := storage.Pool.TestData.Elements([]byte("p-"))
	keys := make([]string, 0, len(elements))
	for _, e := range elements {
		keys = append(keys, string(e.Key))
	}
	assert.Equal(t, []string{"p-0", "p-1", "p-3"}, keys, "merged scan in key order")

	from := storage.Pool.TestData.ElementsFrom([]byte("p-"), []byte("1"))
	assert.Equal(t, 2, len(from), "scan from start key")
	assert.Equal(t, []byte("p-1"), from[0].Key, "first key from start")

	cursor := storage.Pool.TestData.NewFetchCursor([]byte("p-"))
	page, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 2, len(page), "first page")
	page, _ = cursor.Fetch(2)
	assert.Equal(t, 1, len(page), "second page")
	assert.Equal(t, []byte("p-3"), page[0].Key, "second page key")
}

type testRecord struct {
	Name   string
	Amount uint64
	Tags   []string
}

func TestRecordCodec(t *testing.T) {
	setup(t)
	defer teardown()

	trx, _ := storage.NewDBTransaction()
	defer trx.Abort()

	in := testRecord{Name: "acme", Amount: 1000, Tags: []string{"a", "b"}}
	storage.Pool.TestData.PutRecord([]byte("r"), in)

	var out testRecord
	assert.True(t, storage.Pool.TestData.GetRecord([]byte("r"), &out), "record found")
	assert.Equal(t, in, out, "record round trip")
	assert.False(t, storage.Pool.TestData.GetRecord([]byte("missing"), &out), "missing record")

	first, _ := storage.Pack(in)
	second, _ := storage.Pack(in)
	assert.Equal(t, first, second, "encoding is deterministic")
}

func TestVersionMismatch(t *testing.T) {
	setupTestLogger()
	defer removeFiles()

	name := filepath.Join(testingDirName, "old.leveldb")
	db, err := leveldb.OpenFile(name, nil)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	version := make([]byte, 4)
	binary.BigEndian.PutUint32(version, storage.CurrentVersion+1)
	_ = db.Put([]byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}, version, nil)
	db.Close()

	err = storage.Initialise(name, storage.ReadWrite)
	assert.Equal(t, fault.ErrStorageVersionMismatch, err, "newer database must be rejected")
	assert.False(t, storage.IsInitialised(), "not left open")

	err = storage.Initialise(filepath.Join(testingDirName, "new.leveldb"), storage.ReadWrite)
	assert.Nil(t, err, "fresh database")
	storage.Finalise()

	err = storage.Initialise(filepath.Join(testingDirName, "new.leveldb"), storage.ReadOnly)
	assert.Nil(t, err, "reopen read only")
	storage.Finalise()
}
