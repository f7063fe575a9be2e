// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
	"github.com/polymesh-go/polymeshd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	System                *PoolHandle `prefix:"@"`
	Blocks                *PoolHandle `prefix:"B"`
	Events                *PoolHandle `prefix:"E"`
	Nonces                *PoolHandle `prefix:"N"`
	Counters              *PoolHandle `prefix:"#"`
	Identities            *PoolHandle `prefix:"d"`
	KeyRecords            *PoolHandle `prefix:"k"`
	SecondaryKeys         *PoolHandle `prefix:"K"`
	FrozenIdentities      *PoolHandle `prefix:"f"`
	ChildIdentities       *PoolHandle `prefix:"h"`
	Authorizations        *PoolHandle `prefix:"a"`
	AuthorizationsGiven   *PoolHandle `prefix:"g"`
	RevokedAuthorizations *PoolHandle `prefix:"r"`
	Claims                *PoolHandle `prefix:"c"`
	CustomClaimTypes      *PoolHandle `prefix:"u"`
	CustomClaimNames      *PoolHandle `prefix:"U"`
	CddProviders          *PoolHandle `prefix:"p"`
	RelayerPayingKeys     *PoolHandle `prefix:"y"`
	Portfolios            *PoolHandle `prefix:"F"`
	PortfolioNames        *PoolHandle `prefix:"L"`
	PortfolioBalances     *PoolHandle `prefix:"i"`
	PortfolioLocked       *PoolHandle `prefix:"j"`
	PortfolioNFTs         *PoolHandle `prefix:"Q"`
	LockedNFTs            *PoolHandle `prefix:"J"`
	Custodians            *PoolHandle `prefix:"S"`
	CustodianPortfolios   *PoolHandle `prefix:"R"`
	PortfolioInstructions *PoolHandle `prefix:"I"`
	TickerRegistrations   *PoolHandle `prefix:"t"`
	Tokens                *PoolHandle `prefix:"T"`
	FrozenTokens          *PoolHandle `prefix:"z"`
	Balances              *PoolHandle `prefix:"b"`
	Documents             *PoolHandle `prefix:"D"`
	Agents                *PoolHandle `prefix:"A"`
	LocalMetadataKeys     *PoolHandle `prefix:"m"`
	GlobalMetadataKeys    *PoolHandle `prefix:"M"`
	LocalMetadataNames    *PoolHandle `prefix:"n"`
	GlobalMetadataNames   *PoolHandle `prefix:"G"`
	MetadataValues        *PoolHandle `prefix:"v"`
	MetadataDetails       *PoolHandle `prefix:"V"`
	Checkpoints           *PoolHandle `prefix:"x"`
	CheckpointBalances    *PoolHandle `prefix:"X"`
	Schedules             *PoolHandle `prefix:"s"`
	ScheduleQueue         *PoolHandle `prefix:"q"`
	MandatoryMediators    *PoolHandle `prefix:"w"`
	NFTCollections        *PoolHandle `prefix:"l"`
	NFTs                  *PoolHandle `prefix:"O"`
	AssetCompliances      *PoolHandle `prefix:"1"`
	DefaultIssuers        *PoolHandle `prefix:"2"`
	Venues                *PoolHandle `prefix:"3"`
	UserVenues            *PoolHandle `prefix:"4"`
	Instructions          *PoolHandle `prefix:"5"`
	ScheduledInstructions *PoolHandle `prefix:"6"`
	VenueFiltering        *PoolHandle `prefix:"7"`
	VenueAllowList        *PoolHandle `prefix:"8"`
	ReceiptsUsed          *PoolHandle `prefix:"9"`
	Multisigs             *PoolHandle `prefix:"&"`
	MultisigSigners       *PoolHandle `prefix:"*"`
	ProposalHashes        *PoolHandle `prefix:"+"`
	Proposals             *PoolHandle `prefix:"="`
	Votes                 *PoolHandle `prefix:"~"`
	Committees            *PoolHandle `prefix:"^"`
	CommitteeProposals    *PoolHandle `prefix:"%"`
	TestData              *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// CurrentVersion - schema version written to new databases
const CurrentVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	log      *logger.L
	database *leveldb.DB
	cache    Cache
	trx      *transaction
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}
	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return err
	}
	return setup(db, readOnly)
}

// InitialiseInMemory - open an empty database that lives only in memory
func InitialiseInMemory() error {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.database {
		db.Close()
		return fault.ErrAlreadyInitialised
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	version, err := getVersion(db)
	if nil != err {
		return err
	}

	switch version {
	case 0:
		if readOnly {
			return fault.ErrStorageVersionMismatch
		}
		// database was empty so tag as current version
		err = putVersion(db, CurrentVersion)
		if nil != err {
			return err
		}
	case CurrentVersion:
	default:
		poolData.log.Criticalf("database version: 0x%x  current version: 0x%x", version, CurrentVersion)
		return fault.ErrStorageVersionMismatch
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix: %q of pool: %s", fieldInfo.Name, prefixTag, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	poolData.database = db
	poolData.cache = newCache()
	poolData.trx = nil

	ok = true // prevent db close
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.database {
		return
	}
	poolData.log.Info("shutting down…")
	poolData.database.Close()
	poolData.database = nil
	poolData.trx = nil
	poolData.cache.Clear()
	poolData.log.Info("finished")
	poolData.log.Flush()
}

// IsInitialised - true if a database is open
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.database
}

// return the version number, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
