// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/chain"
	"github.com/polymesh-go/polymeshd/metrics"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/producer"
	"github.com/polymesh-go/polymeshd/rpc/listeners"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLiveDatabase     = chain.Live + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "polymeshd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10

	defaultBlockInterval   = 6 // seconds
	defaultBlockExtrinsics = 1000

	defaultMaximumCallWeight        = 1000000
	defaultMaximumScheduledLegs     = 1000
	defaultMaximumLegs              = 10
	defaultMaximumComplexity        = 50
	defaultTickerMaxLength          = 12
	defaultTickerRegistrationLength = 60 * 24 * 60 * 60 // seconds
	defaultMaxTotalSupply           = 1000000000000 * primitives.OneUnit
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the leveldb files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory   string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile         string       `gluamapper:"pidfile" json:"pidfile"`
	Chain           string       `gluamapper:"chain" json:"chain"`
	Database        DatabaseType `gluamapper:"database" json:"database"`
	BlockInterval   int          `gluamapper:"block_interval" json:"block_interval"`
	BlockExtrinsics int          `gluamapper:"block_extrinsics" json:"block_extrinsics"`

	ClientRPC listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Metrics   metrics.Configuration      `gluamapper:"metrics" json:"metrics"`
	Runtime   runtime.Configuration      `gluamapper:"runtime" json:"runtime"`
	Genesis   runtime.Genesis            `gluamapper:"genesis" json:"genesis"`
	Logging   logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - will read decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:   defaultDataDirectory,
		PidFile:         "", // no PidFile by default
		Chain:           chain.Live,
		BlockInterval:   defaultBlockInterval,
		BlockExtrinsics: defaultBlockExtrinsics,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLiveDatabase,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Runtime: runtime.Configuration{
			MaximumCallWeight:        defaultMaximumCallWeight,
			MaximumScheduledLegs:     defaultMaximumScheduledLegs,
			MaximumLegs:              defaultMaximumLegs,
			MaximumComplexity:        defaultMaximumComplexity,
			TickerMaxLength:          defaultTickerMaxLength,
			TickerRegistrationLength: defaultTickerRegistrationLength,
			MaxTotalSupply:           defaultMaxTotalSupply,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	// if database was not changed from default
	if options.Database.Name == defaultLiveDatabase {
		switch options.Chain {
		case chain.Live:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		default:
			return nil, fmt.Errorf("Chain: %s no default database setting", options.Chain)
		}
	}

	if options.BlockInterval <= 0 {
		return nil, fmt.Errorf("block_interval: %d must be positive", options.BlockInterval)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// done
	return options, nil
}

// Producer - block production settings
func (c *Configuration) Producer() producer.Configuration {
	return producer.Configuration{
		Interval:          time.Duration(c.BlockInterval) * time.Second,
		MaximumExtrinsics: c.BlockExtrinsics,
	}
}
