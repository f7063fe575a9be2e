// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/chain"
	"github.com/polymesh-go/polymeshd/configuration"
	"github.com/polymesh-go/polymeshd/fault"
)

const testConfiguration = `
local M = {}

M.data_directory = "."
M.chain = "Local"
M.block_interval = 2

M.client_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2130" },
}

M.runtime = {
    max_legs = 20,
    require_cdd = true,
}

M.genesis = {
    moment = 1600000000,
    identities = {
        { primary_key = "alice", cdd_provider = true },
    },
    committees = {
        { name = "council", members = { "alice" }, n = 1, d = 2 },
    },
}

M.logging = {
    size = 4096,
    count = 2,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

func writeConfiguration(t *testing.T, text string) (string, string) {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	name := filepath.Join(dir, "polymeshd.conf")
	if err := ioutil.WriteFile(name, []byte(text), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}
	return dir, name
}

func TestGetConfiguration(t *testing.T) {
	dir, name := writeConfiguration(t, testConfiguration)
	defer os.RemoveAll(dir)

	c, err := configuration.GetConfiguration(name)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	assert.Equal(t, chain.Local, c.Chain, "chain is lower cased")
	assert.Equal(t, filepath.Join(dir, "data", "local.leveldb"), c.Database.Name, "database follows chain")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
	assert.Equal(t, uint64(5), c.ClientRPC.MaximumConnections, "rpc connections")
	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "rpc listen")

	assert.Equal(t, 20, c.Runtime.MaximumLegs, "overridden limit")
	assert.Equal(t, 12, c.Runtime.TickerMaxLength, "default limit")
	assert.True(t, c.Runtime.RequireCdd, "require cdd")

	assert.Equal(t, 1, len(c.Genesis.Identities), "genesis identities")
	assert.True(t, c.Genesis.Identities[0].CddProvider, "cdd provider")
	assert.Equal(t, uint32(2), c.Genesis.Committees[0].D, "committee threshold")

	assert.Equal(t, 2*time.Second, c.Producer().Interval, "block interval")
	assert.Equal(t, 1000, c.Producer().MaximumExtrinsics, "default extrinsics")

	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.Nil(t, err, "database directory created")
}

func TestInvalidChain(t *testing.T) {
	dir, name := writeConfiguration(t, `return { data_directory = ".", chain = "nowhere" }`)
	defer os.RemoveAll(dir)

	_, err := configuration.GetConfiguration(name)
	assert.NotNil(t, err, "unknown chain")
}

func TestMissingDataDirectory(t *testing.T) {
	dir, name := writeConfiguration(t, `return { chain = "local" }`)
	defer os.RemoveAll(dir)

	_, err := configuration.GetConfiguration(name)
	assert.NotNil(t, err, "data directory is required")
}

func TestLuaError(t *testing.T) {
	dir, name := writeConfiguration(t, `return {`)
	defer os.RemoveAll(dir)

	_, err := configuration.GetConfiguration(name)
	assert.NotNil(t, err, "syntax error")
}

func TestNotATable(t *testing.T) {
	dir, name := writeConfiguration(t, `return "local"`)
	defer os.RemoveAll(dir)

	_, err := configuration.GetConfiguration(name)
	assert.Equal(t, fault.ErrNotConfigTable, err, "string result")
}

func TestConfigDirectory(t *testing.T) {
	dir, name := writeConfiguration(t, `return { data_directory = config_directory, chain = "local" }`)
	defer os.RemoveAll(dir)

	c, err := configuration.GetConfiguration(name)
	assert.Nil(t, err, "configuration")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log under the configuration directory")
}
