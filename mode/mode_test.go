// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/chain"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/mode"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
}

func teardownTestLogger() {
	logger.Finalise()
	os.RemoveAll(testingDirName)
}

func TestModes(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	assert.Equal(t, fault.ErrInvalidChain, mode.Initialise("bitmark"), "unknown chain")

	err := mode.Initialise(chain.Local)
	assert.Nil(t, err, "initialise")
	assert.Equal(t, fault.ErrAlreadyInitialised, mode.Initialise(chain.Local), "twice")

	assert.True(t, mode.Is(mode.Stopped), "starts stopped")
	assert.True(t, mode.IsTesting(), "local chain")
	assert.Equal(t, chain.Local, mode.ChainName(), "chain name")

	mode.Set(mode.Normal)
	assert.True(t, mode.IsNot(mode.Stopped), "running")
	assert.Equal(t, "Normal", mode.String(), "string")

	assert.Nil(t, mode.Finalise(), "finalise")
	assert.True(t, mode.Is(mode.Stopped), "stopped again")
}
