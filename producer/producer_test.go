// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package producer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/chain"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/pending"
	"github.com/polymesh-go/polymeshd/producer"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/system"
)

func setup(t *testing.T, configuration producer.Configuration) {
	fixtures.Setup(t)
	if err := pending.Initialise(); nil != err {
		t.Fatalf("pending initialise error: %s", err)
	}
	if err := mode.Initialise(chain.Local); nil != err {
		t.Fatalf("mode initialise error: %s", err)
	}
	if err := producer.Initialise(configuration); nil != err {
		t.Fatalf("producer initialise error: %s", err)
	}
}

func teardown() {
	_ = producer.Finalise()
	_ = mode.Finalise()
	_ = pending.Finalise()
	fixtures.Teardown()
}

func submit(t *testing.T, nonce uint64) {
	call := system.MustCall(runtime.SystemPallet, "remark", runtime.RemarkArgs{Note: []byte("queued")})
	if _, err := pending.Add(runtime.Sign(fixtures.Key("alice"), nonce, call)); nil != err {
		t.Fatalf("add error: %s", err)
	}
}

func TestProduce(t *testing.T) {
	setup(t, producer.Configuration{Interval: time.Hour, MaximumExtrinsics: 1})
	defer teardown()

	submit(t, 0)
	submit(t, 1)

	now := time.Unix(int64(fixtures.GenesisMoment)+6, 0)
	block, err := producer.Produce(now)
	assert.Nil(t, err, "first block")
	assert.Equal(t, uint32(1), block.Header.ExtrinsicCount, "block limit")
	assert.Equal(t, 1, pending.Count(), "one left")

	block, err = producer.Produce(now.Add(6 * time.Second))
	assert.Nil(t, err, "second block")
	assert.Equal(t, uint32(1), block.Header.ExtrinsicCount, "the rest")
	assert.Equal(t, 0, pending.Count(), "drained")
	assert.Equal(t, uint64(2), runtime.Nonce(fixtures.Key("alice").Key()), "nonce")
	assert.Equal(t, uint64(2), producer.Produced(), "produced")
}

func TestLoopFollowsMode(t *testing.T) {
	setup(t, producer.Configuration{Interval: 100 * time.Millisecond})
	defer teardown()

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, uint64(0), producer.Produced(), "stopped mode")

	mode.Set(mode.Normal)
	deadline := time.Now().Add(3 * time.Second)
	for producer.Produced() < 2 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	assert.True(t, producer.Produced() >= 2, "normal mode")
}

func TestInvalidInterval(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	err := producer.Initialise(producer.Configuration{Interval: time.Millisecond})
	assert.Equal(t, fault.ErrInvalidBlockInterval, err, "too fast")
}
