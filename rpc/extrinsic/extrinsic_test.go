// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package extrinsic_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/mode"
	"github.com/polymesh-go/polymeshd/rpc/extrinsic"
	"github.com/polymesh-go/polymeshd/rpc/mocks"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/system"
)

func running(mode.Mode) bool { return false }
func stopped(m mode.Mode) bool { return mode.Stopped != m }

func signed(nonce uint64) *runtime.Extrinsic {
	call := system.MustCall(runtime.SystemPallet, "remark", runtime.RemarkArgs{Note: []byte("rpc")})
	return runtime.Sign(fixtures.Key("alice"), nonce, call)
}

func TestSubmit(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	q := mocks.NewMockQueue(ctl)
	e := extrinsic.New(logger.New("test"), q, running)

	x := signed(0)
	q.EXPECT().Add(x).Return(x.Hash(), nil).Times(1)

	var reply extrinsic.SubmitReply
	err := e.Submit(x, &reply)
	assert.Nil(t, err, "submit")
	assert.Equal(t, x.Hash(), reply.Hash, "hash")

	y := signed(1)
	q.EXPECT().Add(y).Return(merkle.Digest{}, fault.ErrPendingQueueFull).Times(1)
	err = e.Submit(y, &reply)
	assert.Equal(t, fault.ErrPendingQueueFull, err, "queue error")

	unsigned := signed(2)
	unsigned.Signature = nil
	err = e.Submit(unsigned, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "no signature")
}

func TestSubmitWhileStopped(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := extrinsic.New(logger.New("test"), mocks.NewMockQueue(ctl), stopped)

	var reply extrinsic.SubmitReply
	err := e.Submit(signed(0), &reply)
	assert.Equal(t, fault.ErrNodeStopped, err, "stopped")
}

func TestNonce(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	e := extrinsic.New(logger.New("test"), extrinsic.PendingQueue(nil), running)

	_, err := runtime.ProduceBlock([]*runtime.Extrinsic{signed(0)}, fixtures.GenesisMoment+6)
	assert.Nil(t, err, "produce")

	var reply extrinsic.NonceReply
	err = e.Nonce(&extrinsic.NonceArguments{Signer: fixtures.Key("alice").Key()}, &reply)
	assert.Nil(t, err, "nonce")
	assert.Equal(t, uint64(1), reply.Nonce, "after one extrinsic")
}
