// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/blake2b"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const (
	testingDirName = "testing"
)

// GenesisMoment - moment of the fixture genesis block
const GenesisMoment primitives.Moment = 1000000

// SystematicIssuer - name of the key of the systematic cdd issuer
const SystematicIssuer = "systematic-issuer"

// Configuration - runtime limits used by tests
func Configuration() runtime.Configuration {
	return runtime.Configuration{
		MaximumCallWeight:        10000,
		MaximumScheduledLegs:     100,
		MaximumLegs:              10,
		MaximumComplexity:        50,
		TickerMaxLength:          12,
		TickerRegistrationLength: 60 * 24 * 60 * 60,
		MaxTotalSupply:           1000000000 * primitives.OneUnit,
	}
}

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

// Setup - logging, in-memory storage, runtime and genesis
func Setup(t *testing.T) {
	SetupWith(t, Configuration())
}

// SetupWith - as Setup with a specific runtime configuration
func SetupWith(t *testing.T, configuration runtime.Configuration) {
	setupTestLogger()
	if err := storage.InitialiseInMemory(); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := runtime.Initialise(configuration); nil != err {
		t.Fatalf("runtime initialise error: %s", err)
	}
	g := runtime.Genesis{
		Moment:           GenesisMoment,
		SystematicIssuer: Key(SystematicIssuer).Key().String(),
	}
	if _, err := runtime.WriteGenesis(g); nil != err {
		t.Fatalf("genesis error: %s", err)
	}
}

// Teardown - undo Setup
func Teardown() {
	_ = runtime.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// Key - a deterministic key pair for a name
func Key(name string) *account.PrivateKey {
	seed := blake2b.Sum256([]byte(name))
	p, err := account.PrivateKeyFromSeed(seed[:])
	if nil != err {
		logger.Panicf("fixtures: key: %q  error: %s", name, err)
	}
	return p
}

// Chain - an open block transaction
type Chain struct {
	t   *testing.T
	trx storage.Transaction
	ctx *system.Context
}

// Begin - open the transaction of the block after the head
func Begin(t *testing.T) *Chain {
	head, _, ok := blockrecord.Head()
	if !ok {
		t.Fatal("no genesis block")
	}
	return BeginAt(t, head.Number+1, head.Moment+6)
}

// BeginAt - open a transaction for a given block and moment
func BeginAt(t *testing.T, block uint64, now primitives.Moment) *Chain {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	ctx := system.NewContext(trx, block, now)
	ctx.SetDispatcher(runtime.Dispatcher())
	return &Chain{t: t, trx: trx, ctx: ctx}
}

// Root - a context with Root origin
func (c *Chain) Root() *system.Context {
	return c.ctx
}

// As - a context for a call signed by a key
func (c *Chain) As(key *account.PrivateKey, pallet string, method string) *system.Context {
	return c.ctx.WithCall(system.Signed(key.Key()), pallet, method, system.Unlimited)
}

// AsKey - a context for a call signed by a public key, multisig addresses
func (c *Chain) AsKey(key account.Key, pallet string, method string) *system.Context {
	return c.ctx.WithCall(system.Signed(key), pallet, method, system.Unlimited)
}

// Block - number of the open block
func (c *Chain) Block() uint64 {
	return c.ctx.Block()
}

// Advance - move to a later block inside the same transaction
func (c *Chain) Advance(blocks uint64, elapsed primitives.Moment) {
	ctx := system.NewContext(c.trx, c.ctx.Block()+blocks, c.ctx.Now()+elapsed)
	ctx.SetDispatcher(runtime.Dispatcher())
	c.ctx = ctx
}

// Events - events of the open block
func (c *Chain) Events() []system.Event {
	return system.Events(c.ctx.Block())
}

// HasEvent - true if the open block has the event
func (c *Chain) HasEvent(pallet string, name string) bool {
	_, ok := system.FindEvent(c.ctx.Block(), pallet, name)
	return ok
}

// Abort - drop everything written
func (c *Chain) Abort() {
	c.trx.Abort()
}

// Commit - write everything
func (c *Chain) Commit() {
	if err := c.trx.Commit(); nil != err {
		c.t.Fatalf("commit error: %s", err)
	}
}

// Identity - create an identity for a named key with a cdd claim
func (c *Chain) Identity(name string) (*account.PrivateKey, primitives.DID) {
	key := Key(name)
	did, err := identity.CreateDID(c.ctx, key.Key())
	if nil != err {
		c.t.Fatalf("identity: %q  error: %s", name, err)
	}
	identity.AddSystematicClaim(c.ctx, did, primitives.CddClaim(identity.DeriveCddID(did)), 0)
	return key, did
}

// IdentityWithoutCdd - create an identity that has no cdd claim
func (c *Chain) IdentityWithoutCdd(name string) (*account.PrivateKey, primitives.DID) {
	key := Key(name)
	did, err := identity.CreateDID(c.ctx, key.Key())
	if nil != err {
		c.t.Fatalf("identity: %q  error: %s", name, err)
	}
	return key, did
}
