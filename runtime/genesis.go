// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/blockrecord"
	"github.com/polymesh-go/polymeshd/committee"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// GenesisIdentity - an identity created at genesis
type GenesisIdentity struct {
	PrimaryKey  string `gluamapper:"primary_key" json:"primary_key"`
	CddProvider bool   `gluamapper:"cdd_provider" json:"cdd_provider"`
}

// GenesisCommittee - a committee instance, members are primary keys
type GenesisCommittee struct {
	Name    string   `gluamapper:"name" json:"name"`
	Members []string `gluamapper:"members" json:"members"`
	N       uint32   `gluamapper:"n" json:"n"`
	D       uint32   `gluamapper:"d" json:"d"`
}

// GenesisAsset - an asset created and issued at genesis
type GenesisAsset struct {
	Ticker    string `gluamapper:"ticker" json:"ticker"`
	Name      string `gluamapper:"name" json:"name"`
	Owner     string `gluamapper:"owner" json:"owner"`
	Divisible bool   `gluamapper:"divisible" json:"divisible"`
	AssetType string `gluamapper:"asset_type" json:"asset_type"`
	Supply    uint64 `gluamapper:"supply" json:"supply"`
}

// Genesis - initial state of a chain
type Genesis struct {
	Moment           primitives.Moment  `gluamapper:"moment" json:"moment"`
	SystematicIssuer string             `gluamapper:"systematic_issuer" json:"systematic_issuer"`
	Identities       []GenesisIdentity  `gluamapper:"identities" json:"identities"`
	Committees       []GenesisCommittee `gluamapper:"committees" json:"committees"`
	Assets           []GenesisAsset     `gluamapper:"assets" json:"assets"`
}

// the genesis block has no parent
var genesisParent merkle.Digest

// WriteGenesis - create the genesis state as block zero
func WriteGenesis(g Genesis) (*Block, error) {
	chainLock.Lock()
	defer chainLock.Unlock()

	if _, ok := blockrecord.Height(); ok {
		return nil, fault.ErrGenesisAlreadyWritten
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}

	ctx := system.NewContext(trx, blockrecord.GenesisBlockNumber, g.Moment)
	ctx.SetDispatcher(dispatcher{})

	if err := buildGenesis(ctx, g); nil != err {
		trx.Abort()
		globalData.log.Errorf("genesis: error: %s", err)
		return nil, err
	}

	header := &blockrecord.Header{
		Version:        blockrecord.Version,
		Number:         blockrecord.GenesisBlockNumber,
		Moment:         g.Moment,
		PreviousBlock:  genesisParent,
		ExtrinsicsRoot: merkle.Root(nil),
		EventCount:     system.EventCount(blockrecord.GenesisBlockNumber),
	}
	blockrecord.Put(header)
	events := system.Events(blockrecord.GenesisBlockNumber)

	if err := trx.Commit(); nil != err {
		trx.Abort()
		return nil, err
	}

	block := &Block{
		Header: header,
		Digest: header.Digest(),
		Events: events,
	}
	globalData.log.Infof("genesis: identities: %d  committees: %d  assets: %d  digest: %s", len(g.Identities), len(g.Committees), len(g.Assets), block.Digest)
	return block, nil
}

func buildGenesis(ctx *system.Context, g Genesis) error {
	dids := make(map[account.Key]primitives.DID)
	order := make([]primitives.DID, 0, len(g.Identities))

	for _, gi := range g.Identities {
		key, err := account.KeyFromBase58(gi.PrimaryKey)
		if nil != err {
			return err
		}
		did, err := identity.CreateDID(ctx, key)
		if nil != err {
			return err
		}
		dids[key] = did
		order = append(order, did)
		if gi.CddProvider {
			if err := identity.AddCddProvider(ctx, did); nil != err {
				return err
			}
		}
	}

	if "" != g.SystematicIssuer {
		key, err := account.KeyFromBase58(g.SystematicIssuer)
		if nil != err {
			return err
		}
		issuer, ok := dids[key]
		if !ok {
			issuer, err = identity.CreateDID(ctx, key)
			if nil != err {
				return err
			}
		}
		identity.SetSystematicIssuer(issuer)

		// every genesis identity starts with a cdd claim
		for _, did := range order {
			identity.AddSystematicClaim(ctx, did, primitives.CddClaim(identity.DeriveCddID(did)), 0)
		}
	}

	for _, gc := range g.Committees {
		members := make([]primitives.DID, 0, len(gc.Members))
		for _, m := range gc.Members {
			did, err := genesisDID(dids, m)
			if nil != err {
				return err
			}
			members = append(members, did)
		}
		threshold := committee.Threshold{N: gc.N, D: gc.D}
		if err := committee.Create(ctx, gc.Name, members, threshold); nil != err {
			return err
		}
	}

	for _, ga := range g.Assets {
		ticker, err := primitives.NewTicker(ga.Ticker)
		if nil != err {
			return err
		}
		owner, err := account.KeyFromBase58(ga.Owner)
		if nil != err {
			return err
		}
		if _, ok := dids[owner]; !ok {
			return fault.ErrMissingIdentity
		}
		name := ga.Name
		if "" == name {
			name = ga.Ticker
		}

		ownerCtx := ctx.WithCall(system.Signed(owner), asset.Pallet, "create_asset", system.Unlimited)
		if err := asset.CreateAsset(ownerCtx, name, ticker, ga.Divisible, ga.AssetType); nil != err {
			return err
		}
		if 0 != ga.Supply {
			ownerCtx = ctx.WithCall(system.Signed(owner), asset.Pallet, "issue", system.Unlimited)
			err := asset.Issue(ownerCtx, ticker, primitives.Balance(ga.Supply), primitives.DefaultPortfolioNumber)
			if nil != err {
				return err
			}
		}
	}
	return nil
}

func genesisDID(dids map[account.Key]primitives.DID, s string) (primitives.DID, error) {
	key, err := account.KeyFromBase58(s)
	if nil != err {
		return primitives.NoDID, err
	}
	did, ok := dids[key]
	if !ok {
		return primitives.NoDID, fault.ErrMissingIdentity
	}
	return did, nil
}
