// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package multisig

import (
	"bytes"
	"sort"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

const (
	addressTag      = "MULTI_SIG"
	multisigCounter = "multisig"
)

// Multisig - the stored multisig
type Multisig struct {
	Address      account.Key
	Creator      primitives.DID
	CreatorKey   account.Key
	SigsRequired uint64
	SignerCount  uint64
	NextProposal uint64
}

// Get - fetch a multisig by address
func Get(address account.Key) (*Multisig, error) {
	var m Multisig
	if !storage.Pool.Multisigs.GetRecord(address[:], &m) {
		return nil, fault.ErrNoSuchMultisig
	}
	return &m, nil
}

func put(m *Multisig) {
	storage.Pool.Multisigs.PutRecord(m.Address[:], m)
}

func signerKey(address account.Key, signer account.Key) []byte {
	return primitives.Key(address[:], signer[:])
}

// IsSigner - true once a key has accepted its signer authorization
func IsSigner(address account.Key, signer account.Key) bool {
	return storage.Pool.MultisigSigners.Has(signerKey(address, signer))
}

// Signers - confirmed signers in key order
func Signers(address account.Key) []account.Key {
	elements := storage.Pool.MultisigSigners.Elements(address[:])
	signers := make([]account.Key, 0, len(elements))
	for _, e := range elements {
		key, err := account.KeyFromBytes(e.Key[account.KeySize:])
		if nil == err {
			signers = append(signers, key)
		}
	}
	return signers
}

// sorted without duplicates
func uniqueKeys(keys []account.Key) []account.Key {
	sorted := append([]account.Key(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	unique := sorted[:0]
	for i, k := range sorted {
		if 0 == i || k != sorted[i-1] {
			unique = append(unique, k)
		}
	}
	return unique
}

// CreateMultisig - derive a new multisig address and offer each key a
// signer authorization
//
// the threshold is checked against the offered signers, nothing can
// execute until enough of them accept
func CreateMultisig(ctx *system.Context, signers []account.Key, sigsRequired uint64) (account.Key, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return account.Zero, err
	}
	signers = uniqueKeys(signers)
	if 0 == len(signers) {
		return account.Zero, fault.ErrNotEnoughSigners
	}
	if 0 == sigsRequired || sigsRequired > uint64(len(signers)) {
		return account.Zero, fault.ErrRequiredSignaturesOutOfBounds
	}

	nonce := system.NextID(multisigCounter)
	address := account.Derive(addressTag, nonce, caller.Key)
	if storage.Pool.Multisigs.Has(address[:]) || identity.IsLinked(address) {
		return account.Zero, fault.ErrKeyAlreadyLinked
	}

	m := &Multisig{
		Address:      address,
		Creator:      caller.DID,
		CreatorKey:   caller.Key,
		SigsRequired: sigsRequired,
	}
	put(m)
	offerSigners(ctx, m, signers)

	ctx.Deposit(Pallet, "MultiSigCreated", caller.DID, address, caller.Key, len(signers), sigsRequired)
	globalData.log.Infof("multisig: %s  creator: %s  signers: %d  required: %d", address, caller.DID, len(signers), sigsRequired)
	return address, nil
}

func offerSigners(ctx *system.Context, m *Multisig, signers []account.Key) {
	for _, signer := range signers {
		identity.Offer(ctx, m.Creator, primitives.AccountSignatory(signer), primitives.AddMultisigSigner(m.Address), 0)
	}
}

// AcceptMultisigSigner - a key takes up its offered signer slot
func AcceptMultisigSigner(ctx *system.Context, authID uint64) error {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return err
	}
	a, err := identity.TakeAuthorization(ctx, authID, primitives.AuthAddMultisigSigner)
	if nil != err {
		return err
	}
	m, err := Get(a.Data.Multisig)
	if nil != err {
		return err
	}
	if IsSigner(m.Address, key) {
		return fault.ErrAlreadyASigner
	}
	if identity.IsLinked(key) {
		return fault.ErrSignerAlreadyLinked
	}

	storage.Pool.MultisigSigners.Put(signerKey(m.Address, key), []byte{1})
	identity.LinkMultisigSigner(key, m.Address)
	m.SignerCount += 1
	put(m)

	ctx.Deposit(Pallet, "MultiSigSignerAdded", m.Address, key)
	return nil
}

// the origin of the current call must be the multisig itself
func ensureSelf(ctx *system.Context) (*Multisig, error) {
	key, err := system.EnsureSigned(ctx)
	if nil != err {
		return nil, err
	}
	return Get(key)
}

// AddMultisigSigners - offer more keys a signer slot
func AddMultisigSigners(ctx *system.Context, signers []account.Key) error {
	m, err := ensureSelf(ctx)
	if nil != err {
		return err
	}
	signers = uniqueKeys(signers)
	if 0 == len(signers) {
		return fault.ErrNotEnoughSigners
	}
	for _, signer := range signers {
		if IsSigner(m.Address, signer) {
			return fault.ErrAlreadyASigner
		}
	}
	offerSigners(ctx, m, signers)
	return nil
}

// RemoveMultisigSigners - drop confirmed signers
//
// the remaining signers must still be able to reach the threshold
func RemoveMultisigSigners(ctx *system.Context, signers []account.Key) error {
	m, err := ensureSelf(ctx)
	if nil != err {
		return err
	}
	signers = uniqueKeys(signers)
	for _, signer := range signers {
		if !IsSigner(m.Address, signer) {
			return fault.ErrNotASigner
		}
	}
	if m.SignerCount-uint64(len(signers)) < m.SigsRequired {
		return fault.ErrSignersBelowThreshold
	}

	for _, signer := range signers {
		storage.Pool.MultisigSigners.Delete(signerKey(m.Address, signer))
		identity.UnlinkMultisigSigner(signer, m.Address)
		ctx.Deposit(Pallet, "MultiSigSignerRemoved", m.Address, signer)
	}
	m.SignerCount -= uint64(len(signers))
	put(m)
	dropVotes(ctx, m, signers)
	return nil
}

// ChangeSigsRequired - set a new threshold within the confirmed signers
func ChangeSigsRequired(ctx *system.Context, sigsRequired uint64) error {
	m, err := ensureSelf(ctx)
	if nil != err {
		return err
	}
	if 0 == sigsRequired || sigsRequired > m.SignerCount {
		return fault.ErrRequiredSignaturesOutOfBounds
	}
	m.SigsRequired = sigsRequired
	put(m)
	ctx.Deposit(Pallet, "MultiSigSignaturesRequiredChanged", m.Address, sigsRequired)
	return nil
}

// the creator identity acting with its primary key
func ensureCreator(ctx *system.Context, address account.Key) (*identity.Caller, *Multisig, error) {
	caller, err := identity.EnsureCaller(ctx)
	if nil != err {
		return nil, nil, err
	}
	if err := caller.EnsurePrimary(); nil != err {
		return nil, nil, err
	}
	m, err := Get(address)
	if nil != err {
		return nil, nil, err
	}
	if m.Creator != caller.DID {
		return nil, nil, fault.ErrNotMultisigCreator
	}
	return caller, m, nil
}

// MakeMultisigPrimary - the multisig becomes the primary key of its creator
func MakeMultisigPrimary(ctx *system.Context, address account.Key) error {
	caller, m, err := ensureCreator(ctx, address)
	if nil != err {
		return err
	}
	return identity.ReplacePrimaryKey(ctx, caller.DID, m.Address)
}

// MakeMultisigSecondary - the multisig becomes a secondary key of its
// creator with whole permissions
func MakeMultisigSecondary(ctx *system.Context, address account.Key) error {
	caller, m, err := ensureCreator(ctx, address)
	if nil != err {
		return err
	}
	return identity.AddSecondaryKey(ctx, caller.DID, m.Address, primitives.WholePermissions())
}
