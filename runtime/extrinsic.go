// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/merkle"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
	"github.com/polymesh-go/polymeshd/util"
)

// Extrinsic - a signed call submitted by an account
type Extrinsic struct {
	Signer    account.Key       `json:"signer"`
	Nonce     uint64            `json:"nonce,string"`
	Call      system.Call       `json:"call"`
	Signature account.Signature `json:"signature"`
}

// SigningMessage - varint(nonce) ++ packed call
func SigningMessage(nonce uint64, call system.Call) []byte {
	message := util.Packed{}.AppendUint64(nonce)
	return append(message, call.Pack()...)
}

// Sign - create a signed extrinsic
func Sign(key *account.PrivateKey, nonce uint64, call system.Call) *Extrinsic {
	return &Extrinsic{
		Signer:    key.Key(),
		Nonce:     nonce,
		Call:      call,
		Signature: key.Sign(SigningMessage(nonce, call)),
	}
}

// Verify - check the signature
func (x *Extrinsic) Verify() error {
	return x.Signer.Verify(SigningMessage(x.Nonce, x.Call), x.Signature)
}

// Pack - the whole envelope
func (x *Extrinsic) Pack() util.Packed {
	message := util.Packed{}.AppendBytes(x.Signer[:])
	message = append(message, SigningMessage(x.Nonce, x.Call)...)
	return message.AppendBytes(x.Signature)
}

// Hash - digest of the envelope, the leaf of the extrinsics root
func (x *Extrinsic) Hash() merkle.Digest {
	return merkle.NewDigest(x.Pack())
}

// Nonce - the next nonce expected from an account
func Nonce(key account.Key) uint64 {
	n, _ := storage.Pool.Nonces.GetN(key[:])
	return n
}

// check and consume the nonce, must be in the block transaction
func useNonce(x *Extrinsic) error {
	if Nonce(x.Signer) != x.Nonce {
		return fault.ErrInvalidNonce
	}
	storage.Pool.Nonces.PutN(x.Signer[:], x.Nonce+1)
	return nil
}
