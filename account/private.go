// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"io"

	"golang.org/x/crypto/ed25519"

	"github.com/polymesh-go/polymeshd/fault"
)

// SeedSize - bytes in a private key seed
const SeedSize = ed25519.SeedSize

// PrivateKey - a signing key
type PrivateKey struct {
	key     Key
	private ed25519.PrivateKey
}

// NewPrivateKey - generate a fresh key pair
func NewPrivateKey(random io.Reader) (*PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	p := &PrivateKey{
		private: privateKey,
	}
	copy(p.key[:], publicKey)
	return p, nil
}

// PrivateKeyFromSeed - rebuild a key pair from its seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	p := &PrivateKey{
		private: privateKey,
	}
	copy(p.key[:], privateKey.Public().(ed25519.PublicKey))
	return p, nil
}

// PrivateKeyFromHex - rebuild a key pair from a hex seed
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrCannotDecodeKey
	}
	return PrivateKeyFromSeed(seed)
}

// Key - the public account key
func (p *PrivateKey) Key() Key {
	return p.key
}

// Seed - hex form of the seed
func (p *PrivateKey) Seed() string {
	return hex.EncodeToString(p.private.Seed())
}

// Sign - sign a message
func (p *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(p.private, message)
}
