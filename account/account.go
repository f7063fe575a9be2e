// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/util"
)

// KeySize - bytes in an account key
const KeySize = ed25519.PublicKeySize

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm
	ed25519Code    = 1
)

// Key - an account key
//
// either an ed25519 public key or an address derived from a hash that
// has no private key, e.g. a multisig
type Key [KeySize]byte

// Zero - the unset key
var Zero Key

// IsZero - true for the unset key
func (k Key) IsZero() bool {
	return k == Zero
}

// Bytes - the raw key bytes
func (k Key) Bytes() []byte {
	return k[:]
}

// String - base58 text: varint(code) ++ key ++ checksum
func (k Key) String() string {
	return base58.Encode(k.encode(publicKeyCode | ed25519Code<<algorithmShift))
}

// GoString - for %#v
func (k Key) GoString() string {
	return "<key:" + hex.EncodeToString(k[:]) + ">"
}

func (k Key) encode(code uint64) []byte {
	buffer := util.ToVarint64(code)
	buffer = append(buffer, k[:]...)
	checksum := blake2b.Sum256(buffer)
	return append(buffer, checksum[:checksumLength]...)
}

// MarshalText - convert key to base58 text
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - convert base58 text to a key
func (k *Key) UnmarshalText(s []byte) error {
	key, err := KeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*k = key
	return nil
}

// KeyFromBase58 - decode the text form of a key
func KeyFromBase58(s string) (Key, error) {
	decoded, err := base58.Decode(s)
	if nil != err {
		return Zero, fault.ErrCannotDecodeKey
	}

	code, codeLength := util.FromVarint64(decoded)
	if 0 == codeLength || code&publicKeyCode != publicKeyCode {
		return Zero, fault.ErrCannotDecodeKey
	}

	if len(decoded) != codeLength+KeySize+checksumLength {
		return Zero, fault.ErrInvalidKeyLength
	}

	checksumStart := len(decoded) - checksumLength
	checksum := blake2b.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return Zero, fault.ErrChecksumMismatch
	}

	var k Key
	copy(k[:], decoded[codeLength:checksumStart])
	return k, nil
}

// KeyFromBytes - convert raw bytes to a key
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if KeySize != len(b) {
		return k, fault.ErrInvalidKeyLength
	}
	copy(k[:], b)
	return k, nil
}

// Derive - an address with no private key, from a domain tag,
// a nonce and a creator key
func Derive(tag string, nonce uint64, creator Key) Key {
	message := util.Packed{}.AppendString(tag).AppendUint64(nonce)
	message = append(message, creator[:]...)
	return Key(blake2b.Sum256(message))
}

// Verify - check an ed25519 signature made by this key
func (k Key) Verify(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(k[:]), message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
