// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package primitives - value types shared by all modules
package primitives

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/util"
)

// Balance - asset amounts in the smallest indivisible unit
type Balance uint64

// OneUnit - the amount that represents one whole token
const OneUnit Balance = 1000000

// Moment - seconds since the Unix epoch
type Moment uint64

// DIDSize - bytes in an identity handle
const DIDSize = 32

// DID - opaque identity handle
type DID [DIDSize]byte

// NoDID - the unset identity
var NoDID DID

// DeriveDID - mint a handle from a nonce and the creator key
func DeriveDID(nonce uint64, creator account.Key) DID {
	message := util.Packed{}.AppendString("IDENTITY").AppendUint64(nonce)
	message = append(message, creator[:]...)
	return DID(blake2b.Sum256(message))
}

// IsZero - true for the unset identity
func (d DID) IsZero() bool {
	return d == NoDID
}

// Bytes - the raw handle
func (d DID) Bytes() []byte {
	return d[:]
}

// Compare - order by handle bytes
func (d DID) Compare(other DID) int {
	return bytes.Compare(d[:], other[:])
}

// String - 0x prefixed hex
func (d DID) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

// MarshalText - convert to hex text
func (d DID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText - convert from 0x prefixed hex text
func (d *DID) UnmarshalText(s []byte) error {
	b, err := hex.DecodeString(strings.TrimPrefix(string(s), "0x"))
	if nil != err {
		return err
	}
	if DIDSize != len(b) {
		return fault.ErrInvalidKeyLength
	}
	copy(d[:], b)
	return nil
}

// DIDFromBytes - convert raw bytes
func DIDFromBytes(b []byte) (DID, error) {
	var d DID
	if DIDSize != len(b) {
		return d, fault.ErrInvalidKeyLength
	}
	copy(d[:], b)
	return d, nil
}

// Uint64Bytes - big endian encoding used in storage keys
func Uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Uint32Bytes - big endian encoding used in storage keys
func Uint32Bytes(n uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, n)
	return b
}

// Key - concatenate key components
func Key(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}
