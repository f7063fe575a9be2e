// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
)

// PortfolioNumber - user portfolio number, zero is the default portfolio
type PortfolioNumber uint64

// DefaultPortfolioNumber - the portfolio every identity has
const DefaultPortfolioNumber PortfolioNumber = 0

// PortfolioID - a portfolio of an identity
type PortfolioID struct {
	DID    DID
	Number PortfolioNumber
}

// PortfolioIDSize - bytes in the key form
const PortfolioIDSize = DIDSize + 8

// DefaultPortfolio - the default portfolio of an identity
func DefaultPortfolio(did DID) PortfolioID {
	return PortfolioID{DID: did}
}

// UserPortfolio - a numbered portfolio of an identity
func UserPortfolio(did DID, number PortfolioNumber) PortfolioID {
	return PortfolioID{DID: did, Number: number}
}

// IsDefault - true for the default portfolio
func (p PortfolioID) IsDefault() bool {
	return DefaultPortfolioNumber == p.Number
}

// Bytes - did ++ number
func (p PortfolioID) Bytes() []byte {
	return Key(p.DID[:], Uint64Bytes(uint64(p.Number)))
}

// PortfolioIDFromBytes - inverse of Bytes
func PortfolioIDFromBytes(b []byte) (PortfolioID, error) {
	if PortfolioIDSize != len(b) {
		return PortfolioID{}, fault.ErrInvalidKeyLength
	}
	var p PortfolioID
	copy(p.DID[:], b[:DIDSize])
	p.Number = PortfolioNumber(binary.BigEndian.Uint64(b[DIDSize:]))
	return p, nil
}

// Compare - order by key bytes
func (p PortfolioID) Compare(other PortfolioID) int {
	return bytes.Compare(p.Bytes(), other.Bytes())
}

// String - did/number
func (p PortfolioID) String() string {
	if p.IsDefault() {
		return p.DID.String() + "/default"
	}
	return p.DID.String() + "/" + strconv.FormatUint(uint64(p.Number), 10)
}

// SignatoryKind - the two kinds of party an authorization can target
type SignatoryKind uint8

// signatory kinds
const (
	SignatoryIdentity SignatoryKind = 1
	SignatoryAccount  SignatoryKind = 2
)

// Signatory - either an identity or an account key
type Signatory struct {
	Kind SignatoryKind
	DID  DID
	Key  account.Key
}

// IdentitySignatory - an identity as a signatory
func IdentitySignatory(did DID) Signatory {
	return Signatory{Kind: SignatoryIdentity, DID: did}
}

// AccountSignatory - a key as a signatory
func AccountSignatory(key account.Key) Signatory {
	return Signatory{Kind: SignatoryAccount, Key: key}
}

// IsIdentity - true for an identity signatory
func (s Signatory) IsIdentity() bool {
	return SignatoryIdentity == s.Kind
}

// Bytes - kind ++ 32 bytes
func (s Signatory) Bytes() []byte {
	if s.IsIdentity() {
		return Key([]byte{byte(s.Kind)}, s.DID[:])
	}
	return Key([]byte{byte(s.Kind)}, s.Key[:])
}

// SignatoryFromBytes - inverse of Bytes
func SignatoryFromBytes(b []byte) (Signatory, error) {
	if 1+DIDSize != len(b) {
		return Signatory{}, fault.ErrInvalidKeyLength
	}
	switch SignatoryKind(b[0]) {
	case SignatoryIdentity:
		did, _ := DIDFromBytes(b[1:])
		return IdentitySignatory(did), nil
	case SignatoryAccount:
		key, _ := account.KeyFromBytes(b[1:])
		return AccountSignatory(key), nil
	}
	return Signatory{}, fault.ErrInvalidKeyLength
}

// String - printable form
func (s Signatory) String() string {
	if s.IsIdentity() {
		return "identity:" + s.DID.String()
	}
	return "key:" + s.Key.String()
}
