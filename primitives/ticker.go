// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package primitives

import (
	"strings"

	"github.com/polymesh-go/polymeshd/fault"
)

// TickerLength - bytes in a ticker
const TickerLength = 12

// Ticker - asset symbol, right padded with NULs
type Ticker [TickerLength]byte

// NewTicker - convert a string, upper casing it
//
// only the length limit is checked here, use Verify for the character rules
func NewTicker(s string) (Ticker, error) {
	var t Ticker
	if len(s) > TickerLength {
		return t, fault.ErrTickerTooLong
	}
	copy(t[:], strings.ToUpper(s))
	return t, nil
}

// MustTicker - for constants and tests
func MustTicker(s string) Ticker {
	t, err := NewTicker(s)
	if nil != err {
		panic(err)
	}
	return t
}

// Len - length of the prefix after which only NULs appear
func (t Ticker) Len() int {
	for i := TickerLength - 1; i >= 0; i -= 1 {
		if 0 != t[i] {
			return i + 1
		}
	}
	return 0
}

// Verify - check the ticker character rules and the configured length
func (t Ticker) Verify(maximumLength int) error {
	if 0 == t[0] {
		return fault.ErrTickerFirstByteNotValid
	}
	n := t.Len()
	if n > maximumLength {
		return fault.ErrTickerTooLong
	}
	for _, c := range t[:n] {
		if !validTickerCharacter(c) {
			return fault.ErrInvalidTickerCharacter
		}
	}
	return nil
}

func validTickerCharacter(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case '_' == c, '-' == c, '.' == c, '/' == c:
		return true
	}
	return false
}

// Bytes - the padded ticker
func (t Ticker) Bytes() []byte {
	return t[:]
}

// String - without the padding
func (t Ticker) String() string {
	return string(t[:t.Len()])
}

// MarshalText - convert to text
func (t Ticker) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText - convert from text
func (t *Ticker) UnmarshalText(s []byte) error {
	ticker, err := NewTicker(string(s))
	if nil != err {
		return err
	}
	*t = ticker
	return nil
}
