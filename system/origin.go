// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package system

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/fault"
)

// Origin - who is executing a call
type Origin struct {
	Signer account.Key
	Root   bool
}

// Signed - origin from a signing key or a multisig address
func Signed(key account.Key) Origin {
	return Origin{Signer: key}
}

// RootOrigin - the privileged origin used by genesis and committees
func RootOrigin() Origin {
	return Origin{Root: true}
}

// IsSigned - true if there is a signer
func (o Origin) IsSigned() bool {
	return !o.Root && !o.Signer.IsZero()
}

func (o Origin) String() string {
	if o.Root {
		return "root"
	}
	return o.Signer.String()
}

// EnsureRoot - fail unless the call runs with root origin
func EnsureRoot(ctx *Context) error {
	if !ctx.origin.Root {
		return fault.ErrBadOrigin
	}
	return nil
}

// EnsureSigned - the signing key, or fail
func EnsureSigned(ctx *Context) (account.Key, error) {
	if !ctx.origin.IsSigned() {
		return account.Zero, fault.ErrBadOrigin
	}
	return ctx.origin.Signer, nil
}
