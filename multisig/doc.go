// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package multisig - keyless accounts controlled by a set of signer keys
//
// a multisig address is derived from its creator and a nonce, signers
// join by accepting an authorization and any signer may propose a call
// which is dispatched with the multisig as origin once enough signers
// have approved it
package multisig
