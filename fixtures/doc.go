// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
//
// a test calls Setup, which starts logging into a throwaway directory,
// opens in-memory storage, starts the runtime and writes a genesis
// block, and then works inside the transaction returned by Begin
package fixtures
