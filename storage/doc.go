// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk state store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes happen inside a single block transaction made of stacked
// layers: Savepoint pushes a layer, Release merges it down, Rollback
// drops it.  Commit writes the only remaining layer as one batch.
// Reads and scans see the merged view; scans are ordered by key bytes.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. number       = big endian uint64 (8 bytes)
// 4. did          = 32 byte identity handle
// 5. key          = 32 byte account key
// 6. signatory    = 1 byte kind ++ 32 bytes (did or key)
// 7. ticker       = 12 bytes, NUL padded
// 8. portfolio    = did ++ number (0 is the default portfolio)
// 9. record       = canonical CBOR encoding of the record struct
//
// System:
//
//   @ ++ name                     - chain state (block number, moment, parent hash)
//   B ++ number                   - block header record
//   E ++ number ++ index(4)       - event record
//   N ++ key                      - next extrinsic nonce (number)
//   # ++ name ++ subkey           - monotonic counters (number)
//
// Identity:
//
//   d ++ did                      - identity record
//   k ++ key                      - key record (owning did and role)
//   K ++ did ++ key               - secondary key permissions record
//   f ++ did                      - secondary keys frozen
//   h ++ parent ++ child          - child identities
//   a ++ signatory ++ number      - authorization record
//   g ++ did ++ number            - authorizations given (target signatory)
//   r ++ signatory ++ number      - revoked authorization marker
//   c ++ did ++ type ++ custom(4) ++ issuer ++ scope
//                                 - claim record
//   u ++ id(4)                    - custom claim type name
//   U ++ name                     - custom claim type id
//   p ++ did                      - cdd provider membership record
//   y ++ key                      - relayer paying key
//
// Portfolio:
//
//   F ++ did ++ number            - portfolio name
//   L ++ did ++ name              - portfolio number
//   i ++ portfolio ++ ticker      - portfolio balance (number)
//   j ++ portfolio ++ ticker      - portfolio locked balance (number)
//   Q ++ portfolio ++ ticker ++ number
//                                 - nft possession
//   J ++ portfolio ++ ticker ++ number
//                                 - nft lock (instruction id)
//   S ++ portfolio                - non-owner custodian did
//   R ++ custodian ++ portfolio   - portfolios in custody
//   I ++ portfolio ++ number      - portfolio mentioned by open instruction
//
// Asset:
//
//   t ++ ticker                   - ticker registration record
//   T ++ ticker                   - security token record
//   z ++ ticker                   - asset frozen marker
//   b ++ ticker ++ did            - identity balance (number)
//   D ++ ticker ++ number         - document record
//   A ++ ticker ++ did            - external agent group
//   m ++ ticker ++ number         - local metadata key record
//   M ++ number                   - global metadata key record
//   n ++ ticker ++ name           - local metadata key id
//   G ++ name                     - global metadata key id
//   v ++ ticker ++ kind ++ number - metadata value
//   V ++ ticker ++ kind ++ number - metadata value detail record
//   x ++ ticker ++ number         - checkpoint record
//   X ++ ticker ++ did ++ number  - balance snapshot at checkpoint (number)
//   s ++ ticker ++ number         - checkpoint schedule record
//   q ++ moment ++ ticker ++ number
//                                 - checkpoint schedule due queue
//   w ++ ticker ++ did            - mandatory mediator
//   l ++ ticker                   - nft collection record
//   O ++ ticker ++ number         - nft record
//
// Compliance:
//
//   1 ++ ticker                   - asset compliance record
//   2 ++ ticker                   - default trusted issuers record
//
// Settlement:
//
//   3 ++ number                   - venue record
//   4 ++ did ++ number            - venues created by identity
//   5 ++ number                   - instruction record
//   6 ++ block ++ number          - instructions scheduled at block
//   7 ++ ticker                   - venue filtering enabled marker
//   8 ++ ticker ++ number         - allowed venue
//   9 ++ key ++ number            - receipt uid claimed by signer
//
// Multisig:
//
//   & ++ address                  - multisig record
//   * ++ address ++ signatory     - confirmed signer
//   + ++ key                      - multisig owning signer key
//   = ++ address ++ number        - proposal record
//   ~ ++ address ++ number ++ signatory
//                                 - vote (1 aye, 0 nay)
//
// Committee:
//
//   ^ ++ name                     - committee record
//   % ++ name ++ 0x00 ++ hash     - committee proposal record
//
// Testing:
//
//   Z ++ key                      - testing data
package storage
