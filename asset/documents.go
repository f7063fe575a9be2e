// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// Document - a document linked to an asset
type Document struct {
	ID          uint32
	Name        string
	URI         string
	ContentHash []byte
	DocType     string
	FilingDate  primitives.Moment
}

func documentCounter(ticker primitives.Ticker) string {
	return "document:" + string(ticker[:])
}

func documentKey(ticker primitives.Ticker, id uint32) []byte {
	return primitives.Key(ticker[:], primitives.Uint32Bytes(id))
}

// AddDocuments - link documents, each receives the next document id
func AddDocuments(ctx *system.Context, ticker primitives.Ticker, documents []Document) ([]uint32, error) {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return nil, err
	}
	if _, err := ensureToken(ticker); nil != err {
		return nil, err
	}
	ids := make([]uint32, 0, len(documents))
	for _, d := range documents {
		if len(d.Name) > maximumDocumentFieldLength || len(d.URI) > maximumDocumentFieldLength || len(d.DocType) > maximumDocumentFieldLength {
			return nil, fault.ErrDocumentFieldTooLong
		}
		d.ID = uint32(system.NextID(documentCounter(ticker)))
		storage.Pool.Documents.PutRecord(documentKey(ticker, d.ID), &d)
		ctx.Deposit(Pallet, "DocumentAdded", ticker, d.ID, d.Name)
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// RemoveDocuments - unlink documents
func RemoveDocuments(ctx *system.Context, ticker primitives.Ticker, ids []uint32) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	for _, id := range ids {
		key := documentKey(ticker, id)
		if !storage.Pool.Documents.Has(key) {
			return fault.ErrDocumentDoesNotExist
		}
		storage.Pool.Documents.Delete(key)
		ctx.Deposit(Pallet, "DocumentRemoved", ticker, id)
	}
	return nil
}

// Documents - linked documents in id order
func Documents(ticker primitives.Ticker) []Document {
	elements := storage.Pool.Documents.Elements(ticker[:])
	documents := make([]Document, 0, len(elements))
	for _, e := range elements {
		var d Document
		if nil == storage.Unpack(e.Value, &d) {
			d.ID = binary.BigEndian.Uint32(e.Key[primitives.TickerLength:])
			documents = append(documents, d)
		}
	}
	return documents
}
