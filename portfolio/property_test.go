// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package portfolio_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/polymesh-go/polymeshd/fixtures"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/primitives"
)

// operations: 0 credit, 1 debit, 2 lock, 3 unlock
type operation struct {
	Kind   int
	Amount primitives.Balance
}

func genOperation() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 3),
		gen.UInt64Range(0, 1000),
	).Map(func(values []interface{}) operation {
		return operation{
			Kind:   values[0].(int),
			Amount: primitives.Balance(values[1].(uint64)),
		}
	})
}

func TestLockedNeverExceedsBalance(t *testing.T) {
	fixtures.Setup(t)
	defer fixtures.Teardown()

	chain := fixtures.Begin(t)
	defer chain.Abort()

	_, did := chain.Identity("alice")
	id := primitives.DefaultPortfolio(did)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("locked <= total after any operation sequence", prop.ForAll(
		func(operations []operation) bool {
			for _, op := range operations {
				switch op.Kind {
				case 0:
					portfolio.Credit(id, acme, op.Amount)
				case 1:
					_ = portfolio.Debit(id, acme, op.Amount)
				case 2:
					_ = portfolio.Lock(id, acme, op.Amount)
				case 3:
					_ = portfolio.Unlock(id, acme, op.Amount)
				}
				if portfolio.Locked(id, acme) > portfolio.Balance(id, acme) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genOperation()),
	))

	properties.TestingRun(t)
}
