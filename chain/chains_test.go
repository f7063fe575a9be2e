// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/polymesh-go/polymeshd/chain"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name    string
		valid   bool
		testing bool
	}{
		{chain.Live, true, false},
		{chain.Testing, true, true},
		{chain.Local, true, true},
		{"bitmark", false, false},
		{"", false, false},
	}

	for i, item := range tests {
		if chain.Valid(item.name) != item.valid {
			t.Errorf("%d: %q  expected valid: %v", i, item.name, item.valid)
		}
		if chain.IsTesting(item.name) != item.testing {
			t.Errorf("%d: %q  expected testing: %v", i, item.name, item.testing)
		}
	}
}
