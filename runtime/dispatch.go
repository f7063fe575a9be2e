// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package runtime

import (
	"sort"

	"github.com/polymesh-go/polymeshd/asset"
	"github.com/polymesh-go/polymeshd/committee"
	"github.com/polymesh-go/polymeshd/compliance"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/identity"
	"github.com/polymesh-go/polymeshd/multisig"
	"github.com/polymesh-go/polymeshd/portfolio"
	"github.com/polymesh-go/polymeshd/settlement"
	"github.com/polymesh-go/polymeshd/system"
)

// DispatchWeight - base cost of routing any call
const DispatchWeight system.Weight = 10

// SystemPallet - name of the pallet of the runtime itself
const SystemPallet = "System"

// RemarkArgs - arguments of System.remark
type RemarkArgs struct {
	Note []byte
}

func systemCalls() map[string]system.Handler {
	return map[string]system.Handler{
		"remark": func(ctx *system.Context, call system.Call) error {
			var args RemarkArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return system.Remark(ctx, args.Note)
		},
	}
}

func buildCalls() map[string]system.Handler {
	pallets := map[string]map[string]system.Handler{
		SystemPallet:      systemCalls(),
		identity.Pallet:   identity.Calls(),
		portfolio.Pallet:  portfolio.Calls(),
		asset.Pallet:      asset.Calls(),
		compliance.Pallet: compliance.Calls(),
		settlement.Pallet: settlement.Calls(),
		multisig.Pallet:   multisig.Calls(),
		committee.Pallet:  committee.Calls(),
	}
	calls := make(map[string]system.Handler)
	for pallet, methods := range pallets {
		for method, handler := range methods {
			calls[pallet+"."+method] = handler
		}
	}
	return calls
}

// CallNames - every dispatchable "Pallet.method" in sorted order
func CallNames() []string {
	globalData.RLock()
	defer globalData.RUnlock()
	names := make([]string, 0, len(globalData.calls))
	for name := range globalData.calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func handler(call system.Call) (system.Handler, error) {
	globalData.RLock()
	defer globalData.RUnlock()
	h, ok := globalData.calls[call.Name()]
	if !ok {
		return nil, fault.ErrUnknownCall
	}
	return h, nil
}

// the router for calls made from inside other calls, multisig and
// committee proposals
type dispatcher struct{}

// Dispatch - run a call in the given context
func (dispatcher) Dispatch(ctx *system.Context, call system.Call) error {
	h, err := handler(call)
	if nil != err {
		return err
	}
	if err := ctx.Consume(DispatchWeight); nil != err {
		return err
	}
	return h(ctx, call)
}

// Dispatcher - the router used by every context the runtime creates
func Dispatcher() system.Dispatcher {
	return dispatcher{}
}
