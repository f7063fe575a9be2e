// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"time"

	"github.com/polymesh-go/polymeshd/background"
)

type ticker struct {
	interval time.Duration
	ticks    int
}

func Example() {
	t := &ticker{
		interval: time.Millisecond,
	}

	p := background.Start(background.Processes{t}, "blocks")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	fmt.Println(t.ticks > 0)
	// Output: true
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	tick := time.NewTicker(state.interval)
	defer tick.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-tick.C:
			state.ticks += 1
		}
	}
}
