// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/polymesh-go/polymeshd/calendar"
	"github.com/polymesh-go/polymeshd/primitives"
)

type checkpointReply struct {
	Moment primitives.Moment `json:"moment,string"`
	Time   string            `json:"time"`
}

// offline calculation, no node is contacted
func runCheckpoints(c *cli.Context) error {
	m := configFromContext(c)

	start := primitives.Moment(c.Uint64("start"))
	if 0 == start {
		return fmt.Errorf("missing start")
	}
	unit, err := calendar.UnitFromString(c.String("unit"))
	if nil != err {
		return err
	}
	schedule := calendar.Schedule{
		Start: start,
		Period: calendar.Period{
			Unit:   unit,
			Amount: c.Uint64("amount"),
		},
	}

	// the start itself is the first checkpoint
	now := primitives.Moment(c.Uint64("now"))
	if 0 == now {
		now = start - 1
	}

	moments := schedule.Upcoming(now, c.Int("count"))
	replies := make([]checkpointReply, len(moments))
	for i, moment := range moments {
		replies[i] = checkpointReply{
			Moment: moment,
			Time:   time.Unix(int64(moment), 0).UTC().Format(time.RFC3339),
		}
	}
	return printJSON(m.w, replies)
}
