// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pending

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/polymesh-go/polymeshd/constants"
)

// expiry background
type expiryData struct {
	log *logger.L
}

// Run - expiry loop
func (state *expiryData) Run(args interface{}, shutdown <-chan struct{}) {
	log := state.log
	global := args.(*globalDataType)

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(constants.PendingExpiryInterval):
			expired := 0
			for i := 0; i < shards; i += 1 {
				global.cache[i].Lock()
				for k, item := range global.cache[i].table {
					if time.Since(item.timestamp) > constants.PendingTimeout {
						log.Debugf("expired: %s", k)
						delete(global.cache[i].table, k)
						expired += 1
					}
				}
				global.cache[i].Unlock()
			}
			if expired > 0 {
				log.Infof("expired: %d", expired)
			}
		}
	}
	log.Info("stopped")
}
