// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polymesh-go/polymeshd/background"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/messagebus"
	"github.com/polymesh-go/polymeshd/runtime"
)

// Configuration - metrics section of the configuration file
type Configuration struct {
	Listen string `gluamapper:"listen" json:"listen"`
	Path   string `gluamapper:"path" json:"path"`
}

const defaultPath = "/metrics"

// globals
type globalDataType struct {
	sync.RWMutex
	log        *logger.L
	registry   *prometheus.Registry
	collectors *collectors
	server     *http.Server

	listener   listenerData
	background *background.T

	initialised bool
}

var globalData globalDataType

// Initialise - register collectors, follow committed blocks and serve
// the registry if a listen address is configured
func Initialise(configuration Configuration) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("metrics")
	if nil == globalData.log {
		return fault.ErrInvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.registry = prometheus.NewRegistry()
	globalData.registry.MustRegister(prometheus.NewGoCollector())
	globalData.collectors = newCollectors(globalData.registry)

	if "" != configuration.Listen {
		path := configuration.Path
		if "" == path {
			path = defaultPath
		}
		mux := http.NewServeMux()
		mux.Handle(path, Handler())

		l, err := net.Listen("tcp", configuration.Listen)
		if nil != err {
			globalData.log.Errorf("listen: %q  error: %s", configuration.Listen, err)
			return err
		}
		globalData.server = &http.Server{
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			if err := globalData.server.Serve(l); nil != err && http.ErrServerClosed != err {
				globalData.log.Errorf("serve error: %s", err)
			}
		}()
		globalData.log.Infof("serving: %s%s", configuration.Listen, path)
	}

	globalData.listener.log = globalData.log
	globalData.listener.queue = messagebus.Bus.Broadcast.Chan(0)
	globalData.background = background.Start(background.Processes{&globalData.listener}, globalData.collectors)

	globalData.initialised = true
	return nil
}

// Finalise - stop serving and following blocks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.server {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = globalData.server.Shutdown(ctx)
		cancel()
		globalData.server = nil
	}
	globalData.background.Stop()
	messagebus.Bus.Broadcast.Release(globalData.listener.queue)

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// Handler - the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(globalData.registry, promhttp.HandlerOpts{})
}

// Gatherer - the registry, for tests and embedding
func Gatherer() prometheus.Gatherer {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.registry
}

// ObserveProduction - time spent producing one block
func ObserveProduction(d time.Duration) {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil != globalData.collectors {
		globalData.collectors.blockTime.Observe(d.Seconds())
	}
}

// SetPending - current length of the extrinsic queue
func SetPending(n int) {
	globalData.RLock()
	defer globalData.RUnlock()
	if nil != globalData.collectors {
		globalData.collectors.pending.Set(float64(n))
	}
}

// follows committed blocks on the message bus
type listenerData struct {
	log   *logger.L
	queue <-chan messagebus.Message
}

// Run - count every broadcast block
func (state *listenerData) Run(args interface{}, shutdown <-chan struct{}) {
	c := args.(*collectors)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m, ok := <-state.queue:
			if !ok {
				break loop
			}
			if "block" != m.Command || 0 == len(m.Parameters) {
				continue
			}
			if block, ok := m.Parameters[0].(*runtime.Block); ok {
				c.observe(block)
				state.log.Debugf("block: %d", block.Header.Number)
			}
		}
	}
}
