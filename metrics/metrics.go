// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/polymesh-go/polymeshd/runtime"
	"github.com/polymesh-go/polymeshd/settlement"
)

// collectors of one registry
type collectors struct {
	blocks       prometheus.Counter
	height       prometheus.Gauge
	extrinsics   *prometheus.CounterVec
	events       *prometheus.CounterVec
	instructions *prometheus.CounterVec
	pending      prometheus.Gauge
	blockTime    prometheus.Histogram
}

// extrinsic outcomes
const (
	outcomeSuccess  = "success"
	outcomeFailed   = "failed"
	outcomeExcluded = "excluded"
)

// settlement events counted as instruction outcomes
var instructionOutcomes = map[string]string{
	"InstructionCreated":  "created",
	"InstructionExecuted": "executed",
	"InstructionFailed":   "failed",
	"InstructionRejected": "rejected",
}

func newCollectors(registry *prometheus.Registry) *collectors {
	c := &collectors{
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "polymeshd_blocks_total",
			Help: "Blocks produced since start",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polymeshd_block_height",
			Help: "Number of the chain head",
		}),
		extrinsics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "polymeshd_extrinsics_total",
			Help: "Extrinsics offered to blocks by outcome",
		}, []string{"outcome"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "polymeshd_events_total",
			Help: "Events deposited by pallet",
		}, []string{"pallet"}),
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "polymeshd_settlement_instructions_total",
			Help: "Settlement instructions by outcome",
		}, []string{"outcome"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "polymeshd_pending_extrinsics",
			Help: "Extrinsics waiting for a block",
		}),
		blockTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "polymeshd_block_production_seconds",
			Help:    "Time spent producing a block",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
	registry.MustRegister(
		c.blocks,
		c.height,
		c.extrinsics,
		c.events,
		c.instructions,
		c.pending,
		c.blockTime,
	)
	return c
}

// observe one committed block
func (c *collectors) observe(block *runtime.Block) {
	c.blocks.Inc()
	c.height.Set(float64(block.Header.Number))

	for _, r := range block.Results {
		switch {
		case !r.Included:
			c.extrinsics.WithLabelValues(outcomeExcluded).Inc()
		case "" != r.Error:
			c.extrinsics.WithLabelValues(outcomeFailed).Inc()
		default:
			c.extrinsics.WithLabelValues(outcomeSuccess).Inc()
		}
	}

	for _, e := range block.Events {
		c.events.WithLabelValues(e.Pallet).Inc()
		if settlement.Pallet != e.Pallet {
			continue
		}
		if outcome, ok := instructionOutcomes[e.Name]; ok {
			c.instructions.WithLabelValues(outcome).Inc()
		}
	}
}
