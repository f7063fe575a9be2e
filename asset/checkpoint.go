// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"encoding/binary"

	"github.com/polymesh-go/polymeshd/calendar"
	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/storage"
	"github.com/polymesh-go/polymeshd/system"
)

// Checkpoint - supply and time at which a checkpoint was taken
type Checkpoint struct {
	ID          uint64
	TotalSupply primitives.Balance
	At          primitives.Moment
}

// CheckpointSchedule - a recurring checkpoint
//
// a zero Remaining means the schedule never ends
type CheckpointSchedule struct {
	ID          uint64
	Schedule    calendar.Schedule
	Remaining   uint32
	NextAt      primitives.Moment
	Checkpoints []uint64
}

func checkpointCounter(ticker primitives.Ticker) string {
	return "checkpoint:" + string(ticker[:])
}

func scheduleCounter(ticker primitives.Ticker) string {
	return "schedule:" + string(ticker[:])
}

func checkpointKey(ticker primitives.Ticker, id uint64) []byte {
	return primitives.Key(ticker[:], primitives.Uint64Bytes(id))
}

func queueKey(at primitives.Moment, ticker primitives.Ticker, id uint64) []byte {
	return primitives.Key(primitives.Uint64Bytes(uint64(at)), ticker[:], primitives.Uint64Bytes(id))
}

// record the balance held before the first change since the latest
// checkpoint, later changes keep the first value
func snapshot(ticker primitives.Ticker, did primitives.DID, old primitives.Balance) {
	latest := system.CurrentID(checkpointCounter(ticker))
	if 0 == latest {
		return
	}
	key := primitives.Key(ticker[:], did[:], primitives.Uint64Bytes(latest))
	if storage.Pool.CheckpointBalances.Has(key) {
		return
	}
	storage.Pool.CheckpointBalances.PutN(key, uint64(old))
}

// LatestCheckpoint - the last checkpoint id of an asset, zero if none
func LatestCheckpoint(ticker primitives.Ticker) uint64 {
	return system.CurrentID(checkpointCounter(ticker))
}

// CreateCheckpoint - an agent takes a checkpoint now
func CreateCheckpoint(ctx *system.Context, ticker primitives.Ticker) (uint64, error) {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return 0, err
	}
	return createCheckpoint(ctx, ticker, ctx.Now())
}

func createCheckpoint(ctx *system.Context, ticker primitives.Ticker, at primitives.Moment) (uint64, error) {
	t, err := ensureToken(ticker)
	if nil != err {
		return 0, err
	}
	c := Checkpoint{
		ID:          system.NextID(checkpointCounter(ticker)),
		TotalSupply: t.TotalSupply,
		At:          at,
	}
	storage.Pool.Checkpoints.PutRecord(checkpointKey(ticker, c.ID), &c)
	ctx.Deposit(Pallet, "CheckpointCreated", ticker, c.ID, c.TotalSupply, c.At)
	return c.ID, nil
}

// GetCheckpoint - fetch a checkpoint
func GetCheckpoint(ticker primitives.Ticker, id uint64) (*Checkpoint, error) {
	var c Checkpoint
	if !storage.Pool.Checkpoints.GetRecord(checkpointKey(ticker, id), &c) {
		return nil, fault.ErrCheckpointDoesNotExist
	}
	return &c, nil
}

// Checkpoints - all checkpoints of an asset in id order
func Checkpoints(ticker primitives.Ticker) []Checkpoint {
	elements := storage.Pool.Checkpoints.Elements(ticker[:])
	checkpoints := make([]Checkpoint, 0, len(elements))
	for _, e := range elements {
		var c Checkpoint
		if nil == storage.Unpack(e.Value, &c) {
			checkpoints = append(checkpoints, c)
		}
	}
	return checkpoints
}

// TotalSupplyAt - supply when a checkpoint was taken
func TotalSupplyAt(ticker primitives.Ticker, id uint64) (primitives.Balance, error) {
	c, err := GetCheckpoint(ticker, id)
	if nil != err {
		return 0, err
	}
	return c.TotalSupply, nil
}

// BalanceAt - identity balance when a checkpoint was taken
//
// the first snapshot at or after the checkpoint holds the value, if the
// balance never changed since then it is the current balance
func BalanceAt(ticker primitives.Ticker, did primitives.DID, id uint64) (primitives.Balance, error) {
	if 0 == id || id > LatestCheckpoint(ticker) {
		return 0, fault.ErrCheckpointDoesNotExist
	}
	elements := storage.Pool.CheckpointBalances.ElementsFrom(primitives.Key(ticker[:], did[:]), primitives.Uint64Bytes(id))
	if 0 == len(elements) {
		return BalanceOf(ticker, did), nil
	}
	return primitives.Balance(binary.BigEndian.Uint64(elements[0].Value)), nil
}

// CreateSchedule - an agent adds a checkpoint schedule
//
// a start at or before now takes the first checkpoint immediately
func CreateSchedule(ctx *system.Context, ticker primitives.Ticker, schedule calendar.Schedule, remaining uint32) (uint64, error) {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return 0, err
	}
	if _, err := ensureToken(ticker); nil != err {
		return 0, err
	}
	if !schedule.Period.Valid() {
		return 0, fault.ErrInvalidSchedule
	}

	s := CheckpointSchedule{
		ID:        system.NextID(scheduleCounter(ticker)),
		Schedule:  schedule,
		Remaining: remaining,
	}
	ctx.Deposit(Pallet, "ScheduleCreated", ticker, s.ID, schedule.Start, schedule.Period)

	if schedule.Start <= ctx.Now() {
		if err := fire(ctx, ticker, &s, ctx.Now()); nil != err {
			return 0, err
		}
		return s.ID, nil
	}
	s.NextAt = schedule.Start
	storage.Pool.Schedules.PutRecord(checkpointKey(ticker, s.ID), &s)
	storage.Pool.ScheduleQueue.Put(queueKey(s.NextAt, ticker, s.ID), []byte{1})
	return s.ID, nil
}

// take every checkpoint of a schedule due from at up to now, each
// stamped with its own moment, then requeue the schedule or retire it
func fire(ctx *system.Context, ticker primitives.Ticker, s *CheckpointSchedule, at primitives.Moment) error {
	now := ctx.Now()
	for {
		id, err := createCheckpoint(ctx, ticker, at)
		if nil != err {
			return err
		}
		s.Checkpoints = append(s.Checkpoints, id)

		done := false
		if 0 != s.Remaining {
			s.Remaining -= 1
			done = 0 == s.Remaining
		}
		next, ok := s.Schedule.Next(at)
		if done || !ok || next <= at {
			storage.Pool.Schedules.Delete(checkpointKey(ticker, s.ID))
			ctx.Deposit(Pallet, "ScheduleCompleted", ticker, s.ID)
			return nil
		}
		if next > now {
			s.NextAt = next
			storage.Pool.Schedules.PutRecord(checkpointKey(ticker, s.ID), s)
			storage.Pool.ScheduleQueue.Put(queueKey(next, ticker, s.ID), []byte{1})
			return nil
		}
		at = next
	}
}

// GetSchedule - fetch a live schedule
func GetSchedule(ticker primitives.Ticker, id uint64) (*CheckpointSchedule, error) {
	var s CheckpointSchedule
	if !storage.Pool.Schedules.GetRecord(checkpointKey(ticker, id), &s) {
		return nil, fault.ErrScheduleDoesNotExist
	}
	return &s, nil
}

// Schedules - live schedules of an asset
func Schedules(ticker primitives.Ticker) []CheckpointSchedule {
	elements := storage.Pool.Schedules.Elements(ticker[:])
	schedules := make([]CheckpointSchedule, 0, len(elements))
	for _, e := range elements {
		var s CheckpointSchedule
		if nil == storage.Unpack(e.Value, &s) {
			schedules = append(schedules, s)
		}
	}
	return schedules
}

// RemoveSchedule - an agent stops a schedule
func RemoveSchedule(ctx *system.Context, ticker primitives.Ticker, id uint64) error {
	if _, err := ensureAgent(ctx, ticker, false); nil != err {
		return err
	}
	s, err := GetSchedule(ticker, id)
	if nil != err {
		return err
	}
	storage.Pool.Schedules.Delete(checkpointKey(ticker, id))
	storage.Pool.ScheduleQueue.Delete(queueKey(s.NextAt, ticker, id))
	ctx.Deposit(Pallet, "ScheduleRemoved", ticker, id)
	return nil
}

// OnInitialize - take every scheduled checkpoint that is due
func OnInitialize(ctx *system.Context) error {
	now := ctx.Now()
	for _, e := range storage.Pool.ScheduleQueue.Elements(nil) {
		if len(e.Key) != 8+primitives.TickerLength+8 {
			continue
		}
		at := primitives.Moment(binary.BigEndian.Uint64(e.Key[:8]))
		if at > now {
			break
		}
		var ticker primitives.Ticker
		copy(ticker[:], e.Key[8:8+primitives.TickerLength])
		id := binary.BigEndian.Uint64(e.Key[8+primitives.TickerLength:])

		storage.Pool.ScheduleQueue.Delete(e.Key)
		s, err := GetSchedule(ticker, id)
		if nil != err {
			continue
		}
		if err := fire(ctx, ticker, s, at); nil != err {
			globalData.log.Warnf("checkpoint schedule %s/%d: %s", ticker, id, err)
		}
	}
	return nil
}
