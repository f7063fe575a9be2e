// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package calendar - recurring checkpoint arithmetic
package calendar

import (
	"fmt"
	"time"

	"github.com/polymesh-go/polymeshd/fault"
	"github.com/polymesh-go/polymeshd/primitives"
)

// Unit - the unit of a calendar period
type Unit uint8

// period units, Month and Year are of variable length
const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = []string{"second", "minute", "hour", "day", "week", "month", "year"}

var secondsIn = map[Unit]uint64{
	Second: 1,
	Minute: 60,
	Hour:   60 * 60,
	Day:    24 * 60 * 60,
	Week:   7 * 24 * 60 * 60,
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return "unknown"
}

// UnitFromString - parse a unit name
func UnitFromString(s string) (Unit, error) {
	for i, name := range unitNames {
		if name == s || name+"s" == s {
			return Unit(i), nil
		}
	}
	return 0, fault.ErrInvalidSchedule
}

// Period - amount of a unit, zero amount means no recurrence
type Period struct {
	Unit   Unit
	Amount uint64
}

// IsRecurring - true for a non-zero amount
func (p Period) IsRecurring() bool {
	return 0 != p.Amount
}

// Valid - the unit is known
func (p Period) Valid() bool {
	return p.Unit <= Year
}

func (p Period) String() string {
	if !p.IsRecurring() {
		return "once"
	}
	return fmt.Sprintf("every %d %s", p.Amount, p.Unit)
}

// Schedule - a start moment and a recurrence
type Schedule struct {
	Start  primitives.Moment
	Period Period
}

// Next - the first checkpoint moment strictly after now
//
// the start is itself a checkpoint, so a start in the future is returned
// unchanged; false is returned when there is no further checkpoint
func (s Schedule) Next(now primitives.Moment) (primitives.Moment, bool) {
	if s.Start > now {
		return s.Start, true
	}
	if !s.Period.IsRecurring() || !s.Period.Valid() {
		return 0, false
	}

	switch s.Period.Unit {
	case Month:
		return nextInMonths(s.Start, s.Period.Amount, now)
	case Year:
		return nextInMonths(s.Start, 12*s.Period.Amount, now)
	}

	step := secondsIn[s.Period.Unit] * s.Period.Amount
	elapsed := uint64(now-s.Start) / step
	return s.Start + primitives.Moment(step*(elapsed+1)), true
}

// Upcoming - up to count checkpoint moments strictly after now
func (s Schedule) Upcoming(now primitives.Moment, count int) []primitives.Moment {
	moments := make([]primitives.Moment, 0, count)
	for len(moments) < count {
		next, ok := s.Next(now)
		if !ok {
			break
		}
		moments = append(moments, next)
		now = next
	}
	return moments
}

// the n'th month after start with the day clamped to the month length
func addMonths(start time.Time, n uint64) time.Time {
	total := uint64(start.Year())*12 + uint64(start.Month()-1) + n
	year := int(total / 12)
	month := time.Month(total%12) + 1
	day := start.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, start.Hour(), start.Minute(), start.Second(), 0, time.UTC)
}

func nextInMonths(start primitives.Moment, months uint64, now primitives.Moment) (primitives.Moment, bool) {
	s := time.Unix(int64(start), 0).UTC()
	t := time.Unix(int64(now), 0).UTC()

	// a lower bound on the number of whole steps already passed
	passed := uint64((t.Year()-s.Year())*12+int(t.Month())-int(s.Month())) / months
	if passed > 0 {
		passed -= 1
	}
	for n := passed + 1; ; n += 1 {
		candidate := addMonths(s, n*months)
		if candidate.Unix() > int64(now) {
			return primitives.Moment(candidate.Unix()), true
		}
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
