// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ticker/timer.go
// Summary: Deferred callbacks that fire on the ticker goroutine.
// Usage: Settle delays in the lifecycle gate and pin controller.
// Notes: A timer never fires outside Tick, so callbacks never race engine state.

package ticker

import (
	"sort"
	"time"
)

// Timer is a pending deferred callback created by AfterFunc.
type Timer struct {
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running.
func (tm *Timer) Stop() bool {
	if tm == nil || tm.stopped || tm.fired {
		return false
	}
	tm.stopped = true
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (tm *Timer) Pending() bool {
	return tm != nil && !tm.stopped && !tm.fired
}

type timerQueue struct {
	items []*Timer
	seq   uint64
}

func (q *timerQueue) add(tm *Timer) {
	q.seq++
	tm.seq = q.seq
	q.items = append(q.items, tm)
}

// runDue fires every timer whose due time is at or before now, earliest first.
// Timers scheduled by those callbacks wait for a later frame.
func (q *timerQueue) runDue(now time.Time) {
	if len(q.items) == 0 {
		return
	}
	var due []*Timer
	keep := q.items[:0]
	for _, tm := range q.items {
		switch {
		case tm.stopped:
		case !tm.due.After(now):
			due = append(due, tm)
		default:
			keep = append(keep, tm)
		}
	}
	for i := len(keep); i < len(q.items); i++ {
		q.items[i] = nil
	}
	q.items = keep

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, tm := range due {
		// An earlier callback in this batch may have stopped it.
		if tm.stopped {
			continue
		}
		tm.fired = true
		tm.fn()
	}
}

// AfterFunc schedules fn to run on the first frame at or after d from now.
func (t *Ticker) AfterFunc(d time.Duration, fn func()) *Timer {
	tm := &Timer{due: t.now().Add(d), fn: fn}
	t.timers.add(tm)
	return tm
}

// PendingTimers reports how many timers are waiting to fire.
func (t *Ticker) PendingTimers() int {
	n := 0
	for _, tm := range t.timers.items {
		if tm.Pending() {
			n++
		}
	}
	return n
}
