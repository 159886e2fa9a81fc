// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// TicksPerCycle is the number of clock ticks in one machine cycle.
const TicksPerCycle = 4

// Clock accumulates elapsed machine cycles (M) and clock ticks (T). It
// only ever counts forward.
type Clock struct {
	M uint64 // machine cycles
	T uint64 // clock ticks
}

// Tick adds a cost of m machine cycles to the clock. Non-positive costs
// are ignored.
func (c *Clock) Tick(m int) {
	if m <= 0 {
		return
	}
	c.M += uint64(m)
	c.T += uint64(m) * TicksPerCycle
}

// Reset zeroes both counters.
func (c *Clock) Reset() {
	c.M, c.T = 0, 0
}
