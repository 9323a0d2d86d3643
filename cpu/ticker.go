package cpu

import "time"

// DefaultClockHz is the pacing rate used when no --rate flag is given,
// matching the original tool's default of 1 MHz.
const DefaultClockHz = 1_000_000

// Ticker paces Step/Run so the emulated program advances at roughly
// the configured clock rate instead of running as fast as the host CPU
// allows.
type Ticker struct {
	nanosPerCycle float64
}

// NewTicker builds a Ticker for the given clock rate in Hz.
func NewTicker(clockHz uint64) *Ticker {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	return &Ticker{nanosPerCycle: 1e9 / float64(clockHz)}
}

// Wait blocks for the duration corresponding to cycles at this
// ticker's configured rate.
func (t *Ticker) Wait(cycles uint64) {
	if t == nil || cycles == 0 {
		return
	}
	time.Sleep(time.Duration(float64(cycles) * t.nanosPerCycle))
}
