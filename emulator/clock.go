package emulator

import (
	"time"
)

const (
	CLOCK_PERIOD     = 500 * time.Millisecond // Default step period.
	CLOCK_MIN_PERIOD = time.Second / 128      // Fastest clock, 128 Hz.
	CLOCK_MAX_PERIOD = 2 * time.Second        // Slowest clock, 0.5 Hz.
)

// Clock is the delay between machine steps.
// A zero Period runs the machine without delay.
type Clock struct {
	Period    time.Duration
	MinPeriod time.Duration
	MaxPeriod time.Duration
}

// DefaultClock returns the 2 Hz clock, adjustable between 0.5 Hz and 128 Hz.
func DefaultClock() Clock {
	return Clock{
		Period:    CLOCK_PERIOD,
		MinPeriod: CLOCK_MIN_PERIOD,
		MaxPeriod: CLOCK_MAX_PERIOD,
	}
}

// ClockHz returns a default clock set to the nearest period for hz.
// A hz of zero or less is an unthrottled clock.
func ClockHz(hz float64) (clock Clock) {
	clock = DefaultClock()
	if hz <= 0 {
		clock.Period = 0
		return
	}

	clock.Period = clock.clamp(time.Duration(float64(time.Second) / hz))

	return
}

func (clock Clock) clamp(period time.Duration) time.Duration {
	if clock.MinPeriod > 0 && period < clock.MinPeriod {
		period = clock.MinPeriod
	}
	if clock.MaxPeriod > 0 && period > clock.MaxPeriod {
		period = clock.MaxPeriod
	}
	return period
}

// Faster doubles the clock rate, up to the fastest period.
func (clock *Clock) Faster() {
	if clock.Period == 0 {
		return
	}
	clock.Period = clock.clamp(clock.Period / 2)
}

// Slower halves the clock rate, down to the slowest period.
func (clock *Clock) Slower() {
	if clock.Period == 0 {
		return
	}
	clock.Period = clock.clamp(clock.Period * 2)
}

// Hz returns the clock rate, or zero for an unthrottled clock.
func (clock Clock) Hz() float64 {
	if clock.Period == 0 {
		return 0
	}
	return float64(time.Second) / float64(clock.Period)
}

// AtMax is true when the clock cannot go faster.
func (clock Clock) AtMax() bool {
	return clock.Period != 0 && clock.Period <= clock.MinPeriod
}

// AtMin is true when the clock cannot go slower.
func (clock Clock) AtMin() bool {
	return clock.Period != 0 && clock.MaxPeriod > 0 && clock.Period >= clock.MaxPeriod
}
