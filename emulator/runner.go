package emulator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ezrec/fourbit/cpu"
)

// Runner drives an emulator, one step per clock period, until a halt is
// requested. It is the sole owner of the machine while running; other
// goroutines use the Runner methods, which only act between steps.
type Runner struct {
	Emulator *Emulator
	Clock    Clock

	MaxSteps int                   // Step limit per run; 0 means no limit.
	Observe  func(state cpu.State) // Called with a snapshot after each step.
	Diagnose func(err error)       // Called with each runtime diagnostic.

	mutex sync.Mutex
}

// NewRunner creates a runner for the emulator at the default clock.
func NewRunner(emu *Emulator) *Runner {
	return &Runner{
		Emulator: emu,
		Clock:    DefaultClock(),
	}
}

// Run steps the machine until a halt is requested, MaxSteps is reached,
// or the context is done. Stopping only happens between steps.
func (r *Runner) Run(ctx context.Context) (steps int, err error) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for r.MaxSteps == 0 || steps < r.MaxSteps {
		period := r.period()
		if period > 0 {
			if timer == nil {
				timer = time.NewTimer(period)
			} else {
				timer.Reset(period)
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			case <-timer.C:
			}
		} else {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				return
			default:
			}
		}

		r.mutex.Lock()
		done, diag := r.Emulator.Tick()
		var state cpu.State
		if !done && r.Observe != nil {
			state = r.Emulator.Snapshot()
		}
		r.mutex.Unlock()

		if done {
			return
		}

		steps++

		if diag != nil {
			if r.Emulator.Verbose {
				log.Printf("emulator: %v", diag)
			}
			if r.Diagnose != nil {
				r.Diagnose(diag)
			}
		}

		if r.Observe != nil {
			r.Observe(state)
		}
	}

	return
}

func (r *Runner) period() time.Duration {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.Clock.Period
}

// Halt asks a running Run to return before its next step.
func (r *Runner) Halt() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Emulator.Machine.RequestHalt()
}

// Reset resets the machine, which also stops a running Run before its
// next step. The program is not reloaded.
func (r *Runner) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Emulator.Machine.Reset()
}

// Snapshot copies the machine state between steps.
func (r *Runner) Snapshot() cpu.State {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.Emulator.Snapshot()
}

// Faster doubles the clock rate, within the clock limits.
func (r *Runner) Faster() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Clock.Faster()
}

// Slower halves the clock rate, within the clock limits.
func (r *Runner) Slower() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Clock.Slower()
}
