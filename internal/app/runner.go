package app

import (
	"context"

	"github.com/JacopoBartoli/game-of-life/internal/core"
	"github.com/JacopoBartoli/game-of-life/internal/state"
)

// Runner steps a simulation at its configured speed while it is running.
type Runner struct {
	ctl *Controller
}

// NewRunner returns a Runner for ctl.
func NewRunner(ctl *Controller) *Runner {
	return &Runner{ctl: ctl}
}

// Run sets the simulation running and steps it on every tick until it is
// switched off, maxSteps generations have been computed (when positive), or
// ctx is done. Steps happen on the calling goroutine, so handlers subscribed
// to the state may stop the run by calling SetRunning(false). Run returns the
// number of generations it computed.
func (r *Runner) Run(ctx context.Context, maxSteps int) (int, error) {
	st := r.ctl.State()
	pace := core.NewFixedStep(st.Speed())
	sub := st.Subscribe(func(s *state.State) {
		if s.Speed() != pace.TPS() {
			pace.SetTPS(s.Speed())
		}
	})
	defer sub.Unsubscribe()

	if !st.Running() {
		st.SetRunning(true)
	}
	ticks := pace.Start()
	defer pace.Stop()

	done := 0
	for st.Running() {
		if maxSteps > 0 && done >= maxSteps {
			st.SetRunning(false)
			break
		}
		select {
		case <-ctx.Done():
			st.SetRunning(false)
			return done, ctx.Err()
		case <-ticks:
			r.ctl.Step()
			done++
		}
	}
	return done, nil
}
