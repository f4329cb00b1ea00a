// Package runner provides the ordered triplet runner: three actions started from
// independent goroutines always execute first, second, third.
package runner

import (
	"fmt"

	"github.com/denex/triplet/pkg/progress"
	"github.com/denex/triplet/pkg/signal"
)

// Logger provides logging functionality.
type Logger interface {
	PrintPhase(phase progress.Phase, format string, args ...any)
}

// Runner executes three actions in a fixed order regardless of the order in
// which RunFirst, RunSecond and RunThird are called. Each method is meant to be
// called exactly once, from its own goroutine.
//
// If a predecessor is never run, RunSecond or RunThird block forever.
type Runner struct {
	log        Logger
	firstDone  *signal.AutoReset
	secondDone *signal.AutoReset
}

// New creates a Runner with fresh signals. A nil log disables logging.
func New(log Logger) *Runner {
	return &Runner{
		log:        log,
		firstDone:  signal.New(),
		secondDone: signal.New(),
	}
}

// RunFirst executes action immediately, then unblocks RunSecond.
func (r *Runner) RunFirst(action func()) {
	action()
	r.logf(StepFirst, "done")
	r.firstDone.Set()
}

// RunSecond waits for RunFirst to finish, executes action, then unblocks RunThird.
func (r *Runner) RunSecond(action func()) {
	r.logf(StepSecond, "waiting for %s", StepFirst)
	r.firstDone.Wait()
	action()
	r.logf(StepSecond, "done")
	r.secondDone.Set()
}

// RunThird waits for RunSecond to finish, then executes action.
func (r *Runner) RunThird(action func()) {
	r.logf(StepThird, "waiting for %s", StepSecond)
	r.secondDone.Wait()
	action()
	r.logf(StepThird, "done")
}

// Run dispatches action to the operation for step.
func (r *Runner) Run(step Step, action func()) error {
	switch step {
	case StepFirst:
		r.RunFirst(action)
	case StepSecond:
		r.RunSecond(action)
	case StepThird:
		r.RunThird(action)
	default:
		return fmt.Errorf("unknown step: %q", step)
	}
	return nil
}

func (r *Runner) logf(step Step, format string, args ...any) {
	if r.log == nil {
		return
	}
	r.log.PrintPhase(step.Phase(), format, args...)
}
