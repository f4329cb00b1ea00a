// Package processor drives the ordered triplet demo: it starts the three runner
// operations from separate goroutines in a chosen order and verifies the result.
package processor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/denex/triplet/pkg/progress"
	"github.com/denex/triplet/pkg/runner"
)

// ErrOrderViolated is returned when the actions did not execute first, second, third.
var ErrOrderViolated = errors.New("execution order violated")

// Config holds processor configuration.
type Config struct {
	Order  []runner.Step // goroutine start order, DefaultOrder if empty
	Repeat int           // number of independent runs, at least 1
}

// Logger provides logging functionality.
type Logger interface {
	SetPhase(phase progress.Phase)
	Print(format string, args ...any)
	PrintPhase(phase progress.Phase, format string, args ...any)
}

// Result holds the observed execution sequence of every run.
type Result struct {
	Order []runner.Step
	Runs  [][]string
}

// Processor runs the demo.
type Processor struct {
	cfg Config
	log Logger
}

// New creates a Processor, filling in defaults for zero config values.
func New(cfg Config, log Logger) *Processor {
	if len(cfg.Order) == 0 {
		cfg.Order = slices.Clone(DefaultOrder)
	}
	if cfg.Repeat < 1 {
		cfg.Repeat = 1
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Processor{cfg: cfg, log: log}
}

// Run executes the configured number of runs, each with a fresh runner.
func (p *Processor) Run(ctx context.Context) (Result, error) {
	if err := validateOrder(p.cfg.Order); err != nil {
		return Result{}, err
	}

	res := Result{Order: slices.Clone(p.cfg.Order)}
	for i := 1; i <= p.cfg.Repeat; i++ {
		select {
		case <-ctx.Done():
			return res, fmt.Errorf("run %d: %w", i, ctx.Err())
		default:
		}

		p.log.SetPhase(progress.PhaseDemo)
		p.log.Print("run %d/%d, starting goroutines in order %s", i, p.cfg.Repeat, FormatOrder(p.cfg.Order))

		seq, err := p.runOnce()
		if err != nil {
			return res, fmt.Errorf("run %d: %w", i, err)
		}
		res.Runs = append(res.Runs, seq)

		if !slices.Equal(seq, expectedSequence()) {
			return res, fmt.Errorf("run %d: %w: got %v", i, ErrOrderViolated, seq)
		}
	}

	p.log.SetPhase(progress.PhaseDemo)
	p.log.Print("all %d runs completed in order", p.cfg.Repeat)
	return res, nil
}

// runOnce starts one goroutine per step and joins them.
func (p *Processor) runOnce() ([]string, error) {
	r := runner.New(p.log)

	var mu sync.Mutex
	var seq []string
	tag := func(step runner.Step) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			seq = append(seq, string(step))
			p.log.PrintPhase(step.Phase(), "action %s", step)
		}
	}

	var g errgroup.Group
	for _, step := range p.cfg.Order {
		g.Go(func() error {
			return r.Run(step, tag(step))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return seq, nil
}

func expectedSequence() []string {
	steps := runner.Steps()
	seq := make([]string, len(steps))
	for i, step := range steps {
		seq[i] = string(step)
	}
	return seq
}

type nopLogger struct{}

func (nopLogger) SetPhase(progress.Phase)                   {}
func (nopLogger) Print(string, ...any)                      {}
func (nopLogger) PrintPhase(progress.Phase, string, ...any) {}
