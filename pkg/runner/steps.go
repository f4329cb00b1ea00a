package runner

import "github.com/denex/triplet/pkg/progress"

// Step identifies one of the three ordered steps.
type Step string

// Step constants in execution order.
const (
	StepFirst  Step = "first"
	StepSecond Step = "second"
	StepThird  Step = "third"
)

// Steps returns all steps in execution order.
func Steps() []Step {
	return []Step{StepFirst, StepSecond, StepThird}
}

// Valid returns true if s is one of the three known steps.
func (s Step) Valid() bool {
	return s == StepFirst || s == StepSecond || s == StepThird
}

// Phase returns the logging phase used for the step.
func (s Step) Phase() progress.Phase {
	switch s {
	case StepFirst:
		return progress.PhaseFirst
	case StepSecond:
		return progress.PhaseSecond
	case StepThird:
		return progress.PhaseThird
	default:
		return progress.PhaseDemo
	}
}
