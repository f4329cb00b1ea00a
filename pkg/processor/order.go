package processor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/denex/triplet/pkg/runner"
)

// ErrBadOrder is returned when a start order is not a permutation of the three steps.
var ErrBadOrder = errors.New("bad start order")

// DefaultOrder starts the goroutines second, third, first.
var DefaultOrder = []runner.Step{runner.StepSecond, runner.StepThird, runner.StepFirst}

// stepAliases maps accepted tokens to steps, letters follow the A, B, C naming.
var stepAliases = map[string]runner.Step{
	"first":  runner.StepFirst,
	"second": runner.StepSecond,
	"third":  runner.StepThird,
	"a":      runner.StepFirst,
	"b":      runner.StepSecond,
	"c":      runner.StepThird,
}

// ParseOrder parses a comma or space separated start order, e.g. "b,c,a" or
// "second third first". The result must name every step exactly once.
func ParseOrder(s string) ([]runner.Step, error) {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadOrder)
	}

	seen := make(map[runner.Step]bool, len(tokens))
	order := make([]runner.Step, 0, len(tokens))
	for _, tok := range tokens {
		step, ok := stepAliases[tok]
		if !ok {
			return nil, fmt.Errorf("%w: unknown step %q", ErrBadOrder, tok)
		}
		if seen[step] {
			return nil, fmt.Errorf("%w: duplicate step %q", ErrBadOrder, step)
		}
		seen[step] = true
		order = append(order, step)
	}

	if err := validateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// validateOrder checks that order is a permutation of all steps.
func validateOrder(order []runner.Step) error {
	seen := make(map[runner.Step]bool, len(order))
	for _, step := range order {
		if !step.Valid() {
			return fmt.Errorf("%w: unknown step %q", ErrBadOrder, step)
		}
		if seen[step] {
			return fmt.Errorf("%w: duplicate step %q", ErrBadOrder, step)
		}
		seen[step] = true
	}
	for _, step := range runner.Steps() {
		if !seen[step] {
			return fmt.Errorf("%w: missing step %q", ErrBadOrder, step)
		}
	}
	return nil
}

// FormatOrder renders an order as a comma separated list.
func FormatOrder(order []runner.Step) string {
	parts := make([]string, len(order))
	for i, step := range order {
		parts[i] = string(step)
	}
	return strings.Join(parts, ",")
}
