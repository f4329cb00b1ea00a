package runner

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denex/triplet/pkg/progress"
)

// mockLogger is a test double for Logger interface.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) PrintPhase(phase progress.Phase, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, string(phase)+": "+fmt.Sprintf(format, args...))
}

// seqLog is a shared append-only log of executed actions.
type seqLog struct {
	mu   sync.Mutex
	tags []string
}

func (s *seqLog) action(tag string) func() {
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tags = append(s.tags, tag)
	}
}

func (s *seqLog) get() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tags...)
}

// startAll starts one goroutine per step in the given order and waits for all.
func startAll(t *testing.T, r *Runner, order []Step, seq *seqLog, delay func() time.Duration) {
	t.Helper()
	var wg sync.WaitGroup
	for _, step := range order {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if delay != nil {
				time.Sleep(delay())
			}
			assert.NoError(t, r.Run(step, seq.action(string(step))))
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not complete")
	}
}

func TestRunner_AllStartOrders(t *testing.T) {
	orders := [][]Step{
		{StepFirst, StepSecond, StepThird},
		{StepFirst, StepThird, StepSecond},
		{StepSecond, StepFirst, StepThird},
		{StepSecond, StepThird, StepFirst},
		{StepThird, StepFirst, StepSecond},
		{StepThird, StepSecond, StepFirst},
	}

	for _, order := range orders {
		t.Run(fmt.Sprintf("%s-%s-%s", order[0], order[1], order[2]), func(t *testing.T) {
			seq := &seqLog{}
			startAll(t, New(nil), order, seq, nil)
			assert.Equal(t, []string{"first", "second", "third"}, seq.get())
		})
	}
}

func TestRunner_RandomStartDelays(t *testing.T) {
	for i := range 50 {
		seq := &seqLog{}
		order := Steps()
		rand.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
		delay := func() time.Duration { return time.Duration(rand.IntN(500)) * time.Microsecond }

		startAll(t, New(nil), order, seq, delay)
		require.Equal(t, []string{"first", "second", "third"}, seq.get(), "iteration %d, order %v", i, order)
	}
}

func TestRunner_SecondThirdFirst(t *testing.T) {
	var mu sync.Mutex
	var out []string
	tag := func(s string) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			out = append(out, s)
		}
	}

	r := New(nil)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); r.RunSecond(tag("second")) }()
	go func() { defer wg.Done(); r.RunThird(tag("third")) }()
	go func() { defer wg.Done(); r.RunFirst(tag("first")) }()
	wg.Wait()

	assert.Equal(t, []string{"first", "second", "third"}, out)
}

func TestRunner_EachActionOnce(t *testing.T) {
	var counts [3]int
	var mu sync.Mutex
	inc := func(i int) func() {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			counts[i]++
		}
	}

	r := New(nil)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); r.RunThird(inc(2)) }()
	go func() { defer wg.Done(); r.RunFirst(inc(0)) }()
	go func() { defer wg.Done(); r.RunSecond(inc(1)) }()
	wg.Wait()

	assert.Equal(t, [3]int{1, 1, 1}, counts)
}

func TestRunner_SecondBlocksWithoutFirst(t *testing.T) {
	r := New(nil)
	called := make(chan struct{})
	returned := make(chan struct{})

	// the goroutine is abandoned, it never returns
	go func() {
		r.RunSecond(func() { close(called) })
		close(returned)
	}()

	select {
	case <-called:
		t.Fatal("second action ran without first")
	case <-returned:
		t.Fatal("RunSecond returned without first")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunner_ThirdBlocksWithoutSecond(t *testing.T) {
	r := New(nil)
	r.RunFirst(func() {})

	returned := make(chan struct{})
	go func() {
		r.RunThird(func() {})
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("RunThird returned without second")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRunner_TwiceInSequence(t *testing.T) {
	for i := range 2 {
		seq := &seqLog{}
		startAll(t, New(nil), []Step{StepSecond, StepThird, StepFirst}, seq, nil)
		assert.Equal(t, []string{"first", "second", "third"}, seq.get(), "run %d", i+1)
	}
}

func TestRunner_UnknownStep(t *testing.T) {
	r := New(nil)
	called := false
	err := r.Run(Step("fourth"), func() { called = true })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
	assert.False(t, called)
}

func TestRunner_Logging(t *testing.T) {
	log := &mockLogger{}
	r := New(log)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); r.RunThird(func() {}) }()
	go func() { defer wg.Done(); r.RunSecond(func() {}) }()
	go func() { defer wg.Done(); r.RunFirst(func() {}) }()
	wg.Wait()

	assert.Contains(t, log.messages, "first: done")
	assert.Contains(t, log.messages, "second: waiting for first")
	assert.Contains(t, log.messages, "second: done")
	assert.Contains(t, log.messages, "third: waiting for second")
	assert.Contains(t, log.messages, "third: done")
	assert.Len(t, log.messages, 5)
}

func TestStep(t *testing.T) {
	tests := []struct {
		step  Step
		valid bool
		phase progress.Phase
	}{
		{StepFirst, true, progress.PhaseFirst},
		{StepSecond, true, progress.PhaseSecond},
		{StepThird, true, progress.PhaseThird},
		{Step("fourth"), false, progress.PhaseDemo},
		{Step(""), false, progress.PhaseDemo},
	}
	for _, tt := range tests {
		t.Run(string(tt.step), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.step.Valid())
			assert.Equal(t, tt.phase, tt.step.Phase())
		})
	}
	assert.Equal(t, []Step{StepFirst, StepSecond, StepThird}, Steps())
}
