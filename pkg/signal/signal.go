// Package signal provides an auto-reset binary signal.
package signal

// AutoReset is a binary signal that releases exactly one waiter per Set and
// returns to the unsignaled state once that waiter has consumed it.
// The zero value is not usable, use New.
type AutoReset struct {
	ch chan struct{}
}

// New creates an unsignaled AutoReset.
func New() *AutoReset {
	return &AutoReset{ch: make(chan struct{}, 1)}
}

// Set signals. Setting an already signaled AutoReset is a no-op.
func (s *AutoReset) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until the signal is set and consumes it.
func (s *AutoReset) Wait() {
	<-s.ch
}

// TryWait consumes the signal if it is set, without blocking.
func (s *AutoReset) TryWait() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}
