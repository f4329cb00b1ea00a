// Package progress provides a phase-aware console logger.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Phase represents the step currently logging, used for color coding.
type Phase string

// Phase constants for the triplet steps.
const (
	PhaseDemo   Phase = "demo"   // orchestration (default color)
	PhaseFirst  Phase = "first"  // step A (green)
	PhaseSecond Phase = "second" // step B (cyan)
	PhaseThird  Phase = "third"  // step C (magenta)
)

// Config holds logger configuration.
type Config struct {
	Out     io.Writer // destination, os.Stdout if nil
	NoColor bool      // disable color output
	Debug   bool      // emit Debug messages
}

// Logger writes timestamped lines colored by the current phase.
// Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	debug  bool
	phase  Phase
	colors map[Phase]*color.Color
	now    func() time.Time
}

// NewLogger creates a Logger with the given configuration.
func NewLogger(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	colors := map[Phase]*color.Color{
		PhaseDemo:   color.New(color.Reset),
		PhaseFirst:  color.New(color.FgGreen),
		PhaseSecond: color.New(color.FgCyan),
		PhaseThird:  color.New(color.FgMagenta),
	}
	for _, c := range colors {
		if cfg.NoColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return &Logger{
		out:    out,
		debug:  cfg.Debug,
		phase:  PhaseDemo,
		colors: colors,
		now:    time.Now,
	}
}

// SetPhase sets the phase used to color subsequent output.
func (l *Logger) SetPhase(phase Phase) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.phase = phase
}

// Phase returns the current phase.
func (l *Logger) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Print writes a timestamped line colored by the current phase.
func (l *Logger) Print(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLine(l.phase, format, args...)
}

// PrintPhase writes a timestamped line colored by the given phase, leaving the
// current phase untouched. Used by concurrent callers that can't share SetPhase.
func (l *Logger) PrintPhase(phase Phase, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLine(phase, format, args...)
}

// PrintRaw writes formatted text as is, without timestamp or newline.
func (l *Logger) PrintRaw(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, format, args...)
}

// Debug writes a line only if debug output is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLine(l.phase, "[debug] "+format, args...)
}

// writeLine expects l.mu to be held.
func (l *Logger) writeLine(phase Phase, format string, args ...any) {
	c, ok := l.colors[phase]
	if !ok {
		c = l.colors[PhaseDemo]
	}
	ts := l.now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = c.Fprintf(l.out, "[%s] %-6s %s\n", ts, phase, msg)
}
