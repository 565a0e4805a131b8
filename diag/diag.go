// Package diag implements the structured diagnostic sink shared by every
// compilation stage: an append-only collector of user-visible diagnostics,
// plus terminal and JSON renderers.
package diag

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Stateford/aion-sub002/source"
)

// Severity classifies a diagnostic's importance.
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// slogLevel maps a diagnostic severity to the structured log level it is
// also recorded at, the way the teacher's core.Trace recorded a dedicated
// slog level for trace-grade messages.
func (s Severity) slogLevel() slog.Level {
	switch s {
	case Hint:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Diagnostic is one user-visible compiler message: a stable code, a
// severity, a primary span, optional secondary spans, and a message.
type Diagnostic struct {
	Code      string
	Severity  Severity
	Primary   source.Span
	Secondary []SecondarySpan
	Message   string
}

// SecondarySpan attaches an explanatory label to an additional span, e.g.
// "first defined here" for a duplicate-module diagnostic.
type SecondarySpan struct {
	Span  source.Span
	Label string
}

// Sink is an append-only, concurrency-safe diagnostic queue. Any component
// that elects to parallelize its work must be able to call Emit
// concurrently (§5); the mutex here makes that safe regardless of which
// components actually do.
type Sink struct {
	mu    sync.Mutex
	items []Diagnostic
	log   *slog.Logger
}

// NewSink returns an empty sink. If logger is nil, slog.Default() is used,
// mirroring the teacher's use of the default slog logger for Trace.
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{log: logger}
}

// Emit appends a diagnostic and mirrors it to the structured logger.
func (s *Sink) Emit(d Diagnostic) {
	s.mu.Lock()
	s.items = append(s.items, d)
	s.mu.Unlock()

	s.log.Log(context.Background(), d.Severity.slogLevel(), d.Message,
		slog.String("code", d.Code),
		slog.Uint64("file", uint64(d.Primary.File)),
		slog.Uint64("start", uint64(d.Primary.Start)),
	)
}

// All returns a snapshot of every diagnostic emitted so far, in emission
// order.
func (s *Sink) All() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// HasErrors reports whether any Error-severity diagnostic was emitted.
func (s *Sink) HasErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics emitted so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
