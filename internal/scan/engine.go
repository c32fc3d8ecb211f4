package scan

import (
	"log/slog"

	"github.com/cartscan/cartscan/internal/model"
)

// State is the confirmation engine's session state.
type State int

// Engine states. Confirmed and Cancelled are terminal.
const (
	// StateIdle is the state before a session starts.
	StateIdle State = iota

	// StateSampling means the engine is consuming decode attempts.
	StateSampling

	// StateConfirmed means a code reached the confirmation threshold.
	StateConfirmed

	// StateCancelled means the session ended without a confirmed code.
	StateCancelled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSampling:
		return "sampling"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Engine converts the noisy per-frame decode stream into at most one
// confirmed code per session.
//
// Raw attempts are unreliable: a frame may fail to decode, decode a
// neighboring code, or decode correctly only intermittently. The engine
// requires the same code on several consecutive attempts before acting
// on it, which filters transient misreads without error-correcting the
// decode itself.
type Engine struct {
	// threshold is the number of consecutive matching attempts required.
	threshold int

	// state is the current session state.
	state State

	// current is the code of the streak in progress.
	current string

	// streak counts consecutive attempts matching current.
	streak int

	// observations counts candidate attempts this session, for logging.
	observations int

	// logger is used for structured logging.
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets a custom logger for the engine.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine requiring threshold consecutive matching
// attempts. Thresholds below one are raised to one.
func NewEngine(threshold int, opts ...EngineOption) *Engine {
	if threshold < 1 {
		threshold = 1
	}
	e := &Engine{threshold: threshold, state: StateIdle}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Start moves the engine from Idle to Sampling.
func (e *Engine) Start() {
	if e.state == StateIdle {
		e.state = StateSampling
	}
}

// State returns the current session state.
func (e *Engine) State() State {
	return e.state
}

// ObserveMiss records a frame that yielded no candidate. The streak
// resets: a gap in the stream means the last reads cannot be trusted to
// describe what is in front of the scanner now.
func (e *Engine) ObserveMiss() {
	if e.state != StateSampling {
		return
	}
	e.streak = 0
	e.current = ""
}

// Observe records a decode attempt that yielded a candidate. It returns
// the confirmed code and true when the candidate completes a streak of
// threshold consecutive matching attempts; the engine is then terminal.
//
// A candidate whose check digit fails validation is demoted to a miss:
// one damaged digit would otherwise need threshold identical misreads to
// confirm, and validation makes even one impossible.
func (e *Engine) Observe(candidate model.ScanCandidate) (string, bool) {
	if e.state != StateSampling {
		return "", false
	}

	if !model.IsValidCode(candidate.Code) {
		e.logger.Debug("candidate failed validation, treating as miss",
			"code", candidate.Code,
		)
		e.ObserveMiss()
		return "", false
	}

	e.observations++
	if candidate.Code == e.current {
		e.streak++
	} else {
		e.current = candidate.Code
		e.streak = 1
	}

	e.logger.Debug("candidate observed",
		"code", candidate.Code,
		"streak", e.streak,
		"threshold", e.threshold,
	)

	if e.streak >= e.threshold {
		e.state = StateConfirmed
		e.logger.Info("code confirmed",
			"code", candidate.Code,
			"observations", e.observations,
		)
		return e.current, true
	}
	return "", false
}

// Cancel moves a non-terminal engine to Cancelled.
func (e *Engine) Cancel() {
	if e.state == StateIdle || e.state == StateSampling {
		e.state = StateCancelled
	}
}
