package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Resolver maps a confirmed code to a display name. It never fails; the
// lookup package guarantees a usable label on every path.
type Resolver interface {
	Resolve(ctx context.Context, code string) string
}

// ListAppender is the slice of the list store a session needs.
type ListAppender interface {
	Add(ctx context.Context, text string) error
}

// Session orchestrates one scan lifecycle: acquire the capture source,
// feed frames to the confirmation engine, and on confirmation release the
// device, resolve the code and append the result to the list.
//
// A Session is single-use. The capture source is released exactly once on
// every exit path; this is the resource-safety invariant the whole type
// is built around, since the device handle must not leak.
type Session struct {
	// id correlates all log lines of one session.
	id string

	// capture supplies frames.
	capture CaptureSource

	// decoder turns frames into candidates.
	decoder Decoder

	// engine confirms codes.
	engine *Engine

	// resolver maps a confirmed code to a name.
	resolver Resolver

	// list receives the resolved entry.
	list ListAppender

	// interval is the minimum pause between decode attempts so the loop
	// never outpaces the capture source.
	interval time.Duration

	// timeout bounds the session; expiry is treated as cancellation.
	timeout time.Duration

	// logger is used for structured logging.
	logger *slog.Logger

	// stopOnce guarantees the single release of the capture source.
	stopOnce sync.Once
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets a custom logger for the session.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSampleInterval sets the minimum pause between decode attempts.
func WithSampleInterval(interval time.Duration) SessionOption {
	return func(s *Session) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithSessionTimeout bounds the session duration.
func WithSessionTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewSession creates a session wiring the capture source, decoder,
// confirmation engine, resolver and list store together.
func NewSession(
	capture CaptureSource,
	decoder Decoder,
	engine *Engine,
	resolver Resolver,
	list ListAppender,
	opts ...SessionOption,
) *Session {
	s := &Session{
		id:       uuid.NewString(),
		capture:  capture,
		decoder:  decoder,
		engine:   engine,
		resolver: resolver,
		list:     list,
		interval: 250 * time.Millisecond,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// ID returns the session's correlation id.
func (s *Session) ID() string {
	return s.id
}

// Run executes the session and returns the resolved name that was added
// to the list.
//
// Error taxonomy: ErrCaptureUnavailable and ErrPermissionDenied abort
// before sampling begins. ErrSessionCancelled covers user cancellation
// (context cancel), session timeout, and capture failure mid-stream; in
// all cancellation cases the list is untouched. Lookup failures never
// surface: a confirmed scan always produces a list entry.
func (s *Session) Run(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stream, err := s.capture.Start(ctx)
	if err != nil {
		if errors.Is(err, ErrCaptureUnavailable) || errors.Is(err, ErrPermissionDenied) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	s.logger.Info("scan session started",
		"threshold", s.engine.threshold,
		"interval", s.interval,
		"timeout", s.timeout,
	)

	code, err := s.sample(ctx, stream)

	// The capture source is released before resolution on success and
	// immediately on cancellation. release is idempotent via stopOnce,
	// so every return path below is covered even if a future edit adds
	// an early return.
	s.release()

	if err != nil {
		return "", err
	}

	// Cancellation check between confirmation and resolution: a user who
	// cancelled during the last frame must not get a surprise entry.
	select {
	case <-ctx.Done():
		s.engine.Cancel()
		return "", fmt.Errorf("%w: %v", ErrSessionCancelled, ctx.Err())
	default:
	}

	name := s.resolver.Resolve(ctx, code)
	if err := s.list.Add(ctx, name); err != nil {
		return "", fmt.Errorf("failed to add resolved entry: %w", err)
	}

	s.logger.Info("scan session completed", "code", code, "name", name)
	return name, nil
}

// sample runs the frame loop until the engine confirms or the session is
// cancelled. It returns the confirmed code.
func (s *Session) sample(ctx context.Context, stream FrameStream) (string, error) {
	s.engine.Start()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		// Cooperative cancellation, checked at the top of every
		// iteration: once cancelled, no further frames are sampled.
		select {
		case <-ctx.Done():
			s.engine.Cancel()
			s.logger.Info("scan session cancelled", "reason", ctx.Err())
			return "", fmt.Errorf("%w: %v", ErrSessionCancelled, ctx.Err())
		default:
		}

		frame, err := stream.Next(ctx)
		if err != nil {
			s.engine.Cancel()
			s.logger.Warn("capture source failed mid-session", "error", err)
			return "", fmt.Errorf("%w: %v", ErrSessionCancelled, err)
		}

		if candidate, ok := s.decoder.Decode(frame); ok {
			if code, confirmed := s.engine.Observe(candidate); confirmed {
				return code, nil
			}
		} else {
			s.engine.ObserveMiss()
		}

		// Throttle to the sampling cadence.
		select {
		case <-ctx.Done():
			// Handled at the top of the next iteration.
		case <-ticker.C:
		}
	}
}

// release stops the capture source exactly once.
func (s *Session) release() {
	s.stopOnce.Do(func() {
		if err := s.capture.Stop(); err != nil {
			s.logger.Warn("failed to release capture source", "error", err)
		} else {
			s.logger.Debug("capture source released")
		}
	})
}
