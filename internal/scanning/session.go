package scanning

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"libriscan/internal/logging"
)

// Phase is the lifecycle state of a scan session.
type Phase string

const (
	// PhaseIdle is the initial state; frames are not accepted.
	PhaseIdle Phase = "idle"
	// PhaseActive accepts frames subject to throttling.
	PhaseActive Phase = "active"
	// PhaseLocked is entered by the single frame that wins the emission
	// race; all later frames are unconditionally dropped.
	PhaseLocked Phase = "locked"
)

// DefaultFrameInterval throttles processing to at most five frames per
// second. The capture stream produces frames at device rate; anything
// arriving sooner is dropped, never queued.
const DefaultFrameInterval = 200 * time.Millisecond

// Emission is the single result a session delivers.
type Emission struct {
	SessionID  string
	Identifier Identifier
	At         time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithFrameInterval overrides the frame throttle interval. Zero disables
// throttling (useful in tests).
func WithFrameInterval(interval time.Duration) SessionOption {
	return func(s *Session) {
		if interval >= 0 {
			s.interval = interval
		}
	}
}

// WithLogger attaches a logger to the session.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "scan-session")
		}
	}
}

// WithClock overrides the time source (tests only).
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session is the concurrency-safe controller for one scanning presentation.
// Capture callbacks may deliver frames from any number of goroutines; the
// session guarantees at most one emission between Start and Reset.
type Session struct {
	id       string
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	mu              sync.Mutex
	phase           Phase
	locked          bool
	lastFrame       time.Time
	generation      uint64
	failureReported bool

	emissions chan Emission
	failures  chan error
}

// NewSession constructs a session in the Idle phase.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:        uuid.NewString(),
		logger:    logging.NewNop(),
		interval:  DefaultFrameInterval,
		now:       time.Now,
		phase:     PhaseIdle,
		emissions: make(chan Emission, 1),
		failures:  make(chan error, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier used in logs and emissions.
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Emissions delivers at most one result per session to the single
// designated consumer.
func (s *Session) Emissions() <-chan Emission {
	return s.emissions
}

// Failures delivers session-establishment failures. Per-frame errors never
// appear here.
func (s *Session) Failures() <-chan error {
	return s.failures
}

// Start transitions the session to Active, clears the lock, and resets the
// throttle timer so the first frame is always accepted.
func (s *Session) Start() {
	s.mu.Lock()
	s.phase = PhaseActive
	s.locked = false
	s.lastFrame = time.Time{}
	s.failureReported = false
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	s.logger.Debug("session started",
		logging.String(logging.FieldSessionID, s.id),
		logging.Int64("generation", int64(generation)),
	)
}

// Reset returns the session to Idle and clears the lock. In-flight frame
// callbacks that complete after the reset observe a stale generation and
// become no-ops; the previous emission can never be resurrected.
func (s *Session) Reset() {
	s.mu.Lock()
	s.phase = PhaseIdle
	s.locked = false
	s.lastFrame = time.Time{}
	s.failureReported = false
	s.generation++
	s.mu.Unlock()

	s.logger.Debug("session reset", logging.String(logging.FieldSessionID, s.id))
}

// HandleFrame processes one capture delivery. Frames arriving faster than
// the throttle interval are dropped with no side effect. A frame whose
// candidates resolve to an identifier races for the lock; only the winner
// emits. Recognition failures inside the pass are swallowed and the frame
// is skipped.
func (s *Session) HandleFrame(frame Frame) {
	timestamp := frame.Timestamp
	if timestamp.IsZero() {
		timestamp = s.now()
	}

	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		return
	}
	if s.interval > 0 && !s.lastFrame.IsZero() && timestamp.Sub(s.lastFrame) < s.interval {
		s.mu.Unlock()
		return
	}
	s.lastFrame = timestamp
	generation := s.generation
	s.mu.Unlock()

	identifier, ok := s.recognize(frame)
	if !ok {
		return
	}

	// Test-and-set under the mutex: exactly one concurrent callback can
	// observe locked == false and proceed to emit.
	s.mu.Lock()
	if s.phase != PhaseActive || s.locked || s.generation != generation {
		s.mu.Unlock()
		return
	}
	s.locked = true
	s.phase = PhaseLocked
	s.mu.Unlock()

	emission := Emission{SessionID: s.id, Identifier: identifier, At: timestamp}
	select {
	case s.emissions <- emission:
		s.logger.Info("identifier emitted",
			logging.String(logging.FieldSessionID, s.id),
			logging.String("identifier", identifier.Value),
			logging.String("tier", identifier.Tier.String()),
			logging.String("source", string(identifier.Source)),
		)
	default:
		s.logger.Warn("emission dropped: consumer has not drained the previous result",
			logging.String(logging.FieldSessionID, s.id),
		)
	}
}

// ReportCaptureFailure escalates a session-establishment failure to the
// caller. It is reported at most once per session and does not lock the
// session; the caller remains free to dismiss or restart it.
func (s *Session) ReportCaptureFailure(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	if s.failureReported {
		s.mu.Unlock()
		return
	}
	s.failureReported = true
	s.mu.Unlock()

	select {
	case s.failures <- err:
	default:
	}
	s.logger.Warn("capture failure reported",
		logging.String(logging.FieldSessionID, s.id),
		logging.Error(err),
	)
}

// recognize runs candidate selection, converting a panicking recognition
// pass into a skipped frame. Per-frame failures are local and recoverable.
func (s *Session) recognize(frame Frame) (identifier Identifier, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			identifier, ok = Identifier{}, false
			s.logger.Debug("recognition pass failed; frame skipped",
				logging.String(logging.FieldSessionID, s.id),
				logging.Any("panic", r),
			)
		}
	}()
	return SelectFrame(frame)
}
