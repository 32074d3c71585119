// internal/driver/lss/session.go
package lss

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Port is the byte channel the session owns: typically a serial line, or an
// in-memory fake in tests. ReadUntil must return ErrTimeout (possibly wrapped)
// when the deadline passes without the delimiter arriving.
type Port interface {
	Write(ctx context.Context, data []byte) error
	ReadUntil(ctx context.Context, delimiter byte, timeout time.Duration) ([]byte, error)
	// Drain discards anything buffered on the receive side
	Drain(ctx context.Context) error
	Close() error
}

// Session serializes request/response exchanges over a half-duplex line.
// At most one exchange is in flight at a time: the line has no request-id
// multiplexing, so a second caller must wait for the first exchange to reach
// a terminal state before its bytes are written.
//
// The session owns its Port exclusively for its lifetime. It never retries;
// retry policy belongs to callers who know the command's semantics.
type Session struct {
	mu      sync.Mutex
	port    Port
	timeout time.Duration
	logger  *zap.Logger

	// dirty marks that a timed-out exchange may have left a late reply in
	// flight. The port is drained before the next write so those bytes are
	// not misattributed to the next request.
	dirty bool
}

// DefaultReplyTimeout is used when NewSession receives a non-positive timeout
const DefaultReplyTimeout = 500 * time.Millisecond

// NewSession creates a session over an already-open port
func NewSession(port Port, timeout time.Duration, logger *zap.Logger) *Session {
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		port:    port,
		timeout: timeout,
		logger:  logger.With(zap.String("component", "lss_session")),
	}
}

// Exchange encodes the frame, writes it as one logical write and, when the
// catalogue entry expects a reply, reads up to the frame delimiter or the
// configured timeout. Commands with no reply expected (and every broadcast
// frame) return (nil, nil) right after a successful send.
//
// A codec-level parse error is surfaced unchanged; it does not imply channel
// corruption and the session stays usable. A write failure surfaces ErrSending
// and the session should be considered suspect.
func (s *Session) Exchange(ctx context.Context, frame Frame) (*Reply, error) {
	data, err := frame.Encode()
	if err != nil {
		// caller-side misuse, never touches the wire
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		if err := s.port.Drain(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSending, err)
		}
		s.dirty = false
	}

	if err := s.port.Write(ctx, data); err != nil {
		s.logger.Error("Frame write failed",
			zap.ByteString("frame", data),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrSending, err)
	}

	if !frame.expectsReply() {
		s.logger.Debug("Frame sent, no reply expected", zap.ByteString("frame", data))
		return nil, nil
	}

	raw, err := s.port.ReadUntil(ctx, FrameDelimiter, s.timeout)
	if err != nil {
		// partial bytes are discarded; they cannot be merged with the next
		// exchange without risking cross-talk
		s.dirty = true
		s.logger.Debug("Reply read failed",
			zap.ByteString("frame", data),
			zap.Error(err),
		)
		return nil, err
	}

	reply, err := ParseReply(raw, frame.Command)
	if err != nil {
		return nil, err
	}
	if reply.ID != frame.ID {
		return nil, newParseError(string(raw), "reply from device %d, want %d", reply.ID, frame.ID)
	}

	s.logger.Debug("Exchange completed",
		zap.ByteString("frame", data),
		zap.ByteString("reply", raw),
	)
	return reply, nil
}

// Close releases the underlying port
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}
