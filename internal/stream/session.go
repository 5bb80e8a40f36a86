package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"logwatch/internal/api"
	"logwatch/internal/broadcast"
	"logwatch/internal/logging"
)

// DefaultHeartbeat is the idle time before a keep-alive comment is sent.
const DefaultHeartbeat = 15 * time.Second

// Conn is the outbound side of a viewer connection.
type Conn interface {
	io.Writer
	Flush() error
}

// Registry is the subset of the hub a session needs.
type Registry interface {
	Register() *broadcast.Viewer
	Unregister(*broadcast.Viewer)
}

// SnapshotFunc returns the recent lines shown to a viewer on connect.
type SnapshotFunc func() ([]string, error)

// Option customizes a Session.
type Option func(*Session)

// WithHeartbeat overrides the heartbeat interval. Non-positive values are ignored.
func WithHeartbeat(interval time.Duration) Option {
	return func(s *Session) {
		if interval > 0 {
			s.heartbeat = interval
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logging.NewComponentLogger(logger, "stream")
	}
}

// Session serves one viewer connection.
type Session struct {
	registry  Registry
	snapshot  SnapshotFunc
	heartbeat time.Duration
	logger    *slog.Logger
}

// NewSession builds a session bound to registry. snapshot may be nil, in
// which case the init frame carries no lines.
func NewSession(registry Registry, snapshot SnapshotFunc, opts ...Option) *Session {
	s := &Session{
		registry:  registry,
		snapshot:  snapshot,
		heartbeat: DefaultHeartbeat,
		logger:    logging.NewComponentLogger(nil, "stream"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve streams to conn until ctx is cancelled or a write fails. A nil
// return means the request context ended; write failures are returned.
// The viewer is always unregistered before Serve returns.
func (s *Session) Serve(ctx context.Context, conn Conn) error {
	lines := s.loadSnapshot()
	initFrame, err := broadcast.FormatEvent(api.EventInit, api.NewLinesPayload(lines))
	if err != nil {
		return err
	}
	if err := send(conn, initFrame); err != nil {
		return fmt.Errorf("write init: %w", err)
	}

	viewer := s.registry.Register()
	defer s.registry.Unregister(viewer)

	logger := s.logger.With(logging.Viewer(viewer.ID))
	timer := time.NewTimer(s.heartbeat)
	defer timer.Stop()

	for {
		for {
			frame, ok := viewer.Dequeue()
			if !ok {
				break
			}
			if err := send(conn, frame); err != nil {
				logger.Debug("viewer write failed", logging.Error(err))
				return fmt.Errorf("write event: %w", err)
			}
		}

		resetTimer(timer, s.heartbeat)
		select {
		case <-ctx.Done():
			return nil
		case <-viewer.Ready():
		case <-timer.C:
			if err := send(conn, []byte(api.HeartbeatFrame)); err != nil {
				logger.Debug("heartbeat write failed", logging.Error(err))
				return fmt.Errorf("write heartbeat: %w", err)
			}
		}
	}
}

func (s *Session) loadSnapshot() []string {
	if s.snapshot == nil {
		return nil
	}
	lines, err := s.snapshot()
	if err != nil {
		logging.WarnWithContext(s.logger, "snapshot read failed", logging.Warning{
			EventType: "snapshot_failed",
			Hint:      "check that the watched file is readable",
			Impact:    "viewer starts without recent history",
		}, logging.Error(err))
		return nil
	}
	return lines
}

func send(conn Conn, frame []byte) error {
	if _, err := conn.Write(frame); err != nil {
		return err
	}
	return conn.Flush()
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}
