package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"logwatch/internal/api"
	"logwatch/internal/logging"
	"logwatch/internal/stream"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	render(w, r, viewerPage(pageTitle(s.watchFile)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	var pos int64
	if s.position != nil {
		pos = s.position.Position()
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:   "ok",
		Clients:  s.hub.Count(),
		Position: pos,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	ctx := r.Context()
	// the server-wide timeouts would otherwise end the stream
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Debug("failed to disable write deadline for event stream", logging.Error(err))
	}
	if err := rc.SetReadDeadline(time.Time{}); err != nil {
		s.logger.Debug("failed to disable read deadline for event stream", logging.Error(err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	session := stream.NewSession(s.hub, s.snapshot,
		stream.WithHeartbeat(s.heartbeat),
		stream.WithLogger(s.base),
	)
	if err := session.Serve(ctx, responseConn{w: w, rc: rc}); err != nil {
		s.logger.Debug("event stream closed", logging.Error(err))
	}
}

// responseConn adapts a ResponseWriter to stream.Conn.
type responseConn struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func (c responseConn) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c responseConn) Flush() error {
	return c.rc.Flush()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message})
}
