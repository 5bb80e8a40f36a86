package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"logwatch/internal/api"
	"logwatch/internal/logging"
)

// Hub owns the set of registered viewers.
type Hub struct {
	mu       sync.Mutex
	viewers  map[*Viewer]struct{}
	maxQueue int
	logger   *slog.Logger
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithMaxQueue caps each viewer's pending frames. When a publish would exceed
// the cap the viewer loses its oldest frames. 0 leaves queues unbounded.
func WithMaxQueue(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.maxQueue = n
		}
	}
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger, opts ...HubOption) *Hub {
	h := &Hub{
		viewers: make(map[*Viewer]struct{}),
		logger:  logging.NewComponentLogger(logger, "hub"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds a new viewer with an empty queue.
func (h *Hub) Register() *Viewer {
	v := newViewer()
	h.mu.Lock()
	h.viewers[v] = struct{}{}
	total := len(h.viewers)
	h.mu.Unlock()

	h.logger.Info("viewer connected",
		logging.Viewer(v.ID),
		logging.Int(logging.FieldClients, total),
	)
	return v
}

// Unregister removes v. Removing an unknown or already removed viewer is a no-op.
func (h *Hub) Unregister(v *Viewer) {
	if v == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.viewers[v]
	delete(h.viewers, v)
	total := len(h.viewers)
	h.mu.Unlock()

	if ok {
		h.logger.Info("viewer disconnected",
			logging.Viewer(v.ID),
			logging.Int(logging.FieldClients, total),
		)
	}
}

// Publish encodes one frame and queues it for every viewer registered at the
// time of the call. An encoding failure delivers nothing. Enqueueing never
// blocks; with a max queue set, a full viewer loses its oldest frames.
func (h *Hub) Publish(event string, payload any) error {
	frame, err := FormatEvent(event, payload)
	if err != nil {
		return err
	}

	var lagging []*Viewer
	h.mu.Lock()
	total := len(h.viewers)
	for v := range h.viewers {
		// warn on the first overflow only; a stalled viewer overflows every publish
		if drop, dropped := v.enqueue(frame, h.maxQueue); drop > 0 && drop == dropped {
			lagging = append(lagging, v)
		}
	}
	h.mu.Unlock()

	for _, v := range lagging {
		logging.WarnWithContext(h.logger, "viewer queue full, dropping oldest frames", logging.Warning{
			EventType: "viewer_queue_overflow",
			Hint:      "raise stream.max_queue or check the viewer's connection",
			Impact:    "the viewer misses older lines",
		}, logging.Viewer(v.ID), logging.Int("max_queue", h.maxQueue))
	}

	if h.logger.Enabled(context.Background(), slog.LevelDebug) {
		attrs := []logging.Attr{
			logging.String("event", event),
			logging.Int(logging.FieldClients, total),
		}
		if lines, ok := payload.(api.LinesPayload); ok {
			attrs = append(attrs, logging.Batch(lines.Lines)...)
		}
		h.logger.Debug("broadcasting", logging.Args(attrs...)...)
	}
	return nil
}

// Count reports the number of registered viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}
