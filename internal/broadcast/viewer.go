package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// Viewer is one registered consumer with its own FIFO of pending frames.
type Viewer struct {
	ID string

	mu      sync.Mutex
	queue   [][]byte
	dropped int
	wake    chan struct{}
}

func newViewer() *Viewer {
	return &Viewer{
		ID:   uuid.NewString(),
		wake: make(chan struct{}, 1),
	}
}

// enqueue appends frame. With limit > 0 the oldest frames are discarded to
// keep at most limit pending. It reports how many frames this call discarded
// and the viewer's running total.
func (v *Viewer) enqueue(frame []byte, limit int) (drop, total int) {
	v.mu.Lock()
	v.queue = append(v.queue, frame)
	if limit > 0 && len(v.queue) > limit {
		drop = len(v.queue) - limit
		clear(v.queue[:drop])
		v.queue = v.queue[drop:]
		v.dropped += drop
	}
	total = v.dropped
	v.mu.Unlock()
	select {
	case v.wake <- struct{}{}:
	default:
	}
	return drop, total
}

// Dequeue pops the oldest pending frame.
func (v *Viewer) Dequeue() ([]byte, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.queue) == 0 {
		return nil, false
	}
	frame := v.queue[0]
	v.queue[0] = nil
	v.queue = v.queue[1:]
	if len(v.queue) == 0 {
		v.queue = nil
	}
	return frame, true
}

// Ready fires after at least one frame was enqueued since the last receive.
// Callers should drain with Dequeue until it reports false.
func (v *Viewer) Ready() <-chan struct{} {
	return v.wake
}

// Pending reports the number of queued frames.
func (v *Viewer) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue)
}

// Dropped reports how many frames were discarded because the queue was full.
func (v *Viewer) Dropped() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dropped
}
