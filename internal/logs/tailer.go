package logs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"logwatch/internal/api"
	"logwatch/internal/logging"
)

// DefaultPollInterval is the delay between growth checks.
const DefaultPollInterval = 100 * time.Millisecond

// Publisher receives batches of newly appended lines.
type Publisher interface {
	Publish(event string, payload any) error
}

// TailerOption customizes a Tailer.
type TailerOption func(*Tailer)

// WithInterval overrides the poll interval. Non-positive values are ignored.
func WithInterval(interval time.Duration) TailerOption {
	return func(t *Tailer) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

// Tailer follows a single file by polling its size.
type Tailer struct {
	fs        afero.Fs
	path      string
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration

	position atomic.Int64
}

// NewTailer builds a tailer whose cursor starts at the current end of path,
// or at 0 when the file does not exist yet.
func NewTailer(fs afero.Fs, path string, publisher Publisher, logger *slog.Logger, opts ...TailerOption) *Tailer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	t := &Tailer{
		fs:        fs,
		path:      path,
		publisher: publisher,
		logger:    logging.NewComponentLogger(logger, "tailer"),
		interval:  DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Init()
	return t
}

// Init resets the cursor to the current file size.
func (t *Tailer) Init() {
	info, err := t.fs.Stat(t.path)
	if err != nil {
		t.position.Store(0)
		return
	}
	t.position.Store(info.Size())
}

// Position reports the byte offset of the next unread byte.
func (t *Tailer) Position() int64 {
	return t.position.Load()
}

// Path returns the watched file path.
func (t *Tailer) Path() string {
	return t.path
}

// Run polls until ctx is cancelled. Cycle failures are logged and the loop
// keeps going on the next tick.
func (t *Tailer) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("tailer started",
		logging.String(logging.FieldPath, t.path),
		logging.Int64(logging.FieldPosition, t.Position()),
		logging.Duration("interval", t.interval),
	)
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("tailer stopped", logging.Int64(logging.FieldPosition, t.Position()))
			return
		case <-ticker.C:
			if err := t.safePoll(); err != nil {
				logging.WarnWithContext(t.logger, "tail cycle failed", logging.Warning{
					EventType: "tail_cycle_failed",
					Hint:      "check that the watched file is readable",
					Impact:    "new lines are delayed until the next successful cycle",
				}, logging.String(logging.FieldPath, t.path), logging.Error(err))
			}
		}
	}
}

func (t *Tailer) safePoll() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tail cycle panic: %v", r)
		}
	}()
	return t.Poll()
}

// Poll performs a single growth check and publishes any new lines.
func (t *Tailer) Poll() error {
	info, err := t.fs.Stat(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: stat %s: %w", ErrRead, t.path, err)
	}
	size := info.Size()
	cursor := t.position.Load()

	if size < cursor {
		t.logger.Info("file truncated, resetting position",
			logging.String(logging.FieldPath, t.path),
			logging.Int64("previous", cursor),
			logging.Int64("size", size),
		)
		t.position.Store(0)
		return nil
	}
	if size == cursor {
		return nil
	}

	data, err := t.readRange(cursor, size)
	if err != nil {
		return err
	}
	t.position.Store(cursor + int64(len(data)))

	lines := splitLines(data)
	if len(lines) == 0 {
		return nil
	}
	if t.publisher == nil {
		return nil
	}
	if err := t.publisher.Publish(api.EventUpdate, api.NewLinesPayload(lines)); err != nil {
		return fmt.Errorf("publish update: %w", err)
	}
	return nil
}

// readRange returns the bytes in [from, to). A short read returns what was
// available.
func (t *Tailer) readRange(from, to int64) ([]byte, error) {
	file, err := t.fs.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrRead, t.path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.NewSectionReader(file, from, to-from))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s at %d: %w", ErrRead, t.path, from, err)
	}
	return data, nil
}
