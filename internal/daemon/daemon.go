package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"logwatch/internal/broadcast"
	"logwatch/internal/config"
	"logwatch/internal/httpapi"
	"logwatch/internal/logging"
	"logwatch/internal/logs"
)

// ErrAlreadyRunning reports that another server holds the lock.
var ErrAlreadyRunning = errors.New("another logwatch server is already running")

// Daemon owns the tailer, hub and HTTP server for one watched file.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	fs     afero.Fs

	hub    *broadcast.Hub
	tailer *logs.Tailer
	server *httpapi.Server
	reader *logs.Reader

	lockPath string
	lock     *flock.Flock
	locked   bool

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	WatchFile    string
	Address      string
	Clients      int
	Position     int64
	LockFilePath string
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithFs overrides the filesystem used to read the watched file.
func WithFs(fs afero.Fs) Option {
	return func(d *Daemon) {
		if fs != nil {
			d.fs = fs
		}
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		fs:       afero.NewOsFs(),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.hub = broadcast.NewHub(logger, broadcast.WithMaxQueue(cfg.Stream.MaxQueue))
	d.reader = logs.NewReader(d.fs, cfg.Tail.ChunkSize)
	d.tailer = logs.NewTailer(d.fs, cfg.Paths.WatchFile, d.hub, logger,
		logs.WithInterval(cfg.PollInterval()))

	server, err := httpapi.New(httpapi.Options{
		Bind:      cfg.Paths.APIBind,
		WatchFile: cfg.Paths.WatchFile,
		Hub:       d.hub,
		Position:  d.tailer,
		Snapshot:  d.snapshot,
		Heartbeat: cfg.HeartbeatInterval(),
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api server: %w", err)
	}
	d.server = server
	return d, nil
}

func (d *Daemon) snapshot() ([]string, error) {
	return d.reader.LastLines(d.cfg.Paths.WatchFile, d.cfg.Tail.SnapshotLines)
}

// Acquire takes the single-instance lock without starting anything. Callers
// that touch shared state (PID file, watched file) before Start must hold it
// first. Acquiring twice is a no-op.
func (d *Daemon) Acquire() error {
	if d.locked {
		return nil
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	d.locked = true
	return nil
}

// Release drops a lock taken by Acquire when Start is never reached.
func (d *Daemon) Release() {
	if !d.locked || d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.locked = false
}

// Start acquires the lock if needed, starts the HTTP server and launches the
// tailer.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.Acquire(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	// the cursor starts at the file's current end, not where it was at New
	d.tailer.Init()
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		d.Release()
		return fmt.Errorf("start api server: %w", err)
	}
	d.cancel = cancel

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.tailer.Run(runCtx)
	}()

	d.running.Store(true)
	d.logger.Info("logwatch server started",
		logging.String(logging.FieldPath, d.cfg.Paths.WatchFile),
		logging.String("address", d.server.Addr()),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Stop ends all viewer streams, stops the tailer and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		d.logger.Warn("tailer did not stop within timeout")
	}

	d.running.Store(false)
	d.Release()
	d.logger.Info("logwatch server stopped")
}

// Status reports the current runtime state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		WatchFile:    d.cfg.Paths.WatchFile,
		Address:      d.server.Addr(),
		Clients:      d.hub.Count(),
		Position:     d.tailer.Position(),
		LockFilePath: d.lockPath,
	}
}
