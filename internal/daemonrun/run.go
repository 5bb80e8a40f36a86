package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"logwatch/internal/config"
	"logwatch/internal/daemon"
	"logwatch/internal/logging"
	"logwatch/internal/preflight"
)

// Options configures server process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
	// Fresh replaces the watched file with a startup line before tailing.
	Fresh bool
}

// Run starts the logwatch server and blocks until interrupted.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("logwatch-%s.log", runID))

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
		Development: opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	fs := afero.NewOsFs()
	d, err := daemon.New(cfg, logger, daemon.WithFs(fs))
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	// nothing shared with a running server may change before this succeeds
	if err := d.Acquire(); err != nil {
		logger.Error("server start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "server_start_failed"),
			logging.String(logging.FieldErrorHint, "stop the running server with logwatch stop"),
		)
		return err
	}
	defer d.Release()

	if err := ensureCurrentLogPointer(cfg.Paths.LogDir, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update logwatch.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "logwatch-*.log", Exclude: []string{logPath}},
	)
	pidPath := filepath.Join(cfg.Paths.LogDir, "logwatch.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	logPreflight(signalCtx, logger, cfg)

	if opts.Fresh {
		if err := daemon.SeedWatchFile(fs, cfg.Paths.WatchFile, time.Now()); err != nil {
			return err
		}
		logger.Info("watched file reset",
			logging.String(logging.FieldEventType, "watch_file_seeded"),
			logging.String(logging.FieldPath, cfg.Paths.WatchFile),
		)
	}

	if err := d.Start(signalCtx); err != nil {
		logger.Error("server start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "server_start_failed"),
			logging.String(logging.FieldErrorHint, "check api_bind is free"),
		)
		return err
	}
	defer d.Stop()

	<-signalCtx.Done()
	logger.Info("logwatch server shutting down")
	return nil
}

func logPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, result := range preflight.Failed(preflight.RunAll(ctx, cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", logging.Warning{
			EventType: "preflight_failed",
			Impact:    "viewers may see no content until the problem is fixed",
		}, logging.String("check", result.Name), logging.String("detail", result.Detail))
	}
}

func ensureCurrentLogPointer(logDir, target string) error {
	if logDir == "" || target == "" {
		return nil
	}
	current := filepath.Join(logDir, "logwatch.log")
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
