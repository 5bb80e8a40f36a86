package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"logwatch/internal/config"
)

// ErrDaemonNotRunning indicates no server holds the lock.
var ErrDaemonNotRunning = errors.New("server not running")

// StopResult captures server stop/termination outcome.
type StopResult struct {
	PID        int
	ForcedKill bool
}

// PIDPath returns the pid file written by a running server.
func PIDPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "logwatch.pid")
}

// ProcessInfo reports whether a server holds the lock and its recorded PID.
func ProcessInfo(cfg *config.Config) (bool, int, error) {
	if cfg == nil {
		return false, 0, errors.New("config is required")
	}
	running, err := lockHeld(cfg.LockPath())
	if err != nil {
		return false, 0, err
	}
	if !running {
		return false, 0, nil
	}
	pid, err := readPID(PIDPath(cfg))
	return true, pid, err
}

func lockHeld(lockPath string) (bool, error) {
	if _, err := os.Stat(lockPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat lock file %q: %w", lockPath, err)
	}
	probe := flock.New(lockPath)
	ok, err := probe.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe lock %q: %w", lockPath, err)
	}
	if ok {
		_ = probe.Unlock()
		return false, nil
	}
	return true, nil
}

func readPID(pidPath string) (int, error) {
	data, err := os.ReadFile(pidPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read pid file %q: %w", pidPath, err)
	}
	pidStr := strings.TrimSpace(string(data))
	if pidStr == "" {
		return 0, nil
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return 0, fmt.Errorf("parse pid file %q: %w", pidPath, err)
	}
	return pid, nil
}

// WaitForShutdown polls until the lock is released or timeout elapses.
func WaitForShutdown(lockPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		held, err := lockHeld(lockPath)
		if err == nil && !held {
			return nil
		}
		if time.Now().After(deadline) {
			if err == nil {
				err = fmt.Errorf("timeout waiting for shutdown")
			}
			return fmt.Errorf("server did not stop: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// StopAndTerminate sends SIGTERM to the running server and SIGKILL if it is
// still holding the lock after gracePeriod.
func StopAndTerminate(cfg *config.Config, gracePeriod time.Duration) (StopResult, error) {
	running, pid, err := ProcessInfo(cfg)
	if err != nil {
		return StopResult{}, err
	}
	if !running {
		return StopResult{}, ErrDaemonNotRunning
	}
	if pid <= 0 {
		return StopResult{}, fmt.Errorf("unable to determine server pid (pid file: %s)", PIDPath(cfg))
	}
	if pid == os.Getpid() {
		return StopResult{}, fmt.Errorf("refusing to signal current process (pid %d)", pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return StopResult{}, fmt.Errorf("locate server process %d: %w", pid, err)
	}
	result := StopResult{PID: pid}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return result, fmt.Errorf("signal server process %d: %w", pid, err)
	}
	if err := WaitForShutdown(cfg.LockPath(), gracePeriod); err == nil {
		return result, nil
	}

	if err := proc.Kill(); err != nil {
		return result, fmt.Errorf("kill server process %d: %w", pid, err)
	}
	if err := os.Remove(PIDPath(cfg)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return result, fmt.Errorf("remove pid file: %w", err)
	}
	result.ForcedKill = true
	return result, nil
}
