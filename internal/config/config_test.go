package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"logwatch/internal/config"
)

func TestLoadDefaultConfigUsesEnvLogFileAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("LOG_FILE", "~/app/server.log")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(tempHome, "app", "server.log"); cfg.Paths.WatchFile != want {
		t.Fatalf("unexpected watch file: got %q want %q", cfg.Paths.WatchFile, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "logwatch", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if cfg.Paths.APIBind != "0.0.0.0:8080" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.PollInterval() != 100*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.PollInterval())
	}
	if cfg.HeartbeatInterval() != 15*time.Second {
		t.Fatalf("unexpected heartbeat interval: %s", cfg.HeartbeatInterval())
	}
	if cfg.Tail.SnapshotLines != 10 {
		t.Fatalf("unexpected snapshot lines: %d", cfg.Tail.SnapshotLines)
	}
	if cfg.Tail.ChunkSize != 8192 {
		t.Fatalf("unexpected chunk size: %d", cfg.Tail.ChunkSize)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, filepath.Dir(cfg.Paths.WatchFile)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadDefaultWatchFileWithoutEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOG_FILE", "")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want, err := filepath.Abs("sample.log")
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if cfg.Paths.WatchFile != want {
		t.Fatalf("unexpected watch file: got %q want %q", cfg.Paths.WatchFile, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "logwatch.toml")
	t.Setenv("LOG_FILE", "/ignored/by/file.log")

	type payload struct {
		Paths struct {
			WatchFile string `toml:"watch_file"`
			APIBind   string `toml:"api_bind"`
			LogDir    string `toml:"log_dir"`
		} `toml:"paths"`
		Tail struct {
			PollIntervalMS int `toml:"poll_interval_ms"`
			SnapshotLines  int `toml:"snapshot_lines"`
		} `toml:"tail"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.WatchFile = filepath.Join(tempDir, "watched.log")
	custom.Paths.APIBind = "127.0.0.1:9000"
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")
	custom.Tail.PollIntervalMS = 250
	custom.Tail.SnapshotLines = 25
	custom.Logging.Format = " JSON "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.WatchFile != custom.Paths.WatchFile {
		t.Fatalf("unexpected watch file: %q", cfg.Paths.WatchFile)
	}
	if cfg.Paths.APIBind != "127.0.0.1:9000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.PollInterval() != 250*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.PollInterval())
	}
	if cfg.Tail.SnapshotLines != 25 {
		t.Fatalf("unexpected snapshot lines: %d", cfg.Tail.SnapshotLines)
	}
	if cfg.Tail.ChunkSize != 8192 {
		t.Fatalf("expected default chunk size to survive partial file, got %d", cfg.Tail.ChunkSize)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
	if cfg.LockPath() != filepath.Join(tempDir, "logs", "logwatch.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative poll", func(c *config.Config) { c.Tail.PollIntervalMS = -1 }, "tail.poll_interval_ms"},
		{"negative snapshot", func(c *config.Config) { c.Tail.SnapshotLines = -5 }, "tail.snapshot_lines"},
		{"tiny chunk", func(c *config.Config) { c.Tail.ChunkSize = 8 }, "tail.chunk_size"},
		{"huge chunk", func(c *config.Config) { c.Tail.ChunkSize = 4 << 20 }, "tail.chunk_size"},
		{"bad bind", func(c *config.Config) { c.Paths.APIBind = "localhost" }, "paths.api_bind"},
		{"negative heartbeat", func(c *config.Config) { c.Stream.HeartbeatSeconds = -1 }, "stream.heartbeat_seconds"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.WatchFile = "/tmp/watched.log"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Stream.HeartbeatSeconds != 15 {
		t.Fatalf("unexpected heartbeat seconds: %d", cfg.Stream.HeartbeatSeconds)
	}
}
