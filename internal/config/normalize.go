package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTail()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	c.Paths.WatchFile = strings.TrimSpace(c.Paths.WatchFile)
	if c.Paths.WatchFile == "" {
		if value, ok := os.LookupEnv("LOG_FILE"); ok && strings.TrimSpace(value) != "" {
			c.Paths.WatchFile = strings.TrimSpace(value)
		} else {
			c.Paths.WatchFile = defaultWatchFile
		}
	}
	var err error
	if c.Paths.WatchFile, err = expandPath(c.Paths.WatchFile); err != nil {
		return fmt.Errorf("paths.watch_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeTail() {
	if c.Tail.PollIntervalMS == 0 {
		c.Tail.PollIntervalMS = defaultPollIntervalMS
	}
	if c.Tail.SnapshotLines == 0 {
		c.Tail.SnapshotLines = defaultSnapshotLines
	}
	if c.Tail.ChunkSize == 0 {
		c.Tail.ChunkSize = defaultChunkSize
	}
	if c.Stream.HeartbeatSeconds == 0 {
		c.Stream.HeartbeatSeconds = defaultHeartbeatSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
