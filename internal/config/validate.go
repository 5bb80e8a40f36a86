package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTail(); err != nil {
		return err
	}
	if err := c.validateStream(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WatchFile == "" {
		return errors.New("paths.watch_file must be set")
	}
	if c.Paths.APIBind == "" {
		return errors.New("paths.api_bind must be set")
	}
	if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
		return fmt.Errorf("paths.api_bind %q is not host:port: %w", c.Paths.APIBind, err)
	}
	return nil
}

func (c *Config) validateTail() error {
	if c.Tail.PollIntervalMS <= 0 {
		return errors.New("tail.poll_interval_ms must be positive")
	}
	if c.Tail.SnapshotLines <= 0 {
		return errors.New("tail.snapshot_lines must be positive")
	}
	if c.Tail.ChunkSize < minChunkSize || c.Tail.ChunkSize > maxChunkSize {
		return fmt.Errorf("tail.chunk_size must be between %d and %d", minChunkSize, maxChunkSize)
	}
	return nil
}

func (c *Config) validateStream() error {
	if c.Stream.HeartbeatSeconds <= 0 {
		return errors.New("stream.heartbeat_seconds must be positive")
	}
	if c.Stream.MaxQueue < 0 {
		return errors.New("stream.max_queue must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
