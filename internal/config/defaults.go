package config

const (
	defaultWatchFile        = "./sample.log"
	defaultLogDir           = "~/.local/share/logwatch/logs"
	defaultAPIBind          = "0.0.0.0:8080"
	defaultPollIntervalMS   = 100
	defaultSnapshotLines    = 10
	defaultChunkSize        = 8192
	defaultHeartbeatSeconds = 15
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30

	minChunkSize = 64
	maxChunkSize = 1 << 20
)

// Default returns a Config populated with repository defaults. WatchFile is
// left empty so normalization can apply the LOG_FILE fallback.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Tail: Tail{
			PollIntervalMS: defaultPollIntervalMS,
			SnapshotLines:  defaultSnapshotLines,
			ChunkSize:      defaultChunkSize,
		},
		Stream: Stream{
			HeartbeatSeconds: defaultHeartbeatSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
