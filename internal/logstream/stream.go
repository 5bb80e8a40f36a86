package logstream

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"logwatch/internal/api"
	"logwatch/internal/logs"
)

// Options controls stream behavior. Following goes through the server only
// when ServerPath, the file the server watches, equals Path. PollInterval
// drives the local tailer used otherwise.
type Options struct {
	Path         string
	ServerPath   string
	Lines        int
	ChunkSize    int
	Follow       bool
	PollInterval time.Duration
}

// Stream prints the last opts.Lines lines of opts.Path and, when following,
// emits appended lines from the server's event stream, falling back to
// tailing the file locally when the server is unavailable or watches a
// different file. It returns true
// when at least one line was emitted.
func Stream(ctx context.Context, fs afero.Fs, apiClient *logs.StreamClient, opts Options, onLine func(string)) (bool, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	emit := func(line string) {
		if onLine != nil {
			onLine(line)
		}
	}

	recent, err := logs.NewReader(fs, opts.ChunkSize).LastLines(opts.Path, opts.Lines)
	if err != nil {
		return false, err
	}
	for _, line := range recent {
		emit(line)
	}
	printed := len(recent) > 0
	if !opts.Follow {
		return printed, nil
	}

	if !sameFile(opts.Path, opts.ServerPath) {
		return streamLocal(ctx, fs, opts, emit, printed)
	}
	followed, err := streamAPI(ctx, apiClient, emit)
	if err == nil {
		return printed || followed, nil
	}
	if !logs.IsAPIUnavailable(err) {
		return printed || followed, err
	}
	return streamLocal(ctx, fs, opts, emit, printed)
}

func sameFile(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func streamAPI(ctx context.Context, client *logs.StreamClient, emit func(string)) (bool, error) {
	printed := false
	err := client.Follow(ctx, func(ev logs.Event) error {
		// init repeats the snapshot already emitted
		if ev.Name != api.EventUpdate {
			return nil
		}
		for _, line := range ev.Lines {
			emit(line)
			printed = true
		}
		return nil
	})
	return printed, err
}

func streamLocal(ctx context.Context, fs afero.Fs, opts Options, emit func(string), printed bool) (bool, error) {
	sink := &lineSink{emit: emit}
	tailer := logs.NewTailer(fs, opts.Path, sink, nil, logs.WithInterval(opts.PollInterval))
	tailer.Run(ctx)
	return printed || sink.emitted, nil
}

// lineSink adapts a line callback to logs.Publisher. Run calls Publish from
// a single goroutine.
type lineSink struct {
	emit    func(string)
	emitted bool
}

func (s *lineSink) Publish(event string, payload any) error {
	lines, ok := payload.(api.LinesPayload)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", event, payload)
	}
	for _, line := range lines.Lines {
		s.emit(line)
		s.emitted = true
	}
	return nil
}
