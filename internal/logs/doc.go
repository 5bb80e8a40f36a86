// Package logs provides file tailing helpers for the watched log file.
//
// LastLines reads backward from the end of the file in bounded chunks to
// build the recent-history snapshot a viewer sees on connect. Tailer polls
// the file on a fixed interval, detects growth and truncation by size, and
// publishes newly appended lines as update events. Both read through an
// afero.Fs so tests can swap in an in-memory filesystem.
//
// StreamClient is the consumer side: it reads the server's health endpoint
// and decodes the event stream for `logwatch show --follow`.
package logs
