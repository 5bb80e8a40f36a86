// Package api defines the wire-format types shared by the HTTP server and the
// CLI client.
//
// # Event stream
//
// Every server-originated frame is "event: <name>\ndata: <JSON>\n\n". Two
// event names exist: EventInit carries the recent-history snapshot sent once
// per connection, EventUpdate carries lines appended since the previous poll.
// Both use LinesPayload. HeartbeatFrame is a comment frame with no event name
// and no data.
//
// # Health
//
// HealthResponse reports the registered viewer count and the tailer cursor.
// Its JSON keys ("clients", "pos") are kept short for compatibility with
// existing status scrapers.
package api
