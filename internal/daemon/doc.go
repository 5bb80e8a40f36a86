// Package daemon coordinates the long-running logwatch server.
//
// It wires the tailer, the broadcast hub and the HTTP server into a single
// lifecycle with flock-based locking to prevent two servers from watching
// with the same log directory. Individual behaviors live in their own
// packages; the daemon only handles startup, shutdown and status.
package daemon
