// Package main hosts the logwatch CLI entrypoint and command graph.
//
// The Cobra-based command tree runs the server in the foreground, prints or
// follows the watched file, reports server health and scaffolds
// configuration. It centralizes configuration resolution so subcommands can
// focus on output instead of wiring.
package main
