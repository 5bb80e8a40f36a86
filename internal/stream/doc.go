// Package stream runs the per-connection viewer loop: snapshot, init frame,
// registration with the hub, then queue draining with heartbeats until the
// connection fails or the request ends.
package stream
