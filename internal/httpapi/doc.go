// Package httpapi exposes the viewer page, the event stream and the health
// endpoint over HTTP.
package httpapi
