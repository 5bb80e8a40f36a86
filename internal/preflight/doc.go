// Package preflight provides readiness checks for the filesystem paths and
// the running server that logwatch depends on.
//
// The daemon runs RunAll before it starts tailing and logs any failure as a
// warning. The CLI "logwatch status" command shows the same results together
// with CheckServer.
package preflight
