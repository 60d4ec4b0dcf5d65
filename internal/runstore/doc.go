// Package runstore persists run history in SQLite. Each pipeline invocation
// becomes a run row, and every render job attempted during the run is recorded
// with its terminal status and step fidelity so the report command can show
// which cards rendered degraded or not at all.
package runstore
