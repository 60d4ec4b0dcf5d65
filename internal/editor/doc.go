// Package editor drives the remote card editor through its browser UI.
//
// The editor is an opaque third-party web application; everything known about
// its DOM lives in selectors.go, and the rest of the pipeline only sees the
// verbs of the Renderer contract. One Browser process serves a whole run; each
// render job gets its own short-lived Session (page) so no editor state leaks
// between cards. Steps that are best-effort (artwork upload, set symbol
// removal, exact print resolution) report a StepOutcome instead of failing
// the job.
package editor
