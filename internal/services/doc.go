// Package services defines shared utilities consumed by the editor session
// driver and the batch runner.
//
// Key responsibilities:
//   - Context helpers that stamp render job IDs, step names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into run-fatal (configuration) versus job-fatal (external service)
//     outcomes.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
