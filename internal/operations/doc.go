// Package operations runs the sales analysis pipeline as an ordered list of
// steps: load, clean, features and report.
//
// A Manager executes the steps of a Registry one after another against a
// shared OperationState, which carries the current table and the values
// steps leave for each other. The first failing step stops the run; later
// steps are marked skipped. Every run and step gets an OpenTelemetry span,
// and step durations, row counts and charts are recorded as metrics when an
// OperationTracer is built from initialised providers.
package operations
