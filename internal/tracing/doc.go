// Package tracing implements the event id checking pipeline over go/types.
//
// For every call expression of a compilation unit the pipeline runs three
// steps:
//
//   - Classifier
//     Decides whether the call targets a logging interface. An exact check
//     (the receiver is, or implements, a configured interface) comes first,
//     then a configurable name heuristic for incomplete type information.
//     The first argument is then classified as absent, a constant integer
//     or an id whose value is unknown.
//
//   - Registry
//     Records code → spans for the unit and flags every occurrence of a
//     code after the first one. Safe for concurrent walkers.
//
//   - Emitter
//     Builds diagnostics for missing and duplicate ids, honours disabled
//     rules and //eventid:ignore directives, and hands them to a Sink.
//
// An Engine owns the policy. Engine.Check creates a Unit with a fresh
// registry for each compilation unit, so no state leaks across units.
package tracing
