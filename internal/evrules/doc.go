// Package evrules defines the rule codes enforced by eventid.
//
// Each rule has a stable textual identifier that downstream tooling uses to
// filter, suppress or escalate findings, and a numbered code for compact output:
//
//	EVT001  missing-event-id    logging call without an event id
//	EVT002  duplicate-event-id  event id reused within one package
//
// Example:
//
//	evrules.MissingEventID().String()      → "missing-event-id"
//	evrules.MissingEventID().Description() → "Logging call must pass an event id as its first argument."
//
// Both rules are reported with warning severity. Identifiers are stable; never
// renumber existing codes.
package evrules
