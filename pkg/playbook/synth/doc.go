// Package synth derives task, milestone and tip fields from free text when
// a document does not state them explicitly.
//
// Every synthesizer is deterministic. Where a value is manufactured by a
// fallback rather than read from the text, the result says so, so callers
// can tag the field's provenance.
package synth
