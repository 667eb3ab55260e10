// Package subtitle converts raw subtitle tracks into normalized cue sequences.
//
// Two upstream formats are supported: the platform's timedtext json3 payload
// and SRT. Parse is the single entry point; it strips formatting markup,
// normalizes text to NFKC so full-width and half-width forms compare equal,
// collapses duplicate consecutive cues, clamps overlapping timestamps, and
// emits cues already satisfying the store's ordering invariant. Callers never
// repair parser output.
package subtitle
