// Package corpus persists the subtitle corpus in SQLite: videos, their cue
// sets, and the derived word-occurrence index.
//
// ReplaceCues is the only mutation path for cues. It validates the
// time-ordering invariant, swaps a video's full cue set inside one
// transaction, and rebuilds the occurrence index from the new cue text, so
// the index can never drift from the source text and readers never observe a
// half-replaced set. Writes to a single video identifier are serialized with
// a per-identifier mutex; different identifiers may replace concurrently.
//
// Schema changes are new files under migrations/; applied versions are
// recorded in schema_migrations.
package corpus
