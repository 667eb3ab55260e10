// Package search resolves query words into timestamped matches against the
// subtitle corpus.
//
// Matching is literal substring containment, case-sensitive, with no
// stemming; the domain offers no relevance signal beyond containment, so
// ordering is deterministic (video ingestion time, then cue start) rather
// than scored. Each match carries surrounding context cues from the same
// video and a playback offset shifted back by a configurable lead-in.
package search
