package corpus

import "time"

// Video is one ingested video. Rows are created on first successful ingest
// and never mutated afterwards except for LastCheckedAt; IngestedAt therefore
// provides a stable ordering key for search results.
type Video struct {
	ID              int64
	VideoID         string
	Title           string
	DurationSeconds float64
	IngestedAt      time.Time
	LastCheckedAt   *time.Time
}

// Cue is a persisted subtitle line owned by exactly one video.
type Cue struct {
	ID           int64
	VideoID      string
	Seq          int
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// CueHit is a search read-path row: a matching cue joined with its video's
// ordering metadata.
type CueHit struct {
	Cue        Cue
	Title      string
	IngestedAt time.Time
}

// Statistics aggregates corpus counts for the read API.
type Statistics struct {
	VideoCount        int
	CueCount          int
	DistinctWordCount int
}

// VideoStats reports per-video cue counts, largest first.
type VideoStats struct {
	VideoID  string
	Title    string
	CueCount int
}
