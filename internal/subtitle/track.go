package subtitle

// Format identifies the encoding of a raw subtitle track.
type Format string

const (
	FormatJSON3 Format = "json3"
	FormatSRT   Format = "srt"
)

// RawTrack is an unparsed subtitle track as returned by a fetcher.
type RawTrack struct {
	VideoID         string
	Title           string
	DurationSeconds float64
	Format          Format
	Data            []byte
}

// Cue is a single normalized subtitle line. Seq is the 0-based position within
// the video; cues produced by Parse are strictly time-ordered and
// non-overlapping with EndSeconds > StartSeconds.
type Cue struct {
	Seq          int
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

// DurationSeconds returns the cue's display duration.
func (c Cue) DurationSeconds() float64 {
	return c.EndSeconds - c.StartSeconds
}
