package subtitle

import (
	"fmt"
	"sort"

	"kotoba/internal/services"
)

// Parse converts a raw track into an ordered, validated cue sequence.
//
// The returned cues are strictly time-ordered, non-overlapping, and carry
// contiguous sequence indexes starting at zero. Overlapping timestamps are
// resolved by clamping a cue's end to the next cue's start; a cue whose
// clamped duration reaches zero is dropped. Duplicate consecutive cues
// collapse into one spanning the earliest start and latest end. An empty
// track yields an empty slice, not an error.
func Parse(track RawTrack) ([]Cue, error) {
	var (
		cues []Cue
		err  error
	)
	switch track.Format {
	case FormatJSON3:
		cues, err = parseJSON3(track.Data)
	case FormatSRT:
		cues, err = parseSRT(track.Data)
	default:
		return nil, services.Wrap(services.ErrParse, "parser", "detect format",
			fmt.Sprintf("unsupported track format %q", track.Format), nil)
	}
	if err != nil {
		return nil, err
	}
	return normalizeCues(cues), nil
}

func normalizeCues(raw []Cue) []Cue {
	kept := make([]Cue, 0, len(raw))
	for _, cue := range raw {
		cue.Text = cleanCueText(cue.Text)
		if cue.Text == "" {
			continue
		}
		if cue.EndSeconds <= cue.StartSeconds {
			continue
		}
		kept = append(kept, cue)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StartSeconds < kept[j].StartSeconds
	})

	collapsed := make([]Cue, 0, len(kept))
	for _, cue := range kept {
		if n := len(collapsed); n > 0 && collapsed[n-1].Text == cue.Text {
			// Duplicate consecutive cue: widen the existing one.
			if cue.EndSeconds > collapsed[n-1].EndSeconds {
				collapsed[n-1].EndSeconds = cue.EndSeconds
			}
			continue
		}
		collapsed = append(collapsed, cue)
	}

	result := make([]Cue, 0, len(collapsed))
	for i := range collapsed {
		cue := collapsed[i]
		if i+1 < len(collapsed) && cue.EndSeconds > collapsed[i+1].StartSeconds {
			cue.EndSeconds = collapsed[i+1].StartSeconds
		}
		if cue.EndSeconds <= cue.StartSeconds {
			continue
		}
		cue.Seq = len(result)
		result = append(result, cue)
	}
	return result
}
