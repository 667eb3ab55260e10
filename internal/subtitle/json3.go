package subtitle

import (
	"encoding/json"
	"strings"

	"kotoba/internal/services"
)

// timedtextPayload mirrors the subset of the platform's json3 format needed to
// extract cues: a list of events carrying a start offset, a duration, and text
// segments.
type timedtextPayload struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	StartMs    int64             `json:"tStartMs"`
	DurationMs int64             `json:"dDurationMs"`
	Segments   []timedtextSegment `json:"segs"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

func parseJSON3(data []byte) ([]Cue, error) {
	var payload timedtextPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, services.Wrap(services.ErrParse, "parser", "decode json3", "", err)
	}

	cues := make([]Cue, 0, len(payload.Events))
	for _, event := range payload.Events {
		if len(event.Segments) == 0 {
			continue
		}
		var text strings.Builder
		for _, segment := range event.Segments {
			text.WriteString(segment.UTF8)
		}
		start := float64(event.StartMs) / 1000
		end := start + float64(event.DurationMs)/1000
		cues = append(cues, Cue{
			StartSeconds: start,
			EndSeconds:   end,
			Text:         text.String(),
		})
	}
	return cues, nil
}
