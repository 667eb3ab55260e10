package subtitle

import (
	"errors"
	"testing"

	"kotoba/internal/services"
)

func json3Track(data string) RawTrack {
	return RawTrack{VideoID: "abc123xyz00", Format: FormatJSON3, Data: []byte(data)}
}

func TestParseJSON3(t *testing.T) {
	track := json3Track(`{
		"events": [
			{"tStartMs": 0, "dDurationMs": 2000, "segs": [{"utf8": "こんにちは"}]},
			{"tStartMs": 2500, "dDurationMs": 1500, "segs": [{"utf8": "元気"}, {"utf8": "ですか"}]},
			{"tStartMs": 5000, "dDurationMs": 1000}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d: %#v", len(cues), cues)
	}
	if cues[0].Text != "こんにちは" || cues[0].StartSeconds != 0 || cues[0].EndSeconds != 2 {
		t.Fatalf("unexpected first cue %#v", cues[0])
	}
	if cues[1].Text != "元気ですか" || cues[1].StartSeconds != 2.5 || cues[1].EndSeconds != 4 {
		t.Fatalf("unexpected second cue %#v", cues[1])
	}
	if cues[0].Seq != 0 || cues[1].Seq != 1 {
		t.Fatalf("sequence indexes not contiguous: %#v", cues)
	}
}

func TestParseJSON3Malformed(t *testing.T) {
	_, err := Parse(json3Track(`{"events": [`))
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse(RawTrack{Format: "vtt", Data: []byte("WEBVTT")})
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseClampsOverlappingCues(t *testing.T) {
	track := json3Track(`{
		"events": [
			{"tStartMs": 0, "dDurationMs": 5000, "segs": [{"utf8": "最初"}]},
			{"tStartMs": 3000, "dDurationMs": 2000, "segs": [{"utf8": "次"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].EndSeconds != 3 {
		t.Fatalf("expected first cue clamped to 3s, got %v", cues[0].EndSeconds)
	}
	if cues[1].StartSeconds != 3 || cues[1].EndSeconds != 5 {
		t.Fatalf("second cue should be untouched: %#v", cues[1])
	}
}

func TestParseDropsZeroDurationAfterClamp(t *testing.T) {
	// The second cue starts at the same instant as the third, so clamping
	// collapses it to nothing.
	track := json3Track(`{
		"events": [
			{"tStartMs": 0, "dDurationMs": 1000, "segs": [{"utf8": "一"}]},
			{"tStartMs": 2000, "dDurationMs": 3000, "segs": [{"utf8": "二"}]},
			{"tStartMs": 2000, "dDurationMs": 1000, "segs": [{"utf8": "三"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected zero-duration cue dropped, got %#v", cues)
	}
	if cues[0].Text != "一" || cues[1].Text != "三" {
		t.Fatalf("unexpected surviving cues %#v", cues)
	}
	if cues[1].Seq != 1 {
		t.Fatalf("sequence should be reindexed after drop: %#v", cues[1])
	}
}

func TestParseCollapsesDuplicateConsecutiveCues(t *testing.T) {
	track := json3Track(`{
		"events": [
			{"tStartMs": 1000, "dDurationMs": 2000, "segs": [{"utf8": "ありがとう"}]},
			{"tStartMs": 3000, "dDurationMs": 2000, "segs": [{"utf8": "ありがとう"}]},
			{"tStartMs": 6000, "dDurationMs": 1000, "segs": [{"utf8": "さようなら"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected duplicates collapsed, got %#v", cues)
	}
	if cues[0].StartSeconds != 1 || cues[0].EndSeconds != 5 {
		t.Fatalf("collapsed cue should span earliest start to latest end: %#v", cues[0])
	}
}

func TestParseStripsMarkupWithoutMovingTimestamps(t *testing.T) {
	track := json3Track(`{
		"events": [
			{"tStartMs": 1000, "dDurationMs": 2000, "segs": [{"utf8": "<b>強調</b> {\\an8}テスト &amp; 実験"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %#v", cues)
	}
	if cues[0].Text != "強調 テスト & 実験" {
		t.Fatalf("markup not stripped: %q", cues[0].Text)
	}
	if cues[0].StartSeconds != 1 || cues[0].EndSeconds != 3 {
		t.Fatalf("timestamps must not move during stripping: %#v", cues[0])
	}
}

func TestParseNormalizesWidth(t *testing.T) {
	// Full-width Latin folds to ASCII under NFKC.
	track := json3Track(`{
		"events": [
			{"tStartMs": 0, "dDurationMs": 1000, "segs": [{"utf8": "ＪＬＰＴ　Ｎ１"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cues[0].Text != "JLPT N1" {
		t.Fatalf("expected NFKC folding, got %q", cues[0].Text)
	}
}

func TestParseSRT(t *testing.T) {
	data := "1\n00:00:01,000 --> 00:00:03,500\nこんにちは\n\n2\n00:00:04,000 --> 00:00:05,000\n<i>世界</i>\n"
	cues, err := Parse(RawTrack{Format: FormatSRT, Data: []byte(data)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %#v", cues)
	}
	if cues[0].StartSeconds != 1 || cues[0].EndSeconds != 3.5 || cues[0].Text != "こんにちは" {
		t.Fatalf("unexpected first cue %#v", cues[0])
	}
	if cues[1].Text != "世界" {
		t.Fatalf("markup not stripped from srt cue: %#v", cues[1])
	}
}

func TestParseSRTBadTimestamp(t *testing.T) {
	data := "1\n00:00:01 --> later\nhello\n"
	_, err := Parse(RawTrack{Format: FormatSRT, Data: []byte(data)})
	if !errors.Is(err, services.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseEmptyTrack(t *testing.T) {
	cues, err := Parse(RawTrack{Format: FormatSRT, Data: []byte("  \n ")})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %#v", cues)
	}
}

func TestParseResultSatisfiesOrderingInvariant(t *testing.T) {
	track := json3Track(`{
		"events": [
			{"tStartMs": 9000, "dDurationMs": 2000, "segs": [{"utf8": "く"}]},
			{"tStartMs": 0, "dDurationMs": 4000, "segs": [{"utf8": "あ"}]},
			{"tStartMs": 3000, "dDurationMs": 3000, "segs": [{"utf8": "い"}]},
			{"tStartMs": 5000, "dDurationMs": 10000, "segs": [{"utf8": "う"}]}
		]
	}`)
	cues, err := Parse(track)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, cue := range cues {
		if cue.Seq != i {
			t.Fatalf("seq gap at %d: %#v", i, cues)
		}
		if cue.EndSeconds <= cue.StartSeconds {
			t.Fatalf("non-positive duration at %d: %#v", i, cue)
		}
		if i > 0 && cue.StartSeconds < cues[i-1].EndSeconds {
			t.Fatalf("overlap between %d and %d: %#v", i-1, i, cues)
		}
	}
}
