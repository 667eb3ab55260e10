package videoid_test

import (
	"testing"

	"kotoba/internal/videoid"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url extra params", "https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ&list=x", "dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", true},
		{"empty", "", "", false},
		{"too short", "abc123", "", false},
		{"unrelated url", "https://example.com/page", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := videoid.Parse(tc.input)
			if tc.ok && err != nil {
				t.Fatalf("Parse(%q): %v", tc.input, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Parse(%q): expected error, got %q", tc.input, got)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseAllDeduplicates(t *testing.T) {
	ids, err := videoid.ParseAll([]string{
		"dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"aaaaaaaaaaa",
	})
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(ids) != 2 || ids[0] != "dQw4w9WgXcQ" || ids[1] != "aaaaaaaaaaa" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestParseAllPropagatesError(t *testing.T) {
	if _, err := videoid.ParseAll([]string{"dQw4w9WgXcQ", "bogus"}); err == nil {
		t.Fatal("expected error for unparseable reference")
	}
}
