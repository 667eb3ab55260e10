package subtitle

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	overridePattern = regexp.MustCompile(`\{\\[^}]*\}`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// cleanCueText strips formatting markup and normalizes a cue's text. Stripping
// never touches timestamps; it operates on text only. NFKC normalization folds
// full-width Latin and half-width katakana so index and queries agree.
func cleanCueText(text string) string {
	text = entityReplacer.Replace(text)
	text = tagPattern.ReplaceAllString(text, "")
	text = overridePattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	text = norm.NFKC.String(text)
	return strings.TrimSpace(text)
}

// NormalizeQuery applies the same text normalization to a search query that
// cleanCueText applies to cue text.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(norm.NFKC.String(query))
}
