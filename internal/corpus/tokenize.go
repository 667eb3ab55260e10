package corpus

import (
	"strings"
	"unicode"
)

// Tokenize splits cue text into the word-boundary-naive tokens backing the
// occurrence index. Runs of letters and digits form one token, so scripts
// written without spaces (kana, kanji) keep whole phrases together while
// Latin text splits on whitespace and punctuation. Matching is case-sensitive;
// tokens are deduplicated per cue.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		tokens = append(tokens, field)
	}
	return tokens
}
