// Package videoid extracts platform video identifiers from user input.
//
// The core engine treats identifiers as opaque strings; this package exists at
// the edge so the CLI can accept full watch URLs as well as bare identifiers.
package videoid

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches the platform's 11-character video identifiers.
var idPattern = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`/embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`/shorts/([0-9A-Za-z_-]{11})`),
}

// Valid reports whether value is a well-formed bare video identifier.
func Valid(value string) bool {
	return idPattern.MatchString(value)
}

// Parse extracts a video identifier from a bare identifier or a watch URL.
func Parse(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("empty video reference")
	}
	if Valid(trimmed) {
		return trimmed, nil
	}
	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video id from %q", input)
}

// ParseAll extracts identifiers from a list of references, preserving order and
// dropping duplicates.
func ParseAll(inputs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		id, err := Parse(input)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
