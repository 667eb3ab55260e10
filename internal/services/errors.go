package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAvailable marks an expected absence, such as a video without a
	// Japanese subtitle track. Callers must not retry it or log it as an error.
	ErrNotAvailable = errors.New("not available")
	// ErrTransient marks failures worth retrying: network errors, timeouts,
	// upstream rate limiting.
	ErrTransient = errors.New("transient failure")
	// ErrFatal marks failures that retrying cannot fix, such as a malformed
	// video identifier.
	ErrFatal = errors.New("fatal failure")
	// ErrParse marks a subtitle track that could not be turned into valid cues.
	ErrParse = errors.New("parse error")
	// ErrInvariant marks a cue sequence that fails store validation.
	ErrInvariant = errors.New("invariant violation")
	// ErrInvalidQuery marks a caller programming error on the search path.
	ErrInvalidQuery = errors.New("invalid query")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether the operation that produced err is worth another
// attempt. Retry policy itself (ceiling, backoff) lives with the caller.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
