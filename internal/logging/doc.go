// Package logging builds the slog loggers used across kotoba.
//
// Two handler formats exist: a console handler that renders compact
// "TIME LEVEL component: message key=value" lines for interactive use, and a
// JSON handler for machine consumption. Format and level come from the
// [logging] config section. Attribute helpers keep call sites terse and the
// component/batch/video field names consistent.
package logging
