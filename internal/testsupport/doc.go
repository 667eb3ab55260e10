// Package testsupport provides shared helpers for package tests: temp-dir
// configs, store setup with cleanup, and cue fixtures.
package testsupport
