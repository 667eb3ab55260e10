// Package services defines the failure taxonomy shared by the fetcher, the
// parser, the corpus store, and the search engine.
//
// Every error crossing a component boundary is tagged with one of the sentinel
// markers in errors.go via Wrap so the ingestion orchestrator and the CLI can
// classify failures with errors.Is instead of string matching. Retry policy is
// deliberately not implemented here; only the orchestrator retries.
package services
