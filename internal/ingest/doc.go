// Package ingest coordinates subtitle ingestion batches.
//
// A batch walks each requested video identifier through duplicate detection,
// fetching with bounded retries, parsing, and atomic persistence. Work is
// spread over a fixed-size worker pool; individual video failures are
// recorded in the batch report rather than aborting the run.
package ingest
