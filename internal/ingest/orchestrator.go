package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/logging"
	"kotoba/internal/services"
	"kotoba/internal/subtitle"
)

// Fetcher retrieves one raw subtitle track per video identifier.
type Fetcher interface {
	FetchTrack(ctx context.Context, videoID string) (subtitle.RawTrack, error)
}

// Request describes one ingestion batch. VideoIDs are processed in order;
// duplicates within the slice are collapsed to the first occurrence. Refresh
// forces re-fetching identifiers already present in the corpus.
type Request struct {
	VideoIDs []string
	Refresh  bool
}

// Report summarizes a finished batch. Every requested identifier lands in
// exactly one bucket.
type Report struct {
	BatchID            string
	Succeeded          []string
	SkippedDuplicate   []string
	SkippedUnavailable []string
	SkippedCancelled   []string
	Failed             map[string]string
}

// Total returns the number of identifiers accounted for by the report.
func (r *Report) Total() int {
	return len(r.Succeeded) + len(r.SkippedDuplicate) + len(r.SkippedUnavailable) +
		len(r.SkippedCancelled) + len(r.Failed)
}

type outcomeKind int

const (
	outcomeSucceeded outcomeKind = iota
	outcomeUnavailable
	outcomeCancelled
	outcomeFailed
)

type outcome struct {
	videoID string
	kind    outcomeKind
	message string
}

// Orchestrator runs ingestion batches over a bounded worker pool. Fetching is
// parallel; persistence goes through the store's own per-video serialization.
type Orchestrator struct {
	store        *corpus.Store
	fetcher      Fetcher
	workers      int
	maxAttempts  int
	retryBackoff time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger
}

// NewOrchestrator wires an orchestrator from configuration.
func NewOrchestrator(store *corpus.Store, fetcher Fetcher, cfg *config.Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:        store,
		fetcher:      fetcher,
		workers:      cfg.Ingest.Workers,
		maxAttempts:  cfg.Ingest.MaxAttempts,
		retryBackoff: cfg.RetryBackoff(),
		fetchTimeout: cfg.FetchTimeout(),
		logger:       logging.WithComponent(logger, "ingest"),
	}
}

// Run executes one batch and reports per-identifier outcomes. Cancelling ctx
// stops dispatching new work; identifiers never attempted are reported as
// cancelled, and in-flight database writes complete so no video is left with
// partial data. Run itself returns an error only for batch-level faults such
// as the duplicate lookup failing, never for individual video failures.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		BatchID: uuid.New().String(),
		Failed:  make(map[string]string),
	}
	ids := dedupe(req.VideoIDs)
	o.logger.Info("batch started",
		logging.String(logging.FieldBatch, report.BatchID),
		logging.Int("requested", len(ids)),
		logging.Bool("refresh", req.Refresh),
	)

	if !req.Refresh && len(ids) > 0 {
		known, err := o.store.KnownVideoIDs(ctx, ids...)
		if err != nil {
			return nil, services.Wrap(services.ErrFatal, "ingest", "check duplicates", "", err)
		}
		fresh := ids[:0]
		for _, id := range ids {
			if _, ok := known[id]; ok {
				report.SkippedDuplicate = append(report.SkippedDuplicate, id)
				o.logger.Info("skipped duplicate",
					logging.String(logging.FieldBatch, report.BatchID),
					logging.String(logging.FieldVideo, id),
				)
			} else {
				fresh = append(fresh, id)
			}
		}
		ids = fresh
	}

	outcomes := o.runPool(ctx, report.BatchID, ids)
	for _, id := range ids {
		out := outcomes[id]
		switch out.kind {
		case outcomeSucceeded:
			report.Succeeded = append(report.Succeeded, id)
		case outcomeUnavailable:
			report.SkippedUnavailable = append(report.SkippedUnavailable, id)
		case outcomeCancelled:
			report.SkippedCancelled = append(report.SkippedCancelled, id)
		case outcomeFailed:
			report.Failed[id] = out.message
		}
	}

	o.logger.Info("batch finished",
		logging.String(logging.FieldBatch, report.BatchID),
		logging.Int("succeeded", len(report.Succeeded)),
		logging.Int("duplicate", len(report.SkippedDuplicate)),
		logging.Int("unavailable", len(report.SkippedUnavailable)),
		logging.Int("cancelled", len(report.SkippedCancelled)),
		logging.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// runPool fans ids out over the worker pool and gathers one outcome per id.
func (o *Orchestrator) runPool(ctx context.Context, batchID string, ids []string) map[string]outcome {
	workers := o.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan string)
	results := make(chan outcome, len(ids))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				results <- o.processOne(ctx, batchID, id)
			}
		}()
	}

dispatch:
	for _, id := range ids {
		select {
		case jobs <- id:
		case <-ctx.Done():
			results <- outcome{videoID: id, kind: outcomeCancelled}
			// Drain the remainder as cancelled without touching the network.
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	outcomes := make(map[string]outcome, len(ids))
	for out := range results {
		outcomes[out.videoID] = out
	}
	for _, id := range ids {
		if _, ok := outcomes[id]; !ok {
			outcomes[id] = outcome{videoID: id, kind: outcomeCancelled}
		}
	}
	return outcomes
}

// processOne drives a single identifier through fetch, parse, and persist.
func (o *Orchestrator) processOne(ctx context.Context, batchID, videoID string) outcome {
	track, out, ok := o.fetchWithRetry(ctx, batchID, videoID)
	if !ok {
		return out
	}

	cues, err := subtitle.Parse(track)
	if err != nil {
		o.logger.Warn("parse failed",
			logging.String(logging.FieldBatch, batchID),
			logging.String(logging.FieldVideo, videoID),
			logging.Error(err),
		)
		return outcome{videoID: videoID, kind: outcomeFailed, message: err.Error()}
	}
	if len(cues) == 0 {
		o.logger.Info("track empty after normalization",
			logging.String(logging.FieldBatch, batchID),
			logging.String(logging.FieldVideo, videoID),
		)
		return outcome{videoID: videoID, kind: outcomeUnavailable}
	}

	// The write finishes even when the batch is being cancelled, and the
	// video row commits together with its cues so a failed ingest leaves no
	// row for the duplicate check to find.
	writeCtx := context.WithoutCancel(ctx)
	if _, err := o.store.IngestVideo(writeCtx, videoID, track.Title, track.DurationSeconds, cues); err != nil {
		return outcome{videoID: videoID, kind: outcomeFailed, message: err.Error()}
	}

	o.logger.Info("video ingested",
		logging.String(logging.FieldBatch, batchID),
		logging.String(logging.FieldVideo, videoID),
		logging.Int("cues", len(cues)),
	)
	return outcome{videoID: videoID, kind: outcomeSucceeded}
}

// fetchWithRetry attempts the network fetch up to maxAttempts times, doubling
// the backoff between attempts. Only transient failures are retried.
func (o *Orchestrator) fetchWithRetry(ctx context.Context, batchID, videoID string) (subtitle.RawTrack, outcome, bool) {
	var lastErr error
	delay := o.retryBackoff
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeCancelled}, false
		}

		fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
		track, err := o.fetcher.FetchTrack(fetchCtx, videoID)
		cancel()
		if err == nil {
			return track, outcome{}, true
		}
		lastErr = err

		switch {
		case errors.Is(err, context.Canceled) || ctx.Err() != nil:
			return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeCancelled}, false
		case errors.Is(err, services.ErrNotAvailable):
			o.logger.Info("no subtitle track",
				logging.String(logging.FieldBatch, batchID),
				logging.String(logging.FieldVideo, videoID),
			)
			return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeUnavailable}, false
		case services.Retryable(err) && attempt < o.maxAttempts:
			o.logger.Warn("fetch failed, retrying",
				logging.String(logging.FieldBatch, batchID),
				logging.String(logging.FieldVideo, videoID),
				logging.Int("attempt", attempt),
				logging.Duration("backoff", delay),
				logging.Error(err),
			)
			if !sleepContext(ctx, delay) {
				return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeCancelled}, false
			}
			delay *= 2
		default:
			o.logger.Warn("fetch failed",
				logging.String(logging.FieldBatch, batchID),
				logging.String(logging.FieldVideo, videoID),
				logging.Int("attempt", attempt),
				logging.Error(err),
			)
			return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeFailed, message: err.Error()}, false
		}
	}
	return subtitle.RawTrack{}, outcome{videoID: videoID, kind: outcomeFailed, message: lastErr.Error()}, false
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// dedupe collapses repeated identifiers to their first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SortedFailures returns failed identifiers in stable order for display.
func (r *Report) SortedFailures() []string {
	ids := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
