package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kotoba/internal/services"
	"kotoba/internal/subtitle"
)

// IngestVideo persists a video and its full cue set in one transaction. On
// first ingest the video row is created; on re-ingest only last_checked_at
// moves, as with PutVideo. Row and cues land together or not at all, so a
// failed ingest never leaves a cue-less video behind to satisfy later
// duplicate checks.
func (s *Store) IngestVideo(ctx context.Context, videoID, title string, durationSeconds float64, cues []subtitle.Cue) (*Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, errors.New("video id is empty")
	}
	if err := validateCueSequence(cues); err != nil {
		return nil, err
	}

	lock := s.videoLock(videoID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ingest tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO videos (video_id, title, duration_seconds, ingested_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET last_checked_at = excluded.ingested_at`,
		videoID,
		nullableString(title),
		durationSeconds,
		formatTime(time.Now()),
	); err != nil {
		return nil, fmt.Errorf("put video: %w", err)
	}

	if err := replaceCueSet(ctx, tx, videoID, cues); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit ingest: %w", err)
	}
	return s.GetVideo(ctx, videoID)
}

// ReplaceCues swaps an existing video's full cue set and rebuilds its
// word-occurrence index inside one transaction. Either the complete new state
// lands or the previous state is retained unchanged. Concurrent replaces for
// the same identifier are serialized; different identifiers proceed in
// parallel.
func (s *Store) ReplaceCues(ctx context.Context, videoID string, cues []subtitle.Cue) error {
	if err := validateCueSequence(cues); err != nil {
		return err
	}

	lock := s.videoLock(videoID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists int
	row := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM videos WHERE video_id = ?`, videoID)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("check video exists: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("replace cues: %w: %q", ErrNoVideo, videoID)
	}

	if err := replaceCueSet(ctx, tx, videoID, cues); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// replaceCueSet deletes a video's cues and inserts the new set with its
// rebuilt occurrence index, all on the caller's transaction.
func replaceCueSet(ctx context.Context, tx *sql.Tx, videoID string, cues []subtitle.Cue) error {
	// Occurrence rows cascade with their cues.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cues WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("delete prior cues: %w", err)
	}

	for _, cue := range cues {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO cues (video_id, seq, start_seconds, end_seconds, text)
             VALUES (?, ?, ?, ?, ?)`,
			videoID,
			cue.Seq,
			cue.StartSeconds,
			cue.EndSeconds,
			cue.Text,
		)
		if err != nil {
			return fmt.Errorf("insert cue %d: %w", cue.Seq, err)
		}
		cueID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("cue insert id: %w", err)
		}
		for _, word := range Tokenize(cue.Text) {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO word_occurrences (word, cue_id, video_id) VALUES (?, ?, ?)`,
				word,
				cueID,
				videoID,
			); err != nil {
				return fmt.Errorf("insert occurrence %q: %w", word, err)
			}
		}
	}
	return nil
}

// validateCueSequence enforces the store invariant: contiguous 0-based
// sequence indexes, positive durations, strictly increasing and
// non-overlapping start times. Gaps between cues are permitted.
func validateCueSequence(cues []subtitle.Cue) error {
	for i, cue := range cues {
		if cue.Seq != i {
			return services.Wrap(services.ErrInvariant, "store", "validate cues",
				fmt.Sprintf("sequence index %d at position %d", cue.Seq, i), nil)
		}
		if cue.EndSeconds <= cue.StartSeconds {
			return services.Wrap(services.ErrInvariant, "store", "validate cues",
				fmt.Sprintf("cue %d has non-positive duration", i), nil)
		}
		if cue.StartSeconds < 0 {
			return services.Wrap(services.ErrInvariant, "store", "validate cues",
				fmt.Sprintf("cue %d starts before zero", i), nil)
		}
		if i > 0 && cue.StartSeconds < cues[i-1].EndSeconds {
			return services.Wrap(services.ErrInvariant, "store", "validate cues",
				fmt.Sprintf("cue %d overlaps cue %d", i, i-1), nil)
		}
	}
	return nil
}

// CuesForVideo returns a video's cues in sequence order.
func (s *Store) CuesForVideo(ctx context.Context, videoID string) ([]Cue, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, video_id, seq, start_seconds, end_seconds, text
         FROM cues WHERE video_id = ? ORDER BY seq`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cues: %w", err)
	}
	defer rows.Close()
	return collectCues(rows)
}

// CueWindow returns the cues within radius positions of the given sequence
// index, in sequence order, never crossing the video boundary.
func (s *Store) CueWindow(ctx context.Context, videoID string, seq, radius int) ([]Cue, error) {
	if radius < 0 {
		radius = 0
	}
	low := seq - radius
	if low < 0 {
		low = 0
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, video_id, seq, start_seconds, end_seconds, text
         FROM cues WHERE video_id = ? AND seq BETWEEN ? AND ? ORDER BY seq`,
		videoID,
		low,
		seq+radius,
	)
	if err != nil {
		return nil, fmt.Errorf("query cue window: %w", err)
	}
	defer rows.Close()
	return collectCues(rows)
}

func collectCues(rows *sql.Rows) ([]Cue, error) {
	var cues []Cue
	for rows.Next() {
		var cue Cue
		if err := rows.Scan(&cue.ID, &cue.VideoID, &cue.Seq, &cue.StartSeconds, &cue.EndSeconds, &cue.Text); err != nil {
			return nil, err
		}
		cues = append(cues, cue)
	}
	return cues, rows.Err()
}

// ErrNoVideo reports a replace against an unknown identifier in errors.Is form.
var ErrNoVideo = errors.New("video not found")
