package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PutVideo records a video on first successful ingest. Re-ingesting an
// existing identifier only refreshes last_checked_at; title, duration, and
// ingestion time never change after creation, keeping result ordering stable.
func (s *Store) PutVideo(ctx context.Context, videoID, title string, durationSeconds float64) (*Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, errors.New("video id is empty")
	}
	now := formatTime(time.Now())
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO videos (video_id, title, duration_seconds, ingested_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(video_id) DO UPDATE SET last_checked_at = excluded.ingested_at`,
		videoID,
		nullableString(title),
		durationSeconds,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("put video: %w", err)
	}
	return s.GetVideo(ctx, videoID)
}

// GetVideo fetches a video by identifier, or nil when absent.
func (s *Store) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, video_id, title, duration_seconds, ingested_at, last_checked_at
         FROM videos WHERE video_id = ?`,
		videoID,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// KnownVideoIDs returns which of the given identifiers already exist in the
// corpus. The orchestrator consults this before any network work.
func (s *Store) KnownVideoIDs(ctx context.Context, videoIDs ...string) (map[string]struct{}, error) {
	known := make(map[string]struct{}, len(videoIDs))
	if len(videoIDs) == 0 {
		return known, nil
	}

	placeholders := makePlaceholders(len(videoIDs))
	args := make([]any, len(videoIDs))
	for i, id := range videoIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, `SELECT video_id FROM videos WHERE video_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query known video ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		known[id] = struct{}{}
	}
	return known, rows.Err()
}

// ListVideos returns all videos ordered by ingestion time.
func (s *Store) ListVideos(ctx context.Context) ([]*Video, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, video_id, title, duration_seconds, ingested_at, last_checked_at
         FROM videos ORDER BY ingested_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		id          int64
		videoID     string
		title       sql.NullString
		duration    sql.NullFloat64
		ingestedRaw string
		checkedRaw  sql.NullString
	)
	if err := scanner.Scan(&id, &videoID, &title, &duration, &ingestedRaw, &checkedRaw); err != nil {
		return nil, err
	}

	video := &Video{
		ID:              id,
		VideoID:         videoID,
		Title:           title.String,
		DurationSeconds: duration.Float64,
	}
	if ingested, err := parseTimeString(ingestedRaw); err == nil {
		video.IngestedAt = ingested
	}
	if checkedRaw.Valid {
		if checked, err := parseTimeString(checkedRaw.String); err == nil {
			video.LastCheckedAt = &checked
		}
	}
	return video, nil
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
