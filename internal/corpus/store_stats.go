package corpus

import (
	"context"
	"fmt"
)

// Statistics aggregates corpus counts: videos, cues, and distinct indexed words.
func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	var stats Statistics
	row := s.db.QueryRowContext(
		ctx,
		`SELECT
            (SELECT COUNT(1) FROM videos),
            (SELECT COUNT(1) FROM cues),
            (SELECT COUNT(DISTINCT word) FROM word_occurrences)`,
	)
	if err := row.Scan(&stats.VideoCount, &stats.CueCount, &stats.DistinctWordCount); err != nil {
		return Statistics{}, fmt.Errorf("corpus statistics: %w", err)
	}
	return stats, nil
}

// TopVideos returns the videos with the most cues, largest first.
func (s *Store) TopVideos(ctx context.Context, limit int) ([]VideoStats, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT v.video_id, COALESCE(v.title, ''), COUNT(c.id) AS cue_count
         FROM videos v
         LEFT JOIN cues c ON c.video_id = v.video_id
         GROUP BY v.video_id
         ORDER BY cue_count DESC, v.video_id
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top videos: %w", err)
	}
	defer rows.Close()

	var stats []VideoStats
	for rows.Next() {
		var entry VideoStats
		if err := rows.Scan(&entry.VideoID, &entry.Title, &entry.CueCount); err != nil {
			return nil, err
		}
		stats = append(stats, entry)
	}
	return stats, rows.Err()
}
