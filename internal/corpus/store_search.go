package corpus

import (
	"context"
	"fmt"
)

// CuesContaining returns cues whose text contains word as a substring, joined
// with their video's ordering metadata. Results are ordered by video ingestion
// time (then row id for same-instant ties), then cue start time, which keeps
// search output deterministic across runs. Matching uses instr, so it is
// byte-exact and case-sensitive.
func (s *Store) CuesContaining(ctx context.Context, word string, limit int) ([]CueHit, error) {
	query := `SELECT c.id, c.video_id, c.seq, c.start_seconds, c.end_seconds, c.text,
                    COALESCE(v.title, ''), v.ingested_at
              FROM cues c
              JOIN videos v ON v.video_id = c.video_id
              WHERE instr(c.text, ?) > 0
              ORDER BY v.ingested_at, v.id, c.start_seconds`
	args := []any{word}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query matching cues: %w", err)
	}
	defer rows.Close()

	var hits []CueHit
	for rows.Next() {
		var (
			hit         CueHit
			title       string
			ingestedRaw string
		)
		if err := rows.Scan(
			&hit.Cue.ID,
			&hit.Cue.VideoID,
			&hit.Cue.Seq,
			&hit.Cue.StartSeconds,
			&hit.Cue.EndSeconds,
			&hit.Cue.Text,
			&title,
			&ingestedRaw,
		); err != nil {
			return nil, err
		}
		hit.Title = title
		if ingested, err := parseTimeString(ingestedRaw); err == nil {
			hit.IngestedAt = ingested
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

// WordsForVideo returns the distinct indexed words for one video, sorted.
// Used by tests and diagnostics to verify the derived index matches cue text.
func (s *Store) WordsForVideo(ctx context.Context, videoID string) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT DISTINCT word FROM word_occurrences WHERE video_id = ? ORDER BY word`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// OrphanOccurrenceCount returns the number of occurrence rows pointing at
// cues that no longer exist. The replace transaction plus cascading deletes
// should keep this at zero.
func (s *Store) OrphanOccurrenceCount(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM word_occurrences wo
         WHERE NOT EXISTS (SELECT 1 FROM cues c WHERE c.id = wo.cue_id)`,
	)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count orphan occurrences: %w", err)
	}
	return count, nil
}
