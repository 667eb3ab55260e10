package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/logging"
	"kotoba/internal/services"
	"kotoba/internal/subtitle"
)

// Match is one occurrence of a query word: the matching cue, its surrounding
// context within the same video, and the playback offset a player should seek
// to.
type Match struct {
	VideoID       string
	Title         string
	IngestedAt    time.Time
	Cue           corpus.Cue
	Context       []corpus.Cue
	OffsetSeconds float64
}

// Engine resolves query words into ranked matches against the corpus. It is
// read-only and safe to use concurrently with ingestion.
type Engine struct {
	store         *corpus.Store
	contextRadius int
	leadInSeconds float64
	maxResults    int
	logger        *slog.Logger
}

// NewEngine builds a search engine over the given store using the configured
// context radius, lead-in, and result cap.
func NewEngine(store *corpus.Store, cfg *config.Config, logger *slog.Logger) *Engine {
	engine := &Engine{
		store:         store,
		contextRadius: cfg.Search.ContextRadius,
		leadInSeconds: cfg.Search.LeadInSeconds,
		maxResults:    cfg.Search.MaxResults,
		logger:        logging.WithComponent(logger, "search"),
	}
	return engine
}

// Search returns every cue containing word, ordered by video ingestion time
// then cue start time, so results are reproducible across runs. A negative
// radius or non-positive limit selects the configured default. A word with no
// occurrences yields an empty slice, not an error; a blank word is an
// InvalidQuery.
func (e *Engine) Search(ctx context.Context, word string, radius, limit int) ([]Match, error) {
	normalized := subtitle.NormalizeQuery(word)
	if normalized == "" {
		return nil, services.Wrap(services.ErrInvalidQuery, "search", "validate query",
			"empty or whitespace-only word", nil)
	}
	if radius < 0 {
		radius = e.contextRadius
	}
	if limit <= 0 {
		limit = e.maxResults
	}

	hits, err := e.store.CuesContaining(ctx, normalized, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", normalized, err)
	}

	matches := make([]Match, 0, len(hits))
	for _, hit := range hits {
		match := Match{
			VideoID:       hit.Cue.VideoID,
			Title:         hit.Title,
			IngestedAt:    hit.IngestedAt,
			Cue:           hit.Cue,
			OffsetSeconds: e.playbackOffset(hit.Cue.StartSeconds),
		}
		if radius > 0 {
			window, err := e.store.CueWindow(ctx, hit.Cue.VideoID, hit.Cue.Seq, radius)
			if err != nil {
				return nil, fmt.Errorf("context window for %s/%d: %w", hit.Cue.VideoID, hit.Cue.Seq, err)
			}
			match.Context = window
		}
		matches = append(matches, match)
	}

	e.logger.Debug("search completed",
		logging.String("word", normalized),
		logging.Int("matches", len(matches)),
	)
	return matches, nil
}

// playbackOffset applies the configured lead-in so playback starts just
// before the word is spoken, never before the start of the video.
func (e *Engine) playbackOffset(startSeconds float64) float64 {
	offset := startSeconds - e.leadInSeconds
	if offset < 0 {
		return 0
	}
	return offset
}

// WatchURL renders the platform watch URL seeking to the match's offset.
func (m Match) WatchURL() string {
	return WatchURL(m.VideoID, m.OffsetSeconds)
}

// WatchURL renders a watch URL seeking to the given offset. Sub-second
// precision is dropped; the platform only honors whole seconds.
func WatchURL(videoID string, offsetSeconds float64) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", videoID, int(offsetSeconds))
}
