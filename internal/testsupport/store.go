package testsupport

import (
	"context"
	"testing"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/subtitle"
)

// MustOpenStore opens a corpus.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *corpus.Store {
	t.Helper()

	store, err := corpus.Open(cfg)
	if err != nil {
		t.Fatalf("corpus.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Cues builds a contiguous cue sequence from texts, one cue per second.
func Cues(texts ...string) []subtitle.Cue {
	cues := make([]subtitle.Cue, 0, len(texts))
	for i, text := range texts {
		cues = append(cues, subtitle.Cue{
			Seq:          i,
			StartSeconds: float64(i),
			EndSeconds:   float64(i) + 0.9,
			Text:         text,
		})
	}
	return cues
}

// SeedVideo persists a video with the given cue texts.
func SeedVideo(t testing.TB, store *corpus.Store, videoID, title string, texts ...string) {
	t.Helper()

	ctx := context.Background()
	if _, err := store.PutVideo(ctx, videoID, title, 0); err != nil {
		t.Fatalf("PutVideo %s: %v", videoID, err)
	}
	if err := store.ReplaceCues(ctx, videoID, Cues(texts...)); err != nil {
		t.Fatalf("ReplaceCues %s: %v", videoID, err)
	}
}
