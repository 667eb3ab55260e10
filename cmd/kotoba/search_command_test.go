package main

import (
	"testing"

	"kotoba/internal/corpus"
	"kotoba/internal/testsupport"
)

func TestSearchCommandPrintsMatches(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCorpus(t, func(store *corpus.Store) {
		testsupport.SeedVideo(t, store, "dQw4w9WgXcQ", "入門講座",
			"前の行", "毎日勉強しています", "次の行")
	})

	out, _, err := runCLI(t, []string{"search", "勉強", "--plain"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "毎日勉強しています")
	requireContains(t, out, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=0s")
	requireContains(t, out, "1 matches")
}

func TestSearchCommandNoMatches(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCorpus(t, func(store *corpus.Store) {
		testsupport.SeedVideo(t, store, "dQw4w9WgXcQ", "入門講座", "こんにちは")
	})

	out, _, err := runCLI(t, []string{"search", "存在しない語"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "No matches")
}

func TestSearchCommandRejectsBlankWord(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"search", "   "}, env.configPath); err == nil {
		t.Fatal("expected error for blank word")
	}
}

func TestStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCorpus(t, func(store *corpus.Store) {
		testsupport.SeedVideo(t, store, "dQw4w9WgXcQ", "入門講座", "一", "二", "三")
	})

	out, _, err := runCLI(t, []string{"stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Videos:         1")
	requireContains(t, out, "Cues:           3")
}

func TestExportCommandWritesCSV(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCorpus(t, func(store *corpus.Store) {
		testsupport.SeedVideo(t, store, "dQw4w9WgXcQ", "入門講座", "勉強します")
	})

	out, _, err := runCLI(t, []string{"export", "勉強"}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "word,video_id,title,start_seconds,end_seconds,text,watch_url")
	requireContains(t, out, "勉強します")
}

func TestExportCommandFullCorpus(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedCorpus(t, func(store *corpus.Store) {
		testsupport.SeedVideo(t, store, "dQw4w9WgXcQ", "入門講座", "一行目", "二行目")
	})

	out, _, err := runCLI(t, []string{"export"}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "video_id,title,start_seconds,end_seconds,text,watch_url")
	requireContains(t, out, "一行目")
	requireContains(t, out, "二行目")
}

func TestIngestCommandRequiresInput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"ingest"}, env.configPath); err == nil {
		t.Fatal("expected error when no videos are given")
	}
}
