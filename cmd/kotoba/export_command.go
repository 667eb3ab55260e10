package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/logging"
	"kotoba/internal/search"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "export [WORD]",
		Short: "Export the corpus or search matches as CSV",
		Long: `Write subtitle cues as CSV, one row per cue, to stdout or the file given
with --output. With WORD, only cues matching the search are exported; without
it the whole corpus is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				out := io.Writer(cmd.OutOrStdout())
				if outputPath != "" {
					file, err := os.Create(outputPath)
					if err != nil {
						return fmt.Errorf("create export file: %w", err)
					}
					defer file.Close()
					out = file
				}

				var rows int
				var err error
				if len(args) == 1 {
					engine := search.NewEngine(store, cfg, logging.NewNop())
					var matches []search.Match
					matches, err = engine.Search(cmd.Context(), args[0], 0, limit)
					if err != nil {
						return err
					}
					rows = len(matches)
					err = writeMatchesCSV(out, args[0], matches)
				} else {
					rows, err = writeCorpusCSV(cmd.Context(), out, store)
				}
				if err != nil {
					return err
				}
				if outputPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", rows, outputPath)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV to this file instead of stdout")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum matches to export with WORD (0 for configured default)")
	return cmd
}

var csvHeader = []string{"video_id", "title", "start_seconds", "end_seconds", "text", "watch_url"}

func writeMatchesCSV(out io.Writer, word string, matches []search.Match) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(append([]string{"word"}, csvHeader...)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, match := range matches {
		record := []string{
			word,
			match.VideoID,
			match.Title,
			strconv.FormatFloat(match.Cue.StartSeconds, 'f', 3, 64),
			strconv.FormatFloat(match.Cue.EndSeconds, 'f', 3, 64),
			match.Cue.Text,
			match.WatchURL(),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// writeCorpusCSV dumps every cue of every video in ingestion order.
func writeCorpusCSV(ctx context.Context, out io.Writer, store *corpus.Store) (int, error) {
	writer := csv.NewWriter(out)
	if err := writer.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}

	videos, err := store.ListVideos(ctx)
	if err != nil {
		return 0, err
	}

	var rows int
	for _, video := range videos {
		cues, err := store.CuesForVideo(ctx, video.VideoID)
		if err != nil {
			return rows, err
		}
		for _, cue := range cues {
			record := []string{
				video.VideoID,
				video.Title,
				strconv.FormatFloat(cue.StartSeconds, 'f', 3, 64),
				strconv.FormatFloat(cue.EndSeconds, 'f', 3, 64),
				cue.Text,
				search.WatchURL(video.VideoID, cue.StartSeconds),
			}
			if err := writer.Write(record); err != nil {
				return rows, fmt.Errorf("write csv row: %w", err)
			}
			rows++
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}
	return rows, nil
}
