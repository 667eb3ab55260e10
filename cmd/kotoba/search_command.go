package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/logging"
	"kotoba/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var contextRadius int
	var limit int
	var plain bool

	cmd := &cobra.Command{
		Use:   "search WORD",
		Short: "Find a word across ingested subtitles",
		Long: `Find every subtitle cue containing WORD and print it with its video,
timestamp, and a watch URL that seeks just before the line is spoken.
Matching is literal and case-sensitive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				engine := search.NewEngine(store, cfg, logging.NewNop())
				matches, err := engine.Search(cmd.Context(), args[0], contextRadius, limit)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No matches for %q\n", args[0])
					return nil
				}
				if plain || !stdoutIsTerminal() {
					printMatchesPlain(cmd, matches)
				} else {
					printMatchesTable(cmd, matches)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&contextRadius, "context", -1, "Context cues before and after each match (-1 for configured default)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum matches to show (0 for configured default)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain line output instead of a table")
	return cmd
}

func printMatchesTable(cmd *cobra.Command, matches []search.Match) {
	headers := []string{"TIME", "VIDEO", "LINE", "URL"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}
	rows := make([][]string, 0, len(matches))
	for _, match := range matches {
		rows = append(rows, []string{
			formatTimestamp(match.Cue.StartSeconds),
			truncate(videoLabel(match), 32),
			truncate(match.Cue.Text, 48),
			match.WatchURL(),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	fmt.Fprintf(cmd.OutOrStdout(), "%d matches\n", len(matches))
}

func printMatchesPlain(cmd *cobra.Command, matches []search.Match) {
	out := cmd.OutOrStdout()
	for _, match := range matches {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			formatTimestamp(match.Cue.StartSeconds),
			videoLabel(match),
			match.Cue.Text,
			match.WatchURL(),
		)
		for _, cue := range match.Context {
			if cue.Seq == match.Cue.Seq {
				continue
			}
			fmt.Fprintf(out, "\t%s\t%s\n", formatTimestamp(cue.StartSeconds), cue.Text)
		}
	}
	fmt.Fprintf(out, "%d matches\n", len(matches))
}

func videoLabel(match search.Match) string {
	if match.Title != "" {
		return match.Title
	}
	return match.VideoID
}
