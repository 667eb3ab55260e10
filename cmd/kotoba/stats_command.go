package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus size and the largest videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				stats, err := store.Statistics(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Videos:         %d\n", stats.VideoCount)
				fmt.Fprintf(out, "Cues:           %d\n", stats.CueCount)
				fmt.Fprintf(out, "Distinct words: %d\n", stats.DistinctWordCount)

				if top <= 0 || stats.VideoCount == 0 {
					return nil
				}
				topVideos, err := store.TopVideos(cmd.Context(), top)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(topVideos))
				for _, entry := range topVideos {
					label := entry.Title
					if label == "" {
						label = entry.VideoID
					}
					rows = append(rows, []string{
						truncate(label, 48),
						entry.VideoID,
						strconv.Itoa(entry.CueCount),
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"VIDEO", "ID", "CUES"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of largest videos to list (0 to hide)")
	return cmd
}
