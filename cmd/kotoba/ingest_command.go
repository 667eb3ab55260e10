package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"kotoba/internal/config"
	"kotoba/internal/corpus"
	"kotoba/internal/ingest"
	"kotoba/internal/services/youtube"
	"kotoba/internal/videoid"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var filePath string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "ingest [VIDEO_ID_OR_URL...]",
		Short: "Fetch subtitle tracks and add them to the corpus",
		Long: `Fetch subtitle tracks for the given videos and add them to the corpus.
Videos may be given as bare 11-character identifiers or full watch URLs,
as arguments or one per line in a file passed with --file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := append([]string(nil), args...)
			if filePath != "" {
				fromFile, err := readVideoRefs(filePath)
				if err != nil {
					return err
				}
				refs = append(refs, fromFile...)
			}
			if len(refs) == 0 {
				return errors.New("no videos given; pass identifiers or --file")
			}

			ids, err := videoid.ParseAll(refs)
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				lock := flock.New(cfg.IngestLockPath())
				locked, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire ingest lock: %w", err)
				}
				if !locked {
					return fmt.Errorf("another ingest is already running (lock %s)", cfg.IngestLockPath())
				}
				defer lock.Unlock()

				logger, err := ctx.newLogger()
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				fetcher := youtube.NewClient(cfg.Ingest.Language)
				orchestrator := ingest.NewOrchestrator(store, fetcher, cfg, logger)
				report, err := orchestrator.Run(runCtx, ingest.Request{VideoIDs: ids, Refresh: refresh})
				if err != nil {
					return err
				}

				printReport(cmd, report)
				if len(report.Failed) > 0 {
					return fmt.Errorf("%d of %d videos failed", len(report.Failed), report.Total())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File with one video identifier or URL per line")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Re-fetch videos already in the corpus")
	return cmd
}

func printReport(cmd *cobra.Command, report *ingest.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batch %s: %d succeeded, %d duplicate, %d unavailable, %d cancelled, %d failed\n",
		report.BatchID,
		len(report.Succeeded),
		len(report.SkippedDuplicate),
		len(report.SkippedUnavailable),
		len(report.SkippedCancelled),
		len(report.Failed),
	)
	for _, id := range report.SortedFailures() {
		fmt.Fprintf(out, "  failed %s: %s\n", id, report.Failed[id])
	}
}
