package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/analysis"
)

func newKeywordsCommand() *cobra.Command {
	keywordsCmd := &cobra.Command{
		Use:   "keywords",
		Short: "Manage search keywords of questions",
	}

	keywordsCmd.AddCommand(newKeywordsBackfillCommand())

	return keywordsCmd
}

func newKeywordsBackfillCommand() *cobra.Command {
	var delay time.Duration
	var retryAttempts uint

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Generate keywords for every question without them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !cmd.Flags().Changed("delay") {
				delay = a.cfg.Keywords.Delay
			}
			if !cmd.Flags().Changed("retry") {
				retryAttempts = a.cfg.Keywords.RetryAttempts
			}
			if delay <= 0 {
				return fmt.Errorf("--delay must be positive")
			}

			backfill := analysis.NewBackfill(
				a.questions,
				analysis.NewKeywordGenerator(a.client),
				delay,
				retryAttempts,
				cmd.OutOrStdout(),
			)
			result, err := backfill.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("backfill.Run() > %w", err)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d questions could not get keywords", result.Failed, result.Total)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between two requests to the AI model")
	cmd.Flags().UintVar(&retryAttempts, "retry", 0, "Extra attempts for a request that could not reach the AI model")

	return cmd
}
