package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/summary"
)

func newSummaryCommand() *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show or regenerate daily summaries",
	}

	summaryCmd.AddCommand(newSummaryShowCommand())
	summaryCmd.AddCommand(newSummaryRegenerateCommand())

	return summaryCmd
}

func newSummaryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the summary of a date, generating it when needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			date, err := calendar.Parse(args[0], a.cfg.Location())
			if err != nil {
				return err
			}
			s, err := a.engine.GetOrGenerate(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("GetOrGenerate() > %w", err)
			}
			if s == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No questions were recorded on %s.\n", calendar.Format(date))
				return nil
			}
			printSummary(cmd.OutOrStdout(), date, s)
			return nil
		},
	}
}

func newSummaryRegenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <date>",
		Short: "Generate the summary of a date again and replace the stored one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			date, err := calendar.Parse(args[0], a.cfg.Location())
			if err != nil {
				return err
			}
			s, err := a.engine.ForceRegenerate(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("ForceRegenerate() > %w", err)
			}
			printSummary(cmd.OutOrStdout(), date, s)
			return nil
		},
	}
}

func printSummary(w io.Writer, date time.Time, s *summary.DailySummary) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	_, _ = bold.Fprintf(w, "Summary of %s (%d questions)\n", calendar.Format(date), s.QuestionCount)
	if s.Failed {
		_, _ = red.Fprintln(w, s.GeneralSummary)
		return
	}
	_, _ = fmt.Fprintln(w, s.GeneralSummary)

	if len(s.KnowledgePointsSummary) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "Knowledge points")
		for _, point := range s.KnowledgePointsSummary {
			_, _ = fmt.Fprintf(w, "  - %s\n", point)
		}
	}

	if len(s.SubjectDistribution) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "Subjects")
		subjects := make([]string, 0, len(s.SubjectDistribution))
		for subject := range s.SubjectDistribution {
			subjects = append(subjects, subject)
		}
		slices.Sort(subjects)
		for _, subject := range subjects {
			_, _ = cyan.Fprintf(w, "  %s", subject)
			_, _ = fmt.Fprintf(w, ": %d\n", s.SubjectDistribution[subject])
		}
	}
}
