package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/export"
	"github.com/at-ishikawa/studylog/internal/pdf"
)

func newExportCommand() *cobra.Command {
	var format string
	var outputDirectory string

	cmd := &cobra.Command{
		Use:   "export <date>",
		Short: "Export the records and summary of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			date, err := calendar.Parse(args[0], a.cfg.Location())
			if err != nil {
				return err
			}
			if outputDirectory == "" {
				outputDirectory = a.cfg.Export.Directory
			}
			exporter, err := export.NewExporter(a.questions, a.mistakes, a.engine, a.cfg.Export.Template, outputDirectory)
			if err != nil {
				return fmt.Errorf("export.NewExporter() > %w", err)
			}

			path, err := exporter.Export(cmd.Context(), date, f)
			if errors.Is(err, export.ErrNoRecords) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing was recorded on %s.\n", calendar.Format(date))
				return nil
			}
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatMarkdown), "Output format: md, pdf or yaml")
	cmd.Flags().StringVar(&outputDirectory, "output", "", "Output directory, export.directory of the config by default")

	return cmd
}

// newPDFCommand renders an exported markdown report, possibly edited by hand, as PDF.
func newPDFCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf <markdown file>",
		Short: "Convert a markdown report to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := pdf.ConvertMarkdownToPDF(args[0])
			if err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Converted to %s\n", path)
			return nil
		},
	}
}
