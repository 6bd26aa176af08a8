// Package export writes the records and summary of a study day to a file.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studylog/internal/assets"
	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/pdf"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/summary"
)

// ErrNoRecords is returned when nothing was recorded on the exported date.
var ErrNoRecords = errors.New("no records on this date")

type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts md, pdf and yaml, and the aliases markdown and yml.
func ParseFormat(value string) (Format, error) {
	switch value {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", value)
}

// SummarySource returns the summary of a date, or nil when there is nothing to summarize.
type SummarySource interface {
	GetOrGenerate(ctx context.Context, date time.Time) (*summary.DailySummary, error)
}

type Exporter struct {
	questions question.Repository
	mistakes  careless.Repository
	summaries SummarySource
	template  *template.Template
	directory string
}

// NewExporter creates an Exporter writing into directory.
// templatePath overrides the embedded markdown template when it is set.
func NewExporter(
	questions question.Repository,
	mistakes careless.Repository,
	summaries SummarySource,
	templatePath string,
	directory string,
) (*Exporter, error) {
	tmpl, err := assets.ParseReportTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseReportTemplate() > %w", err)
	}
	return &Exporter{
		questions: questions,
		mistakes:  mistakes,
		summaries: summaries,
		template:  tmpl,
		directory: directory,
	}, nil
}

type yamlReport struct {
	Date      string                      `yaml:"date"`
	Summary   *summary.DailySummary       `yaml:"summary,omitempty"`
	Questions []question.AnalyzedQuestion `yaml:"questions"`
	Mistakes  []careless.Mistake          `yaml:"careless_mistakes"`
}

// Export writes the report of date and returns the path of the written file.
func (e *Exporter) Export(ctx context.Context, date time.Time, format Format) (string, error) {
	report, err := e.collect(ctx, date)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.directory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", e.directory, err)
	}
	base := filepath.Join(e.directory, calendar.Format(date))

	var path string
	switch format {
	case FormatMarkdown:
		path = base + ".md"
		content, err := e.markdown(report)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, content, 0644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
	case FormatPDF:
		path = base + ".pdf"
		content, err := e.markdown(report)
		if err != nil {
			return "", err
		}
		if err := pdf.Render(content, path); err != nil {
			return "", fmt.Errorf("pdf.Render() > %w", err)
		}
	case FormatYAML:
		path = base + ".yml"
		if err := writeYAML(path, yamlReport{
			Date:      calendar.Format(date),
			Summary:   report.Summary,
			Questions: report.Questions,
			Mistakes:  report.Mistakes,
		}); err != nil {
			return "", fmt.Errorf("writeYAML(%s) > %w", path, err)
		}
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}

	slog.Default().Info("exported daily report", "date", calendar.Format(date), "path", path)
	return path, nil
}

func (e *Exporter) collect(ctx context.Context, date time.Time) (assets.DailyReport, error) {
	questions, err := e.questions.FindByDate(ctx, date)
	if err != nil {
		return assets.DailyReport{}, fmt.Errorf("questions.FindByDate() > %w", err)
	}
	mistakes, err := e.mistakes.FindByDate(ctx, date)
	if err != nil {
		return assets.DailyReport{}, fmt.Errorf("mistakes.FindByDate() > %w", err)
	}
	if len(questions) == 0 && len(mistakes) == 0 {
		return assets.DailyReport{}, ErrNoRecords
	}

	var s *summary.DailySummary
	if len(questions) > 0 {
		s, err = e.summaries.GetOrGenerate(ctx, date)
		if err != nil {
			return assets.DailyReport{}, fmt.Errorf("summaries.GetOrGenerate() > %w", err)
		}
	}
	return assets.DailyReport{
		Date:      calendar.Day(date),
		Summary:   s,
		Questions: questions,
		Mistakes:  mistakes,
	}, nil
}

func (e *Exporter) markdown(report assets.DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := assets.WriteDailyReport(&buf, e.template, report); err != nil {
		return nil, fmt.Errorf("assets.WriteDailyReport() > %w", err)
	}
	return buf.Bytes(), nil
}

func writeYAML(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
