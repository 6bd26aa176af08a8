package assets

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/summary"
)

// DailyReport is the data of the daily report template.
type DailyReport struct {
	Date time.Time
	// Summary is nil when the date has nothing to summarize.
	Summary   *summary.DailySummary
	Questions []question.AnalyzedQuestion
	Mistakes  []careless.Mistake
}

// WriteDailyReport renders report with tmpl.
func WriteDailyReport(w io.Writer, tmpl *template.Template, report DailyReport) error {
	if err := tmpl.Execute(w, report); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
