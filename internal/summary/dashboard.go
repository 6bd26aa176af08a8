package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/studylog/internal/calendar"
)

// weekDays is the number of days shown in the weekly chart.
const weekDays = 7

// Dashboard is the overview shown on the home page.
type Dashboard struct {
	// SummaryDate is yesterday, the date Summary is about.
	SummaryDate time.Time
	// Summary is nil when nothing was recorded yesterday.
	Summary    *DailySummary
	Weekly     []DayCount
	Subjects   []string
	Dates      []time.Time
	LatestDate *time.Time
}

// DayCount is one bar of the weekly chart.
type DayCount struct {
	Date  time.Time
	Count int
}

// Dashboard assembles yesterday's summary, the questions per day of the last week and the review timeline.
func (e *Engine) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	yesterday := calendar.Day(now).AddDate(0, 0, -1)
	s, err := e.GetOrGenerate(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf("GetOrGenerate() > %w", err)
	}

	days := calendar.LastDays(now, weekDays)
	counts, err := e.questions.WeeklyCounts(ctx, days[0])
	if err != nil {
		return nil, fmt.Errorf("questions.WeeklyCounts() > %w", err)
	}
	countByDate := make(map[string]int, len(counts))
	for _, c := range counts {
		countByDate[calendar.Format(c.Date)] = c.Count
	}
	weekly := make([]DayCount, 0, len(days))
	for _, day := range days {
		weekly = append(weekly, DayCount{Date: day, Count: countByDate[calendar.Format(day)]})
	}

	subjects, err := e.questions.DistinctSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.DistinctSubjects() > %w", err)
	}
	dates, err := e.questions.DistinctDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.DistinctDates() > %w", err)
	}
	latest, err := e.questions.LatestDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.LatestDate() > %w", err)
	}

	return &Dashboard{
		SummaryDate: yesterday,
		Summary:     s,
		Weekly:      weekly,
		Subjects:    subjects,
		Dates:       dates,
		LatestDate:  latest,
	}, nil
}
