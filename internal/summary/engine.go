package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/dbtype"
	"github.com/at-ishikawa/studylog/internal/inference"
	"github.com/at-ishikawa/studylog/internal/question"
)

// ErrNotFound is returned when a date has no question to summarize.
var ErrNotFound = errors.New("no questions to summarize")

// GenerationError reports that the AI model failed while summarizing a date.
type GenerationError struct {
	Date time.Time
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate summary of %s: %v", calendar.Format(e.Date), e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const promptTemplate = `You are an experienced personal tutor. Write a short, insightful report on what the student got wrong on one day, based on the analyses and knowledge points of that day's missed questions below.

---
%s
---

Answer with one JSON object only, without any text around it:
{
  "general_summary": "two or three sentences giving an overview of the day",
  "knowledge_points_summary": [
    "the first core knowledge point or weakness shown by the mistakes",
    "the second one",
    "the third one"
  ]
}`

// Engine produces daily summaries from the records of a date.
type Engine struct {
	questions question.Repository
	mistakes  careless.Repository
	summaries Repository
	client    inference.Client
}

func NewEngine(
	questions question.Repository,
	mistakes careless.Repository,
	summaries Repository,
	client inference.Client,
) *Engine {
	return &Engine{
		questions: questions,
		mistakes:  mistakes,
		summaries: summaries,
		client:    client,
	}
}

// GetOrGenerate returns the cached summary of a date, generating and storing it on a cache miss.
// It returns nil without error when the date has no question.
// When the AI model cannot be reached, the returned summary has Failed set and is not stored.
func (e *Engine) GetOrGenerate(ctx context.Context, date time.Time) (*DailySummary, error) {
	cached, err := e.summaries.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("summaries.FindByDate() > %w", err)
	}
	if cached != nil {
		return cached, nil
	}

	s, err := e.generate(ctx, date)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	var generationErr *GenerationError
	if errors.As(err, &generationErr) {
		slog.Default().Warn("failed to generate daily summary", "date", calendar.Format(date), "error", err)
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ForceRegenerate summarizes a date again and overwrites the stored summary.
// It returns ErrNotFound when the date has no question, and a *GenerationError when the AI model fails.
func (e *Engine) ForceRegenerate(ctx context.Context, date time.Time) (*DailySummary, error) {
	s, err := e.generate(ctx, date)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// generate builds and stores the summary of a date.
// On a *GenerationError it also returns the unsaved summary describing the failure.
func (e *Engine) generate(ctx context.Context, date time.Time) (*DailySummary, error) {
	questions, err := e.questions.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("questions.FindByDate() > %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNotFound
	}

	distribution := dbtype.Counts{}
	for _, q := range questions {
		distribution[q.Subject]++
	}
	total := len(questions)

	carelessCount, err := e.mistakes.CountByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("mistakes.CountByDate() > %w", err)
	}
	if carelessCount > 0 {
		distribution[careless.Label] += carelessCount
		total += carelessCount
	}

	s := &DailySummary{
		Date:                calendar.Day(date),
		QuestionCount:       total,
		SubjectDistribution: distribution,
	}

	raw, err := e.client.SummarizeText(ctx, fmt.Sprintf(promptTemplate, buildDigest(questions)))
	if err != nil {
		s.Failed = true
		s.GeneralSummary = fmt.Sprintf("Failed to generate the summary: %v", err)
		s.KnowledgePointsSummary = dbtype.StringList{}
		return s, &GenerationError{Date: s.Date, Err: err}
	}

	content, degraded := ParseResponse(raw)
	if degraded {
		slog.Default().Warn("summary response is not JSON, storing it unstructured", "date", calendar.Format(date))
	}
	s.GeneralSummary = content.GeneralSummary
	s.KnowledgePointsSummary = content.KnowledgePointsSummary

	if err := e.summaries.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("summaries.Upsert() > %w", err)
	}
	slog.Default().Info("daily summary generated",
		"date", calendar.Format(date),
		"questionCount", s.QuestionCount,
		"degraded", degraded,
	)
	return s, nil
}

// buildDigest lists every question's analysis followed by its knowledge points, one per line.
func buildDigest(questions []question.AnalyzedQuestion) string {
	var lines []string
	for _, q := range questions {
		lines = append(lines, q.ProblemAnalysis)
		lines = append(lines, q.KnowledgePoints...)
	}
	return strings.Join(lines, "\n")
}
