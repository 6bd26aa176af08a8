package server

import (
	"context"
	"iter"
	"time"

	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/inference"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/search"
	"github.com/at-ishikawa/studylog/internal/summary"
)

// QuestionAnalyzer analyzes uploaded questions and stores the result.
type QuestionAnalyzer interface {
	Create(ctx context.Context, image []byte, subject, userQuestion string) (*question.AnalyzedQuestion, error)
	Regenerate(ctx context.Context, id int64) (*question.AnalyzedQuestion, error)
}

// SummaryProvider serves daily summaries and the dashboard built on them.
type SummaryProvider interface {
	GetOrGenerate(ctx context.Context, date time.Time) (*summary.DailySummary, error)
	ForceRegenerate(ctx context.Context, date time.Time) (*summary.DailySummary, error)
	Dashboard(ctx context.Context, now time.Time) (*summary.Dashboard, error)
}

// MistakeRecorder stores uploaded careless mistakes.
type MistakeRecorder interface {
	Record(ctx context.Context, image []byte, reflection string) (*careless.Mistake, error)
}

// ChatRelay streams the answer of the tutor to a conversation.
type ChatRelay interface {
	Relay(ctx context.Context, messages []inference.Message) iter.Seq[string]
}

// KeywordGenerator turns a question image into keywords.
type KeywordGenerator interface {
	KeywordsForImage(ctx context.Context, image []byte) (string, error)
}

// Searcher finds stored questions similar to a query.
type Searcher interface {
	Filters(ctx context.Context) (search.Filters, error)
	Search(ctx context.Context, query search.Query) (*search.Response, error)
}
