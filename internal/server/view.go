package server

import (
	"time"

	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/markdown"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/summary"
)

// The views carry each free-text field twice: as written and rendered to HTML.

type similarExampleView struct {
	Question     string `json:"question"`
	QuestionHTML string `json:"question_html"`
	Answer       string `json:"answer"`
	AnswerHTML   string `json:"answer_html"`
}

type questionView struct {
	ID                  int64                `json:"id"`
	Subject             string               `json:"subject"`
	UploadedAt          time.Time            `json:"uploaded_at"`
	ImageB64            string               `json:"original_image_b64"`
	UserQuestion        string               `json:"user_question"`
	ProblemAnalysis     string               `json:"problem_analysis"`
	ProblemAnalysisHTML string               `json:"problem_analysis_html"`
	Keywords            string               `json:"keywords"`
	KnowledgePoints     []string             `json:"knowledge_points"`
	KnowledgePointsHTML []string             `json:"knowledge_points_html"`
	PossibleErrors      []string             `json:"possible_errors"`
	PossibleErrorsHTML  []string             `json:"possible_errors_html"`
	SimilarExamples     []similarExampleView `json:"similar_examples"`
	Insight             string               `json:"insight"`
	InsightHTML         string               `json:"insight_html"`
}

func newQuestionView(q question.AnalyzedQuestion) questionView {
	examples := make([]similarExampleView, 0, len(q.SimilarExamples))
	for _, e := range q.SimilarExamples {
		examples = append(examples, similarExampleView{
			Question:     e.Question,
			QuestionHTML: markdown.ToHTML(e.Question),
			Answer:       e.Answer,
			AnswerHTML:   markdown.ToHTML(e.Answer),
		})
	}
	return questionView{
		ID:                  q.ID,
		Subject:             q.Subject,
		UploadedAt:          q.UploadedAt,
		ImageB64:            q.OriginalImageB64,
		UserQuestion:        q.UserQuestion,
		ProblemAnalysis:     q.ProblemAnalysis,
		ProblemAnalysisHTML: markdown.ToHTML(q.ProblemAnalysis),
		Keywords:            q.Keywords,
		KnowledgePoints:     nonNil(q.KnowledgePoints),
		KnowledgePointsHTML: markdown.ListToHTML(q.KnowledgePoints),
		PossibleErrors:      nonNil(q.PossibleErrors),
		PossibleErrorsHTML:  markdown.ListToHTML(q.PossibleErrors),
		SimilarExamples:     examples,
		Insight:             q.Insight,
		InsightHTML:         markdown.ToHTML(q.Insight),
	}
}

func newQuestionViews(questions []question.AnalyzedQuestion) []questionView {
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, newQuestionView(q))
	}
	return views
}

type mistakeView struct {
	ID             int64     `json:"id"`
	UploadedAt     time.Time `json:"uploaded_at"`
	ImageB64       string    `json:"original_image_b64"`
	Reflection     string    `json:"reflection"`
	ReflectionHTML string    `json:"reflection_html"`
}

func newMistakeView(m careless.Mistake) mistakeView {
	return mistakeView{
		ID:             m.ID,
		UploadedAt:     m.UploadedAt,
		ImageB64:       m.OriginalImageB64,
		Reflection:     m.Reflection,
		ReflectionHTML: markdown.ToHTML(m.Reflection),
	}
}

type summaryView struct {
	Date                       string         `json:"date"`
	GeneralSummary             string         `json:"general_summary"`
	GeneralSummaryHTML         string         `json:"general_summary_html"`
	KnowledgePointsSummary     []string       `json:"knowledge_points_summary"`
	KnowledgePointsSummaryHTML []string       `json:"knowledge_points_summary_html"`
	QuestionCount              int            `json:"question_count"`
	SubjectDistribution        map[string]int `json:"subject_distribution"`
	Failed                     bool           `json:"failed,omitempty"`
}

func newSummaryView(date time.Time, s *summary.DailySummary) *summaryView {
	if s == nil {
		return nil
	}
	distribution := map[string]int(s.SubjectDistribution)
	if distribution == nil {
		distribution = map[string]int{}
	}
	return &summaryView{
		Date:                       calendar.Format(date),
		GeneralSummary:             s.GeneralSummary,
		GeneralSummaryHTML:         markdown.ToHTML(s.GeneralSummary),
		KnowledgePointsSummary:     nonNil(s.KnowledgePointsSummary),
		KnowledgePointsSummaryHTML: markdown.ListToHTML(s.KnowledgePointsSummary),
		QuestionCount:              s.QuestionCount,
		SubjectDistribution:        distribution,
		Failed:                     s.Failed,
	}
}

type dayCountView struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type dashboardView struct {
	SummaryDate string         `json:"summary_date"`
	Summary     *summaryView   `json:"summary"`
	Weekly      []dayCountView `json:"weekly"`
	Subjects    []string       `json:"subjects"`
	Dates       []string       `json:"dates"`
	LatestDate  string         `json:"latest_date,omitempty"`
}

func newDashboardView(d *summary.Dashboard) dashboardView {
	weekly := make([]dayCountView, 0, len(d.Weekly))
	for _, c := range d.Weekly {
		weekly = append(weekly, dayCountView{Date: calendar.Format(c.Date), Count: c.Count})
	}
	dates := make([]string, 0, len(d.Dates))
	for _, date := range d.Dates {
		dates = append(dates, calendar.Format(date))
	}
	view := dashboardView{
		SummaryDate: calendar.Format(d.SummaryDate),
		Summary:     newSummaryView(d.SummaryDate, d.Summary),
		Weekly:      weekly,
		Subjects:    nonNil(d.Subjects),
		Dates:       dates,
	}
	if d.LatestDate != nil {
		view.LatestDate = calendar.Format(*d.LatestDate)
	}
	return view
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
