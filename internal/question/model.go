// Package question provides the analyzed question model and its repository.
package question

import (
	"time"

	"github.com/at-ishikawa/studylog/internal/dbtype"
)

// SimilarExample is a practice question generated next to an analysis.
type SimilarExample struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// SimilarExamples is stored as a JSON array of {question, answer} objects.
type SimilarExamples = dbtype.List[SimilarExample]

// Analysis is the part of a question produced by the AI model.
// Regeneration replaces all of these fields at once.
type Analysis struct {
	ProblemAnalysis string            `db:"problem_analysis" json:"problem_analysis" yaml:"problem_analysis"`
	Keywords        string            `db:"keywords" json:"keywords" yaml:"keywords"`
	KnowledgePoints dbtype.StringList `db:"knowledge_points" json:"knowledge_points" yaml:"knowledge_points"`
	PossibleErrors  dbtype.StringList `db:"possible_errors" json:"possible_errors" yaml:"possible_errors"`
	SimilarExamples SimilarExamples   `db:"similar_examples" json:"similar_examples" yaml:"similar_examples"`
}

// AnalyzedQuestion is an uploaded exam question together with its analysis.
type AnalyzedQuestion struct {
	ID               int64     `db:"id" json:"id" yaml:"id"`
	Subject          string    `db:"subject" json:"subject" yaml:"subject"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at" yaml:"uploaded_at"`
	OriginalImageB64 string    `db:"original_image_b64" json:"original_image_b64" yaml:"-"`
	UserQuestion     string    `db:"user_question" json:"user_question" yaml:"user_question,omitempty"`
	Analysis         `yaml:",inline"`
	Insight          string    `db:"insight" json:"insight" yaml:"insight,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

// KeywordEntry is the subset of a question used to build search filters.
type KeywordEntry struct {
	ID       int64  `db:"id"`
	Subject  string `db:"subject"`
	Keywords string `db:"keywords"`
}

// DayCount is the number of questions uploaded on one calendar date.
type DayCount struct {
	Date  time.Time `db:"entry_date"`
	Count int       `db:"count"`
}
