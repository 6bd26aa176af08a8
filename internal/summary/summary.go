// Package summary builds, caches and regenerates the AI summary of a study day.
package summary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/calendar"
	"github.com/at-ishikawa/studylog/internal/dbtype"
)

// DailySummary is the cached projection of one calendar date.
type DailySummary struct {
	ID                     int64             `db:"id" json:"-" yaml:"-"`
	Date                   time.Time         `db:"summary_date" json:"-" yaml:"-"`
	GeneralSummary         string            `db:"general_summary" json:"general_summary" yaml:"general_summary"`
	KnowledgePointsSummary dbtype.StringList `db:"knowledge_points_summary" json:"knowledge_points_summary" yaml:"knowledge_points_summary"`
	QuestionCount          int               `db:"question_count" json:"question_count" yaml:"question_count"`
	SubjectDistribution    dbtype.Counts     `db:"subject_distribution" json:"subject_distribution" yaml:"subject_distribution"`
	CreatedAt              time.Time         `db:"created_at" json:"-" yaml:"-"`
	UpdatedAt              time.Time         `db:"updated_at" json:"-" yaml:"-"`

	// Failed marks a summary synthesized after the AI model could not be reached. It is never stored.
	Failed bool `db:"-" json:"failed,omitempty" yaml:"-"`
}

//go:generate mockgen -source=summary.go -destination=../mocks/summary/mock_summary.go -package=mock_summary

// Repository defines operations for managing daily summaries.
type Repository interface {
	FindByDate(ctx context.Context, date time.Time) (*DailySummary, error)
	Upsert(ctx context.Context, s *DailySummary) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByDate returns the summary of the calendar date of date, or nil if not found.
func (r *DBRepository) FindByDate(ctx context.Context, date time.Time) (*DailySummary, error) {
	var s DailySummary
	err := r.db.GetContext(ctx, &s, "SELECT * FROM daily_summaries WHERE summary_date = ?", calendar.Format(date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(daily_summary) > %w", err)
	}
	return &s, nil
}

// Upsert inserts the summary of a date, or replaces every field of the existing one.
func (r *DBRepository) Upsert(ctx context.Context, s *DailySummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_summaries (summary_date, general_summary, knowledge_points_summary, question_count, subject_distribution)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			general_summary = VALUES(general_summary),
			knowledge_points_summary = VALUES(knowledge_points_summary),
			question_count = VALUES(question_count),
			subject_distribution = VALUES(subject_distribution)`,
		calendar.Format(s.Date), s.GeneralSummary, s.KnowledgePointsSummary, s.QuestionCount, s.SubjectDistribution)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert daily_summary) > %w", err)
	}
	return nil
}
