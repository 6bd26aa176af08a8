package question

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/calendar"
)

//go:generate mockgen -source=repository.go -destination=../mocks/question/mock_repository.go -package=mock_question

// Repository defines operations for managing analyzed questions.
type Repository interface {
	FindByDate(ctx context.Context, date time.Time) ([]AnalyzedQuestion, error)
	FindByID(ctx context.Context, id int64) (*AnalyzedQuestion, error)
	FindByIDs(ctx context.Context, ids []int64) ([]AnalyzedQuestion, error)
	FindBySubject(ctx context.Context, subject string, limit, offset int, before *time.Time) ([]AnalyzedQuestion, error)
	Create(ctx context.Context, q *AnalyzedQuestion) error
	UpdateAnalysis(ctx context.Context, id int64, analysis Analysis) error
	UpdateInsight(ctx context.Context, id int64, insight string) error
	UpdateKeywords(ctx context.Context, id int64, keywords string) error
	Delete(ctx context.Context, id int64) error
	FindWithoutKeywords(ctx context.Context) ([]AnalyzedQuestion, error)
	DistinctSubjects(ctx context.Context) ([]string, error)
	DistinctDates(ctx context.Context) ([]time.Time, error)
	LatestDate(ctx context.Context) (*time.Time, error)
	WeeklyCounts(ctx context.Context, since time.Time) ([]DayCount, error)
	FindAllKeywords(ctx context.Context) ([]KeywordEntry, error)
}

// columns lists every questions column; insight is nullable and read back as "".
const columns = `id, subject, uploaded_at, original_image_b64, user_question, problem_analysis, keywords,
	knowledge_points, possible_errors, similar_examples, COALESCE(insight, '') AS insight, created_at, updated_at`

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByDate returns the questions uploaded on the calendar date of date, in upload order.
func (r *DBRepository) FindByDate(ctx context.Context, date time.Time) ([]AnalyzedQuestion, error) {
	start, end := calendar.Range(date)
	var questions []AnalyzedQuestion
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT "+columns+" FROM questions WHERE uploaded_at >= ? AND uploaded_at < ? ORDER BY uploaded_at, id",
		start, end); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions by date) > %w", err)
	}
	return questions, nil
}

// FindByID returns a question, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*AnalyzedQuestion, error) {
	var q AnalyzedQuestion
	err := r.db.GetContext(ctx, &q, "SELECT "+columns+" FROM questions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(question) > %w", err)
	}
	return &q, nil
}

// FindByIDs returns the questions with the given ids, newest first. Unknown ids are ignored.
func (r *DBRepository) FindByIDs(ctx context.Context, ids []int64) ([]AnalyzedQuestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT "+columns+" FROM questions WHERE id IN (?) ORDER BY uploaded_at DESC, id DESC", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(questions) > %w", err)
	}
	var questions []AnalyzedQuestion
	if err := r.db.SelectContext(ctx, &questions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions by ids) > %w", err)
	}
	return questions, nil
}

// FindBySubject returns one page of a subject's questions, newest first.
// When before is set, only questions uploaded before it are returned.
func (r *DBRepository) FindBySubject(ctx context.Context, subject string, limit, offset int, before *time.Time) ([]AnalyzedQuestion, error) {
	query := "SELECT " + columns + " FROM questions WHERE subject = ?"
	args := []any{subject}
	if before != nil {
		query += " AND uploaded_at < ?"
		args = append(args, *before)
	}
	query += " ORDER BY uploaded_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var questions []AnalyzedQuestion
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions by subject) > %w", err)
	}
	return questions, nil
}

// Create inserts a question and sets its ID.
func (r *DBRepository) Create(ctx context.Context, q *AnalyzedQuestion) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (subject, uploaded_at, original_image_b64, user_question, problem_analysis, keywords,
		knowledge_points, possible_errors, similar_examples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Subject, q.UploadedAt, q.OriginalImageB64, q.UserQuestion, q.ProblemAnalysis, q.Keywords,
		q.KnowledgePoints, q.PossibleErrors, q.SimilarExamples)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	q.ID = id
	return nil
}

// UpdateAnalysis replaces every analysis field of a question.
func (r *DBRepository) UpdateAnalysis(ctx context.Context, id int64, analysis Analysis) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE questions SET problem_analysis = ?, keywords = ?, knowledge_points = ?, possible_errors = ?, similar_examples = ?
		WHERE id = ?`,
		analysis.ProblemAnalysis, analysis.Keywords, analysis.KnowledgePoints, analysis.PossibleErrors,
		analysis.SimilarExamples, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update question analysis) > %w", err)
	}
	return nil
}

// UpdateInsight stores the user's own note on a question.
func (r *DBRepository) UpdateInsight(ctx context.Context, id int64, insight string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE questions SET insight = ? WHERE id = ?", insight, id); err != nil {
		return fmt.Errorf("db.ExecContext(update question insight) > %w", err)
	}
	return nil
}

// UpdateKeywords stores the keywords of a question.
func (r *DBRepository) UpdateKeywords(ctx context.Context, id int64, keywords string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE questions SET keywords = ? WHERE id = ?", keywords, id); err != nil {
		return fmt.Errorf("db.ExecContext(update question keywords) > %w", err)
	}
	return nil
}

// Delete removes a question. Deleting an unknown id is not an error.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id); err != nil {
		return fmt.Errorf("db.ExecContext(delete question) > %w", err)
	}
	return nil
}

// FindWithoutKeywords returns every question whose keywords are still empty, oldest first.
func (r *DBRepository) FindWithoutKeywords(ctx context.Context) ([]AnalyzedQuestion, error) {
	var questions []AnalyzedQuestion
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT "+columns+" FROM questions WHERE keywords = '' ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions without keywords) > %w", err)
	}
	return questions, nil
}

// DistinctSubjects returns every subject in alphabetical order.
func (r *DBRepository) DistinctSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects, "SELECT DISTINCT subject FROM questions ORDER BY subject"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(subjects) > %w", err)
	}
	return subjects, nil
}

// DistinctDates returns every calendar date with at least one question, newest first.
func (r *DBRepository) DistinctDates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates,
		"SELECT DISTINCT DATE(uploaded_at) AS entry_date FROM questions ORDER BY entry_date DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(question dates) > %w", err)
	}
	return dates, nil
}

// LatestDate returns the most recent calendar date with a question, or nil when there is none.
func (r *DBRepository) LatestDate(ctx context.Context) (*time.Time, error) {
	var latest sql.NullTime
	if err := r.db.GetContext(ctx, &latest, "SELECT MAX(DATE(uploaded_at)) FROM questions"); err != nil {
		return nil, fmt.Errorf("db.GetContext(latest question date) > %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}
	return &latest.Time, nil
}

// WeeklyCounts returns per-date question counts from since onwards, oldest first.
// Dates without questions are omitted.
func (r *DBRepository) WeeklyCounts(ctx context.Context, since time.Time) ([]DayCount, error) {
	var counts []DayCount
	if err := r.db.SelectContext(ctx, &counts,
		`SELECT DATE(uploaded_at) AS entry_date, COUNT(id) AS count FROM questions
		WHERE uploaded_at >= ? GROUP BY entry_date ORDER BY entry_date`,
		calendar.Day(since)); err != nil {
		return nil, fmt.Errorf("db.SelectContext(weekly counts) > %w", err)
	}
	return counts, nil
}

// FindAllKeywords returns the keywords of every question that has some.
func (r *DBRepository) FindAllKeywords(ctx context.Context) ([]KeywordEntry, error) {
	var entries []KeywordEntry
	if err := r.db.SelectContext(ctx, &entries,
		"SELECT id, subject, keywords FROM questions WHERE keywords <> '' ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(question keywords) > %w", err)
	}
	return entries, nil
}
