// Package careless records low-friction "careless mistake" uploads.
// They carry no AI analysis and only contribute a count to daily summaries.
package careless

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/calendar"
)

// Label is the subject under which careless mistakes are counted in summaries.
const Label = "computational/careless error"

// Mistake is an uploaded careless mistake with the user's reflection.
type Mistake struct {
	ID               int64     `db:"id" json:"id" yaml:"id"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at" yaml:"uploaded_at"`
	OriginalImageB64 string    `db:"original_image_b64" json:"original_image_b64" yaml:"-"`
	Reflection       string    `db:"reflection" json:"reflection" yaml:"reflection"`
	CreatedAt        time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

//go:generate mockgen -source=careless.go -destination=../mocks/careless/mock_careless.go -package=mock_careless

// Repository defines operations for managing careless mistakes.
type Repository interface {
	FindAll(ctx context.Context, limit, offset int) ([]Mistake, error)
	FindByDate(ctx context.Context, date time.Time) ([]Mistake, error)
	FindByID(ctx context.Context, id int64) (*Mistake, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
	Create(ctx context.Context, mistake *Mistake) error
	UpdateReflection(ctx context.Context, id int64, reflection string) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns one page of mistakes, newest first.
func (r *DBRepository) FindAll(ctx context.Context, limit, offset int) ([]Mistake, error) {
	var mistakes []Mistake
	if err := r.db.SelectContext(ctx, &mistakes,
		"SELECT * FROM careless_mistakes ORDER BY uploaded_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset); err != nil {
		return nil, fmt.Errorf("db.SelectContext(careless_mistakes) > %w", err)
	}
	return mistakes, nil
}

// FindByDate returns the mistakes uploaded on the calendar date of date.
func (r *DBRepository) FindByDate(ctx context.Context, date time.Time) ([]Mistake, error) {
	start, end := calendar.Range(date)
	var mistakes []Mistake
	if err := r.db.SelectContext(ctx, &mistakes,
		"SELECT * FROM careless_mistakes WHERE uploaded_at >= ? AND uploaded_at < ? ORDER BY uploaded_at, id",
		start, end); err != nil {
		return nil, fmt.Errorf("db.SelectContext(careless_mistakes by date) > %w", err)
	}
	return mistakes, nil
}

// FindByID returns a mistake, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Mistake, error) {
	var m Mistake
	err := r.db.GetContext(ctx, &m, "SELECT * FROM careless_mistakes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(careless_mistake) > %w", err)
	}
	return &m, nil
}

// CountByDate returns how many mistakes were uploaded on the calendar date of date.
func (r *DBRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	start, end := calendar.Range(date)
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM careless_mistakes WHERE uploaded_at >= ? AND uploaded_at < ?",
		start, end); err != nil {
		return 0, fmt.Errorf("db.GetContext(careless_mistakes count) > %w", err)
	}
	return count, nil
}

// Create inserts a mistake and sets its ID.
func (r *DBRepository) Create(ctx context.Context, m *Mistake) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO careless_mistakes (uploaded_at, original_image_b64, reflection) VALUES (?, ?, ?)",
		m.UploadedAt, m.OriginalImageB64, m.Reflection)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert careless_mistake) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	m.ID = id
	return nil
}

// UpdateReflection replaces the reflection text of a mistake.
func (r *DBRepository) UpdateReflection(ctx context.Context, id int64, reflection string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE careless_mistakes SET reflection = ? WHERE id = ?", reflection, id); err != nil {
		return fmt.Errorf("db.ExecContext(update careless_mistake) > %w", err)
	}
	return nil
}

// Delete removes a mistake. Deleting an unknown id is not an error.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM careless_mistakes WHERE id = ?", id); err != nil {
		return fmt.Errorf("db.ExecContext(delete careless_mistake) > %w", err)
	}
	return nil
}
