package summary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/studylog/internal/dbtype"
)

var summaryColumns = []string{
	"id", "summary_date", "general_summary", "knowledge_points_summary", "question_count",
	"subject_distribution", "created_at", "updated_at",
}

func newRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_FindByDate(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	date := time.Date(2025, 10, 10, 23, 30, 0, 0, loc)
	stored := time.Date(2025, 10, 11, 9, 0, 0, 0, loc)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *DailySummary
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(summaryColumns).
					AddRow(3, time.Date(2025, 10, 10, 0, 0, 0, 0, loc), "Mostly algebra.", `["factoring"]`, 4,
						`{"math":3,"computational/careless error":1}`, stored, stored)
				mock.ExpectQuery("SELECT \\* FROM daily_summaries WHERE summary_date = \\?").
					WithArgs("2025-10-10").
					WillReturnRows(rows)
			},
			want: &DailySummary{
				ID:                     3,
				Date:                   time.Date(2025, 10, 10, 0, 0, 0, 0, loc),
				GeneralSummary:         "Mostly algebra.",
				KnowledgePointsSummary: dbtype.StringList{"factoring"},
				QuestionCount:          4,
				SubjectDistribution:    dbtype.Counts{"math": 3, "computational/careless error": 1},
				CreatedAt:              stored,
				UpdatedAt:              stored,
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM daily_summaries WHERE summary_date = \\?").
					WithArgs("2025-10-10").
					WillReturnRows(sqlmock.NewRows(summaryColumns))
			},
			want: nil,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM daily_summaries").
					WillReturnError(fmt.Errorf("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByDate(context.Background(), date)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Upsert(t *testing.T) {
	tests := []struct {
		name      string
		summary   *DailySummary
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "writes every field keyed by date",
			summary: &DailySummary{
				Date:                   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
				GeneralSummary:         "Calculus needs work.",
				KnowledgePointsSummary: dbtype.StringList{"chain rule", "units"},
				QuestionCount:          3,
				SubjectDistribution:    dbtype.Counts{"math": 2, "physics": 1},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO daily_summaries .+ ON DUPLICATE KEY UPDATE").
					WithArgs("2025-03-14", "Calculus needs work.", `["chain rule","units"]`, 3, `{"math":2,"physics":1}`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "empty lists are stored as JSON",
			summary: &DailySummary{
				Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
				GeneralSummary: "Nothing.",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO daily_summaries").
					WithArgs("2025-03-15", "Nothing.", "[]", 0, "{}").
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
		},
		{
			name: "database error",
			summary: &DailySummary{
				Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO daily_summaries").
					WillReturnError(fmt.Errorf("deadlock"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			err := repo.Upsert(context.Background(), tt.summary)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
