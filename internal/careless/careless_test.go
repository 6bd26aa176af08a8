package careless

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mistakeColumns = []string{"id", "uploaded_at", "original_image_b64", "reflection", "created_at", "updated_at"}

func newRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_FindAll(t *testing.T) {
	uploaded := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	repo, mock := newRepository(t)
	mock.ExpectQuery("SELECT \\* FROM careless_mistakes ORDER BY uploaded_at DESC, id DESC LIMIT \\? OFFSET \\?").
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows(mistakeColumns).
			AddRow(5, uploaded, "aW1n", "<p>dropped a sign</p>", uploaded, uploaded))

	got, err := repo.FindAll(context.Background(), 20, 40)
	require.NoError(t, err)
	assert.Equal(t, []Mistake{{
		ID:               5,
		UploadedAt:       uploaded,
		OriginalImageB64: "aW1n",
		Reflection:       "<p>dropped a sign</p>",
		CreatedAt:        uploaded,
		UpdatedAt:        uploaded,
	}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindByID(t *testing.T) {
	uploaded := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *Mistake
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM careless_mistakes WHERE id = \\?").
					WithArgs(5).
					WillReturnRows(sqlmock.NewRows(mistakeColumns).
						AddRow(5, uploaded, "aW1n", "", uploaded, uploaded))
			},
			want: &Mistake{ID: 5, UploadedAt: uploaded, OriginalImageB64: "aW1n", CreatedAt: uploaded, UpdatedAt: uploaded},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM careless_mistakes WHERE id = \\?").
					WithArgs(5).
					WillReturnRows(sqlmock.NewRows(mistakeColumns))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM careless_mistakes").
					WillReturnError(fmt.Errorf("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), 5)
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

func TestDBRepository_ByDate(t *testing.T) {
	loc := time.FixedZone("CST", 8*60*60)
	date := time.Date(2025, 5, 1, 21, 0, 0, 0, loc)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, loc)
	end := time.Date(2025, 5, 2, 0, 0, 0, 0, loc)

	t.Run("count", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM careless_mistakes WHERE uploaded_at >= \\? AND uploaded_at < \\?").
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3))

		got, err := repo.CountByDate(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(fmt.Errorf("timeout"))

		got, err := repo.CountByDate(context.Background(), date)
		assert.Error(t, err)
		assert.Zero(t, got)
	})

	t.Run("list", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectQuery("SELECT \\* FROM careless_mistakes WHERE uploaded_at >= \\? AND uploaded_at < \\? ORDER BY uploaded_at, id").
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows(mistakeColumns).
				AddRow(1, start.Add(time.Hour), "YQ==", "a", start, start).
				AddRow(2, start.Add(2*time.Hour), "Yg==", "b", start, start))

		got, err := repo.FindByDate(context.Background(), date)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, "b", got[1].Reflection)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBRepository_Writes(t *testing.T) {
	uploaded := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("create sets the id", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec("INSERT INTO careless_mistakes \\(uploaded_at, original_image_b64, reflection\\) VALUES \\(\\?, \\?, \\?\\)").
			WithArgs(uploaded, "aW1n", "slow down").
			WillReturnResult(sqlmock.NewResult(12, 1))

		m := &Mistake{UploadedAt: uploaded, OriginalImageB64: "aW1n", Reflection: "slow down"}
		require.NoError(t, repo.Create(context.Background(), m))
		assert.Equal(t, int64(12), m.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update reflection", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec("UPDATE careless_mistakes SET reflection = \\? WHERE id = \\?").
			WithArgs("read twice", 12).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateReflection(context.Background(), 12, "read twice"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete then find", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec("DELETE FROM careless_mistakes WHERE id = \\?").
			WithArgs(12).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT \\* FROM careless_mistakes WHERE id = \\?").
			WithArgs(12).
			WillReturnRows(sqlmock.NewRows(mistakeColumns))

		require.NoError(t, repo.Delete(context.Background(), 12))
		got, err := repo.FindByID(context.Background(), 12)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete error", func(t *testing.T) {
		repo, mock := newRepository(t)
		mock.ExpectExec("DELETE FROM careless_mistakes").WillReturnError(fmt.Errorf("locked"))

		assert.Error(t, repo.Delete(context.Background(), 12))
	})
}
