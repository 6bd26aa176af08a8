package summary_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studylog/internal/dbtype"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/summary"
)

func TestEngine_Dashboard(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	t.Run("zero fills the week", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		cached := &summary.DailySummary{
			Date:                   yesterday,
			GeneralSummary:         "Fine.",
			KnowledgePointsSummary: dbtype.StringList{"x"},
			QuestionCount:          2,
			SubjectDistribution:    dbtype.Counts{"math": 2},
		}
		latest := day(14)
		mocks.summaries.EXPECT().FindByDate(gomock.Any(), yesterday).Return(cached, nil)
		mocks.questions.EXPECT().WeeklyCounts(gomock.Any(), day(8)).Return([]question.DayCount{
			{Date: day(9), Count: 1},
			{Date: day(13), Count: 2},
			{Date: day(14), Count: 4},
		}, nil)
		mocks.questions.EXPECT().DistinctSubjects(gomock.Any()).Return([]string{"math", "physics"}, nil)
		mocks.questions.EXPECT().DistinctDates(gomock.Any()).Return([]time.Time{day(14), day(13), day(9)}, nil)
		mocks.questions.EXPECT().LatestDate(gomock.Any()).Return(&latest, nil)

		got, err := engine.Dashboard(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, &summary.Dashboard{
			SummaryDate: yesterday,
			Summary:     cached,
			Weekly: []summary.DayCount{
				{Date: day(8), Count: 0},
				{Date: day(9), Count: 1},
				{Date: day(10), Count: 0},
				{Date: day(11), Count: 0},
				{Date: day(12), Count: 0},
				{Date: day(13), Count: 2},
				{Date: day(14), Count: 4},
			},
			Subjects:   []string{"math", "physics"},
			Dates:      []time.Time{day(14), day(13), day(9)},
			LatestDate: &latest,
		}, got)
	})

	t.Run("nothing recorded yesterday", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		mocks.summaries.EXPECT().FindByDate(gomock.Any(), yesterday).Return(nil, nil)
		mocks.questions.EXPECT().FindByDate(gomock.Any(), yesterday).Return(nil, nil)
		mocks.questions.EXPECT().WeeklyCounts(gomock.Any(), day(8)).Return(nil, nil)
		mocks.questions.EXPECT().DistinctSubjects(gomock.Any()).Return(nil, nil)
		mocks.questions.EXPECT().DistinctDates(gomock.Any()).Return(nil, nil)
		mocks.questions.EXPECT().LatestDate(gomock.Any()).Return(nil, nil)

		got, err := engine.Dashboard(context.Background(), now)
		require.NoError(t, err)
		assert.Nil(t, got.Summary)
		assert.Nil(t, got.LatestDate)
		require.Len(t, got.Weekly, 7)
		for _, c := range got.Weekly {
			assert.Zero(t, c.Count)
		}
	})

	t.Run("store error", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		mocks.summaries.EXPECT().FindByDate(gomock.Any(), yesterday).Return(nil, nil)
		mocks.questions.EXPECT().FindByDate(gomock.Any(), yesterday).Return(nil, nil)
		mocks.questions.EXPECT().WeeklyCounts(gomock.Any(), day(8)).Return(nil, errors.New("timeout"))

		got, err := engine.Dashboard(context.Background(), now)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
