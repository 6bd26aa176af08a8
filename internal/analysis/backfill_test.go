package analysis

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studylog/internal/inference"
	mock_inference "github.com/at-ishikawa/studylog/internal/mocks/inference"
	mock_question "github.com/at-ishikawa/studylog/internal/mocks/question"
	"github.com/at-ishikawa/studylog/internal/question"
)

func TestBackfill_Run(t *testing.T) {
	pending := []question.AnalyzedQuestion{
		{ID: 1, OriginalImageB64: "b25l"},
		{ID: 2, OriginalImageB64: "dHdv"},
		{ID: 3, OriginalImageB64: "dGhyZWU="},
	}
	unavailable := &inference.TransportError{Op: "keywords for image", StatusCode: 503, Err: errors.New("unavailable")}

	tests := []struct {
		name          string
		retryAttempts uint
		setup         func(client *mock_inference.MockClient, questions *mock_question.MockRepository)
		want          BackfillResult
		wantOutput    []string
		wantErr       bool
	}{
		{
			name: "every question updated",
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending, nil)
				gomock.InOrder(
					client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("[a]-[b]-[c]", nil),
					questions.EXPECT().UpdateKeywords(gomock.Any(), int64(1), "[a]-[b]-[c]").Return(nil),
					client.EXPECT().KeywordsForImage(gomock.Any(), "dHdv", gomock.Any()).Return("[d]-[e]-[f]", nil),
					questions.EXPECT().UpdateKeywords(gomock.Any(), int64(2), "[d]-[e]-[f]").Return(nil),
					client.EXPECT().KeywordsForImage(gomock.Any(), "dGhyZWU=", gomock.Any()).Return("[g]-[h]-[i]", nil),
					questions.EXPECT().UpdateKeywords(gomock.Any(), int64(3), "[g]-[h]-[i]").Return(nil),
				)
			},
			want:       BackfillResult{Total: 3, Updated: 3},
			wantOutput: []string{"Found 3 questions without keywords.", "[3/3] question 3: ", "[g]-[h]-[i]", "Updated 3 of 3 questions, 0 failed."},
		},
		{
			name: "failures are skipped",
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending, nil)
				client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("", unavailable)
				client.EXPECT().KeywordsForImage(gomock.Any(), "dHdv", gomock.Any()).Return("   ", nil)
				client.EXPECT().KeywordsForImage(gomock.Any(), "dGhyZWU=", gomock.Any()).Return("[g]-[h]-[i]", nil)
				questions.EXPECT().UpdateKeywords(gomock.Any(), int64(3), "[g]-[h]-[i]").Return(nil)
			},
			want:       BackfillResult{Total: 3, Updated: 1, Failed: 2},
			wantOutput: []string{"failed: analyze question: keywords for image: response error 503: unavailable", "failed: analyze question: empty keywords"},
		},
		{
			name:          "transport failures are retried",
			retryAttempts: 2,
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending[:1], nil)
				gomock.InOrder(
					client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("", unavailable),
					client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("[a]-[b]-[c]", nil),
				)
				questions.EXPECT().UpdateKeywords(gomock.Any(), int64(1), "[a]-[b]-[c]").Return(nil)
			},
			want: BackfillResult{Total: 1, Updated: 1},
		},
		{
			name:          "retries stop after the configured attempts",
			retryAttempts: 1,
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending[:1], nil)
				client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("", unavailable).Times(2)
			},
			want: BackfillResult{Total: 1, Failed: 1},
		},
		{
			name:          "blank answers are not retried",
			retryAttempts: 3,
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending[:1], nil)
				client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("", nil).Times(1)
			},
			want: BackfillResult{Total: 1, Failed: 1},
		},
		{
			name: "store failure of one question",
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(pending[:2], nil)
				client.EXPECT().KeywordsForImage(gomock.Any(), "b25l", gomock.Any()).Return("[a]-[b]-[c]", nil)
				questions.EXPECT().UpdateKeywords(gomock.Any(), int64(1), "[a]-[b]-[c]").Return(errors.New("lock wait timeout"))
				client.EXPECT().KeywordsForImage(gomock.Any(), "dHdv", gomock.Any()).Return("[d]-[e]-[f]", nil)
				questions.EXPECT().UpdateKeywords(gomock.Any(), int64(2), "[d]-[e]-[f]").Return(nil)
			},
			want: BackfillResult{Total: 2, Updated: 1, Failed: 1},
		},
		{
			name: "nothing to do",
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(nil, nil)
			},
			want:       BackfillResult{},
			wantOutput: []string{"Every question already has keywords."},
		},
		{
			name: "listing fails",
			setup: func(client *mock_inference.MockClient, questions *mock_question.MockRepository) {
				questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock_inference.NewMockClient(ctrl)
			questions := mock_question.NewMockRepository(ctrl)
			tt.setup(client, questions)

			var output bytes.Buffer
			backfill := NewBackfill(questions, NewKeywordGenerator(client), 0, tt.retryAttempts, &output)
			got, err := backfill.Run(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, line := range tt.wantOutput {
				assert.Contains(t, output.String(), line)
			}
		})
	}
}

func TestBackfill_Run_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_inference.NewMockClient(ctrl)
	questions := mock_question.NewMockRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	questions.EXPECT().FindWithoutKeywords(gomock.Any()).Return([]question.AnalyzedQuestion{{ID: 1}, {ID: 2}}, nil)
	client.EXPECT().KeywordsForImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string) (string, error) {
			cancel()
			return "", &inference.TransportError{Op: "keywords for image", Err: context.Canceled}
		})

	var output bytes.Buffer
	got, err := NewBackfill(questions, NewKeywordGenerator(client), 0, 2, &output).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BackfillResult{Total: 2}, got)
}
