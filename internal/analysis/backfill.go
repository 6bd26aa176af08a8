package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/at-ishikawa/studylog/internal/inference"
	"github.com/at-ishikawa/studylog/internal/question"
)

// BackfillResult counts what a backfill run did.
type BackfillResult struct {
	Total   int
	Updated int
	Failed  int
}

// Backfill generates keywords for every stored question that has none.
type Backfill struct {
	questions     question.Repository
	generator     *KeywordGenerator
	delay         time.Duration
	retryAttempts uint
	output        io.Writer
}

// NewBackfill creates a Backfill that waits delay between two keyword requests
// and retries a request up to retryAttempts more times when the model cannot be reached.
func NewBackfill(
	questions question.Repository,
	generator *KeywordGenerator,
	delay time.Duration,
	retryAttempts uint,
	output io.Writer,
) *Backfill {
	return &Backfill{
		questions:     questions,
		generator:     generator,
		delay:         delay,
		retryAttempts: retryAttempts,
		output:        output,
	}
}

// Run processes the questions one by one. A failed question is reported and skipped.
// It only returns an error when the questions cannot be listed or ctx is done.
func (b *Backfill) Run(ctx context.Context) (BackfillResult, error) {
	questions, err := b.questions.FindWithoutKeywords(ctx)
	if err != nil {
		return BackfillResult{}, fmt.Errorf("questions.FindWithoutKeywords() > %w", err)
	}

	result := BackfillResult{Total: len(questions)}
	if len(questions) == 0 {
		_, _ = fmt.Fprintln(b.output, "Every question already has keywords.")
		return result, nil
	}
	_, _ = fmt.Fprintf(b.output, "Found %d questions without keywords.\n", len(questions))

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	limiter := rate.NewLimiter(rate.Every(b.delay), 1)
	for i, q := range questions {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("limiter.Wait() > %w", err)
		}
		_, _ = fmt.Fprintf(b.output, "[%d/%d] question %d: ", i+1, len(questions), q.ID)

		keywords, err := b.generate(ctx, q.OriginalImageB64)
		if err == nil {
			err = b.questions.UpdateKeywords(ctx, q.ID, keywords)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Failed++
			slog.Default().Warn("failed to backfill keywords", "id", q.ID, "error", err)
			_, _ = red.Fprintf(b.output, "failed: %v\n", err)
			continue
		}
		result.Updated++
		_, _ = green.Fprintln(b.output, keywords)
	}

	_, _ = fmt.Fprintf(b.output, "Updated %d of %d questions, %d failed.\n", result.Updated, result.Total, result.Failed)
	return result, nil
}

// generate retries transport failures only. Blank answers are not retried.
func (b *Backfill) generate(ctx context.Context, imageB64 string) (string, error) {
	var keywords string
	err := retry.Do(
		func() error {
			if err := ctx.Err(); err != nil {
				return retry.Unrecoverable(err)
			}
			generated, err := b.generator.keywordsForEncodedImage(ctx, imageB64)
			if err != nil {
				var transportErr *inference.TransportError
				if !errors.As(err, &transportErr) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			keywords = generated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(b.retryAttempts+1),
		retry.Delay(b.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return keywords, nil
}
