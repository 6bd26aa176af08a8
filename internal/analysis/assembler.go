// Package analysis turns uploaded question images into analyzed questions and keywords.
package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/studylog/internal/dbtype"
	"github.com/at-ishikawa/studylog/internal/inference"
	"github.com/at-ishikawa/studylog/internal/question"
)

// ErrQuestionNotFound is returned when regenerating a question that does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// Error reports that a question could not be analyzed.
// Err is an *inference.TransportError or an *inference.MalformedResponseError.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analyze question: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const analysisPrompt = `You are a university teacher who explains problems to students in an intuitive way. Your knowledge includes, but is not limited to, advanced mathematics, physical chemistry, materials characterization and the fundamentals of materials science. You prefer Socratic, heuristic teaching because it helps students understand.

How you work:
Give the conclusion first, then guide the student step by step through why it holds.
From the option the student chose, guess the mistake they probably made, then give the solution, analyze what the question tests and write a few similar questions.

Your task is to analyze the photo of a question the student got wrong.
Read the question in the image carefully and answer strictly with the JSON object below, without any explanation or preamble.

{
  "problem_analysis": "a detailed analysis of the question, including the steps and the reasoning of the solution",
  "keywords": "a string formatted as [main subject]-[area]-[keyword1, keyword2, keyword3], used for search",
  "knowledge_points": ["the core knowledge points tested by the question"],
  "possible_errors": ["the mistakes students most easily make on this question"],
  "similar_examples": [
    {
      "question": "the statement of the first similar question",
      "answer": "the detailed answer of the first similar question"
    }
  ]
}`

const emphasisTemplate = "\nThe student has the following doubt about this question. Focus your analysis on answering it: '%s'"

// analysisResponse is the JSON object the model is asked to answer with.
type analysisResponse struct {
	ProblemAnalysis string                   `json:"problem_analysis"`
	Keywords        string                   `json:"keywords"`
	KnowledgePoints dbtype.StringList        `json:"knowledge_points"`
	PossibleErrors  dbtype.StringList        `json:"possible_errors"`
	SimilarExamples question.SimilarExamples `json:"similar_examples"`
}

// Assembler analyzes question images with the AI model.
type Assembler struct {
	client    inference.Client
	questions question.Repository
	now       func() time.Time
}

// NewAssembler creates an Assembler that stamps new questions with the current time in loc.
func NewAssembler(client inference.Client, questions question.Repository, loc *time.Location) *Assembler {
	return &Assembler{
		client:    client,
		questions: questions,
		now:       func() time.Time { return time.Now().In(loc) },
	}
}

// Assemble analyzes an image and returns the resulting question without storing it.
// Failures of the AI model are returned as *Error.
func (a *Assembler) Assemble(ctx context.Context, image []byte, subject, userQuestion string) (question.AnalyzedQuestion, error) {
	if len(image) == 0 {
		return question.AnalyzedQuestion{}, fmt.Errorf("empty image")
	}
	imageB64 := base64.StdEncoding.EncodeToString(image)
	analysis, err := a.analyze(ctx, imageB64, userQuestion)
	if err != nil {
		return question.AnalyzedQuestion{}, err
	}
	return question.AnalyzedQuestion{
		Subject:          subject,
		UploadedAt:       a.now().Truncate(time.Second),
		OriginalImageB64: imageB64,
		UserQuestion:     userQuestion,
		Analysis:         analysis,
	}, nil
}

// Create assembles a question and stores it.
func (a *Assembler) Create(ctx context.Context, image []byte, subject, userQuestion string) (*question.AnalyzedQuestion, error) {
	q, err := a.Assemble(ctx, image, subject, userQuestion)
	if err != nil {
		return nil, err
	}
	if err := a.questions.Create(ctx, &q); err != nil {
		return nil, fmt.Errorf("questions.Create() > %w", err)
	}
	return &q, nil
}

// Regenerate analyzes a stored question again with its own image and doubt,
// and replaces every analysis field.
func (a *Assembler) Regenerate(ctx context.Context, id int64) (*question.AnalyzedQuestion, error) {
	q, err := a.questions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("questions.FindByID() > %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	if _, err := base64.StdEncoding.DecodeString(q.OriginalImageB64); err != nil {
		return nil, fmt.Errorf("decode image of question %d > %w", id, err)
	}

	analysis, err := a.analyze(ctx, q.OriginalImageB64, q.UserQuestion)
	if err != nil {
		return nil, err
	}
	if err := a.questions.UpdateAnalysis(ctx, id, analysis); err != nil {
		return nil, fmt.Errorf("questions.UpdateAnalysis() > %w", err)
	}
	q.Analysis = analysis
	slog.Default().Info("question analysis regenerated", "id", id)
	return q, nil
}

func (a *Assembler) analyze(ctx context.Context, imageB64, userQuestion string) (question.Analysis, error) {
	prompt := analysisPrompt
	if userQuestion != "" {
		prompt += fmt.Sprintf(emphasisTemplate, userQuestion)
	}

	raw, err := a.client.AnalyzeImage(ctx, imageB64, prompt)
	if err != nil {
		var transportErr *inference.TransportError
		if !errors.As(err, &transportErr) {
			transportErr = &inference.TransportError{Op: "analyze image", Err: err}
		}
		return question.Analysis{}, &Error{Err: transportErr}
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		return question.Analysis{}, &Error{Err: err}
	}
	return analysis, nil
}

// ParseAnalysis reads the answer of the analysis prompt.
// Missing fields become empty; anything but a JSON object is a *inference.MalformedResponseError.
func ParseAnalysis(raw string) (question.Analysis, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return question.Analysis{}, inference.NewMalformedResponseError(raw, errors.New("not a JSON object"))
	}
	var response analysisResponse
	if err := json.Unmarshal([]byte(trimmed), &response); err != nil {
		return question.Analysis{}, inference.NewMalformedResponseError(raw, err)
	}

	analysis := question.Analysis{
		ProblemAnalysis: response.ProblemAnalysis,
		Keywords:        response.Keywords,
		KnowledgePoints: response.KnowledgePoints,
		PossibleErrors:  response.PossibleErrors,
		SimilarExamples: response.SimilarExamples,
	}
	if analysis.KnowledgePoints == nil {
		analysis.KnowledgePoints = dbtype.StringList{}
	}
	if analysis.PossibleErrors == nil {
		analysis.PossibleErrors = dbtype.StringList{}
	}
	if analysis.SimilarExamples == nil {
		analysis.SimilarExamples = question.SimilarExamples{}
	}
	return analysis, nil
}
