package analysis

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studylog/internal/inference"
)

// ErrEmptyKeywords is wrapped in *Error when the model answers the keyword prompt with blank text.
var ErrEmptyKeywords = errors.New("empty keywords")

const keywordPrompt = `You are an information retrieval expert. Your task is to read the photo of a question the user got wrong and extract its core keywords.
Answer strictly in the format below, without any explanation or preamble.

Format: [main subject]-[area]-[keyword1, keyword2, keyword3]

For example, for a question about electrochemistry you answer: [physical chemistry]-[electrochemistry]-[Nernst equation, mean ionic activity, Gibbs free energy]
For a question about calculus you answer: [advanced mathematics]-[calculus]-[L'Hopital's rule, limits, applications of derivatives]`

// KeywordGenerator produces search keywords for question images.
type KeywordGenerator struct {
	client inference.Client
}

func NewKeywordGenerator(client inference.Client) *KeywordGenerator {
	return &KeywordGenerator{client: client}
}

// KeywordsForImage returns keywords in the [subject]-[area]-[terms] form.
// Only blank answers are rejected; an answer in another format is returned as is.
// Failures of the model are returned as *Error.
func (g *KeywordGenerator) KeywordsForImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}
	return g.keywordsForEncodedImage(ctx, base64.StdEncoding.EncodeToString(image))
}

func (g *KeywordGenerator) keywordsForEncodedImage(ctx context.Context, imageB64 string) (string, error) {
	keywords, err := g.client.KeywordsForImage(ctx, imageB64, keywordPrompt)
	if err != nil {
		var transportErr *inference.TransportError
		if !errors.As(err, &transportErr) {
			transportErr = &inference.TransportError{Op: "keywords for image", Err: err}
		}
		return "", &Error{Err: transportErr}
	}
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return "", &Error{Err: ErrEmptyKeywords}
	}
	return keywords, nil
}
