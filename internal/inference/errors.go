package inference

import (
	"fmt"
)

// ExcerptLength is the number of runes of a raw response kept in a MalformedResponseError.
const ExcerptLength = 500

// TransportError reports that the AI model could not be reached or answered with a failure status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: response error %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports an answer that is not the JSON shape that was asked for.
type MalformedResponseError struct {
	// Excerpt is the beginning of the raw answer.
	Excerpt string
	Err     error
}

// NewMalformedResponseError keeps an excerpt of raw together with the parse error.
func NewMalformedResponseError(raw string, err error) *MalformedResponseError {
	return &MalformedResponseError{
		Excerpt: Excerpt(raw, ExcerptLength),
		Err:     err,
	}
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response %q: %v", e.Excerpt, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Excerpt returns the first n runes of s, followed by "..." when s is longer.
func Excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
