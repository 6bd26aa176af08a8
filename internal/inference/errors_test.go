package inference

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short text is kept", input: "not json", n: 500, want: "not json"},
		{name: "exact length is kept", input: "abc", n: 3, want: "abc"},
		{name: "long text is cut", input: "abcdef", n: 3, want: "abc..."},
		{name: "cuts on runes", input: "错题解析错题", n: 2, want: "错题..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.input, tt.n))
		})
	}
}

func TestNewMalformedResponseError(t *testing.T) {
	cause := fmt.Errorf("invalid character 'n'")
	err := NewMalformedResponseError(strings.Repeat("x", 600), cause)

	assert.Len(t, err.Excerpt, ExcerptLength+len("..."))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestTransportError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{name: "network failure", err: &TransportError{Op: "chat completion", Err: cause}, want: "chat completion: connection refused"},
		{name: "status failure", err: &TransportError{Op: "chat completion", StatusCode: 503, Err: cause}, want: "chat completion: response error 503: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			var target *TransportError
			assert.True(t, errors.As(fmt.Errorf("wrapped > %w", tt.err), &target))
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{input: "user", want: RoleUser, wantOK: true},
		{input: "assistant", want: RoleAssistant, wantOK: true},
		{input: "ai", want: RoleAssistant, wantOK: true},
		{input: "system", want: RoleSystem, wantOK: true},
		{input: "tool", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
