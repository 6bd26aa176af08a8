// Package search finds stored questions by their generated keywords.
package search

import (
	"regexp"
	"strings"
)

// keywordsPattern matches [subject]-[area]-[term1, term2, ...].
var keywordsPattern = regexp.MustCompile(`^\[([^\]]*)\]\s*-\s*\[([^\]]*)\]\s*-\s*\[(.*)\]$`)

// Keywords is the parsed form of a question's keywords.
type Keywords struct {
	Subject string
	Area    string
	Terms   []string
}

// ParseKeywords reads keywords in the [subject]-[area]-[terms] form.
// It returns false for any other format.
func ParseKeywords(value string) (Keywords, bool) {
	matches := keywordsPattern.FindStringSubmatch(strings.TrimSpace(value))
	if matches == nil {
		return Keywords{}, false
	}
	return Keywords{
		Subject: strings.TrimSpace(matches[1]),
		Area:    strings.TrimSpace(matches[2]),
		Terms:   splitTerms(matches[3]),
	}, true
}

// splitTerms splits on ASCII and full-width commas and drops blanks.
func splitTerms(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == ';'
	})
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if term := strings.TrimSpace(field); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// words returns every term a keyword string can be matched by.
// Keywords in another format are matched by their comma separated parts.
func words(value string) []string {
	if k, ok := ParseKeywords(value); ok {
		if k.Area == "" {
			return k.Terms
		}
		return append([]string{k.Area}, k.Terms...)
	}
	return splitTerms(strings.NewReplacer("[", ",", "]", ",", "-", ",").Replace(value))
}
