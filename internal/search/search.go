package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/at-ishikawa/studylog/internal/question"
)

// KeywordSource turns a question image into keywords.
type KeywordSource interface {
	KeywordsForImage(ctx context.Context, image []byte) (string, error)
}

// Filters maps every subject found in keywords to its areas, sorted.
type Filters map[string][]string

// Query describes a search. Text and Image are combined when both are set.
// Subject and Area restrict the candidates when not empty.
type Query struct {
	Text    string
	Image   []byte
	Subject string
	Area    string
}

// Result is a matching question with the terms it matched.
type Result struct {
	Question     question.AnalyzedQuestion `json:"question"`
	Score        int                       `json:"score"`
	MatchedTerms []string                  `json:"matched_terms"`
}

// Response is the outcome of a search.
type Response struct {
	// ImageKeywords are the keywords generated from the query image, if any.
	ImageKeywords string   `json:"image_keywords,omitempty"`
	Results       []Result `json:"results"`
}

type Service struct {
	questions question.Repository
	keywords  KeywordSource
	limit     int
}

// NewService creates a Service returning at most limit results per search.
func NewService(questions question.Repository, keywords KeywordSource, limit int) *Service {
	return &Service{
		questions: questions,
		keywords:  keywords,
		limit:     limit,
	}
}

// Filters lists the subjects and areas of every question with well formed keywords.
func (s *Service) Filters(ctx context.Context) (Filters, error) {
	entries, err := s.questions.FindAllKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.FindAllKeywords() > %w", err)
	}

	seen := make(map[string]map[string]struct{})
	for _, entry := range entries {
		k, ok := ParseKeywords(entry.Keywords)
		if !ok || k.Subject == "" {
			continue
		}
		if seen[k.Subject] == nil {
			seen[k.Subject] = make(map[string]struct{})
		}
		if k.Area != "" {
			seen[k.Subject][k.Area] = struct{}{}
		}
	}

	filters := make(Filters, len(seen))
	for subject, areas := range seen {
		list := make([]string, 0, len(areas))
		for area := range areas {
			list = append(list, area)
		}
		sort.Strings(list)
		filters[subject] = list
	}
	return filters, nil
}

// Search ranks questions by how many query terms their keywords match, best first.
// Without any term, every question passing the filters is returned, newest first.
func (s *Service) Search(ctx context.Context, query Query) (*Response, error) {
	response := &Response{Results: []Result{}}

	terms := splitTerms(query.Text)
	if len(query.Image) > 0 {
		imageKeywords, err := s.keywords.KeywordsForImage(ctx, query.Image)
		if err != nil {
			return nil, fmt.Errorf("KeywordsForImage() > %w", err)
		}
		response.ImageKeywords = imageKeywords
		terms = append(terms, words(imageKeywords)...)
	}
	terms = dedupe(terms)

	entries, err := s.questions.FindAllKeywords(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.FindAllKeywords() > %w", err)
	}

	type candidate struct {
		id      int64
		score   int
		matched []string
	}
	var candidates []candidate
	for _, entry := range entries {
		k, parsed := ParseKeywords(entry.Keywords)
		if query.Subject != "" && !(parsed && strings.EqualFold(k.Subject, query.Subject)) {
			continue
		}
		if query.Area != "" && !(parsed && strings.EqualFold(k.Area, query.Area)) {
			continue
		}

		matched := match(terms, words(entry.Keywords))
		if len(terms) > 0 && len(matched) == 0 {
			continue
		}
		candidates = append(candidates, candidate{id: entry.ID, score: len(matched), matched: matched})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id > candidates[j].id
	})
	if s.limit > 0 && len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}
	if len(candidates) == 0 {
		return response, nil
	}

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.id)
	}
	questions, err := s.questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("questions.FindByIDs() > %w", err)
	}
	byID := make(map[int64]question.AnalyzedQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for _, c := range candidates {
		q, ok := byID[c.id]
		if !ok {
			continue
		}
		response.Results = append(response.Results, Result{Question: q, Score: c.score, MatchedTerms: c.matched})
	}
	return response, nil
}

// match returns the query terms contained in, or containing, one of the candidate words.
func match(terms, candidates []string) []string {
	matched := []string{}
	for _, term := range terms {
		needle := strings.ToLower(term)
		for _, candidate := range candidates {
			c := strings.ToLower(candidate)
			if strings.Contains(c, needle) || strings.Contains(needle, c) {
				matched = append(matched, term)
				break
			}
		}
	}
	return matched
}

func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, term)
	}
	return unique
}
