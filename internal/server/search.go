package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/at-ishikawa/studylog/internal/search"
)

type keywordsResponse struct {
	Keywords string `json:"keywords"`
}

func (s *Server) generateKeywords(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		handleError(w, r, err)
		return
	}
	image, err := formFile(r, "image")
	if err != nil {
		handleError(w, r, err)
		return
	}

	keywords, err := s.deps.Keywords.KeywordsForImage(r.Context(), image)
	if err != nil {
		handleError(w, r, fmt.Errorf("KeywordsForImage() > %w", err))
		return
	}
	writeJSON(w, http.StatusOK, keywordsResponse{Keywords: keywords})
}

func (s *Server) searchFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.deps.Search.Filters(r.Context())
	if err != nil {
		handleError(w, r, fmt.Errorf("Filters() > %w", err))
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

// searchFilter narrows a search to one subject, and optionally one of its areas.
type searchFilter struct {
	Subject string `json:"subject"`
	Area    string `json:"area"`
}

type searchResultView struct {
	Question     questionView `json:"question"`
	Score        int          `json:"score"`
	MatchedTerms []string     `json:"matched_terms"`
}

type searchResponse struct {
	ImageKeywords string             `json:"image_keywords,omitempty"`
	Results       []searchResultView `json:"results"`
}

// search reads the multipart fields query, image and filters.
// filters is a JSON object such as {"subject":"math","area":"calculus"}.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		handleError(w, r, err)
		return
	}
	image, err := optionalFormFile(r, "image")
	if err != nil {
		handleError(w, r, err)
		return
	}
	query := search.Query{
		Text:  strings.TrimSpace(r.FormValue("query")),
		Image: image,
	}
	if value := strings.TrimSpace(r.FormValue("filters")); value != "" {
		var filter searchFilter
		if err := json.Unmarshal([]byte(value), &filter); err != nil {
			handleError(w, r, badRequest("invalid filters: %v", err))
			return
		}
		query.Subject = filter.Subject
		query.Area = filter.Area
	}
	if query.Text == "" && len(query.Image) == 0 {
		handleError(w, r, badRequest("query or image is required"))
		return
	}

	response, err := s.deps.Search.Search(r.Context(), query)
	if err != nil {
		handleError(w, r, fmt.Errorf("Search() > %w", err))
		return
	}
	results := make([]searchResultView, 0, len(response.Results))
	for _, result := range response.Results {
		results = append(results, searchResultView{
			Question:     newQuestionView(result.Question),
			Score:        result.Score,
			MatchedTerms: result.MatchedTerms,
		})
	}
	writeJSON(w, http.StatusOK, searchResponse{ImageKeywords: response.ImageKeywords, Results: results})
}
