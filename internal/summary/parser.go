package summary

import (
	"encoding/json"
	"strings"

	"github.com/at-ishikawa/studylog/internal/dbtype"
)

// UnstructuredMarker prefixes the general summary when the AI answer could not be parsed.
const UnstructuredMarker = "[unstructured summary] "

const (
	missingGeneralSummary   = "The AI did not provide an overview."
	missingKnowledgePoints  = "The AI could not summarize the knowledge points."
	unparsedKnowledgePoints = "The knowledge points could not be parsed, see the overview above."
)

// Content is the AI generated part of a DailySummary.
type Content struct {
	GeneralSummary         string            `json:"general_summary"`
	KnowledgePointsSummary dbtype.StringList `json:"knowledge_points_summary"`
}

// ParseResponse turns the raw answer of the summary prompt into Content. It never fails.
// The answer is read as a JSON object, then as the text between its first '{' and last '}'.
// When both fail, the raw answer is kept behind UnstructuredMarker and degraded is true.
func ParseResponse(raw string) (content Content, degraded bool) {
	if parsed, ok := decodeContent(strings.TrimSpace(raw)); ok {
		return parsed, false
	}
	if candidate, ok := extractObject(raw); ok {
		if parsed, ok := decodeContent(candidate); ok {
			return parsed, false
		}
	}
	return Content{
		GeneralSummary:         UnstructuredMarker + raw,
		KnowledgePointsSummary: dbtype.StringList{unparsedKnowledgePoints},
	}, true
}

func decodeContent(text string) (Content, bool) {
	if !strings.HasPrefix(text, "{") {
		return Content{}, false
	}
	var content Content
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return Content{}, false
	}
	if strings.TrimSpace(content.GeneralSummary) == "" {
		content.GeneralSummary = missingGeneralSummary
	}
	if len(content.KnowledgePointsSummary) == 0 {
		content.KnowledgePointsSummary = dbtype.StringList{missingKnowledgePoints}
	}
	return content, true
}

// extractObject returns the text from the first '{' to the last '}'.
func extractObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}
