package genai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ignite/optimizer/internal/domain"
)

// decodeRecommendations parses model output into recommendations. Models
// wrap JSON in markdown fences more often than not, and alternate between
// a bare array and a {"recommendations": [...]} object, so both shapes are
// accepted after fence stripping.
func decodeRecommendations(content string) ([]domain.RawRecommendation, error) {
	cleaned := stripFences(content)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var recs []wireRecommendation
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		var wrapper struct {
			Recommendations []wireRecommendation `json:"recommendations"`
		}
		if err2 := json.Unmarshal([]byte(cleaned), &wrapper); err2 != nil || wrapper.Recommendations == nil {
			return nil, &MalformedResponseError{Raw: truncate(cleaned, 500), Err: err}
		}
		recs = wrapper.Recommendations
	}

	out := make([]domain.RawRecommendation, 0, len(recs))
	for _, r := range recs {
		rec := r.toDomain()
		if rec.Title == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// wireRecommendation tolerates the loose typing models produce: numeric
// data points, string severities, and absent fields.
type wireRecommendation struct {
	Title          string                  `json:"title"`
	Description    string                  `json:"description"`
	Category       string                  `json:"category"`
	Severity       json.Number             `json:"severity"`
	ExpectedImpact string                  `json:"expected_impact"`
	DataPoints     []any                   `json:"data_points"`
	Action         domain.ActionDescriptor `json:"action"`
}

func (w wireRecommendation) toDomain() domain.RawRecommendation {
	severity := domain.SeverityQuickWin
	if n, err := w.Severity.Int64(); err == nil {
		if s := domain.Severity(n); s.Valid() {
			severity = s
		}
	}

	points := make([]string, 0, len(w.DataPoints))
	for _, p := range w.DataPoints {
		if s, ok := p.(string); ok {
			points = append(points, s)
		} else {
			points = append(points, fmt.Sprintf("%v", p))
		}
	}

	return domain.RawRecommendation{
		Title:          strings.TrimSpace(w.Title),
		Description:    strings.TrimSpace(w.Description),
		Category:       strings.TrimSpace(w.Category),
		Severity:       severity,
		ExpectedImpact: strings.TrimSpace(w.ExpectedImpact),
		DataPoints:     points,
		Action:         w.Action,
	}
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
