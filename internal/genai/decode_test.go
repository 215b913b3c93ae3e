package genai

import (
	"errors"
	"testing"

	"github.com/ignite/optimizer/internal/domain"
)

func TestDecodeRecommendationsBareArray(t *testing.T) {
	content := `[
		{
			"title": "Add Negative Keywords",
			"description": "Search terms show irrelevant queries consuming budget.",
			"category": "negatives",
			"severity": 2,
			"expected_impact": "Reduce wasted spend by 10%",
			"data_points": ["$230 on irrelevant terms", 42],
			"action": {"type": "add_negative", "targets": ["free plumbing"]}
		}
	]`

	recs, err := decodeRecommendations(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Severity != domain.SeverityHighImpact {
		t.Errorf("severity = %d, want 2", rec.Severity)
	}
	if len(rec.DataPoints) != 2 || rec.DataPoints[1] != "42" {
		t.Errorf("data points = %v, want numeric point coerced to string", rec.DataPoints)
	}
	if rec.Action.Type != "add_negative" {
		t.Errorf("action type = %q", rec.Action.Type)
	}
}

func TestDecodeRecommendationsWrapperObject(t *testing.T) {
	content := `{"recommendations": [{"title": "Raise Budget", "severity": 3}]}`

	recs, err := decodeRecommendations(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Raise Budget" {
		t.Errorf("got %+v", recs)
	}
}

func TestDecodeRecommendationsStripsFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"json fence", "```json\n[{\"title\": \"T\"}]\n```"},
		{"plain fence", "```\n[{\"title\": \"T\"}]\n```"},
		{"no fence", `[{"title": "T"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := decodeRecommendations(tt.content)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(recs) != 1 || recs[0].Title != "T" {
				t.Errorf("got %+v", recs)
			}
		})
	}
}

func TestDecodeRecommendationsDefaultsAndDrops(t *testing.T) {
	content := `[
		{"title": "Valid", "severity": 99},
		{"title": "Also Valid"},
		{"description": "no title, dropped"}
	]`

	recs, err := decodeRecommendations(content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Severity != domain.SeverityQuickWin {
			t.Errorf("%s: severity = %d, want quick-win default", rec.Title, rec.Severity)
		}
	}
}

func TestDecodeRecommendationsMalformed(t *testing.T) {
	_, err := decodeRecommendations("I suggest you improve your ads.")
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedResponseError", err)
	}

	if _, err := decodeRecommendations("```json\n```"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("empty fence err = %v, want ErrEmptyResponse", err)
	}
}
