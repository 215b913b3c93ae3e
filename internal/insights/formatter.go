package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/ignite/optimizer/internal/domain"
)

// insufficientDataSummary is returned verbatim when a channel has no usable
// data; dashboards key off the exact string.
const insufficientDataSummary = "Insufficient data available for analysis."

// Stats summarizes a batch for dashboard badges.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	Critical   int `json:"critical"`
	HighImpact int `json:"high_impact"`
	QuickWins  int `json:"quick_wins"`
}

// Response is the API-facing shape of a recommendation batch.
type Response struct {
	Summary         string                  `json:"summary"`
	Recommendations []domain.Recommendation `json:"recommendations"`
	Stats           Stats                   `json:"stats"`
	GeneratedAt     time.Time               `json:"generated_at"`
	FromCache       bool                    `json:"from_cache"`
}

// formatBatch orders a batch by urgency and writes the executive summary.
func formatBatch(recs []domain.Recommendation, fromCache bool) Response {
	sorted := make([]domain.Recommendation, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity < sorted[j].Severity
	})

	stats := Stats{Total: len(sorted)}
	generatedAt := time.Now().UTC()
	for i, r := range sorted {
		if i == 0 && !r.CreatedAt.IsZero() {
			generatedAt = r.CreatedAt
		}
		if r.Status == domain.StatusOpen {
			stats.Open++
		}
		switch r.Severity {
		case domain.SeverityCritical:
			stats.Critical++
		case domain.SeverityHighImpact:
			stats.HighImpact++
		case domain.SeverityQuickWin:
			stats.QuickWins++
		}
	}

	return Response{
		Summary:         batchSummary(stats),
		Recommendations: sorted,
		Stats:           stats,
		GeneratedAt:     generatedAt,
		FromCache:       fromCache,
	}
}

func batchSummary(stats Stats) string {
	switch {
	case stats.Total == 0:
		return "No significant optimization opportunities found at this time. Your account is performing well."
	case stats.Critical > 0:
		return fmt.Sprintf("Found %d critical issue(s) requiring immediate attention, plus %d additional optimization opportunities.",
			stats.Critical, stats.Total-stats.Critical)
	case stats.HighImpact > 0:
		return fmt.Sprintf("Identified %d high-impact opportunity(ies) and %d additional recommendations to improve your performance.",
			stats.HighImpact, stats.Total-stats.HighImpact)
	default:
		return fmt.Sprintf("Found %d optimization opportunities to improve your performance.", stats.Total)
	}
}

// insufficientDataResponse is the short-circuit result for channels with no
// usable data. Nothing is stored; the open batch, if any, is untouched.
func insufficientDataResponse() Response {
	return Response{
		Summary:         insufficientDataSummary,
		Recommendations: []domain.Recommendation{},
		GeneratedAt:     time.Now().UTC(),
	}
}

// GroupBySeverity buckets a batch for UI display.
func GroupBySeverity(recs []domain.Recommendation) map[string][]domain.Recommendation {
	groups := map[string][]domain.Recommendation{
		"critical":    {},
		"high_impact": {},
		"quick_wins":  {},
		"long_term":   {},
	}
	for _, r := range recs {
		switch r.Severity {
		case domain.SeverityCritical:
			groups["critical"] = append(groups["critical"], r)
		case domain.SeverityHighImpact:
			groups["high_impact"] = append(groups["high_impact"], r)
		case domain.SeverityQuickWin:
			groups["quick_wins"] = append(groups["quick_wins"], r)
		default:
			groups["long_term"] = append(groups["long_term"], r)
		}
	}
	return groups
}
