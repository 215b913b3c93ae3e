package insights

import (
	"math"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/provider"
)

// Base confidence depends on where the recommendation came from. Model
// output starts higher; rule output starts low and earns boosts from
// profile completeness.
const (
	confidenceBaseModel    = 0.75
	confidenceBaseFallback = 0.50
)

// scoreConfidence rates how much trust a recommendation deserves given the
// evidence behind it. History depth and volume reduce it multiplicatively;
// complex actions reduce it further; severity nudges it at the end. The
// result is clamped to [0,1] and rounded to two decimals.
func scoreConfidence(rec domain.RawRecommendation, s provider.MetricsSummary, fromModel bool) float64 {
	var confidence float64
	if fromModel {
		confidence = confidenceBaseModel
	} else {
		confidence = confidenceBaseFallback + completenessBoost(s.Profile)
	}

	if s.DaysOfData < 30 {
		confidence *= 0.8
	}
	if s.DaysOfData < 14 {
		confidence *= 0.7
	}
	if s.DaysOfData < 7 {
		confidence *= 0.5
	}

	// Volume reductions apply only to the counters the channel tracks.
	if s.Totals.Spend > 0 {
		switch {
		case s.Totals.Spend < 100:
			confidence *= 0.6
		case s.Totals.Spend < 500:
			confidence *= 0.8
		}
	}
	if s.Totals.Sessions > 0 {
		switch {
		case s.Totals.Sessions < 100:
			confidence *= 0.5
		case s.Totals.Sessions < 1000:
			confidence *= 0.8
		}
	}
	if s.Totals.Clicks > 0 {
		switch {
		case s.Totals.Clicks < 50:
			confidence *= 0.5
		case s.Totals.Clicks < 500:
			confidence *= 0.8
		}
	}
	if s.Totals.Impressions > 0 && s.Totals.Impressions < 1000 {
		confidence *= 0.7
	}

	switch rec.Action.Type {
	case "restructure", "change_bid_strategy", "major_change":
		confidence *= 0.85
	}

	switch rec.Severity {
	case domain.SeverityCritical:
		confidence = math.Min(1.0, confidence*1.1)
	case domain.SeverityQuickWin:
		confidence = math.Min(1.0, confidence*1.05)
	}

	confidence = math.Min(1.0, math.Max(0.0, confidence))
	return math.Round(confidence*100) / 100
}

// completenessBoost rewards rule-based recommendations backed by a filled-in
// profile; thin profiles keep the low base.
func completenessBoost(p *provider.ProfileSignals) float64 {
	if p == nil {
		return 0
	}
	var boost float64
	if p.Name != "" && p.PrimaryCategory != "" && p.Phone != "" && p.Website != "" {
		boost += 0.05
	}
	switch {
	case len(p.Description) >= 200:
		boost += 0.10
	case len(p.Description) >= 100:
		boost += 0.05
	}
	switch {
	case p.ReviewsCount >= 50:
		boost += 0.10
	case p.ReviewsCount >= 20:
		boost += 0.05
	}
	if p.PhotosCount >= 10 {
		boost += 0.05
	}
	if p.PostsCount >= 5 {
		boost += 0.05
	}
	return boost
}
