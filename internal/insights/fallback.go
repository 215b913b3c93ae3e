package insights

import (
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/provider"
)

// Shared fallback thresholds. The rules fire only when the driving volume
// metric is present, so a channel that does not track a rate never trips
// the rule on a zero value.
const (
	fallbackEngagementFloor = 0.40
	fallbackConversionFloor = 0.02
	fallbackPositionCeiling = 10.0
	fallbackCTRFloor        = 0.02
	fallbackBounceCeiling   = 0.70
)

// fallbackRecommendations produces deterministic recommendations when
// generation is unavailable. Shared threshold rules run first, then the
// adapter's channel-specific rules when it has any. An empty result is
// valid; it becomes an empty batch.
func fallbackRecommendations(adapter provider.Adapter, s provider.MetricsSummary) []domain.RawRecommendation {
	recs := sharedFallbackRules(s)
	if ruler, ok := adapter.(provider.FallbackRuler); ok {
		recs = append(recs, ruler.Fallback(s)...)
	}
	return recs
}

func sharedFallbackRules(s provider.MetricsSummary) []domain.RawRecommendation {
	var recs []domain.RawRecommendation

	if s.Totals.Sessions > 0 && s.Rates.EngagementRate > 0 && s.Rates.EngagementRate < fallbackEngagementFloor {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Improve User Engagement",
			Description:    fmt.Sprintf("Engagement rate of %.1f%% is below the 40%% benchmark. Review page load speed, content relevance, and internal linking on your highest-traffic pages.", s.Rates.EngagementRate*100),
			Category:       "engagement",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Increase engagement rate by 10-15%",
			DataPoints: []string{
				fmt.Sprintf("Engagement rate: %.1f%%", s.Rates.EngagementRate*100),
				fmt.Sprintf("Sessions: %d", s.Totals.Sessions),
			},
			Action: domain.ActionDescriptor{Type: "optimize", Target: "engagement"},
		})
	}

	// Only channels that attribute conversions can make a funnel claim;
	// profile and listing channels never set a meaningful conversion rate.
	conversionTracked := s.Source == domain.SourcePaidSearch || s.Source == domain.SourceSocialAds ||
		s.Rates.EngagementRate > 0
	if conversionTracked && (s.Totals.Clicks > 0 || s.Totals.Sessions > 0) && s.Rates.ConversionRate < fallbackConversionFloor {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Optimize Conversion Funnel",
			Description:    fmt.Sprintf("Conversion rate of %.2f%% is below the 2%% benchmark. Audit the funnel for friction: form length, page speed, and trust signals at the decision step.", s.Rates.ConversionRate*100),
			Category:       "conversions",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Increase conversion rate toward 2%+",
			DataPoints: []string{
				fmt.Sprintf("Conversion rate: %.2f%%", s.Rates.ConversionRate*100),
				fmt.Sprintf("Conversions: %d", s.Totals.Conversions),
			},
			Action: domain.ActionDescriptor{Type: "optimize", Target: "conversion_funnel"},
		})
	}

	if s.Totals.Impressions > 0 && s.Rates.AvgPosition > fallbackPositionCeiling {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Improve Content Quality for Better Rankings",
			Description:    fmt.Sprintf("Average position of %.1f means most impressions happen beyond page 1. Deepen content on priority pages and build internal links to them.", s.Rates.AvgPosition),
			Category:       "rankings",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Move priority pages onto page 1",
			DataPoints: []string{
				fmt.Sprintf("Avg position: %.1f", s.Rates.AvgPosition),
				fmt.Sprintf("Impressions: %d", s.Totals.Impressions),
			},
			Action: domain.ActionDescriptor{Type: "optimize", Target: "content"},
		})
	}

	// Meta-title rule is an organic signal; AvgPosition gates it so paid
	// and social CTRs never trip it.
	if s.Totals.Impressions > 0 && s.Rates.AvgPosition > 0 && s.Rates.CTR < fallbackCTRFloor {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Improve Meta Titles and Descriptions",
			Description:    fmt.Sprintf("Site-wide CTR of %.2f%% is below the 2%% benchmark. Rewrite titles and meta descriptions on high-impression pages to match search intent.", s.Rates.CTR*100),
			Category:       "ctr_optimization",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Increase CTR by 20-30%",
			DataPoints: []string{
				fmt.Sprintf("CTR: %.2f%%", s.Rates.CTR*100),
				fmt.Sprintf("Impressions: %d", s.Totals.Impressions),
			},
			Action: domain.ActionDescriptor{Type: "optimize", Target: "meta_tags"},
		})
	}

	if pages := highBouncePages(s); len(pages) > 0 {
		points := make([]string, 0, 3)
		for i, p := range pages {
			if i == 3 {
				break
			}
			points = append(points, p)
		}
		recs = append(recs, domain.RawRecommendation{
			Title:          "Reduce Bounce Rate on Top Pages",
			Description:    fmt.Sprintf("%d high-traffic pages bounce above 70%%. Check above-the-fold content, load time, and whether the page delivers what its traffic was promised.", len(pages)),
			Category:       "content",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Reduce bounce rate by 10-20%",
			DataPoints:     points,
			Action:         domain.ActionDescriptor{Type: "optimize", Target: "pages", Targets: pages},
		})
	}

	return recs
}

func highBouncePages(s provider.MetricsSummary) []string {
	var pages []string
	for _, row := range s.Table("top_pages").Rows {
		bounce, ok := row.Float("bounce_rate")
		if !ok || bounce < fallbackBounceCeiling {
			continue
		}
		if page, ok := row["page"].(string); ok {
			pages = append(pages, page)
		}
	}
	return pages
}
