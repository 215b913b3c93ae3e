package provider

import (
	"context"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// Sites above this weekly click volume warrant daily analysis.
const organicWeeklyClicksDaily = 5000

// OrganicSearchData is the raw payload supplied by the search console
// metrics collaborator for one verified site.
type OrganicSearchData struct {
	DaysOfData       int
	TotalClicks      int64
	TotalImpressions int64
	AvgCTR           float64
	AvgPosition      float64
	TopPages         []Row
	TopQueries       []Row
	LowCTRQueries    []Row
}

// OrganicSearchSource fetches raw organic search performance for a site URL.
type OrganicSearchSource interface {
	SitePerformance(ctx context.Context, accountID, siteURL string, days int) (OrganicSearchData, error)
}

// OrganicSearchAdapter summarizes organic search performance: rankings,
// click-through rates, and query-level opportunities.
type OrganicSearchAdapter struct {
	source OrganicSearchSource
}

func NewOrganicSearchAdapter(source OrganicSearchSource) *OrganicSearchAdapter {
	return &OrganicSearchAdapter{source: source}
}

func (a *OrganicSearchAdapter) Source() domain.SourceType { return domain.SourceOrganicSearch }
func (a *OrganicSearchAdapter) PromptKey() string         { return "organic_search_main" }

func (a *OrganicSearchAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.SitePerformance(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("organic search performance for site %s: %w", sourceID, err)
	}

	return MetricsSummary{
		Source:       domain.SourceOrganicSearch,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   data.DaysOfData,
		Totals: Totals{
			Clicks:      data.TotalClicks,
			Impressions: data.TotalImpressions,
		},
		Rates: Rates{
			CTR:         data.AvgCTR,
			AvgPosition: data.AvgPosition,
		},
		Tables: []Table{
			{Name: "top_pages", Rows: clampRows(data.TopPages, 10)},
			{Name: "top_queries", Rows: clampRows(data.TopQueries, 15)},
			{Name: "low_ctr_queries", Rows: clampRows(data.LowCTRQueries, 10)},
		},
	}, nil
}

func (a *OrganicSearchAdapter) NeedsDailyAnalysis(s MetricsSummary) bool {
	if s.DaysOfData == 0 {
		return false
	}
	weekly := float64(s.Totals.Clicks) / float64(s.DaysOfData) * 7
	return weekly >= organicWeeklyClicksDaily
}

// Fallback adds query- and page-level rules on top of the shared
// position/CTR thresholds.
func (a *OrganicSearchAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	var recs []domain.RawRecommendation

	if low := s.Table("low_ctr_queries").Rows; len(low) > 0 {
		points := make([]string, 0, 3)
		targets := make([]string, 0, 10)
		for i, q := range low {
			name, _ := q["query"].(string)
			if i < 3 {
				points = append(points, fmt.Sprintf("%v: %v impressions, %v CTR", name, q["impressions"], q["ctr"]))
			}
			if i < 10 {
				targets = append(targets, name)
			}
		}
		recs = append(recs, domain.RawRecommendation{
			Title:          "Optimize High-Impression, Low-CTR Queries",
			Description:    fmt.Sprintf("Found %d queries with high impressions but low clicks. These are quick wins for traffic growth.", len(low)),
			Category:       "keywords",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Increase clicks by 20-30%",
			DataPoints:     points,
			Action:         domain.ActionDescriptor{Type: "optimize", Target: "meta_descriptions", Targets: targets},
		})
	}

	// Pages sitting at positions 4-10 double their traffic when they
	// reach page 1.
	var pageTwo []Row
	for _, p := range s.Table("top_pages").Rows {
		if pos, ok := p.Float("position"); ok && pos >= 4 && pos <= 10 {
			pageTwo = append(pageTwo, p)
		}
	}
	if len(pageTwo) > 0 {
		points := make([]string, 0, 3)
		targets := make([]string, 0, 5)
		for i, p := range pageTwo {
			name, _ := p["page"].(string)
			if i < 3 {
				points = append(points, fmt.Sprintf("%v: position %v", name, p["position"]))
			}
			if i < 5 {
				targets = append(targets, name)
			}
		}
		recs = append(recs, domain.RawRecommendation{
			Title:          "Push Page 2 Rankings to Page 1",
			Description:    fmt.Sprintf("Found %d pages ranking 4-10. Small content improvements can move these to page 1.", len(pageTwo)),
			Category:       "content",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Double traffic for improved pages",
			DataPoints:     points,
			Action:         domain.ActionDescriptor{Type: "optimize", Target: "content", Targets: targets},
		})
	}

	return recs
}
