package provider

import (
	"context"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// SocialAdsData is the raw payload supplied by the social-ads collaborator
// for one ad account.
type SocialAdsData struct {
	DaysOfData       int
	TotalSpend       float64
	TotalImpressions int64
	TotalClicks      int64
	TotalConversions int64
	TotalRevenue     float64

	// Campaigns holds per-campaign rows with at least name, status, spend,
	// impressions, clicks, conversions, and frequency.
	Campaigns []Row
	// Audiences holds per-audience reach and result rows.
	Audiences []Row
	// Creatives holds per-creative performance rows.
	Creatives []Row
}

// SocialAdsSource fetches raw social ads account performance.
type SocialAdsSource interface {
	AdAccountPerformance(ctx context.Context, accountID, adAccountID string, days int) (SocialAdsData, error)
}

// SocialAdsAdapter summarizes a social ads account: spend efficiency,
// creative fatigue, and audience performance.
type SocialAdsAdapter struct {
	source SocialAdsSource
}

func NewSocialAdsAdapter(source SocialAdsSource) *SocialAdsAdapter {
	return &SocialAdsAdapter{source: source}
}

func (a *SocialAdsAdapter) Source() domain.SourceType { return domain.SourceSocialAds }
func (a *SocialAdsAdapter) PromptKey() string         { return "social_ads_main" }

func (a *SocialAdsAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.AdAccountPerformance(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("social ads account %s: %w", sourceID, err)
	}

	var ctr, convRate, cpa, dailySpend float64
	if data.TotalImpressions > 0 {
		ctr = float64(data.TotalClicks) / float64(data.TotalImpressions)
	}
	if data.TotalClicks > 0 {
		convRate = float64(data.TotalConversions) / float64(data.TotalClicks)
	}
	if data.TotalConversions > 0 {
		cpa = data.TotalSpend / float64(data.TotalConversions)
	}
	if data.DaysOfData > 0 {
		dailySpend = data.TotalSpend / float64(data.DaysOfData)
	}

	return MetricsSummary{
		Source:       domain.SourceSocialAds,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   data.DaysOfData,
		Totals: Totals{
			Impressions: data.TotalImpressions,
			Clicks:      data.TotalClicks,
			Conversions: data.TotalConversions,
			Spend:       data.TotalSpend,
			Revenue:     data.TotalRevenue,
		},
		Rates: Rates{
			CTR:            ctr,
			ConversionRate: convRate,
			AvgCPA:         cpa,
			DailySpend:     dailySpend,
		},
		Tables: []Table{
			{Name: "campaigns", Rows: clampRows(data.Campaigns, 10)},
			{Name: "audiences", Rows: clampRows(data.Audiences, 10)},
			{Name: "creatives", Rows: clampRows(data.Creatives, 10)},
		},
	}, nil
}

func (a *SocialAdsAdapter) NeedsDailyAnalysis(s MetricsSummary) bool {
	return s.Rates.DailySpend >= 1000
}

// Fallback audits spend efficiency and creative fatigue from the campaign
// and creative tables.
func (a *SocialAdsAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	var recs []domain.RawRecommendation

	if s.Totals.Spend >= 100 && s.Totals.Conversions == 0 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Spend Is Producing No Conversions",
			Description:    fmt.Sprintf("$%.2f spent over %d days with zero tracked conversions. Verify conversion tracking first, then pause the worst campaigns while you rebuild targeting.", s.Totals.Spend, s.DaysOfData),
			Category:       "budget",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Stop unproductive spend immediately",
			DataPoints: []string{
				fmt.Sprintf("Spend: $%.2f", s.Totals.Spend),
				"Conversions: 0",
			},
			Action: domain.ActionDescriptor{Type: "pause", Target: "campaign"},
		})
	}

	if s.Totals.Impressions >= 1000 && s.Rates.CTR < 0.01 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Refresh Underperforming Ad Creative",
			Description:    fmt.Sprintf("Account CTR is %.2f%% across %d impressions, below the 1%% line where social creative is considered fatigued. Rotate in new creative variants and retire the lowest performers.", s.Rates.CTR*100, s.Totals.Impressions),
			Category:       "creative",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Lift CTR toward the 1-2% range",
			DataPoints: []string{
				fmt.Sprintf("CTR: %.2f%%", s.Rates.CTR*100),
				fmt.Sprintf("Impressions: %d", s.Totals.Impressions),
			},
			Action: domain.ActionDescriptor{Type: "refresh_creative", Target: "creatives"},
		})
	}

	var fatigued []string
	for _, row := range s.Table("campaigns").Rows {
		freq, ok := row.Float("frequency")
		if !ok || freq < 4 {
			continue
		}
		if name, ok := row["name"].(string); ok {
			fatigued = append(fatigued, name)
		}
	}
	if len(fatigued) > 0 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Reduce Audience Frequency on Saturated Campaigns",
			Description:    fmt.Sprintf("%d campaigns are showing ads more than 4 times per person. Broaden the audience or cap frequency before CPMs climb further.", len(fatigued)),
			Category:       "audience",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Lower CPMs and slow creative burnout",
			DataPoints:     []string{fmt.Sprintf("Saturated campaigns: %d", len(fatigued))},
			Action:         domain.ActionDescriptor{Type: "adjust_audience", Target: "campaign", Targets: fatigued},
		})
	}

	return recs
}
