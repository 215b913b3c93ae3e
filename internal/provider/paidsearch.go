package provider

import (
	"context"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// Paid search accounts above these daily-spend levels get a faster analysis
// cadence; statistical significance arrives quickly at high volume.
const (
	paidSearchDailySpendDaily = 1000.0
	paidSearchLowSpendFloor   = 100.0
)

// PaidSearchData is the raw payload supplied by the paid search metrics
// collaborator for one ad account.
type PaidSearchData struct {
	DaysOfData       int
	TotalSpend       float64
	TotalClicks      int64
	TotalImpressions int64
	TotalConversions int64
	AvgCPA           float64
	AvgCTR           float64
	DailySpendAvg    float64
	Campaigns        []Row
	Keywords         []Row
	SearchTerms      []Row
}

// PaidSearchSource fetches raw paid search performance. Implementations
// return zeroed data, not an error, when the account has no history yet.
type PaidSearchSource interface {
	AccountPerformance(ctx context.Context, accountID, customerID string, days int) (PaidSearchData, error)
}

// PaidSearchAdapter summarizes search-ads account performance: campaign
// spend efficiency, keyword quality, and search-term waste.
type PaidSearchAdapter struct {
	source PaidSearchSource
}

func NewPaidSearchAdapter(source PaidSearchSource) *PaidSearchAdapter {
	return &PaidSearchAdapter{source: source}
}

func (a *PaidSearchAdapter) Source() domain.SourceType { return domain.SourcePaidSearch }
func (a *PaidSearchAdapter) PromptKey() string         { return "paid_search_main" }

func (a *PaidSearchAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.AccountPerformance(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("paid search performance for account %s: %w", accountID, err)
	}

	var convRate float64
	if data.TotalClicks > 0 {
		convRate = float64(data.TotalConversions) / float64(data.TotalClicks)
	}

	return MetricsSummary{
		Source:       domain.SourcePaidSearch,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   data.DaysOfData,
		Totals: Totals{
			Clicks:      data.TotalClicks,
			Impressions: data.TotalImpressions,
			Conversions: data.TotalConversions,
			Spend:       data.TotalSpend,
		},
		Rates: Rates{
			CTR:            data.AvgCTR,
			ConversionRate: convRate,
			AvgCPA:         data.AvgCPA,
			DailySpend:     data.DailySpendAvg,
		},
		Tables: []Table{
			{Name: "campaigns", Rows: clampRows(data.Campaigns, 10)},
			{Name: "keywords", Rows: clampRows(data.Keywords, 20)},
			{Name: "search_terms", Rows: clampRows(data.SearchTerms, 15)},
		},
	}, nil
}

func (a *PaidSearchAdapter) NeedsDailyAnalysis(s MetricsSummary) bool {
	return s.Rates.DailySpend >= paidSearchDailySpendDaily
}

// Fallback adds spend-efficiency rules on top of the shared thresholds.
func (a *PaidSearchAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	var recs []domain.RawRecommendation

	if s.Totals.Spend >= paidSearchLowSpendFloor && s.Totals.Conversions == 0 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Review Campaigns With Spend but No Conversions",
			Description:    fmt.Sprintf("The account spent $%.2f over the last %d days without recording a conversion. Verify conversion tracking, then pause or restructure the worst-performing campaigns.", s.Totals.Spend, s.LookbackDays),
			Category:       "budget",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Eliminate wasted spend",
			DataPoints:     []string{fmt.Sprintf("Spend: $%.2f", s.Totals.Spend), "Conversions: 0"},
			Action:         domain.ActionDescriptor{Type: "review", Target: "conversion_tracking"},
		})
	}

	if s.Totals.Conversions > 0 && s.Rates.AvgCPA > 0 && s.Totals.Spend > 0 {
		// CPA eating more than half the average daily budget signals a
		// bidding problem worth a look even without model output.
		if s.Rates.DailySpend > 0 && s.Rates.AvgCPA > s.Rates.DailySpend/2 {
			recs = append(recs, domain.RawRecommendation{
				Title:          "Reduce Cost per Acquisition",
				Description:    fmt.Sprintf("Average CPA of $%.2f is high relative to a $%.2f average daily budget. Tighten match types and add negative keywords from the search-terms report.", s.Rates.AvgCPA, s.Rates.DailySpend),
				Category:       "bidding",
				Severity:       domain.SeverityHighImpact,
				ExpectedImpact: "Reduce CPA by 15-20%",
				DataPoints:     []string{fmt.Sprintf("Avg CPA: $%.2f", s.Rates.AvgCPA)},
				Action:         domain.ActionDescriptor{Type: "add_negative", Target: "search_terms"},
			})
		}
	}

	return recs
}
