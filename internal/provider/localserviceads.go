package provider

import (
	"context"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// LocalServiceAdsData is the raw payload supplied by the local-services
// collaborator for one ads profile.
type LocalServiceAdsData struct {
	PrimaryCategory string
	Categories      []string
	ServiceAreas    []string
	Rating          float64
	ReviewsCount    int
	WeeklyBudget    float64
	Hours           string
	Website         string
	Phone           string
	ResponseMinutes int
	MonthlyLeadGoal int

	DaysOfData   int
	TotalLeads   int64
	ChargedLeads int64
	TotalSpend   float64
}

// LocalServiceAdsSource fetches raw local-services ads profile data.
type LocalServiceAdsSource interface {
	AdsProfile(ctx context.Context, accountID, profileID string, days int) (LocalServiceAdsData, error)
}

// LocalServiceAdsAdapter summarizes a local-services ads profile: lead
// volume against goal, budget pacing, and the reputation signals that gate
// ad serving in this channel.
type LocalServiceAdsAdapter struct {
	source LocalServiceAdsSource
}

func NewLocalServiceAdsAdapter(source LocalServiceAdsSource) *LocalServiceAdsAdapter {
	return &LocalServiceAdsAdapter{source: source}
}

func (a *LocalServiceAdsAdapter) Source() domain.SourceType { return domain.SourceLocalServiceAds }
func (a *LocalServiceAdsAdapter) PromptKey() string         { return "local_service_ads_main" }

func (a *LocalServiceAdsAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.AdsProfile(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("local service ads profile %s: %w", sourceID, err)
	}

	var convRate float64
	if data.TotalLeads > 0 {
		convRate = float64(data.ChargedLeads) / float64(data.TotalLeads)
	}

	return MetricsSummary{
		Source:       domain.SourceLocalServiceAds,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   data.DaysOfData,
		Totals: Totals{
			Leads:       data.TotalLeads,
			Conversions: data.ChargedLeads,
			Spend:       data.TotalSpend,
		},
		Rates: Rates{ConversionRate: convRate},
		Profile: &ProfileSignals{
			PrimaryCategory: data.PrimaryCategory,
			Categories:      data.Categories,
			ServiceAreas:    data.ServiceAreas,
			Rating:          data.Rating,
			ReviewsCount:    data.ReviewsCount,
			WeeklyBudget:    data.WeeklyBudget,
			Hours:           data.Hours,
			Website:         data.Website,
			Phone:           data.Phone,
			ResponseMinutes: data.ResponseMinutes,
			MonthlyLeadGoal: data.MonthlyLeadGoal,
		},
	}, nil
}

func (a *LocalServiceAdsAdapter) NeedsDailyAnalysis(s MetricsSummary) bool {
	days := s.DaysOfData
	if days < 1 {
		days = 1
	}
	return s.Totals.Spend/float64(days) >= 100
}

// Fallback audits the signals that most directly gate lead volume in this
// channel: rating, review count, coverage, and responsiveness.
func (a *LocalServiceAdsAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	p := s.Profile
	if p == nil {
		return nil
	}
	var recs []domain.RawRecommendation

	if p.Rating > 0 && p.Rating < 4.7 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Raise Your Rating Above 4.7",
			Description:    fmt.Sprintf("A %.1f-star rating trails the 4.7+ level where local-services placement improves noticeably. Prioritize review recovery for recent jobs.", p.Rating),
			Category:       "reviews",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Improve ad placement and lead quality",
			DataPoints:     []string{fmt.Sprintf("Rating: %.1f", p.Rating), fmt.Sprintf("Reviews: %d", p.ReviewsCount)},
			Action:         domain.ActionDescriptor{Type: "campaign", Target: "review_recovery"},
		})
	}

	if len(p.ServiceAreas) > 0 && len(p.ServiceAreas) < 3 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Expand Service Area Coverage",
			Description:    fmt.Sprintf("Only %d service areas are configured. Adding adjacent high-converting neighborhoods grows lead volume without raising budget.", len(p.ServiceAreas)),
			Category:       "service_areas",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Increase qualified leads by 10-20%",
			DataPoints:     []string{fmt.Sprintf("Service areas: %d", len(p.ServiceAreas))},
			Action:         domain.ActionDescriptor{Type: "expand", Target: "service_areas"},
		})
	}

	if p.ResponseMinutes > 15 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Cut Lead Response Time Below 15 Minutes",
			Description:    fmt.Sprintf("Average response time is %d minutes; responsiveness feeds the ranking algorithm for this channel. Route new leads to an on-call rotation.", p.ResponseMinutes),
			Category:       "responsiveness",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Improve ranking and booking rate",
			DataPoints:     []string{fmt.Sprintf("Response time: %d min", p.ResponseMinutes)},
			Action:         domain.ActionDescriptor{Type: "process", Target: "lead_response"},
		})
	}

	if p.MonthlyLeadGoal > 0 && s.DaysOfData >= 28 && s.Totals.Leads < int64(p.MonthlyLeadGoal) {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Budget Is Pacing Below Your Lead Goal",
			Description:    fmt.Sprintf("%d leads against a goal of %d this period. Review the weekly budget of $%.0f and dayparting to avoid early-week exhaustion.", s.Totals.Leads, p.MonthlyLeadGoal, p.WeeklyBudget),
			Category:       "budget",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: fmt.Sprintf("Close the gap to %d monthly leads", p.MonthlyLeadGoal),
			DataPoints:     []string{fmt.Sprintf("Leads: %d", s.Totals.Leads), fmt.Sprintf("Goal: %d", p.MonthlyLeadGoal)},
			Action:         domain.ActionDescriptor{Type: "increase_budget", Target: "weekly_budget"},
		})
	}

	return recs
}
