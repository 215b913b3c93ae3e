package provider

import (
	"context"
	"fmt"

	"github.com/ignite/optimizer/internal/domain"
)

// BusinessProfileData is the raw payload supplied by the business-profile
// collaborator for one location.
type BusinessProfileData struct {
	Name            string
	PrimaryCategory string
	Categories      []string
	Description     string
	Address         string
	Phone           string
	Website         string
	Hours           string
	Attributes      []string

	PhotosCount  int
	ReviewsCount int
	Rating       float64
	PostsCount   int
	LastPostDate string

	// Views/searches over the lookback window, when the profile exposes them.
	TotalViews    int64
	TotalSearches int64
	TotalCalls    int64
}

// BusinessProfileSource fetches raw business-profile data for a location.
type BusinessProfileSource interface {
	ProfileData(ctx context.Context, accountID, locationID string, days int) (BusinessProfileData, error)
}

// BusinessProfileAdapter summarizes a business profile's completeness and
// engagement signals. Unlike the traffic channels this is mostly a profile
// audit: the strongest recommendations come from what is missing.
type BusinessProfileAdapter struct {
	source BusinessProfileSource
}

func NewBusinessProfileAdapter(source BusinessProfileSource) *BusinessProfileAdapter {
	return &BusinessProfileAdapter{source: source}
}

func (a *BusinessProfileAdapter) Source() domain.SourceType { return domain.SourceBusinessProfile }
func (a *BusinessProfileAdapter) PromptKey() string         { return "business_profile_main" }

func (a *BusinessProfileAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.ProfileData(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("business profile data for location %s: %w", sourceID, err)
	}

	return MetricsSummary{
		Source:       domain.SourceBusinessProfile,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   lookbackDays,
		Totals: Totals{
			Sessions:    data.TotalViews,
			Impressions: data.TotalSearches,
			Leads:       data.TotalCalls,
		},
		Profile: &ProfileSignals{
			Name:            data.Name,
			PrimaryCategory: data.PrimaryCategory,
			Categories:      data.Categories,
			Description:     data.Description,
			Address:         data.Address,
			Phone:           data.Phone,
			Website:         data.Website,
			Hours:           data.Hours,
			Attributes:      data.Attributes,
			Rating:          data.Rating,
			ReviewsCount:    data.ReviewsCount,
			PhotosCount:     data.PhotosCount,
			PostsCount:      data.PostsCount,
			LastPostDate:    data.LastPostDate,
		},
	}, nil
}

// NeedsDailyAnalysis is always false for profiles; completeness moves slowly.
func (a *BusinessProfileAdapter) NeedsDailyAnalysis(MetricsSummary) bool { return false }

// Fallback audits profile completeness with deterministic rules.
func (a *BusinessProfileAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	p := s.Profile
	if p == nil {
		return nil
	}
	var recs []domain.RawRecommendation

	if len(p.Description) < 100 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Expand Your Business Description",
			Description:    fmt.Sprintf("The business description is %d characters; profiles with keyword-rich descriptions near the 750-character limit rank better in local search.", len(p.Description)),
			Category:       "description",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Increase profile views by 10-15%",
			DataPoints:     []string{fmt.Sprintf("Description length: %d characters", len(p.Description))},
			Action:         domain.ActionDescriptor{Type: "update", Target: "description"},
		})
	}

	if p.ReviewsCount < 20 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Build Review Volume",
			Description:    fmt.Sprintf("The profile has %d reviews against a 50+ benchmark for competitive local results. Set up a post-service review request flow.", p.ReviewsCount),
			Category:       "reviews",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Reach 50+ reviews within two quarters",
			DataPoints:     []string{fmt.Sprintf("Reviews: %d", p.ReviewsCount), fmt.Sprintf("Rating: %.1f", p.Rating)},
			Action:         domain.ActionDescriptor{Type: "campaign", Target: "review_requests"},
		})
	}

	if p.PostsCount == 0 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Start Publishing Weekly Posts",
			Description:    "The profile has no posts. Weekly posts for offers, updates, and events keep the listing active in local results.",
			Category:       "posts",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Increase engagement by 10-20%",
			DataPoints:     []string{"Posts: 0"},
			Action:         domain.ActionDescriptor{Type: "schedule", Target: "posts", Params: map[string]string{"cadence": "weekly"}},
		})
	}

	if p.PhotosCount < 10 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Add More Profile Photos",
			Description:    fmt.Sprintf("Only %d photos are uploaded. Cover, logo, interior, exterior, and team photos all influence conversion from the listing.", p.PhotosCount),
			Category:       "photos",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Increase direction requests and calls",
			DataPoints:     []string{fmt.Sprintf("Photos: %d", p.PhotosCount)},
			Action:         domain.ActionDescriptor{Type: "upload", Target: "photos"},
		})
	}

	if p.Website == "" || p.Phone == "" {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Complete Contact Information",
			Description:    "Website or phone is missing from the profile. Incomplete contact details suppress ranking and lose ready-to-convert visitors.",
			Category:       "profile_info",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Recover lost contact conversions",
			DataPoints:     []string{fmt.Sprintf("Website set: %t", p.Website != ""), fmt.Sprintf("Phone set: %t", p.Phone != "")},
			Action:         domain.ActionDescriptor{Type: "update", Target: "contact_info"},
		})
	}

	return recs
}
