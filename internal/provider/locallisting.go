package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/optimizer/internal/domain"
)

// LocalListingData is the raw payload supplied by the directory-listings
// collaborator for one listing.
type LocalListingData struct {
	Name            string
	PrimaryCategory string
	Categories      []string
	Description     string
	Address         string
	Phone           string
	Website         string
	Hours           string
	Attributes      []string
	Rating          float64
	ReviewsCount    int
	PhotosCount     int

	DaysOfData        int
	Views             int64
	Searches          int64
	WebsiteClicks     int64
	DirectionRequests int64
	Calls             int64
}

// LocalListingSource fetches raw directory listing data.
type LocalListingSource interface {
	ListingData(ctx context.Context, accountID, listingID string, days int) (LocalListingData, error)
}

// LocalListingAdapter summarizes a directory listing: discovery volume,
// the actions people take from the listing, and how complete the listing
// itself is.
type LocalListingAdapter struct {
	source LocalListingSource
}

func NewLocalListingAdapter(source LocalListingSource) *LocalListingAdapter {
	return &LocalListingAdapter{source: source}
}

func (a *LocalListingAdapter) Source() domain.SourceType { return domain.SourceLocalListing }
func (a *LocalListingAdapter) PromptKey() string         { return "local_listing_main" }

func (a *LocalListingAdapter) BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error) {
	data, err := a.source.ListingData(ctx, accountID, sourceID, lookbackDays)
	if err != nil {
		return MetricsSummary{}, fmt.Errorf("local listing %s: %w", sourceID, err)
	}

	actions := data.WebsiteClicks + data.DirectionRequests + data.Calls
	var ctr float64
	if data.Views > 0 {
		ctr = float64(actions) / float64(data.Views)
	}

	return MetricsSummary{
		Source:       domain.SourceLocalListing,
		SourceID:     sourceID,
		LookbackDays: lookbackDays,
		DaysOfData:   data.DaysOfData,
		Totals: Totals{
			Sessions:    data.Views,
			Impressions: data.Searches,
			Clicks:      data.WebsiteClicks,
			Conversions: actions,
			Leads:       data.Calls,
		},
		Rates: Rates{CTR: ctr},
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
		},
		Tables: []Table{{
			Name: "listing_actions",
			Rows: []Row{{
				"website_clicks":     data.WebsiteClicks,
				"direction_requests": data.DirectionRequests,
				"calls":              data.Calls,
			}},
		}},
	}, nil
}

// NeedsDailyAnalysis is always false; listing signals move on a weekly
// cadence at best.
func (a *LocalListingAdapter) NeedsDailyAnalysis(MetricsSummary) bool { return false }

// Fallback audits listing completeness and discovery-to-action conversion.
func (a *LocalListingAdapter) Fallback(s MetricsSummary) []domain.RawRecommendation {
	p := s.Profile
	if p == nil {
		return nil
	}
	var recs []domain.RawRecommendation

	var missing []string
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	if p.Website == "" {
		missing = append(missing, "website")
	}
	if p.Hours == "" {
		missing = append(missing, "business hours")
	}
	if p.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Complete Missing Core Listing Fields",
			Description:    fmt.Sprintf("The listing is missing: %s. Incomplete core fields suppress ranking in directory search and lose ready-to-act customers.", strings.Join(missing, ", ")),
			Category:       "profile_info",
			Severity:       domain.SeverityCritical,
			ExpectedImpact: "Recover suppressed discovery traffic",
			DataPoints:     []string{fmt.Sprintf("Missing fields: %d", len(missing))},
			Action:         domain.ActionDescriptor{Type: "update_listing", Target: "core_fields", Targets: missing},
		})
	}

	if len(p.Categories) < 2 && p.PrimaryCategory != "" {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Add Secondary Listing Categories",
			Description:    "Only the primary category is set. Secondary categories widen the queries the listing can surface for.",
			Category:       "categories",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Appear in more directory searches",
			DataPoints:     []string{fmt.Sprintf("Categories: %d", len(p.Categories))},
			Action:         domain.ActionDescriptor{Type: "update_listing", Target: "categories"},
		})
	}

	if p.PhotosCount < 5 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Add Photos to the Listing",
			Description:    fmt.Sprintf("The listing has %d photos. Listings with current photos convert searchers to actions at a measurably higher rate.", p.PhotosCount),
			Category:       "photos",
			Severity:       domain.SeverityQuickWin,
			ExpectedImpact: "Lift listing action rate",
			DataPoints:     []string{fmt.Sprintf("Photos: %d", p.PhotosCount)},
			Action:         domain.ActionDescriptor{Type: "add_content", Target: "photos"},
		})
	}

	if s.Totals.Sessions >= 500 && s.Rates.CTR < 0.03 {
		recs = append(recs, domain.RawRecommendation{
			Title:          "Listing Views Are Not Converting to Actions",
			Description:    fmt.Sprintf("%d views produced an action rate of %.1f%%. Strengthen the description and primary photo, and verify the call-to-action points somewhere useful.", s.Totals.Sessions, s.Rates.CTR*100),
			Category:       "ctr_optimization",
			Severity:       domain.SeverityHighImpact,
			ExpectedImpact: "Raise action rate above 3%",
			DataPoints: []string{
				fmt.Sprintf("Views: %d", s.Totals.Sessions),
				fmt.Sprintf("Action rate: %.2f%%", s.Rates.CTR*100),
			},
			Action: domain.ActionDescriptor{Type: "update_listing", Target: "presentation"},
		})
	}

	return recs
}
