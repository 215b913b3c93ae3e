package provider

import (
	"context"
	"testing"

	"github.com/ignite/optimizer/internal/domain"
)

func TestMetricsSummaryIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		summary MetricsSummary
		want    bool
	}{
		{
			name:    "zero value",
			summary: MetricsSummary{},
			want:    true,
		},
		{
			name:    "clicks present",
			summary: MetricsSummary{Totals: Totals{Clicks: 12}},
			want:    false,
		},
		{
			name:    "spend present",
			summary: MetricsSummary{Totals: Totals{Spend: 0.01}},
			want:    false,
		},
		{
			name:    "profile signal present",
			summary: MetricsSummary{Profile: &ProfileSignals{Name: "Joe's Plumbing"}},
			want:    false,
		},
		{
			name:    "empty profile struct",
			summary: MetricsSummary{Profile: &ProfileSignals{}},
			want:    true,
		},
		{
			name: "table rows present",
			summary: MetricsSummary{Tables: []Table{
				{Name: "campaigns", Rows: []Row{{"name": "Brand"}}},
			}},
			want: false,
		},
		{
			name: "tables declared but empty",
			summary: MetricsSummary{Tables: []Table{
				{Name: "campaigns"},
				{Name: "keywords"},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetricsSummaryTable(t *testing.T) {
	s := MetricsSummary{Tables: []Table{
		{Name: "keywords", Rows: []Row{{"keyword": "plumber near me"}}},
	}}

	if got := s.Table("keywords"); len(got.Rows) != 1 {
		t.Errorf("Table(keywords) rows = %d, want 1", len(got.Rows))
	}
	if got := s.Table("missing"); got.Name != "missing" || len(got.Rows) != 0 {
		t.Errorf("Table(missing) = %+v, want named empty table", got)
	}
}

func TestRowFloat(t *testing.T) {
	row := Row{
		"position":    7.5,
		"impressions": 1200,
		"clicks":      int64(34),
		"page":        "/services",
	}

	for key, want := range map[string]float64{"position": 7.5, "impressions": 1200, "clicks": 34} {
		got, ok := row.Float(key)
		if !ok || got != want {
			t.Errorf("Float(%q) = %v, %v; want %v, true", key, got, ok, want)
		}
	}
	if _, ok := row.Float("page"); ok {
		t.Error("Float(page) ok for string value, want false")
	}
	if _, ok := row.Float("absent"); ok {
		t.Error("Float(absent) ok for missing key, want false")
	}
}

type stubPaidSearch struct{ data PaidSearchData }

func (s stubPaidSearch) AccountPerformance(context.Context, string, string, int) (PaidSearchData, error) {
	return s.data, nil
}

func TestPaidSearchBuildContextClampsTables(t *testing.T) {
	rows := make([]Row, 30)
	for i := range rows {
		rows[i] = Row{"name": "campaign"}
	}
	adapter := NewPaidSearchAdapter(stubPaidSearch{data: PaidSearchData{
		DaysOfData:  30,
		TotalClicks: 500,
		Campaigns:   rows,
		Keywords:    rows,
		SearchTerms: rows,
	}})

	summary, err := adapter.BuildContext(context.Background(), "acct-1", "123-456-7890", 30)
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	if got := len(summary.Table("campaigns").Rows); got != 10 {
		t.Errorf("campaigns rows = %d, want 10", got)
	}
	if got := len(summary.Table("keywords").Rows); got != 20 {
		t.Errorf("keywords rows = %d, want 20", got)
	}
	if got := len(summary.Table("search_terms").Rows); got != 15 {
		t.Errorf("search_terms rows = %d, want 15", got)
	}
	if summary.Source != domain.SourcePaidSearch {
		t.Errorf("source = %s, want %s", summary.Source, domain.SourcePaidSearch)
	}
}

func TestPaidSearchFallbackSpendNoConversions(t *testing.T) {
	adapter := NewPaidSearchAdapter(stubPaidSearch{})
	summary := MetricsSummary{
		LookbackDays: 30,
		Totals:       Totals{Spend: 450, Clicks: 200, Conversions: 0},
	}

	recs := adapter.Fallback(summary)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Severity != domain.SeverityCritical {
		t.Errorf("severity = %d, want critical", recs[0].Severity)
	}
	if recs[0].Category != "budget" {
		t.Errorf("category = %q, want budget", recs[0].Category)
	}

	// Below the spend floor the rule must stay quiet.
	summary.Totals.Spend = 40
	if recs := adapter.Fallback(summary); len(recs) != 0 {
		t.Errorf("got %d recommendations under spend floor, want 0", len(recs))
	}
}

type stubOrganic struct{ data OrganicSearchData }

func (s stubOrganic) SitePerformance(context.Context, string, string, int) (OrganicSearchData, error) {
	return s.data, nil
}

func TestOrganicFallbackPageTwoRankings(t *testing.T) {
	adapter := NewOrganicSearchAdapter(stubOrganic{})
	summary := MetricsSummary{Tables: []Table{
		{Name: "top_pages", Rows: []Row{
			{"page": "/pricing", "position": 5.2},
			{"page": "/", "position": 1.4},
			{"page": "/blog/guide", "position": 9.8},
		}},
	}}

	recs := adapter.Fallback(summary)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Title != "Push Page 2 Rankings to Page 1" {
		t.Errorf("title = %q", rec.Title)
	}
	if len(rec.Action.Targets) != 2 {
		t.Errorf("targets = %v, want the two page-two URLs", rec.Action.Targets)
	}
}

func TestOrganicNeedsDailyAnalysis(t *testing.T) {
	adapter := NewOrganicSearchAdapter(stubOrganic{})

	high := MetricsSummary{DaysOfData: 7, Totals: Totals{Clicks: 6000}}
	if !adapter.NeedsDailyAnalysis(high) {
		t.Error("high-volume site should need daily analysis")
	}
	low := MetricsSummary{DaysOfData: 30, Totals: Totals{Clicks: 900}}
	if adapter.NeedsDailyAnalysis(low) {
		t.Error("low-volume site should not need daily analysis")
	}
	if adapter.NeedsDailyAnalysis(MetricsSummary{}) {
		t.Error("no data should not need daily analysis")
	}
}

type stubProfile struct{ data BusinessProfileData }

func (s stubProfile) ProfileData(context.Context, string, string, int) (BusinessProfileData, error) {
	return s.data, nil
}

func TestBusinessProfileFallbackCompleteness(t *testing.T) {
	adapter := NewBusinessProfileAdapter(stubProfile{})
	summary := MetricsSummary{Profile: &ProfileSignals{
		Name:         "Joe's Plumbing",
		Description:  "Plumber.",
		ReviewsCount: 4,
		PhotosCount:  2,
		PostsCount:   0,
		Phone:        "555-0101",
		Website:      "",
	}}

	recs := adapter.Fallback(summary)
	categories := map[string]bool{}
	for _, r := range recs {
		categories[r.Category] = true
	}
	for _, want := range []string{"description", "reviews", "posts", "photos", "profile_info"} {
		if !categories[want] {
			t.Errorf("missing %s recommendation, got %v", want, categories)
		}
	}

	complete := MetricsSummary{Profile: &ProfileSignals{
		Name:         "Joe's Plumbing",
		Description:  string(make([]byte, 300)),
		ReviewsCount: 80,
		PhotosCount:  25,
		PostsCount:   12,
		Phone:        "555-0101",
		Website:      "https://joesplumbing.example",
	}}
	if recs := adapter.Fallback(complete); len(recs) != 0 {
		t.Errorf("complete profile produced %d recommendations, want 0", len(recs))
	}
}

type stubSocial struct{ data SocialAdsData }

func (s stubSocial) AdAccountPerformance(context.Context, string, string, int) (SocialAdsData, error) {
	return s.data, nil
}

func TestSocialAdsFallbackFrequency(t *testing.T) {
	adapter := NewSocialAdsAdapter(stubSocial{})
	summary := MetricsSummary{
		Totals: Totals{Spend: 50, Conversions: 3, Impressions: 500},
		Tables: []Table{{Name: "campaigns", Rows: []Row{
			{"name": "Retargeting", "frequency": 6.1},
			{"name": "Prospecting", "frequency": 1.8},
		}}},
	}

	recs := adapter.Fallback(summary)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if got := recs[0].Action.Targets; len(got) != 1 || got[0] != "Retargeting" {
		t.Errorf("targets = %v, want [Retargeting]", got)
	}
}

type stubLocalAds struct{ data LocalServiceAdsData }

func (s stubLocalAds) AdsProfile(context.Context, string, string, int) (LocalServiceAdsData, error) {
	return s.data, nil
}

func TestLocalServiceAdsFallbackResponseTime(t *testing.T) {
	adapter := NewLocalServiceAdsAdapter(stubLocalAds{})
	summary := MetricsSummary{
		DaysOfData: 30,
		Totals:     Totals{Leads: 8},
		Profile: &ProfileSignals{
			Rating:          4.9,
			ServiceAreas:    []string{"Downtown", "Midtown", "Uptown"},
			ResponseMinutes: 45,
		},
	}

	recs := adapter.Fallback(summary)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Category != "responsiveness" || recs[0].Severity != domain.SeverityCritical {
		t.Errorf("got %s/%d, want responsiveness/critical", recs[0].Category, recs[0].Severity)
	}
}
