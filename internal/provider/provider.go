// Package provider defines the per-channel adapters that turn raw
// performance data from the metrics collaborators into the bounded,
// normalized summary the recommendation engine works with.
//
// Adapters never fetch data themselves; each one wraps a narrow source
// interface supplied by the caller. A source must not fail on "no data";
// it returns zeroed structures, and the resulting empty summary is how the
// engine detects that analysis is not possible yet.
package provider

import (
	"context"

	"github.com/ignite/optimizer/internal/domain"
)

// Adapter is the per-channel capability the engine is parameterized by.
type Adapter interface {
	// Source identifies the channel this adapter serves.
	Source() domain.SourceType

	// PromptKey names the prompt template used for this channel.
	PromptKey() string

	// BuildContext summarizes recent performance into a bounded context.
	// It degrades gracefully: when no data exists it returns a summary
	// with zeroed aggregates and empty lists, never an error.
	BuildContext(ctx context.Context, accountID, sourceID string, lookbackDays int) (MetricsSummary, error)

	// NeedsDailyAnalysis reports whether the channel's volume warrants a
	// daily regeneration cadence instead of the weekly default. Consumed
	// by the scheduling layer.
	NeedsDailyAnalysis(s MetricsSummary) bool
}

// FallbackRuler is implemented by adapters that contribute channel-specific
// threshold rules to the deterministic fallback path, on top of the shared
// rules in the engine.
type FallbackRuler interface {
	Fallback(s MetricsSummary) []domain.RawRecommendation
}

// MetricsSummary is the normalized view of one channel's recent performance.
// List fields are clamped to small top-N sizes so prompt cost stays bounded.
type MetricsSummary struct {
	Source       domain.SourceType
	SourceID     string
	LookbackDays int
	// DaysOfData is how many days of history actually exist, which can be
	// shorter than the lookback window for new accounts.
	DaysOfData int

	Totals  Totals
	Rates   Rates
	Profile *ProfileSignals
	Tables  []Table
}

// Totals holds volume aggregates over the lookback window. Channels fill
// only the counters they track.
type Totals struct {
	Sessions    int64   `json:"sessions,omitempty"`
	Users       int64   `json:"users,omitempty"`
	Clicks      int64   `json:"clicks,omitempty"`
	Impressions int64   `json:"impressions,omitempty"`
	Conversions int64   `json:"conversions,omitempty"`
	Leads       int64   `json:"leads,omitempty"`
	Spend       float64 `json:"spend,omitempty"`
	Revenue     float64 `json:"revenue,omitempty"`
}

// Rates holds derived ratios. A zero value means "not tracked" for channels
// that do not measure the metric; rules must gate on the driving volume
// counter before reading a rate.
type Rates struct {
	CTR                float64 `json:"ctr,omitempty"`
	EngagementRate     float64 `json:"engagement_rate,omitempty"`
	ConversionRate     float64 `json:"conversion_rate,omitempty"`
	AvgPosition        float64 `json:"avg_position,omitempty"`
	AvgSessionDuration float64 `json:"avg_session_duration,omitempty"`
	AvgCPA             float64 `json:"avg_cpa,omitempty"`
	DailySpend         float64 `json:"daily_spend,omitempty"`
}

// ProfileSignals carries listing/profile completeness data for the channels
// that are profiles rather than traffic streams.
type ProfileSignals struct {
	Name            string   `json:"name,omitempty"`
	PrimaryCategory string   `json:"primary_category,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Description     string   `json:"description,omitempty"`
	Address         string   `json:"address,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Website         string   `json:"website,omitempty"`
	Hours           string   `json:"hours,omitempty"`
	ServiceAreas    []string `json:"service_areas,omitempty"`
	Attributes      []string `json:"attributes,omitempty"`
	CTAButton       string   `json:"cta_button,omitempty"`

	Rating       float64 `json:"rating,omitempty"`
	ReviewsCount int     `json:"reviews_count,omitempty"`
	PhotosCount  int     `json:"photos_count,omitempty"`
	PostsCount   int     `json:"posts_count,omitempty"`
	LastPostDate string  `json:"last_post_date,omitempty"`

	WeeklyBudget    float64 `json:"weekly_budget,omitempty"`
	ResponseMinutes int     `json:"response_minutes,omitempty"`
	MonthlyLeadGoal int     `json:"monthly_lead_goal,omitempty"`
}

// empty reports whether the profile carries no signal at all.
func (p *ProfileSignals) empty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.PrimaryCategory == "" && p.Description == "" &&
		len(p.Categories) == 0 && p.ReviewsCount == 0 && p.PhotosCount == 0 &&
		p.PostsCount == 0 && p.Rating == 0
}

// Row is one labeled entry in a top-N table (a page, query, keyword,
// campaign, or traffic source with its metrics).
type Row map[string]any

// Float reads a numeric metric from the row. Values arrive as float64
// from JSON fixtures but may be typed ints when built in code.
func (r Row) Float(key string) (float64, bool) {
	switch n := r[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Table is a named, bounded top-N list included in the generation context.
type Table struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// IsEmpty reports whether the summary carries no usable signal: all volume
// counters zero, no profile data, no table rows. The engine maps an empty
// summary to the insufficient-data response without calling the generation
// service or the fallback rules.
func (s MetricsSummary) IsEmpty() bool {
	t := s.Totals
	if t.Sessions != 0 || t.Users != 0 || t.Clicks != 0 || t.Impressions != 0 ||
		t.Conversions != 0 || t.Leads != 0 || t.Spend != 0 || t.Revenue != 0 {
		return false
	}
	if !s.Profile.empty() {
		return false
	}
	for _, tbl := range s.Tables {
		if len(tbl.Rows) > 0 {
			return false
		}
	}
	return true
}

// Table returns the named table, or an empty one when absent.
func (s MetricsSummary) Table(name string) Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return Table{Name: name}
}

// clampRows bounds a table to its top-N size.
func clampRows(rows []Row, max int) []Row {
	if len(rows) > max {
		return rows[:max]
	}
	return rows
}
