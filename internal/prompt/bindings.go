package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ignite/optimizer/internal/provider"
)

// Bindings flattens a channel summary into the variable map the default
// templates reference. Every channel's summary produces the full set;
// variables a channel does not track bind to zero values and the templates'
// default filter handles presentation.
func Bindings(s provider.MetricsSummary) map[string]any {
	b := map[string]any{
		"lookback_days": s.LookbackDays,
		"days_of_data":  s.DaysOfData,

		"sessions":    s.Totals.Sessions,
		"users":       s.Totals.Users,
		"clicks":      s.Totals.Clicks,
		"impressions": s.Totals.Impressions,
		"conversions": s.Totals.Conversions,
		"leads":       s.Totals.Leads,
		"spend":       fmt.Sprintf("%.2f", s.Totals.Spend),
		"revenue":     fmt.Sprintf("%.2f", s.Totals.Revenue),

		"ctr":             percent(s.Rates.CTR),
		"engagement_rate": percent(s.Rates.EngagementRate),
		"conversion_rate": percent(s.Rates.ConversionRate),
		"avg_position":    fmt.Sprintf("%.1f", s.Rates.AvgPosition),
		"avg_cpa":         fmt.Sprintf("%.2f", s.Rates.AvgCPA),
		"daily_spend":     fmt.Sprintf("%.2f", s.Rates.DailySpend),
	}

	if p := s.Profile; p != nil {
		b["business_name"] = p.Name
		b["primary_category"] = p.PrimaryCategory
		b["categories"] = strings.Join(p.Categories, ", ")
		b["categories_count"] = len(p.Categories)
		b["description"] = p.Description
		b["description_length"] = len(p.Description)
		b["address"] = p.Address
		b["phone"] = p.Phone
		b["website"] = p.Website
		b["hours"] = p.Hours
		b["service_areas"] = strings.Join(p.ServiceAreas, ", ")
		b["service_areas_count"] = len(p.ServiceAreas)
		b["attributes"] = strings.Join(p.Attributes, ", ")
		b["attributes_count"] = len(p.Attributes)
		b["rating"] = fmt.Sprintf("%.1f", p.Rating)
		b["reviews_count"] = p.ReviewsCount
		b["photos_count"] = p.PhotosCount
		b["posts_count"] = p.PostsCount
		b["last_post_date"] = p.LastPostDate
		b["weekly_budget"] = fmt.Sprintf("%.2f", p.WeeklyBudget)
		b["response_time"] = p.ResponseMinutes
		b["lead_goal"] = p.MonthlyLeadGoal
	}

	for _, t := range s.Tables {
		b[t.Name] = tableJSON(t)
	}

	return b
}

// tableJSON renders a table's rows as indented JSON for prompt inclusion.
func tableJSON(t provider.Table) string {
	if len(t.Rows) == 0 {
		return "No data"
	}
	raw, err := json.MarshalIndent(t.Rows, "", "  ")
	if err != nil {
		return "No data"
	}
	return string(raw)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
