package domain

import (
	"fmt"
	"time"
)

// SourceType enumerates the advertising/analytics channels a recommendation
// batch can be generated against.
type SourceType string

const (
	SourcePaidSearch      SourceType = "paid_search"
	SourceOrganicSearch   SourceType = "organic_search"
	SourceLocalListing    SourceType = "local_listing"
	SourceLocalServiceAds SourceType = "local_service_ads"
	SourceBusinessProfile SourceType = "business_profile"
	SourceSocialAds       SourceType = "social_ads"
)

// SourceTypes lists every supported channel, in dashboard display order.
var SourceTypes = []SourceType{
	SourcePaidSearch,
	SourceOrganicSearch,
	SourceLocalListing,
	SourceLocalServiceAds,
	SourceBusinessProfile,
	SourceSocialAds,
}

// Valid reports whether s is one of the supported channels.
func (s SourceType) Valid() bool {
	for _, t := range SourceTypes {
		if s == t {
			return true
		}
	}
	return false
}

// RecommendationStatus enumerates the lifecycle states of a recommendation.
// Only "open" is non-terminal.
type RecommendationStatus string

const (
	StatusOpen       RecommendationStatus = "open"
	StatusApplied    RecommendationStatus = "applied"
	StatusDismissed  RecommendationStatus = "dismissed"
	StatusSuperseded RecommendationStatus = "superseded"
)

// Severity is a closed five-value priority scale. Lower is more urgent.
type Severity int

const (
	SeverityCritical   Severity = 1 // requires immediate action
	SeverityHighImpact Severity = 2
	SeverityQuickWin   Severity = 3
	SeverityMedium     Severity = 4
	SeverityLongTerm   Severity = 5
)

// Valid reports whether the severity is one of the five defined levels.
func (s Severity) Valid() bool {
	return s >= SeverityCritical && s <= SeverityLongTerm
}

// ActionDescriptor describes the concrete change a recommendation proposes,
// keyed by Type. Only Type is required; the remaining fields vary by the
// kind of action (a keyword pause carries a target id, a meta-tag rewrite
// carries a list of pages, a budget change carries params).
type ActionDescriptor struct {
	Type       string            `json:"type"`
	Target     string            `json:"target,omitempty"`
	TargetID   string            `json:"target_id,omitempty"`
	TargetName string            `json:"target_name,omitempty"`
	Targets    []string          `json:"targets,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

// IsZero reports whether no field of the descriptor is set.
func (a ActionDescriptor) IsZero() bool {
	return a.Type == "" && a.Target == "" && a.TargetID == "" &&
		a.TargetName == "" && len(a.Targets) == 0 && len(a.Params) == 0
}

// RawRecommendation is a recommendation as produced by the generation model
// or the fallback rules, before identity, confidence, and lifecycle fields
// are attached.
type RawRecommendation struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Severity       Severity         `json:"severity"`
	ExpectedImpact string           `json:"expected_impact"`
	DataPoints     []string         `json:"data_points"`
	Action         ActionDescriptor `json:"action"`
}

// Recommendation is one suggested optimization for a connected channel.
type Recommendation struct {
	ID        string     `json:"id" db:"id"`
	AccountID string     `json:"account_id" db:"account_id"`
	BatchID   string     `json:"batch_id" db:"batch_id"`
	Source    SourceType `json:"source_type" db:"source_type"`
	SourceID  string     `json:"source_id" db:"source_id"`

	Category       string           `json:"category" db:"category"`
	Title          string           `json:"title" db:"title"`
	Description    string           `json:"description" db:"description"`
	ExpectedImpact string           `json:"expected_impact" db:"expected_impact"`
	DataPoints     []string         `json:"data_points" db:"data_points"`
	Action         ActionDescriptor `json:"action" db:"action_data"`

	Severity   Severity             `json:"severity" db:"severity"`
	Confidence float64              `json:"confidence" db:"confidence"`
	Status     RecommendationStatus `json:"status" db:"status"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
}

// Validate checks the invariants enforced at the persistence boundary.
func (r *Recommendation) Validate() error {
	if r.AccountID == "" {
		return fmt.Errorf("recommendation %q: account id is required", r.ID)
	}
	if !r.Source.Valid() {
		return fmt.Errorf("recommendation %q: unknown source type %q", r.ID, r.Source)
	}
	if r.SourceID == "" {
		return fmt.Errorf("recommendation %q: source id is required", r.ID)
	}
	if r.Title == "" {
		return fmt.Errorf("recommendation %q: title is required", r.ID)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("recommendation %q: severity %d out of range", r.ID, r.Severity)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("recommendation %q: confidence %.2f out of range", r.ID, r.Confidence)
	}
	if !r.Action.IsZero() && r.Action.Type == "" {
		return fmt.Errorf("recommendation %q: action descriptor has no type", r.ID)
	}
	return nil
}

// ActionType enumerates the two human decisions recorded against an open
// recommendation.
type ActionType string

const (
	ActionApplied   ActionType = "applied"
	ActionDismissed ActionType = "dismissed"
)

// Action is the audit record of a human apply/dismiss decision. A
// recommendation accumulates at most one Action; the transition is one-shot.
type Action struct {
	ID               string     `json:"id" db:"id"`
	RecommendationID string     `json:"recommendation_id" db:"recommendation_id"`
	ActorID          string     `json:"actor_id" db:"actor_id"`
	AppliedAt        time.Time  `json:"applied_at" db:"applied_at"`
	Type             ActionType `json:"action_type" db:"action_type"`
	Notes            string     `json:"notes,omitempty" db:"notes"`
}
