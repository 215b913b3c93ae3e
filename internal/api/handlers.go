package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/insights"
)

// InsightsService is the engine surface the HTTP layer depends on.
type InsightsService interface {
	GetOrGenerate(ctx context.Context, accountID string, source domain.SourceType, sourceID string, force bool) (insights.Response, error)
	Open(ctx context.Context, accountID string, source domain.SourceType, sourceID string) (insights.Response, error)
	Apply(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error)
	Dismiss(ctx context.Context, recommendationID, actorID, notes string) (domain.Action, error)
}

// Handlers holds HTTP handler dependencies
type Handlers struct {
	engine InsightsService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(engine InsightsService) *Handlers {
	return &Handlers{engine: engine}
}

type generateRequest struct {
	AccountID  string `json:"account_id"`
	SourceID   string `json:"source_id"`
	Regenerate bool   `json:"regenerate"`
}

type resolveRequest struct {
	ActorID string `json:"actor_id"`
	Reason  string `json:"reason"`
}

// GenerateInsights returns the current recommendation batch for an account
// and channel, generating a new one when the open batch is stale or missing.
//
//	POST /api/insights/{source}/generate
func (h *Handlers) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	source := domain.SourceType(chi.URLParam(r, "source"))

	var req generateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}
	if v := r.URL.Query().Get("account_id"); v != "" {
		req.AccountID = v
	}
	if v := r.URL.Query().Get("source_id"); v != "" {
		req.SourceID = v
	}
	if r.URL.Query().Get("regenerate") == "true" {
		req.Regenerate = true
	}
	if req.AccountID == "" || req.SourceID == "" {
		respondError(w, http.StatusBadRequest, "account_id and source_id are required")
		return
	}

	resp, err := h.engine.GetOrGenerate(r.Context(), req.AccountID, source, req.SourceID, req.Regenerate)
	if err != nil {
		switch {
		case errors.Is(err, insights.ErrUnknownSource):
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source type: %s", source))
		case errors.Is(err, insights.ErrGenerationInProgress):
			respondError(w, http.StatusServiceUnavailable, "Generation already in progress, retry shortly")
		default:
			log.Printf("ERROR: insights generation failed for %s/%s/%s: %v", req.AccountID, source, req.SourceID, err)
			respondError(w, http.StatusInternalServerError, "Failed to generate insights")
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetInsights returns the open recommendation batch without triggering
// generation. Missing batches return an empty recommendation list.
//
//	GET /api/insights/{source}
func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	source := domain.SourceType(chi.URLParam(r, "source"))
	accountID := r.URL.Query().Get("account_id")
	sourceID := r.URL.Query().Get("source_id")
	if accountID == "" || sourceID == "" {
		respondError(w, http.StatusBadRequest, "account_id and source_id are required")
		return
	}

	resp, err := h.engine.Open(r.Context(), accountID, source, sourceID)
	if err != nil {
		if errors.Is(err, insights.ErrUnknownSource) {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown source type: %s", source))
			return
		}
		log.Printf("ERROR: failed to load insights for %s/%s/%s: %v", accountID, source, sourceID, err)
		respondError(w, http.StatusInternalServerError, "Failed to load insights")
		return
	}

	if r.URL.Query().Get("grouped") == "true" {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"summary":         resp.Summary,
			"recommendations": insights.GroupBySeverity(resp.Recommendations),
			"stats":           resp.Stats,
			"generated_at":    resp.GeneratedAt,
			"from_cache":      resp.FromCache,
		})
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ApplyRecommendation marks an open recommendation as applied.
//
//	POST /api/recommendations/{id}/apply
func (h *Handlers) ApplyRecommendation(w http.ResponseWriter, r *http.Request) {
	h.resolveRecommendation(w, r, "apply")
}

// DismissRecommendation marks an open recommendation as dismissed.
//
//	POST /api/recommendations/{id}/dismiss
func (h *Handlers) DismissRecommendation(w http.ResponseWriter, r *http.Request) {
	h.resolveRecommendation(w, r, "dismiss")
}

func (h *Handlers) resolveRecommendation(w http.ResponseWriter, r *http.Request, verb string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Recommendation ID required")
		return
	}

	var req resolveRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	var (
		act domain.Action
		err error
	)
	if verb == "apply" {
		act, err = h.engine.Apply(r.Context(), id, req.ActorID, req.Reason)
	} else {
		act, err = h.engine.Dismiss(r.Context(), id, req.ActorID, req.Reason)
	}
	if err != nil {
		var stateErr *insights.StateError
		switch {
		case errors.Is(err, insights.ErrNotFound):
			respondError(w, http.StatusNotFound, "Recommendation not found")
		case errors.As(err, &stateErr):
			respondError(w, http.StatusConflict, stateErr.Error())
		default:
			log.Printf("ERROR: failed to %s recommendation %s: %v", verb, id, err)
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s recommendation", verb))
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": fmt.Sprintf("Recommendation %s", act.Type),
		"action":  act,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
