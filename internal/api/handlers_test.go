package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ignite/optimizer/internal/domain"
	"github.com/ignite/optimizer/internal/insights"
)

type stubService struct {
	generateCalls int
	lastForce     bool
	lastSource    domain.SourceType
	response      insights.Response
	generateErr   error
	applyErr      error
	dismissErr    error
}

func (s *stubService) GetOrGenerate(ctx context.Context, accountID string, source domain.SourceType, sourceID string, force bool) (insights.Response, error) {
	s.generateCalls++
	s.lastForce = force
	s.lastSource = source
	if !source.Valid() {
		return insights.Response{}, fmt.Errorf("%w: %s", insights.ErrUnknownSource, source)
	}
	if s.generateErr != nil {
		return insights.Response{}, s.generateErr
	}
	return s.response, nil
}

func (s *stubService) Open(ctx context.Context, accountID string, source domain.SourceType, sourceID string) (insights.Response, error) {
	if !source.Valid() {
		return insights.Response{}, fmt.Errorf("%w: %s", insights.ErrUnknownSource, source)
	}
	return s.response, nil
}

func (s *stubService) Apply(ctx context.Context, id, actorID, notes string) (domain.Action, error) {
	if s.applyErr != nil {
		return domain.Action{}, s.applyErr
	}
	return domain.Action{RecommendationID: id, Type: domain.ActionApplied, ActorID: actorID, Notes: notes}, nil
}

func (s *stubService) Dismiss(ctx context.Context, id, actorID, notes string) (domain.Action, error) {
	if s.dismissErr != nil {
		return domain.Action{}, s.dismissErr
	}
	return domain.Action{RecommendationID: id, Type: domain.ActionDismissed, ActorID: actorID, Notes: notes}, nil
}

func newTestServer(svc *stubService) *httptest.Server {
	handlers := NewHandlers(svc)
	return httptest.NewServer(SetupRoutes(handlers, nil))
}

func sampleResponse() insights.Response {
	return insights.Response{
		Summary: "Found 1 optimization opportunities to improve your performance.",
		Recommendations: []domain.Recommendation{{
			ID:        "r1",
			AccountID: "acct-1",
			Source:    domain.SourcePaidSearch,
			SourceID:  "123",
			Title:     "Reduce Cost per Acquisition",
			Severity:  domain.SeverityHighImpact,
			Status:    domain.StatusOpen,
			CreatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		}},
		Stats:       insights.Stats{Total: 1, Open: 1, HighImpact: 1},
		GeneratedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateInsights(t *testing.T) {
	svc := &stubService{response: sampleResponse()}
	ts := newTestServer(svc)
	defer ts.Close()

	body := strings.NewReader(`{"account_id":"acct-1","source_id":"123","regenerate":true}`)
	resp, err := http.Post(ts.URL+"/api/insights/paid_search/generate", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if svc.generateCalls != 1 || !svc.lastForce {
		t.Errorf("generateCalls = %d force = %v", svc.generateCalls, svc.lastForce)
	}
	if svc.lastSource != domain.SourcePaidSearch {
		t.Errorf("source = %s", svc.lastSource)
	}

	var got insights.Response
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Stats.Total != 1 || len(got.Recommendations) != 1 {
		t.Errorf("response = %+v", got)
	}
}

func TestGenerateInsightsRegenerateQueryParam(t *testing.T) {
	svc := &stubService{response: sampleResponse()}
	ts := newTestServer(svc)
	defer ts.Close()

	url := ts.URL + "/api/insights/paid_search/generate?account_id=acct-1&source_id=123&regenerate=true"
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !svc.lastForce {
		t.Error("regenerate query param not honored")
	}
}

func TestGenerateInsightsMissingParams(t *testing.T) {
	svc := &stubService{}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/insights/paid_search/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if svc.generateCalls != 0 {
		t.Errorf("engine called %d times with missing params", svc.generateCalls)
	}
}

func TestGenerateInsightsUnknownSource(t *testing.T) {
	svc := &stubService{}
	ts := newTestServer(svc)
	defer ts.Close()

	url := ts.URL + "/api/insights/carrier_pigeon/generate?account_id=a&source_id=b"
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if !strings.Contains(body["error"], "carrier_pigeon") {
		t.Errorf("error = %q", body["error"])
	}
}

func TestGenerateInsightsInProgress(t *testing.T) {
	svc := &stubService{generateErr: insights.ErrGenerationInProgress}
	ts := newTestServer(svc)
	defer ts.Close()

	url := ts.URL + "/api/insights/paid_search/generate?account_id=acct-1&source_id=123"
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestGetInsightsGrouped(t *testing.T) {
	svc := &stubService{response: sampleResponse()}
	ts := newTestServer(svc)
	defer ts.Close()

	url := ts.URL + "/api/insights/paid_search?account_id=acct-1&source_id=123&grouped=true"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Recommendations map[string][]domain.Recommendation `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Recommendations["high_impact"]) != 1 {
		t.Errorf("grouped = %+v", body.Recommendations)
	}
}

func TestApplyRecommendation(t *testing.T) {
	svc := &stubService{}
	ts := newTestServer(svc)
	defer ts.Close()

	body := strings.NewReader(`{"actor_id":"ops@example.com","reason":"done in ads console"}`)
	resp, err := http.Post(ts.URL+"/api/recommendations/r1/apply", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body2 struct {
		OK      bool          `json:"ok"`
		Message string        `json:"message"`
		Action  domain.Action `json:"action"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body2); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body2.OK {
		t.Error("ok = false, want true")
	}
	if body2.Message != "Recommendation applied" {
		t.Errorf("message = %q", body2.Message)
	}
	act := body2.Action
	if act.RecommendationID != "r1" || act.Type != domain.ActionApplied || act.ActorID != "ops@example.com" {
		t.Errorf("action = %+v", act)
	}
}

func TestApplyRecommendationNotFound(t *testing.T) {
	svc := &stubService{applyErr: insights.ErrNotFound}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/recommendations/missing/apply", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDismissRecommendationAlreadyResolved(t *testing.T) {
	svc := &stubService{dismissErr: &insights.StateError{ID: "r1", Status: domain.StatusApplied}}
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/recommendations/r1/dismiss", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "recommendation r1 already applied" {
		t.Errorf("error = %q", body["error"])
	}
}
