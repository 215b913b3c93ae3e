package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFixtureSourceLoadsPerSourceFile(t *testing.T) {
	dir := t.TempDir()
	payload := `{"DaysOfData": 30, "TotalClicks": 1200, "TotalSpend": 845.5,
		"Campaigns": [{"name": "Brand", "spend": 400}]}`
	if err := os.WriteFile(filepath.Join(dir, "paid_search_123.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFixtureSource(dir)
	data, err := src.AccountPerformance(context.Background(), "acct-1", "123", 30)
	if err != nil {
		t.Fatalf("AccountPerformance: %v", err)
	}
	if data.TotalClicks != 1200 || data.TotalSpend != 845.5 {
		t.Errorf("unexpected totals: %+v", data)
	}
	if len(data.Campaigns) != 1 {
		t.Errorf("campaigns = %d, want 1", len(data.Campaigns))
	}
}

func TestFixtureSourceFallsBackToChannelFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "organic_search.json"), []byte(`{"TotalClicks": 44}`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFixtureSource(dir)
	data, err := src.SitePerformance(context.Background(), "acct-1", "https://example.com", 30)
	if err != nil {
		t.Fatalf("SitePerformance: %v", err)
	}
	if data.TotalClicks != 44 {
		t.Errorf("TotalClicks = %d, want 44", data.TotalClicks)
	}
}

func TestFixtureSourceMissingFileIsEmptyNotError(t *testing.T) {
	src := NewFixtureSource(t.TempDir())
	data, err := src.ListingData(context.Background(), "acct-1", "listing-9", 30)
	if err != nil {
		t.Fatalf("ListingData: %v", err)
	}
	if data.Views != 0 || data.Name != "" {
		t.Errorf("expected zero payload, got %+v", data)
	}
}

func TestFixtureSourceAdaptersCoversEveryChannel(t *testing.T) {
	adapters := NewFixtureSource(t.TempDir()).Adapters()
	if len(adapters) != 6 {
		t.Fatalf("adapters = %d, want 6", len(adapters))
	}
	for source, a := range adapters {
		if a.Source() != source {
			t.Errorf("adapter keyed %s reports %s", source, a.Source())
		}
	}
}
