package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ignite/optimizer/internal/domain"
)

// FixtureSource serves channel data from JSON files on disk. It implements
// every channel source interface, so a server can run end to end before any
// live collaborator integration exists.
//
// Files are looked up as <dir>/<source>_<sourceID>.json first, then
// <dir>/<source>.json. A missing file is not an error; the zero payload is
// returned and the adapter produces an empty summary.
type FixtureSource struct {
	dir string
}

func NewFixtureSource(dir string) *FixtureSource {
	return &FixtureSource{dir: dir}
}

func (f *FixtureSource) load(source domain.SourceType, sourceID string, out any) error {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, sourceID)

	candidates := []string{
		filepath.Join(f.dir, fmt.Sprintf("%s_%s.json", source, safe)),
		filepath.Join(f.dir, fmt.Sprintf("%s.json", source)),
	}
	for _, path := range candidates {
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", path, err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("parse fixture %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func (f *FixtureSource) AccountPerformance(_ context.Context, _, customerID string, _ int) (PaidSearchData, error) {
	var data PaidSearchData
	err := f.load(domain.SourcePaidSearch, customerID, &data)
	return data, err
}

func (f *FixtureSource) SitePerformance(_ context.Context, _, siteURL string, _ int) (OrganicSearchData, error) {
	var data OrganicSearchData
	err := f.load(domain.SourceOrganicSearch, siteURL, &data)
	return data, err
}

func (f *FixtureSource) ListingData(_ context.Context, _, listingID string, _ int) (LocalListingData, error) {
	var data LocalListingData
	err := f.load(domain.SourceLocalListing, listingID, &data)
	return data, err
}

func (f *FixtureSource) AdsProfile(_ context.Context, _, profileID string, _ int) (LocalServiceAdsData, error) {
	var data LocalServiceAdsData
	err := f.load(domain.SourceLocalServiceAds, profileID, &data)
	return data, err
}

func (f *FixtureSource) ProfileData(_ context.Context, _, locationID string, _ int) (BusinessProfileData, error) {
	var data BusinessProfileData
	err := f.load(domain.SourceBusinessProfile, locationID, &data)
	return data, err
}

func (f *FixtureSource) AdAccountPerformance(_ context.Context, _, adAccountID string, _ int) (SocialAdsData, error) {
	var data SocialAdsData
	err := f.load(domain.SourceSocialAds, adAccountID, &data)
	return data, err
}

// Adapters builds the full adapter set backed by this fixture source,
// keyed by source type.
func (f *FixtureSource) Adapters() map[domain.SourceType]Adapter {
	return map[domain.SourceType]Adapter{
		domain.SourcePaidSearch:      NewPaidSearchAdapter(f),
		domain.SourceOrganicSearch:   NewOrganicSearchAdapter(f),
		domain.SourceLocalListing:    NewLocalListingAdapter(f),
		domain.SourceLocalServiceAds: NewLocalServiceAdsAdapter(f),
		domain.SourceBusinessProfile: NewBusinessProfileAdapter(f),
		domain.SourceSocialAds:       NewSocialAdsAdapter(f),
	}
}
