package geocoding

import (
	"context"
	"fmt"

	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
)

// MockProvider implements a canned geocoding provider for demos and
// offline development
type MockProvider struct{}

// NewMockProvider creates a new mock geocoding provider
func NewMockProvider() providers.GeocodingProvider {
	return &MockProvider{}
}

// Search returns fabricated places referencing the query
func (m *MockProvider) Search(ctx context.Context, query string, limit int) ([]providers.Place, error) {
	candidates := []providers.Place{
		{DisplayName: fmt.Sprintf("St. Mary Hospital, 1 Care Way, %s", query), Latitude: 40.7128, Longitude: -74.0060},
		{DisplayName: fmt.Sprintf("Riverside Medical Center, 22 River Rd, %s", query), Latitude: 40.7306, Longitude: -73.9352},
		{DisplayName: fmt.Sprintf("Northside Clinic, 9 Elm St, %s", query), Latitude: 40.6782, Longitude: -73.9442},
	}
	if limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
