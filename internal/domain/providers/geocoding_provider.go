package providers

import "context"

// GeocodingProvider defines the interface for external place lookup
// services
type GeocodingProvider interface {
	// Search returns up to limit places matching the free-text query
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Place represents a geocoding result
type Place struct {
	// DisplayName is the full comma-delimited address string
	DisplayName string
	Latitude    float64
	Longitude   float64
}
