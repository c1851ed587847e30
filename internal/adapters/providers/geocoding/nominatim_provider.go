package geocoding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Ayu2427/Personal-doctor/internal/domain/providers"
)

const (
	defaultNominatimURL   = "https://nominatim.openstreetmap.org"
	defaultSearchCacheTTL = 60 * 60 * 24
	defaultHTTPTimeout    = 8 * time.Second
	defaultNominatimAgent = "personal-doctor"
)

// NominatimProvider implements GeocodingProvider against the
// OpenStreetMap Nominatim search API.
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      providers.CacheProvider
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
func NewNominatimProvider(baseURL, userAgent string, cache providers.CacheProvider) providers.GeocodingProvider {
	return NewNominatimProviderWithOptions(baseURL, userAgent, cache, nil)
}

// NewNominatimProviderWithOptions allows overriding the HTTP client
// (used for tests).
func NewNominatimProviderWithOptions(baseURL, userAgent string, cache providers.CacheProvider, httpClient *http.Client) providers.GeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultNominatimURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultNominatimAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		cache:      cache,
	}
}

// Search returns up to limit places matching the free-text query.
func (p *NominatimProvider) Search(ctx context.Context, query string, limit int) ([]providers.Place, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = 1
	}

	cacheKey := fmt.Sprintf("geo:search:%d:%s", limit, hashKey(strings.ToLower(trimmed)))
	if p.cache != nil {
		if cached, err := p.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var places []providers.Place
			if err := json.Unmarshal(cached, &places); err == nil {
				return places, nil
			}
		}
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/search?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	var payload []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	places := make([]providers.Place, 0, len(payload))
	for _, result := range payload {
		lat, _ := strconv.ParseFloat(result.Lat, 64)
		lon, _ := strconv.ParseFloat(result.Lon, 64)
		places = append(places, providers.Place{
			DisplayName: result.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
		})
	}

	if p.cache != nil {
		if encoded, err := json.Marshal(places); err == nil {
			_ = p.cache.Set(ctx, cacheKey, encoded, defaultSearchCacheTTL)
		}
	}

	return places, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// nominatim returns lat/lon as JSON strings
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
