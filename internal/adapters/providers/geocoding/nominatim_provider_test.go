package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeCache is a minimal CacheProvider for exercising the cache-aside
// path without Redis.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.store[key]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func TestNominatimProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "hospitals near New York", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"display_name": "Bellevue Hospital, 462 First Avenue, New York", "lat": "40.7391", "lon": "-73.9754"},
			{"display_name": "Mount Sinai Hospital, 1468 Madison Avenue, New York", "lat": "40.7900", "lon": "-73.9526"}
		]`))
	}))
	defer server.Close()

	provider := NewNominatimProvider(server.URL, "test-agent", nil)

	places, err := provider.Search(context.Background(), "hospitals near New York", 3)
	assert.NoError(t, err)
	assert.Len(t, places, 2)
	assert.Equal(t, "Bellevue Hospital, 462 First Avenue, New York", places[0].DisplayName)
	assert.InDelta(t, 40.7391, places[0].Latitude, 0.0001)
}

func TestNominatimProvider_SearchZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewNominatimProvider(server.URL, "test-agent", nil)

	places, err := provider.Search(context.Background(), "hospitals near Nowhere", 3)
	assert.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimProvider_SearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewNominatimProvider(server.URL, "test-agent", nil)

	_, err := provider.Search(context.Background(), "hospitals near New York", 3)
	assert.Error(t, err)
}

func TestNominatimProvider_SearchMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	provider := NewNominatimProvider(server.URL, "test-agent", nil)

	_, err := provider.Search(context.Background(), "hospitals near New York", 3)
	assert.Error(t, err)
}

func TestNominatimProvider_SearchEmptyQuery(t *testing.T) {
	provider := NewNominatimProvider("http://unused", "test-agent", nil)

	_, err := provider.Search(context.Background(), "   ", 3)
	assert.Error(t, err)
}

func TestNominatimProvider_SearchUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"display_name": "City Hospital, Main St", "lat": "1.0", "lon": "2.0"}]`))
	}))
	defer server.Close()

	provider := NewNominatimProvider(server.URL, "test-agent", newFakeCache())

	for i := 0; i < 3; i++ {
		places, err := provider.Search(context.Background(), "hospitals near Lagos", 3)
		assert.NoError(t, err)
		assert.Len(t, places, 1)
	}
	assert.Equal(t, 1, calls, "repeat queries should be served from cache")
}
