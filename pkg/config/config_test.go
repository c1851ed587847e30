package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("RATE_LIMIT_DEFAULT_PER_MINUTE")
	os.Unsetenv("RATE_LIMIT_CHAT_PER_MINUTE")
	os.Unsetenv("DEFAULT_LOCATION")
	os.Unsetenv("GEOCODER_PROVIDER")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 10, cfg.RateLimit.DefaultPerMinute)
	assert.Equal(t, 5, cfg.RateLimit.ChatPerMinute)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "New York", cfg.Chat.DefaultLocation)
	assert.Equal(t, 3, cfg.Chat.FacilityLimit)
	assert.Equal(t, "nominatim", cfg.Geocoder.Provider)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoder.BaseURL)
	assert.Empty(t, cfg.Session.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("RATE_LIMIT_CHAT_PER_MINUTE", "2")
	os.Setenv("DEFAULT_LOCATION", "Lagos")
	os.Setenv("GEOCODER_PROVIDER", "mock")
	os.Setenv("SESSION_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("RATE_LIMIT_CHAT_PER_MINUTE")
		os.Unsetenv("DEFAULT_LOCATION")
		os.Unsetenv("GEOCODER_PROVIDER")
		os.Unsetenv("SESSION_SECRET")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 2, cfg.RateLimit.ChatPerMinute)
	assert.Equal(t, "Lagos", cfg.Chat.DefaultLocation)
	assert.Equal(t, "mock", cfg.Geocoder.Provider)
	assert.Equal(t, "test-secret", cfg.Session.Secret)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "doctor",
		Password: "secret",
		Database: "personal_doctor",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=doctor password=secret dbname=personal_doctor sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
