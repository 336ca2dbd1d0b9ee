package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":3333", cfg.Addr)
	assert.Equal(t, ":9999", cfg.DiagAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 100, cfg.PageLimit)
	assert.Equal(t, DevTokenSecret, cfg.TokenSecret)
	assert.False(t, cfg.Seed)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"ARTICLES_ADDR":       ":8080",
		"ARTICLES_TOKEN_TTL":  "2h",
		"ARTICLES_PAGE_LIMIT": "5",
		"ARTICLES_SEED":       "true",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.PageLimit)
	assert.True(t, cfg.Seed)
}

func TestLoadRejects(t *testing.T) {
	for name, environ := range map[string]map[string]string{
		"zero page limit": {"ARTICLES_PAGE_LIMIT": "0"},
		"negative ttl":    {"ARTICLES_TOKEN_TTL": "-1m"},
		"not a number":    {"ARTICLES_PAGE_LIMIT": "many"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environ)
			assert.Error(t, err)
		})
	}
}
