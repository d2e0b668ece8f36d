package cache_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbjs97/pmctl/internal/cache"
	"github.com/hbjs97/pmctl/internal/postman"
	"github.com/hbjs97/pmctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey  = "PMAK-0123456789abcdef-0123"
	testBase = "https://api.getpostman.com"
)

var testWorkspaces = []postman.Workspace{
	{ID: "11111111-2222-3333-4444-555555555555", Name: "Team", Type: "team"},
}

func TestLoadCache_ValidJSON(t *testing.T) {
	fetched := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	content := fmt.Sprintf(`{
		"version": 1,
		"entries": {
			%q: {
				"workspaces": [{"id": "11111111-2222-3333-4444-555555555555", "name": "Team", "type": "team"}],
				"fetched_at": %q,
				"base_url": %q
			}
		}
	}`, cache.Key(testKey), fetched, testBase)
	path := testutil.TempCacheFile(t, content)

	c, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Version)

	ws, ok := c.Lookup(testKey, testBase, 10*time.Minute)
	require.True(t, ok)
	assert.Equal(t, testWorkspaces, ws)
}

func TestLoadCache_MissingFile(t *testing.T) {
	c, err := cache.Load("/nonexistent/cache.json")
	require.NoError(t, err) // graceful: empty cache
	assert.Empty(t, c.Entries)
}

func TestLoadCache_InvalidJSON(t *testing.T) {
	path := testutil.TempCacheFile(t, "{not json")
	c, err := cache.Load(path)
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

func TestLookup_Misses(t *testing.T) {
	c := cache.New()
	c.Set(testKey, testBase, testWorkspaces)

	tests := []struct {
		name string
		key  string
		base string
		ttl  time.Duration
	}{
		{"other key", "PMAK-ffffffffffffffff-ffff", testBase, time.Hour},
		{"other base url", testKey, "http://127.0.0.1:8080", time.Hour},
		{"zero ttl", testKey, testBase, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.Lookup(tt.key, tt.base, tt.ttl)
			assert.False(t, ok)
		})
	}
}

func TestLookup_Expired(t *testing.T) {
	c := cache.New()
	c.Entries[cache.Key(testKey)] = cache.Entry{
		Workspaces: testWorkspaces,
		FetchedAt:  time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
		BaseURL:    testBase,
	}
	_, ok := c.Lookup(testKey, testBase, time.Hour)
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	c := cache.New()
	c.Set(testKey, testBase, testWorkspaces)
	c.Invalidate(testKey)
	_, ok := c.Lookup(testKey, testBase, time.Hour)
	assert.False(t, ok)
}

func TestSave_RoundTripAndNoRawKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workspaces.json")
	c := cache.New()
	c.Set(testKey, testBase, testWorkspaces)

	require.NoError(t, c.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.NotContains(t, testutil.ReadFile(t, path), testKey, "API 키 원문은 저장하지 않는다")

	loaded, err := cache.Load(path)
	require.NoError(t, err)
	ws, ok := loaded.Lookup(testKey, testBase, time.Hour)
	require.True(t, ok)
	assert.Equal(t, testWorkspaces, ws)
}
