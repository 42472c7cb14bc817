package modrinth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugseek.dev/cli/internal/core/catalog"
	"plugseek.dev/cli/internal/infrastructure/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAdapter(t *testing.T, handler http.Handler, fetchVersions bool) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{BaseURL: server.URL, UserAgent: "plugseek-test"}, cache.New[[]byte](cache.DefaultTTL), testLogger())
	return NewAdapter(client, fetchVersions, testLogger())
}

// TestAdapter_Search_NormalizesHits tests normalization without the version fan-out
func TestAdapter_Search_NormalizesHits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "essentials", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Contains(t, r.URL.Query().Get("facets"), "project_type:plugin", "Searches should be scoped to plugins")

		json.NewEncoder(w).Encode(SearchResponse{
			Hits: []SearchHit{
				{
					ProjectID:   "abc123",
					Title:       "EssentialsX",
					Author:      "mdcfe",
					Description: "The essential plugin suite",
					Categories:  []string{"utility", "economy"},
					Versions:    []string{"1.19.4", "1.21", "1.20.6"},
					Downloads:   900000,
				},
				{
					ProjectID: "def456",
					Title:     "Essentialz",
				},
			},
			TotalHits: 2,
		})
	})

	adapter := newTestAdapter(t, mux, false)

	records, err := adapter.Search(context.Background(), "essentials", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "abc123", first.ID)
	assert.Equal(t, "EssentialsX", first.DisplayName)
	assert.Equal(t, "mdcfe", first.Author)
	assert.Equal(t, "1.21", first.LatestVersion, "Without the fan-out the highest semver among the hit's versions wins")
	assert.Equal(t, 900000, first.Downloads)
	assert.Equal(t, []string{"utility", "economy"}, first.Categories)
	assert.False(t, first.Tagged(), "Adapter must leave provenance unset")

	second := records[1]
	assert.Equal(t, catalog.UnknownAuthor, second.Author)
	assert.Equal(t, catalog.UnknownVersion, second.LatestVersion)
	assert.Zero(t, second.Downloads)
}

// TestAdapter_Search_FetchVersions tests the per-record release lookup
func TestAdapter_Search_FetchVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{
			Hits: []SearchHit{
				{ProjectID: "abc123", Title: "EssentialsX", Versions: []string{"1.21"}},
				{ProjectID: "broken", Title: "Essentialz", Versions: []string{"1.20"}},
			},
		})
	})
	mux.HandleFunc("/project/abc123/version", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]ProjectVersion{
			{ID: "v2", VersionNumber: "2.21.0", DatePublished: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "v1", VersionNumber: "2.20.1", DatePublished: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		})
	})
	mux.HandleFunc("/project/broken/version", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream hiccup", http.StatusInternalServerError)
	})

	adapter := newTestAdapter(t, mux, true)

	records, err := adapter.Search(context.Background(), "essentials", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2.21.0", records[0].LatestVersion, "The release lookup overrides the hit-derived version")
	assert.Equal(t, "1.20", records[1].LatestVersion, "A failed release lookup keeps the hit-derived fallback")
}

// TestAdapter_FetchByID tests single-project lookups
func TestAdapter_FetchByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/project/abc123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Project{
			ID:           "abc123",
			Title:        "EssentialsX",
			Description:  "The essential plugin suite",
			Categories:   []string{"utility"},
			Downloads:    900000,
			GameVersions: []string{"1.20.6", "1.21"},
		})
	})
	mux.HandleFunc("/project/abc123/version", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]ProjectVersion{
			{ID: "v2", VersionNumber: "2.21.0", DatePublished: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		})
	})

	adapter := newTestAdapter(t, mux, false)

	t.Run("KnownID_ReturnsRecordWithRelease", func(t *testing.T) {
		record, err := adapter.FetchByID(context.Background(), "abc123")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "EssentialsX", record.DisplayName)
		assert.Equal(t, catalog.UnknownAuthor, record.Author, "Project details carry no author")
		assert.Equal(t, "2.21.0", record.LatestVersion, "Single-record fetches always resolve the release")
	})

	t.Run("UnknownID_ReturnsNilNil", func(t *testing.T) {
		record, err := adapter.FetchByID(context.Background(), "nope")
		require.NoError(t, err, "An unknown id is not an error")
		assert.Nil(t, record)
	})
}

// TestClient_SearchWithinTTL_HitsNetworkOnce tests the read-through cache wiring
func TestClient_SearchWithinTTL_HitsNetworkOnce(t *testing.T) {
	var searchCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		searchCalls.Add(1)
		json.NewEncoder(w).Encode(SearchResponse{Hits: []SearchHit{{ProjectID: "abc123", Title: "Vault"}}})
	})

	adapter := newTestAdapter(t, mux, false)

	_, err := adapter.Search(context.Background(), "vault", 10)
	require.NoError(t, err)
	_, err = adapter.Search(context.Background(), "vault", 10)
	require.NoError(t, err)

	assert.Equal(t, int32(1), searchCalls.Load(), "The second identical search must be served from cache")
}

// TestNewestSemver_PicksHighest tests the version fallback helper
func TestNewestSemver_PicksHighest(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		expected string
	}{
		{
			name:     "OrderedInput_PicksLast",
			versions: []string{"1.19.4", "1.20.6", "1.21"},
			expected: "1.21",
		},
		{
			name:     "UnorderedInput_StillPicksHighest",
			versions: []string{"1.21", "1.19.4", "1.20.6"},
			expected: "1.21",
		},
		{
			name:     "UnparseableEntries_AreSkipped",
			versions: []string{"25w14craftmine", "1.20.6"},
			expected: "1.20.6",
		},
		{
			name:     "NothingParses_YieldsEmpty",
			versions: []string{"snapshot", "beta"},
			expected: "",
		},
		{
			name:     "EmptyList_YieldsEmpty",
			versions: nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, newestSemver(tt.versions))
		})
	}
}
