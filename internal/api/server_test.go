package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avherald_scraper/internal/incident"
	"avherald_scraper/internal/storage"
)

// fakeStore records query parameters and returns canned data.
type fakeStore struct {
	incidents  []incident.Incident
	counts     []storage.Count
	lastParams storage.QueryParams
	lastColumn string
	lastLimit  int
	err        error
}

func (f *fakeStore) InsertIncident(ctx context.Context, inc incident.Incident) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeStore) InsertIncidents(ctx context.Context, incs []incident.Incident) (int, int, error) {
	return 0, 0, errors.New("not implemented")
}

func (f *fakeStore) QueryIncidents(ctx context.Context, p storage.QueryParams) ([]incident.Incident, error) {
	f.lastParams = p
	return f.incidents, f.err
}

func (f *fakeStore) CountBy(ctx context.Context, column string, limit int) ([]storage.Count, error) {
	f.lastColumn = column
	f.lastLimit = limit
	return f.counts, f.err
}

func (f *fakeStore) Close() error { return nil }

func newTestServer(store storage.IncidentStore) *httptest.Server {
	return httptest.NewServer(NewServer(store, 0).Router())
}

func getJSON(t *testing.T, url string, wantStatus int) map[string]interface{} {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, wantStatus, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	server := newTestServer(&fakeStore{})
	defer server.Close()

	body := getJSON(t, server.URL+"/health", http.StatusOK)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestListIncidents(t *testing.T) {
	ts := int64(1743379200)
	store := &fakeStore{
		incidents: []incident.Incident{{
			Category:  "icn_incident",
			Title:     "Ryanair B738 at Dublin on Mar 31st 2025, tail strike",
			Airline:   "Ryanair",
			Aircraft:  "B738",
			Timestamp: &ts,
			URL:       "https://avherald.com/h4d2f9e1",
		}},
	}
	server := newTestServer(store)
	defer server.Close()

	body := getJSON(t, server.URL+"/incidents?airline=Ryanair&limit=10&offset=5", http.StatusOK)

	assert.Equal(t, float64(1), body["count"])
	incidents, ok := body["incidents"].([]interface{})
	require.True(t, ok)
	require.Len(t, incidents, 1)
	row := incidents[0].(map[string]interface{})
	assert.Equal(t, "Ryanair", row["airline"])
	assert.Equal(t, "B738", row["aircraft"])
	assert.Equal(t, float64(1743379200), row["timestamp"])

	assert.Equal(t, "Ryanair", store.lastParams.Airline)
	assert.Equal(t, 10, store.lastParams.Limit)
	assert.Equal(t, 5, store.lastParams.Offset)
}

func TestListIncidentsDefaults(t *testing.T) {
	store := &fakeStore{}
	server := newTestServer(store)
	defer server.Close()

	body := getJSON(t, server.URL+"/incidents?limit=bogus", http.StatusOK)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, 100, store.lastParams.Limit, "invalid limit falls back to the default")
}

func TestListIncidentsStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("disk on fire")}
	server := newTestServer(store)
	defer server.Close()

	body := getJSON(t, server.URL+"/incidents", http.StatusInternalServerError)
	assert.Contains(t, body["error"], "disk on fire")
}

func TestStats(t *testing.T) {
	store := &fakeStore{counts: []storage.Count{
		{Label: "Ryanair", Total: 12},
		{Label: "Unknown", Total: 3},
	}}
	server := newTestServer(store)
	defer server.Close()

	body := getJSON(t, server.URL+"/stats?by=aircraft&limit=20", http.StatusOK)
	assert.Equal(t, "aircraft", body["by"])
	assert.Equal(t, "aircraft", store.lastColumn)
	assert.Equal(t, 20, store.lastLimit)

	counts, ok := body["counts"].([]interface{})
	require.True(t, ok)
	require.Len(t, counts, 2)
	top := counts[0].(map[string]interface{})
	assert.Equal(t, "Ryanair", top["label"])
	assert.Equal(t, float64(12), top["total"])
}

func TestStatsDefaultsToAirline(t *testing.T) {
	store := &fakeStore{}
	server := newTestServer(store)
	defer server.Close()

	body := getJSON(t, server.URL+"/stats", http.StatusOK)
	assert.Equal(t, "airline", body["by"])
	assert.Equal(t, "airline", store.lastColumn)
}

func TestStatsRejectsUnknownColumn(t *testing.T) {
	server := newTestServer(&fakeStore{})
	defer server.Close()

	body := getJSON(t, server.URL+"/stats?by=url", http.StatusBadRequest)
	assert.Contains(t, body["error"], "airline")
}
