package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avherald_scraper/internal/incident"
)

func openTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "incidents.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testIncident(title string) incident.Incident {
	ts := int64(1743379200)
	return incident.Incident{
		Category:  "icn_incident",
		Title:     title,
		Airline:   "Ryanair",
		Aircraft:  "B738",
		Timestamp: &ts,
		URL:       "https://avherald.com/h4d2f9e1",
	}
}

func TestInsertIncidentDeduplicates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	inc := testIncident("Ryanair B738 at Dublin on Mar 31st 2025, tail strike")

	ok, err := db.InsertIncident(ctx, inc)
	require.NoError(t, err)
	assert.True(t, ok, "first insert should write a row")

	ok, err = db.InsertIncident(ctx, inc)
	require.NoError(t, err)
	assert.False(t, ok, "same title should be skipped")

	rows, err := db.QueryIncidents(ctx, QueryParams{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, inc.Title, rows[0].Title)
	assert.Equal(t, inc.Airline, rows[0].Airline)
	require.NotNil(t, rows[0].Timestamp)
	assert.Equal(t, int64(1743379200), *rows[0].Timestamp)
}

func TestInsertIncidentSkipsNews(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	inc := testIncident("Site maintenance announcement")
	inc.Category = "News"

	ok, err := db.InsertIncident(ctx, inc)
	require.NoError(t, err)
	assert.False(t, ok, "news rows should be filtered")

	rows, err := db.QueryIncidents(ctx, QueryParams{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsertIncidentsCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	batch := []incident.Incident{
		testIncident("first"),
		testIncident("second"),
		testIncident("first"), // duplicate
	}
	news := testIncident("announcement")
	news.Category = "news"
	batch = append(batch, news)

	inserted, skipped, err := db.InsertIncidents(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, skipped)
}

func TestQueryIncidentsFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a := testIncident("Ryanair B738 at Dublin, tail strike")
	b := testIncident("Lufthansa A320 at Frankfurt, bird strike")
	b.Airline = "Lufthansa"
	b.Aircraft = "A320"
	c := testIncident("Delta B764 over Atlantic, engine shut down")
	c.Airline = "Delta"
	c.Aircraft = "B764"
	c.Timestamp = nil

	for _, inc := range []incident.Incident{a, b, c} {
		_, err := db.InsertIncident(ctx, inc)
		require.NoError(t, err)
	}

	rows, err := db.QueryIncidents(ctx, QueryParams{Airline: "Lufthansa"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A320", rows[0].Aircraft)

	rows, err = db.QueryIncidents(ctx, QueryParams{Aircraft: "B738"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ryanair", rows[0].Airline)

	// Rows without a timestamp sort last.
	rows, err = db.QueryIncidents(ctx, QueryParams{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Nil(t, rows[2].Timestamp)

	rows, err = db.QueryIncidents(ctx, QueryParams{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCountBy(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	titles := map[string]string{
		"one":   "Ryanair",
		"two":   "Ryanair",
		"three": "Delta",
		"four":  "", // folds into Unknown
	}
	for title, airline := range titles {
		inc := testIncident(title)
		inc.Airline = airline
		_, err := db.InsertIncident(ctx, inc)
		require.NoError(t, err)
	}

	counts, err := db.CountBy(ctx, "airline", 0)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, Count{Label: "Ryanair", Total: 2}, counts[0])
	// Equal totals order alphabetically.
	assert.Equal(t, Count{Label: "Delta", Total: 1}, counts[1])
	assert.Equal(t, Count{Label: "Unknown", Total: 1}, counts[2])

	counts, err = db.CountBy(ctx, "airline", 1)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "Ryanair", counts[0].Label)

	_, err = db.CountBy(ctx, "title", 0)
	assert.Error(t, err, "only airline and aircraft are countable")
}

func TestLegacySchemaMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.sqlite")

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE incidents (title TEXT UNIQUE, airline TEXT, aircraft TEXT)`)
	require.NoError(t, err)
	_, err = raw.Exec(`INSERT INTO incidents (title, airline, aircraft) VALUES (?, ?, ?)`,
		"Ryanair B738 at Dublin, tail strike", "Ryanair", "B738")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	// The legacy row survives with its overlapping columns; the columns it
	// never had are NULL and must read back as empty rather than failing
	// the scan.
	rows, err := db.QueryIncidents(ctx, QueryParams{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ryanair", rows[0].Airline)
	assert.Equal(t, "B738", rows[0].Aircraft)
	assert.Empty(t, rows[0].Category)
	assert.Empty(t, rows[0].URL)
	assert.Nil(t, rows[0].Timestamp)

	// The rebuilt table accepts the full column set.
	ok, err := db.InsertIncident(ctx, testIncident("Lufthansa A320 at Frankfurt, bird strike"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrationIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stable.sqlite")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = db.InsertIncident(context.Background(), testIncident("kept across reopen"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.QueryIncidents(context.Background(), QueryParams{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
