package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"avherald_scraper/internal/incident"
)

// SQLiteDB is the default single-file incident store.
type SQLiteDB struct {
	db *sql.DB
}

var _ IncidentStore = (*SQLiteDB)(nil)

// OpenSQLite opens or creates the incident database at the given path,
// creating parent directories as needed.
func OpenSQLite(path string) (*SQLiteDB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS incidents (
		category TEXT,
		title TEXT UNIQUE,
		airline TEXT,
		aircraft TEXT,
		timestamp INTEGER,
		url TEXT
	);`)
	if err != nil {
		return err
	}
	return migrateIncidentsTable(db)
}

// migrateIncidentsTable rebuilds the incidents table when an existing
// database carries a legacy column set, preserving the overlapping columns.
func migrateIncidentsTable(db *sql.DB) error {
	existing, err := incidentTableColumns(db)
	if err != nil {
		return err
	}
	if len(existing) == 0 || hasDesiredColumns(existing) {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`ALTER TABLE incidents RENAME TO incidents_legacy`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	CREATE TABLE incidents (
		category TEXT,
		title TEXT UNIQUE,
		airline TEXT,
		aircraft TEXT,
		timestamp INTEGER,
		url TEXT
	);`); err != nil {
		return err
	}

	existingSet := make(map[string]bool, len(existing))
	for _, col := range existing {
		existingSet[col] = true
	}
	var keep []string
	for _, col := range incidentColumns {
		if existingSet[col] {
			keep = append(keep, col)
		}
	}
	if len(keep) > 0 {
		cols := strings.Join(keep, ", ")
		if _, err := tx.Exec(fmt.Sprintf(
			`INSERT INTO incidents (%s) SELECT %s FROM incidents_legacy`, cols, cols)); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DROP TABLE incidents_legacy`); err != nil {
		return err
	}
	return tx.Commit()
}

func incidentTableColumns(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`PRAGMA table_info(incidents)`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

func hasDesiredColumns(columns []string) bool {
	if len(columns) != len(incidentColumns) {
		return false
	}
	set := make(map[string]bool, len(columns))
	for _, col := range columns {
		set[col] = true
	}
	for _, col := range incidentColumns {
		if !set[col] {
			return false
		}
	}
	return true
}

// InsertIncident stores one incident. Duplicated titles and filtered
// categories are skipped, returning false.
func (d *SQLiteDB) InsertIncident(ctx context.Context, inc incident.Incident) (bool, error) {
	if !shouldStore(inc) {
		return false, nil
	}
	res, err := d.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO incidents (category, title, airline, aircraft, timestamp, url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inc.Category, inc.Title, inc.Airline, inc.Aircraft, nullableTimestamp(inc.Timestamp), inc.URL)
	if err != nil {
		return false, fmt.Errorf("insert incident: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// InsertIncidents stores a batch of incidents.
func (d *SQLiteDB) InsertIncidents(ctx context.Context, incs []incident.Incident) (inserted, skipped int, err error) {
	for _, inc := range incs {
		ok, err := d.InsertIncident(ctx, inc)
		if err != nil {
			return inserted, skipped, err
		}
		if ok {
			inserted++
		} else {
			skipped++
		}
	}
	return inserted, skipped, nil
}

// QueryIncidents retrieves incidents matching the given filters, newest
// timestamps first.
func (d *SQLiteDB) QueryIncidents(ctx context.Context, p QueryParams) ([]incident.Incident, error) {
	query, args := buildIncidentQuery(p, false)
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var incidents []incident.Incident
	for rows.Next() {
		// Migrated legacy rows may hold NULL in any column they lacked.
		var (
			category, title, airline, aircraft, url sql.NullString
			ts                                      sql.NullInt64
		)
		if err := rows.Scan(&category, &title, &airline, &aircraft, &ts, &url); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		inc := incident.Incident{
			Category: category.String,
			Title:    title.String,
			Airline:  airline.String,
			Aircraft: aircraft.String,
			URL:      url.String,
		}
		if ts.Valid {
			v := ts.Int64
			inc.Timestamp = &v
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// CountBy returns grouped counts for the airline or aircraft column. Blank
// values fold into the Unknown label.
func (d *SQLiteDB) CountBy(ctx context.Context, column string, limit int) ([]Count, error) {
	if err := validateCountColumn(column); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(TRIM(%s), ''), 'Unknown') AS label, COUNT(*) AS total
		FROM incidents
		GROUP BY label
		ORDER BY total DESC, label ASC`, column)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Label, &c.Total); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// buildIncidentQuery assembles the filtered SELECT shared by the SQL
// backends. numbered selects $1-style placeholders for Postgres instead of
// SQLite's "?".
func buildIncidentQuery(p QueryParams, numbered bool) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(column string, arg interface{}) {
		placeholder := "?"
		if numbered {
			placeholder = fmt.Sprintf("$%d", len(args)+1)
		}
		conditions = append(conditions, column+" = "+placeholder)
		args = append(args, arg)
	}
	if p.Airline != "" {
		add("airline", p.Airline)
	}
	if p.Aircraft != "" {
		add("aircraft", p.Aircraft)
	}
	if p.Category != "" {
		add("category", p.Category)
	}

	query := `SELECT category, title, airline, aircraft, timestamp, url FROM incidents`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp DESC NULLS LAST, title ASC"

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset)
	return query, args
}

func nullableTimestamp(ts *int64) interface{} {
	if ts == nil {
		return nil
	}
	return *ts
}
