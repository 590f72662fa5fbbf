package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"avherald_scraper/internal/incident"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB is the incident store for shared deployments.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL and ensures the schema.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	d := &PostgresDB{pool: pool}
	if err := d.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return d, nil
}

// Close closes the connection pool.
func (d *PostgresDB) Close() error {
	d.pool.Close()
	return nil
}

func (d *PostgresDB) createSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS incidents (
		category    TEXT,
		title       TEXT UNIQUE,
		airline     TEXT,
		aircraft    TEXT,
		timestamp   BIGINT,
		url         TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_incidents_airline ON incidents(airline);
	CREATE INDEX IF NOT EXISTS idx_incidents_aircraft ON incidents(aircraft);
	CREATE INDEX IF NOT EXISTS idx_incidents_timestamp ON incidents(timestamp);
	`
	_, err := d.pool.Exec(ctx, schema)
	return err
}

// InsertIncident stores one incident, deduplicating on title.
func (d *PostgresDB) InsertIncident(ctx context.Context, inc incident.Incident) (bool, error) {
	if !shouldStore(inc) {
		return false, nil
	}
	tag, err := d.pool.Exec(ctx, `
		INSERT INTO incidents (category, title, airline, aircraft, timestamp, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (title) DO NOTHING`,
		inc.Category, inc.Title, inc.Airline, inc.Aircraft, inc.Timestamp, inc.URL)
	if err != nil {
		return false, fmt.Errorf("insert incident: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertIncidents stores a batch of incidents.
func (d *PostgresDB) InsertIncidents(ctx context.Context, incs []incident.Incident) (inserted, skipped int, err error) {
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

// QueryIncidents retrieves incidents matching the given filters.
func (d *PostgresDB) QueryIncidents(ctx context.Context, p QueryParams) ([]incident.Incident, error) {
	query, args := buildIncidentQuery(p, true)
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []incident.Incident
	for rows.Next() {
		// NULL text columns decode to "" rather than failing the scan.
		var (
			category, title, airline, aircraft, url sql.NullString
			ts                                      *int64
		)
		if err := rows.Scan(&category, &title, &airline, &aircraft, &ts, &url); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		incidents = append(incidents, incident.Incident{
			Category:  category.String,
			Title:     title.String,
			Airline:   airline.String,
			Aircraft:  aircraft.String,
			Timestamp: ts,
			URL:       url.String,
		})
	}
	return incidents, rows.Err()
}

// CountBy returns grouped counts for the airline or aircraft column.
func (d *PostgresDB) CountBy(ctx context.Context, column string, limit int) ([]Count, error) {
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

	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

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

var _ IncidentStore = (*PostgresDB)(nil)
