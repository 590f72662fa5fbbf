package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"avherald_scraper/internal/incident"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB is an append-only analytics archive of scraped incidents. It
// mirrors the deduplicated stores for aggregation workloads and is not an
// IncidentStore: the archive never deduplicates.
type ClickHouseDB struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse and ensures the schema.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	d := &ClickHouseDB{conn: conn}
	if err := d.createSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return d, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

func (d *ClickHouseDB) createSchema(ctx context.Context) error {
	return d.conn.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS incidents (
		category    LowCardinality(String),
		title       String,
		airline     LowCardinality(String),
		aircraft    LowCardinality(String),
		timestamp   Nullable(Int64),
		url         String,
		archived_at DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	ORDER BY (airline, aircraft, title)
	SETTINGS index_granularity = 8192`)
}

// ArchiveIncidents batch-inserts incidents into the archive.
func (d *ClickHouseDB) ArchiveIncidents(ctx context.Context, incs []incident.Incident) error {
	if len(incs) == 0 {
		return nil
	}
	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO incidents (category, title, airline, aircraft, timestamp, url)`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, inc := range incs {
		if !shouldStore(inc) {
			continue
		}
		if err := batch.Append(inc.Category, inc.Title, inc.Airline, inc.Aircraft, inc.Timestamp, inc.URL); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// TopCounts returns the most frequent values of the airline or aircraft
// column across the archive.
func (d *ClickHouseDB) TopCounts(ctx context.Context, column string, limit int) ([]Count, error) {
	if err := validateCountColumn(column); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT if(trimBoth(%s) = '', 'Unknown', %s) AS label, count() AS total
		FROM incidents
		GROUP BY label
		ORDER BY total DESC, label ASC
		LIMIT %d`, column, column, limit)

	rows, err := d.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var (
			label string
			total uint64
		)
		if err := rows.Scan(&label, &total); err != nil {
			return nil, err
		}
		counts = append(counts, Count{Label: label, Total: int64(total)})
	}
	return counts, rows.Err()
}
