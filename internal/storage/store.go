// Package storage provides persistent, deduplicated storage for scraped
// incidents across SQLite, PostgreSQL and ClickHouse backends.
package storage

import (
	"context"
	"fmt"
	"strings"

	"avherald_scraper/internal/incident"
)

// incidentColumns is the canonical column order for the incidents table.
var incidentColumns = []string{"category", "title", "airline", "aircraft", "timestamp", "url"}

// countableColumns are the columns CountBy accepts; validated to keep column
// names out of the SQL injection surface.
var countableColumns = map[string]bool{
	"airline":  true,
	"aircraft": true,
}

// skippedCategory filters rows that are site news rather than incidents.
const skippedCategory = "news"

// QueryParams filters incident listings.
type QueryParams struct {
	Airline  string // Exact match.
	Aircraft string // Exact match.
	Category string // Exact match.
	Limit    int    // Max results (default 100).
	Offset   int    // Pagination offset.
}

// Count is one row of a grouped count query.
type Count struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// IncidentStore is the contract shared by the SQLite and PostgreSQL backends.
type IncidentStore interface {
	// InsertIncident stores one incident, returning true when a new row
	// was written and false when it was deduplicated or filtered.
	InsertIncident(ctx context.Context, inc incident.Incident) (bool, error)

	// InsertIncidents stores a batch, returning inserted/skipped counts.
	InsertIncidents(ctx context.Context, incs []incident.Incident) (inserted, skipped int, err error)

	QueryIncidents(ctx context.Context, p QueryParams) ([]incident.Incident, error)

	// CountBy returns grouped occurrence counts for "airline" or
	// "aircraft", ordered by count descending then label ascending.
	CountBy(ctx context.Context, column string, limit int) ([]Count, error)

	Close() error
}

// Config holds connection settings for all storage backends.
type Config struct {
	SQLitePath string
	Postgres   PostgresConfig
	ClickHouse ClickHouseConfig
}

// DefaultConfig returns local development settings.
func DefaultConfig() Config {
	return Config{
		SQLitePath: "./output/data.sqlite",
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "avherald",
			User:     "avherald",
			Password: "avherald",
		},
		ClickHouse: ClickHouseConfig{
			Host:     "localhost",
			Port:     9000,
			Database: "avherald",
			User:     "default",
			Password: "",
		},
	}
}

// shouldStore reports whether an incident belongs in the store at all.
func shouldStore(inc incident.Incident) bool {
	return !strings.EqualFold(inc.Category, skippedCategory)
}

// validateCountColumn guards CountBy column names.
func validateCountColumn(column string) error {
	if !countableColumns[column] {
		return fmt.Errorf("unsupported count column %q (valid: airline, aircraft)", column)
	}
	return nil
}
