// Package incident defines the persisted incident record shape shared by the
// scraper, storage backends and the feed publisher.
package incident

import "avherald_scraper/internal/headline"

// Incident is one deduplicated incident row. Title is the unique key for
// storage; headlines describing multiple aircraft are expanded into multiple
// incidents with synthesized titles before they reach this type.
type Incident struct {
	Category  string `json:"category"`
	Title     string `json:"title"`
	Airline   string `json:"airline"`
	Aircraft  string `json:"aircraft"`
	Timestamp *int64 `json:"timestamp"`
	URL       string `json:"url"`
}

// FromEntry attaches the markup-derived category and URL to a parsed headline
// entry.
func FromEntry(entry headline.Entry, category, url string) Incident {
	return Incident{
		Category:  category,
		Title:     entry.Title,
		Airline:   entry.Airline,
		Aircraft:  entry.Aircraft,
		Timestamp: entry.Timestamp,
		URL:       url,
	}
}
