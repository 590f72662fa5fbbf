// Package observability defines the Prometheus metrics exposed by the
// scraper and API server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus counters and gauges for the scrape pipeline.
type Metrics struct {
	PagesScraped      prometheus.Counter
	FetchErrors       prometheus.Counter
	HeadlinesParsed   prometheus.Counter
	UnknownAirline    prometheus.Counter
	UnknownAircraft   prometheus.Counter
	IncidentsInserted prometheus.Counter
	IncidentsSkipped  prometheus.Counter
	LastScrape        prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		PagesScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "pages_scraped_total",
			Help:      "Total listing pages fetched successfully.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "fetch_errors_total",
			Help:      "Total page fetches that failed.",
		}),
		HeadlinesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "headlines_parsed_total",
			Help:      "Total headlines run through the parser.",
		}),
		UnknownAirline: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "unknown_airline_total",
			Help:      "Parsed entries whose airline degraded to the Unknown sentinel.",
		}),
		UnknownAircraft: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "unknown_aircraft_total",
			Help:      "Parsed entries whose aircraft degraded to the Unknown sentinel.",
		}),
		IncidentsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "incidents_inserted_total",
			Help:      "New incident rows stored.",
		}),
		IncidentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "avherald",
			Name:      "incidents_skipped_total",
			Help:      "Incidents skipped as duplicates or filtered categories.",
		}),
		LastScrape: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "avherald",
			Name:      "last_scrape_timestamp_seconds",
			Help:      "Epoch of the last successful page fetch.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PagesScraped,
		m.FetchErrors,
		m.HeadlinesParsed,
		m.UnknownAirline,
		m.UnknownAircraft,
		m.IncidentsInserted,
		m.IncidentsSkipped,
		m.LastScrape,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
